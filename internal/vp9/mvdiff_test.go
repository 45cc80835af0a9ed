package vp9

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/govp9/internal/boolcoder"
	"github.com/thesyncim/govp9/internal/mv"
)

// writeClass0Component encodes a class 0 component of magnitude at most 16.
func writeClass0Component(e *boolcoder.Encoder, p *MVComponentProbs, v int, hp bool) {
	sign := 0
	if v < 0 {
		sign, v = 1, -v
	}
	offset := v - 1
	e.WriteBit(sign, p.Sign)
	e.WriteTree(mvClassTree, p.Classes[:], 0)
	d := offset >> 3
	e.WriteBit(d, p.Class0[0])
	e.WriteTree(mvFPTree, p.Class0FP[d][:], (offset>>1)&3)
	if hp {
		e.WriteBit(offset&1, p.Class0HP)
	}
}

func TestReadMVDiff(t *testing.T) {
	dc := newTestContext(interFrameHeader(64, 64))
	fc := &dc.Probs.MV
	e := boolcoder.NewEncoder()
	e.WriteTree(mvJointTree, fc.Joints[:], mvJointHnzVnz)
	writeClass0Component(e, &fc.Comps[0], -4, false)
	writeClass0Component(e, &fc.Comps[1], 10, false)

	tc := newTestTile(dc, e.Bytes())
	got, err := tc.readMV(mv.New(4, 8, int(RefLast)))
	require.NoError(t, err)
	assert.Equal(t, mv.New(14, 4, int(RefLast)), got)

	c := dc.counts
	assert.Equal(t, uint32(1), c.mvJoints[mvJointHnzVnz])
	assert.Equal(t, uint32(1), c.mvComps[0].sign[1])
	assert.Equal(t, uint32(1), c.mvComps[1].sign[0])
	assert.Equal(t, uint32(1), c.mvComps[1].class0[1])
	// Without high precision the implicit bit is still counted.
	assert.Equal(t, uint32(1), c.mvComps[0].class0HP[1])
}

func TestReadMVHighPrecision(t *testing.T) {
	h := interFrameHeader(64, 64)
	h.AllowHighPrecisionMV = true
	dc := newTestContext(h)
	fc := &dc.Probs.MV
	e := boolcoder.NewEncoder()
	e.WriteTree(mvJointTree, fc.Joints[:], mvJointHnzVz)
	writeClass0Component(e, &fc.Comps[1], -3, true)

	tc := newTestTile(dc, e.Bytes())
	got, err := tc.readMV(mv.New(0, 0, int(RefGolden)))
	require.NoError(t, err)
	assert.Equal(t, mv.New(-3, 0, int(RefGolden)), got)
}

func TestReadMVLargeClass(t *testing.T) {
	dc := newTestContext(interFrameHeader(64, 64))
	fc := &dc.Probs.MV
	p := &fc.Comps[1]
	e := boolcoder.NewEncoder()
	e.WriteTree(mvJointTree, fc.Joints[:], mvJointHnzVz)
	// Class 2: base 2<<4 = 32, two integer bits d=3 (LSB first), fr=1.
	e.WriteBit(0, p.Sign)
	e.WriteTree(mvClassTree, p.Classes[:], 2)
	e.WriteBit(1, p.Bits[0])
	e.WriteBit(1, p.Bits[1])
	e.WriteTree(mvFPTree, p.FP[:], 1)

	tc := newTestTile(dc, e.Bytes())
	got, err := tc.readMV(mv.Zero)
	require.NoError(t, err)
	// 32 + (3<<3 | 1<<1 | 1) + 1
	assert.Equal(t, 60, got.X())
	assert.Equal(t, uint32(1), dc.counts.mvComps[1].bits[1][1])
}

func TestReadMVOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		joint int
		ref   mv.MV
		diff  int
		ok    bool
	}{
		{"x at max", mvJointHnzVz, mv.New(mv.MaxComp-10, 0, int(RefLast)), 10, true},
		{"x past max", mvJointHnzVz, mv.New(mv.MaxComp-9, 0, int(RefLast)), 10, false},
		{"x at min", mvJointHnzVz, mv.New(mv.MinComp+10, 0, int(RefLast)), -10, true},
		{"x past min", mvJointHnzVz, mv.New(mv.MinComp+9, 0, int(RefLast)), -10, false},
		{"y past max", mvJointHzVnz, mv.New(0, mv.MaxComp-4, int(RefLast)), 10, false},
		{"y past min", mvJointHzVnz, mv.New(0, mv.MinComp+1, int(RefLast)), -2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := newTestContext(interFrameHeader(64, 64))
			fc := &dc.Probs.MV
			comp := 1
			if tt.joint == mvJointHzVnz {
				comp = 0
			}
			e := boolcoder.NewEncoder()
			e.WriteTree(mvJointTree, fc.Joints[:], tt.joint)
			writeClass0Component(e, &fc.Comps[comp], tt.diff, false)

			tc := newTestTile(dc, e.Bytes())
			got, err := tc.readMV(tt.ref)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidMV)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ref.X()+tt.diff, got.X())
			assert.Equal(t, int(RefLast), got.Ref())
		})
	}
}
