package vp9

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/govp9/internal/boolcoder"
	"github.com/thesyncim/govp9/internal/mv"
)

func TestReadKeyFrameSubModes(t *testing.T) {
	dc := newTestContext(keyFrameHeader(64, 64))
	above := &ModeInfo{BlockSize: Block4x4, SubModes: [4]PredictionMode{DCPred, DCPred, VPred, HPred}}
	left := &ModeInfo{BlockSize: Block4x4, SubModes: [4]PredictionMode{DCPred, TMPred, DCPred, D45Pred}}
	place(dc, 0, 1, above)
	place(dc, 1, 0, left)

	modes := [4]PredictionMode{D135Pred, VPred, HPred, TMPred}
	e := boolcoder.NewEncoder()
	e.WriteBit(0, dc.Probs.Skip[0])
	// Sub-block 0 takes its neighbors from both blocks, 3 only from
	// modes read before it.
	ctxs := [4][2]PredictionMode{
		{VPred, TMPred},
		{HPred, modes[0]},
		{modes[0], D45Pred},
		{modes[1], modes[2]},
	}
	for i, m := range modes {
		e.WriteTree(intraModeTree, kfYModeProbs[ctxs[i][0]][ctxs[i][1]][:], int(m))
	}
	e.WriteTree(intraModeTree, kfUVModeProbs[TMPred][:], int(D63Pred))

	tc := newTestTile(dc, e.Bytes())
	tc.setBlock(1, 1, Block4x4)
	mi, err := tc.readModeInfo()
	require.NoError(t, err)
	assert.Equal(t, modes, mi.SubModes)
	assert.Equal(t, TMPred, mi.YMode)
	assert.Equal(t, D63Pred, mi.UVMode)
	assert.Equal(t, Tx4x4, mi.TxSize)
}

func TestReadSubModesShapes(t *testing.T) {
	dc := newTestContext(keyFrameHeader(64, 64))
	tc := newTestTile(dc, []byte{0})
	tests := []struct {
		bsize BlockSize
		reads []int
		want  [4]PredictionMode
	}{
		{Block4x8, []int{0, 1}, [4]PredictionMode{1, 2, 1, 2}},
		{Block8x4, []int{0, 2}, [4]PredictionMode{1, 1, 2, 2}},
		{Block16x16, []int{0}, [4]PredictionMode{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		var reads []int
		mi := &ModeInfo{BlockSize: tt.bsize}
		tc.readSubModes(mi, func(b int) PredictionMode {
			reads = append(reads, b)
			return PredictionMode(len(reads))
		})
		assert.Equal(t, tt.reads, reads, "%v", tt.bsize)
		assert.Equal(t, tt.want, mi.SubModes, "%v", tt.bsize)
		assert.Equal(t, tt.want[3], mi.YMode)
	}
}

func TestTxSizeContext(t *testing.T) {
	tx := func(s TxSize, skip bool) *ModeInfo {
		return &ModeInfo{BlockSize: Block64x64, TxSize: s, Skip: skip}
	}
	tests := []struct {
		name        string
		maxTx       TxSize
		above, left *ModeInfo
		want        int
	}{
		{"no neighbors", Tx32x32, nil, nil, 1},
		{"small neighbors", Tx32x32, tx(Tx8x8, false), tx(Tx8x8, false), 0},
		{"sum at max", Tx32x32, tx(Tx32x32, false), tx(Tx4x4, false), 0},
		{"sum above max", Tx32x32, tx(Tx32x32, false), tx(Tx8x8, false), 1},
		{"skipped above", Tx32x32, tx(Tx4x4, true), tx(Tx4x4, false), 0},
		{"above only", Tx32x32, tx(Tx16x16, false), nil, 1},
		{"left only", Tx8x8, nil, tx(Tx4x4, false), 0},
	}
	dc := newTestContext(keyFrameHeader(64, 64))
	tc := newTestTile(dc, []byte{0})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc.blk.above, tc.blk.left = tt.above, tt.left
			assert.Equal(t, tt.want, tc.txSizeContext(tt.maxTx))
		})
	}
}

func TestReadTxSize(t *testing.T) {
	h := keyFrameHeader(64, 64)
	h.TxMode = TxModeSelect
	dc := newTestContext(h)
	e := boolcoder.NewEncoder()
	e.WriteBit(1, dc.Probs.Tx32[1][0])
	e.WriteBit(1, dc.Probs.Tx32[1][1])
	e.WriteBit(0, dc.Probs.Tx32[1][2])

	tc := newTestTile(dc, e.Bytes())
	tc.setBlock(0, 0, Block64x64)
	assert.Equal(t, Tx16x16, tc.readTxSize(&ModeInfo{BlockSize: Block64x64}, true))
	assert.Equal(t, uint32(1), dc.counts.tx32[1][Tx16x16])

	// Without selection the block takes its largest size.
	assert.Equal(t, Tx16x16, tc.readTxSize(&ModeInfo{BlockSize: Block16x16}, false))
	assert.Equal(t, Tx4x4, tc.readTxSize(&ModeInfo{BlockSize: Block4x8}, true))

	h.TxMode = Allow8x8
	assert.Equal(t, Tx8x8, tc.readTxSize(&ModeInfo{BlockSize: Block64x64}, true))
}

func TestIsInterContext(t *testing.T) {
	inter := single(RefLast)
	tests := []struct {
		name        string
		above, left *ModeInfo
		want        int
	}{
		{"none", nil, nil, 0},
		{"both inter", inter, inter, 0},
		{"one intra", intra, inter, 1},
		{"both intra", intra, intra, 3},
		{"above intra only", intra, nil, 2},
		{"left inter only", nil, inter, 0},
	}
	dc := newTestContext(interFrameHeader(64, 64))
	tc := newTestTile(dc, []byte{0})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc.blk.above, tc.blk.left = tt.above, tt.left
			assert.Equal(t, tt.want, tc.isInterContext())
		})
	}
}

func TestInterpFilterContext(t *testing.T) {
	withFilter := func(f InterpFilter) *ModeInfo {
		mi := single(RefLast)
		mi.Inter.Filter = f
		return mi
	}
	tests := []struct {
		name        string
		above, left *ModeInfo
		want        int
	}{
		{"none", nil, nil, numSwitchableFilters},
		{"same", withFilter(FilterEightTapSharp), withFilter(FilterEightTapSharp), 2},
		{"left only", nil, withFilter(FilterEightTapSmooth), 1},
		{"above and intra left", withFilter(FilterEightTapSharp), intra, 2},
		{"different", withFilter(FilterEightTap), withFilter(FilterEightTapSmooth), numSwitchableFilters},
	}
	dc := newTestContext(interFrameHeader(64, 64))
	tc := newTestTile(dc, []byte{0})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc.blk.above, tc.blk.left = tt.above, tt.left
			assert.Equal(t, tt.want, tc.interpFilterContext())
		})
	}
}

func TestPredictedSegmentID(t *testing.T) {
	dc := newTestContext(interFrameHeader(64, 64))
	for i := range dc.prevSegMap {
		dc.prevSegMap[i] = 6
	}
	dc.prevSegMap[1*dc.miCols+3] = 2
	tc := newTestTile(dc, []byte{0})

	tc.setBlock(0, 2, Block16x16)
	assert.Equal(t, uint8(2), tc.predictedSegmentID())
	tc.setBlock(2, 2, Block16x16)
	assert.Equal(t, uint8(6), tc.predictedSegmentID())
}

func TestReadInterSegmentIDTemporal(t *testing.T) {
	h := interFrameHeader(64, 64)
	h.Seg = Segmentation{
		Enabled:        true,
		UpdateMap:      true,
		TemporalUpdate: true,
		TreeProbs:      [maxSegments - 1]uint8{128, 128, 128, 128, 128, 128, 128},
		PredProbs:      [3]uint8{100, 150, 200},
	}
	dc := newTestContext(h)
	for i := range dc.prevSegMap {
		dc.prevSegMap[i] = 5
	}
	place(dc, 0, 1, &ModeInfo{BlockSize: Block8x8, SegIDPredicted: true})

	e := boolcoder.NewEncoder()
	e.WriteBit(1, 150) // above was predicted
	e.WriteBit(0, 100)
	e.WriteTree(segmentTree, h.Seg.TreeProbs[:], 3)

	tc := newTestTile(dc, e.Bytes())
	tc.setBlock(1, 1, Block8x8)
	mi := &ModeInfo{BlockSize: Block8x8}
	assert.Equal(t, uint8(5), tc.readInterSegmentID(mi))
	assert.True(t, mi.SegIDPredicted)
	assert.Equal(t, uint8(5), dc.segMap[1*dc.miCols+1])

	// The next block has no predicted neighbors and codes its id.
	tc.setBlock(3, 3, Block8x8)
	mi = &ModeInfo{BlockSize: Block8x8}
	assert.Equal(t, uint8(3), tc.readInterSegmentID(mi))
	assert.False(t, mi.SegIDPredicted)
	assert.Equal(t, uint8(3), dc.segMap[3*dc.miCols+3])
}

func TestReadInterBlockNewMV(t *testing.T) {
	dc := newTestContext(interFrameHeader(64, 64))
	place(dc, 0, 1, interBlock(Block8x8, NewMV, RefLast, 10, -6))
	fc := &dc.Probs

	e := boolcoder.NewEncoder()
	e.WriteBit(0, fc.Skip[0])
	e.WriteBit(1, fc.IsInter[0])
	e.WriteBit(0, fc.SingleRef[4][0])
	e.WriteTree(interModeTree, fc.InterMode[newPlusNonIntra][:], int(NewMV-NearestMV))
	e.WriteTree(mvJointTree, fc.MV.Joints[:], mvJointHnzVz)
	writeClass0Component(e, &fc.MV.Comps[1], 4, false)

	tc := newTestTile(dc, e.Bytes())
	tc.setBlock(1, 1, Block8x8)
	mi, err := tc.readModeInfo()
	require.NoError(t, err)

	require.True(t, mi.IsInter())
	assert.False(t, mi.IsCompound())
	assert.Equal(t, NewMV, mi.YMode)
	assert.Equal(t, Tx8x8, mi.TxSize)
	assert.Equal(t, FilterEightTap, mi.Inter.Filter)
	assert.Equal(t, [2]RefFrame{RefLast, RefNone}, mi.Inter.RefFrame)
	want := mv.New(14, -6, int(RefLast))
	for b := 0; b < 4; b++ {
		assert.Equal(t, want, mi.Inter.MV[b][0])
	}
	assert.Equal(t, uint32(1), dc.counts.interMode[newPlusNonIntra][NewMV-NearestMV])
	assert.Equal(t, uint32(1), dc.counts.isInter[0][1])
}

func TestReadInterBlockSub8x8(t *testing.T) {
	dc := newTestContext(interFrameHeader(64, 64))
	fc := &dc.Probs

	// No neighbors: both candidates are zero and the mode context is
	// bothPredicted.
	e := boolcoder.NewEncoder()
	e.WriteBit(0, fc.Skip[0])
	e.WriteBit(1, fc.IsInter[0])
	e.WriteBit(0, fc.SingleRef[2][0])
	probs := fc.InterMode[bothPredicted][:]
	e.WriteTree(interModeTree, probs, int(ZeroMV-NearestMV))
	e.WriteTree(interModeTree, probs, int(NewMV-NearestMV))
	e.WriteTree(mvJointTree, fc.MV.Joints[:], mvJointHzVnz)
	writeClass0Component(e, &fc.MV.Comps[0], -2, false)

	tc := newTestTile(dc, e.Bytes())
	tc.setBlock(0, 0, Block4x8)
	mi, err := tc.readModeInfo()
	require.NoError(t, err)

	assert.Equal(t, [4]PredictionMode{ZeroMV, NewMV, ZeroMV, NewMV}, mi.SubModes)
	assert.Equal(t, NewMV, mi.YMode)
	assert.Equal(t, Tx4x4, mi.TxSize)
	zero := mv.New(0, 0, int(RefLast))
	moved := mv.New(0, -2, int(RefLast))
	assert.Equal(t, [4][2]mv.MV{{zero}, {moved}, {zero}, {moved}}, mi.Inter.MV)
}

func TestSegmentSkipRejectsSub8x8(t *testing.T) {
	h := interFrameHeader(64, 64)
	h.Seg.Enabled = true
	h.Seg.FeatureEnabled[0][SegLvlSkip] = true
	dc := newTestContext(h)

	e := boolcoder.NewEncoder()
	e.WriteBit(1, dc.Probs.IsInter[0])
	e.WriteBit(0, dc.Probs.SingleRef[2][0])

	tc := newTestTile(dc, e.Bytes())
	tc.setBlock(0, 0, Block4x4)
	_, err := tc.readModeInfo()
	assert.ErrorIs(t, err, ErrInvalidSegmentFeature)
}

func TestAssignMV(t *testing.T) {
	dc := newTestContext(interFrameHeader(64, 64))
	tc := newTestTile(dc, []byte{0})
	refs := [2]RefFrame{RefGolden, RefAltRef}
	nearest := [2]mv.MV{mv.New(8, 8, 0), mv.New(-8, 0, 0)}
	near := [2]mv.MV{mv.New(2, 2, 0), mv.New(4, 4, 0)}

	got, err := tc.assignMV(NearMV, refs, 2, nearest, nearest, near)
	require.NoError(t, err)
	assert.Equal(t, [2]mv.MV{mv.New(2, 2, int(RefGolden)), mv.New(4, 4, int(RefAltRef))}, got)

	got, err = tc.assignMV(ZeroMV, refs, 1, nearest, nearest, near)
	require.NoError(t, err)
	assert.Equal(t, [2]mv.MV{mv.New(0, 0, int(RefGolden))}, got)
}
