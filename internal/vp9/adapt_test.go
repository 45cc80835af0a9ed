package vp9

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetProb(t *testing.T) {
	tests := []struct {
		num, den uint32
		want     uint8
	}{
		{0, 10, 1},
		{10, 10, 255},
		{1, 2, 128},
		{1, 10, 26},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, getProb(tt.num, tt.den), "%d/%d", tt.num, tt.den)
	}
}

func TestMergeProbs(t *testing.T) {
	assert.Equal(t, uint8(128), mergeProbs(128, [2]uint32{}, coefCountSat, coefMaxUpdateFactor))
	assert.Equal(t, uint8(90), mergeProbs(90, [2]uint32{}, coefCountSat, coefMaxUpdateFactor))

	assert.Equal(t, uint8(100), modeMVMergeProbs(100, [2]uint32{}))
	assert.Equal(t, uint8(178), modeMVMergeProbs(100, [2]uint32{20, 0}))
	// Counts above saturation weigh the same as saturated counts.
	assert.Equal(t, modeMVMergeProbs(100, [2]uint32{20, 0}), modeMVMergeProbs(100, [2]uint32{500, 0}))
}

func TestTreeMergeProbs(t *testing.T) {
	pre := []uint8{128, 128, 128}
	probs := make([]uint8, 3)
	total := treeMergeProbs(mvJointTree, pre, probs, []uint32{1, 2, 3, 4}, 0)
	assert.Equal(t, uint32(10), total)
	assert.Equal(t, uint8(103), probs[0])
	assert.Equal(t, modeMVMergeProbs(128, [2]uint32{2, 7}), probs[1])
	assert.Equal(t, modeMVMergeProbs(128, [2]uint32{3, 4}), probs[2])
}

func TestAdaptProbs(t *testing.T) {
	t.Run("inter frame", func(t *testing.T) {
		dc := newTestContext(interFrameHeader(64, 64))
		dc.counts.skip[0] = [2]uint32{20, 0}
		dc.adaptProbs()
		assert.Equal(t, uint8(224), dc.Probs.Skip[0])
		assert.Equal(t, dc.savedCtx[0].Skip[1], dc.Probs.Skip[1])
		assert.Equal(t, dc.savedCtx[0].Coef, dc.Probs.Coef)
	})

	t.Run("key frame keeps mode probabilities", func(t *testing.T) {
		dc := newTestContext(keyFrameHeader(64, 64))
		dc.counts.skip[0] = [2]uint32{20, 0}
		dc.adaptProbs()
		assert.Equal(t, uint8(192), dc.Probs.Skip[0])
	})
}
