package vp9

import (
	"github.com/thesyncim/govp9/internal/bitreader"
	"github.com/thesyncim/govp9/internal/boolcoder"
)

// SynthesizeKeyFrame returns a profile 0 key frame of the given size in
// which every block is a skipped 8x8 block predicted with DC. The frame
// keeps the default probabilities and has a single tile, so width must
// not exceed 4096.
func SynthesizeKeyFrame(width, height int) []byte {
	probs := DefaultFrameProbs()

	comp := boolcoder.NewEncoder()
	comp.WriteLiteral(int(Allow32x32), 2)
	comp.WriteBitEq(0)
	for tx := Tx4x4; tx <= Tx32x32; tx++ {
		comp.WriteBitEq(0)
	}
	for range probs.Skip {
		comp.WriteBit(0, diffUpdateProb)
	}
	compressed := comp.Bytes()

	s := &keyFrameSynth{
		enc:    boolcoder.NewEncoder(),
		probs:  &probs,
		miRows: (height + 7) >> miSizeLog2,
		miCols: (width + 7) >> miSizeLog2,
	}
	s.above = make([]uint8, (s.miCols+sbMiSize-1)&^(sbMiSize-1))
	for miRow := 0; miRow < s.miRows; miRow += sbMiSize {
		s.left = [sbMiSize]uint8{}
		for miCol := 0; miCol < s.miCols; miCol += sbMiSize {
			s.partition(miRow, miCol, Block64x64)
		}
	}
	tile := s.enc.Bytes()

	var w bitreader.Writer
	w.F(frameMarker, 2)
	w.F(0, 2) // profile
	w.Bit(0)  // show_existing_frame
	w.Bit(int(KeyFrame))
	w.Bit(1) // show_frame
	w.Bit(0) // error_resilient_mode
	w.F(syncCode, 24)
	w.F(ColorSpaceBT601, 3)
	w.Bit(0) // studio swing
	w.F(width-1, 16)
	w.F(height-1, 16)
	w.Bit(0) // render size follows frame size
	w.Bit(1) // refresh_frame_context
	w.Bit(0) // frame_parallel_decoding_mode
	w.F(0, 2)
	w.F(0, 6) // loop filter level
	w.F(0, 3)
	w.Bit(0)
	w.F(60, 8) // base_q_idx
	w.F(0, 3)  // no delta q
	w.Bit(0)   // segmentation
	sbCols := (s.miCols + sbMiSize - 1) >> sbMiLog2
	if minLog2, maxLog2 := tileColsLog2Range(sbCols); maxLog2 > minLog2 {
		w.Bit(0)
	}
	w.Bit(0) // tile rows
	w.F(len(compressed), 16)

	out := append(w.Bytes(), compressed...)
	return append(out, tile...)
}

type keyFrameSynth struct {
	enc            *boolcoder.Encoder
	probs          *FrameProbs
	miRows, miCols int
	above          []uint8
	left           [sbMiSize]uint8
}

func (s *keyFrameSynth) partition(miRow, miCol int, bsize BlockSize) {
	if miRow >= s.miRows || miCol >= s.miCols {
		return
	}
	hbs := int(num8x8Wide[bsize]) >> 1
	hasRows := miRow+hbs < s.miRows
	hasCols := miCol+hbs < s.miCols
	bsl := int(bWidthLog2[bsize]) - 1
	above := int(s.above[miCol]>>bsl) & 1
	left := int(s.left[miRow&(sbMiSize-1)]>>bsl) & 1
	probs := kfPartitionProbs[left*2+above+bsl*4][:]

	if bsize == Block8x8 {
		s.enc.WriteTree(partitionTree, probs, int(PartitionNone))
		s.block(miRow, miCol)
		ctx := partitionContextLookup[Block8x8]
		s.above[miCol] = ctx.above
		s.left[miRow&(sbMiSize-1)] = ctx.left
		return
	}

	switch {
	case hasRows && hasCols:
		s.enc.WriteTree(partitionTree, probs, int(PartitionSplit))
	case hasCols:
		s.enc.WriteBit(1, probs[1])
	case hasRows:
		s.enc.WriteBit(1, probs[2])
	}
	sub := subsizeLookup[PartitionSplit][bsize]
	for i := 0; i < 4; i++ {
		s.partition(miRow+(i>>1)*hbs, miCol+(i&1)*hbs, sub)
	}
}

func (s *keyFrameSynth) block(miRow, miCol int) {
	ctx := b2i(miRow > 0) + b2i(miCol > 0)
	s.enc.WriteBit(1, s.probs.Skip[ctx])
	s.enc.WriteTree(intraModeTree, kfYModeProbs[DCPred][DCPred][:], int(DCPred))
	s.enc.WriteTree(intraModeTree, kfUVModeProbs[DCPred][:], int(DCPred))
}
