package vp9

import (
	"github.com/thesyncim/govp9/internal/boolcoder"
	"github.com/thesyncim/govp9/internal/mv"
)

func keyFrameHeader(width, height int) *FrameHeader {
	return &FrameHeader{
		FrameType:           KeyFrame,
		ShowFrame:           true,
		Width:               width,
		Height:              height,
		Color:               ColorConfig{BitDepth: 8, ColorSpace: ColorSpaceBT601, SubsamplingX: 1, SubsamplingY: 1},
		RefreshFlags:        0xff,
		RefreshFrameContext: true,
		TxMode:              Allow32x32,
		Quant:               QuantParams{BaseQIdx: 60},
	}
}

func interFrameHeader(width, height int) *FrameHeader {
	h := keyFrameHeader(width, height)
	h.FrameType = NonKeyFrame
	h.RefreshFlags = 1
	h.InterpFilter = FilterEightTap
	return h
}

// newTestContext builds a DecodingContext for h with default
// probabilities, skipping header parsing.
func newTestContext(h *FrameHeader) *DecodingContext {
	st := NewState()
	dc := &DecodingContext{Header: h, st: st}
	dc.savedCtx = st.frameCtx
	dc.Probs = dc.savedCtx[0]
	dc.setupFrame()
	return dc
}

func newTestTile(dc *DecodingContext, data []byte) *TileContext {
	return dc.newTileContext(tileBuffer{data: data}, dc.counts, NoopTracer{})
}

// interBlock returns the mode info of a single reference inter block.
func interBlock(bsize BlockSize, mode PredictionMode, ref RefFrame, x, y int) *ModeInfo {
	v := mv.New(x, y, int(ref))
	return &ModeInfo{
		BlockSize: bsize,
		YMode:     mode,
		SubModes:  [4]PredictionMode{mode, mode, mode, mode},
		Inter: &InterInfo{
			RefFrame: [2]RefFrame{ref, RefNone},
			MV:       [4][2]mv.MV{{v}, {v}, {v}, {v}},
		},
	}
}

// place stores mi over its cells of the grid.
func place(dc *DecodingContext, miRow, miCol int, mi *ModeInfo) {
	for y := 0; y < int(num8x8High[mi.BlockSize]); y++ {
		for x := 0; x < int(num8x8Wide[mi.BlockSize]); x++ {
			if miRow+y < dc.miRows && miCol+x < dc.miCols {
				dc.grid[(miRow+y)*dc.miCols+miCol+x] = mi
			}
		}
	}
}

// writeCoefs encodes vals, given in scan order, as the tokens of one
// transform unit. The last value must be nonzero unless vals fills the
// unit.
func writeCoefs(e *boolcoder.Encoder, probs *[coefBands][coefContexts][modelNodes]uint8, tx TxSize, ctx int, so *scanOrder, vals []int32) {
	bands := bandTranslate(tx)
	maxEOB := 16 << (tx << 1)
	cache := make([]uint8, maxEOB)
	afterZero := false
	for c, v := range vals {
		p := &probs[bands[c]][ctx]
		if !afterZero {
			e.WriteBit(1, p[0])
		}
		mag := v
		if mag < 0 {
			mag = -mag
		}
		token := tokenZero
		switch {
		case v == 0:
			e.WriteBit(0, p[1])
		case mag == 1:
			e.WriteBit(1, p[1])
			e.WriteBit(0, p[2])
			token = tokenOne
		default:
			e.WriteBit(1, p[1])
			e.WriteBit(1, p[2])
			token = writeTokenValue(e, paretoProbs(p[2]), mag)
		}
		if v != 0 {
			e.WriteBitEq(b2i(v < 0))
		}
		cache[so.scan[c]] = energyClass[token]
		afterZero = v == 0
		if c+1 < maxEOB {
			ctx = so.coefContext(cache, c+1)
		}
	}
	if len(vals) < maxEOB {
		e.WriteBit(0, probs[bands[len(vals)]][ctx][0])
	}
}

func writeTokenValue(e *boolcoder.Encoder, pareto []uint8, mag int32) int {
	if mag <= 4 {
		e.WriteTree(coefConTree, pareto, int(mag))
		return int(mag)
	}
	token := tokenCat6
	for t := tokenCat1; t < tokenCat6; t++ {
		if mag < catMinVal[t-tokenCat1+1] {
			token = t
			break
		}
	}
	e.WriteTree(coefConTree, pareto, token)
	extra := map[int][]uint8{
		tokenCat1: cat1Prob, tokenCat2: cat2Prob, tokenCat3: cat3Prob,
		tokenCat4: cat4Prob, tokenCat5: cat5Prob, tokenCat6: cat6Probs(8),
	}[token]
	v := mag - catMinVal[token-tokenCat1]
	for i, p := range extra {
		e.WriteBit(int(v>>(len(extra)-1-i))&1, p)
	}
	return token
}
