package vp9

import (
	"github.com/thesyncim/govp9/internal/mv"
	"github.com/thesyncim/govp9/util"
)

// candidateAt returns the decoded block at offset p from the current
// block, or nil if that cell lies above or below the frame, outside the
// tile's columns, or has not been decoded.
func (tc *TileContext) candidateAt(p position) *ModeInfo {
	b := &tc.blk
	r, c := b.miRow+p.row, b.miCol+p.col
	if r < 0 || r >= tc.dc.miRows || c < tc.miColStart || c >= tc.miColEnd {
		return nil
	}
	return tc.dc.grid[r*tc.dc.miCols+c]
}

// subBlockMV picks the vector of candidate cand nearest to sub-block
// block. Only candidates below 8x8 carry per-sub-block vectors; block is
// -1 when the whole block is being predicted.
func subBlockMV(cand *ModeInfo, which, searchCol, block int) mv.MV {
	if block >= 0 && cand.BlockSize < Block8x8 {
		return cand.Inter.MV[idxNColumnToSubblock[block][b2i(searchCol == 0)]][which]
	}
	return cand.Inter.MV[3][which]
}

// scaledMV returns v from a block predicting from ref, negated when ref
// and target lie on different sides of the current frame.
func scaledMV(v mv.MV, ref, target RefFrame, signBias *[numRefFrames]bool) mv.MV {
	if v.IsZero() || signBias[ref] == signBias[target] {
		return v
	}
	return v.WithXY(-v.X(), -v.Y())
}

// clampMV limits v to the block's frame edges widened by margin.
func (b *blockPos) clampMV(v mv.MV, margin int) mv.MV {
	return v.WithXY(
		util.Clamp(v.X(), b.toLeft-margin, b.toRight+margin),
		util.Clamp(v.Y(), b.toTop-margin, b.toBottom+margin),
	)
}

// findMVRefs searches the spatial neighbors and the previous frame's
// motion field for up to two distinct candidate vectors for ref. It also
// returns the inter mode context, derived from the modes of the two
// nearest neighbors. Both returned entries are present and clamped to
// the frame plus a border; unfilled entries are zero before clamping.
func (tc *TileContext) findMVRefs(mi *ModeInfo, ref RefFrame, block int) (mv.List, int) {
	dc := tc.dc
	b := &tc.blk
	signBias := &dc.Header.RefSignBias
	neighbors := &mvRefBlocks[mi.BlockSize]

	var list mv.List
	add := func(v mv.MV) bool {
		list = list.AddUniq(v.WithRef(int(ref)))
		return list.Full()
	}

	counter := 0
	differentRef := false
	var prev *mvRef
	if dc.usePrevFrameMVs() {
		prev = &dc.prevMVs[b.miRow*dc.miCols+b.miCol]
	}

	// Candidates using the same reference, nearest neighbors first.
	for i, p := range neighbors {
		cand := tc.candidateAt(p)
		if cand == nil {
			continue
		}
		differentRef = true
		if i < 2 {
			counter += int(mode2Counter[cand.YMode])
		}
		var v mv.MV
		switch {
		case cand.ref(0) == ref:
			v = cand.Inter.MV[3][0]
			if i < 2 {
				v = subBlockMV(cand, 0, p.col, block)
			}
		case cand.ref(1) == ref:
			v = cand.Inter.MV[3][1]
			if i < 2 {
				v = subBlockMV(cand, 1, p.col, block)
			}
		default:
			continue
		}
		if add(v) {
			goto done
		}
	}
	if prev != nil {
		var full bool
		switch {
		case prev.ref[0] == ref:
			full = add(prev.mv[0])
		case prev.ref[1] == ref:
			full = add(prev.mv[1])
		}
		if full {
			goto done
		}
	}

	// Candidates using other references, sign corrected.
	if differentRef {
		for _, p := range neighbors {
			cand := tc.candidateAt(p)
			if cand == nil || !cand.IsInter() {
				continue
			}
			in := cand.Inter
			if in.RefFrame[0] != ref {
				if add(scaledMV(in.MV[3][0], in.RefFrame[0], ref, signBias)) {
					goto done
				}
			}
			if in.RefFrame[1] > RefIntra && in.RefFrame[1] != ref && !in.MV[3][1].SameXY(in.MV[3][0]) {
				if add(scaledMV(in.MV[3][1], in.RefFrame[1], ref, signBias)) {
					goto done
				}
			}
		}
	}
	if prev != nil {
		if prev.ref[0] != ref && prev.ref[0] > RefIntra {
			if add(scaledMV(prev.mv[0], prev.ref[0], ref, signBias)) {
				goto done
			}
		}
		if prev.ref[1] > RefIntra && prev.ref[1] != ref && !prev.mv[1].SameXY(prev.mv[0]) {
			add(scaledMV(prev.mv[1], prev.ref[1], ref, signBias))
		}
	}

done:
	for !list.Full() {
		list = list.Add(mv.Zero)
	}
	for i := 0; i < maxMVRefCands; i++ {
		list = list.Set(i, b.clampMV(list.Get(i).WithRef(int(ref)), mvBorder))
	}
	return list, int(counterToContext[counter])
}

// useHP reports whether a vector near v may use 1/8 pel precision.
func useHP(v mv.MV) bool {
	return util.Abs(v.X())>>3 < compandedMVRef && util.Abs(v.Y())>>3 < compandedMVRef
}

// lowerPrecision rounds odd components toward zero unless high
// precision is in use.
func lowerPrecision(v mv.MV, allowHP bool) mv.MV {
	if v.IsZero() || allowHP && useHP(v) {
		return v
	}
	x, y := v.X(), v.Y()
	if x&1 != 0 {
		if x > 0 {
			x--
		} else {
			x++
		}
	}
	if y&1 != 0 {
		if y > 0 {
			y--
		} else {
			y++
		}
	}
	return v.WithXY(x, y)
}

// findBestRefMVs turns a candidate list into the nearest and near
// vectors of the block.
func (tc *TileContext) findBestRefMVs(list mv.List) (nearest, near mv.MV) {
	allowHP := tc.dc.Header.AllowHighPrecisionMV
	best := func(i int) mv.MV {
		return tc.blk.clampMV(lowerPrecision(list.Get(i), allowHP), mvRefMargin)
	}
	return best(0), best(1)
}

// appendSub8x8MVs returns the nearest and near vectors of sub-block
// block for reference slot i, preferring vectors of the sub-blocks
// already decoded.
func (tc *TileContext) appendSub8x8MVs(mi *ModeInfo, block, i int) (nearest, near mv.MV) {
	ref := mi.Inter.RefFrame[i]
	list, _ := tc.findMVRefs(mi, ref, block)
	if tc.mvTr != nil {
		tc.mvTr.TraceMVCandidates(tc.blk.miRow, tc.blk.miCol, ref, list, -1)
	}
	bmv := &mi.Inter.MV
	near = mv.Zero.WithRef(int(ref))

	firstOther := func(cands ...mv.MV) {
		for _, c := range cands {
			if !c.SameXY(nearest) {
				near = c
				return
			}
		}
	}
	switch block {
	case 0:
		nearest, near = list.Get(0), list.Get(1)
	case 1, 2:
		nearest = bmv[0][i]
		firstOther(list.Get(0), list.Get(1))
	case 3:
		nearest = bmv[2][i]
		firstOther(bmv[1][i], bmv[0][i], list.Get(0), list.Get(1))
	}
	return nearest, near
}
