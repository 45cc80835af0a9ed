package vp9

// Reference frame contexts. Each is derived from the reference frames of
// the above and left blocks; a missing neighbor is outside the frame or
// the tile.

func hasSecondRef(mi *ModeInfo) bool {
	return mi.ref(1) > RefIntra
}

// edgeOf returns the one neighbor that exists.
func edgeOf(above, left *ModeInfo) *ModeInfo {
	if above != nil {
		return above
	}
	return left
}

func (tc *TileContext) referenceModeContext() int {
	h := tc.dc.Header
	above, left := tc.blk.above, tc.blk.left
	fixed := h.CompFixedRef
	switch {
	case above != nil && left != nil:
		switch {
		case !hasSecondRef(above) && !hasSecondRef(left):
			return b2i(above.ref(0) == fixed) ^ b2i(left.ref(0) == fixed)
		case !hasSecondRef(above):
			return 2 + b2i(above.ref(0) == fixed || !above.IsInter())
		case !hasSecondRef(left):
			return 2 + b2i(left.ref(0) == fixed || !left.IsInter())
		}
		return 4
	case above != nil || left != nil:
		edge := edgeOf(above, left)
		if !hasSecondRef(edge) {
			return b2i(edge.ref(0) == fixed)
		}
		return 3
	}
	return 1
}

func (tc *TileContext) compRefContext() int {
	h := tc.dc.Header
	above, left := tc.blk.above, tc.blk.left
	varIdx := 1 - b2i(h.RefSignBias[h.CompFixedRef])
	var0, var1 := h.CompVarRef[0], h.CompVarRef[1]

	switch {
	case above != nil && left != nil:
		aIntra, lIntra := !above.IsInter(), !left.IsInter()
		switch {
		case aIntra && lIntra:
			return 2
		case aIntra || lIntra:
			edge := above
			if aIntra {
				edge = left
			}
			if !hasSecondRef(edge) {
				return 1 + 2*b2i(edge.ref(0) != var1)
			}
			return 1 + 2*b2i(edge.ref(varIdx) != var1)
		}
		aSingle, lSingle := !hasSecondRef(above), !hasSecondRef(left)
		vrfa := above.ref(varIdx)
		if aSingle {
			vrfa = above.ref(0)
		}
		vrfl := left.ref(varIdx)
		if lSingle {
			vrfl = left.ref(0)
		}
		switch {
		case vrfa == vrfl && var1 == vrfa:
			return 0
		case lSingle && aSingle:
			if (vrfa == h.CompFixedRef && vrfl == var0) || (vrfl == h.CompFixedRef && vrfa == var0) {
				return 4
			}
			if vrfa == vrfl {
				return 3
			}
			return 1
		case lSingle || aSingle:
			vrfc, rfs := vrfl, vrfa
			if lSingle {
				vrfc, rfs = vrfa, vrfl
			}
			if vrfc == var1 && rfs != var1 {
				return 1
			}
			if rfs == var1 && vrfc != var1 {
				return 2
			}
			return 4
		case vrfa == vrfl:
			return 4
		}
		return 2
	case above != nil || left != nil:
		edge := edgeOf(above, left)
		switch {
		case !edge.IsInter():
			return 2
		case hasSecondRef(edge):
			return 4 * b2i(edge.ref(varIdx) != var1)
		}
		return 3 * b2i(edge.ref(0) != var1)
	}
	return 2
}

// secondRefInfo splits two inter neighbors into the one with a single
// reference (rfs) and the references of the compound one (crf1, crf2).
func secondRefInfo(above, left *ModeInfo) (rfs, crf1, crf2 RefFrame) {
	if hasSecondRef(above) {
		return left.ref(0), above.ref(0), above.ref(1)
	}
	return above.ref(0), left.ref(0), left.ref(1)
}

func (tc *TileContext) singleRefP1Context() int {
	above, left := tc.blk.above, tc.blk.left
	switch {
	case above != nil && left != nil:
		aIntra, lIntra := !above.IsInter(), !left.IsInter()
		switch {
		case aIntra && lIntra:
			return 2
		case aIntra || lIntra:
			edge := above
			if aIntra {
				edge = left
			}
			if !hasSecondRef(edge) {
				return 4 * b2i(edge.ref(0) == RefLast)
			}
			return 1 + b2i(edge.ref(0) == RefLast || edge.ref(1) == RefLast)
		}
		a2, l2 := hasSecondRef(above), hasSecondRef(left)
		a0, a1, l0, l1 := above.ref(0), above.ref(1), left.ref(0), left.ref(1)
		switch {
		case a2 && l2:
			return 1 + b2i(a0 == RefLast || a1 == RefLast || l0 == RefLast || l1 == RefLast)
		case a2 || l2:
			rfs, crf1, crf2 := secondRefInfo(above, left)
			if rfs == RefLast {
				return 3 + b2i(crf1 == RefLast || crf2 == RefLast)
			}
			return b2i(crf1 == RefLast || crf2 == RefLast)
		}
		return 2*b2i(a0 == RefLast) + 2*b2i(l0 == RefLast)
	case above != nil || left != nil:
		edge := edgeOf(above, left)
		switch {
		case !edge.IsInter():
			return 2
		case !hasSecondRef(edge):
			return 4 * b2i(edge.ref(0) == RefLast)
		}
		return 1 + b2i(edge.ref(0) == RefLast || edge.ref(1) == RefLast)
	}
	return 2
}

func (tc *TileContext) singleRefP2Context() int {
	above, left := tc.blk.above, tc.blk.left
	switch {
	case above != nil && left != nil:
		aIntra, lIntra := !above.IsInter(), !left.IsInter()
		switch {
		case aIntra && lIntra:
			return 2
		case aIntra || lIntra:
			edge := above
			if aIntra {
				edge = left
			}
			if !hasSecondRef(edge) {
				if edge.ref(0) == RefLast {
					return 3
				}
				return 4 * b2i(edge.ref(0) == RefGolden)
			}
			return 1 + 2*b2i(edge.ref(0) == RefGolden || edge.ref(1) == RefGolden)
		}
		a2, l2 := hasSecondRef(above), hasSecondRef(left)
		a0, a1, l0, l1 := above.ref(0), above.ref(1), left.ref(0), left.ref(1)
		switch {
		case a2 && l2:
			if a0 == l0 && a1 == l1 {
				return 3 * b2i(a0 == RefGolden || a1 == RefGolden || l0 == RefGolden || l1 == RefGolden)
			}
			return 2
		case a2 || l2:
			rfs, crf1, crf2 := secondRefInfo(above, left)
			golden := crf1 == RefGolden || crf2 == RefGolden
			switch rfs {
			case RefGolden:
				return 3 + b2i(golden)
			case RefAltRef:
				return b2i(golden)
			}
			return 1 + 2*b2i(golden)
		}
		switch {
		case a0 == RefLast && l0 == RefLast:
			return 3
		case a0 == RefLast || l0 == RefLast:
			edge0 := a0
			if a0 == RefLast {
				edge0 = l0
			}
			return 4 * b2i(edge0 == RefGolden)
		}
		return 2*b2i(a0 == RefGolden) + 2*b2i(l0 == RefGolden)
	case above != nil || left != nil:
		edge := edgeOf(above, left)
		switch {
		case !edge.IsInter() || (edge.ref(0) == RefLast && !hasSecondRef(edge)):
			return 2
		case !hasSecondRef(edge):
			return 4 * b2i(edge.ref(0) == RefGolden)
		}
		return 3 * b2i(edge.ref(0) == RefGolden || edge.ref(1) == RefGolden)
	}
	return 2
}

// readRefFrames reads the references of an inter block. The second slot
// is RefNone for single prediction.
func (tc *TileContext) readRefFrames(segID uint8) [2]RefFrame {
	h := tc.dc.Header
	fc := &tc.dc.Probs
	if h.Seg.FeatureActive(segID, SegLvlRefFrame) {
		return [2]RefFrame{RefFrame(h.Seg.FeatureData[segID][SegLvlRefFrame]), RefNone}
	}

	mode := h.ReferenceMode
	if mode == ReferenceModeSelect {
		ctx := tc.referenceModeContext()
		bit := tc.bd.ReadBit(fc.CompInter[ctx])
		if tc.counts != nil {
			tc.counts.compInter[ctx][bit]++
		}
		mode = ReferenceMode(bit)
	}

	var refs [2]RefFrame
	if mode == CompoundReference {
		idx := b2i(h.RefSignBias[h.CompFixedRef])
		ctx := tc.compRefContext()
		bit := tc.bd.ReadBit(fc.CompRef[ctx])
		if tc.counts != nil {
			tc.counts.compRef[ctx][bit]++
		}
		refs[idx] = h.CompFixedRef
		refs[1-idx] = h.CompVarRef[bit]
		return refs
	}

	refs[1] = RefNone
	ctx := tc.singleRefP1Context()
	bit := tc.bd.ReadBit(fc.SingleRef[ctx][0])
	if tc.counts != nil {
		tc.counts.singleRef[ctx][0][bit]++
	}
	if bit == 0 {
		refs[0] = RefLast
		return refs
	}
	ctx = tc.singleRefP2Context()
	bit = tc.bd.ReadBit(fc.SingleRef[ctx][1])
	if tc.counts != nil {
		tc.counts.singleRef[ctx][1][bit]++
	}
	refs[0] = RefGolden
	if bit != 0 {
		refs[0] = RefAltRef
	}
	return refs
}
