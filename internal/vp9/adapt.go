package vp9

import "github.com/thesyncim/govp9/util"

const (
	coefCountSat            = 24
	coefMaxUpdateFactor     = 112
	coefMaxUpdateFactorKey  = 112
	coefMaxUpdateFactorPost = 128 // first frame after a key frame
	modeMVCountSat          = 20
)

// countToUpdateFactor is 128*count/modeMVCountSat.
var countToUpdateFactor = [modeMVCountSat + 1]uint32{
	0, 6, 12, 19, 25, 32, 38, 44, 51, 57, 64,
	70, 76, 83, 89, 96, 102, 108, 115, 121, 128,
}

var mvClass0Tree = []int8{0, -1}

func getProb(num, den uint32) uint8 {
	p := (uint64(num)*256 + uint64(den>>1)) / uint64(den)
	return uint8(util.Clamp(p, 1, 255))
}

func weightedProb(p1, p2 uint8, factor uint32) uint8 {
	return uint8((uint32(p1)*(256-factor) + uint32(p2)*factor + 128) >> 8)
}

func mergeProbs(pre uint8, ct [2]uint32, countSat, maxUpdateFactor uint32) uint8 {
	den := ct[0] + ct[1]
	prob := uint8(128)
	if den != 0 {
		prob = getProb(ct[0], den)
	}
	count := min(den, countSat)
	return weightedProb(pre, prob, maxUpdateFactor*count/countSat)
}

func modeMVMergeProbs(pre uint8, ct [2]uint32) uint8 {
	den := ct[0] + ct[1]
	if den == 0 {
		return pre
	}
	count := min(den, modeMVCountSat)
	return weightedProb(pre, getProb(ct[0], den), countToUpdateFactor[count])
}

// treeMergeProbs adapts the node probabilities of tree from the leaf
// counts and returns the total count under node i.
func treeMergeProbs(tree []int8, pre, probs []uint8, counts []uint32, i int) uint32 {
	branch := func(n int8) uint32 {
		if n <= 0 {
			return counts[-n]
		}
		return treeMergeProbs(tree, pre, probs, counts, int(n))
	}
	l := branch(tree[i])
	r := branch(tree[i+1])
	probs[i>>1] = modeMVMergeProbs(pre[i>>1], [2]uint32{l, r})
	return l + r
}

func adaptTree(tree []int8, pre, probs []uint8, counts []uint32) {
	treeMergeProbs(tree, pre, probs, counts, 0)
}

// adaptProbs merges the frame's symbol counts into the probabilities the
// frame started from.
func (dc *DecodingContext) adaptProbs() {
	h := dc.Header
	pre := &dc.savedCtx[h.FrameContextIdx]
	dc.adaptCoefProbs(pre)
	if !h.IntraFrame() {
		dc.adaptModeProbs(pre)
		dc.adaptMVProbs(pre)
	}
}

func (dc *DecodingContext) adaptCoefProbs(pre *FrameProbs) {
	factor := uint32(coefMaxUpdateFactor)
	switch {
	case dc.Header.IntraFrame():
		factor = coefMaxUpdateFactorKey
	case dc.st.lastFrameType == KeyFrame:
		factor = coefMaxUpdateFactorPost
	}
	cnt := dc.counts
	for t := range dc.Probs.Coef {
		for i := range dc.Probs.Coef[t] {
			for j := range dc.Probs.Coef[t][i] {
				for k := range dc.Probs.Coef[t][i][j] {
					for l := range dc.Probs.Coef[t][i][j][k] {
						c := &cnt.coef[t][i][j][k][l]
						eob := cnt.eobBranch[t][i][j][k][l]
						n0, n1, n2, neob := c[coefCountZero], c[coefCountOne], c[coefCountMore], c[coefCountEOB]
						branch := [modelNodes][2]uint32{
							{neob, eob - neob},
							{n0, n1 + n2},
							{n1, n2},
						}
						p := &dc.Probs.Coef[t][i][j][k][l]
						pp := &pre.Coef[t][i][j][k][l]
						for m := 0; m < modelNodes; m++ {
							p[m] = mergeProbs(pp[m], branch[m], coefCountSat, factor)
						}
					}
				}
			}
		}
	}
}

func (dc *DecodingContext) adaptModeProbs(pre *FrameProbs) {
	fc, cnt := &dc.Probs, dc.counts
	for i := range fc.IsInter {
		fc.IsInter[i] = modeMVMergeProbs(pre.IsInter[i], cnt.isInter[i])
	}
	for i := range fc.CompInter {
		fc.CompInter[i] = modeMVMergeProbs(pre.CompInter[i], cnt.compInter[i])
	}
	for i := range fc.CompRef {
		fc.CompRef[i] = modeMVMergeProbs(pre.CompRef[i], cnt.compRef[i])
	}
	for i := range fc.SingleRef {
		for j := range fc.SingleRef[i] {
			fc.SingleRef[i][j] = modeMVMergeProbs(pre.SingleRef[i][j], cnt.singleRef[i][j])
		}
	}
	for i := range fc.InterMode {
		adaptTree(interModeTree, pre.InterMode[i][:], fc.InterMode[i][:], cnt.interMode[i][:])
	}
	for i := range fc.YMode {
		adaptTree(intraModeTree, pre.YMode[i][:], fc.YMode[i][:], cnt.yMode[i][:])
	}
	for i := range fc.UVMode {
		adaptTree(intraModeTree, pre.UVMode[i][:], fc.UVMode[i][:], cnt.uvMode[i][:])
	}
	for i := range fc.Partition {
		adaptTree(partitionTree, pre.Partition[i][:], fc.Partition[i][:], cnt.partition[i][:])
	}
	if dc.Header.InterpFilter == FilterSwitchable {
		for i := range fc.InterpFilter {
			adaptTree(switchableInterpTree, pre.InterpFilter[i][:], fc.InterpFilter[i][:], cnt.interpFilter[i][:])
		}
	}
	if dc.Header.TxMode == TxModeSelect {
		for i := 0; i < txSizeContexts; i++ {
			c8, c16, c32 := &cnt.tx8[i], &cnt.tx16[i], &cnt.tx32[i]
			fc.Tx8[i][0] = modeMVMergeProbs(pre.Tx8[i][0], [2]uint32{c8[0], c8[1]})

			fc.Tx16[i][0] = modeMVMergeProbs(pre.Tx16[i][0], [2]uint32{c16[0], c16[1] + c16[2]})
			fc.Tx16[i][1] = modeMVMergeProbs(pre.Tx16[i][1], [2]uint32{c16[1], c16[2]})

			fc.Tx32[i][0] = modeMVMergeProbs(pre.Tx32[i][0], [2]uint32{c32[0], c32[1] + c32[2] + c32[3]})
			fc.Tx32[i][1] = modeMVMergeProbs(pre.Tx32[i][1], [2]uint32{c32[1], c32[2] + c32[3]})
			fc.Tx32[i][2] = modeMVMergeProbs(pre.Tx32[i][2], [2]uint32{c32[2], c32[3]})
		}
	}
	for i := range fc.Skip {
		fc.Skip[i] = modeMVMergeProbs(pre.Skip[i], cnt.skip[i])
	}
}

func (dc *DecodingContext) adaptMVProbs(pre *FrameProbs) {
	fc, cnt := &dc.Probs.MV, dc.counts
	adaptTree(mvJointTree, pre.MV.Joints[:], fc.Joints[:], cnt.mvJoints[:])
	for i := range fc.Comps {
		comp, pc, c := &fc.Comps[i], &pre.MV.Comps[i], &cnt.mvComps[i]
		comp.Sign = modeMVMergeProbs(pc.Sign, c.sign)
		adaptTree(mvClassTree, pc.Classes[:], comp.Classes[:], c.classes[:])
		adaptTree(mvClass0Tree, pc.Class0[:], comp.Class0[:], c.class0[:])
		for j := range comp.Bits {
			comp.Bits[j] = modeMVMergeProbs(pc.Bits[j], c.bits[j])
		}
		for j := range comp.Class0FP {
			adaptTree(mvFPTree, pc.Class0FP[j][:], comp.Class0FP[j][:], c.class0FP[j][:])
		}
		adaptTree(mvFPTree, pc.FP[:], comp.FP[:], c.fp[:])
		if dc.Header.AllowHighPrecisionMV {
			comp.Class0HP = modeMVMergeProbs(pc.Class0HP, c.class0HP)
			comp.HP = modeMVMergeProbs(pc.HP, c.hp)
		}
	}
}
