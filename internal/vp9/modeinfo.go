package vp9

import "github.com/thesyncim/govp9/internal/mv"

// ModeInfo is the decoded syntax of one coding block. Inter is nil for
// intra blocks.
type ModeInfo struct {
	BlockSize      BlockSize
	SegmentID      uint8
	SegIDPredicted bool
	Skip           bool
	TxSize         TxSize

	// YMode is the luma mode; for blocks below 8x8 it repeats the mode of
	// the last 4x4 sub-block. SubModes holds the mode of each 4x4
	// sub-block in raster order and equals YMode everywhere for larger
	// blocks. Inter blocks hold inter modes here.
	YMode    PredictionMode
	SubModes [4]PredictionMode
	UVMode   PredictionMode

	Inter *InterInfo
}

// InterInfo is the motion of an inter block. MV[b][i] is the vector of
// 4x4 sub-block b for reference i; all four entries are equal for blocks
// of 8x8 and above.
type InterInfo struct {
	RefFrame [2]RefFrame
	Filter   InterpFilter
	MV       [4][2]mv.MV
}

// IsInter reports whether the block is inter predicted.
func (mi *ModeInfo) IsInter() bool {
	return mi.Inter != nil
}

// IsCompound reports whether the block predicts from two references.
func (mi *ModeInfo) IsCompound() bool {
	return mi.Inter != nil && mi.Inter.RefFrame[1] > RefIntra
}

func (mi *ModeInfo) ref(i int) RefFrame {
	if mi.Inter == nil {
		if i == 0 {
			return RefIntra
		}
		return RefNone
	}
	return mi.Inter.RefFrame[i]
}

func (mi *ModeInfo) filter() int {
	if mi.Inter == nil {
		return numSwitchableFilters
	}
	return int(mi.Inter.Filter)
}

// readModeInfo decodes the mode info of the block in tc.blk.
func (tc *TileContext) readModeInfo() (*ModeInfo, error) {
	mi := &ModeInfo{BlockSize: tc.blk.bsize}
	if tc.dc.Header.IntraFrame() {
		tc.readIntraFrameModeInfo(mi)
		return mi, nil
	}
	return mi, tc.readInterFrameModeInfo(mi)
}

func (tc *TileContext) readIntraFrameModeInfo(mi *ModeInfo) {
	b := &tc.blk
	mi.SegmentID = tc.readIntraSegmentID()
	mi.Skip = tc.readSkip(mi.SegmentID)
	mi.TxSize = tc.readTxSize(mi, true)

	kfProbs := func(block int) []uint8 {
		return kfYModeProbs[aboveBlockMode(mi, b.above, block)][leftBlockMode(mi, b.left, block)][:]
	}
	tc.readSubModes(mi, func(block int) PredictionMode {
		return PredictionMode(tc.bd.ReadTree(intraModeTree, kfProbs(block)))
	})
	mi.UVMode = PredictionMode(tc.bd.ReadTree(intraModeTree, kfUVModeProbs[mi.YMode][:]))
}

// readSubModes fills the luma modes of mi, reading one mode per
// prediction unit: four for 4x4, two for 4x8 and 8x4, one otherwise.
func (tc *TileContext) readSubModes(mi *ModeInfo, read func(block int) PredictionMode) {
	switch mi.BlockSize {
	case Block4x4:
		for i := range mi.SubModes {
			mi.SubModes[i] = read(i)
		}
	case Block4x8:
		mi.SubModes[0] = read(0)
		mi.SubModes[2] = mi.SubModes[0]
		mi.SubModes[1] = read(1)
		mi.SubModes[3] = mi.SubModes[1]
	case Block8x4:
		mi.SubModes[0] = read(0)
		mi.SubModes[1] = mi.SubModes[0]
		mi.SubModes[2] = read(2)
		mi.SubModes[3] = mi.SubModes[2]
	default:
		m := read(0)
		mi.SubModes = [4]PredictionMode{m, m, m, m}
	}
	mi.YMode = mi.SubModes[3]
}

// aboveBlockMode is the luma mode above 4x4 sub-block b: from the block
// above for the top row, else from this block.
func aboveBlockMode(cur, above *ModeInfo, b int) PredictionMode {
	if b == 0 || b == 1 {
		if above == nil || above.IsInter() {
			return DCPred
		}
		return above.SubModes[b+2]
	}
	return cur.SubModes[b-2]
}

// leftBlockMode is the luma mode left of 4x4 sub-block b.
func leftBlockMode(cur, left *ModeInfo, b int) PredictionMode {
	if b == 0 || b == 2 {
		if left == nil || left.IsInter() {
			return DCPred
		}
		return left.SubModes[b+1]
	}
	return cur.SubModes[b-1]
}

func (tc *TileContext) readInterFrameModeInfo(mi *ModeInfo) error {
	mi.SegmentID = tc.readInterSegmentID(mi)
	mi.Skip = tc.readSkip(mi.SegmentID)
	inter := tc.readIsInter(mi.SegmentID)
	mi.TxSize = tc.readTxSize(mi, !mi.Skip || !inter)
	if inter {
		return tc.readInterBlockModeInfo(mi)
	}
	tc.readIntraBlockModeInfo(mi)
	return nil
}

func (tc *TileContext) readIntraBlockModeInfo(mi *ModeInfo) {
	fc := &tc.dc.Probs
	group := 0
	if mi.BlockSize >= Block8x8 {
		group = int(sizeGroup[mi.BlockSize])
	}
	tc.readSubModes(mi, func(int) PredictionMode {
		m := PredictionMode(tc.bd.ReadTree(intraModeTree, fc.YMode[group][:]))
		if tc.counts != nil {
			tc.counts.yMode[group][m]++
		}
		return m
	})
	mi.UVMode = PredictionMode(tc.bd.ReadTree(intraModeTree, fc.UVMode[mi.YMode][:]))
	if tc.counts != nil {
		tc.counts.uvMode[mi.YMode][mi.UVMode]++
	}
}

// segmentID reads a segment id from the segmentation tree.
func (tc *TileContext) segmentID() uint8 {
	return uint8(tc.bd.ReadTree(segmentTree, tc.dc.Header.Seg.TreeProbs[:]))
}

func (tc *TileContext) setSegmentID(id uint8) {
	b, dc := &tc.blk, tc.dc
	for y := 0; y < b.yMis; y++ {
		row := dc.segMap[(b.miRow+y)*dc.miCols+b.miCol:]
		for x := 0; x < b.xMis; x++ {
			row[x] = id
		}
	}
}

func (tc *TileContext) copySegmentID() {
	b, dc := &tc.blk, tc.dc
	for y := 0; y < b.yMis; y++ {
		off := (b.miRow+y)*dc.miCols + b.miCol
		copy(dc.segMap[off:off+b.xMis], dc.prevSegMap[off:off+b.xMis])
	}
}

// predictedSegmentID is the smallest id the previous frame's map holds
// under the block.
func (tc *TileContext) predictedSegmentID() uint8 {
	b, dc := &tc.blk, tc.dc
	id := uint8(maxSegments - 1)
	for y := 0; y < b.yMis; y++ {
		off := (b.miRow+y)*dc.miCols + b.miCol
		for _, v := range dc.prevSegMap[off : off+b.xMis] {
			id = min(id, v)
		}
	}
	return id
}

func (tc *TileContext) readIntraSegmentID() uint8 {
	seg := &tc.dc.Header.Seg
	if !seg.Enabled {
		return 0
	}
	if !seg.UpdateMap {
		tc.copySegmentID()
		return 0
	}
	id := tc.segmentID()
	tc.setSegmentID(id)
	return id
}

func (tc *TileContext) readInterSegmentID(mi *ModeInfo) uint8 {
	seg := &tc.dc.Header.Seg
	if !seg.Enabled {
		return 0
	}
	pred := tc.predictedSegmentID()
	if !seg.UpdateMap {
		tc.copySegmentID()
		return pred
	}
	var id uint8
	if seg.TemporalUpdate {
		b := &tc.blk
		ctx := 0
		if b.above != nil && b.above.SegIDPredicted {
			ctx++
		}
		if b.left != nil && b.left.SegIDPredicted {
			ctx++
		}
		mi.SegIDPredicted = tc.bd.ReadBool(seg.PredProbs[ctx])
		if mi.SegIDPredicted {
			id = pred
		} else {
			id = tc.segmentID()
		}
	} else {
		id = tc.segmentID()
	}
	tc.setSegmentID(id)
	return id
}

func (tc *TileContext) readSkip(segID uint8) bool {
	if tc.dc.Header.Seg.FeatureActive(segID, SegLvlSkip) {
		return true
	}
	b := &tc.blk
	ctx := 0
	if b.above != nil && b.above.Skip {
		ctx++
	}
	if b.left != nil && b.left.Skip {
		ctx++
	}
	skip := tc.bd.ReadBit(tc.dc.Probs.Skip[ctx])
	if tc.counts != nil {
		tc.counts.skip[ctx][skip]++
	}
	return skip != 0
}

// txSizeContext is 1 when the neighbors' transforms are together larger
// than the largest this block allows. Skipped neighbors count as the
// largest size.
func (tc *TileContext) txSizeContext(maxTx TxSize) int {
	b := &tc.blk
	aboveCtx, leftCtx := int(maxTx), int(maxTx)
	if b.above != nil && !b.above.Skip {
		aboveCtx = int(b.above.TxSize)
	}
	if b.left != nil && !b.left.Skip {
		leftCtx = int(b.left.TxSize)
	}
	if b.left == nil {
		leftCtx = aboveCtx
	}
	if b.above == nil {
		aboveCtx = leftCtx
	}
	if aboveCtx+leftCtx > int(maxTx) {
		return 1
	}
	return 0
}

func (tc *TileContext) readTxSize(mi *ModeInfo, allowSelect bool) TxSize {
	h := tc.dc.Header
	maxTx := maxTxSize[mi.BlockSize]
	if !allowSelect || h.TxMode != TxModeSelect || mi.BlockSize < Block8x8 {
		return min(maxTx, txModeToBiggestTxSize[h.TxMode])
	}
	ctx := tc.txSizeContext(maxTx)
	probs := tc.dc.Probs.txProbs(maxTx, ctx)
	tx := TxSize(tc.bd.ReadBit(probs[0]))
	if tx != Tx4x4 && maxTx >= Tx16x16 {
		tx += TxSize(tc.bd.ReadBit(probs[1]))
		if tx != Tx8x8 && maxTx >= Tx32x32 {
			tx += TxSize(tc.bd.ReadBit(probs[2]))
		}
	}
	if c := tc.counts; c != nil {
		switch maxTx {
		case Tx8x8:
			c.tx8[ctx][tx]++
		case Tx16x16:
			c.tx16[ctx][tx]++
		default:
			c.tx32[ctx][tx]++
		}
	}
	return tx
}

func (tc *TileContext) isInterContext() int {
	b := &tc.blk
	switch {
	case b.above != nil && b.left != nil:
		ai, li := !b.above.IsInter(), !b.left.IsInter()
		if ai && li {
			return 3
		}
		if ai || li {
			return 1
		}
		return 0
	case b.above != nil:
		return 2 * b2i(!b.above.IsInter())
	case b.left != nil:
		return 2 * b2i(!b.left.IsInter())
	}
	return 0
}

func (tc *TileContext) readIsInter(segID uint8) bool {
	seg := &tc.dc.Header.Seg
	if seg.FeatureActive(segID, SegLvlRefFrame) {
		return RefFrame(seg.FeatureData[segID][SegLvlRefFrame]) != RefIntra
	}
	ctx := tc.isInterContext()
	v := tc.bd.ReadBit(tc.dc.Probs.IsInter[ctx])
	if tc.counts != nil {
		tc.counts.isInter[ctx][v]++
	}
	return v != 0
}

func (tc *TileContext) interpFilterContext() int {
	b := &tc.blk
	leftType, aboveType := numSwitchableFilters, numSwitchableFilters
	if b.left != nil {
		leftType = b.left.filter()
	}
	if b.above != nil {
		aboveType = b.above.filter()
	}
	switch {
	case leftType == aboveType:
		return leftType
	case leftType == numSwitchableFilters:
		return aboveType
	case aboveType == numSwitchableFilters:
		return leftType
	}
	return numSwitchableFilters
}

func (tc *TileContext) readInterpFilter() InterpFilter {
	h := tc.dc.Header
	if h.InterpFilter != FilterSwitchable {
		return h.InterpFilter
	}
	ctx := tc.interpFilterContext()
	f := tc.bd.ReadTree(switchableInterpTree, tc.dc.Probs.InterpFilter[ctx][:])
	if tc.counts != nil {
		tc.counts.interpFilter[ctx][f]++
	}
	return InterpFilter(f)
}

func (tc *TileContext) readInterMode(ctx int) PredictionMode {
	m := tc.bd.ReadTree(interModeTree, tc.dc.Probs.InterMode[ctx][:])
	if tc.counts != nil {
		tc.counts.interMode[ctx][m]++
	}
	return NearestMV + PredictionMode(m)
}

func (tc *TileContext) readInterBlockModeInfo(mi *ModeInfo) error {
	h := tc.dc.Header
	b := &tc.blk
	in := &InterInfo{}
	mi.Inter = in
	in.RefFrame = tc.readRefFrames(mi.SegmentID)
	compound := in.RefFrame[1] > RefIntra
	nrefs := 1 + b2i(compound)

	var lists [2]mv.List
	var modeCtx int
	for i := 0; i < nrefs; i++ {
		lists[i], modeCtx = tc.findMVRefs(mi, in.RefFrame[i], -1)
		if tc.mvTr != nil {
			tc.mvTr.TraceMVCandidates(b.miRow, b.miCol, in.RefFrame[i], lists[i], modeCtx)
		}
	}

	if h.Seg.FeatureActive(mi.SegmentID, SegLvlSkip) {
		mi.YMode = ZeroMV
		if mi.BlockSize < Block8x8 {
			return ErrInvalidSegmentFeature
		}
	} else if mi.BlockSize >= Block8x8 {
		mi.YMode = tc.readInterMode(modeCtx)
	}

	var nearest, near [2]mv.MV
	for i := 0; i < nrefs; i++ {
		nearest[i], near[i] = tc.findBestRefMVs(lists[i])
	}
	in.Filter = tc.readInterpFilter()

	if mi.BlockSize >= Block8x8 {
		mi.SubModes = [4]PredictionMode{mi.YMode, mi.YMode, mi.YMode, mi.YMode}
		v, err := tc.assignMV(mi.YMode, in.RefFrame, nrefs, nearest, nearest, near)
		if err != nil {
			return err
		}
		in.MV = [4][2]mv.MV{v, v, v, v}
		return nil
	}

	w4, h4 := int(num4x4Wide[mi.BlockSize]), int(num4x4High[mi.BlockSize])
	for y := 0; y < 2; y += h4 {
		for x := 0; x < 2; x += w4 {
			j := y*2 + x
			bmode := tc.readInterMode(modeCtx)
			var subNearest, subNear [2]mv.MV
			if bmode == NearestMV || bmode == NearMV {
				for i := 0; i < nrefs; i++ {
					subNearest[i], subNear[i] = tc.appendSub8x8MVs(mi, j, i)
				}
			}
			v, err := tc.assignMV(bmode, in.RefFrame, nrefs, nearest, subNearest, subNear)
			if err != nil {
				return err
			}
			in.MV[j] = v
			mi.SubModes[j] = bmode
			if h4 == 2 {
				in.MV[j+2] = v
				mi.SubModes[j+2] = bmode
			}
			if w4 == 2 {
				in.MV[j+1] = v
				mi.SubModes[j+1] = bmode
			}
		}
	}
	mi.YMode = mi.SubModes[3]
	return nil
}

// assignMV resolves the vectors of one prediction unit. NEWMV adds a
// coded difference to refMV.
func (tc *TileContext) assignMV(mode PredictionMode, refs [2]RefFrame, nrefs int, refMV, nearest, near [2]mv.MV) ([2]mv.MV, error) {
	var out [2]mv.MV
	for i := 0; i < nrefs; i++ {
		switch mode {
		case NewMV:
			v, err := tc.readMV(refMV[i])
			if err != nil {
				return out, err
			}
			out[i] = v
		case NearestMV:
			out[i] = nearest[i]
		case NearMV:
			out[i] = near[i]
		case ZeroMV:
			out[i] = mv.Zero
		}
		out[i] = out[i].WithRef(int(refs[i]))
	}
	return out, nil
}
