package vp9

// CodedBlock is one leaf of the partition tree: a block's mode info and
// its coefficients. Residual is nil for skipped blocks.
type CodedBlock struct {
	MiRow    int
	MiCol    int
	Mode     *ModeInfo
	Residual *Residual
}

// CodedSuperBlock is the ordered leaves of one 64x64 partition tree.
type CodedSuperBlock struct {
	MiRow  int
	MiCol  int
	Blocks []CodedBlock
}

func (tc *TileContext) readSuperBlock(miRow, miCol int) (CodedSuperBlock, error) {
	sb := CodedSuperBlock{MiRow: miRow, MiCol: miCol}
	err := tc.readPartition(miRow, miCol, Block64x64, &sb.Blocks)
	return sb, err
}

// readPartition decodes the partition of a square block and everything
// below it. Quadrants outside the frame are skipped.
func (tc *TileContext) readPartition(miRow, miCol int, bsize BlockSize, out *[]CodedBlock) error {
	dc := tc.dc
	if miRow >= dc.miRows || miCol >= dc.miCols {
		return nil
	}
	n8 := int(num8x8Wide[bsize])
	hbs := n8 >> 1
	hasRows := miRow+hbs < dc.miRows
	hasCols := miCol+hbs < dc.miCols

	p := tc.readPartitionType(miRow, miCol, bsize, hasRows, hasCols)
	tc.tracer.TracePartition(miRow, miCol, bsize, p)
	subsize := subsizeLookup[p][bsize]

	var err error
	if hbs == 0 {
		err = tc.readBlock(miRow, miCol, subsize, out)
	} else {
		switch p {
		case PartitionNone:
			err = tc.readBlock(miRow, miCol, subsize, out)
		case PartitionHorz:
			err = tc.readBlock(miRow, miCol, subsize, out)
			if err == nil && hasRows {
				err = tc.readBlock(miRow+hbs, miCol, subsize, out)
			}
		case PartitionVert:
			err = tc.readBlock(miRow, miCol, subsize, out)
			if err == nil && hasCols {
				err = tc.readBlock(miRow, miCol+hbs, subsize, out)
			}
		case PartitionSplit:
			for i := 0; i < 4 && err == nil; i++ {
				err = tc.readPartition(miRow+(i>>1)*hbs, miCol+(i&1)*hbs, subsize, out)
			}
		}
	}
	if err != nil {
		return err
	}

	if bsize == Block8x8 || p != PartitionSplit {
		ctx := partitionContextLookup[subsize]
		above := tc.dc.abovePartition[miCol : miCol+n8]
		left := tc.leftPartition[miRow&(sbMiSize-1):][:n8]
		for i := range above {
			above[i] = ctx.above
			left[i] = ctx.left
		}
	}
	return nil
}

// readPartitionType reads the partition symbol. A block crossing the
// bottom edge can only be split or cut horizontally, one crossing the
// right edge only split or cut vertically, and one crossing both is
// always split.
func (tc *TileContext) readPartitionType(miRow, miCol int, bsize BlockSize, hasRows, hasCols bool) PartitionType {
	bsl := int(bWidthLog2[bsize]) - 1
	above := int(tc.dc.abovePartition[miCol]>>bsl) & 1
	left := int(tc.leftPartition[miRow&(sbMiSize-1)]>>bsl) & 1
	ctx := left*2 + above + bsl*4

	var probs []uint8
	if tc.dc.Header.IntraFrame() {
		probs = kfPartitionProbs[ctx][:]
	} else {
		probs = tc.dc.Probs.Partition[ctx][:]
	}

	var p PartitionType
	switch {
	case hasRows && hasCols:
		p = PartitionType(tc.bd.ReadTree(partitionTree, probs))
	case hasCols:
		p = PartitionHorz
		if tc.bd.ReadBool(probs[1]) {
			p = PartitionSplit
		}
	case hasRows:
		p = PartitionVert
		if tc.bd.ReadBool(probs[2]) {
			p = PartitionSplit
		}
	default:
		p = PartitionSplit
	}
	if tc.counts != nil {
		tc.counts.partition[ctx][p]++
	}
	return p
}

// setBlock points tc.blk at a block and resolves its neighbors.
func (tc *TileContext) setBlock(miRow, miCol int, bsize BlockSize) {
	dc := tc.dc
	b := &tc.blk
	*b = blockPos{
		miRow: miRow,
		miCol: miCol,
		bsize: bsize,
		bw:    int(num8x8Wide[bsize]),
		bh:    int(num8x8High[bsize]),
	}
	b.xMis = min(b.bw, dc.miCols-miCol)
	b.yMis = min(b.bh, dc.miRows-miRow)
	b.toLeft = -(miCol * 8 * 8)
	b.toRight = (dc.miCols - b.bw - miCol) * 8 * 8
	b.toTop = -(miRow * 8 * 8)
	b.toBottom = (dc.miRows - b.bh - miRow) * 8 * 8
	if miRow > 0 {
		b.above = dc.grid[(miRow-1)*dc.miCols+miCol]
	}
	if miCol > tc.miColStart {
		b.left = dc.grid[miRow*dc.miCols+miCol-1]
	}
}

// readBlock decodes one coding block and records it in the mode info
// grid and the motion field.
func (tc *TileContext) readBlock(miRow, miCol int, bsize BlockSize, out *[]CodedBlock) error {
	dc := tc.dc
	h := dc.Header
	b := &tc.blk
	tc.setBlock(miRow, miCol, bsize)

	ssx, ssy := h.Color.SubsamplingX, h.Color.SubsamplingY
	if bsize >= Block8x8 && (ssx != 0 || ssy != 0) && ssSizeLookup[bsize][ssx][ssy] == BlockInvalid {
		return ErrInvalidBlockSize
	}

	mi, err := tc.readModeInfo()
	if err != nil {
		return err
	}

	var res *Residual
	if mi.Skip {
		tc.resetSkipContext()
	} else {
		var eobTotal int
		res, eobTotal = tc.readResidual(mi)
		if mi.IsInter() && bsize >= Block8x8 && eobTotal == 0 {
			mi.Skip = true
		}
	}

	ref := mvRef{ref: [2]RefFrame{RefIntra, RefNone}}
	if mi.Inter != nil {
		ref.ref = mi.Inter.RefFrame
		ref.mv = mi.Inter.MV[3]
	}
	for y := 0; y < b.yMis; y++ {
		row := (miRow+y)*dc.miCols + miCol
		for x := 0; x < b.xMis; x++ {
			dc.grid[row+x] = mi
			dc.mvs[row+x] = ref
		}
	}

	tc.tracer.TraceBlock(miRow, miCol, mi)
	*out = append(*out, CodedBlock{MiRow: miRow, MiCol: miCol, Mode: mi, Residual: res})
	return nil
}
