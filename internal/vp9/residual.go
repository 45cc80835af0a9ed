package vp9

// TransformUnit holds the quantized coefficients of one transform block.
// Row and Col are the unit's offset in 4x4 units within its plane of the
// coding block. Coeffs is in raster order, or nil when EOB is 0.
type TransformUnit struct {
	Row    int
	Col    int
	EOB    int
	Coeffs []int32
}

// Residual is the coefficient data of a coding block, by plane. Units
// lying wholly outside the frame are not coded and not listed.
type Residual struct {
	TxSize [3]TxSize
	Planes [3][]TransformUnit
}

// uvTxSize is the chroma transform size of a block, capped by the
// chroma block dimensions.
func uvTxSize(mi *ModeInfo, ssx, ssy int) TxSize {
	if mi.BlockSize < Block8x8 {
		return Tx4x4
	}
	w := int(bWidthLog2[mi.BlockSize]) - ssx
	h := int(bHeightLog2[mi.BlockSize]) - ssy
	return min(mi.TxSize, TxSize(min(w, h)))
}

// planeGeometry returns the plane's subsampling and block size in 4x4
// units. Blocks below 8x8 count as 8x8.
func (tc *TileContext) planeGeometry(plane int) (ssx, ssy, n4w, n4h int) {
	if plane > 0 {
		c := tc.dc.Header.Color
		ssx, ssy = c.SubsamplingX, c.SubsamplingY
	}
	b := &tc.blk
	return ssx, ssy, (b.bw * 2) >> ssx, (b.bh * 2) >> ssy
}

// resetSkipContext clears the nonzero contexts a skipped block covers.
func (tc *TileContext) resetSkipContext() {
	b := &tc.blk
	for plane := 0; plane < 3; plane++ {
		ssx, ssy, n4w, n4h := tc.planeGeometry(plane)
		above := tc.dc.aboveNonzero[plane][(b.miCol*2)>>ssx:]
		left := tc.leftNonzero[plane][((b.miRow&(sbMiSize-1))*2)>>ssy:]
		clear(above[:n4w])
		clear(left[:n4h])
	}
}

// txType picks the transform kernels of a unit, which select its scan.
func (tc *TileContext) txType(mi *ModeInfo, plane int, tx TxSize, row, col int) TxType {
	if plane > 0 || mi.IsInter() || tc.dc.Header.Quant.Lossless || tx == Tx32x32 {
		return DCTDCT
	}
	mode := mi.YMode
	if mi.BlockSize < Block8x8 {
		mode = mi.SubModes[row<<1|col]
	}
	return intraModeToTxType[mode]
}

// readResidual reads the coefficients of every coded transform unit of
// the block in tc.blk and returns them with the total of their
// end-of-block positions.
func (tc *TileContext) readResidual(mi *ModeInfo) (*Residual, int) {
	b := &tc.blk
	res := &Residual{}
	eobTotal := 0
	for plane := 0; plane < 3; plane++ {
		ssx, ssy, n4w, n4h := tc.planeGeometry(plane)
		tx := mi.TxSize
		if plane > 0 {
			tx = uvTxSize(mi, ssx, ssy)
		}
		res.TxSize[plane] = tx
		step := 1 << tx

		maxWide, maxHigh := n4w, n4h
		if b.toRight < 0 {
			maxWide += b.toRight >> (5 + ssx)
		}
		if b.toBottom < 0 {
			maxHigh += b.toBottom >> (5 + ssy)
		}

		above := tc.dc.aboveNonzero[plane][(b.miCol*2)>>ssx:]
		left := tc.leftNonzero[plane][((b.miRow&(sbMiSize-1))*2)>>ssy:]
		var units []TransformUnit
		for row := 0; row < maxHigh; row += step {
			for col := 0; col < maxWide; col += step {
				ctx := nonzeroContext(above[col:col+step]) + nonzeroContext(left[row:row+step])
				so := scanOrders[tx][tc.txType(mi, plane, tx, row, col)]
				coeffs, eob := tc.decodeCoefs(plane, mi.IsInter(), tx, ctx, so)

				setNonzeroContext(above[col:col+step], eob > 0, maxWide-col, b.toRight < 0)
				setNonzeroContext(left[row:row+step], eob > 0, maxHigh-row, b.toBottom < 0)

				tc.tracer.TraceCoeffs(plane, len(units), tx, eob, coeffs)
				units = append(units, TransformUnit{Row: row, Col: col, EOB: eob, Coeffs: coeffs})
				eobTotal += eob
			}
		}
		res.Planes[plane] = units
	}
	return res, eobTotal
}

func nonzeroContext(ctx []uint8) int {
	for _, v := range ctx {
		if v != 0 {
			return 1
		}
	}
	return 0
}

// setNonzeroContext marks the entries a unit covers. Entries past the
// frame edge are cleared when the block crosses it.
func setNonzeroContext(ctx []uint8, nonzero bool, inside int, crossesEdge bool) {
	v := uint8(b2i(nonzero))
	n := len(ctx)
	if nonzero && crossesEdge {
		n = min(n, inside)
	}
	for i := range ctx {
		if i < n {
			ctx[i] = v
		} else {
			ctx[i] = 0
		}
	}
}

// decodeCoefs reads the tokens of one transform unit and returns its
// quantized coefficients and end-of-block position.
func (tc *TileContext) decodeCoefs(plane int, inter bool, tx TxSize, ctx int, so *scanOrder) ([]int32, int) {
	bd := tc.bd
	ptype, ref := b2i(plane > 0), b2i(inter)
	probs := &tc.dc.Probs.Coef[tx][ptype][ref]
	bands := bandTranslate(tx)
	maxEOB := 16 << (tx << 1)
	cache := tc.tokenCache[:maxEOB]

	var coefCounts *[coefBands][coefContexts][4]uint32
	var eobBranch *[coefBands][coefContexts]uint32
	if tc.counts != nil {
		coefCounts = &tc.counts.coef[tx][ptype][ref]
		eobBranch = &tc.counts.eobBranch[tx][ptype][ref]
	}

	var coeffs []int32
	c := 0
	for c < maxEOB {
		band := bands[c]
		p := &probs[band][ctx]
		if eobBranch != nil {
			eobBranch[band][ctx]++
		}
		if bd.ReadBit(p[0]) == 0 {
			if coefCounts != nil {
				coefCounts[band][ctx][coefCountEOB]++
			}
			break
		}

		for bd.ReadBit(p[1]) == 0 {
			if coefCounts != nil {
				coefCounts[band][ctx][coefCountZero]++
			}
			cache[so.scan[c]] = 0
			c++
			if c >= maxEOB {
				if coeffs == nil {
					coeffs = make([]int32, maxEOB)
				}
				return coeffs, c
			}
			ctx = so.coefContext(cache, c)
			band = bands[c]
			p = &probs[band][ctx]
		}

		var token int
		var val int32
		if bd.ReadBit(p[2]) == 0 {
			if coefCounts != nil {
				coefCounts[band][ctx][coefCountOne]++
			}
			token, val = tokenOne, 1
		} else {
			if coefCounts != nil {
				coefCounts[band][ctx][coefCountMore]++
			}
			token = bd.ReadTree(coefConTree, paretoProbs(p[2]))
			val = tc.readTokenValue(token)
		}

		if coeffs == nil {
			coeffs = make([]int32, maxEOB)
		}
		if bd.ReadBitEq() != 0 {
			val = -val
		}
		coeffs[so.scan[c]] = val
		cache[so.scan[c]] = energyClass[token]
		c++
		if c < maxEOB {
			ctx = so.coefContext(cache, c)
		}
	}
	return coeffs, c
}

// readTokenValue returns the magnitude of a token above ONE, reading the
// extra bits of the category tokens most significant first.
func (tc *TileContext) readTokenValue(token int) int32 {
	var extra []uint8
	switch token {
	case tokenTwo, tokenThree, tokenFour:
		return int32(token)
	case tokenCat1:
		extra = cat1Prob
	case tokenCat2:
		extra = cat2Prob
	case tokenCat3:
		extra = cat3Prob
	case tokenCat4:
		extra = cat4Prob
	case tokenCat5:
		extra = cat5Prob
	default:
		extra = cat6Probs(tc.dc.Header.Color.BitDepth)
	}
	var v int32
	for _, p := range extra {
		v = v<<1 | int32(tc.bd.ReadBit(p))
	}
	return catMinVal[token-tokenCat1] + v
}
