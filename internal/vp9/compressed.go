package vp9

import (
	"github.com/pkg/errors"

	"github.com/thesyncim/govp9/internal/boolcoder"
)

// readCompressedHeader applies the compressed header to fc and fills
// the frame-level fields it codes into h.
func readCompressedHeader(data []byte, h *FrameHeader, fc *FrameProbs) error {
	bd := boolcoder.NewDecoder(data)
	if err := bd.Err(); err != nil {
		return errors.Wrap(ErrCorruptHeader, err.Error())
	}

	h.TxMode = readTxMode(bd, h.Quant.Lossless)
	if h.TxMode == TxModeSelect {
		for i := range fc.Tx8 {
			diffUpdateAll(bd, fc.Tx8[i][:])
		}
		for i := range fc.Tx16 {
			diffUpdateAll(bd, fc.Tx16[i][:])
		}
		for i := range fc.Tx32 {
			diffUpdateAll(bd, fc.Tx32[i][:])
		}
	}
	readCoefProbs(bd, fc, h.TxMode)
	diffUpdateAll(bd, fc.Skip[:])

	if !h.IntraFrame() {
		for i := range fc.InterMode {
			diffUpdateAll(bd, fc.InterMode[i][:])
		}
		if h.InterpFilter == FilterSwitchable {
			for i := range fc.InterpFilter {
				diffUpdateAll(bd, fc.InterpFilter[i][:])
			}
		}
		diffUpdateAll(bd, fc.IsInter[:])

		h.ReferenceMode = readReferenceMode(bd, h)
		if h.ReferenceMode != SingleReference {
			h.setupCompoundReference()
		}
		if h.ReferenceMode == ReferenceModeSelect {
			diffUpdateAll(bd, fc.CompInter[:])
		}
		if h.ReferenceMode != CompoundReference {
			for i := range fc.SingleRef {
				diffUpdateAll(bd, fc.SingleRef[i][:])
			}
		}
		if h.ReferenceMode != SingleReference {
			diffUpdateAll(bd, fc.CompRef[:])
		}

		for i := range fc.YMode {
			diffUpdateAll(bd, fc.YMode[i][:])
		}
		for i := range fc.Partition {
			diffUpdateAll(bd, fc.Partition[i][:])
		}
		readMVProbs(bd, &fc.MV, h.AllowHighPrecisionMV)
	}

	if err := bd.Err(); err != nil {
		return errors.Wrap(ErrCorruptHeader, err.Error())
	}
	return nil
}

func readTxMode(bd *boolcoder.Decoder, lossless bool) TxMode {
	if lossless {
		return Only4x4
	}
	m := TxMode(bd.ReadLiteral(2))
	if m == Allow32x32 {
		m += TxMode(bd.ReadBitEq())
	}
	return m
}

func readCoefProbs(bd *boolcoder.Decoder, fc *FrameProbs, mode TxMode) {
	maxTx := txModeToBiggestTxSize[mode]
	for tx := Tx4x4; tx <= maxTx; tx++ {
		if bd.ReadBitEq() == 0 {
			continue
		}
		p := &fc.Coef[tx]
		for i := range p {
			for j := range p[i] {
				for band := range p[i][j] {
					ctxs := coefContexts
					if band == 0 {
						ctxs = 3
					}
					for c := 0; c < ctxs; c++ {
						diffUpdateAll(bd, p[i][j][band][c][:])
					}
				}
			}
		}
	}
}

// compoundAllowed reports whether the references point in different
// temporal directions.
func (h *FrameHeader) compoundAllowed() bool {
	for i := RefGolden; i <= RefAltRef; i++ {
		if h.RefSignBias[i] != h.RefSignBias[RefLast] {
			return true
		}
	}
	return false
}

func readReferenceMode(bd *boolcoder.Decoder, h *FrameHeader) ReferenceMode {
	if !h.compoundAllowed() || bd.ReadBitEq() == 0 {
		return SingleReference
	}
	if bd.ReadBitEq() != 0 {
		return ReferenceModeSelect
	}
	return CompoundReference
}

// setupCompoundReference picks the reference whose sign bias differs from
// the other two as the fixed compound reference.
func (h *FrameHeader) setupCompoundReference() {
	sb := &h.RefSignBias
	switch {
	case sb[RefLast] == sb[RefGolden]:
		h.CompFixedRef = RefAltRef
		h.CompVarRef = [2]RefFrame{RefLast, RefGolden}
	case sb[RefLast] == sb[RefAltRef]:
		h.CompFixedRef = RefGolden
		h.CompVarRef = [2]RefFrame{RefLast, RefAltRef}
	default:
		h.CompFixedRef = RefLast
		h.CompVarRef = [2]RefFrame{RefGolden, RefAltRef}
	}
}

func readMVProbs(bd *boolcoder.Decoder, p *MVProbs, allowHP bool) {
	updateMVProbs(bd, p.Joints[:])
	for i := range p.Comps {
		c := &p.Comps[i]
		updateMVProb(bd, &c.Sign)
		updateMVProbs(bd, c.Classes[:])
		updateMVProbs(bd, c.Class0[:])
		updateMVProbs(bd, c.Bits[:])
	}
	for i := range p.Comps {
		c := &p.Comps[i]
		for j := range c.Class0FP {
			updateMVProbs(bd, c.Class0FP[j][:])
		}
		updateMVProbs(bd, c.FP[:])
	}
	if !allowHP {
		return
	}
	for i := range p.Comps {
		c := &p.Comps[i]
		updateMVProb(bd, &c.Class0HP)
		updateMVProb(bd, &c.HP)
	}
}
