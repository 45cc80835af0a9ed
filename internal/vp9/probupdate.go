package vp9

import "github.com/thesyncim/govp9/internal/boolcoder"

// invMapTable maps a decoded delta index to a recentered distance. The
// first twenty entries are the coarse steps 7, 20, ... 254; the rest
// enumerate the remaining values in order, with 253 repeated at the end.
var invMapTable [255]uint8

func init() {
	n := 0
	coarse := make(map[int]bool)
	for v := 7; v <= 254; v += 13 {
		invMapTable[n] = uint8(v)
		coarse[v] = true
		n++
	}
	for v := 1; v <= 253; v++ {
		if !coarse[v] {
			invMapTable[n] = uint8(v)
			n++
		}
	}
	invMapTable[n] = 253
}

func invRecenterNonneg(v, m int) int {
	if v > 2*m {
		return v
	}
	if v&1 != 0 {
		return m - ((v + 1) >> 1)
	}
	return m + (v >> 1)
}

// invRemapProb applies delta index d to probability m and returns a
// probability in [1, 255].
func invRemapProb(d int, m uint8) uint8 {
	v := int(invMapTable[d])
	mm := int(m) - 1
	if mm<<1 <= 255 {
		return uint8(1 + invRecenterNonneg(v, mm))
	}
	return uint8(255 - invRecenterNonneg(v, 255-1-mm))
}

func decodeUniform(bd *boolcoder.Decoder) int {
	const l = 8
	const m = (1 << l) - 191
	v := bd.ReadLiteral(l - 1)
	if v < m {
		return v
	}
	return (v << 1) - m + bd.ReadBitEq()
}

// decodeTermSubexp reads a delta index in [0, 254].
func decodeTermSubexp(bd *boolcoder.Decoder) int {
	if bd.ReadBitEq() == 0 {
		return bd.ReadLiteral(4)
	}
	if bd.ReadBitEq() == 0 {
		return bd.ReadLiteral(4) + 16
	}
	if bd.ReadBitEq() == 0 {
		return bd.ReadLiteral(5) + 32
	}
	return decodeUniform(bd) + 64
}

// diffUpdate conditionally replaces *p with a remapped delta.
func diffUpdate(bd *boolcoder.Decoder, p *uint8) {
	if bd.ReadBool(diffUpdateProb) {
		*p = invRemapProb(decodeTermSubexp(bd), *p)
	}
}

func diffUpdateAll(bd *boolcoder.Decoder, ps []uint8) {
	for i := range ps {
		diffUpdate(bd, &ps[i])
	}
}

// updateMVProb conditionally replaces *p with a 7-bit literal scaled to
// an odd value.
func updateMVProb(bd *boolcoder.Decoder, p *uint8) {
	if bd.ReadBool(mvUpdateProb) {
		*p = uint8(bd.ReadLiteral(7)<<1 | 1)
	}
}

func updateMVProbs(bd *boolcoder.Decoder, ps []uint8) {
	for i := range ps {
		updateMVProb(bd, &ps[i])
	}
}
