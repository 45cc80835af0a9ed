package boolcoder

import "math/bits"

// Encoder implements the VP9 boolean encoder (libvpx vpx_writer).
// It is the exact inverse of Decoder and is used to synthesize
// bitstreams for tests and fixtures.
type Encoder struct {
	buf      []byte
	lowValue uint32
	rng      uint32
	count    int
}

// NewEncoder creates an Encoder and writes the leading marker bit.
func NewEncoder() *Encoder {
	e := &Encoder{rng: 255, count: -24}
	e.WriteBit(0, halfProb)
	return e
}

// WriteBit encodes bit with probability prob/256 of being 0.
func (e *Encoder) WriteBit(bit int, prob uint8) {
	split := 1 + (((e.rng - 1) * uint32(prob)) >> 8)
	if bit != 0 {
		e.lowValue += split
		e.rng -= split
	} else {
		e.rng = split
	}

	shift := bits.LeadingZeros8(uint8(e.rng))
	e.rng <<= uint(shift)
	e.count += shift

	if e.count >= 0 {
		offset := shift - e.count
		if (e.lowValue<<uint(offset-1))&0x80000000 != 0 {
			e.carry()
		}
		e.buf = append(e.buf, byte(e.lowValue>>uint(24-offset)))
		e.lowValue <<= uint(offset)
		shift = e.count
		e.lowValue &= 0xffffff
		e.count -= 8
	}
	e.lowValue <<= uint(shift)
}

func (e *Encoder) carry() {
	x := len(e.buf) - 1
	for x >= 0 && e.buf[x] == 0xff {
		e.buf[x] = 0
		x--
	}
	e.buf[x]++
}

// WriteBitEq encodes bit with equal probability.
func (e *Encoder) WriteBitEq(bit int) {
	e.WriteBit(bit, halfProb)
}

// WriteBool encodes a bool.
func (e *Encoder) WriteBool(b bool, prob uint8) {
	if b {
		e.WriteBit(1, prob)
	} else {
		e.WriteBit(0, prob)
	}
}

// WriteLiteral encodes the low n bits of v, MSB first.
func (e *Encoder) WriteLiteral(v, n int) {
	for i := n - 1; i >= 0; i-- {
		e.WriteBitEq((v >> uint(i)) & 1)
	}
}

// WriteTree encodes symbol through tree, the inverse of Decoder.ReadTree.
func (e *Encoder) WriteTree(tree []int8, probs []uint8, symbol int) {
	path, ok := treePath(tree, 0, symbol, nil)
	if !ok {
		panic("boolcoder: symbol not in tree")
	}
	for _, step := range path {
		e.WriteBit(step.bit, probs[step.node>>1])
	}
}

type treeStep struct {
	node int
	bit  int
}

func treePath(tree []int8, node, symbol int, prefix []treeStep) ([]treeStep, bool) {
	for bit := 0; bit < 2; bit++ {
		next := int(tree[node+bit])
		path := append(append([]treeStep(nil), prefix...), treeStep{node: node, bit: bit})
		if next <= 0 {
			if -next == symbol {
				return path, true
			}
			continue
		}
		if p, ok := treePath(tree, next, symbol, path); ok {
			return p, true
		}
	}
	return nil, false
}

// Bytes flushes the encoder and returns the coded bytes.
// The encoder must not be used afterwards.
func (e *Encoder) Bytes() []byte {
	for i := 0; i < 32; i++ {
		e.WriteBitEq(0)
	}
	// Keep the last byte from aliasing a superframe index marker.
	if len(e.buf) > 0 && e.buf[len(e.buf)-1]&0xe0 == 0xc0 {
		e.buf = append(e.buf, 0)
	}
	return e.buf
}
