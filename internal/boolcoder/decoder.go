package boolcoder

import "math/bits"

// Decoder implements the VP9 boolean decoder.
//
// The top 8 bits of value line up with rng. Bytes are loaded on demand
// below them; count is the number of loaded bits beyond the top 8.
// Exhaustion is sticky: once set, Err reports it and all further reads
// return zero bits.
type Decoder struct {
	buf     []byte // Input buffer
	pos     int    // Next byte to load
	value   uint64 // MSB-aligned value window
	count   int    // Loaded bits below the top byte (may dip negative before a fill)
	rng     uint32 // Range, kept in [128, 255] after normalize
	maxBits int    // Bits that may still be shifted in before the buffer is exhausted
	err     error  // Sticky error
}

// NewDecoder creates a Decoder over buf and consumes the marker bit.
// A set marker bit is reported as ErrMarkerBit.
func NewDecoder(buf []byte) *Decoder {
	d := &Decoder{}
	d.Init(buf)
	return d
}

// Init (re)initializes the decoder with the given byte buffer.
func (d *Decoder) Init(buf []byte) {
	d.buf = buf
	d.pos = 0
	d.value = 0
	d.count = -8
	d.rng = 255
	d.err = nil
	if len(buf) < 1 {
		d.err = ErrShortBuffer
		d.maxBits = 0
		return
	}
	d.maxBits = 8*len(buf) - 8
	d.fill()
	if d.ReadBit(halfProb) != 0 {
		d.err = ErrMarkerBit
	}
}

// fill loads as many whole bytes as fit below the valid bits of value.
func (d *Decoder) fill() {
	shift := windowBits - 8 - (d.count + 8)
	for shift >= 0 {
		if d.pos >= len(d.buf) {
			// Past the end the window is zero padded.
			d.count += 8
			shift -= 8
			continue
		}
		d.value |= uint64(d.buf[d.pos]) << uint(shift)
		d.pos++
		d.count += 8
		shift -= 8
	}
}

// ReadBit decodes one bool whose probability of being 0 is prob/256.
func (d *Decoder) ReadBit(prob uint8) int {
	split := 1 + (((d.rng - 1) * uint32(prob)) >> 8)
	if d.count < 0 {
		d.fill()
	}
	bigSplit := uint64(split) << (windowBits - 8)

	var bit int
	if d.value >= bigSplit {
		d.rng -= split
		d.value -= bigSplit
		bit = 1
	} else {
		d.rng = split
	}

	shift := bits.LeadingZeros8(uint8(d.rng))
	d.rng <<= uint(shift)
	d.value <<= uint(shift)
	d.count -= shift
	d.maxBits -= shift
	if d.maxBits < 0 && d.err == nil {
		d.err = ErrExhausted
	}
	if d.err == ErrExhausted {
		return 0
	}
	return bit
}

// ReadBitEq decodes one bool with equal probability.
func (d *Decoder) ReadBitEq() int {
	return d.ReadBit(halfProb)
}

// ReadBool is ReadBit returning a bool.
func (d *Decoder) ReadBool(prob uint8) bool {
	return d.ReadBit(prob) != 0
}

// ReadLiteral decodes an n-bit unsigned literal, MSB first.
func (d *Decoder) ReadLiteral(n int) int {
	v := 0
	for i := 0; i < n; i++ {
		v = v<<1 | d.ReadBitEq()
	}
	return v
}

// ReadTree walks a token tree. Positive entries index the next node pair;
// other entries are negated leaf symbols. probs[i>>1] is the probability
// of the node starting at tree index i.
func (d *Decoder) ReadTree(tree []int8, probs []uint8) int {
	n := int8(0)
	for {
		n = tree[int(n)+d.ReadBit(probs[n>>1])]
		if n <= 0 {
			return int(-n)
		}
	}
}

// Err returns the sticky decoder error, or nil.
func (d *Decoder) Err() error {
	return d.err
}

// PaddingIsZero reports whether every bit not yet consumed is zero.
// Conformant streams end each partition with zero padding.
func (d *Decoder) PaddingIsZero() bool {
	if d.value<<8 != 0 {
		return false
	}
	for _, b := range d.buf[d.pos:] {
		if b != 0 {
			return false
		}
	}
	return true
}

// BytesUsed returns the number of bytes loaded from the buffer.
func (d *Decoder) BytesUsed() int {
	return d.pos
}
