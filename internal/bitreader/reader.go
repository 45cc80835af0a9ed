// Package bitreader reads the MSB-first fixed-width fields of the VP9
// uncompressed frame header.
package bitreader

import "errors"

// ErrUnexpectedEnd indicates a read past the end of the buffer.
var ErrUnexpectedEnd = errors.New("bitreader: unexpected end of data")

// Reader reads bits MSB first. Reads past the end return zero and set a
// sticky error so callers can check once after a group of fields.
type Reader struct {
	data   []byte
	bitPos int
	err    error
}

// New creates a Reader over data.
func New(data []byte) *Reader {
	return &Reader{data: data}
}

// Bit reads one bit.
func (r *Reader) Bit() int {
	if r.bitPos >= len(r.data)*8 {
		r.err = ErrUnexpectedEnd
		return 0
	}
	b := int(r.data[r.bitPos>>3]>>(7-uint(r.bitPos&7))) & 1
	r.bitPos++
	return b
}

// Flag reads one bit as a bool.
func (r *Reader) Flag() bool {
	return r.Bit() != 0
}

// F reads an n-bit unsigned value.
func (r *Reader) F(n int) int {
	x := 0
	for i := 0; i < n; i++ {
		x = x<<1 | r.Bit()
	}
	return x
}

// S reads an n-bit magnitude followed by a sign bit.
func (r *Reader) S(n int) int {
	v := r.F(n)
	if r.Flag() {
		return -v
	}
	return v
}

// ByteAlign skips to the next byte boundary.
func (r *Reader) ByteAlign() {
	r.bitPos = (r.bitPos + 7) &^ 7
}

// BytePos returns the index of the byte holding the next unread bit,
// rounded up to a whole byte.
func (r *Reader) BytePos() int {
	return (r.bitPos + 7) >> 3
}

// BitPos returns the number of bits consumed.
func (r *Reader) BitPos() int {
	return r.bitPos
}

// Err returns the sticky error, or nil.
func (r *Reader) Err() error {
	return r.err
}
