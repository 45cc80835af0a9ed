package bitreader

// Writer is the inverse of Reader. It builds uncompressed headers for
// synthesized streams.
type Writer struct {
	data   []byte
	bitPos int
}

// Bit appends one bit.
func (w *Writer) Bit(b int) {
	if w.bitPos&7 == 0 {
		w.data = append(w.data, 0)
	}
	if b != 0 {
		w.data[w.bitPos>>3] |= 0x80 >> uint(w.bitPos&7)
	}
	w.bitPos++
}

// Flag appends b as one bit.
func (w *Writer) Flag(b bool) {
	if b {
		w.Bit(1)
	} else {
		w.Bit(0)
	}
}

// F appends the low n bits of v, most significant first.
func (w *Writer) F(v, n int) {
	for i := n - 1; i >= 0; i-- {
		w.Bit((v >> uint(i)) & 1)
	}
}

// S appends an n-bit magnitude followed by a sign bit.
func (w *Writer) S(v, n int) {
	if v < 0 {
		w.F(-v, n)
		w.Bit(1)
		return
	}
	w.F(v, n)
	w.Bit(0)
}

// Bytes returns the written bits, zero padded to a whole byte.
func (w *Writer) Bytes() []byte {
	return w.data
}
