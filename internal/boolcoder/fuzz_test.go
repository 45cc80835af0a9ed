package boolcoder

import "testing"

// FuzzDecoder checks the decoder never panics or reads out of bounds.
func FuzzDecoder(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00})
	f.Add([]byte{0x7f, 0xff, 0x00, 0x12})

	f.Fuzz(func(t *testing.T, data []byte) {
		d := NewDecoder(data)
		for i := 0; i < 256; i++ {
			d.ReadBit(uint8(i))
		}
		_ = d.PaddingIsZero()
	})
}
