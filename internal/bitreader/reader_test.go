package bitreader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadFields(t *testing.T) {
	r := New([]byte{0b1001_1100, 0b1100_0000})

	assert.Equal(t, 2, r.F(2))
	assert.Equal(t, 1, r.F(2))
	assert.True(t, r.Flag())
	assert.Equal(t, 2, r.F(2))
	// 4-bit magnitude 0b0110 = 6, sign bit 0
	assert.Equal(t, 6, r.S(4))
	assert.Equal(t, 12, r.BitPos())
	assert.NoError(t, r.Err())
}

func TestSignedNegative(t *testing.T) {
	r := New([]byte{0b0011_1000})
	assert.Equal(t, -3, r.S(4))
}

func TestByteAlign(t *testing.T) {
	r := New([]byte{0xff, 0x5a})
	r.F(3)
	r.ByteAlign()
	assert.Equal(t, 1, r.BytePos())
	assert.Equal(t, 0x5a, r.F(8))
}

func TestReadPastEnd(t *testing.T) {
	r := New([]byte{0x01})
	assert.Equal(t, 1, r.F(8))
	assert.Equal(t, 0, r.F(4))
	assert.ErrorIs(t, r.Err(), ErrUnexpectedEnd)
}

func TestWriterRoundTrip(t *testing.T) {
	var w Writer
	w.F(2, 2)
	w.Flag(true)
	w.F(0x498342, 24)
	w.S(-5, 6)
	w.S(7, 4)
	w.Bit(1)

	r := New(w.Bytes())
	assert.Equal(t, 2, r.F(2))
	assert.True(t, r.Flag())
	assert.Equal(t, 0x498342, r.F(24))
	assert.Equal(t, -5, r.S(6))
	assert.Equal(t, 7, r.S(4))
	assert.Equal(t, 1, r.Bit())
	assert.Equal(t, 5, len(w.Bytes()))
	assert.NoError(t, r.Err())
}
