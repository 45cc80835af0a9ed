package boolcoder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripRandomBits(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const n = 5000
	bitsIn := make([]int, n)
	probs := make([]uint8, n)

	enc := NewEncoder()
	for i := range bitsIn {
		probs[i] = uint8(1 + rng.Intn(255))
		// Bias the bits the same way as the probability.
		if rng.Intn(256) >= int(probs[i]) {
			bitsIn[i] = 1
		}
		enc.WriteBit(bitsIn[i], probs[i])
	}
	data := enc.Bytes()

	dec := NewDecoder(data)
	require.NoError(t, dec.Err())
	for i := range bitsIn {
		if got := dec.ReadBit(probs[i]); got != bitsIn[i] {
			t.Fatalf("bit %d = %d, want %d", i, got, bitsIn[i])
		}
	}
	assert.NoError(t, dec.Err())
	assert.True(t, dec.PaddingIsZero())
}

func TestRoundTripLiteral(t *testing.T) {
	tests := []struct {
		v, n int
	}{
		{0, 1}, {1, 1}, {5, 3}, {127, 7}, {255, 8}, {0xABCD, 16},
	}
	enc := NewEncoder()
	for _, tt := range tests {
		enc.WriteLiteral(tt.v, tt.n)
	}
	dec := NewDecoder(enc.Bytes())
	for _, tt := range tests {
		assert.Equal(t, tt.v, dec.ReadLiteral(tt.n), "literal of %d bits", tt.n)
	}
	assert.NoError(t, dec.Err())
}

func TestRoundTripTree(t *testing.T) {
	// 4-leaf tree: 0 | (1 | (2 | 3))
	tree := []int8{0, 2, -1, 4, -2, -3}
	probs := []uint8{200, 90, 30}
	symbols := []int{0, 3, 1, 2, 2, 0, 3, 3, 1}

	enc := NewEncoder()
	for _, s := range symbols {
		enc.WriteTree(tree, probs, s)
	}
	dec := NewDecoder(enc.Bytes())
	for i, s := range symbols {
		assert.Equal(t, s, dec.ReadTree(tree, probs), "symbol %d", i)
	}
}

func TestMarkerBit(t *testing.T) {
	dec := NewDecoder([]byte{0xff, 0xff})
	assert.ErrorIs(t, dec.Err(), ErrMarkerBit)

	dec = NewDecoder([]byte{0x00, 0x00})
	assert.NoError(t, dec.Err())
}

func TestEmptyBuffer(t *testing.T) {
	dec := NewDecoder(nil)
	assert.ErrorIs(t, dec.Err(), ErrShortBuffer)
}

func TestExhaustionIsSticky(t *testing.T) {
	dec := NewDecoder([]byte{0x00})
	require.NoError(t, dec.Err())
	for i := 0; i < 64; i++ {
		dec.ReadBitEq()
	}
	assert.ErrorIs(t, dec.Err(), ErrExhausted)
	assert.Equal(t, 0, dec.ReadBit(1))
}

func TestPaddingNonZero(t *testing.T) {
	enc := NewEncoder()
	enc.WriteLiteral(0x5a, 8)
	data := append(enc.Bytes(), 0x80)
	dec := NewDecoder(data)
	dec.ReadLiteral(8)
	assert.False(t, dec.PaddingIsZero())
}

func TestReadBool(t *testing.T) {
	enc := NewEncoder()
	enc.WriteBit(1, 200)
	enc.WriteBit(0, 20)
	dec := NewDecoder(enc.Bytes())
	assert.True(t, dec.ReadBool(200))
	assert.False(t, dec.ReadBool(20))
	assert.NoError(t, dec.Err())
}

func TestBytesUsed(t *testing.T) {
	data := make([]byte, 32)
	dec := NewDecoder(data)
	// The first fill loads a full value window.
	assert.Equal(t, windowBits/8, dec.BytesUsed())
	for i := 0; i < 8*len(data)-8; i++ {
		dec.ReadBitEq()
	}
	assert.Equal(t, len(data), dec.BytesUsed())

	assert.Equal(t, 3, NewDecoder([]byte{0, 0, 0}).BytesUsed())
}
