package vp9

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanOrders(t *testing.T) {
	for tx := Tx4x4; tx <= Tx32x32; tx++ {
		n := 4 << tx
		for typ, so := range scanOrders[tx] {
			require.NotNil(t, so, "tx %d type %d", tx, typ)
			require.Len(t, so.scan, n*n)
			require.Len(t, so.neighbors, 2*n*n)
			assert.Equal(t, int16(0), so.scan[0])

			pos := make([]int, n*n)
			seen := make([]bool, n*n)
			for c, rc := range so.scan {
				require.False(t, seen[rc], "tx %d type %d repeats %d", tx, typ, rc)
				seen[rc] = true
				pos[rc] = c
			}
			// Context neighbors are always decoded before the position
			// that uses them.
			for c := 1; c < n*n; c++ {
				for _, nb := range so.neighbors[2*c : 2*c+2] {
					if pos[nb] >= c {
						t.Fatalf("tx %d type %d: neighbor %d of scan position %d comes later", tx, typ, nb, c)
					}
				}
			}
		}
	}
}

func TestScanNeighborsKinds(t *testing.T) {
	// Raster position 5 is row 1, column 1 of a 4x4 block.
	scan := []int16{0, 1, 4, 5}
	tests := []struct {
		kind scanKind
		want []int16
	}{
		{scanDefault, []int16{1, 4}},
		{scanCol, []int16{1, 1}},
		{scanRow, []int16{4, 4}},
	}
	for _, tt := range tests {
		nb := scanNeighbors(scan, 4, tt.kind)
		assert.Equal(t, tt.want, nb[6:8], "kind %d", tt.kind)
		// First row and column positions have a single neighbor.
		assert.Equal(t, []int16{0, 0}, nb[2:4])
		assert.Equal(t, []int16{0, 0}, nb[4:6])
	}
}

func TestCoefContext(t *testing.T) {
	so := scanOrders[Tx4x4][DCTDCT]
	cache := make([]uint8, 16)
	assert.Equal(t, 0, so.coefContext(cache, 1))
	cache[0] = energyClass[tokenCat6]
	assert.Equal(t, 5, so.coefContext(cache, 1))
	cache[0] = energyClass[tokenOne]
	assert.Equal(t, 1, so.coefContext(cache, 1))
}

func TestScanHeads(t *testing.T) {
	tests := []struct {
		tx   TxSize
		typ  TxType
		head []int16
		tail []int16
	}{
		{Tx4x4, DCTDCT, []int16{0, 4, 1, 5, 8, 2, 12, 9}, []int16{7, 14, 11, 15}},
		{Tx4x4, ADSTDCT, []int16{0, 1, 4, 2, 5, 3, 6, 8}, []int16{13, 11, 14, 15}},
		{Tx4x4, DCTADST, []int16{0, 4, 8, 1, 12, 5, 9, 2}, []int16{7, 14, 11, 15}},
		{Tx8x8, DCTDCT, []int16{0, 8, 1, 16, 9, 2, 17, 24}, []int16{47, 62, 55, 63}},
		{Tx8x8, ADSTDCT, []int16{0, 1, 2, 8, 9, 3, 16, 10}, []int16{54, 55, 62, 63}},
		{Tx8x8, DCTADST, []int16{0, 8, 16, 1, 24, 9, 32, 17}, []int16{47, 62, 55, 63}},
		{Tx16x16, DCTDCT, []int16{0, 16, 1, 32, 17, 2, 48, 33, 18, 3, 64, 34, 49, 19, 65, 80}, []int16{223, 254, 239, 255}},
		{Tx16x16, ADSTDCT, []int16{0, 1, 2, 16, 3, 17, 4, 18}, []int16{238, 239, 254, 255}},
		{Tx16x16, DCTADST, []int16{0, 16, 32, 48, 1, 64, 17, 80}, []int16{207, 254, 223, 239, 255}},
		{Tx32x32, DCTDCT, []int16{0, 32, 1, 64, 33, 2, 96, 65, 34, 128, 3, 97, 66, 160, 129, 35}, []int16{959, 1022, 991, 1023}},
		{Tx32x32, ADSTADST, []int16{0, 32, 1, 64, 33, 2, 96, 65}, []int16{1022, 991, 1023}},
	}
	for _, tt := range tests {
		scan := scanOrders[tt.tx][tt.typ].scan
		assert.Equal(t, tt.head, scan[:len(tt.head)], "tx %d type %d head", tt.tx, tt.typ)
		assert.Equal(t, tt.tail, scan[len(scan)-len(tt.tail):], "tx %d type %d tail", tt.tx, tt.typ)
	}
}

func TestScan32x32Neighbors(t *testing.T) {
	so := scanOrders[Tx32x32][DCTDCT]
	// Scan position 4 is raster 33: above is 1, left is 32.
	assert.Equal(t, []int16{1, 32}, so.neighbors[8:10])
	// Scan position 1 is raster 32, first column.
	assert.Equal(t, []int16{0, 0}, so.neighbors[2:4])
	// The first scan position past the 16th diagonal is raster 640.
	assert.Equal(t, int16(640), so.scan[240])
	assert.Equal(t, []int16{608, 608}, so.neighbors[480:482])
}
