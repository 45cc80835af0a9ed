package mv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackUnpackRange(t *testing.T) {
	for x := MinComp; x <= MaxComp; x += 37 {
		for _, y := range []int{MinComp, -1, 0, 1, 4095, MaxComp} {
			for ref := 0; ref < 4; ref++ {
				v := New(x, y, ref)
				if v.X() != x || v.Y() != y || v.Ref() != ref {
					t.Fatalf("New(%d,%d,%d) unpacked to %v", x, y, ref, v)
				}
			}
		}
	}
}

func TestPackExtremes(t *testing.T) {
	tests := []struct{ x, y, ref int }{
		{MinComp, MinComp, 3},
		{MaxComp, MaxComp, 0},
		{-1, 0, 1},
		{0, -1, 2},
	}
	for _, tt := range tests {
		v := New(tt.x, tt.y, tt.ref)
		assert.Equal(t, tt.x, v.X())
		assert.Equal(t, tt.y, v.Y())
		assert.Equal(t, tt.ref, v.Ref())
	}
}

func TestAddAndZero(t *testing.T) {
	a := New(10, -20, 1)
	b := New(-10, 20, 3)
	sum := a.Add(b)
	assert.True(t, sum.IsZero())
	assert.Equal(t, 1, sum.Ref())
	assert.True(t, a.SameXY(a.WithRef(2)))
	assert.False(t, a.SameXY(b))
}

func TestListAddUniq(t *testing.T) {
	a := New(4, 8, 1)
	b := New(-4, 2, 1)
	c := New(100, 100, 2)

	var l List
	assert.Equal(t, 0, l.Len())

	l = l.AddUniq(a).AddUniq(a)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, a, l.Get(0))

	l = l.AddUniq(b)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, a, l.Get(0))
	assert.Equal(t, b, l.Get(1))

	full := l
	l = l.AddUniq(c)
	assert.Equal(t, full, l)
	assert.True(t, l.Full())
}

func TestListDistinguishesRef(t *testing.T) {
	var l List
	l = l.AddUniq(New(1, 1, 1)).AddUniq(New(1, 1, 2))
	assert.Equal(t, 2, l.Len())
}

func TestListSet(t *testing.T) {
	var l List
	l = l.Add(New(1, 2, 1)).Add(New(3, 4, 1))
	l = l.Set(1, New(-5, -6, 1))
	assert.Equal(t, New(1, 2, 1), l.Get(0))
	assert.Equal(t, New(-5, -6, 1), l.Get(1))
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, Zero, List(0).Get(0))
}
