// Package mv provides packed motion vector types for the VP9 decoder.
//
// An MV packs a signed 14-bit horizontal and vertical component plus a
// 2-bit reference slot into one 32-bit word. An MVList packs up to two
// MVs and a count into one 64-bit word. Both are plain values, so they
// can be copied, compared and stored in neighbor caches without
// allocation.
package mv

import "fmt"

const (
	compBits = 14
	compMask = 1<<compBits - 1
	refShift = 2 * compBits
	refMask  = 3

	// MinComp and MaxComp bound each component in 1/8 pel units.
	MinComp = -(1 << (compBits - 1))
	MaxComp = 1<<(compBits-1) - 1
)

// MV is a packed motion vector: x in bits 0-13, y in bits 14-27 and the
// reference slot in bits 28-29.
type MV uint32

// Zero is the zero vector with reference slot 0.
const Zero MV = 0

// New packs x, y and ref. Components are truncated to 14 bits.
func New(x, y, ref int) MV {
	return MV(uint32(ref&refMask)<<refShift | uint32(y&compMask)<<compBits | uint32(x&compMask))
}

// X returns the sign-extended horizontal component.
func (v MV) X() int {
	return int(int32(uint32(v)<<(32-compBits)) >> (32 - compBits))
}

// Y returns the sign-extended vertical component.
func (v MV) Y() int {
	return int(int32(uint32(v)<<(32-2*compBits)) >> (32 - compBits))
}

// Ref returns the reference slot.
func (v MV) Ref() int {
	return int(uint32(v)>>refShift) & refMask
}

// WithXY returns v with new components and the same reference.
func (v MV) WithXY(x, y int) MV {
	return New(x, y, v.Ref())
}

// WithRef returns v retargeted at ref.
func (v MV) WithRef(ref int) MV {
	return New(v.X(), v.Y(), ref)
}

// Add returns the component-wise sum of v and d, keeping v's reference.
func (v MV) Add(d MV) MV {
	return New(v.X()+d.X(), v.Y()+d.Y(), v.Ref())
}

// IsZero reports whether both components are zero.
func (v MV) IsZero() bool {
	return uint32(v)&(1<<refShift-1) == 0
}

// SameXY reports whether v and o have equal components, ignoring references.
func (v MV) SameXY(o MV) bool {
	return uint32(v)&(1<<refShift-1) == uint32(o)&(1<<refShift-1)
}

func (v MV) String() string {
	return fmt.Sprintf("(%d,%d r%d)", v.X(), v.Y(), v.Ref())
}
