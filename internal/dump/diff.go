package dump

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/thesyncim/govp9/internal/vp9"
)

// Mismatch is the first record at which two dumps differ.
type Mismatch struct {
	Index int // record number, from 0
	A, B  *Record
	Field string
}

func (m *Mismatch) Error() string {
	r := m.A
	if r == nil {
		r = m.B
	}
	return fmt.Sprintf("record %d (frame %d mi=%d,%d): %s differs",
		m.Index, r.Frame, r.Block.MiRow, r.Block.MiCol, m.Field)
}

// Compare reads both dumps to the end and returns the first mismatch, or
// nil when they hold the same records.
func Compare(a, b io.Reader) (*Mismatch, error) {
	ra, err := NewReader(a)
	if err != nil {
		return nil, errors.Wrap(err, "first dump")
	}
	defer ra.Close()
	rb, err := NewReader(b)
	if err != nil {
		return nil, errors.Wrap(err, "second dump")
	}
	defer rb.Close()

	for i := 0; ; i++ {
		x, errA := ra.Next()
		y, errB := rb.Next()
		if errA != nil && errA != io.EOF {
			return nil, errA
		}
		if errB != nil && errB != io.EOF {
			return nil, errB
		}
		if x == nil && y == nil {
			return nil, nil
		}
		if x == nil || y == nil {
			return &Mismatch{Index: i, A: x, B: y, Field: "record count"}, nil
		}
		if f := Diff(x, y); f != "" {
			return &Mismatch{Index: i, A: x, B: y, Field: f}, nil
		}
	}
}

// Diff names the first field in which a and b differ, or returns "" when
// they are equal.
func Diff(a, b *Record) string {
	switch {
	case a.Frame != b.Frame:
		return "frame"
	case a.Block.MiRow != b.Block.MiRow || a.Block.MiCol != b.Block.MiCol:
		return "position"
	}
	if f := diffMode(a.Block.Mode, b.Block.Mode); f != "" {
		return f
	}
	return diffResidual(a.Block.Residual, b.Block.Residual)
}

func diffMode(a, b *vp9.ModeInfo) string {
	switch {
	case a.BlockSize != b.BlockSize:
		return "bsize"
	case a.SegmentID != b.SegmentID:
		return "segment"
	case a.Skip != b.Skip:
		return "skip"
	case a.TxSize != b.TxSize:
		return "tx"
	case a.YMode != b.YMode || a.SubModes != b.SubModes:
		return "y mode"
	case a.UVMode != b.UVMode:
		return "uv mode"
	case a.IsInter() != b.IsInter():
		return "is inter"
	}
	if !a.IsInter() {
		return ""
	}
	switch {
	case a.Inter.RefFrame != b.Inter.RefFrame:
		return "ref frame"
	case a.Inter.Filter != b.Inter.Filter:
		return "filter"
	case a.Inter.MV != b.Inter.MV:
		return "mv"
	}
	return ""
}

func diffResidual(a, b *vp9.Residual) string {
	if (a == nil) != (b == nil) {
		return "residual"
	}
	if a == nil {
		return ""
	}
	for p := range a.Planes {
		if a.TxSize[p] != b.TxSize[p] || len(a.Planes[p]) != len(b.Planes[p]) {
			return fmt.Sprintf("plane %d units", p)
		}
		for i, u := range a.Planes[p] {
			v := b.Planes[p][i]
			if u.Row != v.Row || u.Col != v.Col || u.EOB != v.EOB {
				return fmt.Sprintf("plane %d unit %d eob", p, i)
			}
			for c, n := 0, max(len(u.Coeffs), len(v.Coeffs)); c < n; c++ {
				if coeffAt(u.Coeffs, c) != coeffAt(v.Coeffs, c) {
					return fmt.Sprintf("plane %d unit %d coeff %d", p, i, c)
				}
			}
		}
	}
	return ""
}

func coeffAt(c []int32, i int) int32 {
	if i < len(c) {
		return c[i]
	}
	return 0
}
