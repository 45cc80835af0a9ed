// This file provides debug tracing for the block decoder, used to find
// where decoded syntax diverges from a reference decoder's dump.
//
// Tracing is zero-overhead when disabled (NoopTracer is the default).

package vp9

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/thesyncim/govp9/internal/mv"
)

// Tracer receives decoded syntax as it is produced. With parallel tile
// decoding, calls for different tiles may arrive concurrently.
type Tracer interface {
	// TraceHeader logs the parsed frame header.
	TraceHeader(h *FrameHeader)

	// TracePartition logs a partition decision.
	// miRow, miCol: position in 8x8 units
	// bsize: size of the block being partitioned
	TracePartition(miRow, miCol int, bsize BlockSize, p PartitionType)

	// TraceBlock logs the mode info of a finished block.
	TraceBlock(miRow, miCol int, mi *ModeInfo)

	// TraceCoeffs logs one transform unit.
	// plane: 0 luma, 1-2 chroma
	// unit: raster index of the unit within the block's plane
	// eob: number of scan positions decoded
	TraceCoeffs(plane, unit int, tx TxSize, eob int, coeffs []int32)
}

// MVTracer is an optional interface for logging motion vector candidates.
type MVTracer interface {
	TraceMVCandidates(miRow, miCol int, ref RefFrame, list mv.List, modeCtx int)
}

// NoopTracer is a no-operation tracer.
type NoopTracer struct{}

// TraceHeader implements Tracer with no operation.
func (NoopTracer) TraceHeader(h *FrameHeader) {}

// TracePartition implements Tracer with no operation.
func (NoopTracer) TracePartition(miRow, miCol int, bsize BlockSize, p PartitionType) {}

// TraceBlock implements Tracer with no operation.
func (NoopTracer) TraceBlock(miRow, miCol int, mi *ModeInfo) {}

// TraceCoeffs implements Tracer with no operation.
func (NoopTracer) TraceCoeffs(plane, unit int, tx TxSize, eob int, coeffs []int32) {}

// LogTracer implements Tracer by writing formatted lines to W.
// Output format: [VP9:stage] key=value key=value ...
// Coefficient arrays are truncated to the first 8 values.
type LogTracer struct {
	W  io.Writer
	mu sync.Mutex
}

func (t *LogTracer) printf(format string, args ...any) {
	t.mu.Lock()
	fmt.Fprintf(t.W, format, args...)
	t.mu.Unlock()
}

// TraceHeader logs the header with format:
// [VP9:header] type=0 show=1 size=352x288 q=60 txmode=4 tiles=1x1
func (t *LogTracer) TraceHeader(h *FrameHeader) {
	t.printf("[VP9:header] type=%d show=%d size=%dx%d q=%d txmode=%d tiles=%dx%d\n",
		h.FrameType, b2i(h.ShowFrame), h.Width, h.Height, h.Quant.BaseQIdx, h.TxMode,
		1<<h.Tile.Log2Cols, 1<<h.Tile.Log2Rows)
}

// TracePartition logs a partition with format:
// [VP9:partition] mi=0,0 bsize=64x64 p=3
func (t *LogTracer) TracePartition(miRow, miCol int, bsize BlockSize, p PartitionType) {
	t.printf("[VP9:partition] mi=%d,%d bsize=%s p=%d\n", miRow, miCol, bsize, p)
}

// TraceBlock logs mode info with format:
// [VP9:block] mi=0,0 bsize=8x8 seg=0 skip=0 tx=1 y=DC uv=DC
// Inter blocks append ref=1,-1 filter=0 mv=(x,y r1),(x,y r0).
func (t *LogTracer) TraceBlock(miRow, miCol int, mi *ModeInfo) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[VP9:block] mi=%d,%d bsize=%s seg=%d skip=%d tx=%d y=%s",
		miRow, miCol, mi.BlockSize, mi.SegmentID, b2i(mi.Skip), mi.TxSize, mi.YMode)
	if mi.Inter == nil {
		fmt.Fprintf(&sb, " uv=%s", mi.UVMode)
	} else {
		in := mi.Inter
		fmt.Fprintf(&sb, " ref=%d,%d filter=%d mv=%s,%s",
			in.RefFrame[0], in.RefFrame[1], in.Filter, in.MV[3][0], in.MV[3][1])
	}
	sb.WriteByte('\n')
	t.printf("%s", sb.String())
}

// TraceCoeffs logs a transform unit with format:
// [VP9:coeffs] plane=0 unit=0 tx=0 eob=3 coeffs=[12,-1,0,1,...]
func (t *LogTracer) TraceCoeffs(plane, unit int, tx TxSize, eob int, coeffs []int32) {
	t.printf("[VP9:coeffs] plane=%d unit=%d tx=%d eob=%d coeffs=%s\n",
		plane, unit, tx, eob, formatCoeffs(coeffs, 8))
}

// TraceMVCandidates logs a candidate list with format:
// [VP9:mvref] mi=0,0 ref=1 ctx=2 list=[(4,0 r1),(0,0 r1)]
func (t *LogTracer) TraceMVCandidates(miRow, miCol int, ref RefFrame, list mv.List, modeCtx int) {
	t.printf("[VP9:mvref] mi=%d,%d ref=%d ctx=%d list=[%s,%s]\n",
		miRow, miCol, ref, modeCtx, list.Get(0), list.Get(1))
}

// formatCoeffs formats a coefficient slice, truncated to maxLen elements.
func formatCoeffs(v []int32, maxLen int) string {
	if len(v) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	n := len(v)
	truncated := false
	if n > maxLen {
		n = maxLen
		truncated = true
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", v[i])
	}
	if truncated {
		sb.WriteString("...")
	}
	sb.WriteByte(']')
	return sb.String()
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
