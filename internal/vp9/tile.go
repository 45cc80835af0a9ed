package vp9

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sys/cpu"

	"github.com/thesyncim/govp9/internal/boolcoder"
)

// Options control how a frame's tiles are decoded.
type Options struct {
	// TileWorkers is the number of goroutines decoding tile columns.
	// Values below 2 decode on the calling goroutine.
	TileWorkers int

	// Tracer receives decoded syntax. Nil disables tracing.
	Tracer Tracer

	// StrictPadding rejects tiles whose bits after the last symbol are
	// not all zero.
	StrictPadding bool
}

// Frame is the decoded syntax of one frame. Tiles are in raster order.
// A shown existing frame has a header and no tiles.
type Frame struct {
	Header *FrameHeader
	Tiles  []TileResult
}

// TileResult holds the superblocks of one tile in decode order.
type TileResult struct {
	Row         int
	Col         int
	SuperBlocks []CodedSuperBlock
}

// TileContext is the decode state of one tile: its boolean decoder, its
// bounds and the left context column, which restarts at every
// superblock row. Above context rows live in the DecodingContext; tiles
// of different columns touch disjoint ranges of them.
type TileContext struct {
	dc     *DecodingContext
	bd     *boolcoder.Decoder
	counts *frameCounts
	tracer Tracer
	mvTr   MVTracer

	row, col   int
	miRowStart int
	miRowEnd   int
	miColStart int
	miColEnd   int

	leftNonzero   [3][2 * sbMiSize]uint8
	leftPartition [sbMiSize]uint8

	blk        blockPos
	tokenCache [32 * 32]uint8
}

// blockPos is the geometry of the block being decoded.
type blockPos struct {
	miRow, miCol int
	bsize        BlockSize
	bw, bh       int // in MI units, at least 1
	xMis, yMis   int // bw and bh clipped to the frame
	above, left  *ModeInfo

	// Distances from the block to the frame edges in 1/8 pel.
	toLeft, toRight, toTop, toBottom int
}

type tileBuffer struct {
	data     []byte
	row, col int
}

// tileBuffers splits the tile data. Every tile but the last carries a
// 4-byte big-endian size prefix.
func (dc *DecodingContext) tileBuffers() ([]tileBuffer, error) {
	rows, cols := 1<<dc.Header.Tile.Log2Rows, 1<<dc.Header.Tile.Log2Cols
	data := dc.tileData
	bufs := make([]tileBuffer, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			last := r == rows-1 && c == cols-1
			size := len(data)
			if !last {
				if len(data) < 4 {
					return nil, errors.Wrapf(ErrTruncated, "tile %d,%d size", r, c)
				}
				size = int(binary.BigEndian.Uint32(data))
				data = data[4:]
				if size > len(data) {
					return nil, errors.Wrapf(ErrTruncated, "tile %d,%d of %d bytes, %d left", r, c, size, len(data))
				}
			}
			bufs = append(bufs, tileBuffer{data: data[:size], row: r, col: c})
			data = data[size:]
		}
	}
	return bufs, nil
}

// workerSlot is the private output of one tile column.
type workerSlot struct {
	counts frameCounts
	err    error
	_      cpu.CacheLinePad
}

// Decode decodes every tile of the frame and commits the frame to the
// State it was created from. Nothing is committed on error.
func (dc *DecodingContext) Decode(opts Options) (*Frame, error) {
	h := dc.Header
	tracer := opts.Tracer
	if tracer == nil {
		tracer = NoopTracer{}
	}
	tracer.TraceHeader(h)
	if h.ShowExisting {
		dc.commit()
		return &Frame{Header: h}, nil
	}

	bufs, err := dc.tileBuffers()
	if err != nil {
		return nil, err
	}
	rows, cols := 1<<h.Tile.Log2Rows, 1<<h.Tile.Log2Cols
	frame := &Frame{Header: h, Tiles: make([]TileResult, len(bufs))}
	slots := make([]workerSlot, cols)

	column := func(c int) {
		slot := &slots[c]
		var counts *frameCounts
		if dc.counts != nil {
			counts = &slot.counts
		}
		for r := 0; r < rows; r++ {
			i := r*cols + c
			tc := dc.newTileContext(bufs[i], counts, tracer)
			sbs, err := tc.decode(opts.StrictPadding)
			if err != nil {
				slot.err = errors.Wrapf(err, "tile %d,%d", r, c)
				return
			}
			frame.Tiles[i] = TileResult{Row: r, Col: c, SuperBlocks: sbs}
		}
	}

	workers := min(opts.TileWorkers, cols)
	if workers < 2 {
		for c := 0; c < cols; c++ {
			column(c)
			if slots[c].err != nil {
				break
			}
		}
	} else {
		var wg sync.WaitGroup
		var next atomic.Int32
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					c := int(next.Add(1) - 1)
					if c >= cols {
						return
					}
					column(c)
				}
			}()
		}
		wg.Wait()
	}

	for i := range slots {
		if slots[i].err != nil {
			return nil, slots[i].err
		}
	}
	if dc.counts != nil {
		for i := range slots {
			dc.counts.add(&slots[i].counts)
		}
	}
	dc.commit()
	return frame, nil
}

func (dc *DecodingContext) newTileContext(buf tileBuffer, counts *frameCounts, tracer Tracer) *TileContext {
	h := dc.Header
	tc := &TileContext{
		dc:         dc,
		bd:         boolcoder.NewDecoder(buf.data),
		counts:     counts,
		tracer:     tracer,
		row:        buf.row,
		col:        buf.col,
		miRowStart: tileOffset(buf.row, dc.miRows, h.Tile.Log2Rows),
		miRowEnd:   tileOffset(buf.row+1, dc.miRows, h.Tile.Log2Rows),
		miColStart: tileOffset(buf.col, dc.miCols, h.Tile.Log2Cols),
		miColEnd:   tileOffset(buf.col+1, dc.miCols, h.Tile.Log2Cols),
	}
	tc.mvTr, _ = tracer.(MVTracer)
	return tc
}

// decode walks the superblocks of the tile in raster order.
func (tc *TileContext) decode(strictPadding bool) ([]CodedSuperBlock, error) {
	if err := tc.bd.Err(); err != nil {
		return nil, errors.Wrap(ErrBufferExhausted, err.Error())
	}
	var sbs []CodedSuperBlock
	for miRow := tc.miRowStart; miRow < tc.miRowEnd; miRow += sbMiSize {
		tc.leftNonzero = [3][2 * sbMiSize]uint8{}
		tc.leftPartition = [sbMiSize]uint8{}
		for miCol := tc.miColStart; miCol < tc.miColEnd; miCol += sbMiSize {
			sb, err := tc.readSuperBlock(miRow, miCol)
			if err != nil {
				return nil, errors.Wrapf(err, "superblock at mi %d,%d", miRow, miCol)
			}
			if tc.bd.Err() != nil {
				return nil, errors.Wrapf(ErrBufferExhausted, "superblock at mi %d,%d", miRow, miCol)
			}
			sbs = append(sbs, sb)
		}
	}
	if strictPadding && !tc.bd.PaddingIsZero() {
		return nil, errors.Wrapf(ErrNonZeroPadding, "after %d bytes", tc.bd.BytesUsed())
	}
	return sbs, nil
}
