package vp9

import (
	"github.com/pkg/errors"

	"github.com/thesyncim/govp9/internal/mv"
)

type refSlot struct {
	valid  bool
	width  int
	height int
	color  ColorConfig
}

// mvRef is the motion of one MI cell as later frames see it.
type mvRef struct {
	ref [2]RefFrame
	mv  [2]mv.MV
}

// FrameState is the part of a decoded frame the next frame may read: its
// motion field in MI units.
type FrameState struct {
	miRows int
	miCols int
	mvs    []mvRef
}

// State carries everything that persists between frames: reference slot
// dimensions, the four saved probability contexts, segmentation and loop
// filter deltas, and the previous frame's segment map and motion field.
// A State is not safe for concurrent use.
type State struct {
	refs         [numRefSlots]refSlot
	frameCtx     [numFrameCtxs]FrameProbs
	color        ColorConfig
	seg          Segmentation
	lfRefDeltas  [numRefFrames]int8
	lfModeDeltas [2]int8

	segMap []uint8
	prev   *FrameState

	lastWidth     int
	lastHeight    int
	lastShowFrame bool
	lastIntraOnly bool
	lastFrameType FrameType
}

// NewState returns the state of a decoder that has seen no frames.
func NewState() *State {
	st := &State{lfRefDeltas: defaultLFRefDeltas}
	for i := range st.frameCtx {
		st.frameCtx[i] = DefaultFrameProbs()
	}
	return st
}

// DecodingContext owns the state of one frame: its headers, the
// probabilities after the compressed header, the mode info grid and the
// frame-wide above context rows that tiles of different columns write
// disjoint parts of.
type DecodingContext struct {
	Header *FrameHeader
	Probs  FrameProbs

	st       *State
	savedCtx [numFrameCtxs]FrameProbs
	tileData []byte

	miRows      int
	miCols      int
	alignedCols int

	grid       []*ModeInfo
	segMap     []uint8
	prevSegMap []uint8
	mvs        []mvRef
	prevMVs    []mvRef

	aboveNonzero   [3][]uint8
	abovePartition []uint8

	counts *frameCounts
}

// NewDecodingContext parses the uncompressed and compressed headers of
// a frame and prepares the per-frame decode state. st is read but not
// modified; Decode commits the frame to it.
func NewDecodingContext(data []byte, st *State) (*DecodingContext, error) {
	h, err := parseUncompressedHeader(data, st)
	if err != nil {
		return nil, err
	}
	dc := &DecodingContext{Header: h, st: st}
	if h.ShowExisting {
		return dc, nil
	}

	dc.savedCtx = st.frameCtx
	if h.ResetContexts != 0 {
		def := DefaultFrameProbs()
		for i := range dc.savedCtx {
			if h.ResetContexts&(1<<i) != 0 {
				dc.savedCtx[i] = def
			}
		}
	}
	dc.Probs = dc.savedCtx[h.FrameContextIdx]

	rest := data[h.UncompressedSize:]
	if h.CompressedSize > len(rest) {
		return nil, errors.Wrapf(ErrTruncated, "compressed header of %d bytes, %d left", h.CompressedSize, len(rest))
	}
	if err := readCompressedHeader(rest[:h.CompressedSize], h, &dc.Probs); err != nil {
		return nil, err
	}
	dc.tileData = rest[h.CompressedSize:]
	dc.setupFrame()
	return dc, nil
}

func (dc *DecodingContext) setupFrame() {
	h, st := dc.Header, dc.st
	dc.miRows, dc.miCols = h.MiRows(), h.MiCols()
	dc.alignedCols = (dc.miCols + sbMiSize - 1) &^ (sbMiSize - 1)
	cells := dc.miRows * dc.miCols

	dc.grid = make([]*ModeInfo, cells)
	dc.mvs = make([]mvRef, cells)
	dc.segMap = make([]uint8, cells)
	if len(st.segMap) == cells && !(h.IntraFrame() || h.ErrorResilient) {
		dc.prevSegMap = st.segMap
	} else {
		dc.prevSegMap = make([]uint8, cells)
	}

	if st.prev != nil && !h.ErrorResilient && st.lastShowFrame && !st.lastIntraOnly &&
		h.Width == st.lastWidth && h.Height == st.lastHeight &&
		st.prev.miRows == dc.miRows && st.prev.miCols == dc.miCols {
		dc.prevMVs = st.prev.mvs
	}

	for p := range dc.aboveNonzero {
		// Two 4x4 columns per MI, before subsampling.
		dc.aboveNonzero[p] = make([]uint8, 2*dc.alignedCols)
	}
	dc.abovePartition = make([]uint8, dc.alignedCols)
	if dc.adaptive() {
		dc.counts = &frameCounts{}
	}
}

// adaptive reports whether the frame adapts its probabilities from
// symbol counts once decoded.
func (dc *DecodingContext) adaptive() bool {
	h := dc.Header
	return !h.ErrorResilient && !h.FrameParallel
}

// usePrevFrameMVs reports whether the previous frame's motion field takes
// part in candidate search.
func (dc *DecodingContext) usePrevFrameMVs() bool {
	return dc.prevMVs != nil
}

// commit folds the decoded frame into st.
func (dc *DecodingContext) commit() {
	h, st := dc.Header, dc.st
	if h.ShowExisting {
		st.lastShowFrame = true
		return
	}

	if dc.counts != nil {
		dc.adaptProbs()
	}
	if h.RefreshFrameContext {
		dc.savedCtx[h.FrameContextIdx] = dc.Probs
	}
	st.frameCtx = dc.savedCtx

	for i := 0; i < numRefSlots; i++ {
		if h.RefreshFlags&(1<<i) != 0 {
			st.refs[i] = refSlot{valid: true, width: h.Width, height: h.Height, color: h.Color}
		}
	}
	st.color = h.Color
	st.seg = h.Seg
	st.lfRefDeltas = h.LoopFilter.RefDeltas
	st.lfModeDeltas = h.LoopFilter.ModeDeltas
	if h.Seg.Enabled {
		st.segMap = dc.segMap
	} else if len(st.segMap) != len(dc.segMap) || h.IntraFrame() || h.ErrorResilient {
		st.segMap = dc.prevSegMap
	}
	st.prev = &FrameState{miRows: dc.miRows, miCols: dc.miCols, mvs: dc.mvs}
	st.lastWidth, st.lastHeight = h.Width, h.Height
	st.lastShowFrame = h.ShowFrame
	st.lastIntraOnly = h.IntraOnly
	st.lastFrameType = h.FrameType
}

// ModeInfoAt returns the decoded mode info covering MI cell (row, col),
// or nil if the cell is outside the frame or not decoded yet.
func (dc *DecodingContext) ModeInfoAt(row, col int) *ModeInfo {
	if row < 0 || col < 0 || row >= dc.miRows || col >= dc.miCols {
		return nil
	}
	return dc.grid[row*dc.miCols+col]
}
