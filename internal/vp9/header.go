package vp9

import (
	"github.com/pkg/errors"

	"github.com/thesyncim/govp9/internal/bitreader"
)

// ColorConfig is the bit depth and chroma layout of a frame.
type ColorConfig struct {
	BitDepth     int
	ColorSpace   int
	FullRange    bool
	SubsamplingX int
	SubsamplingY int
}

// LoopFilterParams are the loop filter syntax elements. The filter itself
// runs in the reconstruction stage.
type LoopFilterParams struct {
	Level        int
	Sharpness    int
	DeltaEnabled bool
	DeltaUpdate  bool
	RefDeltas    [numRefFrames]int8
	ModeDeltas   [2]int8
}

// QuantParams are the frame quantizer indices.
type QuantParams struct {
	BaseQIdx   int
	DeltaQYDC  int
	DeltaQUVDC int
	DeltaQUVAC int
	Lossless   bool
}

// Segmentation holds the segmentation parameters. Feature data persists
// across frames until a frame updates or resets it.
type Segmentation struct {
	Enabled        bool
	UpdateMap      bool
	TemporalUpdate bool
	UpdateData     bool
	AbsDelta       bool
	TreeProbs      [maxSegments - 1]uint8
	PredProbs      [3]uint8
	FeatureEnabled [maxSegments][numSegFeatures]bool
	FeatureData    [maxSegments][numSegFeatures]int16
}

// FeatureActive reports whether feature f applies to segment id.
func (s *Segmentation) FeatureActive(id uint8, f int) bool {
	return s.Enabled && s.FeatureEnabled[id][f]
}

func (s *Segmentation) clearFeatures() {
	s.FeatureEnabled = [maxSegments][numSegFeatures]bool{}
	s.FeatureData = [maxSegments][numSegFeatures]int16{}
}

// TileInfo is the log2 tile grid of a frame.
type TileInfo struct {
	Log2Cols int
	Log2Rows int
}

// FrameHeader is the parsed uncompressed header plus the frame-level
// fields of the compressed header.
type FrameHeader struct {
	Profile         int
	ShowExisting    bool
	ShowExistingIdx int

	FrameType         FrameType
	ShowFrame         bool
	ErrorResilient    bool
	IntraOnly         bool
	ResetFrameContext int

	Color        ColorConfig
	Width        int
	Height       int
	RenderWidth  int
	RenderHeight int

	RefreshFlags         uint8
	RefIdx               [numRefs]int
	RefSignBias          [numRefFrames]bool
	AllowHighPrecisionMV bool
	InterpFilter         InterpFilter

	RefreshFrameContext bool
	FrameParallel       bool
	FrameContextIdx     int

	LoopFilter LoopFilterParams
	Quant      QuantParams
	Seg        Segmentation
	Tile       TileInfo

	// UncompressedSize is the byte length of the uncompressed header and
	// CompressedSize that of the compressed header following it.
	UncompressedSize int
	CompressedSize   int

	// ResetContexts is the set of saved probability contexts the frame
	// resets to defaults, as a bit mask.
	ResetContexts uint8

	TxMode        TxMode
	ReferenceMode ReferenceMode
	CompFixedRef  RefFrame
	CompVarRef    [2]RefFrame
}

// IntraFrame reports whether the frame has no inter prediction.
func (h *FrameHeader) IntraFrame() bool {
	return h.FrameType == KeyFrame || h.IntraOnly
}

// MiCols returns the frame width in 8x8 units.
func (h *FrameHeader) MiCols() int { return (h.Width + 7) >> miSizeLog2 }

// MiRows returns the frame height in 8x8 units.
func (h *FrameHeader) MiRows() int { return (h.Height + 7) >> miSizeLog2 }

// SbCols returns the frame width in 64x64 superblocks.
func (h *FrameHeader) SbCols() int { return (h.MiCols() + sbMiSize - 1) >> sbMiLog2 }

// SbRows returns the frame height in 64x64 superblocks.
func (h *FrameHeader) SbRows() int { return (h.MiRows() + sbMiSize - 1) >> sbMiLog2 }

// parseUncompressedHeader reads the uncompressed header. Persistent
// parameters the frame does not code (color config of inter frames,
// segmentation and loop filter deltas) are taken from st. st itself is
// not modified.
func parseUncompressedHeader(data []byte, st *State) (*FrameHeader, error) {
	br := bitreader.New(data)
	h := &FrameHeader{
		Color:      st.color,
		Seg:        st.seg,
		LoopFilter: LoopFilterParams{RefDeltas: st.lfRefDeltas, ModeDeltas: st.lfModeDeltas},
	}

	if br.F(2) != frameMarker {
		return nil, ErrInvalidFrameMarker
	}
	h.Profile = br.Bit() | br.Bit()<<1
	if h.Profile > 2 {
		h.Profile += br.Bit()
	}
	if h.Profile >= maxProfile {
		return nil, ErrUnsupportedProfile
	}

	h.ShowExisting = br.Flag()
	if h.ShowExisting {
		h.ShowExistingIdx = br.F(3)
		h.ShowFrame = true
		if err := br.Err(); err != nil {
			return nil, errors.Wrap(err, "vp9: show existing frame")
		}
		if !st.refs[h.ShowExistingIdx].valid {
			return nil, errors.Wrapf(ErrMissingReference, "slot %d", h.ShowExistingIdx)
		}
		br.ByteAlign()
		h.UncompressedSize = br.BytePos()
		return h, nil
	}

	h.FrameType = FrameType(br.Bit())
	h.ShowFrame = br.Flag()
	h.ErrorResilient = br.Flag()

	if h.FrameType == KeyFrame {
		if br.F(24) != syncCode {
			return nil, ErrInvalidSyncCode
		}
		if err := readColorConfig(br, h); err != nil {
			return nil, err
		}
		h.RefreshFlags = 0xff
		readFrameSize(br, h)
		readRenderSize(br, h)
	} else {
		if !h.ShowFrame {
			h.IntraOnly = br.Flag()
		}
		if !h.ErrorResilient {
			h.ResetFrameContext = br.F(2)
		}
		if h.IntraOnly {
			if br.F(24) != syncCode {
				return nil, ErrInvalidSyncCode
			}
			if h.Profile > 0 {
				if err := readColorConfig(br, h); err != nil {
					return nil, err
				}
			} else {
				h.Color = ColorConfig{BitDepth: 8, ColorSpace: ColorSpaceBT601, SubsamplingX: 1, SubsamplingY: 1}
			}
			h.RefreshFlags = uint8(br.F(8))
			readFrameSize(br, h)
			readRenderSize(br, h)
		} else {
			h.RefreshFlags = uint8(br.F(8))
			for i := 0; i < numRefs; i++ {
				h.RefIdx[i] = br.F(3)
				h.RefSignBias[RefLast+RefFrame(i)] = br.Flag()
				if !st.refs[h.RefIdx[i]].valid {
					return nil, errors.Wrapf(ErrMissingReference, "slot %d", h.RefIdx[i])
				}
			}
			if err := readFrameSizeWithRefs(br, h, st); err != nil {
				return nil, err
			}
			h.AllowHighPrecisionMV = br.Flag()
			if br.Flag() {
				h.InterpFilter = FilterSwitchable
			} else {
				h.InterpFilter = literalToFilter[br.F(2)]
			}
		}
	}

	if !h.ErrorResilient {
		h.RefreshFrameContext = br.Flag()
		h.FrameParallel = br.Flag()
	} else {
		h.FrameParallel = true
	}
	h.FrameContextIdx = br.F(2)

	if h.IntraFrame() || h.ErrorResilient {
		h.setupPastIndependence()
	}

	readLoopFilter(br, &h.LoopFilter)
	readQuant(br, &h.Quant)
	readSegmentation(br, &h.Seg)
	if err := readTileInfo(br, h); err != nil {
		return nil, err
	}
	h.CompressedSize = br.F(16)

	if err := br.Err(); err != nil {
		return nil, errors.Wrapf(err, "vp9: uncompressed header, %d bits read", br.BitPos())
	}
	if h.CompressedSize == 0 {
		return nil, ErrInvalidHeaderSize
	}
	br.ByteAlign()
	h.UncompressedSize = br.BytePos()
	return h, nil
}

// setupPastIndependence resets the header-carried state that intra and
// error resilient frames must not inherit.
func (h *FrameHeader) setupPastIndependence() {
	switch {
	case h.FrameType == KeyFrame || h.ErrorResilient || h.ResetFrameContext == 3:
		h.ResetContexts = 1<<numFrameCtxs - 1
	case h.ResetFrameContext == 2:
		h.ResetContexts = 1 << h.FrameContextIdx
	}
	h.FrameContextIdx = 0
	h.Seg.clearFeatures()
	h.Seg.AbsDelta = false
	h.LoopFilter.RefDeltas = defaultLFRefDeltas
	h.LoopFilter.ModeDeltas = [2]int8{}
	h.RefSignBias = [numRefFrames]bool{}
}

var defaultLFRefDeltas = [numRefFrames]int8{1, 0, -1, -1}

func readColorConfig(br *bitreader.Reader, h *FrameHeader) error {
	c := &h.Color
	c.BitDepth = 8
	if h.Profile >= 2 {
		c.BitDepth = 10
		if br.Flag() {
			c.BitDepth = 12
		}
	}
	c.ColorSpace = br.F(3)
	odd := h.Profile == 1 || h.Profile == 3
	if c.ColorSpace != ColorSpaceSRGB {
		c.FullRange = br.Flag()
		if odd {
			c.SubsamplingX = br.Bit()
			c.SubsamplingY = br.Bit()
			if c.SubsamplingX == 1 && c.SubsamplingY == 1 {
				return errors.Wrap(ErrUnsupportedColor, "4:2:0 in profile 1 or 3")
			}
			if br.Bit() != 0 {
				return ErrReservedBit
			}
		} else {
			c.SubsamplingX, c.SubsamplingY = 1, 1
		}
		return nil
	}
	c.FullRange = true
	if !odd {
		return errors.Wrap(ErrUnsupportedColor, "4:4:4 in profile 0 or 2")
	}
	c.SubsamplingX, c.SubsamplingY = 0, 0
	if br.Bit() != 0 {
		return ErrReservedBit
	}
	return nil
}

func readFrameSize(br *bitreader.Reader, h *FrameHeader) {
	h.Width = br.F(16) + 1
	h.Height = br.F(16) + 1
}

func readRenderSize(br *bitreader.Reader, h *FrameHeader) {
	h.RenderWidth, h.RenderHeight = h.Width, h.Height
	if br.Flag() {
		h.RenderWidth = br.F(16) + 1
		h.RenderHeight = br.F(16) + 1
	}
}

func readFrameSizeWithRefs(br *bitreader.Reader, h *FrameHeader, st *State) error {
	found := false
	for i := 0; i < numRefs; i++ {
		if br.Flag() {
			ref := &st.refs[h.RefIdx[i]]
			h.Width, h.Height = ref.width, ref.height
			found = true
			break
		}
	}
	if !found {
		readFrameSize(br, h)
	}

	valid := false
	for i := 0; i < numRefs; i++ {
		ref := &st.refs[h.RefIdx[i]]
		if 2*h.Width >= ref.width && 2*h.Height >= ref.height &&
			h.Width <= 16*ref.width && h.Height <= 16*ref.height {
			valid = true
		}
		if ref.color.BitDepth != h.Color.BitDepth ||
			ref.color.SubsamplingX != h.Color.SubsamplingX ||
			ref.color.SubsamplingY != h.Color.SubsamplingY {
			return errors.Wrapf(ErrInvalidRefSize, "slot %d has incompatible color format", h.RefIdx[i])
		}
	}
	if !valid {
		return ErrInvalidRefSize
	}
	readRenderSize(br, h)
	return nil
}

func readLoopFilter(br *bitreader.Reader, lf *LoopFilterParams) {
	lf.Level = br.F(6)
	lf.Sharpness = br.F(3)
	lf.DeltaUpdate = false
	lf.DeltaEnabled = br.Flag()
	if !lf.DeltaEnabled {
		return
	}
	lf.DeltaUpdate = br.Flag()
	if !lf.DeltaUpdate {
		return
	}
	for i := range lf.RefDeltas {
		if br.Flag() {
			lf.RefDeltas[i] = int8(br.S(6))
		}
	}
	for i := range lf.ModeDeltas {
		if br.Flag() {
			lf.ModeDeltas[i] = int8(br.S(6))
		}
	}
}

func readDeltaQ(br *bitreader.Reader) int {
	if br.Flag() {
		return br.S(4)
	}
	return 0
}

func readQuant(br *bitreader.Reader, q *QuantParams) {
	q.BaseQIdx = br.F(8)
	q.DeltaQYDC = readDeltaQ(br)
	q.DeltaQUVDC = readDeltaQ(br)
	q.DeltaQUVAC = readDeltaQ(br)
	q.Lossless = q.BaseQIdx == 0 && q.DeltaQYDC == 0 && q.DeltaQUVDC == 0 && q.DeltaQUVAC == 0
}

func readProbOrMax(br *bitreader.Reader) uint8 {
	if br.Flag() {
		return uint8(br.F(8))
	}
	return 255
}

func readSegmentation(br *bitreader.Reader, s *Segmentation) {
	s.UpdateMap = false
	s.UpdateData = false
	s.Enabled = br.Flag()
	if !s.Enabled {
		return
	}
	s.UpdateMap = br.Flag()
	if s.UpdateMap {
		for i := range s.TreeProbs {
			s.TreeProbs[i] = readProbOrMax(br)
		}
		s.TemporalUpdate = br.Flag()
		for i := range s.PredProbs {
			s.PredProbs[i] = 255
			if s.TemporalUpdate {
				s.PredProbs[i] = readProbOrMax(br)
			}
		}
	}
	s.UpdateData = br.Flag()
	if !s.UpdateData {
		return
	}
	s.AbsDelta = br.Flag()
	s.clearFeatures()
	for i := 0; i < maxSegments; i++ {
		for j := 0; j < numSegFeatures; j++ {
			data := 0
			if br.Flag() {
				s.FeatureEnabled[i][j] = true
				data = br.F(segFeatureBits[j])
				if data > segFeatureMax[j] {
					data = segFeatureMax[j]
				}
				if segFeatureSigned[j] && br.Flag() {
					data = -data
				}
			}
			s.FeatureData[i][j] = int16(data)
		}
	}
}

// tileColsLog2Range returns the allowed log2 tile column counts for a
// frame sbCols superblocks wide.
func tileColsLog2Range(sbCols int) (minLog2, maxLog2 int) {
	for (maxTileWidthB64 << minLog2) < sbCols {
		minLog2++
	}
	maxLog2 = 1
	for (sbCols >> maxLog2) >= minTileWidthB64 {
		maxLog2++
	}
	return minLog2, maxLog2 - 1
}

func readTileInfo(br *bitreader.Reader, h *FrameHeader) error {
	minLog2, maxLog2 := tileColsLog2Range(h.SbCols())
	h.Tile.Log2Cols = minLog2
	for ones := maxLog2 - minLog2; ones > 0 && br.Flag(); ones-- {
		h.Tile.Log2Cols++
	}
	if h.Tile.Log2Cols > 6 {
		return ErrInvalidTileCols
	}
	h.Tile.Log2Rows = br.Bit()
	if h.Tile.Log2Rows != 0 {
		h.Tile.Log2Rows += br.Bit()
	}
	return nil
}

// tileOffset returns the first MI row or column of tile idx out of
// 1<<log2 tiles spanning mis units.
func tileOffset(idx, mis, log2 int) int {
	sbs := (mis + sbMiSize - 1) >> sbMiLog2
	off := ((idx * sbs) >> log2) << sbMiLog2
	if off > mis {
		return mis
	}
	return off
}

// FrameInfo is what the start of a frame tells without decoder state.
// Width and Height are zero for inter frames, whose size may come from a
// reference.
type FrameInfo struct {
	Profile         int
	ShowExisting    bool
	ShowExistingIdx int
	FrameType       FrameType
	ShowFrame       bool
	IntraOnly       bool
	Color           ColorConfig
	Width           int
	Height          int
}

// PeekFrameInfo parses the leading fields of an uncompressed header.
func PeekFrameInfo(data []byte) (FrameInfo, error) {
	br := bitreader.New(data)
	if br.F(2) != frameMarker {
		return FrameInfo{}, ErrInvalidFrameMarker
	}
	h := &FrameHeader{}
	h.Profile = br.Bit() | br.Bit()<<1
	if h.Profile > 2 {
		h.Profile += br.Bit()
	}
	if h.Profile >= maxProfile {
		return FrameInfo{}, ErrUnsupportedProfile
	}
	info := FrameInfo{Profile: h.Profile}
	if info.ShowExisting = br.Flag(); info.ShowExisting {
		info.ShowExistingIdx = br.F(3)
		info.ShowFrame = true
		return info, errors.Wrap(br.Err(), "vp9: show existing frame")
	}

	info.FrameType = FrameType(br.Bit())
	info.ShowFrame = br.Flag()
	errorRes := br.Flag()
	if info.FrameType != KeyFrame {
		if !info.ShowFrame {
			info.IntraOnly = br.Flag()
		}
		if !errorRes {
			br.F(2)
		}
		if !info.IntraOnly {
			return info, errors.Wrap(br.Err(), "vp9: frame info")
		}
	}
	if br.F(24) != syncCode {
		if err := br.Err(); err != nil {
			return info, errors.Wrap(err, "vp9: frame info")
		}
		return info, ErrInvalidSyncCode
	}
	if info.FrameType == KeyFrame || h.Profile > 0 {
		if err := readColorConfig(br, h); err != nil {
			return info, err
		}
	} else {
		h.Color = ColorConfig{BitDepth: 8, ColorSpace: ColorSpaceBT601, SubsamplingX: 1, SubsamplingY: 1}
	}
	if info.IntraOnly {
		br.F(8)
	}
	readFrameSize(br, h)
	if err := br.Err(); err != nil {
		return info, errors.Wrap(err, "vp9: frame info")
	}
	info.Color, info.Width, info.Height = h.Color, h.Width, h.Height
	return info, nil
}
