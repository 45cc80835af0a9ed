package vp9

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/govp9/internal/bitreader"
)

func TestParseSynthesizedKeyFrame(t *testing.T) {
	data := SynthesizeKeyFrame(352, 288)
	dc, err := NewDecodingContext(data, NewState())
	require.NoError(t, err)

	h := dc.Header
	assert.Equal(t, 0, h.Profile)
	assert.Equal(t, KeyFrame, h.FrameType)
	assert.True(t, h.ShowFrame)
	assert.True(t, h.IntraFrame())
	assert.Equal(t, 352, h.Width)
	assert.Equal(t, 288, h.RenderHeight)
	assert.Equal(t, ColorConfig{BitDepth: 8, ColorSpace: ColorSpaceBT601, SubsamplingX: 1, SubsamplingY: 1}, h.Color)
	assert.Equal(t, uint8(0xff), h.RefreshFlags)
	assert.Equal(t, 60, h.Quant.BaseQIdx)
	assert.False(t, h.Quant.Lossless)
	assert.Equal(t, Allow32x32, h.TxMode)
	assert.Equal(t, 0, h.Tile.Log2Cols)
	assert.Equal(t, 44, h.MiCols())
	assert.Equal(t, 6, h.SbCols())
	assert.Equal(t, len(data), h.UncompressedSize+h.CompressedSize+len(dc.tileData))
}

func TestParseHeaderErrors(t *testing.T) {
	frame := SynthesizeKeyFrame(64, 64)
	corrupt := func(i int, v byte) []byte {
		d := append([]byte(nil), frame...)
		d[i] = v
		return d
	}
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"frame marker", corrupt(0, 0x00), ErrInvalidFrameMarker},
		{"sync code", corrupt(2, 0x00), ErrInvalidSyncCode},
		{"truncated header", frame[:4], bitreader.ErrUnexpectedEnd},
		{"truncated compressed header", frame[:14], ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecodingContext(tt.data, NewState())
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := NewDecodingContext(frame[:4], NewState())
	assert.ErrorContains(t, err, "uncompressed header, 32 bits read")
}

func showExistingFrame(idx int) []byte {
	var w bitreader.Writer
	w.F(frameMarker, 2)
	w.F(0, 2)
	w.Bit(1)
	w.F(idx, 3)
	return w.Bytes()
}

func TestShowExistingFrame(t *testing.T) {
	st := NewState()
	_, err := NewDecodingContext(showExistingFrame(5), st)
	assert.ErrorIs(t, err, ErrMissingReference)

	st.refs[5].valid = true
	dc, err := NewDecodingContext(showExistingFrame(5), st)
	require.NoError(t, err)
	assert.True(t, dc.Header.ShowExisting)
	assert.Equal(t, 5, dc.Header.ShowExistingIdx)
	assert.Equal(t, 1, dc.Header.UncompressedSize)

	frame, err := dc.Decode(Options{})
	require.NoError(t, err)
	assert.Empty(t, frame.Tiles)
	assert.True(t, st.lastShowFrame)
}

// interFrame builds the uncompressed header of an inter frame that takes
// its size from LAST and codes the given filter literal.
func interFrame(filterLiteral int, switchable bool) []byte {
	var w bitreader.Writer
	w.F(frameMarker, 2)
	w.F(0, 2)
	w.Bit(0) // show_existing_frame
	w.Bit(int(NonKeyFrame))
	w.Bit(1) // show_frame
	w.Bit(0) // error_resilient_mode
	w.F(0, 2)
	w.F(0x01, 8) // refresh LAST
	for i := 0; i < numRefs; i++ {
		w.F(i, 3)
		w.Bit(b2i(i == 2)) // ALTREF sign bias
	}
	w.Bit(1) // size from LAST
	w.Bit(0) // render size
	w.Bit(1) // allow_high_precision_mv
	w.Flag(switchable)
	if !switchable {
		w.F(filterLiteral, 2)
	}
	w.Bit(1)   // refresh_frame_context
	w.Bit(0)   // frame_parallel_decoding_mode
	w.F(2, 2)  // frame_context_idx
	w.F(10, 6) // loop filter level
	w.F(3, 3)
	w.Bit(0)
	w.F(0, 8) // base_q_idx
	w.F(0, 3)
	w.Bit(0) // segmentation
	w.Bit(0) // tile rows
	w.F(1, 16)
	return w.Bytes()
}

func TestParseInterFrameHeader(t *testing.T) {
	st := NewState()
	key, err := NewDecodingContext(SynthesizeKeyFrame(64, 48), st)
	require.NoError(t, err)
	_, err = key.Decode(Options{})
	require.NoError(t, err)

	h, err := parseUncompressedHeader(interFrame(0, false), st)
	require.NoError(t, err)
	assert.Equal(t, NonKeyFrame, h.FrameType)
	assert.False(t, h.IntraFrame())
	assert.Equal(t, 64, h.Width)
	assert.Equal(t, 48, h.Height)
	assert.Equal(t, [numRefs]int{0, 1, 2}, h.RefIdx)
	assert.True(t, h.RefSignBias[RefAltRef])
	assert.False(t, h.RefSignBias[RefLast])
	assert.True(t, h.AllowHighPrecisionMV)
	assert.Equal(t, FilterEightTapSmooth, h.InterpFilter)
	assert.Equal(t, 2, h.FrameContextIdx)
	assert.Equal(t, 10, h.LoopFilter.Level)
	assert.True(t, h.Quant.Lossless)
	assert.Equal(t, 1, h.CompressedSize)
	// Inter frames inherit the color config.
	assert.Equal(t, 8, h.Color.BitDepth)

	h, err = parseUncompressedHeader(interFrame(0, true), st)
	require.NoError(t, err)
	assert.Equal(t, FilterSwitchable, h.InterpFilter)
}

func TestInterFrameNeedsReferences(t *testing.T) {
	_, err := parseUncompressedHeader(interFrame(1, false), NewState())
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestTileColsLog2Range(t *testing.T) {
	tests := []struct {
		sbCols           int
		minLog2, maxLog2 int
	}{
		{1, 0, 0},
		{4, 0, 0},
		{8, 0, 1},
		{64, 0, 4},
		{65, 1, 4},
	}
	for _, tt := range tests {
		minLog2, maxLog2 := tileColsLog2Range(tt.sbCols)
		assert.Equal(t, tt.minLog2, minLog2, "sbCols %d", tt.sbCols)
		assert.Equal(t, tt.maxLog2, maxLog2, "sbCols %d", tt.sbCols)
	}
}

func TestTileOffset(t *testing.T) {
	// 44 MI columns are 6 superblocks; four tiles split them 1, 2, 1, 2.
	got := make([]int, 5)
	for i := range got {
		got[i] = tileOffset(i, 44, 2)
	}
	assert.Equal(t, []int{0, 8, 24, 32, 44}, got)
}

func FuzzParseUncompressedHeader(f *testing.F) {
	f.Add(SynthesizeKeyFrame(64, 64))
	f.Add(SynthesizeKeyFrame(130, 66))
	f.Add(showExistingFrame(0))
	f.Add(interFrame(2, false))
	f.Fuzz(func(t *testing.T, data []byte) {
		h, err := parseUncompressedHeader(data, NewState())
		if err != nil {
			return
		}
		if h.Width*h.Height > 1<<20 {
			return
		}
		dc, err := NewDecodingContext(data, NewState())
		if err != nil {
			return
		}
		_, _ = dc.Decode(Options{})
	})
}

func TestPeekFrameInfo(t *testing.T) {
	info, err := PeekFrameInfo(SynthesizeKeyFrame(352, 288))
	require.NoError(t, err)
	assert.Equal(t, KeyFrame, info.FrameType)
	assert.True(t, info.ShowFrame)
	assert.Equal(t, 352, info.Width)
	assert.Equal(t, 288, info.Height)
	assert.Equal(t, 8, info.Color.BitDepth)

	info, err = PeekFrameInfo(showExistingFrame(5))
	require.NoError(t, err)
	assert.True(t, info.ShowExisting)
	assert.Equal(t, 5, info.ShowExistingIdx)

	// Inter frames peek without references.
	info, err = PeekFrameInfo(interFrame(0, true))
	require.NoError(t, err)
	assert.Equal(t, NonKeyFrame, info.FrameType)
	assert.Zero(t, info.Width)

	var w bitreader.Writer
	w.F(frameMarker, 2)
	w.F(0, 2)
	w.Bit(0)
	w.Bit(int(NonKeyFrame))
	w.Bit(0) // show_frame
	w.Bit(0) // error_resilient_mode
	w.Bit(1) // intra_only
	w.F(0, 2)
	w.F(syncCode, 24)
	w.F(0x04, 8)
	w.F(99, 16)
	w.F(49, 16)
	info, err = PeekFrameInfo(w.Bytes())
	require.NoError(t, err)
	assert.True(t, info.IntraOnly)
	assert.False(t, info.ShowFrame)
	assert.Equal(t, 100, info.Width)
	assert.Equal(t, 50, info.Height)
	assert.Equal(t, 1, info.Color.SubsamplingX)

	_, err = PeekFrameInfo([]byte{0x00})
	assert.ErrorIs(t, err, ErrInvalidFrameMarker)
	_, err = PeekFrameInfo(SynthesizeKeyFrame(64, 64)[:3])
	assert.ErrorIs(t, err, bitreader.ErrUnexpectedEnd)
}
