package govp9

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/govp9/internal/vp9"
)

// showExisting is a one-byte frame showing reference slot idx.
func showExisting(idx int) []byte {
	return []byte{0x88 | byte(idx)}
}

func TestDecodeFrameKeyFrame(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		sbs           int
	}{
		{"one superblock", 64, 64, 1},
		{"partial superblocks", 100, 70, 4},
		{"cif", 352, 288, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder()
			frame, err := d.DecodeFrame(vp9.SynthesizeKeyFrame(tt.width, tt.height))
			require.NoError(t, err)
			assert.Equal(t, tt.width, frame.Header.Width)
			assert.Equal(t, tt.height, frame.Header.Height)
			require.Len(t, frame.Tiles, 1)
			assert.Len(t, frame.Tiles[0].SuperBlocks, tt.sbs)

			mi := frame.Tiles[0].SuperBlocks[0].Blocks[0].Mode
			assert.Equal(t, vp9.Block8x8, mi.BlockSize)
			assert.True(t, mi.Skip)
			assert.False(t, mi.IsInter())
			assert.Equal(t, 1, d.FrameCount())
		})
	}
}

func TestDecodeFrameShowExisting(t *testing.T) {
	d := NewDecoder()
	_, err := d.DecodeFrame(showExisting(2))
	assert.ErrorIs(t, err, ErrMissingReference)

	_, err = d.DecodeFrame(vp9.SynthesizeKeyFrame(64, 64))
	require.NoError(t, err)
	frame, err := d.DecodeFrame(showExisting(2))
	require.NoError(t, err)
	assert.True(t, frame.Header.ShowExisting)
	assert.Empty(t, frame.Tiles)
	assert.Equal(t, 2, d.FrameCount())
}

func TestDecodeFrameErrorKeepsState(t *testing.T) {
	d := NewDecoder()
	key := vp9.SynthesizeKeyFrame(64, 64)

	_, err := d.DecodeFrame(key[:14])
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Contains(t, err.Error(), "frame 0")
	assert.Zero(t, d.FrameCount())

	// The failed key frame filled no reference slot.
	_, err = d.DecodeFrame(showExisting(0))
	assert.ErrorIs(t, err, ErrMissingReference)

	_, err = d.DecodeFrame(key)
	require.NoError(t, err)
	_, err = d.DecodeFrame(showExisting(0))
	assert.NoError(t, err)
}

func TestDecodeFrameHeaderErrors(t *testing.T) {
	d := NewDecoder()
	_, err := d.DecodeFrame([]byte{0x00, 0x00})
	assert.ErrorIs(t, err, ErrInvalidFrameMarker)

	key := vp9.SynthesizeKeyFrame(64, 64)
	bad := bytes.Clone(key)
	bad[2] ^= 0xff
	_, err = d.DecodeFrame(bad)
	assert.ErrorIs(t, err, ErrInvalidSyncCode)
}

func TestDecodeTileWorkers(t *testing.T) {
	data := vp9.SynthesizeKeyFrame(320, 192)
	want, err := NewDecoder().DecodeFrame(data)
	require.NoError(t, err)
	got, err := NewDecoder(WithTileWorkers(4)).DecodeFrame(data)
	require.NoError(t, err)
	assert.Equal(t, want.Tiles, got.Tiles)
}

func TestDecodeWithTracer(t *testing.T) {
	var buf bytes.Buffer
	d := NewDecoder(WithTracer(&LogTracer{W: &buf}), WithStrictPadding(true))
	_, err := d.DecodeFrame(vp9.SynthesizeKeyFrame(8, 8))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "[VP9:header] type=0 show=1 size=8x8"), lines[0])
	assert.Contains(t, buf.String(), "[VP9:block] mi=0,0 bsize=8x8")
}

func TestDecodeSuperframe(t *testing.T) {
	key := vp9.SynthesizeKeyFrame(64, 64)
	d := NewDecoder()
	frames, err := d.Decode(AppendSuperframe(nil, key, showExisting(1)))
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Len(t, frames[0].Tiles, 1)
	assert.True(t, frames[1].Header.ShowExisting)
	assert.Equal(t, 2, d.FrameCount())

	// Decoding stops at the failing frame.
	d.Reset()
	frames, err = d.Decode(AppendSuperframe(nil, key, []byte{0x00}, showExisting(1)))
	assert.ErrorIs(t, err, ErrInvalidFrameMarker)
	assert.Len(t, frames, 1)
	assert.Equal(t, 1, d.FrameCount())
}

func TestReset(t *testing.T) {
	d := NewDecoder()
	_, err := d.DecodeFrame(vp9.SynthesizeKeyFrame(64, 64))
	require.NoError(t, err)
	d.Reset()
	assert.Zero(t, d.FrameCount())
	_, err = d.DecodeFrame(showExisting(0))
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestParseFrameInfo(t *testing.T) {
	info, err := ParseFrameInfo(vp9.SynthesizeKeyFrame(176, 144))
	require.NoError(t, err)
	assert.Equal(t, vp9.KeyFrame, info.FrameType)
	assert.Equal(t, 176, info.Width)
	assert.Equal(t, 144, info.Height)

	info, err = ParseFrameInfo(showExisting(7))
	require.NoError(t, err)
	assert.True(t, info.ShowExisting)
	assert.Equal(t, 7, info.ShowExistingIdx)

	_, err = ParseFrameInfo([]byte{0x40})
	assert.ErrorIs(t, err, ErrInvalidFrameMarker)
}

func BenchmarkDecodeFrame(b *testing.B) {
	data := vp9.SynthesizeKeyFrame(1280, 720)
	d := NewDecoder()
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := d.DecodeFrame(data); err != nil {
			b.Fatal(err)
		}
	}
}
