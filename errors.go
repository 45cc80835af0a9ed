// errors.go defines public error types for the govp9 package.

package govp9

import (
	"errors"

	"github.com/thesyncim/govp9/internal/vp9"
)

// Header errors. Frames failing with these leave the decoder unchanged.
var (
	// ErrInvalidFrameMarker indicates the frame does not start with the
	// 2-bit frame marker.
	ErrInvalidFrameMarker = vp9.ErrInvalidFrameMarker

	// ErrUnsupportedProfile indicates a profile above 3.
	ErrUnsupportedProfile = vp9.ErrUnsupportedProfile

	// ErrInvalidSyncCode indicates a key or intra-only frame without the
	// sync code.
	ErrInvalidSyncCode = vp9.ErrInvalidSyncCode

	// ErrReservedBit indicates a reserved header bit set to 1.
	ErrReservedBit = vp9.ErrReservedBit

	// ErrUnsupportedColor indicates a chroma layout the profile forbids.
	ErrUnsupportedColor = vp9.ErrUnsupportedColor

	// ErrInvalidTileCols indicates a tile column count outside the range
	// the frame width allows.
	ErrInvalidTileCols = vp9.ErrInvalidTileCols

	// ErrInvalidHeaderSize indicates a zero compressed header size.
	ErrInvalidHeaderSize = vp9.ErrInvalidHeaderSize

	// ErrTruncated indicates a header or tile size pointing past the end
	// of the frame.
	ErrTruncated = vp9.ErrTruncated

	// ErrCorruptHeader indicates a compressed header whose marker bit or
	// padding is wrong.
	ErrCorruptHeader = vp9.ErrCorruptHeader

	// ErrMissingReference indicates a reference to a slot no frame has
	// filled.
	ErrMissingReference = vp9.ErrMissingReference

	// ErrInvalidRefSize indicates a frame size no reference can scale to.
	ErrInvalidRefSize = vp9.ErrInvalidRefSize
)

// Tile errors.
var (
	// ErrBufferExhausted indicates tile data ran out before the last
	// superblock.
	ErrBufferExhausted = vp9.ErrBufferExhausted

	// ErrNonZeroPadding indicates nonzero bits after the last symbol of a
	// tile. Only reported with WithStrictPadding.
	ErrNonZeroPadding = vp9.ErrNonZeroPadding

	// ErrInvalidBlockSize indicates a block size that cannot occur.
	ErrInvalidBlockSize = vp9.ErrInvalidBlockSize

	// ErrInvalidSegmentFeature indicates the segment skip feature on a
	// block smaller than 8x8.
	ErrInvalidSegmentFeature = vp9.ErrInvalidSegmentFeature

	// ErrInvalidMV indicates a motion vector outside the coded range.
	ErrInvalidMV = vp9.ErrInvalidMV
)

// ErrInvalidSuperframe indicates a superframe index whose frame sizes
// exceed the data.
var ErrInvalidSuperframe = errors.New("govp9: invalid superframe index")
