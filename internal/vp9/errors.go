package vp9

import "errors"

// Header errors.
var (
	// ErrInvalidFrameMarker indicates the 2-bit frame marker is not 2.
	ErrInvalidFrameMarker = errors.New("vp9: invalid frame marker")

	// ErrUnsupportedProfile indicates a profile above 3 or a set profile 3 reserved bit.
	ErrUnsupportedProfile = errors.New("vp9: unsupported profile")

	// ErrInvalidSyncCode indicates a key or intra-only frame without the sync code.
	ErrInvalidSyncCode = errors.New("vp9: invalid frame sync code")

	// ErrReservedBit indicates a reserved header bit is set.
	ErrReservedBit = errors.New("vp9: reserved bit set")

	// ErrUnsupportedColor indicates a subsampling mode the profile does not allow.
	ErrUnsupportedColor = errors.New("vp9: color format not supported by profile")

	// ErrInvalidTileCols indicates more than 64 tile columns.
	ErrInvalidTileCols = errors.New("vp9: invalid number of tile columns")

	// ErrInvalidHeaderSize indicates a zero compressed header size.
	ErrInvalidHeaderSize = errors.New("vp9: invalid compressed header size")

	// ErrTruncated indicates a header or tile size runs past the frame data.
	ErrTruncated = errors.New("vp9: truncated frame data")

	// ErrCorruptHeader indicates the compressed header failed to decode.
	ErrCorruptHeader = errors.New("vp9: corrupt compressed header")

	// ErrMissingReference indicates an inter frame refers to a slot never written.
	ErrMissingReference = errors.New("vp9: missing reference frame")

	// ErrInvalidRefSize indicates a reference frame with incompatible dimensions.
	ErrInvalidRefSize = errors.New("vp9: invalid reference frame size")
)

// Tile data errors.
var (
	// ErrBufferExhausted indicates tile data ended before the tile was decoded.
	ErrBufferExhausted = errors.New("vp9: tile data exhausted")

	// ErrNonZeroPadding indicates non-zero bits after the last symbol of a tile.
	ErrNonZeroPadding = errors.New("vp9: non-zero tile padding")

	// ErrInvalidBlockSize indicates a block size the chroma subsampling cannot represent.
	ErrInvalidBlockSize = errors.New("vp9: invalid block size")

	// ErrInvalidSegmentFeature indicates the skip feature on a sub-8x8 inter block.
	ErrInvalidSegmentFeature = errors.New("vp9: invalid use of segment feature on small block")

	// ErrInvalidMV indicates a decoded motion vector outside the representable range.
	ErrInvalidMV = errors.New("vp9: invalid motion vector")
)
