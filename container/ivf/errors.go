package ivf

import "errors"

// Package-level errors for IVF parsing.
var (
	// ErrInvalidHeader indicates the file header is malformed: a missing
	// "DKIF" signature, an unknown version or a short header length.
	ErrInvalidHeader = errors.New("ivf: invalid file header")

	// ErrUnexpectedEOF indicates the stream ended inside a header or frame.
	ErrUnexpectedEOF = errors.New("ivf: unexpected end of stream")

	// ErrFrameTooLarge indicates a frame size above MaxFrameSize.
	ErrFrameTooLarge = errors.New("ivf: frame too large")
)
