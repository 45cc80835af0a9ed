package ivf

import (
	"encoding/binary"
	"errors"
	"io"
)

// Reader reads frames from an IVF stream.
type Reader struct {
	r      io.Reader
	Header *FileHeader // Parsed file header (set by NewReader)
	frames int         // Frames returned so far
	hdr    [FrameHeaderSize]byte
}

// NewReader parses the IVF file header from r.
// Returns ErrInvalidHeader if r does not start with a valid header.
func NewReader(r io.Reader) (*Reader, error) {
	buf := make([]byte, FileHeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrInvalidHeader
		}
		return nil, err
	}
	h, err := ParseFileHeader(buf)
	if err != nil {
		return nil, err
	}
	// Skip any header extension.
	if extra := int64(h.HeaderSize) - FileHeaderSize; extra > 0 {
		if _, err := io.CopyN(io.Discard, r, extra); err != nil {
			return nil, ErrInvalidHeader
		}
	}
	return &Reader{r: r, Header: h}, nil
}

// ReadFrame reads the next frame and its timestamp.
// Returns io.EOF at a clean end of stream and ErrUnexpectedEOF when the
// stream ends inside a frame.
func (ir *Reader) ReadFrame() (frame []byte, pts uint64, err error) {
	n, err := io.ReadFull(ir.r, ir.hdr[:])
	if err != nil {
		if n == 0 && errors.Is(err, io.EOF) {
			return nil, 0, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, 0, ErrUnexpectedEOF
		}
		return nil, 0, err
	}
	size := binary.LittleEndian.Uint32(ir.hdr[0:4])
	pts = binary.LittleEndian.Uint64(ir.hdr[4:12])
	if size > MaxFrameSize {
		return nil, 0, ErrFrameTooLarge
	}

	// A corrupt size allocates no more than the data present.
	frame, err = io.ReadAll(io.LimitReader(ir.r, int64(size)))
	if err != nil {
		return nil, 0, err
	}
	if len(frame) < int(size) {
		return nil, 0, ErrUnexpectedEOF
	}
	ir.frames++
	return frame, pts, nil
}

// Frames returns the number of frames read so far.
func (ir *Reader) Frames() int {
	return ir.frames
}
