package ivf

import (
	"encoding/binary"
	"io"
)

// Writer writes frames to an IVF stream.
type Writer struct {
	w      io.Writer
	frames uint32
}

// NewWriter writes h to w and returns a Writer for the frames that follow.
func NewWriter(w io.Writer, h FileHeader) (*Writer, error) {
	if _, err := w.Write(h.Encode()); err != nil {
		return nil, err
	}
	return &Writer{w: w}, nil
}

// WriteFrame writes one frame with its timestamp.
func (iw *Writer) WriteFrame(frame []byte, pts uint64) error {
	if len(frame) > MaxFrameSize {
		return ErrFrameTooLarge
	}
	var hdr [FrameHeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(len(frame)))
	binary.LittleEndian.PutUint64(hdr[4:12], pts)
	if _, err := iw.w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := iw.w.Write(frame); err != nil {
		return err
	}
	iw.frames++
	return nil
}

// Frames returns the number of frames written.
func (iw *Writer) Frames() uint32 {
	return iw.frames
}
