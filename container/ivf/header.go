package ivf

import (
	"encoding/binary"
)

const (
	// FileHeaderSize is the size of the file header written by Writer.
	FileHeaderSize = 32

	// FrameHeaderSize is the size of the header preceding every frame.
	FrameHeaderSize = 12

	// MaxFrameSize bounds the frame sizes Reader accepts.
	MaxFrameSize = 256 << 20
)

var signature = [4]byte{'D', 'K', 'I', 'F'}

// FourCC codes of the codecs IVF carries.
const (
	FourCCVP8 = "VP80"
	FourCCVP9 = "VP90"
	FourCCAV1 = "AV01"
)

// FileHeader is the IVF file header.
type FileHeader struct {
	FourCC string
	Width  uint16
	Height uint16

	// Timestamps count TimebaseNum/TimebaseDen seconds.
	TimebaseDen uint32
	TimebaseNum uint32

	// FrameCount is informational; writers often leave it zero.
	FrameCount uint32

	// HeaderSize is the header length the file declares. Bytes past the
	// first 32 are skipped.
	HeaderSize uint16
}

// ParseFileHeader parses the first 32 bytes of an IVF file.
func ParseFileHeader(data []byte) (*FileHeader, error) {
	if len(data) < FileHeaderSize {
		return nil, ErrInvalidHeader
	}
	if [4]byte(data[0:4]) != signature {
		return nil, ErrInvalidHeader
	}
	if binary.LittleEndian.Uint16(data[4:6]) != 0 {
		return nil, ErrInvalidHeader
	}
	h := &FileHeader{
		HeaderSize:  binary.LittleEndian.Uint16(data[6:8]),
		FourCC:      string(data[8:12]),
		Width:       binary.LittleEndian.Uint16(data[12:14]),
		Height:      binary.LittleEndian.Uint16(data[14:16]),
		TimebaseDen: binary.LittleEndian.Uint32(data[16:20]),
		TimebaseNum: binary.LittleEndian.Uint32(data[20:24]),
		FrameCount:  binary.LittleEndian.Uint32(data[24:28]),
	}
	if h.HeaderSize < FileHeaderSize {
		return nil, ErrInvalidHeader
	}
	return h, nil
}

// Encode returns the 32-byte serialization of h. HeaderSize is always
// written as 32.
func (h *FileHeader) Encode() []byte {
	b := make([]byte, FileHeaderSize)
	copy(b[0:4], signature[:])
	binary.LittleEndian.PutUint16(b[6:8], FileHeaderSize)
	copy(b[8:12], h.FourCC)
	binary.LittleEndian.PutUint16(b[12:14], h.Width)
	binary.LittleEndian.PutUint16(b[14:16], h.Height)
	binary.LittleEndian.PutUint32(b[16:20], h.TimebaseDen)
	binary.LittleEndian.PutUint32(b[20:24], h.TimebaseNum)
	binary.LittleEndian.PutUint32(b[24:28], h.FrameCount)
	return b
}
