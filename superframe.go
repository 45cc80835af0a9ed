// superframe.go implements splitting of VP9 superframes into frames.

package govp9

// superframe index marker: 0b110 in the top bits of the last byte.
const (
	superframeMarkerMask = 0xe0
	superframeMarker     = 0xc0
)

// SplitSuperframe returns the frames packed in data. Without a superframe
// index, data is a single frame and is returned as is. Zero-sized frames
// in an index are dropped.
//
// The index is the last 2+mag*n bytes of data: a marker byte, n frame
// sizes of mag bytes each, little endian, and the marker byte again. The
// marker holds n-1 in bits 0-2 and mag-1 in bits 3-4.
func SplitSuperframe(data []byte) ([][]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	marker := data[len(data)-1]
	if marker&superframeMarkerMask != superframeMarker {
		return [][]byte{data}, nil
	}
	frames := int(marker&7) + 1
	mag := int(marker>>3&3) + 1
	indexSize := 2 + mag*frames
	if len(data) < indexSize || data[len(data)-indexSize] != marker {
		return [][]byte{data}, nil
	}

	index := data[len(data)-indexSize+1:]
	payload := data[:len(data)-indexSize]
	out := make([][]byte, 0, frames)
	offset := 0
	for i := 0; i < frames; i++ {
		size := 0
		for b := 0; b < mag; b++ {
			size |= int(index[i*mag+b]) << (8 * b)
		}
		if size > len(payload)-offset {
			return nil, ErrInvalidSuperframe
		}
		if size > 0 {
			out = append(out, payload[offset:offset+size])
		}
		offset += size
	}
	return out, nil
}

// AppendSuperframe packs between one and eight frames into a superframe
// appended to dst. A single frame is appended without an index.
func AppendSuperframe(dst []byte, frames ...[]byte) []byte {
	if len(frames) == 1 {
		return append(dst, frames[0]...)
	}
	maxSize := 0
	for _, f := range frames {
		dst = append(dst, f...)
		maxSize = max(maxSize, len(f))
	}
	mag := 1
	for maxSize >= 1<<(8*mag) && mag < 4 {
		mag++
	}
	marker := byte(superframeMarker | (mag-1)<<3 | (len(frames) - 1))
	dst = append(dst, marker)
	for _, f := range frames {
		for b := 0; b < mag; b++ {
			dst = append(dst, byte(len(f)>>(8*b)))
		}
	}
	return append(dst, marker)
}
