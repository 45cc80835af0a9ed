// decoder.go implements the public Decoder API for VP9 syntax decoding.

package govp9

import (
	"github.com/pkg/errors"

	"github.com/thesyncim/govp9/internal/vp9"
)

// Decoded syntax types.
type (
	// Frame is the decoded syntax of one frame. Tiles are in raster
	// order; a shown existing frame has a header and no tiles.
	Frame = vp9.Frame

	// FrameHeader is the parsed uncompressed and compressed header.
	FrameHeader = vp9.FrameHeader

	// TileResult holds the superblocks of one tile in decode order.
	TileResult = vp9.TileResult

	// CodedSuperBlock is a 64x64 superblock and its blocks in decode
	// order.
	CodedSuperBlock = vp9.CodedSuperBlock

	// CodedBlock is one coding block: its position, mode info and, unless
	// skipped, its residual.
	CodedBlock = vp9.CodedBlock

	ModeInfo      = vp9.ModeInfo
	InterInfo     = vp9.InterInfo
	Residual      = vp9.Residual
	TransformUnit = vp9.TransformUnit

	// FrameInfo is what the start of a frame tells without decoder state.
	FrameInfo = vp9.FrameInfo
)

// Tracer receives decoded syntax as it is produced.
type Tracer = vp9.Tracer

// LogTracer writes one line per traced event to W.
type LogTracer = vp9.LogTracer

// Option configures a Decoder.
type Option func(*Decoder)

// WithTileWorkers decodes up to n tile columns in parallel. Values below
// 2 decode on the calling goroutine.
func WithTileWorkers(n int) Option {
	return func(d *Decoder) { d.opts.TileWorkers = n }
}

// WithTracer sends decoded syntax to t. With parallel tile workers, t
// must be safe for concurrent use.
func WithTracer(t Tracer) Option {
	return func(d *Decoder) { d.opts.Tracer = t }
}

// WithStrictPadding rejects tiles whose bits after the last symbol are
// not zero.
func WithStrictPadding(strict bool) Option {
	return func(d *Decoder) { d.opts.StrictPadding = strict }
}

// Decoder decodes VP9 frames into block-level syntax.
//
// A Decoder instance maintains the state carried between frames and is NOT
// safe for concurrent use. Each stream needs its own Decoder.
type Decoder struct {
	st     *vp9.State
	opts   vp9.Options
	frames int
}

// NewDecoder creates a decoder that has seen no frames.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{st: vp9.NewState()}
	for _, o := range opts {
		o(d)
	}
	return d
}

// DecodeFrame decodes exactly one frame. Superframes must be split first;
// see Decode.
//
// On error the decoder state is unchanged and the next frame may be
// decoded as if this one had not been seen.
func (d *Decoder) DecodeFrame(data []byte) (*Frame, error) {
	dc, err := vp9.NewDecodingContext(data, d.st)
	if err != nil {
		return nil, errors.Wrapf(err, "frame %d", d.frames)
	}
	frame, err := dc.Decode(d.opts)
	if err != nil {
		return nil, errors.Wrapf(err, "frame %d", d.frames)
	}
	d.frames++
	return frame, nil
}

// Decode splits data into frames with SplitSuperframe and decodes them in
// order. It stops at the first failing frame and returns the frames
// decoded before it.
func (d *Decoder) Decode(data []byte) ([]*Frame, error) {
	parts, err := SplitSuperframe(data)
	if err != nil {
		return nil, err
	}
	frames := make([]*Frame, 0, len(parts))
	for _, p := range parts {
		f, err := d.DecodeFrame(p)
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// Reset drops all state carried between frames. The next frame must be a
// key frame.
func (d *Decoder) Reset() {
	d.st = vp9.NewState()
	d.frames = 0
}

// FrameCount returns the number of frames decoded since creation or the
// last Reset.
func (d *Decoder) FrameCount() int {
	return d.frames
}

// ParseFrameInfo parses the leading header fields of a single frame
// without decoding it. Width and Height are zero for inter frames.
func ParseFrameInfo(data []byte) (FrameInfo, error) {
	return vp9.PeekFrameInfo(data)
}
