// Package govp9 decodes the block-level syntax of VP9 video frames in pure
// Go.
//
// A VP9 frame is an uncompressed header, a compressed header of
// probability updates, and tile data coded with a boolean arithmetic
// coder. This package parses all three and returns, per tile, the coded
// superblocks: for every block its partition position, mode info (segment,
// skip, transform size, intra modes or reference frames, interpolation
// filter and motion vectors) and quantized transform coefficients.
// Dequantization, inverse transforms, prediction and loop filtering are
// left to the caller.
//
// It requires no cgo dependencies.
//
// # Frames and State
//
// A Decoder carries the state that persists between frames: reference
// slot sizes, the four saved probability contexts, segmentation and loop
// filter deltas, and the previous frame's segment map and motion field.
// Frames must be decoded in bitstream order. A frame that fails to decode
// leaves the state untouched.
//
// Containers such as IVF or WebM may pack several frames into one
// superframe. Decode splits superframes; DecodeFrame takes exactly one
// frame.
//
// # Tiles
//
// Tile columns are independent and may be decoded in parallel with
// WithTileWorkers. Tile rows within a column are always sequential.
//
// # Tracing
//
// WithTracer installs a Tracer that receives every parsed header,
// partition decision, block and transform unit. LogTracer prints them in
// a line format suited to diffing against a reference decoder.
package govp9
