// Package ivf implements the IVF container used to store raw VP8, VP9 and
// AV1 streams.
//
// An IVF file is a 32-byte file header followed by frames, each prefixed
// by a 12-byte frame header. All integers are little-endian.
//
// # File Header
//
//	Bytes 0-3:   "DKIF" signature
//	Bytes 4-5:   Version (always 0)
//	Bytes 6-7:   Header length in bytes (32)
//	Bytes 8-11:  Codec FourCC ("VP90" for VP9)
//	Bytes 12-13: Width in pixels
//	Bytes 14-15: Height in pixels
//	Bytes 16-19: Time base denominator
//	Bytes 20-23: Time base numerator
//	Bytes 24-27: Number of frames
//	Bytes 28-31: Unused
//
// # Frame Header
//
//	Bytes 0-3:   Frame size in bytes, excluding this header
//	Bytes 4-11:  Presentation timestamp in time base units
//
// A VP9 frame payload may be a superframe holding several frames; the
// container does not split them.
package ivf
