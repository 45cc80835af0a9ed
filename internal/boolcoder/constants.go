// Package boolcoder implements the boolean arithmetic coder used by VP9
// for its compressed header and tile data.
package boolcoder

import "errors"

const (
	windowBits = 64 // Width of the decoder value register
	halfProb   = 128
)

// Sentinel errors reported through Decoder.Err.
var (
	// ErrShortBuffer indicates the buffer cannot hold even the initial byte.
	ErrShortBuffer = errors.New("boolcoder: buffer too short")

	// ErrMarkerBit indicates the leading marker bit of a partition was set.
	ErrMarkerBit = errors.New("boolcoder: invalid marker bit")

	// ErrExhausted indicates more bits were consumed than the buffer holds.
	ErrExhausted = errors.New("boolcoder: buffer exhausted")
)
