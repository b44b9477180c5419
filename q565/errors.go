package q565

import "errors"

// Errors reported by the encoder and the validating decoder.
var (
	// ErrDimensionMismatch indicates the declared width and height don't
	// match the number of pixels given to the encoder.
	ErrDimensionMismatch = errors.New("q565: dimensions don't match pixel count")

	// ErrUnexpectedEOF indicates the input ended before the end marker.
	ErrUnexpectedEOF = errors.New("q565: unexpected end of input")

	// ErrInvalidMagic indicates the input doesn't start with the q565 magic.
	ErrInvalidMagic = errors.New("q565: invalid magic")

	// ErrOutputTooSmall indicates the output sink cannot hold the number of
	// pixels the header declares.
	ErrOutputTooSmall = errors.New("q565: output too small")
)
