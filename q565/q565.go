// Package q565 implements the Q565 lossless image format for RGB565
// (16-bit) pixel data.
//
// Q565 is heavily based on the QOI image format, altered to support the
// RGB565 pixel format (and that format only). The "hash" indexing the
// 64-entry color array is just the sum of the two pixel bytes, keeping the
// low 6 bits of the result, which removes the last multiplication from the
// decoder loop so it stays fast on microcontrollers without fast multiply
// support.
//
// Pixels that are already describable in one byte (OpDiff) are not inserted
// into the color array. This keeps the array from being flooded with
// near-identical colors.
//
// A stream is the 8-byte header ("q565" magic, u16le width, u16le height)
// followed by opcodes, terminated by a single OpEnd byte. See the Op*
// constants for the wire layout of each opcode.
package q565

// Opcode first-byte tags. Dispatch is on the top two bits, except that tag
// 0b10 further distinguishes on bit 5 (0 = OpLuma, 1 = OpDiffIndexed), and
// tag 0b11 reserves run values 62 and 63 for OpRgb565 and OpEnd.
const (
	// OpIndex re-emits a pixel from the color array.
	//
	//	.- OpIndex ---------------.
	//	|         Byte[0]         |
	//	|  7  6  5  4  3  2  1  0 |
	//	|-------+-----------------|
	//	|  0  0 |     index       |
	//	`-------------------------`
	//
	// A valid encoder must not issue two or more consecutive OpIndex bytes
	// with the same index; OpRun is used instead.
	OpIndex = 0b0000_0000

	// OpDiff derives a pixel from a per-channel difference to the previous
	// pixel, each in -2..1 and stored with a bias of 2.
	//
	//	.- OpDiff ----------------.
	//	|         Byte[0]         |
	//	|  7  6  5  4  3  2  1  0 |
	//	|-------+-----+-----+-----|
	//	|  0  1 |  dr |  dg |  db |
	//	`-------------------------`
	//
	// The resulting pixel is not added to the color array.
	OpDiff = 0b0100_0000

	// OpLuma derives a pixel from a 5-bit green-channel difference to the
	// previous pixel (-16..15, bias 16), with the red and blue differences
	// stored relative to the green difference (-8..7 each, bias 8).
	//
	//	.- OpLuma ------------------------------------------.
	//	|         Byte[0]         |         Byte[1]         |
	//	|  7  6  5  4  3  2  1  0 |  7  6  5  4  3  2  1  0 |
	//	|----------+--------------+-------------+-----------|
	//	|  1  0  0 |  green diff  |   dr - dg   |  db - dg  |
	//	`---------------------------------------------------`
	OpLuma = 0b1000_0000

	// OpDiffIndexed derives a pixel from a color-array entry plus a small
	// per-channel difference: dg in -4..3 (bias 4), dr and db in -2..1
	// (bias 2).
	//
	//	.- OpDiffIndexed -----------------------------------.
	//	|         Byte[0]         |         Byte[1]         |
	//	|  7  6  5  4  3  2  1  0 |  7  6  5  4  3  2  1  0 |
	//	|----------+--------------+------+------------------|
	//	|  1  0  1 | dg    |  dr  |  db  |            index |
	//	`---------------------------------------------------`
	OpDiffIndexed = 0b1010_0000

	// OpRun repeats the previous pixel. The 6-bit run length covers 1..62
	// pixels and is stored with a bias of -1. Field values 62 and 63 are
	// occupied by the OpRgb565 and OpEnd tags and must never be emitted as
	// runs.
	//
	//	.- OpRun -----------------.
	//	|         Byte[0]         |
	//	|  7  6  5  4  3  2  1  0 |
	//	|-------+-----------------|
	//	|  1  1 |       run       |
	//	`-------------------------`
	OpRun = 0b1100_0000

	// OpRgb565 emits a raw pixel, stored as a little-endian RGB565 value in
	// the following two bytes.
	OpRgb565 = 0b1111_1110

	// OpEnd marks the end of the stream.
	OpEnd = 0b1111_1111
)

// Magic is the 4-byte magic at the start of every Q565 stream.
const Magic = "q565"

// HeaderSize is the size of the stream header in bytes.
const HeaderSize = 8

// maxRunLength is the longest run a single OpRun byte can describe.
const maxRunLength = 62

// Header describes the image dimensions read from a Q565 stream header.
type Header struct {
	Width  uint16
	Height uint16
}

// PixelCount returns the total number of pixels the header describes.
func (h Header) PixelCount() int {
	return int(h.Width) * int(h.Height)
}
