package q565

import "math/bits"

// LittleEndian emits decoded pixels as little-endian uint16 values, the
// order pixels are computed in.
type LittleEndian struct{}

// BigEndian emits decoded pixels byte-swapped, for displays that consume
// big-endian RGB565.
type BigEndian struct{}

// ToWire converts a pixel to the output representation.
func (LittleEndian) ToWire(pixel uint16) uint16 { return pixel }

// ToWire converts a pixel to the output representation.
func (BigEndian) ToWire(pixel uint16) uint16 { return bits.ReverseBytes16(pixel) }

// ByteOrder selects the uint16 representation decoded pixels are written in.
// It is a type parameter rather than a runtime value so the conversion
// specializes at instantiation and the per-pixel write inlines.
type ByteOrder interface {
	LittleEndian | BigEndian

	ToWire(pixel uint16) uint16
}
