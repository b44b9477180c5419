package q565

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/seritools/q565/codec"
)

var _ codec.Codec = (*Codec)(nil)

// Codec implements the codec.Codec interface for Q565, moving pixel data as
// little-endian RGB565 bytes.
type Codec struct{}

// NewCodec creates a new Q565 codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Name returns the codec name.
func (c *Codec) Name() string {
	return "q565"
}

// UID returns the format identifier. Q565 has no registry-assigned UID, so
// the name doubles as one.
func (c *Codec) UID() string {
	return "q565"
}

// Encode encodes little-endian RGB565 pixel bytes to a Q565 stream.
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	if params.Width < 1 || params.Width > math.MaxUint16 ||
		params.Height < 1 || params.Height > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %dx%d (must be 1..65535)",
			codec.ErrInvalidDimensions, params.Width, params.Height)
	}
	if params.Components != 0 && params.Components != 3 {
		return nil, fmt.Errorf("%w: components must be 3 (RGB), got %d",
			codec.ErrInvalidParameter, params.Components)
	}
	if params.BitDepth != 0 && params.BitDepth != 16 {
		return nil, fmt.Errorf("%w: bit depth must be 16 (RGB565), got %d",
			codec.ErrInvalidParameter, params.BitDepth)
	}

	pixelCount := params.Width * params.Height
	if len(params.PixelData) != pixelCount*2 {
		return nil, fmt.Errorf("%w: got %d pixel bytes, want %d",
			codec.ErrInvalidParameter, len(params.PixelData), pixelCount*2)
	}

	pixels := make([]uint16, pixelCount)
	for i := range pixels {
		pixels[i] = binary.LittleEndian.Uint16(params.PixelData[i*2:])
	}

	encoded, err := Encode(uint16(params.Width), uint16(params.Height), pixels)
	if err != nil {
		return nil, fmt.Errorf("q565 encode failed: %w", err)
	}
	return encoded, nil
}

// Decode decodes a Q565 stream to little-endian RGB565 pixel bytes.
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	pixels, header, err := DecodeToBuffer[LittleEndian](data)
	if err != nil {
		return nil, fmt.Errorf("q565 decode failed: %w", err)
	}

	pixelData := make([]byte, len(pixels)*2)
	for i, p := range pixels {
		binary.LittleEndian.PutUint16(pixelData[i*2:], p)
	}

	return &codec.DecodeResult{
		PixelData:  pixelData,
		Width:      int(header.Width),
		Height:     int(header.Height),
		Components: 3,
		BitDepth:   16,
	}, nil
}

func init() {
	codec.Register(NewCodec())
}
