package q565_test

import (
	"math/rand"
	"testing"

	"github.com/seritools/q565/q565"
)

// benchImage is a 512x512 frame with gradient regions and flat spans, shaped
// like typical embedded UI content.
func benchImage() (uint16, uint16, []uint16) {
	const width, height = 512, 512
	rng := rand.New(rand.NewSource(7))

	pixels := make([]uint16, 0, width*height)
	for len(pixels) < width*height {
		switch rng.Intn(3) {
		case 0:
			flat := uint16(rng.Uint32())
			run := rng.Intn(200) + 1
			for i := 0; i < run && len(pixels) < width*height; i++ {
				pixels = append(pixels, flat)
			}
		case 1:
			base := uint16(rng.Uint32())
			run := rng.Intn(100) + 1
			for i := 0; i < run && len(pixels) < width*height; i++ {
				pixels = append(pixels, base+uint16(i))
			}
		default:
			pixels = append(pixels, uint16(rng.Uint32()))
		}
	}
	return width, height, pixels
}

func BenchmarkEncode(b *testing.B) {
	width, height, pixels := benchImage()
	b.SetBytes(int64(len(pixels) * 2))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := q565.Encode(width, height, pixels); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAppendEncode(b *testing.B) {
	width, height, pixels := benchImage()
	buf := make([]byte, 0, len(pixels)*3)
	b.SetBytes(int64(len(pixels) * 2))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var ctx q565.EncodeContext
		if _, err := ctx.AppendEncode(buf[:0], width, height, pixels); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	width, height, pixels := benchImage()
	encoded, err := q565.Encode(width, height, pixels)
	if err != nil {
		b.Fatal(err)
	}
	output := make([]uint16, len(pixels))
	b.SetBytes(int64(len(pixels) * 2))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var ctx q565.DecodeContext
		if _, _, err := q565.DecodeWithState(&ctx, encoded, q565.NewSliceSink[q565.LittleEndian](output)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeUnchecked(b *testing.B) {
	width, height, pixels := benchImage()
	encoded, err := q565.Encode(width, height, pixels)
	if err != nil {
		b.Fatal(err)
	}
	output := make([]uint16, len(pixels))
	b.SetBytes(int64(len(pixels) * 2))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var ctx q565.DecodeContext
		if _, err := q565.DecodeUncheckedWithState(&ctx, encoded, q565.NewSliceSink[q565.LittleEndian](output)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStreamingDecode(b *testing.B) {
	width, height, pixels := benchImage()
	encoded, err := q565.Encode(width, height, pixels)
	if err != nil {
		b.Fatal(err)
	}
	body := encoded[q565.HeaderSize:]
	output := make([]uint16, len(pixels))
	b.SetBytes(int64(len(pixels) * 2))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var ctx q565.StreamingDecodeContext
		total := 0
		for start := 0; start < len(body); start += 4096 {
			end := start + 4096
			if end > len(body) {
				end = len(body)
			}
			total += q565.StreamingDecode[q565.LittleEndian](&ctx, body[start:end], output[total:])
		}
	}
}
