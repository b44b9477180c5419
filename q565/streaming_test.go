package q565_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seritools/q565/q565"
)

// streamInChunks feeds body to a streaming decoder in the given chunk sizes,
// advancing the output slice by the pixels written per call.
func streamInChunks(ctx *q565.StreamingDecodeContext, body []byte, output []uint16, chunkSize int) int {
	total := 0
	for start := 0; start < len(body); start += chunkSize {
		end := start + chunkSize
		if end > len(body) {
			end = len(body)
		}
		total += q565.StreamingDecode[q565.LittleEndian](ctx, body[start:end], output[total:])
	}
	return total
}

func TestStreamingMatchesBlockForAnyChunkSize(t *testing.T) {
	for _, img := range testImages(t) {
		t.Run(img.name, func(t *testing.T) {
			encoded, err := q565.Encode(img.width, img.height, img.pixels)
			require.NoError(t, err)
			body := encoded[q565.HeaderSize:]

			for _, chunkSize := range []int{1, 2, 3, 7, 64, 512, len(body)} {
				output := make([]uint16, len(img.pixels))
				var ctx q565.StreamingDecodeContext
				n := streamInChunks(&ctx, body, output, chunkSize)

				require.Equal(t, len(img.pixels), n, "chunk size %d", chunkSize)
				require.Equal(t, img.pixels, output, "chunk size %d", chunkSize)
			}
		})
	}
}

// Every partition of a short stream must decode identically. The stream mixes
// one-byte, two-byte, and three-byte opcodes so splits land inside each.
func TestStreamingAllPartitions(t *testing.T) {
	pixels := []uint16{0xF81F, 0x0021, 0x8430, 0x8430, 0x0021, 0xFFFF}
	encoded, err := q565.Encode(3, 2, pixels)
	require.NoError(t, err)
	body := encoded[q565.HeaderSize:]

	n := len(body)
	require.LessOrEqual(t, n, 16, "stream grew past exhaustive-partition size")

	for bits := 0; bits < 1<<(n-1); bits++ {
		var ctx q565.StreamingDecodeContext
		output := make([]uint16, len(pixels))
		total := 0
		start := 0
		for pos := 1; pos <= n; pos++ {
			if pos == n || bits>>(pos-1)&1 == 1 {
				total += q565.StreamingDecode[q565.LittleEndian](&ctx, body[start:pos], output[total:])
				start = pos
			}
		}
		require.Equal(t, len(pixels), total, "partition %b", bits)
		require.Equal(t, pixels, output, "partition %b", bits)
	}
}

func TestStreamingRunByteByByte(t *testing.T) {
	pixels := make([]uint16, 125)
	encoded, err := q565.Encode(125, 1, pixels)
	require.NoError(t, err)

	var ctx q565.StreamingDecodeContext
	output := make([]uint16, 125)
	n := streamInChunks(&ctx, encoded[q565.HeaderSize:], output, 1)

	require.Equal(t, 125, n)
	require.Equal(t, pixels, output)
}

func TestStreamingStopsAfterEnd(t *testing.T) {
	encoded, err := q565.Encode(1, 1, []uint16{0x1234})
	require.NoError(t, err)
	body := encoded[q565.HeaderSize:]

	var ctx q565.StreamingDecodeContext
	output := make([]uint16, 8)
	n := q565.StreamingDecode[q565.LittleEndian](&ctx, body, output)
	require.Equal(t, 1, n)

	// Bytes fed past the end marker are not decoded.
	n = q565.StreamingDecode[q565.LittleEndian](&ctx, body, output)
	require.Equal(t, 0, n)
}

func TestStreamingBigEndian(t *testing.T) {
	pixels := []uint16{0xF81F, 0x0021, 0x8430}
	encoded, err := q565.Encode(3, 1, pixels)
	require.NoError(t, err)

	var ctx q565.StreamingDecodeContext
	output := make([]uint16, len(pixels))
	total := 0
	for _, b := range encoded[q565.HeaderSize:] {
		total += q565.StreamingDecode[q565.BigEndian](&ctx, []byte{b}, output[total:])
	}

	require.Equal(t, len(pixels), total)
	for i, p := range pixels {
		require.Equal(t, p>>8|p<<8, output[i], "pixel %d", i)
	}
}

// A context must survive a pack/unpack cycle at any byte position, including
// in the middle of a multi-byte opcode.
func TestStreamingPackUnpackMidStream(t *testing.T) {
	img := testImages(t)[7] // noise
	encoded, err := q565.Encode(img.width, img.height, img.pixels)
	require.NoError(t, err)
	body := encoded[q565.HeaderSize:]

	for _, split := range []int{1, 2, 3, 5, 101, len(body) / 2} {
		var ctx q565.StreamingDecodeContext
		output := make([]uint16, len(img.pixels))

		total := q565.StreamingDecode[q565.LittleEndian](&ctx, body[:split], output)

		var resumed q565.StreamingDecodeContext
		resumed.Unpack(ctx.Pack())
		total += q565.StreamingDecode[q565.LittleEndian](&resumed, body[split:], output[total:])

		require.Equal(t, len(img.pixels), total, "split %d", split)
		require.Equal(t, img.pixels, output, "split %d", split)
	}
}

func TestStreamingReset(t *testing.T) {
	encoded, err := q565.Encode(1, 1, []uint16{0x8430})
	require.NoError(t, err)
	body := encoded[q565.HeaderSize:]

	var ctx q565.StreamingDecodeContext
	output := make([]uint16, 1)
	require.Equal(t, 1, q565.StreamingDecode[q565.LittleEndian](&ctx, body, output))

	ctx.Reset()
	output[0] = 0
	require.Equal(t, 1, q565.StreamingDecode[q565.LittleEndian](&ctx, body, output))
	require.Equal(t, uint16(0x8430), output[0])
}
