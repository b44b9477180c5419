package q565

// Streaming decoder parser states. The state records which byte the decoder
// expects next, so input may end in the middle of a multi-byte opcode and
// resume on the next call.
const (
	// Expecting the first byte of an opcode.
	streamStateDefault uint8 = iota
	// First byte of OpLuma/OpDiffIndexed consumed (saved in pending); the
	// next byte completes it. Bit 5 of the saved byte discriminates.
	streamStateLumaOrDiffIndexedByte2
	// The OpRgb565 tag was consumed; the next byte is the pixel's low byte.
	streamStateRawRgb565Byte1
	// Low byte of the raw pixel consumed (saved in pending); the next byte
	// is the high byte.
	streamStateRawRgb565Byte2
	// The end marker was consumed; no further input is decoded.
	streamStateEnd
)

// StreamingDecodeContext holds the resumable decoder state: the parser
// state tag with its pending byte, the previous pixel, and the color array.
// The zero value is ready to decode a new frame.
type StreamingDecodeContext struct {
	state   uint8
	pending uint8

	Prev uint16
	Arr  [64]uint16
}

// Reset prepares the context for a new frame.
func (ctx *StreamingDecodeContext) Reset() {
	*ctx = StreamingDecodeContext{}
}

// Pack returns the context as the contiguous uint16 words of its C layout:
// the state word (tag in the low byte, pending byte in the high byte),
// the previous pixel, then the color array.
func (ctx *StreamingDecodeContext) Pack() (words [66]uint16) {
	words[0] = uint16(ctx.state) | uint16(ctx.pending)<<8
	words[1] = ctx.Prev
	copy(words[2:], ctx.Arr[:])
	return words
}

// Unpack restores the context from its packed representation.
func (ctx *StreamingDecodeContext) Unpack(words [66]uint16) {
	ctx.state = uint8(words[0])
	ctx.pending = uint8(words[0] >> 8)
	ctx.Prev = words[1]
	copy(ctx.Arr[:], words[2:])
}

// StreamingDecode decodes a fragment of a header-less Q565 stream into
// output and returns the number of pixels written by this call. Input may be
// split at arbitrary byte boundaries across calls; the context carries any
// mid-opcode state over to the next call.
//
// Pixels are written starting at output[0]; the caller advances its own
// output slice by the returned count between calls. Once the end marker is
// consumed the context stops decoding and every further call returns 0.
//
// No bounds checks are performed beyond what the language requires: the
// caller must guarantee that the concatenated input is a valid header-less
// Q565 stream and that output can hold every pixel this call's fragment
// completes. Behavior on a violated precondition is undefined.
func StreamingDecode[B ByteOrder](ctx *StreamingDecodeContext, input []byte, output []uint16) int {
	var order B
	outputIdx := 0
	inputIdx := 0

	if ctx.state == streamStateEnd {
		return 0
	}

	for {
		if inputIdx >= len(input) {
			return outputIdx
		}
		b := input[inputIdx]
		inputIdx++

		var pixel uint16
		switch ctx.state {
		case streamStateDefault:
			switch b >> 6 {
			case 0b00:
				pixel = ctx.Arr[b]
				ctx.Prev = pixel
				output[outputIdx] = order.ToWire(pixel)
				outputIdx++
				continue

			case 0b01:
				pixel = directSmallDiff(ctx.Prev, b)
				ctx.Prev = pixel
				output[outputIdx] = order.ToWire(pixel)
				outputIdx++
				continue

			case 0b10:
				ctx.state = streamStateLumaOrDiffIndexedByte2
				ctx.pending = b
				continue

			default:
				if b == OpRgb565 {
					ctx.state = streamStateRawRgb565Byte1
					continue
				}
				if b == OpEnd {
					ctx.state = streamStateEnd
					return outputIdx
				}

				count := int(b&0b0011_1111) + 1
				wire := order.ToWire(ctx.Prev)
				run := output[outputIdx : outputIdx+count]
				for i := range run {
					run[i] = wire
				}
				outputIdx += count
				continue
			}

		case streamStateLumaOrDiffIndexedByte2:
			if ctx.pending&0b0010_0000 == 0 {
				pixel = directBiggerDiff(ctx.Prev, ctx.pending, b)
			} else {
				pixel = indexedDiff(&ctx.Arr, ctx.pending, b)
			}

		case streamStateRawRgb565Byte1:
			ctx.state = streamStateRawRgb565Byte2
			ctx.pending = b
			continue

		default: // streamStateRawRgb565Byte2
			pixel = uint16(ctx.pending) | uint16(b)<<8
		}

		ctx.Arr[hash(pixel)] = pixel
		ctx.Prev = pixel
		output[outputIdx] = order.ToWire(pixel)
		outputIdx++
		ctx.state = streamStateDefault
	}
}
