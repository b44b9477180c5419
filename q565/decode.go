package q565

import "encoding/binary"

// DecodeContext holds the block decoder state: the previous pixel and the
// 64-entry color array. The zero value is ready to decode a new frame.
type DecodeContext struct {
	Prev uint16
	Arr  [64]uint16
}

// Reset prepares the context for a new frame.
func (ctx *DecodeContext) Reset() {
	*ctx = DecodeContext{}
}

// Pack returns the context as the contiguous uint16 words of its C layout:
// the previous pixel followed by the color array.
func (ctx *DecodeContext) Pack() (words [65]uint16) {
	words[0] = ctx.Prev
	copy(words[1:], ctx.Arr[:])
	return words
}

// Unpack restores the context from its packed representation.
func (ctx *DecodeContext) Unpack(words [65]uint16) {
	ctx.Prev = words[0]
	copy(ctx.Arr[:], words[1:])
}

// Decode decodes a complete Q565 stream into output using a fresh context.
//
// It returns the number of pixels written and the stream header. Failure is
// ErrUnexpectedEOF if the input ends before the end marker, ErrInvalidMagic
// if the stream doesn't start with "q565", or ErrOutputTooSmall if a bounded
// output cannot hold the pixel count the header declares. On failure the
// output holds whatever pixels were produced before the error.
func Decode[S Sink](data []byte, output S) (int, Header, error) {
	var ctx DecodeContext
	return DecodeWithState(&ctx, data, output)
}

// DecodeWithState decodes a complete Q565 stream into output, with ctx as
// the starting state. See Decode.
func DecodeWithState[S Sink](ctx *DecodeContext, data []byte, output S) (int, Header, error) {
	// Header plus at least the end marker.
	if len(data) < HeaderSize+1 {
		return 0, Header{}, ErrUnexpectedEOF
	}
	if string(data[:4]) != Magic {
		return 0, Header{}, ErrInvalidMagic
	}

	header := Header{
		Width:  binary.LittleEndian.Uint16(data[4:6]),
		Height: binary.LittleEndian.Uint16(data[6:8]),
	}

	if max, bounded := output.MaxLen(); bounded && max < header.PixelCount() {
		return 0, header, ErrOutputTooSmall
	}

	data = data[HeaderSize:]
	i := 0

	for {
		if i >= len(data) {
			return output.Position(), header, ErrUnexpectedEOF
		}
		first := data[i]
		i++

		var pixel uint16
		switch first >> 6 {
		case 0b00:
			pixel = ctx.Arr[first]
			ctx.Prev = pixel
			output.WritePixel(pixel)
			continue

		case 0b01:
			pixel = directSmallDiff(ctx.Prev, first)
			ctx.Prev = pixel
			output.WritePixel(pixel)
			continue

		case 0b10:
			if i >= len(data) {
				return output.Position(), header, ErrUnexpectedEOF
			}
			second := data[i]
			i++
			if first&0b0010_0000 == 0 {
				pixel = directBiggerDiff(ctx.Prev, first, second)
			} else {
				pixel = indexedDiff(&ctx.Arr, first, second)
			}

		default:
			if first == OpEnd {
				return output.Position(), header, nil
			}
			if first == OpRgb565 {
				if i+1 >= len(data) {
					return output.Position(), header, ErrUnexpectedEOF
				}
				pixel = uint16(data[i]) | uint16(data[i+1])<<8
				i += 2
			} else {
				count := int(first&0b0011_1111) + 1
				output.WriteManyPixels(ctx.Prev, count)
				continue
			}
		}

		ctx.Arr[hash(pixel)] = pixel
		ctx.Prev = pixel
		output.WritePixel(pixel)
	}
}

// DecodeUnchecked decodes a complete Q565 stream into output using a fresh
// context, assuming well-formed input.
//
// The only check performed is that a bounded output can hold the pixel count
// the header declares (reported as ErrOutputTooSmall); the input is not
// validated at all. The caller must guarantee the input is a valid Q565
// stream. Behavior on malformed input is undefined.
func DecodeUnchecked[S Sink](data []byte, output S) (int, error) {
	var ctx DecodeContext
	return DecodeUncheckedWithState(&ctx, data, output)
}

// DecodeUncheckedWithState decodes a complete Q565 stream into output with
// ctx as the starting state, assuming well-formed input. See DecodeUnchecked.
func DecodeUncheckedWithState[S Sink](ctx *DecodeContext, data []byte, output S) (int, error) {
	width := binary.LittleEndian.Uint16(data[4:6])
	height := binary.LittleEndian.Uint16(data[6:8])

	if max, bounded := output.MaxLen(); bounded && max < int(width)*int(height) {
		return 0, ErrOutputTooSmall
	}

	data = data[HeaderSize:]
	i := 0

	for {
		first := data[i]
		i++

		var pixel uint16
		switch first >> 6 {
		case 0b00:
			pixel = ctx.Arr[first]
			ctx.Prev = pixel
			output.WritePixel(pixel)
			continue

		case 0b01:
			pixel = directSmallDiff(ctx.Prev, first)
			ctx.Prev = pixel
			output.WritePixel(pixel)
			continue

		case 0b10:
			second := data[i]
			i++
			if first&0b0010_0000 == 0 {
				pixel = directBiggerDiff(ctx.Prev, first, second)
			} else {
				pixel = indexedDiff(&ctx.Arr, first, second)
			}

		default:
			if first == OpEnd {
				return output.Position(), nil
			}
			if first == OpRgb565 {
				pixel = uint16(data[i]) | uint16(data[i+1])<<8
				i += 2
			} else {
				count := int(first&0b0011_1111) + 1
				output.WriteManyPixels(ctx.Prev, count)
				continue
			}
		}

		ctx.Arr[hash(pixel)] = pixel
		ctx.Prev = pixel
		output.WritePixel(pixel)
	}
}

// DecodeToBuffer decodes a complete Q565 stream into a new buffer, with the
// output byte order selected by B.
func DecodeToBuffer[B ByteOrder](data []byte) ([]uint16, Header, error) {
	output := NewBufferSink[B]()
	_, header, err := Decode(data, output)
	if err != nil {
		return nil, header, err
	}
	return output.Pixels(), header, nil
}
