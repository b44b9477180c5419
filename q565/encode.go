package q565

// EncodeContext holds the encoder state for one frame: the previous pixel,
// the 64-entry color array, and the unpacked 5/6/5 components of both so the
// per-pixel diff checks don't re-unpack every time.
//
// The zero value is ready to encode a new frame.
type EncodeContext struct {
	Prev           uint16
	PrevComponents [3]uint8

	Arr           [64]uint16
	ArrComponents [64][3]uint8
}

// Reset prepares the context for a new frame.
func (ctx *EncodeContext) Reset() {
	*ctx = EncodeContext{}
}

// Encode encodes width*height RGB565 pixels into a new buffer using a fresh
// context.
//
// It returns ErrDimensionMismatch if width*height doesn't match the number
// of pixels, or if either dimension is zero.
func Encode(width, height uint16, pixels []uint16) ([]byte, error) {
	var ctx EncodeContext
	return ctx.AppendEncode(nil, width, height, pixels)
}

// AppendEncode appends the encoded image to dst and returns the extended
// buffer.
//
// On error, dst and the context are left unchanged.
func (ctx *EncodeContext) AppendEncode(dst []byte, width, height uint16, pixels []uint16) ([]byte, error) {
	if width == 0 || height == 0 || int(width)*int(height) != len(pixels) {
		return dst, ErrDimensionMismatch
	}

	dst = append(dst, Magic...)
	dst = append(dst, uint8(width), uint8(width>>8), uint8(height), uint8(height>>8))

	i := 0
	for i < len(pixels) {
		pixel := pixels[i]
		i++

		if pixel == ctx.Prev {
			// Collect the maximal run, including the pixel above.
			count := 1
			for i < len(pixels) && pixels[i] == ctx.Prev {
				i++
				count++
			}

			for n := count / maxRunLength; n > 0; n-- {
				dst = append(dst, OpRun|(maxRunLength-1))
			}
			if rest := count % maxRunLength; rest > 0 {
				dst = append(dst, OpRun|uint8(rest-1))
			}

			// Prev unchanged, color array unchanged.
			continue
		}

		r, g, b := decode565(pixel)
		rPrev, gPrev, bPrev := ctx.PrevComponents[0], ctx.PrevComponents[1], ctx.PrevComponents[2]
		ctx.Prev = pixel
		ctx.PrevComponents = [3]uint8{r, g, b}

		index := hash(pixel)

		if ctx.Arr[index] == pixel {
			dst = append(dst, OpIndex|index)
			continue
		}

		rDiff := diffN(r, rPrev, 5)
		gDiff := diffN(g, gPrev, 6)
		bDiff := diffN(b, bPrev, 5)

		if fitsDiff(rDiff) && fitsDiff(gDiff) && fitsDiff(bDiff) {
			dst = append(dst, OpDiff|uint8(rDiff+2)<<4|uint8(gDiff+2)<<2|uint8(bDiff+2))
			// One-byte pixels are not inserted into the color array.
			continue
		}

		rgDiff := rDiff - gDiff
		bgDiff := bDiff - gDiff

		if fitsLuma(rgDiff) && gDiff >= -16 && gDiff <= 15 && fitsLuma(bgDiff) {
			dst = append(dst,
				OpLuma|uint8(gDiff+16),
				uint8(rgDiff+8)<<4|uint8(bgDiff+8),
			)
		} else if first, second, ok := ctx.findIndexedDiff(r, g, b); ok {
			dst = append(dst, first, second)
		} else {
			dst = append(dst, OpRgb565, uint8(pixel), uint8(pixel>>8))
		}

		ctx.Arr[index] = pixel
		ctx.ArrComponents[index] = [3]uint8{r, g, b}
	}

	dst = append(dst, OpEnd)

	return dst, nil
}

// findIndexedDiff scans the color array in ascending slot order for an entry
// within OpDiffIndexed range of the pixel and returns the encoded opcode
// pair for the first match.
func (ctx *EncodeContext) findIndexedDiff(r, g, b uint8) (first, second uint8, ok bool) {
	for i := range ctx.ArrComponents {
		c := &ctx.ArrComponents[i]
		rDiff := diffN(r, c[0], 5)
		gDiff := diffN(g, c[1], 6)
		bDiff := diffN(b, c[2], 5)

		if fitsDiff(rDiff) && gDiff >= -4 && gDiff <= 3 && fitsDiff(bDiff) {
			first = OpDiffIndexed | uint8(gDiff+4)<<2 | uint8(rDiff+2)
			second = uint8(bDiff+2)<<6 | uint8(i)
			return first, second, true
		}
	}
	return 0, 0, false
}

func fitsDiff(d int8) bool {
	return d >= -2 && d <= 1
}

func fitsLuma(d int8) bool {
	return d >= -8 && d <= 7
}
