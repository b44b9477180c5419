package q565

import (
	"fmt"
	"io"
)

// EncodeTo encodes width*height RGB565 pixels to w using a fresh context.
// Output is byte-identical to Encode.
func EncodeTo(w io.Writer, width, height uint16, pixels []uint16) error {
	var ctx EncodeContext
	return ctx.EncodeTo(w, width, height, pixels)
}

// EncodeHeaderTo writes the 8-byte stream header.
func EncodeHeaderTo(w io.Writer, width, height uint16) error {
	header := [HeaderSize]byte{
		Magic[0], Magic[1], Magic[2], Magic[3],
		uint8(width), uint8(width >> 8),
		uint8(height), uint8(height >> 8),
	}
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("q565: write header: %w", err)
	}
	return nil
}

// EncodeTo encodes width*height RGB565 pixels to w.
//
// It returns ErrDimensionMismatch before writing anything if width*height
// doesn't match the number of pixels, or if either dimension is zero.
func (ctx *EncodeContext) EncodeTo(w io.Writer, width, height uint16, pixels []uint16) error {
	if width == 0 || height == 0 || int(width)*int(height) != len(pixels) {
		return ErrDimensionMismatch
	}

	if err := EncodeHeaderTo(w, width, height); err != nil {
		return err
	}
	return ctx.EncodePixelsTo(w, pixels)
}

// EncodePixelsTo encodes pixels to w without a header and appends the end
// marker. Useful for producing the header-less streams the streaming decoder
// consumes.
func (ctx *EncodeContext) EncodePixelsTo(w io.Writer, pixels []uint16) error {
	var buf [3]byte

	emit := func(b []byte) error {
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("q565: write: %w", err)
		}
		return nil
	}

	i := 0
	for i < len(pixels) {
		pixel := pixels[i]
		i++

		if pixel == ctx.Prev {
			count := 1
			for i < len(pixels) && pixels[i] == ctx.Prev {
				i++
				count++
			}

			buf[0] = OpRun | (maxRunLength - 1)
			for n := count / maxRunLength; n > 0; n-- {
				if err := emit(buf[:1]); err != nil {
					return err
				}
			}
			if rest := count % maxRunLength; rest > 0 {
				buf[0] = OpRun | uint8(rest-1)
				if err := emit(buf[:1]); err != nil {
					return err
				}
			}

			continue
		}

		r, g, b := decode565(pixel)
		rPrev, gPrev, bPrev := ctx.PrevComponents[0], ctx.PrevComponents[1], ctx.PrevComponents[2]
		ctx.Prev = pixel
		ctx.PrevComponents = [3]uint8{r, g, b}

		index := hash(pixel)

		if ctx.Arr[index] == pixel {
			buf[0] = OpIndex | index
			if err := emit(buf[:1]); err != nil {
				return err
			}
			continue
		}

		rDiff := diffN(r, rPrev, 5)
		gDiff := diffN(g, gPrev, 6)
		bDiff := diffN(b, bPrev, 5)

		if fitsDiff(rDiff) && fitsDiff(gDiff) && fitsDiff(bDiff) {
			buf[0] = OpDiff | uint8(rDiff+2)<<4 | uint8(gDiff+2)<<2 | uint8(bDiff+2)
			if err := emit(buf[:1]); err != nil {
				return err
			}
			// Not inserted into the color array.
			continue
		}

		rgDiff := rDiff - gDiff
		bgDiff := bDiff - gDiff

		if fitsLuma(rgDiff) && gDiff >= -16 && gDiff <= 15 && fitsLuma(bgDiff) {
			buf[0] = OpLuma | uint8(gDiff+16)
			buf[1] = uint8(rgDiff+8)<<4 | uint8(bgDiff+8)
			if err := emit(buf[:2]); err != nil {
				return err
			}
		} else if first, second, ok := ctx.findIndexedDiff(r, g, b); ok {
			buf[0], buf[1] = first, second
			if err := emit(buf[:2]); err != nil {
				return err
			}
		} else {
			buf[0], buf[1], buf[2] = OpRgb565, uint8(pixel), uint8(pixel>>8)
			if err := emit(buf[:3]); err != nil {
				return err
			}
		}

		ctx.Arr[index] = pixel
		ctx.ArrComponents[index] = [3]uint8{r, g, b}
	}

	buf[0] = OpEnd
	return emit(buf[:1])
}
