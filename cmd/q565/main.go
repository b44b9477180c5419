// Command q565 encodes PNG/JPG/BMP images to Q565 and decodes Q565 images
// back.
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"

	"github.com/seritools/q565/q565"
)

func main() {
	root := &cobra.Command{
		Use:           "q565",
		Short:         "Q565 encoder and decoder",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEncodeCmd(), newDecodeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newEncodeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "encode [flags] INPUT OUTPUT",
		Short: "Encode a PNG, JPG, or BMP image as Q565",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return encode(format, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "input format (png, jpg, bmp); guessed if not set")

	return cmd
}

func newDecodeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "decode --format FORMAT INPUT OUTPUT",
		Short: "Decode a Q565 image to PNG, JPG, or BMP",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return decode(format, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format (png, jpg, bmp)")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

func encode(format, input, output string) error {
	img, err := loadImage(format, input)
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	fmt.Printf("Encoding %dx%d image\n", width, height)

	if width > 0xFFFF || height > 0xFFFF {
		return fmt.Errorf("image dimensions are too large: %dx%d", width, height)
	}

	pixels := make([]uint16, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels = append(pixels, q565.Rgb888ToRgb565(uint8(r>>8), uint8(g>>8), uint8(b>>8)))
		}
	}

	encoded, err := q565.Encode(uint16(width), uint16(height), pixels)
	if err != nil {
		return fmt.Errorf("encoding failed: %w", err)
	}

	if err := os.WriteFile(output, encoded, 0o644); err != nil {
		return err
	}

	fmt.Printf("Written %d bytes to %q\n", len(encoded), output)
	return nil
}

func decode(format, input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	fmt.Printf("Decoding %q\n", input)

	pixels, header, err := q565.DecodeToBuffer[q565.LittleEndian](data)
	if err != nil {
		return fmt.Errorf("decoding failed: %w", err)
	}

	width, height := int(header.Width), int(header.Height)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, p := range pixels {
		r, g, b := q565.Rgb565ToRgb888(p)
		offset := i * 4
		img.Pix[offset] = r
		img.Pix[offset+1] = g
		img.Pix[offset+2] = b
		img.Pix[offset+3] = 0xFF
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "png":
		err = png.Encode(f, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(f, img, nil)
	case "bmp":
		err = bmp.Encode(f, img)
	default:
		return fmt.Errorf("invalid format %q (png, jpg, bmp)", format)
	}
	if err != nil {
		return fmt.Errorf("writing %s failed: %w", format, err)
	}

	fmt.Printf("Written %dx%d image to %q\n", width, height, output)
	return nil
}

func loadImage(format, path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	switch format {
	case "png":
		img, err = png.Decode(f)
	case "jpg", "jpeg":
		img, err = jpeg.Decode(f)
	case "bmp":
		img, err = bmp.Decode(f)
	case "":
		img, _, err = image.Decode(f)
	default:
		return nil, fmt.Errorf("invalid format %q (png, jpg, bmp)", format)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q failed: %w", path, err)
	}
	return img, nil
}
