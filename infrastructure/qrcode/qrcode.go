package qrcode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/skip2/go-qrcode"
)

// ErrCapacityExceeded is returned when the content does not fit in any QR version
var ErrCapacityExceeded = errors.New("content exceeds QR code capacity")

var palette = color.Palette{color.White, color.Black}

// Image is a rasterized QR symbol
type Image struct {
	img *image.Paletted
}

// Generator handles QR code generation
type Generator struct {
	level qrcode.RecoveryLevel
}

// NewGenerator creates a generator using error correction level L
func NewGenerator() *Generator {
	return &Generator{
		level: qrcode.Low,
	}
}

// Encode renders content as a QR symbol. Each module is boxSize pixels wide and
// the symbol is surrounded by border blank modules on every side.
func (g *Generator) Encode(content string, boxSize, border int) (*Image, error) {
	if boxSize < 1 {
		return nil, fmt.Errorf("box size must be positive, got %d", boxSize)
	}
	if border < 0 {
		return nil, fmt.Errorf("border cannot be negative, got %d", border)
	}

	// The version is picked automatically from the content length
	qr, err := qrcode.New(content, g.level)
	if err != nil {
		if strings.Contains(err.Error(), "too long") {
			return nil, ErrCapacityExceeded
		}
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	qr.DisableBorder = true

	return &Image{img: rasterize(qr.Bitmap(), boxSize, border)}, nil
}

func rasterize(modules [][]bool, boxSize, border int) *image.Paletted {
	side := (len(modules) + 2*border) * boxSize
	img := image.NewPaletted(image.Rect(0, 0, side, side), palette)

	for y, row := range modules {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0 := (x + border) * boxSize
			y0 := (y + border) * boxSize
			for py := y0; py < y0+boxSize; py++ {
				offset := img.PixOffset(x0, py)
				for px := 0; px < boxSize; px++ {
					img.Pix[offset+px] = 1
				}
			}
		}
	}

	return img
}

// Image returns the underlying raster
func (i *Image) Image() image.Image {
	return i.img
}

// WriteTo streams the image as PNG
func (i *Image) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := png.Encode(cw, i.img)
	return cw.n, err
}

// PNG returns the PNG encoding of the image
func (i *Image) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := i.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
