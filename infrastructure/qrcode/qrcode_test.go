package qrcode

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, img *Image) string {
	t.Helper()

	bmp, err := gozxing.NewBinaryBitmapFromImage(img.Image())
	require.NoError(t, err)

	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err)

	return result.GetText()
}

func TestEncode_RoundTrip(t *testing.T) {
	generator := NewGenerator()

	for _, content := range []string{
		"https://example.com",
		"http://localhost:5000/download/qr_example_com_20240101_120000.png",
		"https://example.com/search?q=go+qr&lang=en#results",
	} {
		t.Run(content, func(t *testing.T) {
			img, err := generator.Encode(content, 10, 4)
			require.NoError(t, err)

			assert.Equal(t, content, decode(t, img))
		})
	}
}

func TestEncode_Geometry(t *testing.T) {
	generator := NewGenerator()
	boxSize, border := 7, 3

	img, err := generator.Encode("https://example.com", boxSize, border)
	require.NoError(t, err)

	bounds := img.Image().Bounds()
	assert.Equal(t, bounds.Dx(), bounds.Dy())
	assert.Zero(t, bounds.Dx()%boxSize)

	modules := bounds.Dx()/boxSize - 2*border
	assert.GreaterOrEqual(t, modules, 21)
	assert.Zero(t, (modules-21)%4, "QR symbols grow by 4 modules per version")

	// quiet zone is white, the finder pattern corner is black
	assert.Equal(t, color.White, toGray(img.Image().At(0, 0)))
	assert.Equal(t, color.Black, toGray(img.Image().At(border*boxSize, border*boxSize)))
}

func TestEncode_ZeroBorder(t *testing.T) {
	img, err := NewGenerator().Encode("https://example.com", 1, 0)
	require.NoError(t, err)

	assert.Equal(t, color.Black, toGray(img.Image().At(0, 0)))
}

func TestEncode_CapacityExceeded(t *testing.T) {
	img, err := NewGenerator().Encode("https://"+strings.Repeat("a", 3000), 10, 4)

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Nil(t, img)
}

func TestEncode_InvalidDimensions(t *testing.T) {
	generator := NewGenerator()

	_, err := generator.Encode("https://example.com", 0, 4)
	assert.Error(t, err)

	_, err = generator.Encode("https://example.com", 10, -1)
	assert.Error(t, err)
}

func TestPNG_DeterministicAndDecodable(t *testing.T) {
	generator := NewGenerator()

	first, err := generator.Encode("https://example.com", 10, 4)
	require.NoError(t, err)
	second, err := generator.Encode("https://example.com", 10, 4)
	require.NoError(t, err)

	a, err := first.PNG()
	require.NoError(t, err)
	b, err := second.PNG()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	decoded, err := png.Decode(bytes.NewReader(a))
	require.NoError(t, err)
	assert.Equal(t, first.Image().Bounds(), decoded.Bounds())

	var buf bytes.Buffer
	n, err := first.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(a)), n)
}

func toGray(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	if r+g+b == 0 {
		return color.Black
	}
	return color.White
}
