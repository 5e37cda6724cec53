package imageprep

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompressDownscalesWideImages(t *testing.T) {
	compressed, err := Compress(pngBytes(t, 1600, 1200))
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(compressed))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 800, img.Bounds().Dx())
	// Aspect ratio is preserved.
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestCompressKeepsSmallImages(t *testing.T) {
	compressed, err := Compress(pngBytes(t, 400, 300))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(compressed))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
}

func TestCompressGarbage(t *testing.T) {
	_, err := Compress([]byte("not an image"))
	assert.Error(t, err)
}

func TestDataURI(t *testing.T) {
	uri := DataURI([]byte{0xFF, 0xD8, 0xFF})
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
	assert.Greater(t, len(uri), len("data:image/jpeg;base64,"))
}
