package recognizer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"kiyotrack/struk-csv/internal/logging"

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

func TestPrepareImagePNG(t *testing.T) {
	data, err := prepareImage(pngBytes(t, 20, 20), "image/png")
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 20, img.Bounds().Dx())
}

func TestPrepareImageEmptyContentTypeDefaultsToImage(t *testing.T) {
	// An empty MIME type is treated as a regular image, and the stdlib
	// decoder sniffs the actual format.
	_, err := prepareImage(pngBytes(t, 4, 4), "")
	assert.NoError(t, err)
}

func TestPrepareImageGarbage(t *testing.T) {
	_, err := prepareImage([]byte("definitely not an image"), "image/jpeg")
	assert.Error(t, err)
}

func TestIsHEIC(t *testing.T) {
	heicHeader := append([]byte{0, 0, 0, 24}, []byte("ftypheic")...)
	heifHeader := append([]byte{0, 0, 0, 24}, []byte("ftypmif1")...)

	assert.True(t, isHEIC(heicHeader))
	assert.True(t, isHEIC(heifHeader))
	assert.False(t, isHEIC([]byte("ftypheic")))
	assert.False(t, isHEIC(pngBytes(t, 2, 2)))
	assert.False(t, isHEIC(nil))
}

func TestEstimateConfidence(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{"Empty", "", 0},
		{"All readable", "TOTAL45000", 100},
		{"Whitespace ignored", "TOTAL 45000", 100},
		{"Half garbage", "AB##", 50},
		{"Only whitespace", "   ", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, estimateConfidence(tc.text), 0.01)
		})
	}
}

func TestPreprocessUpscalesSmallImages(t *testing.T) {
	rec := NewTesseract(WithLogger(logging.NewMockLogger()))

	prepared, err := rec.preprocess(pngBytes(t, 100, 100))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(prepared))
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dy())
}

func TestPreprocessKeepsLargeImages(t *testing.T) {
	rec := NewTesseract()

	prepared, err := rec.preprocess(pngBytes(t, 100, 900))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(prepared))
	require.NoError(t, err)
	assert.Equal(t, 900, img.Bounds().Dy())
}

func TestTesseractOptions(t *testing.T) {
	rec := NewTesseract(WithLanguage("ind"))
	assert.Equal(t, "ind", rec.language)

	rec = NewTesseract(WithLanguage(""))
	assert.Equal(t, DefaultLanguage, rec.language)

	var reported []int
	rec = NewTesseract(WithProgress(func(p int) { reported = append(reported, p) }))
	rec.report(5)
	rec.report(100)
	assert.Equal(t, []int{5, 100}, reported)
}
