// Package imageprep prepares receipt images for archival upload: captures
// are downscaled and recompressed so the stored artifact stays small, and a
// base64 data URI is available as a local fallback when the upload target
// is unreachable.
package imageprep

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

const (
	// maxWidth caps the archived image width in pixels.
	maxWidth = 800
	// jpegQuality trades size for legibility of the archived copy.
	jpegQuality = 60
)

// Compress decodes the image and re-encodes it as a JPEG of at most
// maxWidth pixels wide, preserving aspect ratio.
func Compress(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI wraps compressed JPEG bytes in a base64 data URI. When an upload
// fails, this string is retained as the local fallback reference to the
// receipt image.
func DataURI(jpegData []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData)
}
