// Package recognizer wraps the external OCR engine behind a small adapter.
// It accepts camera captures, gallery images and PDFs (first page only) and
// produces raw recognized text with a confidence estimate.
package recognizer

import (
	"context"

	"kiyotrack/struk-csv/internal/models"
)

// ProgressFunc receives recognition progress in percent (0-100). It is an
// observability hook for UI display, never a control dependency.
type ProgressFunc func(percent int)

// Recognizer converts an image into raw text.
type Recognizer interface {
	// Recognize runs OCR over the image. contentType is the MIME type of
	// the input ("image/jpeg", "application/pdf", ...); an empty value is
	// treated as JPEG. Engine or input failures surface as a single
	// RecognitionError and abort the scan; there is no automatic retry.
	Recognize(ctx context.Context, image []byte, contentType string) (models.RecognizedText, error)
}
