package recognizer

import (
	"bytes"
	"context"
	"image"
	"os"
	"unicode"

	"kiyotrack/struk-csv/internal/logging"
	"kiyotrack/struk-csv/internal/models"
	"kiyotrack/struk-csv/internal/parsererror"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// minImageHeight is the height below which the input is upscaled before OCR.
// Receipt photos below this resolution produce mostly garbage text.
const minImageHeight = 800

// DefaultLanguage is the Tesseract language hint for Indonesian receipts.
const DefaultLanguage = "ind+eng"

// Tesseract is the production Recognizer backed by the Tesseract engine.
type Tesseract struct {
	language string
	progress ProgressFunc
	logger   logging.Logger
}

// TesseractOption configures a Tesseract recognizer.
type TesseractOption func(*Tesseract)

// WithLanguage overrides the language hint.
func WithLanguage(lang string) TesseractOption {
	return func(t *Tesseract) {
		if lang != "" {
			t.language = lang
		}
	}
}

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) TesseractOption {
	return func(t *Tesseract) { t.progress = fn }
}

// WithLogger overrides the package default logger.
func WithLogger(logger logging.Logger) TesseractOption {
	return func(t *Tesseract) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTesseract creates a Tesseract recognizer.
func NewTesseract(opts ...TesseractOption) *Tesseract {
	t := &Tesseract{
		language: DefaultLanguage,
		logger:   logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Recognize implements Recognizer. The input is normalized to PNG,
// preprocessed (grayscale, upscale of small captures) and handed to the
// engine. Any failure along the way aborts the scan with a single
// RecognitionError.
func (t *Tesseract) Recognize(ctx context.Context, imageData []byte, contentType string) (models.RecognizedText, error) {
	t.report(5)

	if err := ctx.Err(); err != nil {
		return models.RecognizedText{}, &parsererror.RecognitionError{Source: "context", Err: err}
	}

	pngData, err := prepareImage(imageData, contentType)
	if err != nil {
		return models.RecognizedText{}, &parsererror.RecognitionError{Source: "input", Err: err}
	}
	t.report(25)

	prepared, err := t.preprocess(pngData)
	if err != nil {
		return models.RecognizedText{}, &parsererror.RecognitionError{Source: "preprocess", Err: err}
	}
	t.report(40)

	text, err := t.runEngine(prepared)
	if err != nil {
		return models.RecognizedText{}, &parsererror.RecognitionError{Source: "engine", Err: err}
	}
	t.report(100)

	result := models.RecognizedText{
		Text:       text,
		Confidence: estimateConfidence(text),
	}

	t.logger.WithFields(
		logging.Field{Key: "confidence", Value: result.Confidence},
		logging.Field{Key: "chars", Value: len(result.Text)},
	).Debug("Text recognition completed")

	return result, nil
}

// preprocess grayscales the image and upscales low-resolution captures.
func (t *Tesseract) preprocess(pngData []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, err
	}

	gray := imaging.Grayscale(img)
	if gray.Bounds().Dy() < minImageHeight {
		gray = imaging.Resize(gray, 0, 1200, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, gray, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// runEngine feeds the prepared image to Tesseract via a temp file.
func (t *Tesseract) runEngine(pngData []byte) (string, error) {
	tmp, err := os.CreateTemp("", "struk-*.png")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(pngData); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer func() {
		if err := client.Close(); err != nil {
			t.logger.WithError(err).Warn("Failed to close OCR client")
		}
	}()

	if err := client.SetLanguage(t.language); err != nil {
		return "", err
	}
	if err := client.SetImage(tmp.Name()); err != nil {
		return "", err
	}
	return client.Text()
}

func (t *Tesseract) report(percent int) {
	if t.progress != nil {
		t.progress(percent)
	}
}

// estimateConfidence derives a rough 0-100 readability score from the ratio
// of alphanumeric runes in the output. The engine does not expose a direct
// confidence value through this binding; the estimate is only used for UI
// display, never for filtering.
func estimateConfidence(text string) float64 {
	if text == "" {
		return 0
	}
	var total, readable int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total) * 100
}

var _ Recognizer = (*Tesseract)(nil)
