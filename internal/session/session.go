// Package session orchestrates one receipt scan: image in, parsed result
// out. All per-scan state lives in the ScanResult value, so nothing leaks
// between scan attempts and a discarded result is simply garbage collected.
package session

import (
	"context"

	"kiyotrack/struk-csv/internal/imageprep"
	"kiyotrack/struk-csv/internal/logging"
	"kiyotrack/struk-csv/internal/models"
	"kiyotrack/struk-csv/internal/provider"
	"kiyotrack/struk-csv/internal/receiptparser"
	"kiyotrack/struk-csv/internal/recognizer"
)

// ScanResult is everything one scan produced.
type ScanResult struct {
	Recognized models.RecognizedText
	Receipt    models.ParsedReceipt
	// SuggestedAccount is set when the detected provider matches one of the
	// known accounts.
	SuggestedAccount models.Account
	HasSuggestion    bool
	// ArchiveImage is the compressed copy of the capture for upload, with
	// ArchiveURI as the local fallback reference.
	ArchiveImage []byte
	ArchiveURI   string
}

// Scanner runs receipt scans against a fixed recognizer and account list.
type Scanner struct {
	recognizer recognizer.Recognizer
	accounts   []models.Account
	logger     logging.Logger
}

// NewScanner creates a Scanner. The account list may be empty.
func NewScanner(rec recognizer.Recognizer, accounts []models.Account, logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Scanner{recognizer: rec, accounts: accounts, logger: logger}
}

// Scan recognizes and parses one receipt image. Recognition failures abort
// the scan; parsing never fails. Image archival is best effort: a capture
// that cannot be recompressed leaves the archive fields empty without
// failing the scan.
func (s *Scanner) Scan(ctx context.Context, image []byte, contentType string) (ScanResult, error) {
	recognized, err := s.recognizer.Recognize(ctx, image, contentType)
	if err != nil {
		return ScanResult{}, err
	}

	result := ScanResult{
		Recognized: recognized,
		Receipt:    receiptparser.Parse(recognized.Text),
	}

	if account, ok := provider.SuggestAccount(result.Receipt.Provider, s.accounts); ok {
		result.SuggestedAccount = account
		result.HasSuggestion = true
	}

	if archived, err := imageprep.Compress(image); err == nil {
		result.ArchiveImage = archived
		result.ArchiveURI = imageprep.DataURI(archived)
	} else {
		s.logger.WithError(err).Debug("Could not compress capture for archival")
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldProvider, Value: result.Receipt.Provider},
		logging.Field{Key: "merchant", Value: result.Receipt.Merchant},
		logging.Field{Key: "total_found", Value: result.Receipt.TotalFound},
	).Info("Receipt scan completed")

	return result, nil
}
