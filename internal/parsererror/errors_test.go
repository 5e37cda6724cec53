package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecognitionError(t *testing.T) {
	cause := errors.New("tesseract not installed")
	err := &RecognitionError{Source: "engine", Err: cause}

	assert.Contains(t, err.Error(), "engine")
	assert.Contains(t, err.Error(), "tesseract not installed")
	assert.ErrorIs(t, err, cause)
}

func TestUnreadableFileError(t *testing.T) {
	cause := errors.New("zip: not a valid zip file")
	err := &UnreadableFileError{Path: "/tmp/statement.xlsx", Err: cause}

	assert.Contains(t, err.Error(), "/tmp/statement.xlsx")
	assert.ErrorIs(t, err, cause)
}

func TestStoreError(t *testing.T) {
	cause := errors.New("timeout")
	err := &StoreError{Op: "lookup", Err: cause}

	assert.Contains(t, err.Error(), "lookup")
	assert.ErrorIs(t, err, cause)
}
