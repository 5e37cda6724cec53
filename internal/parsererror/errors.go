// Package parsererror defines the typed errors produced at the pipeline
// boundaries. Only the recognizer and the statement reader may fail hard;
// the parsing layers degrade to empty fields or dropped rows instead.
package parsererror

import "fmt"

// RecognitionError reports a text recognition failure: the engine could not
// initialize or the image could not be processed. The scan is aborted and the
// user may retry; no retry happens automatically.
type RecognitionError struct {
	Source string
	Err    error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("text recognition failed for %s: %v", e.Source, e.Err)
}

func (e *RecognitionError) Unwrap() error {
	return e.Err
}

// UnreadableFileError reports a statement file that could not be opened or
// decoded at all. A garbled file cannot be degraded gracefully, so this is
// surfaced to the caller as a hard failure.
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("unreadable statement file '%s': %v", e.Path, e.Err)
}

func (e *UnreadableFileError) Unwrap() error {
	return e.Err
}

// StoreError reports a failure of the transaction ledger used for duplicate
// checks. Callers are expected to fail open on it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("ledger %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
