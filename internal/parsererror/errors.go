// Package parsererror defines the error types shared across the extraction
// pipeline and its export collaborators.
package parsererror

import "fmt"

// ParseError represents a failure to parse a single field value.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EmptySnapshotError is the only systemic failure the pipeline raises: the
// page snapshot carries neither markup nor rendered text, so no extractor
// can possibly produce output.
type EmptySnapshotError struct {
	Source string
}

func (e *EmptySnapshotError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("page snapshot from %s contains no markup and no rendered text", e.Source)
	}
	return "page snapshot contains no markup and no rendered text"
}

// UploadError represents an unexpected response from the movements backend.
// Duplicate responses (HTTP 409) are not errors and never produce one.
type UploadError struct {
	StatusCode int
	Body       string
}

func (e *UploadError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("movement upload rejected with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("movement upload rejected with status %d", e.StatusCode)
}
