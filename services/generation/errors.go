package generation

import "fmt"

// InputError means the caller supplied invalid data; no model call was made.
type InputError struct {
	Field string
	Msg   string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Msg)
}

// ErrEmptyTopic is returned when outline generation is asked for a blank topic.
var ErrEmptyTopic = &InputError{Field: "topic", Msg: "topic must not be empty"}

// ExtractionError means no text could be located in the model response envelope.
type ExtractionError struct {
	Msg string
}

func (e *ExtractionError) Error() string {
	return "response extraction failed: " + e.Msg
}

// MalformedResponseError means the extracted text was not parseable as JSON.
// Structural failures like this are not retried automatically.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return "model returned malformed JSON: " + e.Err.Error()
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SchemaViolationError means the response parsed but violated a structural
// invariant. It names the offending field, and for collection entries the
// index (and block kind) that failed.
type SchemaViolationError struct {
	Field string
	Index int // -1 when not indexed
	Kind  string
	Msg   string
}

func (e *SchemaViolationError) Error() string {
	if e.Index >= 0 {
		if e.Kind != "" {
			return fmt.Sprintf("schema violation at %s[%d] (kind %q): %s", e.Field, e.Index, e.Kind, e.Msg)
		}
		return fmt.Sprintf("schema violation at %s[%d]: %s", e.Field, e.Index, e.Msg)
	}
	return fmt.Sprintf("schema violation at %s: %s", e.Field, e.Msg)
}

// TransportError wraps network, timeout and rate-limit failures from the model
// API. These are retry-worthy, unlike the structural errors above.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("model transport error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("model transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func schemaErr(field, msg string) *SchemaViolationError {
	return &SchemaViolationError{Field: field, Index: -1, Msg: msg}
}

func schemaErrAt(field string, index int, kind, msg string) *SchemaViolationError {
	return &SchemaViolationError{Field: field, Index: index, Kind: kind, Msg: msg}
}
