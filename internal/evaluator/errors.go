package evaluator

import (
	"errors"
	"fmt"
)

// FailureKind tags every terminal pipeline failure so callers can map it to
// their own policy (HTTP status, retry, skip) without string matching.
type FailureKind string

const (
	KindInvalidInput     FailureKind = "invalid_input"
	KindCompletionFailed FailureKind = "completion_failed"
	KindMalformedOutput  FailureKind = "malformed_output"
	KindSchemaViolation  FailureKind = "schema_violation"
	KindStorageFailed    FailureKind = "storage_failed"
)

// Error is a kind-tagged pipeline failure. It preserves the underlying cause
// for errors.Is/As.
type Error struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from an error chain. The second return is
// false for errors that did not originate in the pipeline.
func KindOf(err error) (FailureKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

func failed(kind FailureKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
