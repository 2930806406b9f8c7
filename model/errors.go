package model

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidInput        Kind = "INVALID_INPUT"
	KindNotFound            Kind = "NOT_FOUND"
	KindUpstreamUnavailable Kind = "UPSTREAM_UNAVAILABLE"
	KindInternal            Kind = "INTERNAL"
)

type Code string

const (
	CodeInvalidURL         Code = "INVALID_URL"
	CodeInvalidOptions     Code = "INVALID_OPTIONS"
	CodeMissingTranscript  Code = "MISSING_TRANSCRIPT"
	CodeNoTranscript       Code = "NO_TRANSCRIPT"
	CodeQuotaExceeded      Code = "QUOTA_EXCEEDED"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeGenerationFailed   Code = "GENERATION_FAILED"
	CodeInternal           Code = "INTERNAL"
)

// Error is the failure reported at the boundary of a stage. Message is meant
// for the user, Err holds the underlying cause and is only logged.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Err     error
}

func NewError(kind Kind, code Code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError finds the first *Error in the chain of err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns KindInternal for errors that carry no kind.
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return KindInternal
}
