package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies a fetch failure
type ErrorType string

const (
	NetworkError  ErrorType = "NETWORK_ERROR"
	HTTPError     ErrorType = "HTTP_ERROR"
	ParseError    ErrorType = "PARSE_ERROR"
	BodyReadError ErrorType = "BODY_READ_ERROR"
	AbortedStop   ErrorType = "ABORTED_STOP"
	UnknownError  ErrorType = "UNKNOWN_ERROR"
)

// SnippetLimit caps ErrorContext.ResponseSnippet, in characters
const SnippetLimit = 500

const bodyReadFailedSnippet = "(Body read failed)"

// ErrorContext carries diagnostic details of a failure
type ErrorContext struct {
	URL              string   `json:"url,omitempty"`
	ResponseSnippet  string   `json:"responseSnippet,omitempty"`
	ValidationIssues []string `json:"validationIssues,omitempty"`
}

// Error is the single error shape returned by the fetch layer and everything
// built on it
type Error struct {
	Type    ErrorType    `json:"type"`
	Message string       `json:"message"`
	Status  int          `json:"status,omitempty"`
	Context ErrorContext `json:"context"`

	cause error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Type, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Aborted returns an ABORTED_STOP error for url
func Aborted(url string) *Error {
	return &Error{
		Type:    AbortedStop,
		Message: "request aborted",
		Context: ErrorContext{URL: url},
		cause:   context.Canceled,
	}
}

// ParseFailure returns a PARSE_ERROR. source is a URL or a storage key.
func ParseFailure(source string, snippet string, cause error, issues ...string) *Error {
	msg := "failed to parse response"
	if cause != nil {
		msg = fmt.Sprintf("failed to parse response: %v", cause)
	}
	return &Error{
		Type:    ParseError,
		Message: msg,
		Context: ErrorContext{
			URL:              source,
			ResponseSnippet:  Snippet(snippet),
			ValidationIssues: issues,
		},
		cause: cause,
	}
}

func networkFailure(url string, cause error) *Error {
	return &Error{
		Type:    NetworkError,
		Message: fmt.Sprintf("network connection failed: %v", cause),
		Context: ErrorContext{URL: url},
		cause:   cause,
	}
}

func httpFailure(url string, status int, body string) *Error {
	return &Error{
		Type:    HTTPError,
		Message: fmt.Sprintf("unexpected status: %d %s", status, http.StatusText(status)),
		Status:  status,
		Context: ErrorContext{URL: url, ResponseSnippet: Snippet(body)},
	}
}

func bodyReadFailure(url string, status int, cause error) *Error {
	return &Error{
		Type:    BodyReadError,
		Message: fmt.Sprintf("reading response body: %v", cause),
		Status:  status,
		Context: ErrorContext{URL: url, ResponseSnippet: bodyReadFailedSnippet},
		cause:   cause,
	}
}

// Snippet truncates s to SnippetLimit characters
func Snippet(s string) string {
	runes := []rune(s)
	if len(runes) <= SnippetLimit {
		return s
	}
	return string(runes[:SnippetLimit])
}

// From converts any error into an *Error. Context cancellation becomes
// ABORTED_STOP; anything foreign becomes UNKNOWN_ERROR.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}

	if errors.Is(err, context.Canceled) {
		return &Error{Type: AbortedStop, Message: "request aborted", cause: err}
	}

	return &Error{Type: UnknownError, Message: err.Error(), cause: err}
}

// IsAborted reports whether err is a cancellation
func IsAborted(err error) bool {
	fe := From(err)
	return fe != nil && fe.Type == AbortedStop
}

// IsNotFound reports whether err is an HTTP 404
func IsNotFound(err error) bool {
	fe := From(err)
	return fe != nil && fe.Type == HTTPError && fe.Status == http.StatusNotFound
}

// Reportable reports whether err should be shown to a user. Cancellations
// are expected and stay silent.
func Reportable(err error) bool {
	return err != nil && !IsAborted(err)
}
