package client

import (
	"errors"
	"fmt"
)

// APIError is a failed API call. StatusCode 0 means the server could not be
// reached at all.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("server unreachable: %s", e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether the failure is transient: the server was
// unreachable or answered with a 5xx.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// IsNotFound reports whether the call hit a missing resource.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsNotFound reports whether err is an API error for a missing resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNotFound()
}

// FailureKind buckets terminal request failures for user display.
type FailureKind int

const (
	FailureUnreachable FailureKind = iota
	FailureBadRequest
	FailureNotFound
	FailureServer
	FailureHTTP   // any other HTTP status
	FailureClient // the request never produced an HTTP response
)

// Classify buckets an error returned by any client operation.
func Classify(err error) FailureKind {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return FailureClient
	}
	switch apiErr.StatusCode {
	case 0:
		return FailureUnreachable
	case 400:
		return FailureBadRequest
	case 404:
		return FailureNotFound
	case 500:
		return FailureServer
	default:
		return FailureHTTP
	}
}

// UserMessage renders the notification text for a failure.
func UserMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fmt.Sprintf("Client error: %s", err.Error())
	}
	switch apiErr.StatusCode {
	case 0:
		return "Server unreachable. Check that the API is running."
	case 400:
		return "Invalid request."
	case 404:
		return "Resource not found."
	case 500:
		return "Internal server error."
	default:
		return fmt.Sprintf("Server error (HTTP %d).", apiErr.StatusCode)
	}
}
