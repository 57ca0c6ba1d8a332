package moodle

import (
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

// Exception names Moodle uses for authentication problems.
const (
	ErrorCodeInvalidToken    = "invalidtoken"
	ErrorCodeAccessException = "accessexception"
)

// APIError is an exception payload returned by a web service function,
// or an error object returned by the upload endpoint.
type APIError struct {
	Function  string
	Exception string
	ErrorCode string
	Message   string
	DebugInfo string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("moodle: %s: %s", e.Function, e.Message)
	if e.ErrorCode != "" {
		msg += " (" + e.ErrorCode + ")"
	}
	if e.DebugInfo != "" {
		msg += ": " + e.DebugInfo
	}
	return msg
}

func (e *APIError) Unwrap() error { return domain.ErrRemoteCall }

// HTTPError is a non-2xx response.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("moodle: HTTP %s (URL: %s)", e.Status, e.URL)
}

func (e *HTTPError) Unwrap() error { return domain.ErrRemoteCall }

// RateLimitError is a 429 response.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("moodle: rate limited, retry after %s", e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error { return domain.ErrRemoteCall }

// IsInvalidToken reports whether err means the token was rejected.
func IsInvalidToken(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode == ErrorCodeInvalidToken
	}
	return false
}

// IsAccessDenied reports whether err means the token lacks a capability.
func IsAccessDenied(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode == ErrorCodeAccessException ||
			apiErr.ErrorCode == "nopermissions" ||
			apiErr.ErrorCode == "requireloginerror"
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 401 || httpErr.StatusCode == 403
	}
	return false
}

// IsRateLimited reports whether err indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}
