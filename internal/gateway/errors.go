package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
)

// APIError wraps a failed GitHub call with the HTTP status it produced.
// StatusCode is 0 when no response was received.
type APIError struct {
	Op         string
	StatusCode int
	RateLimit  bool
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to %s (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// NotFound reports whether GitHub answered 404.
func (e *APIError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// RateLimited reports whether GitHub refused the request as forbidden or rate limited.
func (e *APIError) RateLimited() bool {
	return e.RateLimit || e.StatusCode == http.StatusForbidden || e.StatusCode == http.StatusTooManyRequests
}

func wrapError(op string, resp *github.Response, err error) error {
	apiErr := &APIError{Op: op, Err: err}
	if resp != nil && resp.Response != nil {
		apiErr.StatusCode = resp.StatusCode
	}
	var errResp *github.ErrorResponse
	if apiErr.StatusCode == 0 && errors.As(err, &errResp) && errResp.Response != nil {
		apiErr.StatusCode = errResp.Response.StatusCode
	}
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		apiErr.RateLimit = true
	}
	return apiErr
}

// IsNotFound reports whether err carries a GitHub 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

// IsRateLimited reports whether err carries a GitHub 403/429 or rate limit error.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.RateLimited()
}
