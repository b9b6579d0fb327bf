package socialapi

import (
	"errors"
	"fmt"
	"net/http"

	"painel-social/internal/apperr"
)

// HTTPError is a non-2xx answer of the external API.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("social api: %s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("social api: %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Unwrap maps the status code onto the apperr sentinels.
func (e *HTTPError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return apperr.ErrNotFound
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return apperr.ErrUnauthorized
	case e.StatusCode == http.StatusConflict:
		return apperr.ErrConflict
	case e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity:
		return apperr.ErrInvalid
	default:
		return apperr.ErrUpstream
	}
}

// Retryable reports whether repeating the same request may succeed.
func (e *HTTPError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// transportError marks failures below HTTP (dial, reset, timeout).
type transportError struct{ err error }

func (e *transportError) Error() string { return "social api: transport: " + e.err.Error() }
func (e *transportError) Unwrap() []error { return []error{e.err, apperr.ErrUpstream} }

func isRetryable(err error) bool {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Retryable()
	}
	var te *transportError
	return errors.As(err, &te)
}

var errEmptyImageURL = errors.New("upload answered without image url")
