package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrSecretNotFound  = errors.New("secret not found")
)

// ErrAPI is the root of every error reported by the UtilityAPI client.
var ErrAPI = errors.New("utilityapi error")

var (
	ErrBadRequest          = fmt.Errorf("%w: bad request", ErrAPI)
	ErrNotFound            = fmt.Errorf("%w: not found", ErrAPI)
	ErrInternalServerError = fmt.Errorf("%w: internal server error", ErrAPI)
	ErrUnexpectedState     = fmt.Errorf("%w: unexpected state", ErrAPI)
)

// HTTPError is returned for every response with a 4xx or 5xx status code.
type HTTPError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: HTTP code: %d", e.Method, e.Path, e.StatusCode)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

func (e *HTTPError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusInternalServerError:
		return ErrInternalServerError
	default:
		return ErrAPI
	}
}

// StateError reports a server-side object that ended up somewhere the
// provisioning workflow cannot continue from.
type StateError struct {
	Resource string
	UID      string
	Detail   string
}

func (e *StateError) Error() string {
	if e.UID == "" {
		return fmt.Sprintf("%s: %s", e.Resource, e.Detail)
	}
	return fmt.Sprintf("%s %s: %s", e.Resource, e.UID, e.Detail)
}

func (e *StateError) Unwrap() error {
	return ErrUnexpectedState
}

// StatusCode extracts the HTTP status code carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
