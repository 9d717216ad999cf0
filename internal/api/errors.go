package api

import (
	"errors"
	"fmt"
)

// Domain-level errors surfaced by the remote API client. Higher layers match
// on these rather than on HTTP status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("upstream unavailable")
)

// statusError wraps an unexpected upstream status so the original code stays
// visible in logs while errors.Is keeps matching the domain error.
type statusError struct {
	status int
	domain error
}

func (e *statusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.status, e.domain)
}

func (e *statusError) Unwrap() error { return e.domain }

// mapStatus translates a non-2xx upstream status to a domain error.
func mapStatus(status int) error {
	switch {
	case status == 404:
		return &statusError{status: status, domain: ErrNotFound}
	case status == 401 || status == 403:
		return &statusError{status: status, domain: ErrUnauthorized}
	default:
		return &statusError{status: status, domain: ErrUnavailable}
	}
}
