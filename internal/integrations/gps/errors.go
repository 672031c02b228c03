package gps

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when the backend body is not an XML document at all.
// It is not a BackendError: the transport succeeded.
var ErrMalformedResponse = errors.New("malformed SOAP response")

// BackendError wraps any transport-level failure talking to the card backend:
// dial errors, timeouts, non-2xx statuses and body read failures.
type BackendError struct {
	Operation string
	Err       error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("SOAP API Error: %v", e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
