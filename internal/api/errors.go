package api

import (
	"errors"
	"fmt"
)

// Sentinel and typed errors for transport-level reporting.
var (
	ErrNetwork             = errors.New("network failure")
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation error")
)

// RemoteError wraps non-specific remote errors with status code and optional body.
type RemoteError struct {
	StatusCode int
	Remote     ErrorBody
}

func (e RemoteError) Error() string {
	if e.Remote.Error != "" {
		return fmt.Sprintf("remote error %d (%s): %s", e.StatusCode, e.Remote.Error, e.Remote.Message)
	}
	return fmt.Sprintf("remote error %d", e.StatusCode)
}
