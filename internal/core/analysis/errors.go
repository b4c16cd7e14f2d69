package analysis

import "errors"

// Error definitions for analysis backend operations.
var (
	// ErrServerError is returned for non-2xx backend responses.
	ErrServerError = errors.New("analysis backend server error")
)
