// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Circuit breaker errors.
var (
	// ErrCircuitBreakerOpen indicates the circuit breaker has tripped and requests are blocked.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
)

// Result set errors.
var (
	// ErrNoResult indicates no analysis result is currently installed.
	ErrNoResult = errors.New("no analysis result installed")

	// ErrStaleResult indicates a request referenced a result that has since been replaced.
	ErrStaleResult = errors.New("analysis result has been replaced")

	// ErrUploadSuperseded indicates a newer upload started before this one finished.
	ErrUploadSuperseded = errors.New("upload superseded by a newer upload")

	// ErrTopicOutOfRange indicates a topic row index outside the current series.
	ErrTopicOutOfRange = errors.New("topic index out of range")
)

// Response and parsing errors.
var (
	// ErrEmptyResponse indicates an empty response was received.
	ErrEmptyResponse = errors.New("empty response")
)

// Validation errors.
var (
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPayloadTooLarge indicates an upload exceeded the configured size limit.
	ErrPayloadTooLarge = errors.New("payload too large")
)
