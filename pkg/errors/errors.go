// Package errors provides custom error types for the orbite system.
// These errors enable programmatic error checking, retry dispatch on
// classified fetch failures, and improved debugging throughout the
// application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As are aliases for the standard library matchers so callers
// need only one errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the orbite system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrSourceUnavailable indicates that a source is temporarily unavailable
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRateLimited indicates that a source rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrStateCorrupted indicates that a saved dossier file could not be restored
	ErrStateCorrupted = errors.New("state corrupted")
)

// FetchReason classifies why an adapter call failed. Retry policy dispatches
// on the reason rather than on string matching.
type FetchReason string

// Fetch failure classifications
const (
	// ReasonTransient covers timeouts, connection resets, and 5xx answers
	ReasonTransient FetchReason = "transient"

	// ReasonRateLimit covers HTTP 429 answers
	ReasonRateLimit FetchReason = "rate_limit"

	// ReasonClient covers non-retryable 4xx answers and bad queries
	ReasonClient FetchReason = "client"

	// ReasonParse covers response bodies of an unexpected shape
	ReasonParse FetchReason = "parse"
)

// Retryable reports whether a failure with this reason may be retried.
func (r FetchReason) Retryable() bool {
	return r == ReasonTransient || r == ReasonRateLimit
}

// FetchError represents a classified failure of an adapter call.
type FetchError struct {
	Source     string // Source ID as string
	Op         string // "search", "fetch", "enrich", ...
	Reason     FetchReason
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s failed (%s, status %d): %s", e.Source, e.Op, e.Reason, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s failed (%s): %s", e.Source, e.Op, e.Reason, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FetchError) Is(target error) bool {
	switch e.Reason {
	case ReasonRateLimit:
		return target == ErrRateLimited
	case ReasonTransient:
		return target == ErrSourceUnavailable
	}
	return false
}

// Retryable reports whether the call may be attempted again.
func (e *FetchError) Retryable() bool {
	return e.Reason.Retryable()
}

// NewFetchError creates a new FetchError
func NewFetchError(source, op string, reason FetchReason, statusCode int, err error) *FetchError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &FetchError{
		Source:     source,
		Op:         op,
		Reason:     reason,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// ClassifyStatus maps an HTTP status code to a fetch failure reason:
// 429 is a rate limit, 5xx is transient, any other 4xx is a client error.
func ClassifyStatus(statusCode int) FetchReason {
	switch {
	case statusCode == 429:
		return ReasonRateLimit
	case statusCode >= 500:
		return ReasonTransient
	default:
		return ReasonClient
	}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// StateError represents a failure to save or restore the dossier state file.
// A failed import leaves the in-memory state untouched.
type StateError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *StateError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("state file %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("state: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *StateError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StateError) Is(target error) bool {
	return target == ErrStateCorrupted
}

// NewStateError creates a new StateError
func NewStateError(path, message string, err error) *StateError {
	return &StateError{Path: path, Message: message, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "sparql", etc.
	Source  string // file path or endpoint that produced the data
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse error in %s from %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, source, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsSourceUnavailable checks if an error indicates source unavailability
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// IsStateCorrupted checks if an error reports an unrestorable state file
func IsStateCorrupted(err error) bool {
	return errors.Is(err, ErrStateCorrupted)
}

// IsRetryable reports whether err is a fetch failure worth retrying.
func IsRetryable(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Retryable()
	}
	return false
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, source, err.Error(), err)
}

// WrapState wraps an error as a StateError
func WrapState(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewStateError(path, err.Error(), err)
}

// WrapFetch wraps an error as a parse-classified FetchError at the adapter
// boundary when a response body has an unexpected shape.
func WrapFetch(source, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewFetchError(source, op, ReasonParse, 0, err)
}
