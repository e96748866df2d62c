// Package errors provides custom error types for the locmerge system.
// These errors enable programmatic error checking and keep supplier
// failures distinguishable from fatal publication failures.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the locmerge system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrSupplierUnavailable indicates that a supplier feed is temporarily unavailable
	ErrSupplierUnavailable = errors.New("supplier unavailable")

	// ErrMalformedRecord indicates a raw supplier record missing required fields
	ErrMalformedRecord = errors.New("malformed record")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// CollectorError represents a failure while fetching or decoding a supplier feed.
// It is recoverable: the run skips the supplier and continues.
type CollectorError struct {
	Supplier string
	Message  string
	Err      error
}

// Error implements the error interface
func (e *CollectorError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("collector %s: %s: %v", e.Supplier, e.Message, e.Err)
	}
	return fmt.Sprintf("collector %s: %v", e.Supplier, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *CollectorError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *CollectorError) Is(target error) bool {
	return target == ErrSupplierUnavailable
}

// NewCollectorError creates a new CollectorError
func NewCollectorError(supplier, message string, err error) *CollectorError {
	return &CollectorError{Supplier: supplier, Message: message, Err: err}
}

// APIError represents an error response from a supplier API
type APIError struct {
	Supplier   string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Supplier, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Supplier, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode >= 500 {
		return target == ErrSupplierUnavailable
	}
	return false
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

// ParseError represents a failure to parse supplier data
type ParseError struct {
	Format  string // xml, json, yaml, coordinate
	Subject string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from %s: %v", e.Format, e.Subject, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // read, write, rename, remove
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("I/O error during %s on %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// SerializationError represents a failure to serialize or re-validate the
// catalog before publication. It is fatal for the run.
type SerializationError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *SerializationError) Error() string {
	return fmt.Sprintf("catalog serialization failed for %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, subject string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Subject: subject, Err: err}
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

// IsSupplierUnavailable checks if an error indicates a supplier outage
func IsSupplierUnavailable(err error) bool {
	return errors.Is(err, ErrSupplierUnavailable)
}
