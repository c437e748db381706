// Package apperr provides structured application errors and their HTTP mapping.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error category
type Code string

const (
	CodeNotFound            Code = "NOT_FOUND"
	CodeInvalidInput        Code = "INVALID_INPUT"
	CodeGenerationFailed    Code = "GENERATION_FAILED"
	CodeProviderUnavailable Code = "PROVIDER_UNAVAILABLE"
	CodeProviderTimeout     Code = "PROVIDER_TIMEOUT"
	CodeRateLimited         Code = "RATE_LIMITED"
	CodeInternal            Code = "INTERNAL_ERROR"
)

// AppError represents an application error with structured information
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
	// Generated reports whether the provider produced output that turned out unusable.
	Generated bool  `json:"generated"`
	Cause     error `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status code for the error
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeGenerationFailed:
		return http.StatusBadGateway
	case CodeProviderUnavailable:
		return http.StatusServiceUnavailable
	case CodeProviderTimeout:
		return http.StatusGatewayTimeout
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether the same request may be sent again unchanged.
func (e *AppError) Retryable() bool {
	switch e.Code {
	case CodeGenerationFailed, CodeProviderUnavailable, CodeProviderTimeout, CodeRateLimited:
		return true
	}
	return false
}

// WithCause attaches a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func New(code Code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NotFound creates a missing-prerequisite error for the named resource
func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found", "")
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message, "")
}

// GenerationFailed is returned once the single repair attempt is exhausted.
func GenerationFailed(kind string, cause error) *AppError {
	e := New(CodeGenerationFailed, fmt.Sprintf("failed to generate valid %s; please retry", kind), "")
	e.Generated = true
	return e.WithCause(cause)
}

func ProviderUnavailable(cause error) *AppError {
	return New(CodeProviderUnavailable, "meal provider is unavailable; nothing was generated, please retry", "").WithCause(cause)
}

func ProviderTimeout(cause error) *AppError {
	return New(CodeProviderTimeout, "meal provider timed out; nothing was generated, please retry", "").WithCause(cause)
}

func Internal(message string, cause error) *AppError {
	return New(CodeInternal, message, "").WithCause(cause)
}

// As extracts an *AppError from err, wrapping unknown errors as internal.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error", err)
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
