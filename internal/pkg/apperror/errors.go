// Package apperror carries the error categories returned by services and
// translated to HTTP responses by serverutils.ErrorHandlerMiddleware.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeBadRequest      Code = "BAD_REQUEST"
	CodePolicyRejection Code = "POLICY_REJECTION"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeQuotaExceeded   Code = "QUOTA_EXCEEDED"
	CodeUpstreamFailure Code = "UPSTREAM_FAILURE"
	CodeInternal        Code = "INTERNAL_ERROR"
)

// AppError is a user-facing error. Message is safe to show; Cause is not.
type AppError struct {
	Code            Code
	Message         string
	Details         string
	UpgradeRequired bool
	Status          int // overrides the code's default status when non-zero
	Cause           error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status for the error.
func (e *AppError) StatusCode() int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Code {
	case CodeBadRequest, CodePolicyRejection:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeQuotaExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

// PolicyRejection is a user-actionable refusal that is not tier related,
// e.g. missing preferences.
func PolicyRejection(message string) *AppError {
	return New(CodePolicyRejection, message)
}

// UpgradeRequired is a tier-limit refusal. It is reported as 403 and carries
// the upgradeRequired hint.
func UpgradeRequired(message string) *AppError {
	return &AppError{
		Code:            CodePolicyRejection,
		Message:         message,
		UpgradeRequired: true,
		Status:          http.StatusForbidden,
	}
}

func QuotaExceeded(message string) *AppError {
	return &AppError{Code: CodeQuotaExceeded, Message: message, UpgradeRequired: true}
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Forbidden(message string) *AppError {
	if message == "" {
		message = "Access denied"
	}
	return New(CodeForbidden, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

// Upstream wraps a provider failure behind a generic message.
func Upstream(message string, cause error) *AppError {
	return &AppError{Code: CodeUpstreamFailure, Message: message, Cause: cause}
}

func Internal(message string, cause error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Cause: cause}
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
