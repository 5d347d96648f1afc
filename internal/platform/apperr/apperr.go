// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error taxonomy shared by every Nyan service.

Errors raised by the domain (a missing manga, an out-of-range score, a vote
with an unknown direction) and by storage (an unreachable database) are all
expressed as an [AppError]. The transport layer then maps each one to an HTTP
status without having to know where it came from.

Taxonomy:

  - NOT_FOUND: a referenced user, manga or comment does not exist.
  - VALIDATION_ERROR: malformed input; the caller must fix it before retrying.
  - CONFLICT: a unique key was violated (recovered locally where the domain allows it).
  - SERVICE_UNAVAILABLE: the backing store is unreachable; the whole call may be retried.
  - INTERNAL_ERROR: anything unexpected.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeConflict           = "CONFLICT"
	CodeValidation         = "VALIDATION_ERROR"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError is an error the transport layer can render. Message is safe for
// clients; Cause is logged and never serialized.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one failed input rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches any [*AppError] with the same code, so
// errors.Is(err, apperr.NotFound("")) holds for every missing resource.
func (e *AppError) Is(target error) bool {
	var other *AppError
	return errors.As(target, &other) && other.Code == e.Code
}

// WithCause returns a copy of e carrying cause.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func newError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// NotFound reports a missing resource: NotFound("Manga") reads "Manga not found".
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, http.StatusNotFound, resource+" not found")
}

func Unauthorized(message string) *AppError {
	return newError(CodeUnauthorized, http.StatusUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return newError(CodeForbidden, http.StatusForbidden, message)
}

// Conflict reports a unique key the domain could not recover from.
func Conflict(message string) *AppError {
	return newError(CodeConflict, http.StatusConflict, message)
}

// ValidationError is a 400 listing every failed field.
func ValidationError(message string, details ...FieldError) *AppError {
	appErr := newError(CodeValidation, http.StatusBadRequest, message)
	appErr.Details = details
	return appErr
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(CodeRateLimited, http.StatusTooManyRequests,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return newError(CodeInternal, http.StatusInternalServerError, "An unexpected error occurred").WithCause(cause)
}

// ServiceUnavailable means a backing store is unreachable and the whole
// call may be retried.
func ServiceUnavailable(message string) *AppError {
	return newError(CodeServiceUnavailable, http.StatusServiceUnavailable, message)
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsAppError reports whether err's chain holds an [*AppError].
func IsAppError(err error) bool {
	return As(err) != nil
}

// HasCode reports whether err's chain holds an [*AppError] with code.
func HasCode(err error, code string) bool {
	appErr := As(err)
	return appErr != nil && appErr.Code == code
}
