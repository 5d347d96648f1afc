// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate accumulates field errors for a single input and reports
// them together as one VALIDATION_ERROR.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/nyan/internal/platform/apperr"
)

// ErrInvalidJSON is returned when a request body does not decode.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator is a fluent rule chain. Use one per input; it is not safe for
// concurrent use. The zero value is ready.
type Validator struct {
	errs []apperr.FieldError
}

func (v *Validator) check(ok bool, field, message string) *Validator {
	if !ok {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// Required rejects blank values.
func (v *Validator) Required(field, value string) *Validator {
	return v.check(strings.TrimSpace(value) != "", field, "This field is required")
}

// MaxLen counts runes, not bytes.
func (v *Validator) MaxLen(field, value string, limit int) *Validator {
	return v.check(utf8.RuneCountInString(value) <= limit, field, fmt.Sprintf("Maximum %d characters", limit))
}

// MinLen counts runes, not bytes.
func (v *Validator) MinLen(field, value string, limit int) *Validator {
	return v.check(utf8.RuneCountInString(value) >= limit, field, fmt.Sprintf("Minimum %d characters", limit))
}

// Range is inclusive at both ends.
func (v *Validator) Range(field string, value, low, high int) *Validator {
	return v.check(value >= low && value <= high, field, fmt.Sprintf("Must be between %d and %d", low, high))
}

// Email accepts a bare RFC 5322 address.
func (v *Validator) Email(field, value string) *Validator {
	address, err := mail.ParseAddress(value)
	return v.check(err == nil && address.Address == value, field, "Must be a valid email address")
}

// URL accepts absolute http and https URLs.
func (v *Validator) URL(field, value string) *Validator {
	parsed, err := url.Parse(value)
	ok := err == nil && parsed.Host != "" && (parsed.Scheme == "http" || parsed.Scheme == "https")
	return v.check(ok, field, "Must be a valid http(s) URL")
}

// OneOf requires an exact, case-sensitive match.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return v.check(slices.Contains(allowed, value), field, "Must be one of: "+strings.Join(allowed, ", "))
}

// Custom records message when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	return v.check(!failed, field, message)
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err ends the chain: nil, or one VALIDATION_ERROR listing every failure.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// FieldError is a one-field VALIDATION_ERROR for checks made outside a chain.
func FieldError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
