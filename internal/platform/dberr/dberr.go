// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Classification
//
//   - pgx.ErrNoRows becomes NOT_FOUND.
//   - SQLSTATE 23505 (unique_violation) becomes [ErrUniqueViolation].
//   - SQLSTATE 23503 (foreign_key_violation) becomes NOT_FOUND for the referenced row.
//   - SQLSTATE 23514 (check_violation) becomes VALIDATION_ERROR.
//   - Connection failures (class 08, 57P0x, dial errors, deadline exceeded) become SERVICE_UNAVAILABLE.
//   - Anything else becomes INTERNAL_ERROR.
package dberr

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/nyan/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")

	// ErrUniqueViolation is returned when an insert races a concurrent insert
	// of the same natural key.
	ErrUniqueViolation = apperr.Conflict("Resource already exists")

	// ErrUnavailable is returned when the database cannot be reached.
	ErrUnavailable = apperr.ServiceUnavailable("Storage is temporarily unavailable")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// The action string is attached to the cause for server-side logs.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack.
	if apperr.IsAppError(err) {
		return err
	}

	cause := &actionError{action: action, err: err}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound.WithCause(cause)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch {
		case pgError.Code == pgerrcode.UniqueViolation:
			return ErrUniqueViolation.WithCause(cause)
		case pgError.Code == pgerrcode.ForeignKeyViolation:
			return ErrNotFound.WithCause(cause)
		case pgError.Code == pgerrcode.CheckViolation:
			return apperr.ValidationError("Value violates a storage constraint").WithCause(cause)
		case pgerrcode.IsConnectionException(pgError.Code),
			pgError.Code == pgerrcode.AdminShutdown,
			pgError.Code == pgerrcode.CrashShutdown,
			pgError.Code == pgerrcode.CannotConnectNow:
			return ErrUnavailable.WithCause(cause)
		}
		return apperr.Internal(cause)
	}

	if isUnavailable(err) {
		return ErrUnavailable.WithCause(cause)
	}

	return apperr.Internal(cause)
}

// IsUniqueViolation reports whether err was classified as a unique-key race.
func IsUniqueViolation(err error) bool {
	return apperr.HasCode(err, apperr.CodeConflict)
}

// isUnavailable detects transport-level failures that never reached the server.
func isUnavailable(err error) bool {
	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connectError *pgconn.ConnectError
	if errors.As(err, &connectError) {
		return true
	}

	var netError net.Error
	return errors.As(err, &netError)
}

// actionError decorates a driver error with the repository action that failed.
type actionError struct {
	action string
	err    error
}

func (e *actionError) Error() string { return e.action + ": " + e.err.Error() }

func (e *actionError) Unwrap() error { return e.err }
