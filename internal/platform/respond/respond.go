// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond writes the API's JSON envelopes:
//
//	{"data": ...}
//	{"data": [...], "meta": {...}}
//	{"error": "...", "code": "...", "details": [...]}
package respond

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/nyan/internal/platform/apperr"
	"github.com/taibuivan/nyan/internal/platform/ctxutil"
	"github.com/taibuivan/nyan/pkg/pagination"
)

type dataEnvelope struct {
	Data any              `json:"data"`
	Meta *pagination.Meta `json:"meta,omitempty"`
}

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// fallbackBody is written when a payload cannot be encoded.
var fallbackBody = []byte(`{"error":"An unexpected error occurred","code":"` + apperr.CodeInternal + `"}` + "\n")

// JSON encodes payload fully before writing anything, so an unencodable
// value turns into a clean 500 instead of a truncated 200.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		slog.Default().Error("response_encode_failed", slog.Any("error", err))
		statusCode = http.StatusInternalServerError
		body.Reset()
		body.Write(fallbackBody)
	}

	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_, _ = writer.Write(body.Bytes())
}

// OK writes 200 {"data": data}.
func OK(writer http.ResponseWriter, data any) {
	Status(writer, http.StatusOK, data)
}

// Created writes 201 {"data": data}.
func Created(writer http.ResponseWriter, data any) {
	Status(writer, http.StatusCreated, data)
}

// Status writes {"data": data} with any status code.
func Status(writer http.ResponseWriter, statusCode int, data any) {
	JSON(writer, statusCode, dataEnvelope{Data: data})
}

// Paginated writes 200 with the list and its page metadata.
func Paginated(writer http.ResponseWriter, data any, meta pagination.Meta) {
	JSON(writer, http.StatusOK, dataEnvelope{Data: data, Meta: &meta})
}

// Error writes err as an [ErrorEnvelope]. Anything outside the apperr
// taxonomy is logged with its cause and sent as an opaque INTERNAL_ERROR.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()

	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}
	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
