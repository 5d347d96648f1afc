// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nyan/internal/platform/apperr"
	"github.com/taibuivan/nyan/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/nyan/internal/platform/request"
	"github.com/taibuivan/nyan/internal/platform/sec"
)

type votePayload struct {
	Direction string `json:"direction"`
}

/*
TestDecodeJSON_Strict verifies unknown fields and trailing values are rejected.
*/
func TestDecodeJSON_Strict(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"direction":"up"}`, false},
		{"unknown_field", `{"direction":"up","weight":5}`, true},
		{"trailing_value", `{"direction":"up"}{"direction":"down"}`, true},
		{"broken", `{"direction":`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var payload votePayload
			err := requestutil.DecodeJSON(request, &payload)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "up", payload.Direction)
		})
	}
}

func TestRequiredUserID(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := requestutil.RequiredUserID(request)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "user-1"}))
	userID, err := requestutil.RequiredUserID(request)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestOptionalUserID(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, requestutil.OptionalUserID(request))

	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "user-1"}))
	assert.Equal(t, "user-1", requestutil.OptionalUserID(request))
}
