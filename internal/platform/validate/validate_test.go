// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nyan/internal/platform/apperr"
	"github.com/taibuivan/nyan/internal/platform/validate"
)

func TestRules(t *testing.T) {
	tests := []struct {
		name   string
		run    func(v *validate.Validator)
		failed bool
	}{
		{"required", func(v *validate.Validator) { v.Required("name", "Nyan") }, false},
		{"required_blank", func(v *validate.Validator) { v.Required("name", "   ") }, true},
		{"maxlen_runes", func(v *validate.Validator) { v.MaxLen("content", "ねこねこ", 4) }, false},
		{"maxlen_over", func(v *validate.Validator) { v.MaxLen("content", "ねこねこね", 4) }, true},
		{"minlen_under", func(v *validate.Validator) { v.MinLen("username", "ab", 3) }, true},
		{"range_low", func(v *validate.Validator) { v.Range("score", 1, 1, 10) }, false},
		{"range_high", func(v *validate.Validator) { v.Range("score", 10, 1, 10) }, false},
		{"range_zero", func(v *validate.Validator) { v.Range("score", 0, 1, 10) }, true},
		{"range_eleven", func(v *validate.Validator) { v.Range("score", 11, 1, 10) }, true},
		{"email", func(v *validate.Validator) { v.Email("email", "kuro@nyan.app") }, false},
		{"email_display_name", func(v *validate.Validator) { v.Email("email", "Kuro <kuro@nyan.app>") }, true},
		{"email_missing_domain", func(v *validate.Validator) { v.Email("email", "kuro@") }, true},
		{"url_https", func(v *validate.Validator) { v.URL("image_url", "https://cdn.nyan.app/a.png") }, false},
		{"url_relative", func(v *validate.Validator) { v.URL("image_url", "/a.png") }, true},
		{"url_ftp", func(v *validate.Validator) { v.URL("image_url", "ftp://cdn.nyan.app/a.png") }, true},
		{"oneof", func(v *validate.Validator) { v.OneOf("status", "ongoing", "ongoing", "completed") }, false},
		{"oneof_case", func(v *validate.Validator) { v.OneOf("status", "Ongoing", "ongoing", "completed") }, true},
		{"custom", func(v *validate.Validator) { v.Custom("content", true, "Must not be blank") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			tt.run(v)
			assert.Equal(t, tt.failed, v.HasErrors())
		})
	}
}

func TestErr_AccumulatesInOrder(t *testing.T) {
	err := (&validate.Validator{}).
		Required("username", "").
		MinLen("username", "", 3).
		Email("email", "not-an-email").
		Range("score", 3, 1, 10).
		Err()

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	require.Len(t, appErr.Details, 3)
	assert.Equal(t, []string{"username", "username", "email"},
		[]string{appErr.Details[0].Field, appErr.Details[1].Field, appErr.Details[2].Field})
}

func TestErr_NilWhenClean(t *testing.T) {
	assert.NoError(t, (&validate.Validator{}).Required("name", "ok").Err())
}

func TestFieldError(t *testing.T) {
	appErr := validate.FieldError("direction", "Must be one of: up, down")

	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "direction", appErr.Details[0].Field)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
