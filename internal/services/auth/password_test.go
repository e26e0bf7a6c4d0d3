// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordValidator(t *testing.T) {
	v := DefaultPasswordValidator()

	tests := []struct {
		name       string
		password   string
		attributes []string
		valid      bool
		code       string
	}{
		{
			name:     "valid password",
			password: "secret123",
			valid:    true,
		},
		{
			name:     "minimum length boundary",
			password: "NewPw1",
			valid:    true,
		},
		{
			name:     "empty password",
			password: "",
			valid:    false,
			code:     "required",
		},
		{
			name:     "too short",
			password: "abc",
			valid:    false,
			code:     "min_length",
		},
		{
			name:     "entirely numeric",
			password: "12345678",
			valid:    false,
			code:     "entirely_numeric",
		},
		{
			name:       "contains email",
			password:   "alice@example.comX",
			attributes: []string{"alice@example.com"},
			valid:      false,
			code:       "too_similar",
		},
		{
			name:       "unrelated to attributes",
			password:   "secret123",
			attributes: []string{"alice@example.com"},
			valid:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.password, tt.attributes...)
			assert.Equal(t, tt.valid, result.Valid)

			if tt.code != "" {
				codes := make([]string, len(result.Errors))
				for i, e := range result.Errors {
					codes[i] = e.Code
				}
				assert.Contains(t, codes, tt.code)
			}
		})
	}
}

func TestPasswordValidationError(t *testing.T) {
	err := &PasswordValidationError{Errors: []ValidationError{
		{Code: "min_length", Message: "Password must be at least 6 characters long."},
		{Code: "entirely_numeric", Message: "Password cannot be entirely numeric."},
	}}

	assert.Equal(t, "Password must be at least 6 characters long.", err.Error())
	assert.Len(t, err.Messages(), 2)
}
