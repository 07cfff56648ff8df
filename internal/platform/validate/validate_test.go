// Copyright (c) 2026 Dugout. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Tee work", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("title", tt.value)

			if tt.hasError {
				ae := apperr.As(v.Err())
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, "title", ae.Details[0].Field)
			} else {
				assert.NoError(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Date checks the YYYY-MM-DD rule.
*/
func TestValidator_Date(t *testing.T) {
	tests := map[string]bool{
		"2024-04-01": true,
		"":           true,
		"2024-13-01": false,
		"04/01/2024": false,
		"2024-4-1":   false,
	}

	for value, valid := range tests {
		v := &validate.Validator{}
		v.Date("dob", value)
		assert.Equal(t, valid, v.Err() == nil, value)
	}
}

func TestValidator_URL(t *testing.T) {
	tests := map[string]bool{
		"https://youtu.be/abc": true,
		"":                     true,
		"youtu.be/abc":         false,
		"ftp://files/x":        false,
	}

	for value, valid := range tests {
		v := &validate.Validator{}
		v.URL("video_link", value)
		assert.Equal(t, valid, v.Err() == nil, value)
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("first_name", "").
		OneOf("bats", "X", "R", "L", "S").
		OptionalOneOf("throws", "", "R", "L").
		OptionalRange("height_in", intPtr(14), 0, 11).
		UUID("player_id", "abc").
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 4)
}

func TestFieldError(t *testing.T) {
	ae := validate.FieldError("date", "bad")
	assert.Equal(t, "date", ae.Details[0].Field)
}

func intPtr(v int) *int { return &v }
