package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/graphql-crm/pkg/validator"
)

func TestDefaultValidator_Var(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
		tag   string
		valid bool
	}{
		{"email ok", "alice@example.com", "email", true},
		{"email missing domain", "alice@", "email", false},
		{"email plain text", "not-an-email", "email", false},
		{"phone international", "+123456789012", "phone", true},
		{"phone international too short", "+123456789", "phone", false},
		{"phone international too long", "+1234567890123456", "phone", false},
		{"phone local", "555-123-4567", "phone", true},
		{"phone digits only", "12345", "phone", false},
		{"phone local wrong grouping", "5551-23-4567", "phone", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.value, tt.tag)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, validator.IsValidationError(err))
		})
	}
}
