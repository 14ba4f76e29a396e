package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "", Truncate("", 10))
}

func TestGenerateSessionID(t *testing.T) {
	a, err := GenerateSessionID()
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := GenerateSessionID()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required"`
	}

	assert.NoError(t, ValidateStruct(payload{Email: "a@b.com", Name: "x"}))

	err := ValidateStruct(payload{Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.Contains(t, err.Error(), "name is required")
}
