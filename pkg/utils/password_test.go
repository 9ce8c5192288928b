package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3curePass")
	require.NoError(t, err)
	require.NotEqual(t, "s3curePass", hash)

	assert.True(t, CheckPassword(hash, "s3curePass"))
	assert.False(t, CheckPassword(hash, "wrongPass1"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("abcdefg1"))
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("lettersonly"))
	assert.Error(t, ValidatePassword("12345678"))
}
