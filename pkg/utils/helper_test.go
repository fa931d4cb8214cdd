package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 10, ParseInt("", 10))
	assert.Equal(t, 10, ParseInt("abc", 10))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
	assert.Equal(t, 7, ParseInt("7", 10))
}

func TestGenerateConfirmationCode(t *testing.T) {
	code := GenerateConfirmationCode(6)
	assert.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9', "code %q must be numeric", code)
	}

	// non-positive length falls back to the default
	assert.Len(t, GenerateConfirmationCode(0), 6)
	assert.Len(t, GenerateConfirmationCode(-1), 6)
}

func TestHashCode(t *testing.T) {
	hash, err := HashCode("123456")
	assert.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.True(t, CheckCodeHash("123456", hash))
	assert.False(t, CheckCodeHash("654321", hash))
	assert.False(t, CheckCodeHash("123456", "not-a-hash"))
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(1, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(5, 0))
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(0, 10))
	assert.Equal(t, 0, CalculateOffset(1, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
}
