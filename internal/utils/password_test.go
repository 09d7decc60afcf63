package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("testpass123")
	require.NoError(t, err)
	assert.NotEqual(t, "testpass123", hash)

	assert.NoError(t, CheckPassword("testpass123", hash))
	assert.Error(t, CheckPassword("wrongpass", hash))
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken(20)
	require.NoError(t, err)
	b, err := GenerateToken(20)
	require.NoError(t, err)

	assert.Len(t, a, 40)
	assert.NotEqual(t, a, b)
}
