package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3r$ecret", hash)
	assert.True(t, CompareHashAndPassword(hash, "Sup3r$ecret"))
}

func TestCompareHashAndPasswordRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	assert.False(t, CompareHashAndPassword(hash, "sup3r$ecret"))
	assert.False(t, CompareHashAndPassword(hash, ""))
}

func TestCompareHashAndPasswordMalformedDigest(t *testing.T) {
	assert.False(t, CompareHashAndPassword("not-a-bcrypt-digest", "anything"))
}
