package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserHashesPasswordAndLowercasesUsername(t *testing.T) {
	u, err := NewUser("AliceA", " alice@example.com ", "Alice Anders", "Sup3r$ecret")
	require.NoError(t, err)

	assert.Equal(t, "alicea", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "Sup3r$ecret", u.Password)
	assert.True(t, u.PasswordMatches("Sup3r$ecret"))
	assert.False(t, u.PasswordMatches("wrong"))
}

func TestSetPasswordReplacesDigest(t *testing.T) {
	u, err := NewUser("alice", "alice@example.com", "Alice", "Old$ecret1")
	require.NoError(t, err)
	old := u.Password

	require.NoError(t, u.SetPassword("New$ecret2"))
	assert.NotEqual(t, old, u.Password)
	assert.True(t, u.PasswordMatches("New$ecret2"))
	assert.False(t, u.PasswordMatches("Old$ecret1"))
}

func TestPublicProjectionOmitsSecrets(t *testing.T) {
	u, err := NewUser("alice", "alice@example.com", "Alice", "Sup3r$ecret")
	require.NoError(t, err)
	u.ID = "u1"
	u.RefreshToken = "some-refresh-token"
	u.AvatarURL = "https://cdn/avatar.png"

	p := u.Public()
	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "https://cdn/avatar.png", p.AvatarURL)
}
