package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword("s3cret", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("s3cret", "not-a-hash"))
}

func TestAccessToken_RoundTrip(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.CreateToken("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestResetToken_RoundTrip(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.CreateResetToken("alice@example.com")
	require.NoError(t, err)

	email, err := m.VerifyResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)
}

func TestVerify_RejectsWrongScope(t *testing.T) {
	m := NewManager("test-secret")

	access, err := m.CreateToken("alice")
	require.NoError(t, err)
	reset, err := m.CreateResetToken("alice@example.com")
	require.NoError(t, err)

	_, err = m.VerifyResetToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.VerifyToken(reset)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").CreateToken("alice")
	require.NoError(t, err)

	_, err = NewManager("secret-b").VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsGarbage(t *testing.T) {
	m := NewManager("test-secret")
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := m.VerifyToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}
