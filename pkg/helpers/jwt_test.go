package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)
}

func TestIssueAndParseTokenPair(t *testing.T) {
	m := testManager()

	pair, err := m.IssueTokenPair("user-1", "Demo Fan")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := m.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Demo Fan", claims.Name)
	assert.NotEmpty(t, claims.ID)

	rclaims, err := m.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", rclaims.UserID)
	// Each token carries its own jti.
	assert.NotEqual(t, claims.ID, rclaims.ID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := testManager()
	pair, err := m.IssueTokenPair("user-1", "Demo Fan")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	access, _, err := m.GenerateAccessToken("user-1", "Demo Fan")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCorruptedTokenRejected(t *testing.T) {
	m := testManager()
	access, _, err := m.GenerateAccessToken("user-1", "Demo Fan")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(access + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	m := testManager()
	access, _, err := m.GenerateAccessToken("user-1", "Demo Fan")
	require.NoError(t, err)

	other := NewJWTManager("other-secret", "refresh-secret", 15*time.Minute, time.Hour)
	_, err = other.ParseAccessToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
