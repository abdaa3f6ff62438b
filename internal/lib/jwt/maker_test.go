package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParseAccessToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	accessTTL := 15 * time.Minute
	maker := NewMaker(secretKey, accessTTL, 24*time.Hour)

	tests := []struct {
		name     string
		useruid  string
		username string
	}{
		{
			name:     "regular user",
			useruid:  "2f8d7e3c-0000-0000-0000-000000000001",
			username: "janedoe",
		},
		{
			name:     "username with numbers",
			useruid:  "2f8d7e3c-0000-0000-0000-000000000002",
			username: "user123",
		},
		{
			name:     "email-like username",
			useruid:  "2f8d7e3c-0000-0000-0000-000000000003",
			username: "user@domain.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateAccessToken(tt.useruid, tt.username)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.useruid, claims.UserUID)
			assert.Equal(t, tt.username, claims.Username)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(accessTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestMaker_GenerateRefreshToken_CarriesOnlyUID(t *testing.T) {
	refreshTTL := 240 * time.Hour
	maker := NewMaker("test_secret_key", 15*time.Minute, refreshTTL)

	token, err := maker.GenerateRefreshToken("some-user-uid")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)

	assert.Equal(t, "some-user-uid", claims.UserUID)
	assert.Empty(t, claims.Username)
	assert.WithinDuration(t, time.Now().Add(refreshTTL), claims.ExpiresAt.Time, time.Second)
}

func TestMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewMaker(secretKey, 15*time.Minute, 24*time.Hour)

	validToken, err := maker.GenerateAccessToken("uid-1", "testuser")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "malformed token",
			token: "invalid.token.here",
		},
		{
			name:  "expired token",
			token: createExpiredToken(t, secretKey),
		},
		{
			name:  "wrong secret key",
			token: createTokenWithWrongSecret(t),
		},
		{
			name:  "tampered token",
			token: validToken + "tampered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestMaker_DifferentSecretKeys(t *testing.T) {
	maker1 := NewMaker("first_secret_key", 15*time.Minute, 24*time.Hour)
	maker2 := NewMaker("different_secret_key", 15*time.Minute, 24*time.Hour)

	token, err := maker1.GenerateAccessToken("uid-1", "testuser")
	require.NoError(t, err)

	claims, err := maker2.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = maker1.ParseToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
}

func TestMaker_TokenExpiration(t *testing.T) {
	shortTTL := 100 * time.Millisecond
	maker := NewMaker("test_secret_key", shortTTL, shortTTL)

	token, err := maker.GenerateAccessToken("uid-1", "testuser")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.NotNil(t, claims)

	time.Sleep(150 * time.Millisecond)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func createExpiredToken(t *testing.T, secretKey string) string {
	maker := NewMaker(secretKey, -time.Hour, -time.Hour)
	token, err := maker.GenerateAccessToken("uid-1", "testuser")
	require.NoError(t, err)
	return token
}

func createTokenWithWrongSecret(t *testing.T) string {
	wrongMaker := NewMaker("wrong_secret_key", 15*time.Minute, 24*time.Hour)
	token, err := wrongMaker.GenerateAccessToken("uid-1", "testuser")
	require.NoError(t, err)
	return token
}
