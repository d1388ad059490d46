package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := CreateAccessToken(42, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := CreateAccessToken(42, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken(token, "a-different-secret")
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	token, err := CreateAccessToken(42, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(token, testSecret)
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	_, err := ParseAccessToken("definitely.not.a.jwt", testSecret)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := hashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hashed)

	assert.True(t, checkPassword("s3cret-password", hashed))
	assert.False(t, checkPassword("wrong-password", hashed))
}
