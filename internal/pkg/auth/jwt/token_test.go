package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key"

func TestGenerateAndParseSessionToken(t *testing.T) {
	payload := &Payload{
		ID:       "11111111-2222-3333-4444-555555555555",
		Email:    "amy@uni.example",
		UserType: "student",
		Purpose:  PurposeSession,
	}

	token, err := GenerateToken(payload, testSecret, SessionExpiration)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, payload.ID, parsed.ID)
	assert.Equal(t, payload.Email, parsed.Email)
	assert.Equal(t, payload.UserType, parsed.UserType)
	assert.Equal(t, PurposeSession, parsed.Purpose)
	assert.Equal(t, TokenIssuer, parsed.Issuer)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	payload := &Payload{ID: "u-1", UserType: "company", Purpose: PurposeSession}

	token, err := GenerateToken(payload, testSecret, SessionExpiration)
	require.NoError(t, err)

	_, err = ParseToken(token, "a_different_secret")
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	payload := &Payload{ID: "u-1", UserType: "student", Purpose: PurposeSession}

	token, err := GenerateToken(payload, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret)
	assert.Error(t, err)

	_, err = ParseToken("", testSecret)
	assert.Error(t, err)
}

func TestVerificationTokenCarriesPurpose(t *testing.T) {
	payload := &Payload{ID: "u-1", Email: "amy@uni.example", UserType: "student", Purpose: PurposeVerify}

	token, err := GenerateToken(payload, testSecret, VerificationExpiration)
	require.NoError(t, err)

	parsed, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, PurposeVerify, parsed.Purpose)
}
