package errs

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorLooksUpCodeTable(t *testing.T) {
	err := NewError(ErrInvalidCredentials)
	require.NotNil(t, err)

	assert.Equal(t, ErrInvalidCredentials, err.Code)
	assert.Equal(t, http.StatusUnauthorized, err.Status)
	assert.Equal(t, "Incorrect email or password.", err.Message)
}

func TestNewErrorDefaultsToBadRequest(t *testing.T) {
	// Codes without an explicit status in the table are client errors.
	err := NewError(ErrInvalidParams)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}

func TestNewErrorUnknownCodeDegradesToErrUnknown(t *testing.T) {
	err := NewError(999999)
	require.NotNil(t, err)

	assert.Equal(t, ErrUnknown, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestUnverifiedErrorIsDistinguishableFromBadCredentials(t *testing.T) {
	unverified := NewError(ErrAccountNotVerified)
	badCreds := NewError(ErrInvalidCredentials)

	assert.NotEqual(t, badCreds.Code, unverified.Code)
	assert.NotEqual(t, badCreds.Status, unverified.Status)
	assert.Equal(t, "Account not verified. Please verify your email before logging in.", unverified.Message)
}

func TestNewErrorReturnsFreshCopies(t *testing.T) {
	a := NewError(ErrJobNotFound)
	a.Message = "mutated"

	b := NewError(ErrJobNotFound)
	assert.Equal(t, "Job posting not found.", b.Message)
}

func TestCustomErrorImplementsError(t *testing.T) {
	err := NewError(ErrRateLimitExceeded)
	assert.Contains(t, err.Error(), "Too many requests")
}
