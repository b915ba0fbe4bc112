package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/courier/internal/errors"
)

func TestNewJWTTokenService_EmptySecret(t *testing.T) {
	_, err := NewJWTTokenService("", time.Hour)
	assert.Error(t, err)
}

func TestJWTTokenService_IssueAndVerify(t *testing.T) {
	tokenService, err := NewJWTTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	principalID := uuid.Must(uuid.NewV7())
	token, err := tokenService.Issue(principalID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := tokenService.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, principalID, got)
}

func TestJWTTokenService_VerifyExpiredToken(t *testing.T) {
	tokenService, err := NewJWTTokenService("test-secret", -time.Minute)
	require.NoError(t, err)

	token, err := tokenService.Issue(uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	_, err = tokenService.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestJWTTokenService_VerifyWrongSecret(t *testing.T) {
	issuer, err := NewJWTTokenService("secret-one", time.Hour)
	require.NoError(t, err)
	verifier, err := NewJWTTokenService("secret-two", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestJWTTokenService_VerifyGarbageToken(t *testing.T) {
	tokenService, err := NewJWTTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = tokenService.Verify("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
