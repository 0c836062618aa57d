package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"art-auction/internal/auctionerrors"
	model "art-auction/internal/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hash)

	require.NoError(t, CheckPassword(hash, "correct horse battery"))
	require.ErrorIs(t, CheckPassword(hash, "wrong password"), auctionerrors.ErrInvalidCredentials)
}

func TestHashPassword_RejectsShort(t *testing.T) {
	t.Parallel()

	_, err := HashPassword("short")
	require.ErrorIs(t, err, auctionerrors.ErrWeakPassword)
}

func TestTokenManager_IssueAndValidate(t *testing.T) {
	t.Parallel()

	mgr := NewTokenManager("test-secret-at-least-32-bytes-long", time.Hour)
	user := model.User{UserID: "u1", Username: "alice", Role: model.RoleSeller}

	token, err := mgr.Issue(user, time.Now())
	require.NoError(t, err)

	claims, err := mgr.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, model.RoleSeller, claims.Role)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	t.Parallel()

	mgr := NewTokenManager("test-secret-at-least-32-bytes-long", time.Minute)

	token, err := mgr.Issue(model.User{UserID: "u1"}, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = mgr.Validate(token)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidCredentials)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenManager("secret-one-aaaaaaaaaaaaaaaaaaaaaa", time.Hour).
		Issue(model.User{UserID: "u1"}, time.Now())
	require.NoError(t, err)

	_, err = NewTokenManager("secret-two-bbbbbbbbbbbbbbbbbbbbbb", time.Hour).Validate(token)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidCredentials)
}
