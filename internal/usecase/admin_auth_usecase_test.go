package usecase

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
)

type fakeFirebaseAuth struct {
	emails map[string]string
}

func (f fakeFirebaseAuth) VerifyEmail(ctx context.Context, idToken string) (string, error) {
	email, ok := f.emails[idToken]
	if !ok {
		return "", stderrors.New("token has expired")
	}
	return email, nil
}

func newAdminAuth(firebaseAuth FirebaseAuthClient, password string) *AdminAuthUseCase {
	return NewAdminAuthUseCase(firebaseAuth, password, []string{" Owner@Example.com "}, "test-secret", 30*time.Minute)
}

func TestLoginWithPassword(t *testing.T) {
	uc := newAdminAuth(nil, "s3cret")

	session, err := uc.LoginWithPassword("s3cret")
	require.NoError(t, err)
	assert.Equal(t, entity.AdminMethodPassword, session.Method)
	assert.NotEmpty(t, session.Token)

	identity, err := uc.VerifySession(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", identity.Subject)
	assert.Equal(t, entity.AdminMethodPassword, identity.Method)

	_, err = uc.LoginWithPassword("wrong")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestLoginWithPasswordDisabled(t *testing.T) {
	uc := newAdminAuth(nil, "")

	_, err := uc.LoginWithPassword("")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestVerifySessionRejectsExpiredAndForeignTokens(t *testing.T) {
	uc := newAdminAuth(nil, "s3cret")
	issuedAt := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return issuedAt }

	session, err := uc.LoginWithPassword("s3cret")
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(30*time.Minute), session.ExpiresAt)

	uc.now = func() time.Time { return issuedAt.Add(29 * time.Minute) }
	_, err = uc.VerifySession(session.Token)
	require.NoError(t, err)

	uc.now = func() time.Time { return issuedAt.Add(31 * time.Minute) }
	_, err = uc.VerifySession(session.Token)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	other := NewAdminAuthUseCase(nil, "s3cret", nil, "another-secret", 30*time.Minute)
	foreign, err := other.LoginWithPassword("s3cret")
	require.NoError(t, err)
	uc.now = time.Now
	_, err = uc.VerifySession(foreign.Token)
	assert.Error(t, err)
}

func TestLoginWithFirebase(t *testing.T) {
	uc := newAdminAuth(fakeFirebaseAuth{emails: map[string]string{
		"owner-token":    "OWNER@example.com",
		"stranger-token": "stranger@example.com",
	}}, "")

	session, err := uc.LoginWithFirebase(context.Background(), "owner-token")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", session.Subject)
	assert.Equal(t, entity.AdminMethodFirebase, session.Method)

	_, err = uc.LoginWithFirebase(context.Background(), "stranger-token")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = uc.LoginWithFirebase(context.Background(), "expired-token")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestLoginWithFirebaseNotConfigured(t *testing.T) {
	uc := newAdminAuth(nil, "s3cret")

	_, err := uc.LoginWithFirebase(context.Background(), "owner-token")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestRefreshSession(t *testing.T) {
	uc := newAdminAuth(nil, "s3cret")

	session, err := uc.RefreshSession(&entity.AdminIdentity{Subject: "owner@example.com", Method: entity.AdminMethodFirebase})
	require.NoError(t, err)

	identity, err := uc.VerifySession(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", identity.Subject)

	_, err = uc.RefreshSession(nil)
	assert.Error(t, err)
}

func TestIsEmailAllowed(t *testing.T) {
	uc := newAdminAuth(nil, "")

	assert.True(t, uc.IsEmailAllowed("owner@example.com"))
	assert.True(t, uc.IsEmailAllowed(" OWNER@EXAMPLE.COM"))
	assert.False(t, uc.IsEmailAllowed("other@example.com"))
}
