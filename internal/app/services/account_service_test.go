package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/gradesphere/internal/app/models"
	"github.com/yigit/gradesphere/internal/app/models/dto"
	"github.com/yigit/gradesphere/internal/app/repositories"
	"github.com/yigit/gradesphere/internal/pkg/apperrors"
	"github.com/yigit/gradesphere/internal/pkg/kvstore"
)

func newAccountFixture(t *testing.T) (*AccountService, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	svc := NewAccountService(
		repositories.NewUserRepository(store),
		repositories.NewSessionRepository(store),
		zerolog.Nop(),
	)
	return svc, store
}

func signupRequest() *dto.SignupRequest {
	return &dto.SignupRequest{
		Name:           "Arun Kumar",
		RegisterNumber: "2021503512",
		Department:     "Computer Science",
		Email:          "arun@student.edu",
		Password:       "secret123",
	}
}

func TestAccountService_SignupCreatesUserAndSession(t *testing.T) {
	ctx := context.Background()
	svc, store := newAccountFixture(t)

	user, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "arun@student.edu", user.Email)
	assert.Empty(t, user.Password, "returned user is password-stripped")

	// The stored user keeps a hash, never the plaintext.
	var users []models.User
	require.NoError(t, store.Get(ctx, kvstore.KeyUsers, &users))
	require.Len(t, users, 1)
	assert.NotEmpty(t, users[0].Password)
	assert.NotEqual(t, "secret123", users[0].Password)

	// Signup auto-logs the user in; the persisted session is sanitized.
	var session models.User
	require.NoError(t, store.Get(ctx, kvstore.KeyCurrentUser, &session))
	assert.Equal(t, user.ID, session.ID)
	assert.Empty(t, session.Password)
}

func TestAccountService_SignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, store := newAccountFixture(t)

	_, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	req := signupRequest()
	req.Name = "Someone Else"
	_, err = svc.Signup(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	// The users collection length must be unchanged by the failed signup.
	var users []models.User
	require.NoError(t, store.Get(ctx, kvstore.KeyUsers, &users))
	assert.Len(t, users, 1)
}

func TestAccountService_SignupEmailMatchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountFixture(t)

	_, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	req := signupRequest()
	req.Email = "ARUN@student.edu"
	_, err = svc.Signup(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestAccountService_SignupRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountFixture(t)

	tests := []struct {
		name   string
		mutate func(*dto.SignupRequest)
	}{
		{"short name", func(r *dto.SignupRequest) { r.Name = "A" }},
		{"blank register number", func(r *dto.SignupRequest) { r.RegisterNumber = "" }},
		{"malformed email", func(r *dto.SignupRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *dto.SignupRequest) { r.Password = "abc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := signupRequest()
			tt.mutate(req)
			_, err := svc.Signup(ctx, req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestAccountService_LoginSuccess(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountFixture(t)

	created, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	user, err := svc.Login(ctx, "arun@student.edu", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Empty(t, user.Password)

	current, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, current.ID)
}

func TestAccountService_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountFixture(t)

	_, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	_, err = svc.Login(ctx, "arun@student.edu", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// No session may be established by the failed login.
	_, err = svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)
}

func TestAccountService_LoginUnknownEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountFixture(t)

	_, err := svc.Login(ctx, "nobody@student.edu", "whatever")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAccountService_LogoutClearsSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountFixture(t)

	_, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))

	_, err = svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)

	// Logging out twice is harmless.
	assert.NoError(t, svc.Logout(ctx))
}

func TestAccountService_SessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	svc := NewAccountService(
		repositories.NewUserRepository(store),
		repositories.NewSessionRepository(store),
		zerolog.Nop(),
	)

	created, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	// A fresh service over the same store simulates a process restart:
	// the session is re-read from the persisted 'currentUser' key.
	restarted := NewAccountService(
		repositories.NewUserRepository(store),
		repositories.NewSessionRepository(store),
		zerolog.Nop(),
	)
	current, err := restarted.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, current.ID)
}

func TestAccountService_UserByID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountFixture(t)

	created, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	user, err := svc.UserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, user.Email)
	assert.Empty(t, user.Password)

	_, err = svc.UserByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
