package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/gradesphere/internal/app/models"
	"github.com/yigit/gradesphere/internal/app/models/dto"
	"github.com/yigit/gradesphere/internal/app/repositories"
	"github.com/yigit/gradesphere/internal/pkg/apperrors"
	"github.com/yigit/gradesphere/internal/pkg/auth"
	"github.com/yigit/gradesphere/internal/pkg/validation"
)

// AccountService handles registration, login and session persistence.
// Authentication failures are reported as errors to the immediate caller;
// there is no retry, lockout or rate limiting.
type AccountService struct {
	users    *repositories.UserRepository
	sessions *repositories.SessionRepository
	logger   zerolog.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	users *repositories.UserRepository,
	sessions *repositories.SessionRepository,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Signup registers a new account. A duplicate email fails with
// ErrEmailAlreadyExists and leaves the user collection unchanged. On success
// the new user becomes the current session and is returned password-stripped.
func (s *AccountService) Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if err := validateSignup(req, email); err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := models.User{
		ID:             uuid.New().String(),
		Name:           req.Name,
		RegisterNumber: req.RegisterNumber,
		Department:     req.Department,
		Email:          email,
		Password:       hashedPassword,
	}

	if err := s.users.Append(ctx, user); err != nil {
		return nil, fmt.Errorf("error persisting user: %w", err)
	}

	// Auto-login: the fresh account becomes the current session.
	if err := s.sessions.Set(ctx, user); err != nil {
		return nil, fmt.Errorf("error establishing session: %w", err)
	}

	s.logger.Info().Str("userID", user.ID).Str("email", user.Email).Msg("User registered")

	sanitized := user.Sanitized()
	return &sanitized, nil
}

// validateSignup re-checks the request beyond the binding tags so callers
// that bypass the HTTP layer get the same rules.
func validateSignup(req *dto.SignupRequest, email string) error {
	switch {
	case !validation.ValidName(req.Name):
		return apperrors.NewValidationError("name must be between 2 and 100 characters")
	case !validation.ValidRegisterNumber(req.RegisterNumber):
		return apperrors.NewValidationError("register number is required")
	case !validation.ValidEmail(email):
		return apperrors.NewValidationError("email address is not valid")
	case !validation.ValidPassword(req.Password):
		return apperrors.NewValidationError("password must be at least 6 characters")
	}
	return nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password fail identically with ErrInvalidCredentials, and neither touches
// the persisted session. On success the user becomes the current session and
// is returned password-stripped.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.sessions.Set(ctx, *user); err != nil {
		return nil, fmt.Errorf("error establishing session: %w", err)
	}

	s.logger.Info().Str("userID", user.ID).Msg("User logged in")

	sanitized := user.Sanitized()
	return &sanitized, nil
}

// Logout clears the persisted session.
func (s *AccountService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// CurrentUser re-reads the persisted session, restoring it across process
// restarts. Returns ErrNoActiveSession when nobody is logged in.
func (s *AccountService) CurrentUser(ctx context.Context) (*models.User, error) {
	user, err := s.sessions.Current(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNoSession) {
			return nil, apperrors.ErrNoActiveSession
		}
		return nil, fmt.Errorf("error loading session: %w", err)
	}
	return user, nil
}

// UserByID resolves a user by id, for token-identified requests.
func (s *AccountService) UserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}
