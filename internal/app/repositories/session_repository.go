package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/gradesphere/internal/app/models"
	"github.com/yigit/gradesphere/internal/pkg/kvstore"
)

// ErrNoSession is returned when no session is persisted.
var ErrNoSession = errors.New("no session")

// SessionRepository manages the persisted session under the 'currentUser'
// key: at most one user, surviving process restarts. The stored user is
// always password-stripped.
type SessionRepository struct {
	store kvstore.Store
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(store kvstore.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// Current returns the persisted session user, or ErrNoSession.
func (r *SessionRepository) Current(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := r.store.Get(ctx, kvstore.KeyCurrentUser, &user); err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("error loading session: %w", err)
	}
	return &user, nil
}

// Set establishes the user as the current session. The password hash is
// stripped before persisting.
func (r *SessionRepository) Set(ctx context.Context, user models.User) error {
	if err := r.store.Set(ctx, kvstore.KeyCurrentUser, user.Sanitized()); err != nil {
		return fmt.Errorf("error persisting session: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is a no-op.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, kvstore.KeyCurrentUser); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}
