package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/gradesphere/internal/app/models"
	"github.com/yigit/gradesphere/internal/pkg/kvstore"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository manages the ordered user collection stored under the
// 'users' key. The collection is append-only; email uniqueness is enforced
// at signup time only.
type UserRepository struct {
	store kvstore.Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store kvstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

// All returns every registered user in insertion order. An unset key reads
// as an empty collection.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.store.Get(ctx, kvstore.KeyUsers, &users); err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return []models.User{}, nil
		}
		return nil, fmt.Errorf("error loading users: %w", err)
	}
	return users, nil
}

// FindByEmail returns the user with the given email, or ErrUserNotFound.
// Emails are matched case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			user := users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// FindByID returns the user with the given id, or ErrUserNotFound.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == id {
			user := users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// EmailExists reports whether a user with the given email is registered.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Append adds a user to the collection and persists the whole sequence in a
// single write. The caller is responsible for the email-uniqueness check.
func (r *UserRepository) Append(ctx context.Context, user models.User) error {
	users, err := r.All(ctx)
	if err != nil {
		return err
	}

	users = append(users, user)
	if err := r.store.Set(ctx, kvstore.KeyUsers, users); err != nil {
		return fmt.Errorf("error persisting users: %w", err)
	}
	return nil
}
