// Package repositories provides typed access to the logical keys of the
// key-value store: users, currentUser and studentRecords.
package repositories

import (
	"github.com/yigit/gradesphere/internal/pkg/kvstore"
)

// Repositories bundles all repository instances for dependency injection.
type Repositories struct {
	UserRepository    *UserRepository
	SessionRepository *SessionRepository
	RecordRepository  *RecordRepository
}

// NewRepositories creates all repositories on top of a shared Store.
func NewRepositories(store kvstore.Store) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(store),
		SessionRepository: NewSessionRepository(store),
		RecordRepository:  NewRecordRepository(store),
	}
}
