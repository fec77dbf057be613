// Package kvstore provides the key-value persistence layer behind the account
// and record repositories. Values are JSON documents addressed by a small set
// of logical keys; implementations exist for Postgres, Redis and an in-memory
// store used in tests.
package kvstore

import (
	"context"
	"errors"
)

// Logical keys used by the application.
const (
	// KeyUsers holds the ordered sequence of registered users.
	KeyUsers = "users"

	// KeyCurrentUser holds the persisted session (at most one user).
	KeyCurrentUser = "currentUser"

	// KeyStudentRecords holds the ordered sequence of student records,
	// one per distinct user id.
	KeyStudentRecords = "studentRecords"
)

var (
	// ErrKeyNotFound is returned by Get when the key has never been set
	// or has been deleted.
	ErrKeyNotFound = errors.New("kvstore: key not found")

	// ErrSerialization is returned when a stored value cannot be encoded
	// or decoded as JSON.
	ErrSerialization = errors.New("kvstore: serialization failed")
)

// Store is the repository abstraction over the underlying key-value storage.
// Each value is serialized to JSON on Set and decoded into dest on Get.
// A Set fully replaces the previous value for the key; there are no partial
// writes, so a mutation either commits in one call or leaves the prior state
// untouched.
type Store interface {
	// Get decodes the value stored under key into dest.
	// Returns ErrKeyNotFound if the key is absent.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value interface{}) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks that the backing storage is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close() error
}
