package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/gradesphere/internal/app/models"
	"github.com/yigit/gradesphere/internal/pkg/kvstore"
)

// ErrRecordNotFound is returned when no record exists for the user.
var ErrRecordNotFound = errors.New("student record not found")

// RecordRepository manages the student record collection stored under the
// 'studentRecords' key, one record per distinct user id. Every Save rewrites
// the full sequence in a single store write, so a mutation either commits
// completely or leaves the prior state as it was.
type RecordRepository struct {
	store kvstore.Store
}

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(store kvstore.Store) *RecordRepository {
	return &RecordRepository{store: store}
}

// All returns every student record. An unset key reads as an empty collection.
func (r *RecordRepository) All(ctx context.Context) ([]models.StudentRecord, error) {
	var records []models.StudentRecord
	if err := r.store.Get(ctx, kvstore.KeyStudentRecords, &records); err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return []models.StudentRecord{}, nil
		}
		return nil, fmt.Errorf("error loading student records: %w", err)
	}
	return records, nil
}

// FindByUserID returns the record owned by the user, or ErrRecordNotFound.
func (r *RecordRepository) FindByUserID(ctx context.Context, userID string) (*models.StudentRecord, error) {
	records, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].UserID == userID {
			record := records[i]
			return &record, nil
		}
	}
	return nil, ErrRecordNotFound
}

// Save stores the record, replacing an existing record with the same userId
// or appending a new one.
func (r *RecordRepository) Save(ctx context.Context, record models.StudentRecord) error {
	records, err := r.All(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range records {
		if records[i].UserID == record.UserID {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}

	if err := r.store.Set(ctx, kvstore.KeyStudentRecords, records); err != nil {
		return fmt.Errorf("error persisting student records: %w", err)
	}
	return nil
}
