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
	"github.com/yigit/gradesphere/internal/pkg/gpa"
)

// RecordService owns the per-user academic record and its derived values.
// Every operation takes the acting user id explicitly; nothing is read from
// ambient session state. Each mutation recomputes GPA and CGPA before the
// single persisting write, so stored derived values are never stale.
type RecordService struct {
	records *repositories.RecordRepository
	logger  zerolog.Logger
}

// NewRecordService creates a new RecordService
func NewRecordService(records *repositories.RecordRepository, logger zerolog.Logger) *RecordService {
	return &RecordService{
		records: records,
		logger:  logger,
	}
}

// Get loads the user's record, creating and immediately persisting an empty
// one on first access (write-through).
func (s *RecordService) Get(ctx context.Context, userID string) (*models.StudentRecord, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}

	record, err := s.records.FindByUserID(ctx, userID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, fmt.Errorf("error loading record: %w", err)
	}

	fresh := models.StudentRecord{
		UserID:    userID,
		Semesters: []models.Semester{},
		CGPA:      0,
	}
	if err := s.records.Save(ctx, fresh); err != nil {
		return nil, fmt.Errorf("error persisting new record: %w", err)
	}

	s.logger.Info().Str("userID", userID).Msg("Created empty student record")
	return &fresh, nil
}

// AddSemester appends a new semester to the user's record. The semester
// number must be in range and not already present; subjects are re-validated
// even though the transport layer validates first. Returns the updated record.
func (s *RecordService) AddSemester(ctx context.Context, userID string, number int, subjects []dto.SubjectInput) (*models.StudentRecord, error) {
	if number < 1 || number > 8 {
		return nil, apperrors.NewValidationError("semester number must be between 1 and 8")
	}
	if err := validateSubjects(subjects); err != nil {
		return nil, err
	}

	record, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if record.HasSemesterNumber(number) {
		return nil, apperrors.ErrSemesterNumberTaken
	}

	semesterSubjects := buildSubjects(subjects)
	semester := models.Semester{
		ID:       uuid.New().String(),
		Number:   number,
		Subjects: semesterSubjects,
		GPA:      gpa.Semester(semesterSubjects),
	}

	updated := *record
	updated.Semesters = append(append([]models.Semester{}, record.Semesters...), semester)
	updated.CGPA = gpa.Cumulative(updated.Semesters)

	if err := s.records.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("error persisting record: %w", err)
	}

	s.logger.Info().
		Str("userID", userID).
		Int("semester", number).
		Float64("gpa", semester.GPA).
		Float64("cgpa", updated.CGPA).
		Msg("Semester added")

	return &updated, nil
}

// UpdateSemester replaces the subjects of an existing semester and recomputes
// its GPA in place; the semester id and number are unchanged. An absent
// semester id fails with ErrSemesterNotFound and the record is untouched.
func (s *RecordService) UpdateSemester(ctx context.Context, userID, semesterID string, subjects []dto.SubjectInput) (*models.StudentRecord, error) {
	if err := validateSubjects(subjects); err != nil {
		return nil, err
	}

	record, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := record.FindSemester(semesterID)
	if idx < 0 {
		return nil, apperrors.ErrSemesterNotFound
	}

	semesterSubjects := buildSubjects(subjects)

	updated := *record
	updated.Semesters = append([]models.Semester{}, record.Semesters...)
	updated.Semesters[idx].Subjects = semesterSubjects
	updated.Semesters[idx].GPA = gpa.Semester(semesterSubjects)
	updated.CGPA = gpa.Cumulative(updated.Semesters)

	if err := s.records.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("error persisting record: %w", err)
	}

	s.logger.Info().
		Str("userID", userID).
		Str("semesterID", semesterID).
		Float64("cgpa", updated.CGPA).
		Msg("Semester updated")

	return &updated, nil
}

// DeleteSemester removes a semester by id and recomputes the CGPA over the
// remaining semesters. An absent id fails with ErrSemesterNotFound and the
// record is untouched; the transport layer may treat that as an idempotent
// success.
func (s *RecordService) DeleteSemester(ctx context.Context, userID, semesterID string) (*models.StudentRecord, error) {
	record, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := record.FindSemester(semesterID)
	if idx < 0 {
		return nil, apperrors.ErrSemesterNotFound
	}

	updated := *record
	updated.Semesters = append([]models.Semester{}, record.Semesters...)
	updated.Semesters = append(updated.Semesters[:idx], updated.Semesters[idx+1:]...)
	updated.CGPA = gpa.Cumulative(updated.Semesters)

	if err := s.records.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("error persisting record: %w", err)
	}

	s.logger.Info().
		Str("userID", userID).
		Str("semesterID", semesterID).
		Float64("cgpa", updated.CGPA).
		Msg("Semester deleted")

	return &updated, nil
}

// validateSubjects re-checks what the form validates: a non-empty list,
// non-blank names, allowed credit counts and known grades.
func validateSubjects(subjects []dto.SubjectInput) error {
	if len(subjects) == 0 {
		return apperrors.NewValidationError("semester must contain at least one subject")
	}

	for _, subject := range subjects {
		if strings.TrimSpace(subject.Name) == "" {
			return apperrors.NewValidationError("subject name cannot be blank")
		}
		if !gpa.ValidCredits(subject.Credits) {
			return apperrors.NewValidationError(fmt.Sprintf("invalid credit count %d", subject.Credits))
		}
		if !gpa.ValidGrade(subject.Grade) {
			return apperrors.NewValidationError(fmt.Sprintf("unknown grade %q", subject.Grade))
		}
	}
	return nil
}

// buildSubjects materializes the input subjects with fresh ids.
func buildSubjects(subjects []dto.SubjectInput) []models.SubjectGrade {
	out := make([]models.SubjectGrade, 0, len(subjects))
	for _, subject := range subjects {
		out = append(out, models.SubjectGrade{
			ID:      uuid.New().String(),
			Name:    strings.TrimSpace(subject.Name),
			Credits: subject.Credits,
			Grade:   subject.Grade,
		})
	}
	return out
}
