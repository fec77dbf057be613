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

func newRecordFixture(t *testing.T) (*RecordService, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	repo := repositories.NewRecordRepository(store)
	return NewRecordService(repo, zerolog.Nop()), store
}

func TestRecordService_GetCreatesEmptyRecordWriteThrough(t *testing.T) {
	ctx := context.Background()
	svc, store := newRecordFixture(t)

	record, err := svc.Get(ctx, "student-1")
	require.NoError(t, err)
	assert.Equal(t, "student-1", record.UserID)
	assert.Empty(t, record.Semesters)
	assert.Equal(t, 0.0, record.CGPA)

	// The empty record is persisted immediately, not just held in memory.
	var persisted []models.StudentRecord
	require.NoError(t, store.Get(ctx, kvstore.KeyStudentRecords, &persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, "student-1", persisted[0].UserID)
}

func TestRecordService_GetIsIdempotentPerUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecordFixture(t)

	_, err := svc.Get(ctx, "student-1")
	require.NoError(t, err)
	_, err = svc.Get(ctx, "student-1")
	require.NoError(t, err)
	_, err = svc.Get(ctx, "student-2")
	require.NoError(t, err)

	records, err := svc.records.All(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecordService_AddSemesterComputesDerivedValues(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecordFixture(t)

	subjects := []dto.SubjectInput{
		{Name: "Data Structures", Credits: 3, Grade: "O"},
		{Name: "Operating Systems", Credits: 4, Grade: "B+"},
	}

	record, err := svc.AddSemester(ctx, "student-1", 1, subjects)
	require.NoError(t, err)
	require.Len(t, record.Semesters, 1)

	semester := record.Semesters[0]
	assert.NotEmpty(t, semester.ID)
	assert.Equal(t, 1, semester.Number)
	assert.Equal(t, 8.29, semester.GPA)
	assert.Equal(t, 8.29, record.CGPA)
	require.Len(t, semester.Subjects, 2)
	assert.NotEmpty(t, semester.Subjects[0].ID)

	// A follow-up read returns the same state.
	reread, err := svc.Get(ctx, "student-1")
	require.NoError(t, err)
	assert.Equal(t, record, reread)
}

func TestRecordService_AddSemesterDuplicateNumberRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecordFixture(t)

	subjects := []dto.SubjectInput{{Name: "Maths", Credits: 4, Grade: "A"}}

	before, err := svc.AddSemester(ctx, "student-1", 1, subjects)
	require.NoError(t, err)

	_, err = svc.AddSemester(ctx, "student-1", 1, []dto.SubjectInput{{Name: "Physics", Credits: 3, Grade: "B"}})
	assert.ErrorIs(t, err, apperrors.ErrSemesterNumberTaken)

	// The record must not have been altered by the rejected add.
	after, err := svc.Get(ctx, "student-1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRecordService_AddSemesterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecordFixture(t)

	cases := []struct {
		name     string
		number   int
		subjects []dto.SubjectInput
	}{
		{"empty subject list", 1, nil},
		{"blank subject name", 1, []dto.SubjectInput{{Name: "   ", Credits: 3, Grade: "A"}}},
		{"invalid credits", 1, []dto.SubjectInput{{Name: "Maths", Credits: 7, Grade: "A"}}},
		{"unknown grade", 1, []dto.SubjectInput{{Name: "Maths", Credits: 3, Grade: "Z"}}},
		{"number below range", 0, []dto.SubjectInput{{Name: "Maths", Credits: 3, Grade: "A"}}},
		{"number above range", 9, []dto.SubjectInput{{Name: "Maths", Credits: 3, Grade: "A"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddSemester(ctx, "student-1", tc.number, tc.subjects)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestRecordService_CGPAIsMeanOfSemesterGPAs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecordFixture(t)

	// Semester 1: 8.29 (3xO + 4xB+), semester 2: 7.50 (2xA + 2xB+).
	_, err := svc.AddSemester(ctx, "student-1", 1, []dto.SubjectInput{
		{Name: "Data Structures", Credits: 3, Grade: "O"},
		{Name: "Operating Systems", Credits: 4, Grade: "B+"},
	})
	require.NoError(t, err)

	record, err := svc.AddSemester(ctx, "student-1", 2, []dto.SubjectInput{
		{Name: "Databases", Credits: 2, Grade: "A"},
		{Name: "Networks", Credits: 2, Grade: "B+"},
	})
	require.NoError(t, err)

	assert.Equal(t, 8.29, record.Semesters[0].GPA)
	assert.Equal(t, 7.5, record.Semesters[1].GPA)
	assert.Equal(t, 7.9, record.CGPA)
}

func TestRecordService_UpdateSemesterReplacesSubjectsInPlace(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecordFixture(t)

	record, err := svc.AddSemester(ctx, "student-1", 3, []dto.SubjectInput{
		{Name: "Compilers", Credits: 4, Grade: "C"},
	})
	require.NoError(t, err)
	semesterID := record.Semesters[0].ID

	updated, err := svc.UpdateSemester(ctx, "student-1", semesterID, []dto.SubjectInput{
		{Name: "Compilers", Credits: 4, Grade: "O"},
		{Name: "Compiler Lab", Credits: 2, Grade: "A+"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Semesters, 1)

	semester := updated.Semesters[0]
	assert.Equal(t, semesterID, semester.ID, "semester id unchanged by update")
	assert.Equal(t, 3, semester.Number, "semester number unchanged by update")
	assert.Len(t, semester.Subjects, 2)
	// (4*10 + 2*9) / 6 = 9.67
	assert.Equal(t, 9.67, semester.GPA)
	assert.Equal(t, 9.67, updated.CGPA)
}

func TestRecordService_UpdateSemesterUnknownID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecordFixture(t)

	before, err := svc.AddSemester(ctx, "student-1", 1, []dto.SubjectInput{
		{Name: "Maths", Credits: 4, Grade: "A"},
	})
	require.NoError(t, err)

	_, err = svc.UpdateSemester(ctx, "student-1", "no-such-id", []dto.SubjectInput{
		{Name: "Maths", Credits: 4, Grade: "O"},
	})
	assert.ErrorIs(t, err, apperrors.ErrSemesterNotFound)

	after, err := svc.Get(ctx, "student-1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRecordService_DeleteSemesterRecomputesCGPA(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecordFixture(t)

	first, err := svc.AddSemester(ctx, "student-1", 1, []dto.SubjectInput{
		{Name: "Maths", Credits: 4, Grade: "A"}, // GPA 8.00
	})
	require.NoError(t, err)

	record, err := svc.AddSemester(ctx, "student-1", 2, []dto.SubjectInput{
		{Name: "Physics", Credits: 4, Grade: "C"}, // GPA 5.00
	})
	require.NoError(t, err)
	assert.Equal(t, 6.5, record.CGPA)

	updated, err := svc.DeleteSemester(ctx, "student-1", record.Semesters[1].ID)
	require.NoError(t, err)
	require.Len(t, updated.Semesters, 1)
	assert.Equal(t, first.Semesters[0].ID, updated.Semesters[0].ID)
	assert.Equal(t, 8.0, updated.CGPA)
}

func TestRecordService_DeleteSemesterTwiceLeavesRecordUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecordFixture(t)

	record, err := svc.AddSemester(ctx, "student-1", 1, []dto.SubjectInput{
		{Name: "Maths", Credits: 4, Grade: "A"},
	})
	require.NoError(t, err)
	semesterID := record.Semesters[0].ID

	first, err := svc.DeleteSemester(ctx, "student-1", semesterID)
	require.NoError(t, err)
	assert.Empty(t, first.Semesters)
	assert.Equal(t, 0.0, first.CGPA)

	// The second delete reports the missing semester but must not change
	// the persisted record.
	_, err = svc.DeleteSemester(ctx, "student-1", semesterID)
	assert.ErrorIs(t, err, apperrors.ErrSemesterNotFound)

	after, err := svc.Get(ctx, "student-1")
	require.NoError(t, err)
	assert.Equal(t, first, after)
}

func TestRecordService_DeleteLastSemesterZeroesCGPA(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecordFixture(t)

	record, err := svc.AddSemester(ctx, "student-1", 1, []dto.SubjectInput{
		{Name: "Maths", Credits: 4, Grade: "O"},
	})
	require.NoError(t, err)

	updated, err := svc.DeleteSemester(ctx, "student-1", record.Semesters[0].ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Semesters)
	assert.Equal(t, 0.0, updated.CGPA)
}

func TestRecordService_RecordsAreScopedPerUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecordFixture(t)

	_, err := svc.AddSemester(ctx, "student-1", 1, []dto.SubjectInput{
		{Name: "Maths", Credits: 4, Grade: "O"},
	})
	require.NoError(t, err)

	other, err := svc.Get(ctx, "student-2")
	require.NoError(t, err)
	assert.Empty(t, other.Semesters)
	assert.Equal(t, 0.0, other.CGPA)
}

func TestRecordService_PersistReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	svc := NewRecordService(repositories.NewRecordRepository(store), zerolog.Nop())

	record, err := svc.AddSemester(ctx, "student-1", 1, []dto.SubjectInput{
		{Name: "Data Structures", Credits: 3, Grade: "O"},
		{Name: "Operating Systems", Credits: 4, Grade: "B+"},
	})
	require.NoError(t, err)

	// A fresh service over the same store simulates a process restart.
	restarted := NewRecordService(repositories.NewRecordRepository(store), zerolog.Nop())
	reloaded, err := restarted.Get(ctx, "student-1")
	require.NoError(t, err)
	assert.Equal(t, record, reloaded)
}
