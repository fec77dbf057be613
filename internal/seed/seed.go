// Package seed provisions demo data for development environments.
package seed

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appModels "github.com/yigit/gradesphere/internal/app/models"
	appRepos "github.com/yigit/gradesphere/internal/app/repositories"
	"github.com/yigit/gradesphere/internal/pkg/auth"
	"github.com/yigit/gradesphere/internal/pkg/gpa"
)

// CreateDemoData seeds a demo student with one graded semester if the user
// collection is empty. Used with the in-memory store, which starts blank on
// every run.
func CreateDemoData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	users, err := repos.UserRepository.All(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	lgr.Info().Msg("Seeding demo account...")

	hashed, err := auth.HashPassword("demo-pass")
	if err != nil {
		return err
	}

	user := appModels.User{
		ID:             uuid.New().String(),
		Name:           "Demo Student",
		RegisterNumber: "2021000001",
		Department:     "Computer Science",
		Email:          "demo@student.edu",
		Password:       hashed,
	}
	if err := repos.UserRepository.Append(ctx, user); err != nil {
		return err
	}

	subjects := []appModels.SubjectGrade{
		{ID: uuid.New().String(), Name: "Mathematics I", Credits: 4, Grade: "A"},
		{ID: uuid.New().String(), Name: "Programming Fundamentals", Credits: 3, Grade: "A+"},
		{ID: uuid.New().String(), Name: "Physics", Credits: 3, Grade: "B+"},
	}
	semester := appModels.Semester{
		ID:       uuid.New().String(),
		Number:   1,
		Subjects: subjects,
		GPA:      gpa.Semester(subjects),
	}
	record := appModels.StudentRecord{
		UserID:    user.ID,
		Semesters: []appModels.Semester{semester},
	}
	record.CGPA = gpa.Cumulative(record.Semesters)

	if err := repos.RecordRepository.Save(ctx, record); err != nil {
		return err
	}

	lgr.Info().Str("email", user.Email).Msg("Demo account seeded")
	return nil
}
