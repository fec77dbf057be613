// Package gpa implements the grade scale and the GPA/CGPA computations.
// All functions are pure; callers recompute derived values on every mutation
// so a stored record never carries a stale GPA or CGPA.
package gpa

import (
	"math"

	"github.com/yigit/gradesphere/internal/app/models"
)

// gradePoints is the fixed letter-grade to point-value table.
// Labels outside the table are worth 0 points; no error is raised.
var gradePoints = map[string]int{
	"O":  10,
	"A+": 9,
	"A":  8,
	"B+": 7,
	"B":  6,
	"C":  5,
	"P":  4,
	"U":  0,
	"R":  0,
}

// gradeOrder keeps the scale listing in descending point order.
var gradeOrder = []string{"O", "A+", "A", "B+", "B", "C", "P", "U", "R"}

// creditOptions is the fixed set of credit counts a subject may carry.
var creditOptions = []int{1, 2, 3, 4, 5}

// Points returns the point value for a letter grade. Unknown labels map to 0.
func Points(grade string) int {
	return gradePoints[grade]
}

// Grades returns the letter grades in descending point order.
func Grades() []string {
	out := make([]string, len(gradeOrder))
	copy(out, gradeOrder)
	return out
}

// CreditOptions returns the allowed credit counts for a subject.
func CreditOptions() []int {
	out := make([]int, len(creditOptions))
	copy(out, creditOptions)
	return out
}

// ValidGrade reports whether the label is part of the grade scale.
func ValidGrade(grade string) bool {
	_, ok := gradePoints[grade]
	return ok
}

// ValidCredits reports whether the credit count is one of the allowed options.
func ValidCredits(credits int) bool {
	for _, c := range creditOptions {
		if credits == c {
			return true
		}
	}
	return false
}

// Semester computes the credit-weighted GPA of a subject list:
// sum(points(grade) * credits) / sum(credits), rounded to two decimals at the
// final division only. An empty list or a zero credit total yields exactly 0.
func Semester(subjects []models.SubjectGrade) float64 {
	if len(subjects) == 0 {
		return 0
	}

	totalCredits := 0
	totalPoints := 0
	for _, subject := range subjects {
		totalPoints += Points(subject.Grade) * subject.Credits
		totalCredits += subject.Credits
	}

	if totalCredits <= 0 {
		return 0
	}

	return round2(float64(totalPoints) / float64(totalCredits))
}

// Cumulative computes the CGPA as the arithmetic mean of the already-rounded
// per-semester GPA values, rounded to two decimals. It is intentionally not a
// credit-weighted average across semesters. Zero semesters yields 0.
func Cumulative(semesters []models.Semester) float64 {
	if len(semesters) == 0 {
		return 0
	}

	total := 0.0
	for _, semester := range semesters {
		total += semester.GPA
	}

	return round2(total / float64(len(semesters)))
}

// round2 rounds to two decimal places, half up.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
