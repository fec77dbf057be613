// Package models defines the persisted domain entities of GradeSphere.
package models

// User defines a registered student account, stored under the 'users' key
type User struct {
	ID             string `json:"id" example:"7ed99bd0-87b2-4dbb-a97b-596c3f29c49b"` // Unique identifier, generated at signup
	Name           string `json:"name" example:"Arun Kumar"`                         // Full name of the student
	RegisterNumber string `json:"registerNumber" example:"2021503512"`               // University register number
	Department     string `json:"department" example:"Computer Science"`             // Department the student belongs to
	Email          string `json:"email" example:"arun@student.edu"`                  // Login email, unique across users
	Password       string `json:"password,omitempty"`                                // Bcrypt hash; stripped before the user is exposed or stored in the session
}

// Sanitized returns a copy of the user with the password hash removed.
// Session storage and every API response carry the sanitized form.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// SubjectGrade is a single graded subject inside a semester
type SubjectGrade struct {
	ID      string `json:"id"`      // Unique within its semester
	Name    string `json:"name"`    // Subject name, non-blank
	Credits int    `json:"credits"` // Credit count, one of the fixed credit options
	Grade   string `json:"grade"`   // Letter grade from the fixed grade scale
}

// Semester groups the subjects taken in one term together with the derived GPA
type Semester struct {
	ID       string         `json:"id"`       // Unique within its record
	Number   int            `json:"number"`   // Term number 1..8, unique within the record
	Subjects []SubjectGrade `json:"subjects"` // Ordered, non-empty
	GPA      float64        `json:"gpa"`      // Derived; recomputed on every mutation
}

// StudentRecord is the per-user academic record, stored under the
// 'studentRecords' key. One record per user, created lazily on first access.
type StudentRecord struct {
	UserID    string     `json:"userId"`
	Semesters []Semester `json:"semesters"`
	CGPA      float64    `json:"cgpa"` // Derived; mean of the semester GPA values
}

// FindSemester returns the index of the semester with the given id, or -1.
func (r *StudentRecord) FindSemester(semesterID string) int {
	for i := range r.Semesters {
		if r.Semesters[i].ID == semesterID {
			return i
		}
	}
	return -1
}

// HasSemesterNumber reports whether a semester with the given term number
// already exists in the record.
func (r *StudentRecord) HasSemesterNumber(number int) bool {
	for i := range r.Semesters {
		if r.Semesters[i].Number == number {
			return true
		}
	}
	return false
}
