package dto

// SubjectInput is one graded subject in a semester payload. The binding tags
// mirror the client-side form validation: non-blank name, credits from the
// fixed option set, grade from the fixed scale.
type SubjectInput struct {
	Name    string `json:"name" binding:"required"`
	Credits int    `json:"credits" binding:"required,oneof=1 2 3 4 5"`
	Grade   string `json:"grade" binding:"required,oneof=O A+ A B+ B C P U R"`
}

// AddSemesterRequest creates a new semester in the acting user's record
type AddSemesterRequest struct {
	Number   int            `json:"number" binding:"required,min=1,max=8"`
	Subjects []SubjectInput `json:"subjects" binding:"required,min=1,dive"`
}

// UpdateSemesterRequest replaces the subjects of an existing semester.
// Semester number and id are unchanged by an update.
type UpdateSemesterRequest struct {
	Subjects []SubjectInput `json:"subjects" binding:"required,min=1,dive"`
}

// GradeScaleResponse exposes the fixed grade table and credit options the
// subject form offers.
type GradeScaleResponse struct {
	Grades        []string       `json:"grades"`
	Points        map[string]int `json:"points"`
	CreditOptions []int          `json:"creditOptions"`
}
