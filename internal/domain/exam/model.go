package exam

import (
	"errors"
	"strings"
	"time"
)

// Exam categories.
const (
	CategoryRegular = "定期テスト"
	CategoryMock    = "模試"
)

// RegularExamNames are the fixed periodic-exam names offered for the
// regular category. Mock exams have free-form names.
var RegularExamNames = []string{
	"1学期中間",
	"1学期期末",
	"2学期中間",
	"2学期期末",
	"学年末",
}

// Domain errors
var (
	ErrEmptyStudentID  = errors.New("student id cannot be empty")
	ErrInvalidCategory = errors.New("exam category must be 定期テスト or 模試")
	ErrEmptyExamName   = errors.New("exam name cannot be empty")
)

// SubjectResult is the per-subject target and score pair stored in the
// results sub-document.
type SubjectResult struct {
	Target float64 `json:"target"`
	Score  float64 `json:"score"`
}

// Results maps subject name to its target/score pair. Keys are the subject
// names configured on the student at input time; they are not re-validated
// against the student's current subject list.
type Results map[string]SubjectResult

// Totals sums score and target across all subjects.
func (r Results) Totals() (score, target float64) {
	for _, v := range r {
		score += v.Score
		target += v.Target
	}
	return score, target
}

// Result is one recorded exam for a student.
type Result struct {
	ID              string
	StudentID       string
	Category        string
	Name            string
	Date            string // YYYY-MM-DD
	Results         Results
	CreatedAt       time.Time
	TeacherUsername string
	TeacherName     string
}

// Validate checks if the Result has valid data.
// PRE: Result struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (e *Result) Validate() error {
	if strings.TrimSpace(e.StudentID) == "" {
		return ErrEmptyStudentID
	}
	if e.Category != CategoryRegular && e.Category != CategoryMock {
		return ErrInvalidCategory
	}
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyExamName
	}
	return nil
}
