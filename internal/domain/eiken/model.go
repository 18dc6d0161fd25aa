package eiken

import (
	"errors"
	"strings"
	"time"
)

// Grades are the Eiken proficiency levels, easiest first.
var Grades = []string{"5級", "4級", "3級", "準2級", "2級", "準1級", "1級"}

// SkillTotals holds the per-grade maximums: question counts for reading and
// listening, full marks for writing and speaking.
type SkillTotals struct {
	Reading   int
	Listening int
	Writing   int
	Speaking  int
}

// gradeTotals is the static per-grade lookup. Totals are copied into each
// record at save time, so editing this table never invalidates history.
var gradeTotals = map[string]SkillTotals{
	"5級":  {Reading: 25, Listening: 25, Writing: 0, Speaking: 0},
	"4級":  {Reading: 35, Listening: 30, Writing: 0, Speaking: 0},
	"3級":  {Reading: 35, Listening: 30, Writing: 16, Speaking: 16},
	"準2級": {Reading: 37, Listening: 29, Writing: 16, Speaking: 16},
	"2級":  {Reading: 37, Listening: 30, Writing: 16, Speaking: 16},
	"準1級": {Reading: 41, Listening: 29, Writing: 16, Speaking: 20},
	"1級":  {Reading: 41, Listening: 27, Writing: 32, Speaking: 20},
}

// Domain errors
var (
	ErrEmptyStudentID = errors.New("student id cannot be empty")
	ErrInvalidGrade   = errors.New("target grade is not a known Eiken grade")
)

// TotalsFor returns the skill maximums for grade, or zeros if the grade is
// unknown.
func TotalsFor(grade string) SkillTotals {
	return gradeTotals[grade]
}

// ValidGrade reports whether grade is a known Eiken grade.
func ValidGrade(grade string) bool {
	_, ok := gradeTotals[grade]
	return ok
}

// SkillScore is one skill's result: correct answers (or points) out of the
// total persisted with the record.
type SkillScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Rate returns the percentage of correct answers. A zero total yields 0.
func (s SkillScore) Rate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total) * 100
}

// Scores is the four-skill sub-document stored with each practice record.
type Scores struct {
	Reading   SkillScore `json:"reading"`
	Listening SkillScore `json:"listening"`
	Writing   SkillScore `json:"writing"`
	Speaking  SkillScore `json:"speaking"`
}

// Corrects carries the per-skill correct counts entered for one practice set.
type Corrects struct {
	Reading   int
	Listening int
	Writing   int
	Speaking  int
}

// BuildScores combines entered corrects with the current per-grade totals.
// The totals are captured here and persisted verbatim.
func BuildScores(grade string, c Corrects) Scores {
	t := TotalsFor(grade)
	return Scores{
		Reading:   SkillScore{Correct: c.Reading, Total: t.Reading},
		Listening: SkillScore{Correct: c.Listening, Total: t.Listening},
		Writing:   SkillScore{Correct: c.Writing, Total: t.Writing},
		Speaking:  SkillScore{Correct: c.Speaking, Total: t.Speaking},
	}
}

// Record is one Eiken practice entry. The latest record's TargetGrade and
// ExamDate act as the student's active goal.
type Record struct {
	ID              string
	StudentID       string
	TargetGrade     string
	ExamDate        string // planned real-exam date, YYYY-MM-DD
	PracticeDate    string // YYYY-MM-DD
	Category        string
	Scores          Scores
	CreatedAt       time.Time
	UpdatedAt       time.Time
	TeacherUsername string
	TeacherName     string
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *Record) Validate() error {
	if strings.TrimSpace(r.StudentID) == "" {
		return ErrEmptyStudentID
	}
	if !ValidGrade(r.TargetGrade) {
		return ErrInvalidGrade
	}
	return nil
}
