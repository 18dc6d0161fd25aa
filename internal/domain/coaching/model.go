package coaching

import (
	"errors"
	"strings"
	"time"
)

// Weekdays is the fixed 7-day set used as study-schedule keys.
var Weekdays = []string{"月", "火", "水", "木", "金", "土", "日"}

// TargetCount is the fixed number of study-target slots per report.
const TargetCount = 3

// Domain errors
var (
	ErrEmptyStudentID  = errors.New("student id cannot be empty")
	ErrEmptyDate       = errors.New("report date cannot be empty")
	ErrRatingOutOfRange = errors.New("ratings must be between 1 and 5")
	ErrInvalidWeekday  = errors.New("study schedule keys must be weekdays")
	ErrNegativeHours   = errors.New("study hours cannot be negative")
	ErrTooManyTargets  = errors.New("a report carries at most 3 study targets")
)

// StudentEval is the student self-evaluation sub-document. The JSON keys are
// the labels persisted by every deployment to date, so they stay fixed.
type StudentEval struct {
	Comprehension   int `json:"理解度"`
	GoalAchievement int `json:"目標達成度"`
	Motivation      int `json:"モチベーション"`
}

// TeacherEval is the teacher evaluation sub-document.
type TeacherEval struct {
	Attitude           int    `json:"授業態度"`
	HomeworkCompletion int    `json:"宿題完成度"`
	PriorComprehension int    `json:"前回理解度"`
	Comment            string `json:"コメント"`
}

// Schedule maps weekday name to planned study hours.
type Schedule map[string]float64

// TotalHours sums the planned hours across all weekdays.
func (s Schedule) TotalHours() float64 {
	var total float64
	for _, h := range s {
		total += h
	}
	return total
}

// Report is one per-session coaching report. A student has at most one
// report per date; saving again for the same date overwrites it.
type Report struct {
	ID              string
	StudentID       string
	Date            string // YYYY-MM-DD, part of the natural key
	StudentEval     StudentEval
	TeacherEval     TeacherEval
	Schedule        Schedule
	Targets         [TargetCount]string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	TeacherUsername string
	TeacherName     string
}

// Validate checks if the Report has valid data.
// PRE: Report struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *Report) Validate() error {
	if strings.TrimSpace(r.StudentID) == "" {
		return ErrEmptyStudentID
	}
	if strings.TrimSpace(r.Date) == "" {
		return ErrEmptyDate
	}
	for _, v := range []int{
		r.StudentEval.Comprehension,
		r.StudentEval.GoalAchievement,
		r.StudentEval.Motivation,
		r.TeacherEval.Attitude,
		r.TeacherEval.HomeworkCompletion,
		r.TeacherEval.PriorComprehension,
	} {
		if v < 1 || v > 5 {
			return ErrRatingOutOfRange
		}
	}
	for day, hours := range r.Schedule {
		if !validWeekday(day) {
			return ErrInvalidWeekday
		}
		if hours < 0 {
			return ErrNegativeHours
		}
	}
	return nil
}

func validWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
