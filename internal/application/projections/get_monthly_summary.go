package projections

import (
	"context"
	"fmt"
	"strings"

	"ubase/internal/domain/coaching"
	"ubase/internal/domain/eiken"
	"ubase/internal/domain/exam"
)

// Store interfaces for the monthly summary projection.
type (
	MonthlySummaryCoachingStore interface {
		ListByStudent(ctx context.Context, studentID string) ([]coaching.Report, error)
	}
	MonthlySummaryEikenStore interface {
		ListByStudent(ctx context.Context, studentID string) ([]eiken.Record, error)
	}
	MonthlySummaryExamStore interface {
		ListByStudent(ctx context.Context, studentID string) ([]exam.Result, error)
	}
)

// GetMonthlySummaryQuery carries query parameters.
type GetMonthlySummaryQuery struct {
	StudentID string
	Year      int
	Month     int // 1..12
}

// GetMonthlySummaryDeps holds dependencies for the monthly summary.
type GetMonthlySummaryDeps struct {
	CoachingStore MonthlySummaryCoachingStore
	EikenStore    MonthlySummaryEikenStore
	ExamStore     MonthlySummaryExamStore
}

// RatingAverages carries the month's mean ratings. Each average covers only
// the reports where that rating was actually present (1..5); a month with no
// such reports averages to 0.
type RatingAverages struct {
	Comprehension      float64
	GoalAchievement    float64
	Motivation         float64
	Attitude           float64
	HomeworkCompletion float64
	PriorComprehension float64
}

// MonthlySummaryResult is the parent-report payload for one student and
// month: coaching metrics for the month, the month's Eiken practice rows and
// the all-time exam trend.
type MonthlySummaryResult struct {
	SessionCount int
	Ratings      RatingAverages
	PlannedHours float64
	EikenRows    []SkillRow
	ExamTotals   []ScoreTrendPoint
}

// SkillRow is one Eiken practice entry in the month, with rates computed
// per skill.
type SkillRow struct {
	PracticeDate string
	TargetGrade  string
	Category     string
	Reading      SkillPoint
	Listening    SkillPoint
	Writing      SkillPoint
	Speaking     SkillPoint
}

// QueryGetMonthlySummary aggregates one month of coaching and Eiken activity
// together with the student's full exam history.
// POST: A month with no activity yields zero counts and empty rows, not an
// error
func QueryGetMonthlySummary(ctx context.Context, query GetMonthlySummaryQuery, deps GetMonthlySummaryDeps) (MonthlySummaryResult, error) {
	prefix := fmt.Sprintf("%04d-%02d", query.Year, query.Month)

	reports, err := deps.CoachingStore.ListByStudent(ctx, query.StudentID)
	if err != nil {
		return MonthlySummaryResult{}, err
	}
	records, err := deps.EikenStore.ListByStudent(ctx, query.StudentID)
	if err != nil {
		return MonthlySummaryResult{}, err
	}
	exams, err := deps.ExamStore.ListByStudent(ctx, query.StudentID)
	if err != nil {
		return MonthlySummaryResult{}, err
	}

	var result MonthlySummaryResult

	var sums ratingSums
	for _, r := range reports {
		if !strings.HasPrefix(r.Date, prefix) {
			continue
		}
		result.SessionCount++
		result.PlannedHours += r.Schedule.TotalHours()
		sums.add(r)
	}
	result.Ratings = sums.averages()

	for _, r := range records {
		if !strings.HasPrefix(r.PracticeDate, prefix) {
			continue
		}
		result.EikenRows = append(result.EikenRows, SkillRow{
			PracticeDate: r.PracticeDate,
			TargetGrade:  r.TargetGrade,
			Category:     r.Category,
			Reading:      skillPoint(r.PracticeDate, r.Scores.Reading),
			Listening:    skillPoint(r.PracticeDate, r.Scores.Listening),
			Writing:      skillPoint(r.PracticeDate, r.Scores.Writing),
			Speaking:     skillPoint(r.PracticeDate, r.Scores.Speaking),
		})
	}

	sortByExamDate(exams)
	for _, e := range exams {
		score, target := e.Results.Totals()
		result.ExamTotals = append(result.ExamTotals, ScoreTrendPoint{
			Label:  e.Date + " " + e.Name,
			Score:  score,
			Target: target,
		})
	}

	return result, nil
}

// ratingSums accumulates rating values and their counts. A rating outside
// 1..5 came from a missing or malformed sub-document and is left out of the
// average rather than dragging it toward zero.
type ratingSums struct {
	sum   [6]int
	count [6]int
}

func (s *ratingSums) add(r coaching.Report) {
	vals := [6]int{
		r.StudentEval.Comprehension,
		r.StudentEval.GoalAchievement,
		r.StudentEval.Motivation,
		r.TeacherEval.Attitude,
		r.TeacherEval.HomeworkCompletion,
		r.TeacherEval.PriorComprehension,
	}
	for i, v := range vals {
		if v >= 1 && v <= 5 {
			s.sum[i] += v
			s.count[i]++
		}
	}
}

func (s *ratingSums) averages() RatingAverages {
	avg := func(i int) float64 {
		if s.count[i] == 0 {
			return 0
		}
		return float64(s.sum[i]) / float64(s.count[i])
	}
	return RatingAverages{
		Comprehension:      avg(0),
		GoalAchievement:    avg(1),
		Motivation:         avg(2),
		Attitude:           avg(3),
		HomeworkCompletion: avg(4),
		PriorComprehension: avg(5),
	}
}
