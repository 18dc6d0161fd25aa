package projections

import (
	"context"
	"sort"
	"time"

	"ubase/internal/domain/exam"
)

// ScoreTrendExamStore defines the exam store interface for the score trend.
type ScoreTrendExamStore interface {
	ListByStudent(ctx context.Context, studentID string) ([]exam.Result, error)
}

// GetScoreTrendQuery carries query parameters.
type GetScoreTrendQuery struct {
	StudentID string
}

// GetScoreTrendDeps holds dependencies for the score trend projection.
type GetScoreTrendDeps struct {
	ExamStore ScoreTrendExamStore
}

// ScoreTrendPoint is one exam on the trend: summed score against summed
// target. The label is "date exam-name"; an unparseable date keeps its raw
// text in the label.
type ScoreTrendPoint struct {
	Label  string
	Score  float64
	Target float64
}

// SubjectPoint is one exam's score for a single subject.
type SubjectPoint struct {
	Label string
	Score float64
}

// ScoreTrendResult carries the date-ordered series for one student.
type ScoreTrendResult struct {
	Totals   []ScoreTrendPoint
	Subjects map[string][]SubjectPoint
}

// QueryGetScoreTrend builds the per-student score-versus-target series and
// the per-subject score series, ordered by exam date.
// POST: An empty exam history yields empty series, not an error
func QueryGetScoreTrend(ctx context.Context, query GetScoreTrendQuery, deps GetScoreTrendDeps) (ScoreTrendResult, error) {
	exams, err := deps.ExamStore.ListByStudent(ctx, query.StudentID)
	if err != nil {
		return ScoreTrendResult{}, err
	}
	sortByExamDate(exams)

	result := ScoreTrendResult{
		Totals:   make([]ScoreTrendPoint, 0, len(exams)),
		Subjects: make(map[string][]SubjectPoint),
	}
	for _, e := range exams {
		label := e.Date + " " + e.Name
		score, target := e.Results.Totals()
		result.Totals = append(result.Totals, ScoreTrendPoint{
			Label:  label,
			Score:  score,
			Target: target,
		})
		for subject, sr := range e.Results {
			result.Subjects[subject] = append(result.Subjects[subject], SubjectPoint{
				Label: label,
				Score: sr.Score,
			})
		}
	}
	return result, nil
}

// sortByExamDate orders exams oldest first. Rows whose date does not parse
// sort by their raw date text so the order stays deterministic.
func sortByExamDate(exams []exam.Result) {
	sort.SliceStable(exams, func(i, j int) bool {
		ti, okI := parseDay(exams[i].Date)
		tj, okJ := parseDay(exams[j].Date)
		if okI && okJ {
			return ti.Before(tj)
		}
		return exams[i].Date < exams[j].Date
	})
}

func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	return t, err == nil
}
