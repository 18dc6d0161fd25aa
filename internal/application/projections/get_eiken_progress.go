package projections

import (
	"context"
	"sort"

	"ubase/internal/domain/eiken"
)

// EikenProgressStore defines the eiken store interface for the progress
// projection.
type EikenProgressStore interface {
	ListByStudent(ctx context.Context, studentID string) ([]eiken.Record, error)
}

// GetEikenProgressQuery carries query parameters.
type GetEikenProgressQuery struct {
	StudentID string
}

// GetEikenProgressDeps holds dependencies for the Eiken progress projection.
type GetEikenProgressDeps struct {
	EikenStore EikenProgressStore
}

// SkillPoint is one practice result for a single skill. Rate is 0 when the
// skill has no questions at the practiced grade.
type SkillPoint struct {
	Label   string // practice date
	Correct int
	Total   int
	Rate    float64
}

// EikenProgressResult carries the per-skill series plus the student's
// current goal, taken from the newest practice record.
type EikenProgressResult struct {
	Reading     []SkillPoint
	Listening   []SkillPoint
	Writing     []SkillPoint
	Speaking    []SkillPoint
	TargetGrade string
	ExamDate    string
}

// QueryGetEikenProgress builds the practice-rate series for each skill,
// ordered by practice date.
// POST: An empty practice history yields empty series and no target grade
func QueryGetEikenProgress(ctx context.Context, query GetEikenProgressQuery, deps GetEikenProgressDeps) (EikenProgressResult, error) {
	records, err := deps.EikenStore.ListByStudent(ctx, query.StudentID)
	if err != nil {
		return EikenProgressResult{}, err
	}
	sortByPracticeDate(records)

	var result EikenProgressResult
	for _, r := range records {
		result.Reading = append(result.Reading, skillPoint(r.PracticeDate, r.Scores.Reading))
		result.Listening = append(result.Listening, skillPoint(r.PracticeDate, r.Scores.Listening))
		result.Writing = append(result.Writing, skillPoint(r.PracticeDate, r.Scores.Writing))
		result.Speaking = append(result.Speaking, skillPoint(r.PracticeDate, r.Scores.Speaking))
	}
	if len(records) > 0 {
		latest := records[len(records)-1]
		result.TargetGrade = latest.TargetGrade
		result.ExamDate = latest.ExamDate
	}
	return result, nil
}

func skillPoint(date string, s eiken.SkillScore) SkillPoint {
	return SkillPoint{
		Label:   date,
		Correct: s.Correct,
		Total:   s.Total,
		Rate:    s.Rate(),
	}
}

// sortByPracticeDate orders records oldest first; unparseable dates sort by
// their raw text.
func sortByPracticeDate(records []eiken.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, okI := parseDay(records[i].PracticeDate)
		tj, okJ := parseDay(records[j].PracticeDate)
		if okI && okJ {
			return ti.Before(tj)
		}
		return records[i].PracticeDate < records[j].PracticeDate
	})
}
