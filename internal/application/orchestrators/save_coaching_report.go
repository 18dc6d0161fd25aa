package orchestrators

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"ubase/internal/domain/coaching"
)

// CoachingStoreForSave defines the store interface needed by
// SaveCoachingReport.
type CoachingStoreForSave interface {
	FindByStudentDate(ctx context.Context, studentID, date string) (coaching.Report, bool, error)
	Append(ctx context.Context, r coaching.Report) error
	Update(ctx context.Context, r coaching.Report) error
}

// SaveCoachingReportInput carries one coaching report. (StudentID, Date) is
// the natural key: saving the same pair again overwrites the earlier report.
type SaveCoachingReportInput struct {
	StudentID       string
	Date            string
	StudentEval     coaching.StudentEval
	TeacherEval     coaching.TeacherEval
	Schedule        coaching.Schedule
	Targets         [coaching.TargetCount]string
	TeacherUsername string
	TeacherName     string
}

// SaveCoachingReportDeps holds dependencies for SaveCoachingReport.
type SaveCoachingReportDeps struct {
	CoachingStore CoachingStoreForSave
	NextID        func(ctx context.Context) (int, error)
	Now           func() time.Time // optional: if nil, time.Now is used
}

// SaveCoachingReportResult reports which path the save took.
type SaveCoachingReportResult struct {
	Report  coaching.Report
	Updated bool // true when an existing (student, date) report was replaced
}

// ExecuteSaveCoachingReport inserts or overwrites the report for
// (StudentID, Date). An overwrite keeps the stored id and creation stamp and
// refreshes the update stamp; an insert sets both stamps to now.
// PRE: Ratings are 1..5, schedule keys are weekdays
// POST: Exactly one report exists for (StudentID, Date)
func ExecuteSaveCoachingReport(ctx context.Context, input SaveCoachingReportInput, deps SaveCoachingReportDeps) (SaveCoachingReportResult, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	r := coaching.Report{
		StudentID:       input.StudentID,
		Date:            input.Date,
		StudentEval:     input.StudentEval,
		TeacherEval:     input.TeacherEval,
		Schedule:        input.Schedule,
		Targets:         input.Targets,
		TeacherUsername: input.TeacherUsername,
		TeacherName:     input.TeacherName,
	}
	if err := r.Validate(); err != nil {
		return SaveCoachingReportResult{}, err
	}

	existing, found, err := deps.CoachingStore.FindByStudentDate(ctx, input.StudentID, input.Date)
	if err != nil {
		return SaveCoachingReportResult{}, err
	}

	if found {
		r.ID = existing.ID
		r.CreatedAt = existing.CreatedAt
		r.UpdatedAt = now()
		if err := deps.CoachingStore.Update(ctx, r); err != nil {
			return SaveCoachingReportResult{}, err
		}
		slog.Info("coaching_event", "event", "overwritten", "student_id", r.StudentID, "date", r.Date)
		return SaveCoachingReportResult{Report: r, Updated: true}, nil
	}

	id, err := deps.NextID(ctx)
	if err != nil {
		return SaveCoachingReportResult{}, err
	}
	r.ID = strconv.Itoa(id)
	r.CreatedAt = now()
	r.UpdatedAt = r.CreatedAt
	if err := deps.CoachingStore.Append(ctx, r); err != nil {
		return SaveCoachingReportResult{}, err
	}
	slog.Info("coaching_event", "event", "created", "student_id", r.StudentID, "date", r.Date)
	return SaveCoachingReportResult{Report: r, Updated: false}, nil
}
