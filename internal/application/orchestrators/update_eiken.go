package orchestrators

import (
	"context"
	"time"

	"ubase/internal/domain/eiken"
)

// EikenStoreForUpdate defines the store interface needed by UpdateEiken.
type EikenStoreForUpdate interface {
	GetByID(ctx context.Context, id string) (eiken.Record, error)
	Update(ctx context.Context, r eiken.Record) error
}

// UpdateEikenInput carries the replacement values for one Eiken record. The
// per-skill totals stored with the record stay untouched; only the correct
// counts are replaced.
type UpdateEikenInput struct {
	ID              string
	TargetGrade     string
	ExamDate        string
	PracticeDate    string
	Category        string
	Corrects        eiken.Corrects
	TeacherUsername string
	TeacherName     string
}

// UpdateEikenDeps holds dependencies for UpdateEiken.
type UpdateEikenDeps struct {
	EikenStore EikenStoreForUpdate
	Now        func() time.Time // optional: if nil, time.Now is used
}

// ExecuteUpdateEiken overwrites the mutable fields of one Eiken record and
// refreshes its update stamp. The totals captured at the original save are
// kept even when TargetGrade changes, so past rates are never recomputed
// against a different grade's maximums.
// PRE: input.ID names an existing record
// POST: Scores keep their stored totals with the new correct counts
func ExecuteUpdateEiken(ctx context.Context, input UpdateEikenInput, deps UpdateEikenDeps) (eiken.Record, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	stored, err := deps.EikenStore.GetByID(ctx, input.ID)
	if err != nil {
		return eiken.Record{}, err
	}

	stored.TargetGrade = input.TargetGrade
	stored.ExamDate = input.ExamDate
	stored.PracticeDate = input.PracticeDate
	stored.Category = input.Category
	stored.Scores.Reading.Correct = input.Corrects.Reading
	stored.Scores.Listening.Correct = input.Corrects.Listening
	stored.Scores.Writing.Correct = input.Corrects.Writing
	stored.Scores.Speaking.Correct = input.Corrects.Speaking
	stored.TeacherUsername = input.TeacherUsername
	stored.TeacherName = input.TeacherName
	stored.UpdatedAt = now()

	if err := stored.Validate(); err != nil {
		return eiken.Record{}, err
	}
	if err := deps.EikenStore.Update(ctx, stored); err != nil {
		return eiken.Record{}, err
	}
	return stored, nil
}
