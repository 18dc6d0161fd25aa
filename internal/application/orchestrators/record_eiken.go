package orchestrators

import (
	"context"
	"strconv"
	"time"

	"ubase/internal/domain/eiken"
)

// EikenStoreForRecord defines the store interface needed by RecordEiken.
type EikenStoreForRecord interface {
	Append(ctx context.Context, r eiken.Record) error
}

// RecordEikenInput carries one Eiken practice entry. Only the correct counts
// are entered; the per-skill totals are read from the grade table at save
// time and frozen into the record.
type RecordEikenInput struct {
	StudentID       string
	TargetGrade     string
	ExamDate        string
	PracticeDate    string
	Category        string
	Corrects        eiken.Corrects
	TeacherUsername string
	TeacherName     string
}

// RecordEikenDeps holds dependencies for RecordEiken.
type RecordEikenDeps struct {
	EikenStore EikenStoreForRecord
	NextID     func(ctx context.Context) (int, error)
	Now        func() time.Time // optional: if nil, time.Now is used
}

// ExecuteRecordEiken validates and appends one Eiken practice record.
// PRE: TargetGrade is a known Eiken grade
// POST: The record carries the grade's totals as they were at save time
func ExecuteRecordEiken(ctx context.Context, input RecordEikenInput, deps RecordEikenDeps) (eiken.Record, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	r := eiken.Record{
		StudentID:       input.StudentID,
		TargetGrade:     input.TargetGrade,
		ExamDate:        input.ExamDate,
		PracticeDate:    input.PracticeDate,
		Category:        input.Category,
		Scores:          eiken.BuildScores(input.TargetGrade, input.Corrects),
		CreatedAt:       now(),
		TeacherUsername: input.TeacherUsername,
		TeacherName:     input.TeacherName,
	}
	r.UpdatedAt = r.CreatedAt
	if err := r.Validate(); err != nil {
		return eiken.Record{}, err
	}

	id, err := deps.NextID(ctx)
	if err != nil {
		return eiken.Record{}, err
	}
	r.ID = strconv.Itoa(id)

	if err := deps.EikenStore.Append(ctx, r); err != nil {
		return eiken.Record{}, err
	}
	return r, nil
}
