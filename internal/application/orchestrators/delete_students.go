package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ubase/internal/domain/account"
)

// Store interfaces needed by DeleteStudents.
type (
	AccountStoreForDelete interface {
		GetByUsername(ctx context.Context, username string) (account.Account, error)
	}
	StudentStoreForDelete interface {
		Delete(ctx context.Context, ids []string) (int, error)
	}
	DependentStoreForDelete interface {
		DeleteByStudents(ctx context.Context, studentIDs []string) (int, error)
	}
)

// Delete-specific errors.
var (
	ErrNoStudentsSelected   = errors.New("select at least one student to delete")
	ErrAdminPasswordMissing = errors.New("the master password is required")
	ErrWrongAdminPassword   = errors.New("the master password is incorrect")
)

// DeleteStudentsInput carries input for the cascading student deletion.
type DeleteStudentsInput struct {
	Role          string // caller's role; must be master
	AdminPassword string // plaintext, verified against the master account
	StudentIDs    []string
}

// DeleteStudentsDeps holds dependencies for DeleteStudents.
type DeleteStudentsDeps struct {
	AccountStore  AccountStoreForDelete
	StudentStore  StudentStoreForDelete
	ExamStore     DependentStoreForDelete
	CoachingStore DependentStoreForDelete
	EikenStore    DependentStoreForDelete
}

// DeleteStudentsResult reports how many rows each table lost.
type DeleteStudentsResult struct {
	Students        int
	ExamResults     int
	CoachingReports int
	EikenRecords    int
}

// ExecuteDeleteStudents removes the selected students and every dependent
// exam, coaching and Eiken row referencing them. The four table writes run
// sequentially without a rollback: a failure partway through leaves the
// earlier tables deleted, so each step is logged to make the partial state
// reconstructable. The id allocator additionally scans dependent tables, so
// an interrupted cascade can never cause an id to be reissued.
// PRE: Caller holds the master role and supplied the master password
// POST: No row in any table references a deleted student id
func ExecuteDeleteStudents(ctx context.Context, input DeleteStudentsInput, deps DeleteStudentsDeps) (DeleteStudentsResult, error) {
	var res DeleteStudentsResult

	if err := requireMaster(input.Role); err != nil {
		return res, err
	}
	if len(input.StudentIDs) == 0 {
		return res, ErrNoStudentsSelected
	}
	if input.AdminPassword == "" {
		return res, ErrAdminPasswordMissing
	}

	master, err := deps.AccountStore.GetByUsername(ctx, account.MasterUsername)
	if err != nil {
		return res, fmt.Errorf("master account lookup failed: %w", err)
	}
	if err := master.CheckPassword(input.AdminPassword); err != nil {
		slog.Info("auth_event", "event", "cascade_delete_denied", "reason", "wrong_password")
		return res, ErrWrongAdminPassword
	}

	res.Students, err = deps.StudentStore.Delete(ctx, input.StudentIDs)
	if err != nil {
		return res, fmt.Errorf("cascade stopped before students: %w", err)
	}
	slog.Info("cascade_delete", "table", "students", "removed", res.Students)

	res.ExamResults, err = deps.ExamStore.DeleteByStudents(ctx, input.StudentIDs)
	if err != nil {
		return res, fmt.Errorf("cascade stopped after students: %w", err)
	}
	slog.Info("cascade_delete", "table", "exam_results", "removed", res.ExamResults)

	res.CoachingReports, err = deps.CoachingStore.DeleteByStudents(ctx, input.StudentIDs)
	if err != nil {
		return res, fmt.Errorf("cascade stopped after exam_results: %w", err)
	}
	slog.Info("cascade_delete", "table", "coaching_reports", "removed", res.CoachingReports)

	res.EikenRecords, err = deps.EikenStore.DeleteByStudents(ctx, input.StudentIDs)
	if err != nil {
		return res, fmt.Errorf("cascade stopped after coaching_reports: %w", err)
	}
	slog.Info("cascade_delete", "table", "eiken_records", "removed", res.EikenRecords)

	return res, nil
}
