package orchestrators_test

import (
	"context"
	"errors"
	"testing"

	"ubase/internal/application/orchestrators"
	"ubase/internal/domain/account"
)

type fakeAccountLookup struct {
	accounts map[string]account.Account
}

func (f *fakeAccountLookup) GetByUsername(_ context.Context, username string) (account.Account, error) {
	a, ok := f.accounts[username]
	if !ok {
		return account.Account{}, errors.New("account not found")
	}
	return a, nil
}

type fakeStudentDeleter struct {
	removed int
	called  bool
	err     error
}

func (f *fakeStudentDeleter) Delete(_ context.Context, ids []string) (int, error) {
	f.called = true
	if f.err != nil {
		return 0, f.err
	}
	return f.removed, nil
}

type fakeDependentDeleter struct {
	removed int
	called  bool
	err     error
}

func (f *fakeDependentDeleter) DeleteByStudents(_ context.Context, ids []string) (int, error) {
	f.called = true
	if f.err != nil {
		return 0, f.err
	}
	return f.removed, nil
}

func masterAccounts(t *testing.T, password string) *fakeAccountLookup {
	t.Helper()
	master := account.Account{Username: account.MasterUsername, Role: account.RoleMaster}
	if err := master.SetPassword(password); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	return &fakeAccountLookup{accounts: map[string]account.Account{
		account.MasterUsername: master,
	}}
}

func cascadeDeps(accounts *fakeAccountLookup) (orchestrators.DeleteStudentsDeps, *fakeStudentDeleter, []*fakeDependentDeleter) {
	students := &fakeStudentDeleter{removed: 2}
	dependents := []*fakeDependentDeleter{
		{removed: 3}, {removed: 1}, {removed: 0},
	}
	deps := orchestrators.DeleteStudentsDeps{
		AccountStore:  accounts,
		StudentStore:  students,
		ExamStore:     dependents[0],
		CoachingStore: dependents[1],
		EikenStore:    dependents[2],
	}
	return deps, students, dependents
}

// TestDeleteStudentsCascade tests a full four-table cascade and its counts.
func TestDeleteStudentsCascade(t *testing.T) {
	deps, students, dependents := cascadeDeps(masterAccounts(t, "Ubase2025"))

	res, err := orchestrators.ExecuteDeleteStudents(context.Background(),
		orchestrators.DeleteStudentsInput{
			Role:          account.RoleMaster,
			AdminPassword: "Ubase2025",
			StudentIDs:    []string{"250001", "250002"},
		}, deps)
	if err != nil {
		t.Fatalf("ExecuteDeleteStudents() error = %v", err)
	}
	if res.Students != 2 || res.ExamResults != 3 || res.CoachingReports != 1 || res.EikenRecords != 0 {
		t.Errorf("counts = %+v, want 2/3/1/0", res)
	}
	if !students.called {
		t.Error("student table untouched")
	}
	for i, d := range dependents {
		if !d.called {
			t.Errorf("dependent table %d untouched", i)
		}
	}
}

// TestDeleteStudentsRequiresMaster tests the role gate.
func TestDeleteStudentsRequiresMaster(t *testing.T) {
	deps, students, _ := cascadeDeps(masterAccounts(t, "Ubase2025"))

	_, err := orchestrators.ExecuteDeleteStudents(context.Background(),
		orchestrators.DeleteStudentsInput{
			Role:          account.RoleTeacher,
			AdminPassword: "Ubase2025",
			StudentIDs:    []string{"250001"},
		}, deps)
	if !errors.Is(err, orchestrators.ErrMasterOnly) {
		t.Fatalf("error = %v, want ErrMasterOnly", err)
	}
	if students.called {
		t.Error("deletion ran despite failed role gate")
	}
}

// TestDeleteStudentsWrongPassword tests the reauthentication gate.
func TestDeleteStudentsWrongPassword(t *testing.T) {
	deps, students, _ := cascadeDeps(masterAccounts(t, "Ubase2025"))

	_, err := orchestrators.ExecuteDeleteStudents(context.Background(),
		orchestrators.DeleteStudentsInput{
			Role:          account.RoleMaster,
			AdminPassword: "nope",
			StudentIDs:    []string{"250001"},
		}, deps)
	if !errors.Is(err, orchestrators.ErrWrongAdminPassword) {
		t.Fatalf("error = %v, want ErrWrongAdminPassword", err)
	}
	if students.called {
		t.Error("deletion ran despite wrong password")
	}
}

// TestDeleteStudentsEmptySelection tests the empty-selection guard.
func TestDeleteStudentsEmptySelection(t *testing.T) {
	deps, _, _ := cascadeDeps(masterAccounts(t, "Ubase2025"))

	_, err := orchestrators.ExecuteDeleteStudents(context.Background(),
		orchestrators.DeleteStudentsInput{
			Role:          account.RoleMaster,
			AdminPassword: "Ubase2025",
		}, deps)
	if !errors.Is(err, orchestrators.ErrNoStudentsSelected) {
		t.Fatalf("error = %v, want ErrNoStudentsSelected", err)
	}
}

// TestDeleteStudentsPartialFailure tests that a mid-cascade failure stops
// the sequence and reports the counts reached so far.
func TestDeleteStudentsPartialFailure(t *testing.T) {
	deps, _, dependents := cascadeDeps(masterAccounts(t, "Ubase2025"))
	dependents[1].err = errors.New("transport down")

	res, err := orchestrators.ExecuteDeleteStudents(context.Background(),
		orchestrators.DeleteStudentsInput{
			Role:          account.RoleMaster,
			AdminPassword: "Ubase2025",
			StudentIDs:    []string{"250001"},
		}, deps)
	if err == nil {
		t.Fatal("error = nil, want cascade failure")
	}
	if res.Students != 2 {
		t.Errorf("students removed = %d, want the pre-failure count 2", res.Students)
	}
	if dependents[2].called {
		t.Error("eiken table touched after the cascade stopped")
	}
}
