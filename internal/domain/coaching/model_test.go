package coaching_test

import (
	"testing"

	"ubase/internal/domain/coaching"
)

func validReport() coaching.Report {
	return coaching.Report{
		StudentID:   "250001",
		Date:        "2025-06-01",
		StudentEval: coaching.StudentEval{Comprehension: 4, GoalAchievement: 3, Motivation: 5},
		TeacherEval: coaching.TeacherEval{Attitude: 4, HomeworkCompletion: 5, PriorComprehension: 3, Comment: "よくできました"},
		Schedule:    coaching.Schedule{"月": 1.5, "水": 2, "土": 3},
		Targets:     [coaching.TargetCount]string{"英単語50個", "数学ワークp30まで", ""},
	}
}

// TestReportValidation tests validation of Report.
func TestReportValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*coaching.Report)
		wantErr bool
	}{
		{
			name:    "valid report",
			mutate:  func(*coaching.Report) {},
			wantErr: false,
		},
		{
			name:    "empty student id",
			mutate:  func(r *coaching.Report) { r.StudentID = "" },
			wantErr: true,
		},
		{
			name:    "empty date",
			mutate:  func(r *coaching.Report) { r.Date = "  " },
			wantErr: true,
		},
		{
			name:    "rating below range",
			mutate:  func(r *coaching.Report) { r.StudentEval.Motivation = 0 },
			wantErr: true,
		},
		{
			name:    "rating above range",
			mutate:  func(r *coaching.Report) { r.TeacherEval.Attitude = 6 },
			wantErr: true,
		},
		{
			name:    "schedule key not a weekday",
			mutate:  func(r *coaching.Report) { r.Schedule["Monday"] = 1 },
			wantErr: true,
		},
		{
			name:    "negative study hours",
			mutate:  func(r *coaching.Report) { r.Schedule["月"] = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReport()
			tt.mutate(&r)
			err := r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestScheduleTotalHours tests summing planned hours.
func TestScheduleTotalHours(t *testing.T) {
	s := coaching.Schedule{"月": 1.5, "水": 2, "土": 3}
	if got := s.TotalHours(); got != 6.5 {
		t.Errorf("TotalHours() = %v, want 6.5", got)
	}

	var empty coaching.Schedule
	if got := empty.TotalHours(); got != 0 {
		t.Errorf("empty TotalHours() = %v, want 0", got)
	}
}
