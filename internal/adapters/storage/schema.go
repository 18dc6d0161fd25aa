package storage

// Table names in the backing tabular document.
const (
	TableUsers           = "users"
	TableStudents        = "students"
	TableExamResults     = "exam_results"
	TableCoachingReports = "coaching_reports"
	TableEikenRecords    = "eiken_records"
	TableCounters        = "counters"
)

// TableNames lists every table, in provisioning order.
var TableNames = []string{
	TableUsers,
	TableStudents,
	TableExamResults,
	TableCoachingReports,
	TableEikenRecords,
	TableCounters,
}

// Schemas declares the exact ordered column list of each table. The wire
// format is shared with older deployments, so columns are never renamed or
// reordered; new columns may only be appended.
var Schemas = map[string][]string{
	TableUsers: {
		"username", "name", "password_hash", "role",
	},
	TableStudents: {
		"student_id", "name", "grade", "school_name", "target_school",
		"admission_goal", "student_login_id", "subjects", "mock_subjects",
		"created_at",
	},
	TableExamResults: {
		"id", "student_id", "exam_category", "exam_name", "date",
		"results_json", "created_at", "teacher_username", "teacher_name",
	},
	TableCoachingReports: {
		"id", "student_id", "date", "student_eval_json", "teacher_eval_json",
		"study_schedule_json", "study_targets_json", "created_at",
		"updated_at", "teacher_username", "teacher_name",
	},
	TableEikenRecords: {
		"id", "student_id", "target_grade", "exam_date", "practice_date",
		"category", "scores_json", "created_at", "updated_at",
		"teacher_username", "teacher_name",
	},
	// counters holds allocation high-water marks, one row per counter name.
	TableCounters: {
		"name", "value",
	},
}

// Row is one table row. Every cell is text; typing happens at the store
// boundary.
type Row map[string]string

// Normalize returns a copy of row shaped to the declared schema of table:
// missing columns become empty strings, unknown columns are dropped.
func Normalize(table string, row Row) Row {
	cols := Schemas[table]
	out := make(Row, len(cols))
	for _, c := range cols {
		out[c] = row[c]
	}
	return out
}

// NormalizeAll applies Normalize to every row.
func NormalizeAll(table string, rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Normalize(table, r)
	}
	return out
}
