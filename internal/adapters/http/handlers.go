package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"ubase/internal/adapters/http/middleware"
	"ubase/internal/adapters/storage"
	"ubase/internal/adapters/storage/accountstore"
	"ubase/internal/adapters/storage/coachingstore"
	"ubase/internal/adapters/storage/eikenstore"
	"ubase/internal/adapters/storage/examstore"
	"ubase/internal/adapters/storage/idalloc"
	"ubase/internal/adapters/storage/studentstore"
	"ubase/internal/application/orchestrators"
	"ubase/internal/application/projections"
	"ubase/internal/domain/account"
	"ubase/internal/domain/coaching"
	"ubase/internal/domain/eiken"
	"ubase/internal/domain/exam"
	"ubase/internal/domain/student"
)

// internalError logs the real error and returns a generic message to the
// client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode_response", "error", err.Error())
	}
}

// badRequestErrs are validation failures the caller can fix.
var badRequestErrs = []error{
	student.ErrEmptyName,
	student.ErrNameTooLong,
	student.ErrInvalidGrade,
	exam.ErrEmptyStudentID,
	exam.ErrInvalidCategory,
	exam.ErrEmptyExamName,
	coaching.ErrEmptyStudentID,
	coaching.ErrEmptyDate,
	coaching.ErrRatingOutOfRange,
	coaching.ErrInvalidWeekday,
	coaching.ErrNegativeHours,
	coaching.ErrTooManyTargets,
	eiken.ErrEmptyStudentID,
	eiken.ErrInvalidGrade,
	account.ErrEmptyUsername,
	account.ErrEmptyPassword,
	orchestrators.ErrNoStudentsSelected,
	orchestrators.ErrNoGradesSelected,
	orchestrators.ErrAdminPasswordMissing,
	orchestrators.ErrMasterUndeletable,
}

var notFoundErrs = []error{
	studentstore.ErrNotFound,
	examstore.ErrNotFound,
	coachingstore.ErrNotFound,
	eikenstore.ErrNotFound,
	accountstore.ErrNotFound,
}

// httpError maps application sentinels onto status codes. Anything
// unrecognized is a 500 and is logged with its real cause.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orchestrators.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, orchestrators.ErrMasterOnly),
		errors.Is(err, orchestrators.ErrWrongAdminPassword):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, orchestrators.ErrUsernameTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case matchesAny(err, notFoundErrs):
		http.Error(w, err.Error(), http.StatusNotFound)
	case matchesAny(err, badRequestErrs):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		internalError(w, err)
	}
}

func matchesAny(err error, sentinels []error) bool {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}

// sessionTeacher returns the caller's identity for attribution columns.
func sessionTeacher(r *http.Request) (username, name string) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	return sess.Username, sess.Name
}

func nextStudentID(ctx context.Context) (int, error) {
	return idalloc.NextStudentID(ctx, stores.Tables)
}

func nextRecordID(table string) func(ctx context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		return idalloc.NextRecordID(ctx, stores.Tables, table)
	}
}

// --- auth ---

func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Username: req.Username,
		Password: req.Password,
	}, orchestrators.LoginDeps{AccountStore: stores.AccountStore})
	if err != nil {
		httpError(w, err)
		return
	}

	token, err := sessions.Create(res.Username, res.Name, res.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{
		"username": res.Username,
		"name":     res.Name,
		"role":     res.Role,
	})
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func handleSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"username": sess.Username,
		"name":     sess.Name,
		"role":     sess.Role,
	})
}

// --- catalog ---

// handleCatalog serves the fixed pick lists the input forms are built from.
func handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"grades":                student.Grades,
		"junior_subjects":       student.JuniorSubjects,
		"high_regular_subjects": student.HighRegularSubjects,
		"high_mock_subjects":    student.HighMockSubjects,
		"exam_categories":       []string{exam.CategoryRegular, exam.CategoryMock},
		"regular_exam_names":    exam.RegularExamNames,
		"eiken_grades":          eiken.Grades,
		"weekdays":              coaching.Weekdays,
	})
}

// --- students ---

type studentJSON struct {
	ID            string   `json:"student_id"`
	Name          string   `json:"name"`
	Grade         string   `json:"grade"`
	SchoolName    string   `json:"school_name"`
	TargetSchool  string   `json:"target_school"`
	AdmissionGoal string   `json:"admission_goal"`
	LoginID       string   `json:"student_login_id"`
	Subjects      []string `json:"subjects"`
	MockSubjects  []string `json:"mock_subjects"`
	CreatedAt     string   `json:"created_at"`
}

func toStudentJSON(s student.Student) studentJSON {
	return studentJSON{
		ID:            s.ID,
		Name:          s.Name,
		Grade:         s.Grade,
		SchoolName:    s.SchoolName,
		TargetSchool:  s.TargetSchool,
		AdmissionGoal: s.AdmissionGoal,
		LoginID:       s.LoginID,
		Subjects:      s.Subjects,
		MockSubjects:  s.MockSubjects,
		CreatedAt:     storage.FormatTime(s.CreatedAt),
	}
}

func handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := stores.StudentStore.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	out := make([]studentJSON, 0, len(students))
	for _, s := range students {
		out = append(out, toStudentJSON(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func handleGetStudent(w http.ResponseWriter, r *http.Request) {
	s, err := stores.StudentStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStudentJSON(s))
}

type studentRequest struct {
	Name          string   `json:"name"`
	Grade         string   `json:"grade"`
	SchoolName    string   `json:"school_name"`
	TargetSchool  string   `json:"target_school"`
	AdmissionGoal string   `json:"admission_goal"`
	LoginID       string   `json:"student_login_id"`
	Subjects      []string `json:"subjects"`
	MockSubjects  []string `json:"mock_subjects"`
}

func handleRegisterStudent(w http.ResponseWriter, r *http.Request) {
	var req studentRequest
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := orchestrators.ExecuteRegisterStudent(r.Context(), orchestrators.RegisterStudentInput{
		Name:          req.Name,
		Grade:         req.Grade,
		SchoolName:    req.SchoolName,
		TargetSchool:  req.TargetSchool,
		AdmissionGoal: req.AdmissionGoal,
		LoginID:       req.LoginID,
		Subjects:      req.Subjects,
		MockSubjects:  req.MockSubjects,
	}, orchestrators.RegisterStudentDeps{
		StudentStore: stores.StudentStore,
		NextID:       nextStudentID,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStudentJSON(s))
}

func handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	var req studentRequest
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := orchestrators.ExecuteUpdateStudent(r.Context(), orchestrators.UpdateStudentInput{
		ID:            r.PathValue("id"),
		Name:          req.Name,
		Grade:         req.Grade,
		SchoolName:    req.SchoolName,
		TargetSchool:  req.TargetSchool,
		AdmissionGoal: req.AdmissionGoal,
		LoginID:       req.LoginID,
		Subjects:      req.Subjects,
		MockSubjects:  req.MockSubjects,
	}, orchestrators.UpdateStudentDeps{StudentStore: stores.StudentStore})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStudentJSON(s))
}

func handlePromoteGrades(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Grades []string `json:"grades"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	changed, err := orchestrators.ExecutePromoteGrades(r.Context(), orchestrators.PromoteGradesInput{
		Role:   sess.Role,
		Grades: req.Grades,
	}, orchestrators.PromoteGradesDeps{StudentStore: stores.StudentStore})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"promoted": changed})
}

func handleDeleteStudents(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentIDs    []string `json:"student_ids"`
		AdminPassword string   `json:"admin_password"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	res, err := orchestrators.ExecuteDeleteStudents(r.Context(), orchestrators.DeleteStudentsInput{
		Role:          sess.Role,
		AdminPassword: req.AdminPassword,
		StudentIDs:    req.StudentIDs,
	}, orchestrators.DeleteStudentsDeps{
		AccountStore:  stores.AccountStore,
		StudentStore:  stores.StudentStore,
		ExamStore:     stores.ExamStore,
		CoachingStore: stores.CoachingStore,
		EikenStore:    stores.EikenStore,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"students":         res.Students,
		"exam_results":     res.ExamResults,
		"coaching_reports": res.CoachingReports,
		"eiken_records":    res.EikenRecords,
	})
}

// --- exams ---

type examJSON struct {
	ID              string       `json:"id"`
	StudentID       string       `json:"student_id"`
	Category        string       `json:"exam_category"`
	Name            string       `json:"exam_name"`
	Date            string       `json:"date"`
	Results         exam.Results `json:"results"`
	CreatedAt       string       `json:"created_at"`
	TeacherUsername string       `json:"teacher_username"`
	TeacherName     string       `json:"teacher_name"`
}

func toExamJSON(e exam.Result) examJSON {
	return examJSON{
		ID:              e.ID,
		StudentID:       e.StudentID,
		Category:        e.Category,
		Name:            e.Name,
		Date:            e.Date,
		Results:         e.Results,
		CreatedAt:       storage.FormatTime(e.CreatedAt),
		TeacherUsername: e.TeacherUsername,
		TeacherName:     e.TeacherName,
	}
}

func handleListExams(w http.ResponseWriter, r *http.Request) {
	exams, err := stores.ExamStore.ListByStudent(r.Context(), r.PathValue("id"))
	if err != nil {
		httpError(w, err)
		return
	}
	out := make([]examJSON, 0, len(exams))
	for _, e := range exams {
		out = append(out, toExamJSON(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func handleRecordExam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentID string       `json:"student_id"`
		Category  string       `json:"exam_category"`
		Name      string       `json:"exam_name"`
		Date      string       `json:"date"`
		Results   exam.Results `json:"results"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	teacherUsername, teacherName := sessionTeacher(r)

	e, err := orchestrators.ExecuteRecordExam(r.Context(), orchestrators.RecordExamInput{
		StudentID:       req.StudentID,
		Category:        req.Category,
		Name:            req.Name,
		Date:            req.Date,
		Results:         req.Results,
		TeacherUsername: teacherUsername,
		TeacherName:     teacherName,
	}, orchestrators.RecordExamDeps{
		ExamStore:    stores.ExamStore,
		StudentStore: stores.StudentStore,
		NextID:       nextRecordID(storage.TableExamResults),
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExamJSON(e))
}

func handleUpdateExam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string       `json:"exam_category"`
		Name     string       `json:"exam_name"`
		Date     string       `json:"date"`
		Results  exam.Results `json:"results"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	teacherUsername, teacherName := sessionTeacher(r)

	e, err := orchestrators.ExecuteUpdateExam(r.Context(), orchestrators.UpdateExamInput{
		ID:              r.PathValue("id"),
		Category:        req.Category,
		Name:            req.Name,
		Date:            req.Date,
		Results:         req.Results,
		TeacherUsername: teacherUsername,
		TeacherName:     teacherName,
	}, orchestrators.UpdateExamDeps{ExamStore: stores.ExamStore})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExamJSON(e))
}

func handleDeleteExam(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteExam(r.Context(), r.PathValue("id"),
		orchestrators.DeleteExamDeps{ExamStore: stores.ExamStore})
	if err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- coaching reports ---

type coachingJSON struct {
	ID              string               `json:"id"`
	StudentID       string               `json:"student_id"`
	Date            string               `json:"date"`
	StudentEval     coaching.StudentEval `json:"student_eval"`
	TeacherEval     coaching.TeacherEval `json:"teacher_eval"`
	Schedule        coaching.Schedule    `json:"study_schedule"`
	Targets         []string             `json:"study_targets"`
	CreatedAt       string               `json:"created_at"`
	UpdatedAt       string               `json:"updated_at"`
	TeacherUsername string               `json:"teacher_username"`
	TeacherName     string               `json:"teacher_name"`
}

func toCoachingJSON(r coaching.Report) coachingJSON {
	return coachingJSON{
		ID:              r.ID,
		StudentID:       r.StudentID,
		Date:            r.Date,
		StudentEval:     r.StudentEval,
		TeacherEval:     r.TeacherEval,
		Schedule:        r.Schedule,
		Targets:         r.Targets[:],
		CreatedAt:       storage.FormatTime(r.CreatedAt),
		UpdatedAt:       storage.FormatTime(r.UpdatedAt),
		TeacherUsername: r.TeacherUsername,
		TeacherName:     r.TeacherName,
	}
}

func handleListCoaching(w http.ResponseWriter, r *http.Request) {
	reports, err := stores.CoachingStore.ListByStudent(r.Context(), r.PathValue("id"))
	if err != nil {
		httpError(w, err)
		return
	}
	out := make([]coachingJSON, 0, len(reports))
	for _, rep := range reports {
		out = append(out, toCoachingJSON(rep))
	}
	writeJSON(w, http.StatusOK, out)
}

func handleSaveCoaching(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentID   string               `json:"student_id"`
		Date        string               `json:"date"`
		StudentEval coaching.StudentEval `json:"student_eval"`
		TeacherEval coaching.TeacherEval `json:"teacher_eval"`
		Schedule    coaching.Schedule    `json:"study_schedule"`
		Targets     []string             `json:"study_targets"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Targets) > coaching.TargetCount {
		httpError(w, coaching.ErrTooManyTargets)
		return
	}
	teacherUsername, teacherName := sessionTeacher(r)

	var targets [coaching.TargetCount]string
	copy(targets[:], req.Targets)

	res, err := orchestrators.ExecuteSaveCoachingReport(r.Context(), orchestrators.SaveCoachingReportInput{
		StudentID:       req.StudentID,
		Date:            req.Date,
		StudentEval:     req.StudentEval,
		TeacherEval:     req.TeacherEval,
		Schedule:        req.Schedule,
		Targets:         targets,
		TeacherUsername: teacherUsername,
		TeacherName:     teacherName,
	}, orchestrators.SaveCoachingReportDeps{
		CoachingStore: stores.CoachingStore,
		NextID:        nextRecordID(storage.TableCoachingReports),
	})
	if err != nil {
		httpError(w, err)
		return
	}

	status := http.StatusCreated
	if res.Updated {
		status = http.StatusOK
	}
	writeJSON(w, status, toCoachingJSON(res.Report))
}

func handleDeleteCoaching(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteCoachingReport(r.Context(), r.PathValue("id"),
		orchestrators.DeleteCoachingReportDeps{CoachingStore: stores.CoachingStore})
	if err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- eiken records ---

type eikenJSON struct {
	ID              string       `json:"id"`
	StudentID       string       `json:"student_id"`
	TargetGrade     string       `json:"target_grade"`
	ExamDate        string       `json:"exam_date"`
	PracticeDate    string       `json:"practice_date"`
	Category        string       `json:"category"`
	Scores          eiken.Scores `json:"scores"`
	CreatedAt       string       `json:"created_at"`
	UpdatedAt       string       `json:"updated_at"`
	TeacherUsername string       `json:"teacher_username"`
	TeacherName     string       `json:"teacher_name"`
}

func toEikenJSON(r eiken.Record) eikenJSON {
	return eikenJSON{
		ID:              r.ID,
		StudentID:       r.StudentID,
		TargetGrade:     r.TargetGrade,
		ExamDate:        r.ExamDate,
		PracticeDate:    r.PracticeDate,
		Category:        r.Category,
		Scores:          r.Scores,
		CreatedAt:       storage.FormatTime(r.CreatedAt),
		UpdatedAt:       storage.FormatTime(r.UpdatedAt),
		TeacherUsername: r.TeacherUsername,
		TeacherName:     r.TeacherName,
	}
}

type eikenRequest struct {
	StudentID    string `json:"student_id"`
	TargetGrade  string `json:"target_grade"`
	ExamDate     string `json:"exam_date"`
	PracticeDate string `json:"practice_date"`
	Category     string `json:"category"`
	Reading      int    `json:"reading_correct"`
	Listening    int    `json:"listening_correct"`
	Writing      int    `json:"writing_correct"`
	Speaking     int    `json:"speaking_correct"`
}

func handleListEiken(w http.ResponseWriter, r *http.Request) {
	records, err := stores.EikenStore.ListByStudent(r.Context(), r.PathValue("id"))
	if err != nil {
		httpError(w, err)
		return
	}
	out := make([]eikenJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, toEikenJSON(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func handleRecordEiken(w http.ResponseWriter, r *http.Request) {
	var req eikenRequest
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	teacherUsername, teacherName := sessionTeacher(r)

	rec, err := orchestrators.ExecuteRecordEiken(r.Context(), orchestrators.RecordEikenInput{
		StudentID:    req.StudentID,
		TargetGrade:  req.TargetGrade,
		ExamDate:     req.ExamDate,
		PracticeDate: req.PracticeDate,
		Category:     req.Category,
		Corrects: eiken.Corrects{
			Reading:   req.Reading,
			Listening: req.Listening,
			Writing:   req.Writing,
			Speaking:  req.Speaking,
		},
		TeacherUsername: teacherUsername,
		TeacherName:     teacherName,
	}, orchestrators.RecordEikenDeps{
		EikenStore: stores.EikenStore,
		NextID:     nextRecordID(storage.TableEikenRecords),
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEikenJSON(rec))
}

func handleUpdateEiken(w http.ResponseWriter, r *http.Request) {
	var req eikenRequest
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	teacherUsername, teacherName := sessionTeacher(r)

	rec, err := orchestrators.ExecuteUpdateEiken(r.Context(), orchestrators.UpdateEikenInput{
		ID:              r.PathValue("id"),
		TargetGrade:     req.TargetGrade,
		ExamDate:        req.ExamDate,
		PracticeDate:    req.PracticeDate,
		Category:        req.Category,
		TeacherUsername: teacherUsername,
		TeacherName:     teacherName,
		Corrects: eiken.Corrects{
			Reading:   req.Reading,
			Listening: req.Listening,
			Writing:   req.Writing,
			Speaking:  req.Speaking,
		},
	}, orchestrators.UpdateEikenDeps{EikenStore: stores.EikenStore})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEikenJSON(rec))
}

func handleDeleteEiken(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteEiken(r.Context(), r.PathValue("id"),
		orchestrators.DeleteEikenDeps{EikenStore: stores.EikenStore})
	if err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- projections ---

func handleScoreTrend(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryGetScoreTrend(r.Context(), projections.GetScoreTrendQuery{
		StudentID: r.PathValue("id"),
	}, projections.GetScoreTrendDeps{ExamStore: stores.ExamStore})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func handleEikenProgress(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryGetEikenProgress(r.Context(), projections.GetEikenProgressQuery{
		StudentID: r.PathValue("id"),
	}, projections.GetEikenProgressDeps{EikenStore: stores.EikenStore})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "year must be a number", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "month must be 1..12", http.StatusBadRequest)
		return
	}

	res, err := projections.QueryGetMonthlySummary(r.Context(), projections.GetMonthlySummaryQuery{
		StudentID: r.PathValue("id"),
		Year:      year,
		Month:     month,
	}, projections.GetMonthlySummaryDeps{
		CoachingStore: stores.CoachingStore,
		EikenStore:    stores.EikenStore,
		ExamStore:     stores.ExamStore,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// --- accounts ---

type accountJSON struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := stores.AccountStore.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	out := make([]accountJSON, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountJSON{
			Username: a.Username,
			Name:     a.Name,
			Role:     account.NormalizeRole(a.Role),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func handleCreateTeacher(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	acct, err := orchestrators.ExecuteCreateTeacher(r.Context(), orchestrators.CreateTeacherInput{
		Role:     sess.Role,
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	}, orchestrators.CreateTeacherDeps{AccountStore: stores.AccountStore})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, accountJSON{
		Username: acct.Username,
		Name:     acct.Name,
		Role:     acct.Role,
	})
}

func handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewPassword string `json:"new_password"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	err := orchestrators.ExecuteResetPassword(r.Context(), orchestrators.ResetPasswordInput{
		Role:        sess.Role,
		Username:    r.PathValue("username"),
		NewPassword: req.NewPassword,
	}, orchestrators.ResetPasswordDeps{AccountStore: stores.AccountStore})
	if err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	err := orchestrators.ExecuteDeleteAccount(r.Context(), orchestrators.DeleteAccountInput{
		Role:     sess.Role,
		Username: r.PathValue("username"),
	}, orchestrators.DeleteAccountDeps{AccountStore: stores.AccountStore})
	if err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
