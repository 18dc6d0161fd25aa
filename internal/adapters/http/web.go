// Package web exposes the JSON API over the application layer. It carries
// no HTML: report rendering and charting live outside this process and
// consume the projection payloads as-is.
package web

import (
	"net/http"
	"time"

	"ubase/internal/adapters/http/middleware"
	"ubase/internal/adapters/storage"
	"ubase/internal/adapters/storage/accountstore"
	"ubase/internal/adapters/storage/coachingstore"
	"ubase/internal/adapters/storage/eikenstore"
	"ubase/internal/adapters/storage/examstore"
	"ubase/internal/adapters/storage/studentstore"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore  accountstore.Store
	StudentStore  studentstore.Store
	ExamStore     examstore.Store
	CoachingStore coachingstore.Store
	EikenStore    eikenstore.Store

	// Tables feeds the id allocator, which scans raw rows across tables.
	Tables *storage.TableClient
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()

	mux := http.NewServeMux()
	registerRoutes(mux)

	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: RequestID -> Logging -> Auth -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logging,
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}

func registerRoutes(mux *http.ServeMux) {
	auth := middleware.RequireAuth
	master := middleware.RequireMaster

	mux.HandleFunc("POST /api/login", handleLogin)
	mux.Handle("POST /api/logout", auth(http.HandlerFunc(handleLogout)))
	mux.Handle("GET /api/session", auth(http.HandlerFunc(handleSession)))

	mux.Handle("GET /api/catalog", auth(http.HandlerFunc(handleCatalog)))

	mux.Handle("GET /api/students", auth(http.HandlerFunc(handleListStudents)))
	mux.Handle("POST /api/students", auth(http.HandlerFunc(handleRegisterStudent)))
	mux.Handle("GET /api/students/{id}", auth(http.HandlerFunc(handleGetStudent)))
	mux.Handle("PUT /api/students/{id}", auth(http.HandlerFunc(handleUpdateStudent)))
	mux.Handle("POST /api/students/promote", master(http.HandlerFunc(handlePromoteGrades)))
	mux.Handle("POST /api/students/delete", master(http.HandlerFunc(handleDeleteStudents)))

	mux.Handle("GET /api/students/{id}/exams", auth(http.HandlerFunc(handleListExams)))
	mux.Handle("POST /api/exams", auth(http.HandlerFunc(handleRecordExam)))
	mux.Handle("PUT /api/exams/{id}", auth(http.HandlerFunc(handleUpdateExam)))
	mux.Handle("DELETE /api/exams/{id}", auth(http.HandlerFunc(handleDeleteExam)))

	mux.Handle("GET /api/students/{id}/coaching", auth(http.HandlerFunc(handleListCoaching)))
	mux.Handle("POST /api/coaching", auth(http.HandlerFunc(handleSaveCoaching)))
	mux.Handle("DELETE /api/coaching/{id}", auth(http.HandlerFunc(handleDeleteCoaching)))

	mux.Handle("GET /api/students/{id}/eiken", auth(http.HandlerFunc(handleListEiken)))
	mux.Handle("POST /api/eiken", auth(http.HandlerFunc(handleRecordEiken)))
	mux.Handle("PUT /api/eiken/{id}", auth(http.HandlerFunc(handleUpdateEiken)))
	mux.Handle("DELETE /api/eiken/{id}", auth(http.HandlerFunc(handleDeleteEiken)))

	mux.Handle("GET /api/students/{id}/score-trend", auth(http.HandlerFunc(handleScoreTrend)))
	mux.Handle("GET /api/students/{id}/eiken-progress", auth(http.HandlerFunc(handleEikenProgress)))
	mux.Handle("GET /api/students/{id}/monthly-summary", auth(http.HandlerFunc(handleMonthlySummary)))

	mux.Handle("GET /api/accounts", master(http.HandlerFunc(handleListAccounts)))
	mux.Handle("POST /api/accounts", master(http.HandlerFunc(handleCreateTeacher)))
	mux.Handle("POST /api/accounts/{username}/password", master(http.HandlerFunc(handleResetPassword)))
	mux.Handle("DELETE /api/accounts/{username}", master(http.HandlerFunc(handleDeleteAccount)))
}
