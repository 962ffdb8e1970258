package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/auth"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/config"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/transport/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health      *HealthHandler
	Directory   *DirectoryHandler
	Documents   *DocumentsHandler
	Notes       *NotesHandler
	Assignments *AssignmentsHandler
	Dashboard   *DashboardHandler
}

// TokenValidator verifies bearer tokens for the auth middleware.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Identity, error)
}

// NewRouter mounts all REST routes and wraps them in the standard middleware
// chain.
func NewRouter(h Handlers, validator TokenValidator, limiter *middleware.RateLimiter, cfg *config.Config, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Probes
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	// Directory
	mux.HandleFunc("POST /clients", h.Directory.CreateClient)
	mux.HandleFunc("GET /clients", h.Directory.ListClients)
	mux.HandleFunc("GET /clients/{id}", h.Directory.GetClient)
	mux.HandleFunc("PATCH /clients/{id}/active", h.Directory.SetClientActive)
	mux.HandleFunc("POST /employees", h.Directory.CreateEmployee)
	mux.HandleFunc("GET /employees", h.Directory.ListEmployees)
	mux.HandleFunc("GET /employees/{id}", h.Directory.GetEmployee)
	mux.HandleFunc("PATCH /employees/{id}/active", h.Directory.SetEmployeeActive)

	// Documents
	mux.HandleFunc("PUT /clients/{id}/documents/{year}/{month}", h.Documents.GetOrCreateMonth)
	mux.HandleFunc("POST /clients/{id}/documents/{year}/{month}/files", h.Documents.AddFile)
	mux.HandleFunc("POST /clients/{id}/documents/{year}/{month}/notes", h.Documents.AddMonthNote)
	mux.HandleFunc("POST /clients/{id}/documents/{year}/{month}/category-notes", h.Documents.AddCategoryNote)
	mux.HandleFunc("POST /clients/{id}/documents/{year}/{month}/file-notes", h.Documents.AddFileNote)
	mux.HandleFunc("PATCH /clients/{id}/documents/{year}/{month}/lock", h.Documents.SetLock)
	mux.HandleFunc("PATCH /clients/{id}/documents/{year}/{month}/category-lock", h.Documents.SetCategoryLock)
	mux.HandleFunc("PATCH /clients/{id}/documents/{year}/{month}/accounting-done", h.Documents.SetAccountingDone)

	// Notes
	mux.HandleFunc("GET /clients/{id}/notes", h.Notes.ListNotes)
	mux.HandleFunc("GET /clients/{id}/notes/unviewed", h.Notes.CountUnviewed)
	mux.HandleFunc("POST /clients/{id}/notes/{path}/read", h.Notes.MarkNoteRead)
	mux.HandleFunc("POST /clients/{id}/notes/read-all", h.Notes.MarkAllRead)
	mux.HandleFunc("POST /notes/read-all", h.Notes.MarkAllReadGlobally)

	// Assignments
	mux.HandleFunc("POST /assignments", h.Assignments.Create)
	mux.HandleFunc("POST /assignments/remove", h.Assignments.Remove)
	mux.HandleFunc("PATCH /assignments/accounting-done", h.Assignments.ToggleAccountingDone)
	mux.HandleFunc("GET /assignments/removed", h.Assignments.ListRemoved)
	mux.HandleFunc("GET /employees/{id}/assignments", h.Assignments.ListForEmployee)
	mux.HandleFunc("GET /clients/{id}/assignments", h.Assignments.ListForClient)

	// Dashboard
	mux.HandleFunc("GET /dashboard", h.Dashboard.Overview)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimitPerMinute),
		middleware.Auth(validator),
	)

	return chain(mux)
}
