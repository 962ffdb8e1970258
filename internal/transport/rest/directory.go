package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/transport/middleware"
)

// directoryService defines the minimal interface needed by DirectoryHandler.
type directoryService interface {
	CreateClient(ctx context.Context, name, email, company string) (*domain.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	ListClients(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Client, error)
	SetClientActive(ctx context.Context, id uuid.UUID, active bool) error

	CreateEmployee(ctx context.Context, name, email string, role domain.ActorRole) (*domain.Employee, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	ListEmployees(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Employee, error)
	SetEmployeeActive(ctx context.Context, id uuid.UUID, active bool) error
}

// DirectoryHandler serves client and employee roster endpoints.
type DirectoryHandler struct {
	svc directoryService
	log *slog.Logger
}

// NewDirectoryHandler creates a DirectoryHandler.
func NewDirectoryHandler(svc directoryService, logger *slog.Logger) *DirectoryHandler {
	return &DirectoryHandler{svc: svc, log: logger.With("handler", "directory")}
}

type createClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
}

type createEmployeeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// CreateClient handles POST /clients.
func (h *DirectoryHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	client, err := h.svc.CreateClient(r.Context(), req.Name, req.Email, req.Company)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, client)
}

// GetClient handles GET /clients/{id}.
func (h *DirectoryHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	client, err := h.svc.GetClient(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, client)
}

// ListClients handles GET /clients?after=<uuid>&limit=<n>.
func (h *DirectoryHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	afterID, limit, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	clients, err := h.svc.ListClients(r.Context(), afterID, limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, clients)
}

// SetClientActive handles PATCH /clients/{id}/active.
func (h *DirectoryHandler) SetClientActive(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SetClientActive(r.Context(), id, req.Active); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateEmployee handles POST /employees.
func (h *DirectoryHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	employee, err := h.svc.CreateEmployee(r.Context(), req.Name, req.Email, domain.ActorRole(req.Role))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, employee)
}

// GetEmployee handles GET /employees/{id}.
func (h *DirectoryHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	employee, err := h.svc.GetEmployee(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

// ListEmployees handles GET /employees?after=<uuid>&limit=<n>.
func (h *DirectoryHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	afterID, limit, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	employees, err := h.svc.ListEmployees(r.Context(), afterID, limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, employees)
}

// SetEmployeeActive handles PATCH /employees/{id}/active.
func (h *DirectoryHandler) SetEmployeeActive(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SetEmployeeActive(r.Context(), id, req.Active); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
