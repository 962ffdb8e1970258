package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/service/assignments"
)

// assignmentsService defines the minimal interface needed by AssignmentsHandler.
type assignmentsService interface {
	Create(ctx context.Context, input assignments.CreateInput) (*domain.Assignment, error)
	Remove(ctx context.Context, input assignments.RemoveInput) (*domain.RemovedAssignment, error)
	ToggleAccountingDone(ctx context.Context, clientID, employeeID uuid.UUID, year, month string, done bool) ([]domain.Assignment, error)
	ListForEmployee(ctx context.Context, employeeID uuid.UUID, f assignments.ListFilter) ([]domain.Assignment, error)
	ListForClient(ctx context.Context, clientID uuid.UUID, f assignments.ListFilter) ([]domain.Assignment, error)
	ListRemoved(ctx context.Context, f domain.RemovalFilter) ([]domain.RemovedAssignment, error)
}

// AssignmentsHandler serves employee-to-client assignment endpoints.
type AssignmentsHandler struct {
	svc assignmentsService
	log *slog.Logger
}

// NewAssignmentsHandler creates an AssignmentsHandler.
func NewAssignmentsHandler(svc assignmentsService, logger *slog.Logger) *AssignmentsHandler {
	return &AssignmentsHandler{svc: svc, log: logger.With("handler", "assignments")}
}

type assignmentRequest struct {
	ClientID   string `json:"clientId"`
	EmployeeID string `json:"employeeId"`
	Year       string `json:"year"`
	Month      string `json:"month"`
	Task       string `json:"task"`
	Reason     string `json:"reason,omitempty"`
}

func (req assignmentRequest) ids() (uuid.UUID, uuid.UUID, error) {
	var errs []domain.FieldError
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "clientId", Message: "must be a UUID"})
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "employeeId", Message: "must be a UUID"})
	}
	if len(errs) > 0 {
		return uuid.Nil, uuid.Nil, domain.NewValidationErrors(errs)
	}
	return clientID, employeeID, nil
}

// Create handles POST /assignments.
func (h *AssignmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req assignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	clientID, employeeID, err := req.ids()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	created, err := h.svc.Create(r.Context(), assignments.CreateInput{
		ClientID:   clientID,
		EmployeeID: employeeID,
		Year:       req.Year,
		Month:      req.Month,
		Task:       domain.TaskType(req.Task),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Remove handles POST /assignments/remove. The removed assignment is archived
// and returned.
func (h *AssignmentsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req assignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	clientID, employeeID, err := req.ids()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	removed, err := h.svc.Remove(r.Context(), assignments.RemoveInput{
		ClientID:   clientID,
		EmployeeID: employeeID,
		Year:       req.Year,
		Month:      req.Month,
		Task:       domain.TaskType(req.Task),
		Reason:     req.Reason,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, removed)
}

type toggleDoneRequest struct {
	ClientID   string `json:"clientId"`
	EmployeeID string `json:"employeeId"`
	Year       string `json:"year"`
	Month      string `json:"month"`
	Done       bool   `json:"done"`
}

// ToggleAccountingDone handles PATCH /assignments/accounting-done.
func (h *AssignmentsHandler) ToggleAccountingDone(w http.ResponseWriter, r *http.Request) {
	var req toggleDoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ids := assignmentRequest{ClientID: req.ClientID, EmployeeID: req.EmployeeID}
	clientID, employeeID, err := ids.ids()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	updated, err := h.svc.ToggleAccountingDone(r.Context(), clientID, employeeID, req.Year, req.Month, req.Done)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func listFilterParams(r *http.Request) assignments.ListFilter {
	q := r.URL.Query()
	includeRemoved, _ := strconv.ParseBool(q.Get("includeRemoved"))
	return assignments.ListFilter{
		Year:           q.Get("year"),
		Month:          q.Get("month"),
		Task:           domain.TaskType(q.Get("task")),
		IncludeRemoved: includeRemoved,
	}
}

// ListForEmployee handles GET /employees/{id}/assignments.
func (h *AssignmentsHandler) ListForEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	list, err := h.svc.ListForEmployee(r.Context(), id, listFilterParams(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// ListForClient handles GET /clients/{id}/assignments.
func (h *AssignmentsHandler) ListForClient(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	list, err := h.svc.ListForClient(r.Context(), id, listFilterParams(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// ListRemoved handles GET /assignments/removed.
func (h *AssignmentsHandler) ListRemoved(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.RemovalFilter{
		Year:  q.Get("year"),
		Month: q.Get("month"),
		Task:  domain.TaskType(q.Get("task")),
	}
	if v := q.Get("clientId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid clientId parameter")
			return
		}
		f.ClientID = id
	}
	if v := q.Get("employeeId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid employeeId parameter")
			return
		}
		f.EmployeeID = id
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		f.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset parameter")
			return
		}
		f.Offset = n
	}

	list, err := h.svc.ListRemoved(r.Context(), f)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}
