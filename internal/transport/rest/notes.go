package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/service/notes"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/transport/middleware"
)

// notesService defines the minimal interface needed by NotesHandler.
type notesService interface {
	MarkNoteRead(ctx context.Context, clientID uuid.UUID, path string) error
	MarkAllRead(ctx context.Context, clientID uuid.UUID, buckets []domain.Bucket) (int, error)
	MarkAllReadGlobally(ctx context.Context, buckets []domain.Bucket) (int, error)
	CountUnviewed(ctx context.Context, clientID uuid.UUID, buckets []domain.Bucket) (notes.UnviewedCount, error)
	ListNotes(ctx context.Context, clientID uuid.UUID, buckets []domain.Bucket) ([]notes.NoteEntry, error)
}

// NotesHandler serves note read-tracking endpoints.
type NotesHandler struct {
	svc notesService
	log *slog.Logger
}

// NewNotesHandler creates a NotesHandler.
func NewNotesHandler(svc notesService, logger *slog.Logger) *NotesHandler {
	return &NotesHandler{svc: svc, log: logger.With("handler", "notes")}
}

func clientIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "must be a UUID")
	}
	return id, nil
}

// ListNotes handles GET /clients/{id}/notes?bucket=2026-2&bucket=2026-1.
func (h *NotesHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	clientID, err := clientIDParam(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	buckets, err := bucketParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(buckets) == 0 {
		writeError(w, http.StatusBadRequest, "at least one bucket parameter is required")
		return
	}

	entries, err := h.svc.ListNotes(r.Context(), clientID, buckets)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// CountUnviewed handles GET /clients/{id}/notes/unviewed?bucket=2026-2.
func (h *NotesHandler) CountUnviewed(w http.ResponseWriter, r *http.Request) {
	clientID, err := clientIDParam(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	buckets, err := bucketParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(buckets) == 0 {
		writeError(w, http.StatusBadRequest, "at least one bucket parameter is required")
		return
	}

	count, err := h.svc.CountUnviewed(r.Context(), clientID, buckets)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, count)
}

// MarkNoteRead handles POST /clients/{id}/notes/{path}/read. The path segment
// is the note's positional address, e.g. "2026_2_sales_category_0".
func (h *NotesHandler) MarkNoteRead(w http.ResponseWriter, r *http.Request) {
	clientID, err := clientIDParam(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.MarkNoteRead(r.Context(), clientID, r.PathValue("path")); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type markAllRequest struct {
	Buckets []bucketRequest `json:"buckets"`
}

type markAllResponse struct {
	Marked int `json:"marked"`
}

// MarkAllRead handles POST /clients/{id}/notes/read-all.
func (h *NotesHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	clientID, err := clientIDParam(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req markAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Buckets) == 0 {
		writeError(w, http.StatusBadRequest, "at least one bucket is required")
		return
	}

	marked, err := h.svc.MarkAllRead(r.Context(), clientID, toBuckets(req.Buckets))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, markAllResponse{Marked: marked})
}

// MarkAllReadGlobally handles POST /notes/read-all. Admin only: it walks
// every active client.
func (h *NotesHandler) MarkAllReadGlobally(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req markAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Buckets) == 0 {
		writeError(w, http.StatusBadRequest, "at least one bucket is required")
		return
	}

	marked, err := h.svc.MarkAllReadGlobally(r.Context(), toBuckets(req.Buckets))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, markAllResponse{Marked: marked})
}
