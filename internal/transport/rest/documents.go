package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/service/documents"
)

// documentsService defines the minimal interface needed by DocumentsHandler.
type documentsService interface {
	GetOrCreateMonth(ctx context.Context, clientID uuid.UUID, year, month string) (*domain.MonthRecord, error)
	AddFile(ctx context.Context, input documents.AddFileInput) (*domain.FileRecord, error)
	AddMonthNote(ctx context.Context, clientID uuid.UUID, year, month, text string) (*domain.Note, error)
	AddCategoryNote(ctx context.Context, input documents.CategoryNoteInput) (*domain.Note, error)
	AddFileNote(ctx context.Context, input documents.FileNoteInput) (*domain.Note, error)
	SetLock(ctx context.Context, clientID uuid.UUID, year, month string, locked bool) (*domain.MonthRecord, error)
	SetCategoryLock(ctx context.Context, clientID uuid.UUID, year, month string, cat domain.CategoryType, categoryName string, locked bool) error
	SetAccountingDone(ctx context.Context, clientID uuid.UUID, year, month string, done bool) (*domain.MonthRecord, error)
}

// DocumentsHandler serves the per-client document tree endpoints. Every route
// is rooted at /clients/{id}/documents/{year}/{month}.
type DocumentsHandler struct {
	svc documentsService
	log *slog.Logger
}

// NewDocumentsHandler creates a DocumentsHandler.
func NewDocumentsHandler(svc documentsService, logger *slog.Logger) *DocumentsHandler {
	return &DocumentsHandler{svc: svc, log: logger.With("handler", "documents")}
}

// monthParams pulls the client ID and bucket keys out of the URL path.
func monthParams(r *http.Request) (uuid.UUID, string, string, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, "", "", domain.NewValidationError("id", "must be a UUID")
	}
	return id, r.PathValue("year"), r.PathValue("month"), nil
}

// GetOrCreateMonth handles PUT /clients/{id}/documents/{year}/{month}.
func (h *DocumentsHandler) GetOrCreateMonth(w http.ResponseWriter, r *http.Request) {
	clientID, year, month, err := monthParams(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	record, err := h.svc.GetOrCreateMonth(r.Context(), clientID, year, month)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

type addFileRequest struct {
	Category     string `json:"category"`
	CategoryName string `json:"categoryName"`
	FileName     string `json:"fileName"`
	URL          string `json:"url"`
	FileSize     int64  `json:"fileSize"`
	FileType     string `json:"fileType"`
}

// AddFile handles POST /clients/{id}/documents/{year}/{month}/files.
func (h *DocumentsHandler) AddFile(w http.ResponseWriter, r *http.Request) {
	clientID, year, month, err := monthParams(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req addFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	file, err := h.svc.AddFile(r.Context(), documents.AddFileInput{
		ClientID:     clientID,
		Year:         year,
		Month:        month,
		Category:     domain.CategoryType(req.Category),
		CategoryName: req.CategoryName,
		FileName:     req.FileName,
		URL:          req.URL,
		FileSize:     req.FileSize,
		FileType:     req.FileType,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, file)
}

type addNoteRequest struct {
	Category     string `json:"category,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	FileName     string `json:"fileName,omitempty"`
	Text         string `json:"text"`
}

// AddMonthNote handles POST /clients/{id}/documents/{year}/{month}/notes.
func (h *DocumentsHandler) AddMonthNote(w http.ResponseWriter, r *http.Request) {
	clientID, year, month, err := monthParams(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.svc.AddMonthNote(r.Context(), clientID, year, month, req.Text)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// AddCategoryNote handles POST /clients/{id}/documents/{year}/{month}/category-notes.
func (h *DocumentsHandler) AddCategoryNote(w http.ResponseWriter, r *http.Request) {
	clientID, year, month, err := monthParams(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.svc.AddCategoryNote(r.Context(), documents.CategoryNoteInput{
		ClientID:     clientID,
		Year:         year,
		Month:        month,
		Category:     domain.CategoryType(req.Category),
		CategoryName: req.CategoryName,
		Text:         req.Text,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// AddFileNote handles POST /clients/{id}/documents/{year}/{month}/file-notes.
func (h *DocumentsHandler) AddFileNote(w http.ResponseWriter, r *http.Request) {
	clientID, year, month, err := monthParams(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.svc.AddFileNote(r.Context(), documents.FileNoteInput{
		ClientID:     clientID,
		Year:         year,
		Month:        month,
		Category:     domain.CategoryType(req.Category),
		CategoryName: req.CategoryName,
		FileName:     req.FileName,
		Text:         req.Text,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

type setLockRequest struct {
	Category     string `json:"category,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	Locked       bool   `json:"locked"`
}

// SetLock handles PATCH /clients/{id}/documents/{year}/{month}/lock.
func (h *DocumentsHandler) SetLock(w http.ResponseWriter, r *http.Request) {
	clientID, year, month, err := monthParams(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req setLockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.svc.SetLock(r.Context(), clientID, year, month, req.Locked)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// SetCategoryLock handles PATCH /clients/{id}/documents/{year}/{month}/category-lock.
func (h *DocumentsHandler) SetCategoryLock(w http.ResponseWriter, r *http.Request) {
	clientID, year, month, err := monthParams(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req setLockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.svc.SetCategoryLock(r.Context(), clientID, year, month,
		domain.CategoryType(req.Category), req.CategoryName, req.Locked)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type setAccountingDoneRequest struct {
	Done bool `json:"done"`
}

// SetAccountingDone handles PATCH /clients/{id}/documents/{year}/{month}/accounting-done.
func (h *DocumentsHandler) SetAccountingDone(w http.ResponseWriter, r *http.Request) {
	clientID, year, month, err := monthParams(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req setAccountingDoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.svc.SetAccountingDone(r.Context(), clientID, year, month, req.Done)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}
