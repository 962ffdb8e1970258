package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/service/notes"
)

type notesServiceMock struct {
	MarkNoteReadFunc        func(ctx context.Context, clientID uuid.UUID, path string) error
	MarkAllReadFunc         func(ctx context.Context, clientID uuid.UUID, buckets []domain.Bucket) (int, error)
	MarkAllReadGloballyFunc func(ctx context.Context, buckets []domain.Bucket) (int, error)
	CountUnviewedFunc       func(ctx context.Context, clientID uuid.UUID, buckets []domain.Bucket) (notes.UnviewedCount, error)
	ListNotesFunc           func(ctx context.Context, clientID uuid.UUID, buckets []domain.Bucket) ([]notes.NoteEntry, error)
}

func (m *notesServiceMock) MarkNoteRead(ctx context.Context, clientID uuid.UUID, path string) error {
	return m.MarkNoteReadFunc(ctx, clientID, path)
}

func (m *notesServiceMock) MarkAllRead(ctx context.Context, clientID uuid.UUID, buckets []domain.Bucket) (int, error) {
	return m.MarkAllReadFunc(ctx, clientID, buckets)
}

func (m *notesServiceMock) MarkAllReadGlobally(ctx context.Context, buckets []domain.Bucket) (int, error) {
	return m.MarkAllReadGloballyFunc(ctx, buckets)
}

func (m *notesServiceMock) CountUnviewed(ctx context.Context, clientID uuid.UUID, buckets []domain.Bucket) (notes.UnviewedCount, error) {
	return m.CountUnviewedFunc(ctx, clientID, buckets)
}

func (m *notesServiceMock) ListNotes(ctx context.Context, clientID uuid.UUID, buckets []domain.Bucket) ([]notes.NoteEntry, error) {
	return m.ListNotesFunc(ctx, clientID, buckets)
}

func TestMarkNoteRead_PassesPathSegment(t *testing.T) {
	clientID := uuid.New()
	var gotPath string
	svc := &notesServiceMock{
		MarkNoteReadFunc: func(ctx context.Context, id uuid.UUID, path string) error {
			assert.Equal(t, clientID, id)
			gotPath = path
			return nil
		},
	}
	h := NewNotesHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/clients/"+clientID.String()+"/notes/2026_2_sales_category_0/read", nil)
	req.SetPathValue("id", clientID.String())
	req.SetPathValue("path", "2026_2_sales_category_0")
	rec := httptest.NewRecorder()

	h.MarkNoteRead(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026_2_sales_category_0", gotPath)
}

func TestMarkNoteRead_AlreadyRead404(t *testing.T) {
	svc := &notesServiceMock{
		MarkNoteReadFunc: func(ctx context.Context, id uuid.UUID, path string) error {
			return domain.ErrNotFound
		},
	}
	h := NewNotesHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/clients/x/notes/p/read", nil)
	req.SetPathValue("id", uuid.NewString())
	req.SetPathValue("path", "2026_2_sales_category_9")
	rec := httptest.NewRecorder()

	h.MarkNoteRead(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarkAllRead_RequiresBuckets(t *testing.T) {
	h := NewNotesHandler(&notesServiceMock{}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/clients/x/notes/read-all", strings.NewReader(`{"buckets":[]}`))
	req.SetPathValue("id", uuid.NewString())
	rec := httptest.NewRecorder()

	h.MarkAllRead(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkAllReadGlobally_AdminOnly(t *testing.T) {
	called := false
	svc := &notesServiceMock{
		MarkAllReadGloballyFunc: func(ctx context.Context, buckets []domain.Bucket) (int, error) {
			called = true
			return 0, nil
		},
	}
	h := NewNotesHandler(svc, discardLogger())

	body := `{"buckets":[{"year":2026,"month":2}]}`
	req := asEmployee(httptest.NewRequest(http.MethodPost, "/notes/read-all", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	h.MarkAllReadGlobally(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestMarkAllReadGlobally_ReportsMarked(t *testing.T) {
	svc := &notesServiceMock{
		MarkAllReadGloballyFunc: func(ctx context.Context, buckets []domain.Bucket) (int, error) {
			assert.Equal(t, []domain.Bucket{{Year: 2026, Month: 2}}, buckets)
			return 6, nil
		},
	}
	h := NewNotesHandler(svc, discardLogger())

	body := `{"buckets":[{"year":2026,"month":2}]}`
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/notes/read-all", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	h.MarkAllReadGlobally(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"marked":6}`, rec.Body.String())
}

func TestCountUnviewed_BucketsFromQuery(t *testing.T) {
	clientID := uuid.New()
	svc := &notesServiceMock{
		CountUnviewedFunc: func(ctx context.Context, id uuid.UUID, buckets []domain.Bucket) (notes.UnviewedCount, error) {
			assert.Equal(t, []domain.Bucket{{Year: 2026, Month: 1}, {Year: 2026, Month: 2}}, buckets)
			return notes.UnviewedCount{Total: 4, ByBucket: map[string]int{"2026-01": 1, "2026-02": 3}}, nil
		},
	}
	h := NewNotesHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/clients/x/notes/unviewed?bucket=2026-1&bucket=2026-2", nil)
	req.SetPathValue("id", clientID.String())
	rec := httptest.NewRecorder()

	h.CountUnviewed(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":4`)
}
