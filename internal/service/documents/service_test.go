package documents

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockClientRepo struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	SaveFunc    func(ctx context.Context, c *domain.Client) error

	saved []*domain.Client
}

func (m *mockClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockClientRepo) Save(ctx context.Context, c *domain.Client) error {
	m.saved = append(m.saved, c)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

type mockActivityRepo struct {
	LogFunc func(ctx context.Context, rec domain.ActivityRecord) error

	logged []domain.ActivityRecord
}

func (m *mockActivityRepo) Log(ctx context.Context, rec domain.ActivityRecord) error {
	m.logged = append(m.logged, rec)
	if m.LogFunc != nil {
		return m.LogFunc(ctx, rec)
	}
	return nil
}

// ===========================================================================
// Helpers
// ===========================================================================

var testTime = time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)

func newTestService(clients *mockClientRepo, activity *mockActivityRepo) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewService(logger, clients, activity)
	s.now = func() time.Time { return testTime }
	return s
}

func adminCtx() context.Context {
	return ctxutil.WithActor(context.Background(), ctxutil.Actor{
		ID:   uuid.New(),
		Role: "admin",
		Name: "Jane Admin",
	})
}

func repoFor(c *domain.Client) *mockClientRepo {
	return &mockClientRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
			if id != c.ID {
				return nil, domain.ErrNotFound
			}
			return c, nil
		},
	}
}

// ===========================================================================
// GetOrCreateMonth
// ===========================================================================

func TestGetOrCreateMonth_CreatesLazily(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	clients := repoFor(c)
	activity := &mockActivityRepo{}
	s := newTestService(clients, activity)

	rec, err := s.GetOrCreateMonth(adminCtx(), c.ID, "2026", "2")
	require.NoError(t, err)
	assert.False(t, rec.IsLocked)
	assert.False(t, rec.AccountingDone)
	assert.Empty(t, rec.Sales.Files)

	require.NotNil(t, c.Documents.Month("2026", "2"))
	require.Len(t, clients.saved, 1)
	require.Len(t, activity.logged, 1)
	assert.Equal(t, "document.month.create", activity.logged[0].Action)
}

func TestGetOrCreateMonth_NormalizesKeys(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	s := newTestService(repoFor(c), &mockActivityRepo{})

	_, err := s.GetOrCreateMonth(adminCtx(), c.ID, "2026", "02")
	require.NoError(t, err)
	assert.NotNil(t, c.Documents.Month("2026", "2"), "leading zero collapses to the canonical key")
}

func TestGetOrCreateMonth_InvalidBucket(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	s := newTestService(repoFor(c), &mockActivityRepo{})

	_, err := s.GetOrCreateMonth(adminCtx(), c.ID, "2026", "13")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetOrCreateMonth_Unauthorized(t *testing.T) {
	s := newTestService(&mockClientRepo{}, &mockActivityRepo{})

	_, err := s.GetOrCreateMonth(context.Background(), uuid.New(), "2026", "2")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ===========================================================================
// AddFile
// ===========================================================================

func TestAddFile_MainCategory(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	clients := repoFor(c)
	activity := &mockActivityRepo{}
	s := newTestService(clients, activity)

	file, err := s.AddFile(adminCtx(), AddFileInput{
		ClientID: c.ID,
		Year:     "2026",
		Month:    "2",
		Category: domain.CategorySales,
		FileName: "invoice.pdf",
		URL:      "s3://docs/invoice.pdf",
		FileSize: 1024,
		FileType: "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Admin", file.UploadedBy)
	assert.Equal(t, testTime, file.UploadedAt)

	m := c.Documents.Month("2026", "2")
	require.NotNil(t, m)
	require.Len(t, m.Sales.Files, 1)
	assert.Equal(t, "invoice.pdf", m.Sales.Files[0].FileName)
	require.Len(t, activity.logged, 1)
	assert.Equal(t, "document.file.add", activity.logged[0].Action)
}

func TestAddFile_CreatesOtherCategory(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	s := newTestService(repoFor(c), &mockActivityRepo{})

	_, err := s.AddFile(adminCtx(), AddFileInput{
		ClientID:     c.ID,
		Year:         "2026",
		Month:        "2",
		Category:     domain.CategoryOther,
		CategoryName: "contracts",
		FileName:     "lease.pdf",
		URL:          "s3://docs/lease.pdf",
	})
	require.NoError(t, err)

	m := c.Documents.Month("2026", "2")
	require.NotNil(t, m)
	cat := m.OtherCategoryByName("contracts")
	require.NotNil(t, cat)
	assert.Len(t, cat.Files, 1)
}

func TestAddFile_OtherRequiresName(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	s := newTestService(repoFor(c), &mockActivityRepo{})

	_, err := s.AddFile(adminCtx(), AddFileInput{
		ClientID: c.ID,
		Year:     "2026",
		Month:    "2",
		Category: domain.CategoryOther,
		FileName: "lease.pdf",
		URL:      "s3://docs/lease.pdf",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddFile_UploadsIntoLockedMonth(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	m := c.Documents.EnsureMonth("2026", "2")
	m.IsLocked = true
	s := newTestService(repoFor(c), &mockActivityRepo{})

	// The lock does not block uploads; the anomaly surfaces on the dashboard.
	_, err := s.AddFile(adminCtx(), AddFileInput{
		ClientID: c.ID,
		Year:     "2026",
		Month:    "2",
		Category: domain.CategoryBank,
		FileName: "statement.pdf",
		URL:      "s3://docs/statement.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, m.TotalFiles())
	assert.True(t, m.IsLocked)
}

// ===========================================================================
// Notes
// ===========================================================================

func TestAddMonthNote_CreatesMonthLazily(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	s := newTestService(repoFor(c), &mockActivityRepo{})

	note, err := s.AddMonthNote(adminCtx(), c.ID, "2026", "2", "please check")
	require.NoError(t, err)
	assert.False(t, note.IsViewedByAdmin)
	assert.Equal(t, "Jane Admin", note.AddedBy)

	m := c.Documents.Month("2026", "2")
	require.NotNil(t, m)
	require.Len(t, m.MonthNotes, 1)
	assert.Equal(t, "please check", m.MonthNotes[0].Note)
}

func TestAddCategoryNote_MissingMonth(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	s := newTestService(repoFor(c), &mockActivityRepo{})

	_, err := s.AddCategoryNote(adminCtx(), CategoryNoteInput{
		ClientID: c.ID,
		Year:     "2026",
		Month:    "2",
		Category: domain.CategorySales,
		Text:     "missing invoices",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddCategoryNote_MissingOtherCategory(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	c.Documents.EnsureMonth("2026", "2")
	s := newTestService(repoFor(c), &mockActivityRepo{})

	_, err := s.AddCategoryNote(adminCtx(), CategoryNoteInput{
		ClientID:     c.ID,
		Year:         "2026",
		Month:        "2",
		Category:     domain.CategoryOther,
		CategoryName: "contracts",
		Text:         "lease missing",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddFileNote_AppendsUnviewed(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	m := c.Documents.EnsureMonth("2026", "2")
	m.Sales.Files = []domain.FileRecord{{FileName: "invoice.pdf"}}
	s := newTestService(repoFor(c), &mockActivityRepo{})

	before := m.CountUnviewed()
	_, err := s.AddFileNote(adminCtx(), FileNoteInput{
		ClientID: c.ID,
		Year:     "2026",
		Month:    "2",
		Category: domain.CategorySales,
		FileName: "invoice.pdf",
		Text:     "please resubmit",
	})
	require.NoError(t, err)

	require.Len(t, m.Sales.Files[0].Notes, 1)
	assert.False(t, m.Sales.Files[0].Notes[0].IsViewedByAdmin)
	assert.Equal(t, before+1, m.CountUnviewed())
}

func TestAddFileNote_MissingFile(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	c.Documents.EnsureMonth("2026", "2")
	s := newTestService(repoFor(c), &mockActivityRepo{})

	_, err := s.AddFileNote(adminCtx(), FileNoteInput{
		ClientID: c.ID,
		Year:     "2026",
		Month:    "2",
		Category: domain.CategorySales,
		FileName: "nope.pdf",
		Text:     "?",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ===========================================================================
// Lock / accounting flags
// ===========================================================================

func TestSetLock_SetsAndClears(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	s := newTestService(repoFor(c), &mockActivityRepo{})

	rec, err := s.SetLock(adminCtx(), c.ID, "2026", "2", true)
	require.NoError(t, err)
	assert.True(t, rec.IsLocked)
	require.NotNil(t, rec.LockedAt)
	assert.Equal(t, testTime, *rec.LockedAt)
	assert.Equal(t, "Jane Admin", rec.LockedBy)

	rec, err = s.SetLock(adminCtx(), c.ID, "2026", "2", false)
	require.NoError(t, err)
	assert.False(t, rec.IsLocked)
	assert.Nil(t, rec.LockedAt)
	assert.Empty(t, rec.LockedBy)
}

func TestSetCategoryLock(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	m := c.Documents.EnsureMonth("2026", "2")
	s := newTestService(repoFor(c), &mockActivityRepo{})

	err := s.SetCategoryLock(adminCtx(), c.ID, "2026", "2", domain.CategoryBank, "", true)
	require.NoError(t, err)
	assert.True(t, m.Bank.IsLocked)
	assert.False(t, m.IsLocked, "month lock is independent")
}

func TestSetCategoryLock_MissingMonth(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	s := newTestService(repoFor(c), &mockActivityRepo{})

	err := s.SetCategoryLock(adminCtx(), c.ID, "2026", "2", domain.CategoryBank, "", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetAccountingDone_Toggle(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	s := newTestService(repoFor(c), &mockActivityRepo{})

	rec, err := s.SetAccountingDone(adminCtx(), c.ID, "2026", "2", true)
	require.NoError(t, err)
	assert.True(t, rec.AccountingDone)
	require.NotNil(t, rec.AccountingDoneAt)
	assert.Equal(t, "Jane Admin", rec.AccountingDoneBy)

	rec, err = s.SetAccountingDone(adminCtx(), c.ID, "2026", "2", false)
	require.NoError(t, err)
	assert.False(t, rec.AccountingDone)
	assert.Nil(t, rec.AccountingDoneAt)
}

// ===========================================================================
// Save retry / activity best-effort
// ===========================================================================

func TestWithClient_RetriesOnVersionConflict(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	gets := 0
	clients := &mockClientRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
			gets++
			fresh := domain.NewClient(c.Name, c.Email, c.Company)
			fresh.ID = c.ID
			return fresh, nil
		},
	}
	saves := 0
	clients.SaveFunc = func(ctx context.Context, cl *domain.Client) error {
		saves++
		if saves == 1 {
			return domain.ErrVersionConflict
		}
		return nil
	}
	s := newTestService(clients, &mockActivityRepo{})

	_, err := s.GetOrCreateMonth(adminCtx(), c.ID, "2026", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, gets, "conflict triggers a fresh read")
	assert.Equal(t, 2, saves)
}

func TestWithClient_GivesUpAfterRetries(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	clients := repoFor(c)
	clients.SaveFunc = func(ctx context.Context, cl *domain.Client) error {
		return domain.ErrVersionConflict
	}
	s := newTestService(clients, &mockActivityRepo{})

	_, err := s.GetOrCreateMonth(adminCtx(), c.ID, "2026", "2")
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.Len(t, clients.saved, maxSaveRetries)
}

func TestActivityFailureDoesNotFailOperation(t *testing.T) {
	c := domain.NewClient("Acme", "acme@example.com", "Acme")
	activity := &mockActivityRepo{
		LogFunc: func(ctx context.Context, rec domain.ActivityRecord) error {
			return errors.New("activity store down")
		},
	}
	s := newTestService(repoFor(c), activity)

	_, err := s.AddMonthNote(adminCtx(), c.ID, "2026", "2", "note text")
	require.NoError(t, err)
	require.Len(t, c.Documents.Month("2026", "2").MonthNotes, 1)
}
