package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

type directoryServiceMock struct {
	CreateClientFunc    func(ctx context.Context, name, email, company string) (*domain.Client, error)
	GetClientFunc       func(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	ListClientsFunc     func(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Client, error)
	SetClientActiveFunc func(ctx context.Context, id uuid.UUID, active bool) error

	CreateEmployeeFunc    func(ctx context.Context, name, email string, role domain.ActorRole) (*domain.Employee, error)
	GetEmployeeFunc       func(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	ListEmployeesFunc     func(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Employee, error)
	SetEmployeeActiveFunc func(ctx context.Context, id uuid.UUID, active bool) error
}

func (m *directoryServiceMock) CreateClient(ctx context.Context, name, email, company string) (*domain.Client, error) {
	return m.CreateClientFunc(ctx, name, email, company)
}

func (m *directoryServiceMock) GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return m.GetClientFunc(ctx, id)
}

func (m *directoryServiceMock) ListClients(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Client, error) {
	return m.ListClientsFunc(ctx, afterID, limit)
}

func (m *directoryServiceMock) SetClientActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.SetClientActiveFunc(ctx, id, active)
}

func (m *directoryServiceMock) CreateEmployee(ctx context.Context, name, email string, role domain.ActorRole) (*domain.Employee, error) {
	return m.CreateEmployeeFunc(ctx, name, email, role)
}

func (m *directoryServiceMock) GetEmployee(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	return m.GetEmployeeFunc(ctx, id)
}

func (m *directoryServiceMock) ListEmployees(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Employee, error) {
	return m.ListEmployeesFunc(ctx, afterID, limit)
}

func (m *directoryServiceMock) SetEmployeeActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.SetEmployeeActiveFunc(ctx, id, active)
}

func asAdmin(req *http.Request) *http.Request {
	ctx := ctxutil.WithActor(req.Context(), ctxutil.Actor{
		ID:   uuid.New(),
		Role: "admin",
		Name: "Jane Admin",
	})
	return req.WithContext(ctx)
}

func asEmployee(req *http.Request) *http.Request {
	ctx := ctxutil.WithActor(req.Context(), ctxutil.Actor{
		ID:   uuid.New(),
		Role: "employee",
		Name: "Bob Books",
	})
	return req.WithContext(ctx)
}

func TestCreateClient_Created(t *testing.T) {
	svc := &directoryServiceMock{
		CreateClientFunc: func(ctx context.Context, name, email, company string) (*domain.Client, error) {
			require.Equal(t, "Acme Ltd", name)
			return domain.NewClient(name, email, company), nil
		},
	}
	h := NewDirectoryHandler(svc, discardLogger())

	body := `{"name":"Acme Ltd","email":"billing@acme.com","company":"Acme"}`
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	h.CreateClient(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "billing@acme.com")
}

func TestCreateClient_NonAdminForbidden(t *testing.T) {
	called := false
	svc := &directoryServiceMock{
		CreateClientFunc: func(ctx context.Context, name, email, company string) (*domain.Client, error) {
			called = true
			return nil, nil
		},
	}
	h := NewDirectoryHandler(svc, discardLogger())

	body := `{"name":"Acme","email":"a@acme.com"}`
	req := asEmployee(httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	h.CreateClient(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestCreateClient_BadBody(t *testing.T) {
	h := NewDirectoryHandler(&directoryServiceMock{}, discardLogger())

	req := asAdmin(httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader("{not json")))
	rec := httptest.NewRecorder()

	h.CreateClient(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetClient_NotFound(t *testing.T) {
	svc := &directoryServiceMock{
		GetClientFunc: func(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewDirectoryHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/clients/"+uuid.NewString(), nil)
	req.SetPathValue("id", uuid.NewString())
	rec := httptest.NewRecorder()

	h.GetClient(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetClient_InvalidID(t *testing.T) {
	h := NewDirectoryHandler(&directoryServiceMock{}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/clients/nope", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()

	h.GetClient(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListClients_PassesPageParams(t *testing.T) {
	after := uuid.New()
	svc := &directoryServiceMock{
		ListClientsFunc: func(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Client, error) {
			assert.Equal(t, after, afterID)
			assert.Equal(t, 25, limit)
			return nil, nil
		},
	}
	h := NewDirectoryHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/clients?after="+after.String()+"&limit=25", nil)
	rec := httptest.NewRecorder()

	h.ListClients(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateEmployee_DuplicateEmailConflict(t *testing.T) {
	svc := &directoryServiceMock{
		CreateEmployeeFunc: func(ctx context.Context, name, email string, role domain.ActorRole) (*domain.Employee, error) {
			return nil, domain.ErrAlreadyExists
		},
	}
	h := NewDirectoryHandler(svc, discardLogger())

	body := `{"name":"Bob","email":"bob@x.com","role":"employee"}`
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	h.CreateEmployee(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
