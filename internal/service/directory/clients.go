package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

// CreateClient enrolls a new client with an empty document bundle. A taken
// email yields domain.ErrAlreadyExists.
func (s *Service) CreateClient(ctx context.Context, name, email, company string) (*domain.Client, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := validateIntake(name, email); err != nil {
		return nil, err
	}

	c := domain.NewClient(strings.TrimSpace(name), strings.ToLower(email), company)
	created, err := s.clients.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.logActivity(ctx, actor, "client.create", fmt.Sprintf("client %s (%s)", created.ID, created.Email))
	return created, nil
}

// GetClient returns one client by ID.
func (s *Service) GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// ListClients returns a page of active clients ordered by id, starting
// strictly after afterID.
func (s *Service) ListClients(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Client, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	page, err := s.clients.ListActive(ctx, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return page, nil
}

// SetClientActive flips a client's active flag. Deactivated clients drop out
// of every listing and dashboard scan but keep their document bundle.
func (s *Service) SetClientActive(ctx context.Context, id uuid.UUID, active bool) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.clients.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set client active: %w", err)
	}

	s.logActivity(ctx, actor, "client.set_active", fmt.Sprintf("client %s active=%t", id, active))
	return nil
}
