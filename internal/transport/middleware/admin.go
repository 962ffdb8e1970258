package middleware

import (
	"context"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

// RequireAdmin returns domain.ErrForbidden if the context actor is not admin.
// Use inside REST handlers, not as HTTP middleware.
func RequireAdmin(ctx context.Context) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok || actor.Role != string(domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	return nil
}
