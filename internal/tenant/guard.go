// Package tenant enforces organization isolation. Every write path for
// comments, attachments, and activity records goes through the Guard;
// read paths are scoped by a mandatory org predicate at the query layer.
package tenant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/crm-backend/internal/domain"
	"github.com/heartmarshall/crm-backend/pkg/ctxutil"
)

type orgStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
}

// Guard is the single enforcement point for tenant isolation. No other
// component compares organization IDs.
type Guard struct {
	orgs orgStore
	log  *slog.Logger
}

// NewGuard creates a Guard backed by the organization lookup.
func NewGuard(log *slog.Logger, orgs orgStore) *Guard {
	return &Guard{
		orgs: orgs,
		log:  log.With("component", "tenant_guard"),
	}
}

// Authorize fails with domain.ErrCrossTenant when the caller's org does
// not match the target's. Violations are logged for security review.
func (g *Guard) Authorize(ctx context.Context, callerOrg, targetOrg uuid.UUID) error {
	if callerOrg == uuid.Nil {
		return domain.NewValidationError("org_id", "required")
	}
	if callerOrg != targetOrg {
		g.log.WarnContext(ctx, "cross-tenant write rejected",
			slog.String("caller_org", callerOrg.String()),
			slog.String("target_org", targetOrg.String()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		)
		return fmt.Errorf("caller org %s, target org %s: %w", callerOrg, targetOrg, domain.ErrCrossTenant)
	}
	return nil
}

// EnsureActiveOrg validates the org binding of a write: the organization
// must exist and be active.
func (g *Guard) EnsureActiveOrg(ctx context.Context, orgID uuid.UUID) error {
	if orgID == uuid.Nil {
		return domain.NewValidationError("org_id", "required")
	}

	org, err := g.orgs.GetByID(ctx, orgID)
	if err != nil {
		return fmt.Errorf("lookup org %s: %w", orgID, err)
	}
	if !org.IsActive {
		return fmt.Errorf("org %s is inactive: %w", orgID, domain.ErrForbidden)
	}
	return nil
}
