package attachment

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/crm-backend/internal/domain"
	"github.com/heartmarshall/crm-backend/pkg/ctxutil"
)

// Deactivate soft-deletes an attachment. The stored blob is kept: inactive
// rows still reference it and history stays reconstructable.
func (s *Service) Deactivate(ctx context.Context, input DeactivateInput) error {
	actorID, ok := ctxutil.ActorIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.guard.EnsureActiveOrg(ctx, input.OrgID); err != nil {
		return err
	}

	if err := s.attachments.Deactivate(ctx, input.AttachmentID, input.OrgID, &actorID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "attachment deactivated",
		slog.String("org_id", input.OrgID.String()),
		slog.String("attachment_id", input.AttachmentID.String()),
	)
	return nil
}
