package comment

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/crm-backend/internal/domain"
	"github.com/heartmarshall/crm-backend/pkg/ctxutil"
)

// Deactivate soft-deletes a comment. Idempotent: repeating the call on an
// already-inactive comment succeeds.
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

	if err := s.comments.Deactivate(ctx, input.CommentID, input.OrgID, &actorID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "comment deactivated",
		slog.String("org_id", input.OrgID.String()),
		slog.String("comment_id", input.CommentID.String()),
	)
	return nil
}
