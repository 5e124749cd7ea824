package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/crm-backend/internal/domain"
	"github.com/heartmarshall/crm-backend/internal/service/retry"
	"github.com/heartmarshall/crm-backend/pkg/ctxutil"
)

// Attach creates a comment on the referenced entity and appends exactly one
// COMMENT activity record, atomically. The actor comes from the context.
func (s *Service) Attach(ctx context.Context, input AttachInput) (*domain.Comment, error) {
	actorID, ok := ctxutil.ActorIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := s.guard.EnsureActiveOrg(ctx, input.OrgID); err != nil {
		return nil, err
	}

	ref, err := s.resolver.Build(input.EntityType, input.EntityID)
	if err != nil {
		return nil, err
	}

	// The target is not dereferenced; but when its owning org is known it
	// must match the caller's.
	ownerOrg, found, err := s.targets.OwnerOrg(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolve target org: %w", err)
	}
	if found {
		if err := s.guard.Authorize(ctx, input.OrgID, ownerOrg); err != nil {
			return nil, err
		}
	}

	text := strings.TrimSpace(input.Text)

	var created domain.Comment
	err = retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		return s.tx.RunInTx(ctx, func(ctx context.Context) error {
			var txErr error
			created, txErr = s.comments.Create(ctx, domain.Comment{
				OrgID:     input.OrgID,
				Ref:       ref,
				Text:      text,
				AuthorID:  &actorID,
				CreatedBy: &actorID,
			})
			if txErr != nil {
				return fmt.Errorf("create comment: %w", txErr)
			}

			_, txErr = s.activity.Create(ctx, domain.ActivityRecord{
				OrgID:       input.OrgID,
				UserID:      &actorID,
				Action:      domain.ActionComment,
				EntityType:  ref.EntityType,
				EntityID:    ref.EntityID,
				EntityName:  input.EntityName,
				Description: textPreview(text),
				CreatedBy:   &actorID,
			})
			if txErr != nil {
				return fmt.Errorf("append comment activity: %w", txErr)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "comment attached",
		slog.String("org_id", input.OrgID.String()),
		slog.String("comment_id", created.ID.String()),
		slog.String("entity", ref.String()),
	)

	return &created, nil
}

// textPreview truncates comment text for the activity description.
func textPreview(text string) string {
	const max = 120
	if len(text) <= max {
		return text
	}
	return text[:max]
}
