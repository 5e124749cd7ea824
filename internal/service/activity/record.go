package activity

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/crm-backend/internal/domain"
	"github.com/heartmarshall/crm-backend/internal/service/retry"
	"github.com/heartmarshall/crm-backend/pkg/ctxutil"
)

// Record appends one record to the activity log. The actor comes from the
// context and is stored as both the acting user and the audit author.
func (s *Service) Record(ctx context.Context, input RecordInput) (*domain.ActivityRecord, error) {
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

	var created domain.ActivityRecord
	err := retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		var createErr error
		created, createErr = s.activity.Create(ctx, domain.ActivityRecord{
			OrgID:       input.OrgID,
			UserID:      &actorID,
			Action:      input.Action,
			EntityType:  strings.TrimSpace(input.EntityType),
			EntityID:    input.EntityID,
			EntityName:  input.EntityName,
			Description: input.Description,
			CreatedBy:   &actorID,
		})
		return createErr
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "activity recorded",
		slog.String("org_id", input.OrgID.String()),
		slog.String("activity_id", created.ID.String()),
		slog.String("action", created.Action.String()),
		slog.String("entity", created.EntityLabel()),
	)

	return &created, nil
}
