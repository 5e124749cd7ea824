package attachment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/crm-backend/internal/domain"
	"github.com/heartmarshall/crm-backend/internal/service/retry"
	"github.com/heartmarshall/crm-backend/pkg/ctxutil"
)

// Attach stores the file in the object store, then atomically persists the
// attachment metadata and appends exactly one CREATE activity record. The
// actor comes from the context.
func (s *Service) Attach(ctx context.Context, input AttachInput) (*domain.Attachment, error) {
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

	ownerOrg, found, err := s.targets.OwnerOrg(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolve target org: %w", err)
	}
	if found {
		if err := s.guard.Authorize(ctx, input.OrgID, ownerOrg); err != nil {
			return nil, err
		}
	}

	fileName := strings.TrimSpace(input.FileName)
	displayName := strings.TrimSpace(input.Name)
	if displayName == "" {
		displayName = fileName
	}

	// Upload before the transaction: a dangling blob is cheaper to clean up
	// than a metadata row pointing at nothing.
	fileKey := fmt.Sprintf("%s/%s/%s", input.OrgID, uuid.New(), fileName)
	if err := s.blobs.Put(ctx, fileKey, input.Body, input.Size, input.ContentType); err != nil {
		return nil, fmt.Errorf("store file: %w", domainStorageError(err))
	}

	var created domain.Attachment
	err = retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		return s.tx.RunInTx(ctx, func(ctx context.Context) error {
			var txErr error
			created, txErr = s.attachments.Create(ctx, domain.Attachment{
				OrgID:        input.OrgID,
				Ref:          ref,
				FileKey:      fileKey,
				Name:         displayName,
				UploadedByID: &actorID,
				CreatedBy:    &actorID,
			})
			if txErr != nil {
				return fmt.Errorf("create attachment: %w", txErr)
			}

			_, txErr = s.activity.Create(ctx, domain.ActivityRecord{
				OrgID:       input.OrgID,
				UserID:      &actorID,
				Action:      domain.ActionCreate,
				EntityType:  ref.EntityType,
				EntityID:    ref.EntityID,
				EntityName:  input.EntityName,
				Description: fmt.Sprintf("attached file %q", displayName),
				CreatedBy:   &actorID,
			})
			if txErr != nil {
				return fmt.Errorf("append attachment activity: %w", txErr)
			}
			return nil
		})
	})
	if err != nil {
		// Best-effort cleanup of the orphaned blob.
		if delErr := s.blobs.Delete(ctx, fileKey); delErr != nil {
			s.log.WarnContext(ctx, "orphaned blob cleanup failed",
				slog.String("file_key", fileKey),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "attachment created",
		slog.String("org_id", input.OrgID.String()),
		slog.String("attachment_id", created.ID.String()),
		slog.String("entity", ref.String()),
		slog.Int64("size", input.Size),
	)

	return &created, nil
}

// domainStorageError tags object-store failures so callers see ErrStorage.
func domainStorageError(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStorage, err)
}
