// Package attachment implements uploading, listing, and deactivating file
// attachments on arbitrary registered entities. Bytes go to the object
// store; only metadata is persisted.
package attachment

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/crm-backend/internal/config"
	"github.com/heartmarshall/crm-backend/internal/domain"
	"github.com/heartmarshall/crm-backend/internal/storage/objectstore"
)

const (
	MaxFileNameLength = 255
	MaxFileSize       = 100 << 20 // 100 MiB

	downloadURLTTL = 15 * time.Minute
)

type attachmentRepo interface {
	Create(ctx context.Context, a domain.Attachment) (domain.Attachment, error)
	GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Attachment, error)
	List(ctx context.Context, orgID uuid.UUID, ref domain.GenericReference, limit int, pageToken string) ([]domain.Attachment, string, error)
	Deactivate(ctx context.Context, id, orgID uuid.UUID, actorID *uuid.UUID) error
}

type activityRepo interface {
	Create(ctx context.Context, rec domain.ActivityRecord) (domain.ActivityRecord, error)
}

type profileRepo interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Profile, error)
}

type targetDirectory interface {
	OwnerOrg(ctx context.Context, ref domain.GenericReference) (uuid.UUID, bool, error)
}

type tenantGuard interface {
	Authorize(ctx context.Context, callerOrg, targetOrg uuid.UUID) error
	EnsureActiveOrg(ctx context.Context, orgID uuid.UUID) error
}

type refResolver interface {
	Build(typeName string, entityID uuid.UUID) (domain.GenericReference, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type blobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

var _ blobStore = (objectstore.Store)(nil)

// Service provides attachment operations.
type Service struct {
	attachments attachmentRepo
	activity    activityRepo
	profiles    profileRepo
	targets     targetDirectory
	guard       tenantGuard
	resolver    refResolver
	tx          txManager
	blobs       blobStore

	retryCfg config.RetryConfig
	pageCfg  config.PaginationConfig
	log      *slog.Logger
}

// NewService creates a new Attachment service.
func NewService(
	log *slog.Logger,
	attachments attachmentRepo,
	activity activityRepo,
	profiles profileRepo,
	targets targetDirectory,
	guard tenantGuard,
	resolver refResolver,
	tx txManager,
	blobs blobStore,
	retryCfg config.RetryConfig,
	pageCfg config.PaginationConfig,
) *Service {
	return &Service{
		attachments: attachments,
		activity:    activity,
		profiles:    profiles,
		targets:     targets,
		guard:       guard,
		resolver:    resolver,
		tx:          tx,
		blobs:       blobs,
		retryCfg:    retryCfg,
		pageCfg:     pageCfg,
		log:         log.With("service", "attachment"),
	}
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.pageCfg.DefaultLimit
	}
	if limit > s.pageCfg.MaxLimit {
		return s.pageCfg.MaxLimit
	}
	return limit
}
