// Package comment implements attaching, listing, and deactivating comments
// on arbitrary registered entities.
package comment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/crm-backend/internal/config"
	"github.com/heartmarshall/crm-backend/internal/domain"
)

const MaxTextLength = 10000

type commentRepo interface {
	Create(ctx context.Context, c domain.Comment) (domain.Comment, error)
	List(ctx context.Context, orgID uuid.UUID, ref domain.GenericReference, limit int, pageToken string) ([]domain.Comment, string, error)
	Deactivate(ctx context.Context, id, orgID uuid.UUID, actorID *uuid.UUID) error
}

type activityRepo interface {
	Create(ctx context.Context, rec domain.ActivityRecord) (domain.ActivityRecord, error)
}

type profileRepo interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Profile, error)
}

// targetDirectory reports which org owns a referenced business entity.
// Implementations are supplied by the entity-owning modules; found is false
// when the target cannot be located, in which case the write proceeds.
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

// Service provides comment operations.
type Service struct {
	comments commentRepo
	activity activityRepo
	profiles profileRepo
	targets  targetDirectory
	guard    tenantGuard
	resolver refResolver
	tx       txManager

	retryCfg config.RetryConfig
	pageCfg  config.PaginationConfig
	log      *slog.Logger
}

// NewService creates a new Comment service.
func NewService(
	log *slog.Logger,
	comments commentRepo,
	activity activityRepo,
	profiles profileRepo,
	targets targetDirectory,
	guard tenantGuard,
	resolver refResolver,
	tx txManager,
	retryCfg config.RetryConfig,
	pageCfg config.PaginationConfig,
) *Service {
	return &Service{
		comments: comments,
		activity: activity,
		profiles: profiles,
		targets:  targets,
		guard:    guard,
		resolver: resolver,
		tx:       tx,
		retryCfg: retryCfg,
		pageCfg:  pageCfg,
		log:      log.With("service", "comment"),
	}
}

// clampLimit applies the configured default and upper bound.
func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.pageCfg.DefaultLimit
	}
	if limit > s.pageCfg.MaxLimit {
		return s.pageCfg.MaxLimit
	}
	return limit
}
