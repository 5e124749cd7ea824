// Package activity implements recording and querying the append-only
// activity log. Unlike comments and attachments, records may reference
// entity kinds outside the registry, so no reference resolution happens
// here.
package activity

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	activitydb "github.com/heartmarshall/crm-backend/internal/adapter/postgres/activity"
	"github.com/heartmarshall/crm-backend/internal/config"
	"github.com/heartmarshall/crm-backend/internal/domain"
)

const (
	MaxEntityNameLength  = 255
	MaxDescriptionLength = 2000
)

type activityRepo interface {
	Create(ctx context.Context, rec domain.ActivityRecord) (domain.ActivityRecord, error)
	Query(ctx context.Context, orgID uuid.UUID, filter activitydb.Filter) ([]domain.ActivityRecord, string, error)
}

type profileRepo interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Profile, error)
}

type tenantGuard interface {
	EnsureActiveOrg(ctx context.Context, orgID uuid.UUID) error
}

// Service provides activity log operations.
type Service struct {
	activity activityRepo
	profiles profileRepo
	guard    tenantGuard

	retryCfg config.RetryConfig
	pageCfg  config.PaginationConfig
	log      *slog.Logger
}

// NewService creates a new Activity service.
func NewService(
	log *slog.Logger,
	activity activityRepo,
	profiles profileRepo,
	guard tenantGuard,
	retryCfg config.RetryConfig,
	pageCfg config.PaginationConfig,
) *Service {
	return &Service{
		activity: activity,
		profiles: profiles,
		guard:    guard,
		retryCfg: retryCfg,
		pageCfg:  pageCfg,
		log:      log.With("service", "activity"),
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
