package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	activitydb "github.com/heartmarshall/crm-backend/internal/adapter/postgres/activity"
	"github.com/heartmarshall/crm-backend/internal/domain"
)

// View is an activity record enriched with the acting user's display name.
// ActorName is empty for system records and when the profile no longer
// exists.
type View struct {
	domain.ActivityRecord
	ActorName string
}

// QueryResult is one page of activity records.
type QueryResult struct {
	Records       []View
	NextPageToken string
}

// Query returns activity records in the org matching the input, newest
// first.
func (s *Service) Query(ctx context.Context, input QueryInput) (*QueryResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := activitydb.Filter{
		From:      input.From,
		To:        input.To,
		Limit:     s.clampLimit(input.Limit),
		PageToken: input.PageToken,
	}
	if t := strings.TrimSpace(input.EntityType); t != "" {
		filter.EntityType = &t
	}
	if input.EntityID != uuid.Nil {
		id := input.EntityID
		filter.EntityID = &id
	}
	if input.Action != "" {
		action := input.Action
		filter.Action = &action
	}

	records, nextToken, err := s.activity.Query(ctx, input.OrgID, filter)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}

	views, err := s.enrichActors(ctx, records)
	if err != nil {
		return nil, err
	}

	return &QueryResult{Records: views, NextPageToken: nextToken}, nil
}

func (s *Service) enrichActors(ctx context.Context, records []domain.ActivityRecord) ([]View, error) {
	ids := make([]uuid.UUID, 0, len(records))
	seen := make(map[uuid.UUID]bool, len(records))
	for _, rec := range records {
		if rec.UserID != nil && !seen[*rec.UserID] {
			seen[*rec.UserID] = true
			ids = append(ids, *rec.UserID)
		}
	}

	profiles, err := s.profiles.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load actor profiles: %w", err)
	}

	views := make([]View, len(records))
	for i, rec := range records {
		views[i] = View{ActivityRecord: rec}
		if rec.UserID != nil {
			if p, ok := profiles[*rec.UserID]; ok {
				views[i].ActorName = p.DisplayName
			}
		}
	}
	return views, nil
}
