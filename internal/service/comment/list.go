package comment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/crm-backend/internal/domain"
)

// View is a comment enriched with its author's display name. AuthorName is
// empty when the author profile no longer exists.
type View struct {
	domain.Comment
	AuthorName string
}

// ListResult is one page of comments.
type ListResult struct {
	Comments      []View
	NextPageToken string
}

// List returns active comments on the referenced entity, newest first.
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ref, err := s.resolver.Build(input.EntityType, input.EntityID)
	if err != nil {
		return nil, err
	}

	limit := s.clampLimit(input.Limit)

	comments, nextToken, err := s.comments.List(ctx, input.OrgID, ref, limit, input.PageToken)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	views, err := s.enrichAuthors(ctx, comments)
	if err != nil {
		return nil, err
	}

	return &ListResult{Comments: views, NextPageToken: nextToken}, nil
}

// enrichAuthors attaches author display names. Dangling author references
// are tolerated: the name stays empty.
func (s *Service) enrichAuthors(ctx context.Context, comments []domain.Comment) ([]View, error) {
	ids := make([]uuid.UUID, 0, len(comments))
	seen := make(map[uuid.UUID]bool, len(comments))
	for _, c := range comments {
		if c.AuthorID != nil && !seen[*c.AuthorID] {
			seen[*c.AuthorID] = true
			ids = append(ids, *c.AuthorID)
		}
	}

	profiles, err := s.profiles.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load author profiles: %w", err)
	}

	views := make([]View, len(comments))
	for i, c := range comments {
		views[i] = View{Comment: c}
		if c.AuthorID != nil {
			if p, ok := profiles[*c.AuthorID]; ok {
				views[i].AuthorName = p.DisplayName
			}
		}
	}
	return views, nil
}
