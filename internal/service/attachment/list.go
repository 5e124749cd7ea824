package attachment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/crm-backend/internal/domain"
)

// View is an attachment enriched with the uploader's display name.
// UploaderName is empty when the uploader profile no longer exists.
type View struct {
	domain.Attachment
	UploaderName string
}

// ListResult is one page of attachments.
type ListResult struct {
	Attachments   []View
	NextPageToken string
}

// List returns active attachments on the referenced entity, newest first.
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ref, err := s.resolver.Build(input.EntityType, input.EntityID)
	if err != nil {
		return nil, err
	}

	limit := s.clampLimit(input.Limit)

	attachments, nextToken, err := s.attachments.List(ctx, input.OrgID, ref, limit, input.PageToken)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}

	views, err := s.enrichUploaders(ctx, attachments)
	if err != nil {
		return nil, err
	}

	return &ListResult{Attachments: views, NextPageToken: nextToken}, nil
}

func (s *Service) enrichUploaders(ctx context.Context, attachments []domain.Attachment) ([]View, error) {
	ids := make([]uuid.UUID, 0, len(attachments))
	seen := make(map[uuid.UUID]bool, len(attachments))
	for _, a := range attachments {
		if a.UploadedByID != nil && !seen[*a.UploadedByID] {
			seen[*a.UploadedByID] = true
			ids = append(ids, *a.UploadedByID)
		}
	}

	profiles, err := s.profiles.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load uploader profiles: %w", err)
	}

	views := make([]View, len(attachments))
	for i, a := range attachments {
		views[i] = View{Attachment: a}
		if a.UploadedByID != nil {
			if p, ok := profiles[*a.UploadedByID]; ok {
				views[i].UploaderName = p.DisplayName
			}
		}
	}
	return views, nil
}
