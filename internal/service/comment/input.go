package comment

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/crm-backend/internal/domain"
)

// AttachInput holds the parameters for attaching a comment to an entity.
type AttachInput struct {
	OrgID      uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	// EntityName is the display label captured into the activity log.
	// Optional; the log falls back to "type id".
	EntityName string
	Text       string
}

// Validate checks all fields and collects all errors.
func (i AttachInput) Validate() error {
	var errs []domain.FieldError

	if i.OrgID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "org_id", Message: "required"})
	}
	if strings.TrimSpace(i.EntityType) == "" {
		errs = append(errs, domain.FieldError{Field: "entity_type", Message: "required"})
	}
	if i.EntityID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "entity_id", Message: "required"})
	}

	text := strings.TrimSpace(i.Text)
	if text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if len(text) > MaxTextLength {
		errs = append(errs, domain.FieldError{Field: "text", Message: "max 10000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds the parameters for listing comments on an entity.
type ListInput struct {
	OrgID      uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	Limit      int
	PageToken  string
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.OrgID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "org_id", Message: "required"})
	}
	if strings.TrimSpace(i.EntityType) == "" {
		errs = append(errs, domain.FieldError{Field: "entity_type", Message: "required"})
	}
	if i.EntityID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "entity_id", Message: "required"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeactivateInput holds the parameters for soft-deleting a comment.
type DeactivateInput struct {
	OrgID     uuid.UUID
	CommentID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeactivateInput) Validate() error {
	var errs []domain.FieldError

	if i.OrgID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "org_id", Message: "required"})
	}
	if i.CommentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "comment_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
