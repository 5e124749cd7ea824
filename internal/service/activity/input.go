package activity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/crm-backend/internal/domain"
)

// RecordInput holds the parameters for appending an activity record.
type RecordInput struct {
	OrgID  uuid.UUID
	Action domain.ActivityAction
	// EntityType names the kind of entity the activity is about. Free text;
	// kinds outside the reference registry are allowed.
	EntityType  string
	EntityID    uuid.UUID
	EntityName  string
	Description string
}

// Validate checks all fields and collects all errors.
func (i RecordInput) Validate() error {
	var errs []domain.FieldError

	if i.OrgID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "org_id", Message: "required"})
	}
	if i.Action == "" {
		errs = append(errs, domain.FieldError{Field: "action", Message: "required"})
	} else if !i.Action.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action", Message: "unknown action"})
	}
	if strings.TrimSpace(i.EntityType) == "" {
		errs = append(errs, domain.FieldError{Field: "entity_type", Message: "required"})
	}
	if i.EntityID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "entity_id", Message: "required"})
	}
	if len(i.EntityName) > MaxEntityNameLength {
		errs = append(errs, domain.FieldError{Field: "entity_name", Message: "max 255 characters"})
	}
	if len(i.Description) > MaxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// QueryInput holds the parameters for querying the activity log. All filters
// are optional; the org scope is not.
type QueryInput struct {
	OrgID      uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	Action     domain.ActivityAction
	From       *time.Time
	To         *time.Time
	Limit      int
	PageToken  string
}

// Validate checks all fields and collects all errors.
func (i QueryInput) Validate() error {
	var errs []domain.FieldError

	if i.OrgID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "org_id", Message: "required"})
	}
	if i.Action != "" && !i.Action.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action", Message: "unknown action"})
	}
	if i.From != nil && i.To != nil && !i.From.Before(*i.To) {
		errs = append(errs, domain.FieldError{Field: "from", Message: "must be before to"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
