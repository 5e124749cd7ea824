package attachment

import (
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/crm-backend/internal/domain"
)

// AttachInput holds the parameters for attaching a file to an entity.
type AttachInput struct {
	OrgID      uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	// EntityName is the display label captured into the activity log.
	EntityName string

	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
	// Name overrides the display name; defaults to FileName.
	Name string
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

	name := strings.TrimSpace(i.FileName)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "file_name", Message: "required"})
	}
	if len(name) > MaxFileNameLength {
		errs = append(errs, domain.FieldError{Field: "file_name", Message: "max 255 characters"})
	}
	if strings.ContainsAny(name, "/\\") {
		errs = append(errs, domain.FieldError{Field: "file_name", Message: "must not contain path separators"})
	}

	if i.Size <= 0 {
		errs = append(errs, domain.FieldError{Field: "size", Message: "must be positive"})
	}
	if i.Size > MaxFileSize {
		errs = append(errs, domain.FieldError{Field: "size", Message: "max 100 MiB"})
	}
	if i.Body == nil {
		errs = append(errs, domain.FieldError{Field: "body", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds the parameters for listing attachments on an entity.
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

// DeactivateInput holds the parameters for soft-deleting an attachment.
type DeactivateInput struct {
	OrgID        uuid.UUID
	AttachmentID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeactivateInput) Validate() error {
	var errs []domain.FieldError

	if i.OrgID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "org_id", Message: "required"})
	}
	if i.AttachmentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "attachment_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DownloadURLInput holds the parameters for producing a download link.
type DownloadURLInput struct {
	OrgID        uuid.UUID
	AttachmentID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DownloadURLInput) Validate() error {
	var errs []domain.FieldError

	if i.OrgID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "org_id", Message: "required"})
	}
	if i.AttachmentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "attachment_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
