package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a free-text note attached to an arbitrary registered entity.
// Records are soft-deleted only: IsActive flips to false, rows stay.
type Comment struct {
	ID        uuid.UUID
	OrgID     uuid.UUID
	Ref       GenericReference
	Text      string
	AuthorID  *uuid.UUID // weak reference to a Profile; nil once the author is removed
	CreatedBy *uuid.UUID
	UpdatedBy *uuid.UUID
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Attachment is an uploaded file attached to an arbitrary registered
// entity. FileKey is the opaque object-store location; the subsystem
// never interprets file contents.
type Attachment struct {
	ID           uuid.UUID
	OrgID        uuid.UUID
	Ref          GenericReference
	FileKey      string
	Name         string // display name, defaults to the stored file name
	UploadedByID *uuid.UUID
	CreatedBy    *uuid.UUID
	UpdatedBy    *uuid.UUID
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ActivityRecord is one append-only entry in the per-org activity log.
// EntityType is free text: the log may reference kinds outside the
// registry (e.g. "team"), unlike Comment/Attachment references.
type ActivityRecord struct {
	ID          uuid.UUID
	OrgID       uuid.UUID
	UserID      *uuid.UUID // weak reference to a Profile
	Action      ActivityAction
	EntityType  string
	EntityID    uuid.UUID
	EntityName  string // display label captured at write time, never synced
	Description string
	CreatedBy   *uuid.UUID
	UpdatedBy   *uuid.UUID
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EntityLabel returns the display label for the referenced entity,
// falling back to "type id" when no name was captured.
func (a ActivityRecord) EntityLabel() string {
	if a.EntityName != "" {
		return a.EntityName
	}
	return a.EntityType + " " + a.EntityID.String()
}

// Organization is the tenant boundary. Owned by an external collaborator;
// this subsystem only reads id + active flag.
type Organization struct {
	ID       uuid.UUID
	Name     string
	IsActive bool
}

// Profile is an actor identity owned by an external collaborator. Used
// for author/uploader/user display; lookups tolerate "not found".
type Profile struct {
	ID          uuid.UUID
	OrgID       uuid.UUID
	DisplayName string
	IsActive    bool
}
