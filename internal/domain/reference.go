package domain

import (
	"github.com/google/uuid"
)

// GenericReference denotes "the record of kind EntityType with identifier
// EntityID" without embedding or caching that record's data. The referenced
// record may be soft-deleted or gone entirely; readers must treat a missing
// target as an omitted detail, never as a query failure.
type GenericReference struct {
	EntityType string
	EntityID   uuid.UUID
}

func (r GenericReference) String() string {
	return r.EntityType + "/" + r.EntityID.String()
}

// IsZero reports whether the reference is unset.
func (r GenericReference) IsZero() bool {
	return r.EntityType == "" && r.EntityID == uuid.Nil
}
