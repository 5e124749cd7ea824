package activity

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/crm-backend/internal/domain"
)

// Filter defines parameters for querying the activity log. The org scope is
// not part of the filter: callers pass it separately and it is always
// applied.
type Filter struct {
	// EntityType narrows to activity about one kind of entity. Free text,
	// matched verbatim.
	EntityType *string

	// EntityID narrows to activity about one specific entity. Usually
	// combined with EntityType to hit the (entity_type, entity_id) index.
	EntityID *uuid.UUID

	// Action narrows to one action kind.
	Action *domain.ActivityAction

	// From/To bound created_at (inclusive from, exclusive to).
	From *time.Time
	To   *time.Time

	// Limit is the maximum number of records per page. Default: 50, max: 200.
	Limit int

	// PageToken continues a previous query from its last record.
	PageToken string
}

const (
	defaultLimit = 50
	maxLimit     = 200
)

// normalize applies defaults and clamps values.
func (f *Filter) normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
}
