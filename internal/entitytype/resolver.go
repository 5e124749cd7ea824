package entitytype

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/crm-backend/internal/domain"
)

// Resolver builds generic references from raw (type name, entity id)
// pairs. It is deliberately shallow: it validates the type name against
// the registry and nothing else. Target existence is optimistic — the
// resolver never queries the target table, so new entity kinds can be
// attached to without touching this package.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a resolver backed by the given registry.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Build validates typeName and returns the reference. Fails with
// domain.ErrUnknownEntityType for unregistered names and with a
// validation error for a nil entity id.
func (r *Resolver) Build(typeName string, entityID uuid.UUID) (domain.GenericReference, error) {
	if entityID == uuid.Nil {
		return domain.GenericReference{}, domain.NewValidationError("entity_id", "required")
	}

	token, err := r.registry.Resolve(typeName)
	if err != nil {
		return domain.GenericReference{}, err
	}

	return domain.GenericReference{
		EntityType: token.Name(),
		EntityID:   entityID,
	}, nil
}
