package app

import (
	"context"

	"github.com/google/uuid"

	profiledb "github.com/heartmarshall/crm-backend/internal/adapter/postgres/profile"
	"github.com/heartmarshall/crm-backend/internal/domain"
)

// profileDirectory resolves the owning org of references that point at
// people. Business entities (leads, accounts, ...) live in modules outside
// this core, so they report not found and the write proceeds on the
// caller's org binding alone.
type profileDirectory struct {
	profiles *profiledb.Repo
}

func (d *profileDirectory) OwnerOrg(ctx context.Context, ref domain.GenericReference) (uuid.UUID, bool, error) {
	switch ref.EntityType {
	case "user", "profile":
		return d.profiles.OwnerOrg(ctx, ref.EntityID)
	default:
		return uuid.Nil, false, nil
	}
}
