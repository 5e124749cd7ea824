package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedOrg inserts an active organization and returns its ID.
func SeedOrg(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO organizations (id, name) VALUES ($1, $2)`,
		id, name,
	)
	if err != nil {
		t.Fatalf("seed org: %v", err)
	}
	return id
}

// SeedInactiveOrg inserts a deactivated organization and returns its ID.
func SeedInactiveOrg(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO organizations (id, name, is_active) VALUES ($1, $2, false)`,
		id, name,
	)
	if err != nil {
		t.Fatalf("seed inactive org: %v", err)
	}
	return id
}

// SeedProfile inserts an active profile in the given org and returns its ID.
func SeedProfile(t *testing.T, pool *pgxpool.Pool, orgID uuid.UUID, displayName string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO profiles (id, org_id, display_name) VALUES ($1, $2, $3)`,
		id, orgID, displayName,
	)
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return id
}
