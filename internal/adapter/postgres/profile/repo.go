// Package profile implements the profile lookup used for author and
// uploader display. Profiles are owned by an external collaborator; this
// subsystem only reads them, and callers tolerate missing rows.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/crm-backend/internal/adapter/postgres"
	"github.com/heartmarshall/crm-backend/internal/domain"
)

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides read-only profile access backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new profile repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID          uuid.UUID `db:"id"`
	OrgID       uuid.UUID `db:"org_id"`
	DisplayName string    `db:"display_name"`
	IsActive    bool      `db:"is_active"`
}

func toDomain(r row) domain.Profile {
	return domain.Profile{
		ID:          r.ID,
		OrgID:       r.OrgID,
		DisplayName: r.DisplayName,
		IsActive:    r.IsActive,
	}
}

// GetByID returns a profile by primary key.
// Returns domain.ErrNotFound if the profile does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select("id", "org_id", "display_name", "is_active").
		From("profiles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get profile: %w", err)
	}

	var persisted row
	if err := pgxscan.Get(ctx, q, &persisted, query, args...); err != nil {
		return nil, postgres.MapError(err, "profile", id)
	}

	p := toDomain(persisted)
	return &p, nil
}

// ListByIDs returns the profiles for the given IDs keyed by ID. Missing IDs
// are simply absent from the result; it is the caller's job to tolerate
// dangling references.
func (r *Repo) ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Profile, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]domain.Profile{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select("id", "org_id", "display_name", "is_active").
		From("profiles").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list profiles: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	profiles := make(map[uuid.UUID]domain.Profile, len(rows))
	for _, r := range rows {
		profiles[r.ID] = toDomain(r)
	}
	return profiles, nil
}

// OwnerOrg reports which org owns the referenced profile. Used as the
// target directory for profile-kind references; found is false when the
// profile does not exist.
func (r *Repo) OwnerOrg(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return p.OrgID, true, nil
}
