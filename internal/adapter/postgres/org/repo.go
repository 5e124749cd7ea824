// Package org implements the organization lookup used by the tenant guard.
// Organizations are owned by an external collaborator; this subsystem only
// reads them.
package org

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/crm-backend/internal/adapter/postgres"
	"github.com/heartmarshall/crm-backend/internal/domain"
)

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides read-only organization access backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new organization repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID       uuid.UUID `db:"id"`
	Name     string    `db:"name"`
	IsActive bool      `db:"is_active"`
}

// GetByID returns an organization by primary key.
// Returns domain.ErrNotFound if the organization does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select("id", "name", "is_active").
		From("organizations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get organization: %w", err)
	}

	var persisted row
	if err := pgxscan.Get(ctx, q, &persisted, query, args...); err != nil {
		return nil, postgres.MapError(err, "organization", id)
	}

	return &domain.Organization{
		ID:       persisted.ID,
		Name:     persisted.Name,
		IsActive: persisted.IsActive,
	}, nil
}
