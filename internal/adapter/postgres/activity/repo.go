// Package activity implements the activity log repository using PostgreSQL.
// The log is append-only: this package deliberately has no update or delete
// operations, and none may be added.
package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/crm-backend/internal/adapter/postgres"
	"github.com/heartmarshall/crm-backend/internal/domain"
)

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{
	"id", "org_id", "user_id", "action", "entity_type", "entity_id",
	"entity_name", "description", "created_by", "updated_by",
	"is_active", "created_at", "updated_at",
}

// Repo provides activity log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID          uuid.UUID  `db:"id"`
	OrgID       uuid.UUID  `db:"org_id"`
	UserID      *uuid.UUID `db:"user_id"`
	Action      string     `db:"action"`
	EntityType  string     `db:"entity_type"`
	EntityID    uuid.UUID  `db:"entity_id"`
	EntityName  string     `db:"entity_name"`
	Description string     `db:"description"`
	CreatedBy   *uuid.UUID `db:"created_by"`
	UpdatedBy   *uuid.UUID `db:"updated_by"`
	IsActive    bool       `db:"is_active"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func toDomain(r row) domain.ActivityRecord {
	return domain.ActivityRecord{
		ID:          r.ID,
		OrgID:       r.OrgID,
		UserID:      r.UserID,
		Action:      domain.ActivityAction(r.Action),
		EntityType:  r.EntityType,
		EntityID:    r.EntityID,
		EntityName:  r.EntityName,
		Description: r.Description,
		CreatedBy:   r.CreatedBy,
		UpdatedBy:   r.UpdatedBy,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Append
// ---------------------------------------------------------------------------

// Create appends a record to the activity log and returns the persisted
// domain.ActivityRecord.
func (r *Repo) Create(ctx context.Context, rec domain.ActivityRecord) (domain.ActivityRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Insert("activities").
		Columns("org_id", "user_id", "action", "entity_type", "entity_id", "entity_name", "description", "created_by", "updated_by").
		Values(rec.OrgID, rec.UserID, rec.Action.String(), rec.EntityType, rec.EntityID, rec.EntityName, rec.Description, rec.CreatedBy, rec.UpdatedBy).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.ActivityRecord{}, fmt.Errorf("build insert activity: %w", err)
	}

	var persisted row
	if err := pgxscan.Get(ctx, q, &persisted, query, args...); err != nil {
		return domain.ActivityRecord{}, postgres.MapError(err, "activity", rec.ID)
	}

	return toDomain(persisted), nil
}

// ---------------------------------------------------------------------------
// Query
// ---------------------------------------------------------------------------

// Query returns activity records in the org matching the filter, newest
// first (created_at DESC, id DESC). A non-empty page token continues a
// previous query; the returned token is empty on the last page.
func (r *Repo) Query(ctx context.Context, orgID uuid.UUID, filter Filter) ([]domain.ActivityRecord, string, error) {
	filter.normalize()

	q := postgres.QuerierFromCtx(ctx, r.pool)

	sel := builder.
		Select(columns...).
		From("activities").
		Where(squirrel.Eq{"org_id": orgID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(filter.Limit) + 1) // one extra row to detect the next page

	if filter.EntityType != nil {
		sel = sel.Where(squirrel.Eq{"entity_type": *filter.EntityType})
	}
	if filter.EntityID != nil {
		sel = sel.Where(squirrel.Eq{"entity_id": *filter.EntityID})
	}
	if filter.Action != nil {
		sel = sel.Where(squirrel.Eq{"action": filter.Action.String()})
	}
	if filter.From != nil {
		sel = sel.Where(squirrel.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		sel = sel.Where(squirrel.Lt{"created_at": *filter.To})
	}
	if filter.PageToken != "" {
		afterAt, afterID, err := postgres.DecodePageToken(filter.PageToken)
		if err != nil {
			return nil, "", err
		}
		sel = sel.Where(squirrel.Expr("(created_at, id) < (?, ?)", afterAt, afterID))
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, "", fmt.Errorf("build query activities: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, "", postgres.MapError(err, "activity", orgID)
	}

	nextToken := ""
	if len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
		last := rows[len(rows)-1]
		nextToken = postgres.EncodePageToken(last.CreatedAt, last.ID)
	}

	records := make([]domain.ActivityRecord, len(rows))
	for i, r := range rows {
		records[i] = toDomain(r)
	}
	return records, nextToken, nil
}
