// Package comment implements the Comment repository using PostgreSQL.
// Comments are soft-deleted only: rows are never removed, is_active flips.
package comment

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
	"id", "org_id", "entity_type", "entity_id", "body",
	"author_id", "created_by", "updated_by",
	"is_active", "created_at", "updated_at",
}

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID         uuid.UUID  `db:"id"`
	OrgID      uuid.UUID  `db:"org_id"`
	EntityType string     `db:"entity_type"`
	EntityID   uuid.UUID  `db:"entity_id"`
	Body       string     `db:"body"`
	AuthorID   *uuid.UUID `db:"author_id"`
	CreatedBy  *uuid.UUID `db:"created_by"`
	UpdatedBy  *uuid.UUID `db:"updated_by"`
	IsActive   bool       `db:"is_active"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

func toDomain(r row) domain.Comment {
	return domain.Comment{
		ID:    r.ID,
		OrgID: r.OrgID,
		Ref: domain.GenericReference{
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
		},
		Text:      r.Body,
		AuthorID:  r.AuthorID,
		CreatedBy: r.CreatedBy,
		UpdatedBy: r.UpdatedBy,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new comment and returns the persisted domain.Comment.
func (r *Repo) Create(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Insert("comments").
		Columns("org_id", "entity_type", "entity_id", "body", "author_id", "created_by", "updated_by").
		Values(c.OrgID, c.Ref.EntityType, c.Ref.EntityID, c.Text, c.AuthorID, c.CreatedBy, c.UpdatedBy).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return domain.Comment{}, fmt.Errorf("build insert comment: %w", err)
	}

	var persisted row
	if err := pgxscan.Get(ctx, q, &persisted, query, args...); err != nil {
		return domain.Comment{}, postgres.MapError(err, "comment", c.ID)
	}

	return toDomain(persisted), nil
}

// Deactivate soft-deletes a comment within the given org. The operation is
// idempotent: repeating it on an already-inactive comment succeeds.
// Returns domain.ErrNotFound if the comment does not exist in the org.
func (r *Repo) Deactivate(ctx context.Context, id, orgID uuid.UUID, actorID *uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Update("comments").
		Set("is_active", false).
		Set("updated_by", actorID).
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build deactivate comment: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "comment", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns active comments on the referenced entity within the org,
// newest first (created_at DESC, id DESC). A non-empty page token continues
// a previous listing; the returned token is empty on the last page.
func (r *Repo) List(ctx context.Context, orgID uuid.UUID, ref domain.GenericReference, limit int, pageToken string) ([]domain.Comment, string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sel := builder.
		Select(columns...).
		From("comments").
		Where(squirrel.Eq{
			"org_id":      orgID,
			"entity_type": ref.EntityType,
			"entity_id":   ref.EntityID,
			"is_active":   true,
		}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit) + 1) // one extra row to detect the next page

	if pageToken != "" {
		afterAt, afterID, err := postgres.DecodePageToken(pageToken)
		if err != nil {
			return nil, "", err
		}
		sel = sel.Where(squirrel.Expr("(created_at, id) < (?, ?)", afterAt, afterID))
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, "", fmt.Errorf("build list comments: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, "", postgres.MapError(err, "comment", ref.EntityID)
	}

	nextToken := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		nextToken = postgres.EncodePageToken(last.CreatedAt, last.ID)
	}

	comments := make([]domain.Comment, len(rows))
	for i, r := range rows {
		comments[i] = toDomain(r)
	}
	return comments, nextToken, nil
}

func joinColumns() string {
	return strings.Join(columns, ", ")
}
