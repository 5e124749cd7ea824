// Package attachment implements the Attachment repository using PostgreSQL.
// Only file metadata lives here; the bytes live in the object store under
// file_key.
package attachment

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
	"id", "org_id", "entity_type", "entity_id", "file_key", "name",
	"uploaded_by", "created_by", "updated_by",
	"is_active", "created_at", "updated_at",
}

// Repo provides attachment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new attachment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID         uuid.UUID  `db:"id"`
	OrgID      uuid.UUID  `db:"org_id"`
	EntityType string     `db:"entity_type"`
	EntityID   uuid.UUID  `db:"entity_id"`
	FileKey    string     `db:"file_key"`
	Name       string     `db:"name"`
	UploadedBy *uuid.UUID `db:"uploaded_by"`
	CreatedBy  *uuid.UUID `db:"created_by"`
	UpdatedBy  *uuid.UUID `db:"updated_by"`
	IsActive   bool       `db:"is_active"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

func toDomain(r row) domain.Attachment {
	return domain.Attachment{
		ID:    r.ID,
		OrgID: r.OrgID,
		Ref: domain.GenericReference{
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
		},
		FileKey:      r.FileKey,
		Name:         r.Name,
		UploadedByID: r.UploadedBy,
		CreatedBy:    r.CreatedBy,
		UpdatedBy:    r.UpdatedBy,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new attachment and returns the persisted domain.Attachment.
func (r *Repo) Create(ctx context.Context, a domain.Attachment) (domain.Attachment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Insert("attachments").
		Columns("org_id", "entity_type", "entity_id", "file_key", "name", "uploaded_by", "created_by", "updated_by").
		Values(a.OrgID, a.Ref.EntityType, a.Ref.EntityID, a.FileKey, a.Name, a.UploadedByID, a.CreatedBy, a.UpdatedBy).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("build insert attachment: %w", err)
	}

	var persisted row
	if err := pgxscan.Get(ctx, q, &persisted, query, args...); err != nil {
		return domain.Attachment{}, postgres.MapError(err, "attachment", a.ID)
	}

	return toDomain(persisted), nil
}

// Deactivate soft-deletes an attachment within the given org. Idempotent on
// already-inactive rows. Returns domain.ErrNotFound if the attachment does
// not exist in the org.
func (r *Repo) Deactivate(ctx context.Context, id, orgID uuid.UUID, actorID *uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Update("attachments").
		Set("is_active", false).
		Set("updated_by", actorID).
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build deactivate attachment: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "attachment", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("attachment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an attachment by primary key scoped to the org.
func (r *Repo) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Attachment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select(columns...).
		From("attachments").
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get attachment: %w", err)
	}

	var persisted row
	if err := pgxscan.Get(ctx, q, &persisted, query, args...); err != nil {
		return nil, postgres.MapError(err, "attachment", id)
	}

	a := toDomain(persisted)
	return &a, nil
}

// List returns active attachments on the referenced entity within the org,
// newest first (created_at DESC, id DESC). A non-empty page token continues
// a previous listing; the returned token is empty on the last page.
func (r *Repo) List(ctx context.Context, orgID uuid.UUID, ref domain.GenericReference, limit int, pageToken string) ([]domain.Attachment, string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sel := builder.
		Select(columns...).
		From("attachments").
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
		return nil, "", fmt.Errorf("build list attachments: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, "", postgres.MapError(err, "attachment", ref.EntityID)
	}

	nextToken := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		nextToken = postgres.EncodePageToken(last.CreatedAt, last.ID)
	}

	attachments := make([]domain.Attachment, len(rows))
	for i, r := range rows {
		attachments[i] = toDomain(r)
	}
	return attachments, nextToken, nil
}
