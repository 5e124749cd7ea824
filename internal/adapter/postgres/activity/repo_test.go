package activity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/crm-backend/internal/adapter/postgres/activity"
	"github.com/heartmarshall/crm-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/crm-backend/internal/domain"
)

func newRepo(t *testing.T) (*activity.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return activity.New(pool), pool
}

func buildRecord(orgID uuid.UUID, userID *uuid.UUID, action domain.ActivityAction, entityType string, entityID uuid.UUID) domain.ActivityRecord {
	return domain.ActivityRecord{
		OrgID:      orgID,
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		EntityName: "Acme deal",
	}
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	orgID := testhelper.SeedOrg(t, pool, "Audit Org")
	userID := testhelper.SeedProfile(t, pool, orgID, "Dave")
	entityID := uuid.New()

	got, err := repo.Create(ctx, buildRecord(orgID, &userID, domain.ActionUpdate, "lead", entityID))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.ID == uuid.Nil {
		t.Error("ID should be assigned")
	}
	if got.Action != domain.ActionUpdate {
		t.Errorf("Action mismatch: got %s", got.Action)
	}
	if got.EntityType != "lead" || got.EntityID != entityID {
		t.Errorf("entity mismatch: got %s/%s", got.EntityType, got.EntityID)
	}
	if got.EntityName != "Acme deal" {
		t.Errorf("EntityName mismatch: got %q", got.EntityName)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}
}

func TestRepo_Create_FreeFormEntityType(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	orgID := testhelper.SeedOrg(t, pool, "Free Org")

	// Kinds outside the registry are legal in the activity log.
	got, err := repo.Create(ctx, buildRecord(orgID, nil, domain.ActionView, "team", uuid.New()))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if got.EntityType != "team" {
		t.Errorf("EntityType mismatch: got %q", got.EntityType)
	}
}

func TestRepo_Create_InvalidActionRejectedBySchema(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	orgID := testhelper.SeedOrg(t, pool, "Bad Action Org")

	rec := buildRecord(orgID, nil, domain.ActivityAction("EXPLODE"), "lead", uuid.New())
	_, err := repo.Create(ctx, rec)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error: got %v, want ErrValidation", err)
	}
}

// ---------------------------------------------------------------------------
// Query tests
// ---------------------------------------------------------------------------

func TestRepo_Query_OrgScope(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	orgA := testhelper.SeedOrg(t, pool, "Org A")
	orgB := testhelper.SeedOrg(t, pool, "Org B")

	if _, err := repo.Create(ctx, buildRecord(orgA, nil, domain.ActionCreate, "lead", uuid.New())); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, _, err := repo.Query(ctx, orgB, activity.Filter{})
	if err != nil {
		t.Fatalf("Query: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("org B must not see org A activity, got %d", len(got))
	}
}

func TestRepo_Query_ByEntity(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	orgID := testhelper.SeedOrg(t, pool, "Entity Org")
	target := uuid.New()

	if _, err := repo.Create(ctx, buildRecord(orgID, nil, domain.ActionCreate, "lead", target)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, buildRecord(orgID, nil, domain.ActionComment, "lead", target)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, buildRecord(orgID, nil, domain.ActionCreate, "lead", uuid.New())); err != nil {
		t.Fatalf("Create: %v", err)
	}

	entityType := "lead"
	got, _, err := repo.Query(ctx, orgID, activity.Filter{
		EntityType: &entityType,
		EntityID:   &target,
	})
	if err != nil {
		t.Fatalf("Query: unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records for target entity, got %d", len(got))
	}
	for _, rec := range got {
		if rec.EntityID != target {
			t.Errorf("record %s references wrong entity %s", rec.ID, rec.EntityID)
		}
	}
}

func TestRepo_Query_ByActionAndTime(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	orgID := testhelper.SeedOrg(t, pool, "Time Org")

	if _, err := repo.Create(ctx, buildRecord(orgID, nil, domain.ActionCreate, "task", uuid.New())); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, buildRecord(orgID, nil, domain.ActionDelete, "task", uuid.New())); err != nil {
		t.Fatalf("Create: %v", err)
	}

	action := domain.ActionDelete
	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	got, _, err := repo.Query(ctx, orgID, activity.Filter{
		Action: &action,
		From:   &from,
		To:     &to,
	})
	if err != nil {
		t.Fatalf("Query: unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Action != domain.ActionDelete {
		t.Errorf("expected exactly the DELETE record, got %v", got)
	}

	// Window in the past excludes everything.
	past := time.Now().Add(-2 * time.Hour)
	pastEnd := time.Now().Add(-time.Hour)
	got, _, err = repo.Query(ctx, orgID, activity.Filter{From: &past, To: &pastEnd})
	if err != nil {
		t.Fatalf("Query: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records in past window, got %d", len(got))
	}
}

func TestRepo_Query_Pagination(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	orgID := testhelper.SeedOrg(t, pool, "Page Org")

	for i := 0; i < 5; i++ {
		if _, err := repo.Create(ctx, buildRecord(orgID, nil, domain.ActionView, "account", uuid.New())); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	seen := map[uuid.UUID]bool{}
	token := ""
	for {
		page, next, err := repo.Query(ctx, orgID, activity.Filter{Limit: 2, PageToken: token})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		for _, rec := range page {
			if seen[rec.ID] {
				t.Errorf("record %s returned twice", rec.ID)
			}
			seen[rec.ID] = true
		}
		if next == "" {
			break
		}
		token = next
	}

	if len(seen) != 5 {
		t.Errorf("expected 5 distinct records across pages, got %d", len(seen))
	}
}

func TestRepo_Query_NewestFirst(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	orgID := testhelper.SeedOrg(t, pool, "Order Org")

	for i := 0; i < 3; i++ {
		if _, err := repo.Create(ctx, buildRecord(orgID, nil, domain.ActionUpdate, "contact", uuid.New())); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, _, err := repo.Query(ctx, orgID, activity.Filter{})
	if err != nil {
		t.Fatalf("Query: unexpected error: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Errorf("ordering violated at index %d", i)
		}
	}
}
