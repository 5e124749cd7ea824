package attachment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/crm-backend/internal/adapter/postgres/attachment"
	"github.com/heartmarshall/crm-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/crm-backend/internal/domain"
)

func newRepo(t *testing.T) (*attachment.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return attachment.New(pool), pool
}

func buildAttachment(orgID uuid.UUID, uploaderID *uuid.UUID, ref domain.GenericReference, fileKey, name string) domain.Attachment {
	return domain.Attachment{
		OrgID:        orgID,
		Ref:          ref,
		FileKey:      fileKey,
		Name:         name,
		UploadedByID: uploaderID,
		CreatedBy:    uploaderID,
	}
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	orgID := testhelper.SeedOrg(t, pool, "Upload Org")
	uploaderID := testhelper.SeedProfile(t, pool, orgID, "Carol")
	ref := domain.GenericReference{EntityType: "opportunity", EntityID: uuid.New()}

	got, err := repo.Create(ctx, buildAttachment(orgID, &uploaderID, ref, "org/abc/contract.pdf", "contract.pdf"))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.ID == uuid.Nil {
		t.Error("ID should be assigned")
	}
	if got.FileKey != "org/abc/contract.pdf" {
		t.Errorf("FileKey mismatch: got %q", got.FileKey)
	}
	if got.Name != "contract.pdf" {
		t.Errorf("Name mismatch: got %q", got.Name)
	}
	if got.UploadedByID == nil || *got.UploadedByID != uploaderID {
		t.Errorf("UploadedByID mismatch: got %v, want %s", got.UploadedByID, uploaderID)
	}
	if !got.IsActive {
		t.Error("new attachment should be active")
	}
}

func TestRepo_GetByID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	orgID := testhelper.SeedOrg(t, pool, "Get Org")
	ref := domain.GenericReference{EntityType: "invoice", EntityID: uuid.New()}

	created, err := repo.Create(ctx, buildAttachment(orgID, nil, ref, "org/x/invoice.pdf", "invoice.pdf"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID, orgID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, created.ID)
	}

	// Another org cannot see it.
	otherOrg := testhelper.SeedOrg(t, pool, "Other Org")
	_, err = repo.GetByID(ctx, created.ID, otherOrg)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("cross-org GetByID: got %v, want ErrNotFound", err)
	}
}

func TestRepo_List_ScopedAndOrdered(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	orgID := testhelper.SeedOrg(t, pool, "List Org")
	ref := domain.GenericReference{EntityType: "case", EntityID: uuid.New()}
	otherRef := domain.GenericReference{EntityType: "case", EntityID: uuid.New()}

	for _, key := range []string{"a.txt", "b.txt", "c.txt"} {
		if _, err := repo.Create(ctx, buildAttachment(orgID, nil, ref, "org/y/"+key, key)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := repo.Create(ctx, buildAttachment(orgID, nil, otherRef, "org/y/z.txt", "z.txt")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, next, err := repo.List(ctx, orgID, ref, 10, "")
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if next != "" {
		t.Errorf("expected no next page token, got %q", next)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 attachments on ref, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Errorf("ordering violated at index %d", i)
		}
	}
}

func TestRepo_List_Pagination(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	orgID := testhelper.SeedOrg(t, pool, "Page Org")
	ref := domain.GenericReference{EntityType: "document", EntityID: uuid.New()}

	for i := 0; i < 4; i++ {
		if _, err := repo.Create(ctx, buildAttachment(orgID, nil, ref, "org/p/f.txt", "f.txt")); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	first, token, err := repo.List(ctx, orgID, ref, 3, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first) != 3 || token == "" {
		t.Fatalf("expected full first page with token, got %d rows, token %q", len(first), token)
	}

	second, token2, err := repo.List(ctx, orgID, ref, 3, token)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(second) != 1 || token2 != "" {
		t.Errorf("expected final page of 1, got %d rows, token %q", len(second), token2)
	}
}

func TestRepo_Deactivate_Idempotent(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	orgID := testhelper.SeedOrg(t, pool, "Deactivate Org")
	ref := domain.GenericReference{EntityType: "event", EntityID: uuid.New()}

	created, err := repo.Create(ctx, buildAttachment(orgID, nil, ref, "org/d/gone.txt", "gone.txt"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Deactivate(ctx, created.ID, orgID, nil); err != nil {
		t.Fatalf("first Deactivate: %v", err)
	}
	if err := repo.Deactivate(ctx, created.ID, orgID, nil); err != nil {
		t.Fatalf("second Deactivate should succeed: %v", err)
	}

	got, _, err := repo.List(ctx, orgID, ref, 10, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("deactivated attachment must not be listed")
	}
}

func TestRepo_Deactivate_NotFound(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	orgID := testhelper.SeedOrg(t, pool, "Missing Org")

	err := repo.Deactivate(ctx, uuid.New(), orgID, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error: got %v, want ErrNotFound", err)
	}
}
