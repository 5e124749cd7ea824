package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestActorID_RoundTrip(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithActorID(context.Background(), id)

	got, ok := ActorIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected actor ID to be present")
	}
	if got != id {
		t.Errorf("actor ID: got %v, want %v", got, id)
	}
}

func TestActorID_Missing(t *testing.T) {
	t.Parallel()

	got, ok := ActorIDFromCtx(context.Background())
	if ok {
		t.Error("expected ok=false for missing actor ID")
	}
	if got != uuid.Nil {
		t.Errorf("expected uuid.Nil, got %v", got)
	}
}

func TestActorID_NilUUID(t *testing.T) {
	t.Parallel()

	ctx := WithActorID(context.Background(), uuid.Nil)
	_, ok := ActorIDFromCtx(ctx)
	if ok {
		t.Error("expected ok=false for nil UUID")
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Errorf("request ID: got %q, want %q", got, "req-123")
	}
}

func TestRequestID_Missing(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("expected empty request ID, got %q", got)
	}
}
