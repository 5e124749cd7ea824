package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/heartmarshall/crm-backend/internal/config"
	"github.com/heartmarshall/crm-backend/internal/domain"
)

func testCfg() config.RetryConfig {
	return config.RetryConfig{
		MaxElapsedTime:  200 * time.Millisecond,
		InitialInterval: time.Millisecond,
	}
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Do(context.Background(), testCfg(), func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
}

func TestDo_RetriesTransientFailure(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Do(context.Background(), testCfg(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}

func TestDo_DomainErrorsArePermanent(t *testing.T) {
	t.Parallel()

	for _, sentinel := range []error{
		domain.ErrValidation,
		domain.ErrNotFound,
		domain.ErrCrossTenant,
		domain.ErrUnknownEntityType,
	} {
		calls := 0
		err := Do(context.Background(), testCfg(), func(ctx context.Context) error {
			calls++
			return sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Errorf("error: got %v, want %v", err, sentinel)
		}
		if calls != 1 {
			t.Errorf("%v: calls: got %d, want 1", sentinel, calls)
		}
	}
}

func TestDo_WrappedDomainErrorIsPermanent(t *testing.T) {
	t.Parallel()

	calls := 0
	wrapped := domain.NewValidationError("text", "required")
	err := Do(context.Background(), testCfg(), func(ctx context.Context) error {
		calls++
		return wrapped
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error: got %v, want ErrValidation", err)
	}
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
}

func TestDo_GivesUpAfterWindow(t *testing.T) {
	t.Parallel()

	transient := errors.New("still down")
	err := Do(context.Background(), testCfg(), func(ctx context.Context) error {
		return transient
	})
	if !errors.Is(err, transient) {
		t.Errorf("error: got %v, want last transient error", err)
	}
}

func TestDo_CanceledContextIsPermanent(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, testCfg(), func(ctx context.Context) error {
		calls++
		return context.Canceled
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error: got %v, want context.Canceled", err)
	}
	if calls > 1 {
		t.Errorf("calls: got %d, want at most 1", calls)
	}
}
