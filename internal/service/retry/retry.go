// Package retry bounds the re-execution of write transactions. Transient
// storage failures are retried with exponential backoff; domain outcomes
// and context cancellation are permanent.
package retry

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"

	"github.com/heartmarshall/crm-backend/internal/config"
	"github.com/heartmarshall/crm-backend/internal/domain"
)

// Do runs fn until it succeeds, fails permanently, or the configured window
// elapses. The last error is returned.
func Do(ctx context.Context, cfg config.RetryConfig, fn func(context.Context) error) error {
	op := func() error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if permanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	bo.MaxElapsedTime = cfg.MaxElapsedTime

	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}

// permanent reports whether retrying cannot change the outcome.
func permanent(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	for _, sentinel := range []error{
		domain.ErrValidation,
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrUnauthorized,
		domain.ErrForbidden,
		domain.ErrUnknownEntityType,
		domain.ErrCrossTenant,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
