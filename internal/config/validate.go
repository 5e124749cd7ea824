package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Pagination.DefaultLimit <= 0 {
		return fmt.Errorf("pagination.default_limit must be > 0 (got %d)", c.Pagination.DefaultLimit)
	}
	if c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		return fmt.Errorf("pagination.max_limit must be >= default_limit (got %d < %d)",
			c.Pagination.MaxLimit, c.Pagination.DefaultLimit)
	}

	if strings.Contains(c.ObjectStore.Endpoint, "://") {
		return fmt.Errorf("object_store.endpoint must not include scheme: %q", c.ObjectStore.Endpoint)
	}
	if strings.TrimSpace(c.ObjectStore.Bucket) == "" {
		return fmt.Errorf("object_store.bucket is required")
	}

	if c.Retry.MaxElapsedTime <= 0 {
		return fmt.Errorf("retry.max_elapsed_time must be > 0 (got %v)", c.Retry.MaxElapsedTime)
	}
	if c.Retry.InitialInterval <= 0 {
		return fmt.Errorf("retry.initial_interval must be > 0 (got %v)", c.Retry.InitialInterval)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}
