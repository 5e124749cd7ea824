package postgres

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/crm-backend/internal/domain"
)

// Page tokens implement keyset pagination over the (created_at DESC, id DESC)
// total order shared by comments, attachments, and activities.
// Format: base64(created_at RFC3339Nano + "|" + record id).

// EncodePageToken builds an opaque continuation token from the last record of
// a page.
func EncodePageToken(createdAt time.Time, id uuid.UUID) string {
	raw := createdAt.UTC().Format(time.RFC3339Nano) + "|" + id.String()
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodePageToken parses a continuation token back into its keyset position.
// Malformed tokens fail with a domain.ValidationError so callers surface them
// as client errors rather than storage failures.
func DecodePageToken(token string) (time.Time, uuid.UUID, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, uuid.Nil, domain.NewValidationError("page_token", "invalid encoding")
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, uuid.Nil, domain.NewValidationError("page_token", "invalid format")
	}

	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, uuid.Nil, domain.NewValidationError("page_token", "invalid timestamp")
	}

	id, err := uuid.Parse(parts[1])
	if err != nil {
		return time.Time{}, uuid.Nil, domain.NewValidationError("page_token", "invalid id")
	}

	return createdAt, id, nil
}
