package attachment

import (
	"context"
	"fmt"
)

// DownloadURL returns a short-lived presigned link to the attachment's file.
// The attachment lookup is org-scoped; other orgs get not found.
func (s *Service) DownloadURL(ctx context.Context, input DownloadURLInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	a, err := s.attachments.GetByID(ctx, input.AttachmentID, input.OrgID)
	if err != nil {
		return "", err
	}

	url, err := s.blobs.PresignGet(ctx, a.FileKey, downloadURLTTL)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", domainStorageError(err))
	}
	return url, nil
}
