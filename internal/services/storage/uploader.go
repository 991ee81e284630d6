package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/MaorParienty/watermark-api/pkg/utils"
)

// Upload stores a watermarked output in Supabase Storage and returns its
// public URL. Archival is best effort; callers treat failures as non-fatal.
func (s *StorageService) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if s.sbClient == nil {
		return "", nil
	}

	key := utils.GenerateStorageKey(filename)

	_, err := s.sbClient.UploadFile(s.bucket, key, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to upload to supabase: %w", err)
	}

	publicURL := s.sbClient.GetPublicUrl(s.bucket, key)
	return publicURL.SignedURL, nil
}

// Delete removes an archived file from Supabase Storage.
func (s *StorageService) Delete(ctx context.Context, path string) error {
	if s.sbClient == nil {
		return nil
	}
	_, err := s.sbClient.RemoveFile(s.bucket, []string{path})
	return err
}
