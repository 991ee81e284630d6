package archive

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/MaorParienty/watermark-api/internal/models"
)

// DownloadFilename is the suggested name for a batch archive download.
const DownloadFilename = "watermarked_images.zip"

// MemberName names an archive member after the zero-based index of the
// upload it was produced from.
func MemberName(index int) string {
	return fmt.Sprintf("watermarked_%d.jpg", index)
}

// Build packs the successful batch items into a zip archive, in input order.
// Failed items are skipped; the surviving members keep their original index
// in the name so callers can still match outputs to uploads.
func Build(items []models.BatchItem) (*bytes.Buffer, error) {
	buffer := &bytes.Buffer{}
	zw := zip.NewWriter(buffer)

	for _, item := range items {
		if item.Err != nil {
			continue
		}

		w, err := zw.Create(MemberName(item.Index))
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to create archive member: %w", err)
		}
		if _, err := w.Write(item.Data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write archive member: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buffer, nil
}
