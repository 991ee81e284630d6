package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WatermarkedFilename derives the output filename for an upload. Output is
// always JPEG regardless of the source extension.
func WatermarkedFilename(originalFilename string) string {
	name := strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename))
	if name == "" {
		name = "image"
	}
	return "watermarked_" + name + ".jpg"
}

func GenerateStorageKey(filename string) string {
	ext := filepath.Ext(filename)
	name := strings.TrimSuffix(filename, ext)
	timestamp := time.Now().Unix()
	uuid := uuid.New().String()[:8]

	return fmt.Sprintf("watermarked/%s_%d_%s%s", name, timestamp, uuid, ext)
}
