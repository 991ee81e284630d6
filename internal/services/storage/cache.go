package storage

import (
	"context"
	"crypto/md5"
	"fmt"

	"github.com/MaorParienty/watermark-api/internal/models"
	"github.com/redis/go-redis/v9"
)

func (s *StorageService) GetFromCache(ctx context.Context, cacheKey string) ([]byte, error) {
	if s.redisClient == nil {
		return nil, nil
	}

	data, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	return data, nil
}

func (s *StorageService) SetCache(ctx context.Context, cacheKey string, data []byte) error {
	if s.redisClient == nil {
		return nil
	}
	return s.redisClient.Set(ctx, cacheKey, data, s.cacheDuration).Err()
}

// GenerateCacheKey hashes the upload bytes together with every config field
// that affects the rendered output.
func (s *StorageService) GenerateCacheKey(imageData []byte, cfg *models.WatermarkConfig) string {
	hash := md5.New()
	hash.Write(imageData)
	fmt.Fprintf(hash, "wm_%s_%s_%d_%d_%s_%d",
		cfg.Text, cfg.Color, cfg.Opacity, cfg.FontSize, cfg.Position, cfg.MaxResolution)

	return fmt.Sprintf("wm_cache:%x", hash.Sum(nil))
}
