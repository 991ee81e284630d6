package storage

import (
	"time"

	"github.com/MaorParienty/watermark-api/internal/config"
	"github.com/redis/go-redis/v9"
	storage_go "github.com/supabase-community/storage-go"
)

// StorageService bundles the optional side channels around the compositor:
// a Redis result cache and Supabase archival of watermarked outputs. Either
// backend is disabled when its configuration is absent; the service then
// degrades to pass-through and the compositing path stays fully functional.
type StorageService struct {
	sbClient      *storage_go.Client
	redisClient   *redis.Client
	bucket        string
	cacheDuration time.Duration
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	s := &StorageService{
		cacheDuration: cfg.Processing.CacheDuration,
	}

	if cfg.Supabase.URL != "" && cfg.Supabase.KEY != "" {
		s.sbClient = storage_go.NewClient(cfg.Supabase.URL+"/storage/v1", cfg.Supabase.KEY, nil)
		s.bucket = cfg.Supabase.BUCKET
	}

	if cfg.Redis.Addr != "" {
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	return s, nil
}

func (s *StorageService) CacheEnabled() bool {
	return s.redisClient != nil
}

func (s *StorageService) UploadEnabled() bool {
	return s.sbClient != nil
}
