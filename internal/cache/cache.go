package cache

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the TTL key-value cache the extraction layer collaborates with.
// Values are fully recomputed on miss, so get/set need no read-modify-write
// coordination.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// TranscriptKey is the cache key for a full extraction, deterministic over
// the raw URL and requested language.
func TranscriptKey(url, language string) string {
	return fmt.Sprintf("transcript:%x", md5.Sum([]byte(url+":"+language)))
}

// VideoInfoKey is the cache key for a metadata-only lookup.
func VideoInfoKey(videoID string) string {
	return "video_info:" + videoID
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache get %s failed: %v", key, err)
		}
		return nil, false
	}
	return val, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("cache set %s failed: %v", key, err)
	}
}
