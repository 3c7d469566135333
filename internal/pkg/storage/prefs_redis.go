package storage

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/Aguus467/angulismotv/internal/pkg/config"
)

// prefsTTL keeps abandoned viewer profiles from piling up.
const prefsTTL = 90 * 24 * time.Hour

// RedisPrefsStore persists per-viewer preferences (last picked option per
// channel, selected theme) as one JSON blob per viewer.
type RedisPrefsStore struct {
	client *redis.Client
}

func NewRedisPrefsStore(cfg *config.RedisConfig) (*RedisPrefsStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisPrefsStore{client: client}, nil
}

func prefsKey(viewer string) string {
	return fmt.Sprintf("prefs:%s", viewer)
}

// Get returns the viewer's saved preferences. A viewer never seen before
// gets an empty map, not an error.
func (r *RedisPrefsStore) Get(ctx context.Context, viewer string) (map[string]string, error) {
	data, err := r.client.Get(ctx, prefsKey(viewer)).Result()
	if err == redis.Nil {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prefs for %s: %w", viewer, err)
	}

	var prefs map[string]string
	if err := json.Unmarshal([]byte(data), &prefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prefs for %s: %w", viewer, err)
	}
	return prefs, nil
}

// Set replaces the viewer's preferences and refreshes their TTL.
func (r *RedisPrefsStore) Set(ctx context.Context, viewer string, prefs map[string]string) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}
	return r.client.Set(ctx, prefsKey(viewer), data, prefsTTL).Err()
}

// Close releases the underlying connection pool.
func (r *RedisPrefsStore) Close() error {
	return r.client.Close()
}
