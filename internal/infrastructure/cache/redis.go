package cache

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/errors"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/config"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Println("✅ Redis connected successfully")
	return client, nil
}

// RedisBaselineStore keeps baselines as JSON values with a TTL
type RedisBaselineStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisBaselineStore creates a store; ttl <= 0 keeps keys without expiry
func NewRedisBaselineStore(client redis.Cmdable, ttl time.Duration) *RedisBaselineStore {
	return &RedisBaselineStore{client: client, ttl: ttl}
}

// Get returns the user's baseline, nil if none is stored
func (s *RedisBaselineStore) Get(ctx context.Context, userID string) (*entities.Baseline, error) {
	data, err := s.client.Get(ctx, baselineKey(userID)).Bytes()
	if err != nil {
		if stdErrors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.ErrCacheFailed("get baseline", err)
	}

	var b entities.Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.ErrCacheFailed("decode baseline", err)
	}
	return &b, nil
}

// Save writes the baseline and refreshes its TTL
func (s *RedisBaselineStore) Save(ctx context.Context, baseline *entities.Baseline) error {
	data, err := json.Marshal(baseline)
	if err != nil {
		return errors.ErrCacheFailed("encode baseline", err)
	}

	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, baselineKey(baseline.UserID), data, ttl).Err(); err != nil {
		return errors.ErrCacheFailed("save baseline", err)
	}
	return nil
}

// Delete removes the user's baseline
func (s *RedisBaselineStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, baselineKey(userID)).Err(); err != nil {
		return errors.ErrCacheFailed("delete baseline", err)
	}
	return nil
}
