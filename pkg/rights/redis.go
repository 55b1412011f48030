package rights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/readium/kotlin-toolkit-sub011/pkg/config"
)

// Config holds the Redis connection settings for the counter store.
type Config struct {
	ConnectionURL  string        `env:"LCP_REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"LCP_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"LCP_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"LCP_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

var (
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady           = errors.New("redis is not ready")
)

// Connect establishes a Redis connection, retrying per the config before
// giving up.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConnString, err)
	}

	for attempt := 0; attempt < cfg.RetryAttempts; attempt++ {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// ConnectFromEnv establishes a Redis connection configured from LCP_REDIS_*
// environment variables.
func ConnectFromEnv(ctx context.Context) (*redis.Client, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return Connect(ctx, cfg)
}

// RedisStore persists rights counters in Redis under
// lcp:rights:<license-id>:<counter>. Safe for concurrent use.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a store over an established Redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, licenseID string, counter Counter) (*int, error) {
	value, err := s.client.Get(ctx, redisKey(licenseID, counter)).Int()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetCounter, err)
	}
	return &value, nil
}

func (s *RedisStore) Set(ctx context.Context, licenseID string, counter Counter, value int) error {
	if err := s.client.Set(ctx, redisKey(licenseID, counter), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSetCounter, err)
	}
	return nil
}

func redisKey(licenseID string, counter Counter) string {
	return fmt.Sprintf("lcp:rights:%s:%s", licenseID, counter)
}
