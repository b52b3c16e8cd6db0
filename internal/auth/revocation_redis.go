package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"talentflow/internal/config"
	"talentflow/internal/logging"
)

const revokedKeyPrefix = "auth:revoked:"

// RedisRevocations shares the revocation list between instances. Entries
// carry a TTL equal to the token's remaining lifetime, so Redis expires them.
type RedisRevocations struct {
	client *redis.Client
	logger logging.Logger
}

// NewRedisClient builds a client from the redis config section.
func NewRedisClient(cfg *config.Config) *redis.Client {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{Addr: "localhost:6379"}
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}

	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return redis.NewClient(opts)
}

func NewRedisRevocations(client *redis.Client, logger logging.Logger) *RedisRevocations {
	return &RedisRevocations{client: client, logger: logger}
}

// Ping tests the Redis connection
func (r *RedisRevocations) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisRevocations) Close() error {
	return r.client.Close()
}

func (r *RedisRevocations) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.key(jti), until.Unix(), ttl).Err(); err != nil {
		r.logger.Error("Failed to store token revocation", map[string]interface{}{
			"jti":   jti,
			"error": err.Error(),
		})
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *RedisRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

// Purge is a no-op; Redis expires entries itself.
func (r *RedisRevocations) Purge(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (r *RedisRevocations) key(jti string) string {
	return revokedKeyPrefix + jti
}
