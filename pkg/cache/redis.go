package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisRetention bounds how long entries live server-side regardless of the
// per-Get TTL windows applied by callers.
const redisRetention = time.Hour

// Config holds Redis connection configuration.
type Config struct {
	URL      string // redis://... or rediss://... for TLS (Upstash)
	Password string
}

type redisEnvelope struct {
	StoredAt time.Time `json:"stored_at"`
	Value    []byte    `json:"value"`
}

// Redis is a Redis-backed cache sharing the timestamp-at-Set semantics of
// the in-memory store.
type Redis struct {
	client *redis.Client
}

// NewRedis connects and pings the configured Redis instance. Constructed
// once at startup and injected; there is no package-level singleton.
func NewRedis(cfg Config) (*Redis, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis: URL not configured")
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	useTLS := parsedURL.Scheme == "rediss"
	addr := parsedURL.Host
	if parsedURL.Port() == "" && useTLS {
		addr = parsedURL.Host + ":6379"
	}

	password := cfg.Password
	if password == "" && parsedURL.User != nil {
		password, _ = parsedURL.User.Password()
	}

	opts := &redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	}
	if useTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: connection failed: %w", err)
	}

	return &Redis{client: client}, nil
}

// Client exposes the underlying connection for collaborators that need raw
// Redis commands, such as the rate limiter.
func (r *Redis) Client() *redis.Client {
	return r.client
}

func (r *Redis) Get(ctx context.Context, key string, ttl time.Duration) ([]byte, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var env redisEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	if ttl > 0 && time.Since(env.StoredAt) > ttl {
		return nil, false
	}
	return env.Value, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	raw, err := json.Marshal(redisEnvelope{StoredAt: time.Now(), Value: value})
	if err != nil {
		return
	}
	r.client.Set(ctx, key, raw, redisRetention)
}

// HealthCheck reports connection health.
func (r *Redis) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
