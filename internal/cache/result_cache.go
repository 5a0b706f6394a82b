package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/andresuchdata/outlet-insight/internal/config"
	"github.com/andresuchdata/outlet-insight/internal/pipeline/inventory"
	"github.com/redis/go-redis/v9"
)

const (
	resultKeyPrefix = "outlet:result:"
	defaultTTL      = time.Hour
	clearBatch      = 100
	pingTimeout     = 5 * time.Second
)

// ResultCache memoises analysis results by workbook content, so uploading
// the same bytes twice skips processing. Only successful results are
// stored.
type ResultCache interface {
	Get(ctx context.Context, data []byte) (*inventory.Result, bool, error)
	Set(ctx context.Context, data []byte, res *inventory.Result) error
	// Clear drops every cached result and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}

type redisResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopResultCache struct{}

// NewResultCache connects to Redis when caching is enabled and returns a
// noop cache otherwise.
func NewResultCache(cfg config.CacheConfig) (ResultCache, error) {
	if !cfg.Enabled {
		return &noopResultCache{}, nil
	}

	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("result cache unreachable at %s: %w", opts.Addr, err)
	}

	return &redisResultCache{client: client, ttl: resultTTL(cfg)}, nil
}

func NewNoopResultCache() ResultCache {
	return &noopResultCache{}
}

// redisOptions prefers REDIS_URL and falls back to host, port and db.
func redisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}

	host, port := cfg.RedisHost, cfg.RedisPort
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "6379"
	}
	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func resultTTL(cfg config.CacheConfig) time.Duration {
	if cfg.ResultTTLSeconds <= 0 {
		return defaultTTL
	}
	return time.Duration(cfg.ResultTTLSeconds) * time.Second
}

func (c *redisResultCache) Get(ctx context.Context, data []byte) (*inventory.Result, bool, error) {
	payload, err := c.client.Get(ctx, resultKey(data)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var res inventory.Result
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, false, fmt.Errorf("decode result cache: %w", err)
	}

	return &res, true, nil
}

func (c *redisResultCache) Set(ctx context.Context, data []byte, res *inventory.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result cache: %w", err)
	}

	if err := c.client.Set(ctx, resultKey(data), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// Clear scans the result keys and unlinks them in batches.
func (c *redisResultCache) Clear(ctx context.Context) (int, error) {
	var (
		removed int
		batch   = make([]string, 0, clearBatch)
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := c.client.Unlink(ctx, batch...).Result()
		if err != nil {
			return fmt.Errorf("redis unlink failed: %w", err)
		}
		removed += int(n)
		batch = batch[:0]
		return nil
	}

	iter := c.client.Scan(ctx, 0, resultKeyPrefix+"*", clearBatch).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == clearBatch {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("redis scan failed: %w", err)
	}
	if err := flush(); err != nil {
		return removed, err
	}
	return removed, nil
}

func (n *noopResultCache) Get(ctx context.Context, data []byte) (*inventory.Result, bool, error) {
	return nil, false, nil
}

func (n *noopResultCache) Set(ctx context.Context, data []byte, res *inventory.Result) error {
	return nil
}

func (n *noopResultCache) Clear(ctx context.Context) (int, error) {
	return 0, nil
}

func resultKey(data []byte) string {
	sum := sha1.Sum(data)
	return resultKeyPrefix + hex.EncodeToString(sum[:])
}
