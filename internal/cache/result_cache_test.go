package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/outlet-insight/internal/config"
	"github.com/andresuchdata/outlet-insight/internal/pipeline/inventory"
)

func TestResultKey(t *testing.T) {
	a := resultKey([]byte("workbook one"))
	b := resultKey([]byte("workbook two"))

	if a == b {
		t.Fatal("different content must give different keys")
	}
	if a != resultKey([]byte("workbook one")) {
		t.Error("same content must give the same key")
	}
	if !strings.HasPrefix(a, resultKeyPrefix) || len(a) != len(resultKeyPrefix)+40 {
		t.Errorf("unexpected key shape %q", a)
	}
}

func TestDisabledCacheIsNoop(t *testing.T) {
	c, err := NewResultCache(config.CacheConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewResultCache: %v", err)
	}

	ctx := context.Background()
	data := []byte("xlsx")
	if err := c.Set(ctx, data, &inventory.Result{}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	res, ok, err := c.Get(ctx, data)
	if err != nil || ok || res != nil {
		t.Errorf("Get = (%v, %v, %v), want a miss", res, ok, err)
	}
	if n, err := c.Clear(ctx); err != nil || n != 0 {
		t.Errorf("Clear = (%d, %v), want (0, nil)", n, err)
	}
}

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.CacheConfig
		wantAddr string
		wantDB   int
		wantErr  bool
	}{
		{
			name:     "url wins",
			cfg:      config.CacheConfig{RedisURL: "redis://cache:6380/2", RedisHost: "ignored"},
			wantAddr: "cache:6380",
			wantDB:   2,
		},
		{
			name:     "host and port",
			cfg:      config.CacheConfig{RedisHost: "redis", RedisPort: "6379", RedisDB: 1},
			wantAddr: "redis:6379",
			wantDB:   1,
		},
		{
			name:     "defaults",
			cfg:      config.CacheConfig{},
			wantAddr: "127.0.0.1:6379",
		},
		{
			name:    "bad url",
			cfg:     config.CacheConfig{RedisURL: "http://nope"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := redisOptions(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("redisOptions: %v", err)
			}
			if opts.Addr != tt.wantAddr || opts.DB != tt.wantDB {
				t.Errorf("got addr %q db %d, want %q db %d", opts.Addr, opts.DB, tt.wantAddr, tt.wantDB)
			}
		})
	}
}

func TestResultTTL(t *testing.T) {
	if got := resultTTL(config.CacheConfig{}); got != time.Hour {
		t.Errorf("default ttl = %s, want 1h", got)
	}
	if got := resultTTL(config.CacheConfig{ResultTTLSeconds: 90}); got != 90*time.Second {
		t.Errorf("ttl = %s, want 1m30s", got)
	}
}

func TestUnreachableRedis(t *testing.T) {
	_, err := NewResultCache(config.CacheConfig{Enabled: true, RedisHost: "127.0.0.1", RedisPort: "1"})
	if err == nil {
		t.Fatal("expected an error for an unreachable redis")
	}
	if !strings.Contains(err.Error(), "127.0.0.1:1") {
		t.Errorf("error should name the address: %v", err)
	}
}
