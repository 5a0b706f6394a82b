package config

import (
	"testing"

	"github.com/spf13/viper"
)

func newViper(env map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range env {
		v.Set(k, val)
	}
	return v
}

func TestDefaults(t *testing.T) {
	cfg := fromViper(newViper(nil))

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.App.Workers != 4 {
		t.Errorf("App.Workers = %d, want 4", cfg.App.Workers)
	}
	if cfg.App.MaxUploadMB != 32 {
		t.Errorf("App.MaxUploadMB = %d, want 32", cfg.App.MaxUploadMB)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled should default to false")
	}
	if cfg.Storage.Enabled() {
		t.Error("Storage should be disabled without an endpoint")
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("Server.AllowedOrigins = %v, want [*]", cfg.Server.AllowedOrigins)
	}
}

func TestOverrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]any
		check func(*Config) bool
	}{
		{
			name:  "workers floor at one",
			env:   map[string]any{"APP_WORKERS": 0},
			check: func(c *Config) bool { return c.App.Workers == 1 },
		},
		{
			name:  "json logs",
			env:   map[string]any{"LOG_FORMAT": "json", "LOG_LEVEL": "debug"},
			check: func(c *Config) bool { return c.Log.Format == "json" && c.Log.Level == "debug" },
		},
		{
			name: "storage enabled",
			env: map[string]any{
				"STORAGE_ENDPOINT": "localhost:9000",
				"STORAGE_BUCKET":   "workbooks",
				"STORAGE_USE_SSL":  "false",
			},
			check: func(c *Config) bool { return c.Storage.Enabled() && !c.Storage.UseSSL },
		},
		{
			name:  "cache enabled from string",
			env:   map[string]any{"CACHE_ENABLED": "true", "REDIS_URL": "redis://cache:6379/1"},
			check: func(c *Config) bool { return c.Cache.Enabled && c.Cache.RedisURL == "redis://cache:6379/1" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(fromViper(newViper(tt.env))) {
				t.Errorf("unexpected config for %v", tt.env)
			}
		})
	}
}
