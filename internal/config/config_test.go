package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vizforge/vizforge/pkg/cache"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	// Missing default file is not an error
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("Listen = %q, want :8080", cfg.Server.Listen)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("Backend = %q, want file", cfg.Cache.Backend)
	}
	if !cfg.Server.Redact {
		t.Error("Redact should default to true")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
listen = ":9090"
read_timeout = "10s"
redact = false

[cache]
backend = "redis"
prefix = "staging:"

[cache.redis]
addr = "redis.internal:6379"
db = 2

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Listen != ":9090" {
		t.Errorf("Listen = %q, want :9090", cfg.Server.Listen)
	}
	if cfg.Server.ReadTimeout.Duration != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want 10s", cfg.Server.ReadTimeout.Duration)
	}
	if cfg.Server.Redact {
		t.Error("Redact should be overridden to false")
	}
	if cfg.Cache.Backend != BackendRedis {
		t.Errorf("Backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.Redis.Addr != "redis.internal:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Cache.Redis)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}

	// Untouched sections keep their defaults
	if cfg.Cache.Mongo.Database != "vizforge" {
		t.Errorf("Mongo.Database = %q, want default", cfg.Cache.Mongo.Database)
	}
}

func TestLoadInvalidBackend(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "memcached"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("explicit missing file should be an error")
	}
}

func TestOpenCacheFileAndNone(t *testing.T) {
	cfg := Default()
	cfg.Cache.Backend = BackendNone
	c, err := cfg.OpenCache(t.Context())
	if err != nil {
		t.Fatalf("OpenCache(none): %v", err)
	}
	c.Close()

	cfg.Cache.Backend = BackendFile
	cfg.Cache.Dir = t.TempDir()
	c, err = cfg.OpenCache(t.Context())
	if err != nil {
		t.Fatalf("OpenCache(file): %v", err)
	}
	c.Close()
}

func TestKeyerPrefix(t *testing.T) {
	cfg := Default()
	plain := cfg.Keyer()

	cfg.Cache.Prefix = "team:"
	scoped := cfg.Keyer()

	opts := cache.ModelKeyOpts{Kind: "flowchart"}
	pk := plain.ModelKey("hash", opts)
	sk := scoped.ModelKey("hash", opts)
	if sk != "team:"+pk {
		t.Errorf("scoped key = %q, want prefix over %q", sk, pk)
	}
}
