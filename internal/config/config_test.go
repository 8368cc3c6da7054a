package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/vlite/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.App != DefaultApp {
		t.Errorf("App = %q, want %q", cfg.App, DefaultApp)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Addr() != "localhost:8080" {
		t.Errorf("Server.Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Persist.Backend != BackendMemory {
		t.Errorf("Persist.Backend = %q, want memory", cfg.Persist.Backend)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	content := `app: counter
server:
  port: 9090
  readTimeout: 5s
log:
  level: debug
persist:
  backend: redis
  redis:
    addr: localhost:6379
    ttl: 1h
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App != "counter" {
		t.Errorf("App = %q, want counter", cfg.App)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
	if cfg.Server.ReadTimeoutDuration() != 5*time.Second {
		t.Errorf("ReadTimeoutDuration() = %v", cfg.Server.ReadTimeoutDuration())
	}
	if cfg.Server.WriteTimeoutDuration() != 15*time.Second {
		t.Errorf("WriteTimeoutDuration() = %v", cfg.Server.WriteTimeoutDuration())
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Persist.Key != DefaultPersistKey {
		t.Errorf("Persist.Key = %q, want default", cfg.Persist.Key)
	}
	if cfg.Persist.Redis.Prefix != "vlite:" {
		t.Errorf("Persist.Redis.Prefix = %q", cfg.Persist.Redis.Prefix)
	}
	if cfg.Persist.Redis.TTLDuration() != time.Hour {
		t.Errorf("TTLDuration() = %v", cfg.Persist.Redis.TTLDuration())
	}
	if cfg.Path() != filepath.Join(dir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.HasCode(err, "V100") {
		t.Errorf("Load() error = %v, want V100", err)
	}
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if !errors.HasCode(err, "V101") {
		t.Errorf("LoadFile() error = %v, want V101", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := New()
	cfg.App = "counter"
	cfg.Persist.Backend = BackendFile
	cfg.Persist.File.Dir = "/tmp/state"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.App != "counter" || loaded.Persist.Backend != BackendFile || loaded.Persist.File.Dir != "/tmp/state" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
	}{
		{"unknown app", func(c *Config) { c.App = "chat" }, "V104"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "V102"},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, "V102"},
		{"bad timeout", func(c *Config) { c.Server.ReadTimeout = "soon" }, "V103"},
		{"negative ttl", func(c *Config) { c.Persist.Redis.TTL = "-1s" }, "V103"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "V108"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "V108"},
		{"unknown backend", func(c *Config) { c.Persist.Backend = "etcd" }, "V105"},
		{"redis without addr", func(c *Config) { c.Persist.Backend = BackendRedis }, "V106"},
		{"s3 without bucket", func(c *Config) { c.Persist.Backend = BackendS3 }, "V107"},
		{"empty key", func(c *Config) { c.Persist.Key = "" }, "V109"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.HasCode(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}

	t.Run("none backend ignores key", func(t *testing.T) {
		cfg := New()
		cfg.Persist.Backend = BackendNone
		cfg.Persist.Key = ""
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})
}
