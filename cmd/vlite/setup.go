package main

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/vango-dev/vlite/internal/config"
	"github.com/vango-dev/vlite/internal/errors"
	"github.com/vango-dev/vlite/pkg/persist"
)

// loadConfig reads path, or vlite.yaml in the working directory when path
// is empty. A missing default file yields the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(".")
		if errors.HasCode(err, "V100") {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from the log settings.
func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(lc.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// openKV opens the configured persistence backend. BackendNone returns a
// nil KV.
func openKV(ctx context.Context, pc config.PersistConfig) (persist.KV, error) {
	switch pc.Backend {
	case config.BackendNone:
		return nil, nil
	case config.BackendMemory:
		return persist.NewMemory(), nil
	case config.BackendFile:
		kv, err := persist.NewFile(pc.File.Dir)
		if err != nil {
			return nil, errors.New("V201").WithDetail("file backend at " + pc.File.Dir).Wrap(err)
		}
		return kv, nil
	case config.BackendRedis:
		kv := persist.NewRedis(pc.Redis.Addr, pc.Redis.Password, pc.Redis.DB,
			persist.WithPrefix(pc.Redis.Prefix),
			persist.WithTTL(pc.Redis.TTLDuration()),
		)
		pingCtx, cancel := context.WithTimeout(ctx, persist.DefaultTimeout)
		defer cancel()
		if err := kv.Ping(pingCtx); err != nil {
			_ = kv.Close()
			return nil, errors.New("V201").
				WithDetail("redis at " + pc.Redis.Addr).
				WithSuggestion("Check that redis is running or set persist.backend to memory").
				Wrap(err)
		}
		return kv, nil
	case config.BackendS3:
		client := persist.NewS3Client(pc.S3.Region, pc.S3.Endpoint)
		return persist.NewS3(client, pc.S3.Bucket, pc.S3.Prefix), nil
	default:
		return nil, errors.New("V105").WithDetail("persist.backend is \"" + pc.Backend + "\"")
	}
}
