package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vlite/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vlite.yaml"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultApp is the application served when none is configured.
	DefaultApp = "todo"

	// DefaultPersistKey is the record the todo state is saved under.
	DefaultPersistKey = "todoApp"
)

// Persistence backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendS3     = "s3"
)

// Apps lists the built-in applications.
var Apps = []string{"counter", "todo"}

// Config represents the complete vlite.yaml configuration.
type Config struct {
	// App is the built-in application to run ("counter" or "todo").
	App string `yaml:"app,omitempty"`

	// Server contains HTTP server configuration.
	Server ServerConfig `yaml:"server,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `yaml:"log,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `yaml:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `yaml:"tracing,omitempty"`

	// Persist contains state persistence configuration.
	Persist PersistConfig `yaml:"persist,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host         string `yaml:"host,omitempty"`
	Port         int    `yaml:"port,omitempty"`
	ReadTimeout  string `yaml:"readTimeout,omitempty"`
	WriteTimeout string `yaml:"writeTimeout,omitempty"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// ReadTimeoutDuration parses ReadTimeout. Invalid values yield zero;
// Validate reports them.
func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.ReadTimeout)
	return d
}

// WriteTimeoutDuration parses WriteTimeout.
func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.WriteTimeout)
	return d
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`

	// Format is text or json.
	Format string `yaml:"format,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace,omitempty"`
	Path      string `yaml:"path,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	TracerName string `yaml:"tracerName,omitempty"`
}

// PersistConfig selects and configures the persistence backend.
type PersistConfig struct {
	// Backend is one of none, memory, file, redis, s3.
	Backend string `yaml:"backend,omitempty"`

	// Key is the record name the application state is stored under.
	Key string `yaml:"key,omitempty"`

	File  FileConfig  `yaml:"file,omitempty"`
	Redis RedisConfig `yaml:"redis,omitempty"`
	S3    S3Config    `yaml:"s3,omitempty"`
}

// FileConfig configures the file backend.
type FileConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
	TTL      string `yaml:"ttl,omitempty"`
}

// TTLDuration parses TTL; empty means no expiry.
func (r RedisConfig) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(r.TTL)
	return d
}

// S3Config configures the s3 backend.
type S3Config struct {
	Bucket   string `yaml:"bucket,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		App: DefaultApp,
		Server: ServerConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			ReadTimeout:  "15s",
			WriteTimeout: "15s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "vlite",
			Path:      "/metrics",
		},
		Tracing: TracingConfig{
			TracerName: "vlite",
		},
		Persist: PersistConfig{
			Backend: BackendMemory,
			Key:     DefaultPersistKey,
			File:    FileConfig{Dir: filepath.Join(".vlite", "state")},
			Redis:   RedisConfig{Prefix: "vlite:"},
			S3:      S3Config{Prefix: "vlite/", Region: "us-east-1"},
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for vlite.yaml in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("V100").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without --config to use defaults")
		}
		return nil, errors.New("V101").Wrap(err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("V101").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid YAML")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("V101").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("V101").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()

	if c.App == "" {
		c.App = d.App
	}
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = d.Tracing.TracerName
	}
	if c.Persist.Backend == "" {
		c.Persist.Backend = d.Persist.Backend
	}
	if c.Persist.Key == "" {
		c.Persist.Key = d.Persist.Key
	}
	if c.Persist.File.Dir == "" {
		c.Persist.File.Dir = d.Persist.File.Dir
	}
	if c.Persist.Redis.Prefix == "" {
		c.Persist.Redis.Prefix = d.Persist.Redis.Prefix
	}
	if c.Persist.S3.Region == "" {
		c.Persist.S3.Region = d.Persist.S3.Region
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !isApp(c.App) {
		return errors.New("V104").
			WithDetail("app is \"" + c.App + "\"").
			WithSuggestion("Use one of: counter, todo")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("V102").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Server.Port))
	}

	for name, value := range map[string]string{
		"server.readTimeout":  c.Server.ReadTimeout,
		"server.writeTimeout": c.Server.WriteTimeout,
		"persist.redis.ttl":   c.Persist.Redis.TTL,
	} {
		if value == "" {
			continue
		}
		if d, err := time.ParseDuration(value); err != nil || d < 0 {
			return errors.New("V103").
				WithDetail(name + " is \"" + value + "\"").
				WithSuggestion("Use a Go duration such as \"15s\"")
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("V108").WithDetail("log.level is \"" + c.Log.Level + "\"")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("V108").WithDetail("log.format is \"" + c.Log.Format + "\"")
	}

	switch c.Persist.Backend {
	case BackendNone, BackendMemory, BackendFile:
	case BackendRedis:
		if c.Persist.Redis.Addr == "" {
			return errors.New("V106").WithSuggestion("Set persist.redis.addr, e.g. localhost:6379")
		}
	case BackendS3:
		if c.Persist.S3.Bucket == "" {
			return errors.New("V107").WithSuggestion("Set persist.s3.bucket")
		}
	default:
		return errors.New("V105").WithDetail("persist.backend is \"" + c.Persist.Backend + "\"")
	}
	if c.Persist.Backend != BackendNone && c.Persist.Key == "" {
		return errors.New("V109")
	}

	return nil
}

func isApp(name string) bool {
	for _, app := range Apps {
		if app == name {
			return true
		}
	}
	return false
}
