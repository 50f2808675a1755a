// Package config loads the inscribe configuration file.
//
// The file is TOML, read from $XDG_CONFIG_HOME/inscribe/config.toml (or
// ~/.config/inscribe/config.toml) unless a path is given explicitly:
//
//	[search]
//	workers = 8
//	batch_size = 1024
//	progress_every = 5000
//	policy = "half-open"
//
//	[cache]
//	backend = "redis"
//	ttl = "720h"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	max_body_bytes = 4194304
//	max_vertices = 2000
//	max_columns = 1048576
//
// Missing keys keep their defaults. Unknown keys are rejected so that typos
// do not silently fall back to defaults. Command-line flags override the file.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/inscribe/pkg/cache"
	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/raster"
	"github.com/matzehuels/inscribe/pkg/search"
)

// AppName names the configuration and cache directories.
const AppName = "inscribe"

// Defaults for the [server] section.
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 4 << 20
	DefaultMaxVertices  = 2000
)

// Config is the full configuration file.
type Config struct {
	Search SearchConfig `toml:"search"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// SearchConfig tunes the candidate search.
type SearchConfig struct {
	Workers       int           `toml:"workers"`
	BatchSize     int           `toml:"batch_size"`
	ProgressEvery int           `toml:"progress_every"`
	Policy        raster.Policy `toml:"policy"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Backend         string   `toml:"backend"`
	Dir             string   `toml:"dir"`
	TTL             Duration `toml:"ttl"`
	RedisURL        string   `toml:"redis_url"`
	MongoURI        string   `toml:"mongo_uri"`
	MongoDatabase   string   `toml:"mongo_database"`
	MongoCollection string   `toml:"mongo_collection"`
}

// ServerConfig configures "inscribe serve".
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
	MaxVertices  int    `toml:"max_vertices"`
	MaxColumns   int    `toml:"max_columns"`
}

// Duration is a time.Duration written as a Go duration string ("720h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Search: SearchConfig{
			Workers:       1,
			BatchSize:     search.DefaultBatchSize,
			ProgressEvery: search.DefaultProgressEvery,
			Policy:        raster.HalfOpen,
		},
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			Dir:     DefaultCacheDir(),
			TTL:     Duration{cache.TTLResult},
		},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
			MaxVertices:  DefaultMaxVertices,
			MaxColumns:   raster.DefaultMaxColumns,
		},
	}
}

// Load reads the file at path on top of [Default]. An empty path reads
// [DefaultPath] and tolerates its absence; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges and backend names.
func (c Config) Validate() error {
	if err := errors.ValidateWorkers(c.Search.Workers); err != nil {
		return err
	}
	if c.Search.BatchSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "search.batch_size must not be negative, got %d", c.Search.BatchSize)
	}
	if err := errors.ValidateChoice("cache.backend", c.Cache.Backend,
		cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone); err != nil {
		return err
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative, got %s", c.Cache.TTL.Duration)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Server.MaxVertices < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_vertices must not be negative, got %d", c.Server.MaxVertices)
	}
	if c.Server.MaxColumns <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_columns must be positive, got %d", c.Server.MaxColumns)
	}
	return nil
}

// CacheOptions converts the [cache] section.
func (c CacheConfig) CacheOptions() cache.Options {
	return cache.Options{
		Backend:         c.Backend,
		Dir:             c.Dir,
		RedisURL:        c.RedisURL,
		MongoURI:        c.MongoURI,
		MongoDatabase:   c.MongoDatabase,
		MongoCollection: c.MongoCollection,
	}
}

// DefaultPath returns the XDG location of the config file, or "" when no
// home directory is known.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName, "config.toml")
}

// DefaultCacheDir returns the cache directory using XDG standard (~/.cache/inscribe/).
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", AppName)
}
