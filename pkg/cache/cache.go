// Package cache stores solve results keyed by polygon content.
//
// A [Cache] is a plain byte store with per-entry expiry. Backends:
//   - [FileCache]: JSON entries under the user cache directory (CLI default)
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: document store with a TTL index
//   - [NullCache]: caching disabled
//
// [Open] picks a backend from [Options]; [Instrument] reports hits, misses
// and writes to the observability hooks. Keys come from a [Keyer] so that
// every result-affecting option lands in the key.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/inscribe/pkg/errors"
)

// TTLResult is how long a solve result stays cached. Results are pure
// functions of their key, so the TTL only bounds storage growth.
const TTLResult = 30 * 24 * time.Hour

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Cache is a byte store with expiring entries.
type Cache interface {
	// Get returns the value for key. hit is false when the key is absent
	// or expired; err is reserved for backend failures.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend connections.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Options selects and configures a backend.
type Options struct {
	Backend         string
	Dir             string
	RedisURL        string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open connects the backend named by opts.Backend. An empty backend
// selects the file cache.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "file cache needs a directory")
		}
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, opts.RedisURL, DefaultNamespace)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		c, err := NewMongoCache(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, errors.ValidateChoice("cache backend", opts.Backend, BackendFile, BackendRedis, BackendMongo, BackendNone)
	}
}
