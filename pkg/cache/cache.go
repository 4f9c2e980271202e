// Package cache stores rendered diagram artifacts by content key.
//
// Three implementations share the [Cache] interface: [NullCache] disables
// caching, [FileCache] keeps entries on the local disk, and [RedisCache]
// shares them between service replicas. Keys come from [ArtifactKey], which
// hashes the layout description, so identical diagrams hit the same entry
// no matter which process built them.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/fadiagram/pkg/errors"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the stored data and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Kinds accepted by [Open].
const (
	KindNone  = "none"
	KindFile  = "file"
	KindRedis = "redis"
)

// Kinds lists the cache kinds.
var Kinds = []string{KindNone, KindFile, KindRedis}

// Options selects and configures a cache for [Open].
type Options struct {
	Kind      string // none (default), file or redis
	Dir       string // FileCache directory
	RedisAddr string // host:port of the Redis server
	RedisDB   int
}

// Open creates the cache described by opts.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch kind := strings.ToLower(opts.Kind); kind {
	case "", KindNone:
		return NewNullCache(), nil
	case KindFile:
		if opts.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "file cache needs a directory")
		}
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindRedis:
		if opts.RedisAddr == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "redis cache needs an address")
		}
		c, err := DialRedis(ctx, opts.RedisAddr, opts.RedisDB)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, errors.ValidateChoice(errors.ErrCodeInvalidInput, "cache", kind, Kinds)
	}
}
