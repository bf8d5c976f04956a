// Package cache stores rendered chart artifacts between runs.
//
// Rendering is deterministic: the same dataset, configuration and
// interaction state always produce the same bytes. The pipeline therefore
// keys artifacts by a hash of all three and skips the work on a hit.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for several servers
//   - [NullCache]: stores nothing, for tests and --no-cache
//
// [Open] picks a backend from a single string such as a directory path or
// a redis:// URL.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any connection held by the backend.
	Close() error
}

// Open returns the backend described by spec: "" or "none" for
// [NullCache], a redis:// or rediss:// URL for [RedisCache], and a
// file:// URL or plain path for a [FileCache] directory.
func Open(ctx context.Context, spec string) (Cache, error) {
	if dir, ok := DirOf(spec); ok {
		return NewFileCache(dir)
	}
	if spec == "" || spec == "none" {
		return NewNullCache(), nil
	}
	return NewRedisCache(ctx, RedisConfig{URL: spec})
}

// DirOf returns the directory a file-backed spec names, or false when spec
// selects another backend.
func DirOf(spec string) (string, bool) {
	switch {
	case spec == "" || spec == "none":
		return "", false
	case strings.HasPrefix(spec, "redis://") || strings.HasPrefix(spec, "rediss://"):
		return "", false
	case strings.HasPrefix(spec, fileScheme):
		dir := strings.TrimPrefix(spec, fileScheme)
		return dir, dir != ""
	default:
		return spec, true
	}
}

const fileScheme = "file://"

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}

// =============================================================================
// Keys
// =============================================================================

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered output of one dataset.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds everything besides the dataset that shapes an
// artifact.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	ConfigHash string `json:"config"`
	StateHash  string `json:"state,omitempty"` // selection and isolation replayed before rendering
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", datasetHash, opts)
}
