// Package cache provides pluggable byte caching for fetched datasets and
// rendered artifacts.
//
// Two implementations are provided: [FileCache] for CLI usage, where cache
// entries persist across runs in a directory, and [NullCache] for tests or
// when caching is disabled. Keys are built through a [Keyer] so that every
// component derives them the same way.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for cached bytes. Implementations must be
// safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit; an
	// expired or corrupt entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer derives cache keys for the two cacheable stages: raw dataset
// downloads and rendered chart artifacts.
type Keyer interface {
	// DatasetKey keys a raw dataset download by its source URL.
	DatasetKey(url string) string

	// ArtifactKey keys a rendered artifact by the hash of its input table
	// and the render options that shaped it.
	ArtifactKey(tableHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts captures everything beyond the table that changes a
// rendered artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Query  string  `json:"query,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
	// ConfigHash covers the chart configuration; two renders of the same
	// table with different category bounds must not share an artifact.
	ConfigHash string `json:"config_hash"`
}

// DefaultKeyer derives keys by hashing the components.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DatasetKey generates a key of the form "dataset:hash(url)".
func (k *DefaultKeyer) DatasetKey(url string) string {
	return hashKey("dataset", url)
}

// ArtifactKey generates a key of the form "artifact:hash(tableHash, opts)".
func (k *DefaultKeyer) ArtifactKey(tableHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", tableHash, opts)
}
