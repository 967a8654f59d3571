// Package cache stores rendered artifacts between runs.
//
// Backends implement [Cache]: [NullCache] disables caching, [FileCache]
// keeps entries on local disk for the CLI, and [RedisCache] shares entries
// between server instances. Keys are built by a [Keyer] so that every
// backend agrees on the key layout.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts identifies how an artifact was produced.
type ArtifactKeyOpts struct {
	Options  any    `json:"options"`  // animation options, JSON encodable
	Playback string `json:"playback"` // playback action applied after animating
	Version  string `json:"version"`  // producer version
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of an animated document produced from the
	// input with the given hash.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string

	// SourceKey returns the key of a document downloaded from url.
	SourceKey(url string) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey generates a key for artifact caching.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// SourceKey generates a key for downloaded input documents.
func (DefaultKeyer) SourceKey(url string) string {
	return hashKey("source", url)
}

// Cache TTLs.
const (
	TTLArtifact = 7 * 24 * time.Hour // animated documents
	TTLSource   = 24 * time.Hour     // downloaded input documents
)
