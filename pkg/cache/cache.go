// Package cache stores rendered artifacts and palettes by content key.
//
// Rendering is deterministic, so a key derived from the normalized poster
// configuration identifies its output exactly and a hit is byte-identical
// to a fresh render.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a directory (CLI)
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching
//
// # Keys
//
// A [Keyer] turns hashes and options into keys. [ScopedKeyer] prefixes
// every key to isolate namespaces sharing one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Entry lifetimes.
const (
	TTLArtifact = 30 * 24 * time.Hour
	TTLPalette  = 7 * 24 * time.Hour
)

// ArtifactKeyOpts distinguishes artifacts rendered from the same config.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// PaletteKeyOpts identifies a standalone palette request.
type PaletteKeyOpts struct {
	Mode    string  `json:"mode"`
	Count   int     `json:"count"`
	BaseHue float64 `json:"base_hue"`
	Seed    uint64  `json:"seed"`
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(configHash string, opts ArtifactKeyOpts) string
	PaletteKey(opts PaletteKeyOpts) string
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns the key for one rendered format of a config.
func (DefaultKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", configHash, opts)
}

// PaletteKey returns the key for a generated palette.
func (DefaultKeyer) PaletteKey(opts PaletteKeyOpts) string {
	return hashKey("palette", opts)
}
