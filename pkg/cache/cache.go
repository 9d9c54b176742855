// Package cache stores generated layouts and rendered artifacts.
//
// Generation is deterministic for a given level document, seed and budget,
// so results can be keyed by a content hash of those inputs and reused
// across CLI runs or server requests.
//
//	c, err := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().LayoutKey(levelHash, cache.LayoutKeyOpts{Seed: 42})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    // reuse data
//	}
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. A miss is reported through
// the bool result, not as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts are the generation inputs that change a layout.
type LayoutKeyOpts struct {
	Seed              uint64 `json:"seed"`
	OuterBudget       int    `json:"outer"`
	InnerBudget       int    `json:"inner"`
	MaxCorridorFanOut int    `json:"fan_out"`
	Spawns            bool   `json:"spawns,omitempty"`
}

// ArtifactKeyOpts are the render inputs that change an artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Labels bool   `json:"labels,omitempty"`
	Color  bool   `json:"color,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(levelHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns the key for a generated layout.
func (DefaultKeyer) LayoutKey(levelHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", levelHash, opts)
}

// ArtifactKey returns the key for a rendered artifact.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
