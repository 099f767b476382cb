// Package cache stores rendered artifacts and fetched images so repeated
// renders of an unchanged project, or repeated imports of the same remote
// image, skip the expensive work.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] when
// several server processes share results, and [NullCache] to disable
// caching. Keys come from a [Keyer] so every backend agrees on the layout
// of the key space.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes per entry kind.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLImage    = 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	// ImageKey identifies an image fetched from a URL.
	ImageKey(url string) string
	// ArtifactKey identifies one rendered output of a project snapshot.
	ArtifactKey(projectHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change the output bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Fullscreen string  `json:"fullscreen,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces keys of the form "<kind>:<hash>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ImageKey(url string) string {
	return hashKey("image", url)
}

func (DefaultKeyer) ArtifactKey(projectHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", projectHash, opts)
}

// keyType returns the kind prefix of a key for metrics labels.
func keyType(key string) string {
	for i := range len(key) {
		if key[i] == ':' {
			return key[:i]
		}
	}
	return "unknown"
}
