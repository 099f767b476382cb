package pipeline

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/cache"
	"github.com/matzehuels/auteur/pkg/errors"
)

// Source is what the pipeline renders; *workspace.Workspace implements it.
type Source interface {
	Snapshot() *board.Project
	Fullscreen() (string, bool)
	Render(ctx context.Context, format string) ([]byte, error)
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ProjectHash is the content hash of the rendered snapshot.
	ProjectHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which formats came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Boards     int
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per format.
type CacheInfo struct {
	Hits []string
}

// AllHit reports whether no format had to be rendered.
func (c CacheInfo) AllHit(formats []string) bool { return len(c.Hits) == len(formats) }

// Runner encapsulates rendering with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner holds no per-run state; multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Render produces every requested format from src. Formats are rendered
// concurrently; the first failure cancels the rest and is returned.
func (r *Runner) Render(ctx context.Context, src Source, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}

	snap := src.Snapshot()
	fullscreen, _ := src.Fullscreen()
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize project for cache key")
	}
	hash := cache.Hash(data)

	result := &Result{
		ProjectHash: hash,
		Artifacts:   make(map[string][]byte, len(opts.Formats)),
		Stats:       Stats{Boards: len(snap.Boards)},
	}
	start := time.Now()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	rend := newRenderer(gctx, src, opts)
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format, fullscreen))
		g.Go(func() error {
			if !opts.Refresh {
				if data, hit, err := r.Cache.Get(gctx, key); err == nil && hit {
					mu.Lock()
					result.Artifacts[format] = data
					result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
					mu.Unlock()
					return nil
				}
			}

			data, err := rend.render(gctx, format)
			if err != nil {
				code := errors.GetCode(err)
				if code == "" {
					code = errors.ErrCodeInternal
				}
				return errors.Wrap(code, err, "render %s", format)
			}
			if err := r.Cache.Set(gctx, key, data, cache.TTLArtifact); err != nil {
				r.Logger.Warn("cache write failed", "format", format, "err", err)
			}
			mu.Lock()
			result.Artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", len(result.CacheInfo.Hits),
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
