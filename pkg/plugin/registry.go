package plugin

import (
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Registry maps board type strings to plugins. It is safe for concurrent
// use; lookups take a read lock only.
//
// Registration is insert-or-replace: the last plugin registered for a type
// wins, and registering the same plugin twice is a no-op in effect.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Descriptor
	sealed  bool
	logger  *log.Logger
}

// Option configures a [Registry].
type Option func(*Registry)

// WithLogger sets the logger used to report late registrations.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		plugins: make(map[string]Descriptor),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register inserts d, replacing any plugin previously registered for the
// same type. Registering after [Registry.Seal] still succeeds.
func (r *Registry) Register(d Descriptor) {
	if d == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	typ := d.Type()
	if r.sealed {
		r.logger.Warn("plugin registered after startup", "type", typ)
	}
	if _, exists := r.plugins[typ]; exists {
		r.logger.Debug("replacing plugin", "type", typ)
	}
	r.plugins[typ] = d
}

// Lookup returns the plugin for typ. An absent type is not an error.
func (r *Registry) Lookup(typ string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.plugins[typ]
	return d, ok
}

// All returns every registered plugin sorted by type.
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	out := make([]Descriptor, 0, len(r.plugins))
	for _, d := range r.plugins {
		out = append(out, d)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Descriptor) int { return strings.Compare(a.Type(), b.Type()) })
	return out
}

// Menu returns the plugins a user may add, sorted by title.
func (r *Registry) Menu() []Descriptor {
	all := r.All()
	out := all[:0]
	for _, d := range all {
		if !IsHidden(d) {
			out = append(out, d)
		}
	}
	slices.SortStableFunc(out, func(a, b Descriptor) int {
		return strings.Compare(a.Meta().Title, b.Meta().Title)
	})
	return out
}

// Types returns the registered type strings in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.plugins))
	for typ := range r.plugins {
		out = append(out, typ)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// Seal marks the end of startup population.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
