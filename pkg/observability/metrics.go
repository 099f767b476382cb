package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements every hook interface with Prometheus collectors.
type Metrics struct {
	boards   *prometheus.CounterVec
	gestures *prometheus.CounterVec
	moves    *prometheus.CounterVec
	renders  *prometheus.HistogramVec
	plugins  *prometheus.CounterVec
	generate *prometheus.HistogramVec
	store    *prometheus.HistogramVec
	cache    *prometheus.CounterVec
	fetches  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		boards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auteur", Name: "board_events_total",
			Help: "Board additions, removals and updates.",
		}, []string{"event", "type"}),
		gestures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auteur", Name: "gestures_total",
			Help: "Completed pointer gestures.",
		}, []string{"kind"}),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auteur", Name: "gesture_changes_total",
			Help: "Placement changes emitted during gestures.",
		}, []string{"kind"}),
		renders: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "auteur", Name: "render_duration_seconds",
			Help: "Canvas render duration.", Buckets: prometheus.DefBuckets,
		}, []string{"status"}),
		plugins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auteur", Name: "plugin_errors_total",
			Help: "Boards rendered with a missing or failing plugin.",
		}, []string{"reason", "type"}),
		generate: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "auteur", Name: "generate_duration_seconds",
			Help: "Duration of generation requests.", Buckets: prometheus.DefBuckets,
		}, []string{"kind", "status"}),
		store: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "auteur", Name: "store_duration_seconds",
			Help: "Project load and save duration.", Buckets: prometheus.DefBuckets,
		}, []string{"backend", "op", "status"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auteur", Name: "cache_events_total",
			Help: "Render cache hits, misses and writes.",
		}, []string{"event", "key_type"}),
		fetches: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "auteur", Name: "image_fetch_duration_seconds",
			Help: "Outbound image fetches by host and status.", Buckets: prometheus.DefBuckets,
		}, []string{"host", "status"}),
	}
	if reg != nil {
		reg.MustRegister(m.boards, m.gestures, m.moves, m.renders, m.plugins, m.generate, m.store, m.cache, m.fetches)
	}
	return m
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnBoardAdded(boardType, _ string) {
	m.boards.WithLabelValues("added", boardType).Inc()
}

func (m *Metrics) OnBoardRemoved(boardType, _ string) {
	m.boards.WithLabelValues("removed", boardType).Inc()
}

func (m *Metrics) OnBoardUpdated(string) {
	m.boards.WithLabelValues("updated", "").Inc()
}

func (m *Metrics) OnGestureStart(string, string) {}

func (m *Metrics) OnGestureChange(kind, _ string) {
	m.moves.WithLabelValues(kind).Inc()
}

func (m *Metrics) OnGestureEnd(kind, _ string, _ int) {
	m.gestures.WithLabelValues(kind).Inc()
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.renders.WithLabelValues(status(err)).Observe(d.Seconds())
}

func (m *Metrics) OnPluginMissing(_ context.Context, boardType string) {
	m.plugins.WithLabelValues("missing", boardType).Inc()
}

func (m *Metrics) OnPluginFailure(_ context.Context, boardType string, _ error) {
	m.plugins.WithLabelValues("failed", boardType).Inc()
}

func (m *Metrics) OnGenerate(_ context.Context, kind string, d time.Duration, err error) {
	m.generate.WithLabelValues(kind, status(err)).Observe(d.Seconds())
}

func (m *Metrics) OnLoad(_ context.Context, backend, _ string, d time.Duration, err error) {
	m.store.WithLabelValues(backend, "load", status(err)).Observe(d.Seconds())
}

func (m *Metrics) OnSave(_ context.Context, backend, _ string, d time.Duration, err error) {
	m.store.WithLabelValues(backend, "save", status(err)).Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cache.WithLabelValues("hit", keyType).Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cache.WithLabelValues("miss", keyType).Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cache.WithLabelValues("set", keyType).Inc()
}

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, _, host, _ string, code int, d time.Duration) {
	m.fetches.WithLabelValues(host, strconv.Itoa(code)).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, _, host, _ string, _ error) {
	m.fetches.WithLabelValues(host, "error").Observe(0)
}

var (
	_ WorkspaceHooks = (*Metrics)(nil)
	_ RenderHooks    = (*Metrics)(nil)
	_ StoreHooks     = (*Metrics)(nil)
	_ CacheHooks     = (*Metrics)(nil)
	_ HTTPHooks      = (*Metrics)(nil)
)

// Install makes m the active hook implementation for every concern it covers.
func (m *Metrics) Install() {
	SetWorkspaceHooks(m)
	SetRenderHooks(m)
	SetStoreHooks(m)
	SetCacheHooks(m)
	SetHTTPHooks(m)
}
