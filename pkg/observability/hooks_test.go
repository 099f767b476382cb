package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Workspace hooks
	w := NoopWorkspaceHooks{}
	w.OnBoardAdded("IDEABOARD", "b1")
	w.OnBoardRemoved("IDEABOARD", "b1")
	w.OnBoardUpdated("b1")
	w.OnGestureStart("drag", "b1")
	w.OnGestureChange("drag", "b1")
	w.OnGestureEnd("drag", "b1", 3)

	// Render hooks
	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, []string{"svg"})
	r.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
	r.OnPluginMissing(ctx, "WHITEBOARD")
	r.OnPluginFailure(ctx, "DOCUMENT_BUDGET", errors.New("boom"))
	r.OnGenerate(ctx, "script", time.Second, nil)

	// Store hooks
	s := NoopStoreHooks{}
	s.OnLoad(ctx, "file", "p1", time.Millisecond, nil)
	s.OnSave(ctx, "redis", "p1", time.Millisecond, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "render")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "render", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "example.com", "/still.png")
	h.OnResponse(ctx, "GET", "example.com", "/still.png", 200, time.Second)
	h.OnError(ctx, "GET", "example.com", "/still.png", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Workspace().(NoopWorkspaceHooks); !ok {
		t.Error("Workspace() should return NoopWorkspaceHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customWorkspace := &testWorkspaceHooks{}
	SetWorkspaceHooks(customWorkspace)
	if Workspace() != customWorkspace {
		t.Error("SetWorkspaceHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testRenderHooks{}
	SetRenderHooks(custom)
	SetRenderHooks(nil)

	if Render() != custom {
		t.Error("SetRenderHooks(nil) should be ignored")
	}

	Reset()
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.OnBoardAdded("IDEABOARD", "b1")
	m.OnBoardAdded("IDEABOARD", "b2")
	m.OnGestureChange("drag", "b1")
	m.OnGestureEnd("drag", "b1", 1)
	m.OnPluginMissing(ctx, "WHITEBOARD")
	m.OnCacheHit(ctx, "render")

	if got := testutil.ToFloat64(m.boards.WithLabelValues("added", "IDEABOARD")); got != 2 {
		t.Errorf("boards added = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.gestures.WithLabelValues("drag")); got != 1 {
		t.Errorf("gestures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.plugins.WithLabelValues("missing", "WHITEBOARD")); got != 1 {
		t.Errorf("missing plugins = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cache.WithLabelValues("hit", "render")); got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}

	m.OnResponse(ctx, "GET", "img.example.com", "/a.png", 200, 5*time.Millisecond)
	m.OnError(ctx, "GET", "img.example.com", "/b.png", context.DeadlineExceeded)
	if got := testutil.CollectAndCount(m.fetches); got != 2 {
		t.Errorf("fetch series = %d, want 2", got)
	}
}

// Test implementations
type testWorkspaceHooks struct{ NoopWorkspaceHooks }
type testRenderHooks struct{ NoopRenderHooks }
type testStoreHooks struct{ NoopStoreHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
