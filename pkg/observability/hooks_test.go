package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSearchHooks{}
	s.OnLoad(ctx, "input.txt", 8, nil)
	s.OnRasterize(ctx, 10, 24, time.Millisecond, nil)
	s.OnSearchStart(ctx, 28, 4)
	s.OnSearchProgress(ctx, 10, 28, 30)
	s.OnSearchComplete(ctx, 24, 10, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "file")
	c.OnCacheMiss(ctx, "redis")
	c.OnCacheSet(ctx, "mongo", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Search() should return NoopSearchHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customSearch := &testSearchHooks{}
	SetSearchHooks(customSearch)
	if Search() != customSearch {
		t.Error("SetSearchHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Search().OnSearchProgress(context.Background(), 5, 10, 7)
	if customSearch.progress != 1 {
		t.Errorf("progress events = %d, want 1", customSearch.progress)
	}

	Reset()
	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Reset() should restore NoopSearchHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testSearchHooks{}
	SetSearchHooks(custom)
	SetSearchHooks(nil)

	if Search() != custom {
		t.Error("SetSearchHooks(nil) should be ignored")
	}
}

type testSearchHooks struct {
	NoopSearchHooks
	progress int
}

func (h *testSearchHooks) OnSearchProgress(context.Context, int, int, int64) { h.progress++ }

type testCacheHooks struct{ NoopCacheHooks }
