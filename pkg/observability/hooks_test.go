package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pathway hooks
	p := NoopPathwayHooks{}
	p.OnFetchStart(ctx, "eco00010")
	p.OnFetchComplete(ctx, "eco00010", 42, time.Second, nil)
	p.OnOverlayApplied(ctx, "eco00010", 10, 30)
	p.OnLayoutStart(ctx, "ring", 8)
	p.OnLayoutComplete(ctx, "ring", time.Second, nil)
	p.OnRenderStart(ctx, "svg")
	p.OnRenderComplete(ctx, "svg", 1024, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "kgml")
	c.OnCacheMiss(ctx, "kgml")
	c.OnCacheSet(ctx, "document", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "rest.kegg.jp", "/get/eco00010/kgml")
	h.OnResponse(ctx, "GET", "rest.kegg.jp", "/get/eco00010/kgml", 200, time.Second)
	h.OnError(ctx, "GET", "rest.kegg.jp", "/get/eco00010/kgml", nil)
}

type testPathwayHooks struct {
	NoopPathwayHooks
	fetches int
}

func (h *testPathwayHooks) OnFetchStart(context.Context, string) { h.fetches++ }

type testCacheHooks struct{ NoopCacheHooks }

type testHTTPHooks struct{ NoopHTTPHooks }

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pathway().(NoopPathwayHooks); !ok {
		t.Error("Pathway() should return NoopPathwayHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	custom := &testPathwayHooks{}
	SetPathwayHooks(custom)
	if Pathway() != custom {
		t.Error("SetPathwayHooks should set custom hooks")
	}
	Pathway().OnFetchStart(context.Background(), "eco00010")
	if custom.fetches != 1 {
		t.Errorf("fetches = %d, want 1", custom.fetches)
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
	if _, ok := Pathway().(NoopPathwayHooks); !ok {
		t.Error("Reset() should restore NoopPathwayHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPathwayHooks{}
	SetPathwayHooks(custom)
	SetPathwayHooks(nil)
	if Pathway() != custom {
		t.Error("nil hooks should be ignored")
	}
}
