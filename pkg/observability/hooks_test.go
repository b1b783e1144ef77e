package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	g := NoopGeneratorHooks{}
	g.OnGenerateStart(ctx, "models/OrderModel.uml")
	g.OnGenerateComplete(ctx, "models/OrderModel.uml", 512, time.Second, nil)

	e := NoopExportHooks{}
	e.OnExportStart(ctx, "svg", "dot")
	e.OnExportComplete(ctx, "svg", "dot", 2048, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnResponse(ctx, "GET", "/api/v1/dot", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Generator().(NoopGeneratorHooks); !ok {
		t.Error("Generator() should return NoopGeneratorHooks by default")
	}
	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Export() should return NoopExportHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	rec := &recorder{}
	SetGeneratorHooks(rec)
	SetExportHooks(rec)
	SetCacheHooks(rec)
	SetHTTPHooks(rec)

	if Generator() != rec || Export() != rec || Cache() != rec || HTTP() != rec {
		t.Error("Set*Hooks should install custom hooks")
	}

	// nil is ignored
	SetGeneratorHooks(nil)
	if Generator() != rec {
		t.Error("SetGeneratorHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset should restore NoopCacheHooks")
	}
}

type recorder struct {
	NoopGeneratorHooks
	NoopExportHooks
	NoopCacheHooks
	NoopHTTPHooks
}
