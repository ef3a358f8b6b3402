package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	g := NoopGenerationHooks{}
	g.OnLoadStart(ctx, "in.csv")
	g.OnLoadComplete(ctx, "in.csv", 3, time.Second, nil)
	g.OnRecordStart(ctx, 1, "alice")
	g.OnRecordComplete(ctx, 1, "alice", time.Millisecond)
	g.OnPersistStart(ctx, "out.pptx", 3)
	g.OnPersistComplete(ctx, "out.pptx", 4096, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "image")
	c.OnCacheMiss(ctx, "image")
	c.OnCacheSet(ctx, "image", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "pbs.twimg.com", "/profile.png")
	h.OnResponse(ctx, "GET", "pbs.twimg.com", "/profile.png", 200, time.Second)
	h.OnError(ctx, "GET", "pbs.twimg.com", "/profile.png", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Generation().(NoopGenerationHooks); !ok {
		t.Error("Generation() should return NoopGenerationHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customGen := &recordingGenerationHooks{}
	SetGenerationHooks(customGen)
	if Generation() != customGen {
		t.Error("SetGenerationHooks should set custom hooks")
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
	if _, ok := Generation().(NoopGenerationHooks); !ok {
		t.Error("Reset() should restore NoopGenerationHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &recordingGenerationHooks{}
	SetGenerationHooks(custom)
	SetGenerationHooks(nil)

	if Generation() != custom {
		t.Error("SetGenerationHooks(nil) should be ignored")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	rec := &recordingGenerationHooks{}
	SetGenerationHooks(rec)

	ctx := context.Background()
	Generation().OnRecordStart(ctx, 1, "alice")
	Generation().OnRecordStart(ctx, 2, "bob")

	if len(rec.started) != 2 || rec.started[1] != "bob" {
		t.Errorf("started = %v", rec.started)
	}
}

func TestConcurrentAccess(t *testing.T) {
	Reset()
	defer Reset()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetHTTPHooks(&testHTTPHooks{})
		}()
		go func() {
			defer wg.Done()
			HTTP().OnRequest(context.Background(), "GET", "h", "/")
		}()
	}
	wg.Wait()
}

type recordingGenerationHooks struct {
	NoopGenerationHooks
	mu      sync.Mutex
	started []string
}

func (r *recordingGenerationHooks) OnRecordStart(_ context.Context, _ int, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, name)
}

type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
