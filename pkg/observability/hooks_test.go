package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnAggregateStart(ctx, 10)
	p.OnAggregateComplete(ctx, 10, 5, time.Second)
	p.OnLayoutStart(ctx, 5)
	p.OnLayoutComplete(ctx, 5, time.Second)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "aggregate")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/sessions/abc/cloud.svg")
	h.OnResponse(ctx, "GET", "/sessions/abc/cloud.svg", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
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

	// Reset restores noops
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	Reset()
	defer Reset()

	SetPipelineHooks(nil)
	if Pipeline() == nil {
		t.Error("SetPipelineHooks(nil) should not clear hooks")
	}
	SetCacheHooks(nil)
	if Cache() == nil {
		t.Error("SetCacheHooks(nil) should not clear hooks")
	}
	SetHTTPHooks(nil)
	if HTTP() == nil {
		t.Error("SetHTTPHooks(nil) should not clear hooks")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	hooks := &testPipelineHooks{}
	SetPipelineHooks(hooks)

	ctx := context.Background()
	Pipeline().OnAggregateStart(ctx, 3)
	Pipeline().OnAggregateComplete(ctx, 3, 2, time.Millisecond)
	Pipeline().OnLayoutStart(ctx, 2)
	Pipeline().OnLayoutComplete(ctx, 2, time.Millisecond)

	if hooks.aggregateStarts != 1 {
		t.Errorf("aggregateStarts = %d, want 1", hooks.aggregateStarts)
	}
	if hooks.aggregateCompletes != 1 {
		t.Errorf("aggregateCompletes = %d, want 1", hooks.aggregateCompletes)
	}
	if hooks.layoutStarts != 1 {
		t.Errorf("layoutStarts = %d, want 1", hooks.layoutStarts)
	}
	if hooks.layoutCompletes != 1 {
		t.Errorf("layoutCompletes = %d, want 1", hooks.layoutCompletes)
	}
}

// testPipelineHooks counts pipeline events.
type testPipelineHooks struct {
	NoopPipelineHooks
	aggregateStarts    int
	aggregateCompletes int
	layoutStarts       int
	layoutCompletes    int
}

func (h *testPipelineHooks) OnAggregateStart(ctx context.Context, submissionCount int) {
	h.aggregateStarts++
}

func (h *testPipelineHooks) OnAggregateComplete(ctx context.Context, submissionCount, wordCount int, duration time.Duration) {
	h.aggregateCompletes++
}

func (h *testPipelineHooks) OnLayoutStart(ctx context.Context, wordCount int) {
	h.layoutStarts++
}

func (h *testPipelineHooks) OnLayoutComplete(ctx context.Context, wordCount int, duration time.Duration) {
	h.layoutCompletes++
}

type testCacheHooks struct {
	NoopCacheHooks
}

type testHTTPHooks struct {
	NoopHTTPHooks
}
