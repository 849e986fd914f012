package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, "abc", []string{"png"})
	r.OnRenderComplete(ctx, "abc", []string{"png"}, 8, time.Second, nil)
	r.OnBatchStart(ctx, 4, 2)
	r.OnBatchComplete(ctx, 4, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "palette")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "id", "POST", "/v1/render")
	h.OnResponse(ctx, "id", "POST", "/v1/render", 200, 512, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
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

	SetRenderHooks(nil)
	if Render() != customRender {
		t.Error("SetRenderHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
}

func TestLogHooks(t *testing.T) {
	t.Cleanup(Reset)
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	NewLogHooks(logger).Install()
	ctx := context.Background()
	Render().OnRenderStart(ctx, "0123456789abcdef", []string{"svg"})
	Render().OnRenderComplete(ctx, "0123456789abcdef", []string{"svg"}, 3, time.Millisecond, nil)
	Render().OnRenderComplete(ctx, "ff", nil, 0, 0, errors.New("bad layer"))
	Cache().OnCacheHit(ctx, "artifact")
	HTTP().OnResponse(ctx, "req-1", "GET", "/healthz", 200, 2, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"render start", "0123456789ab", "render complete", "render failed", "bad layer", "cache hit", "req-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abcdef") {
		t.Error("hash should be shortened")
	}
}

type testRenderHooks struct{ NoopRenderHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
