package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug records to a
// charmbracelet logger. The CLI installs it under --verbose.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

// Install registers h for all hook categories.
func (h *LogHooks) Install() {
	SetRenderHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnRenderStart(_ context.Context, hash string, formats []string) {
	h.Logger.Debug("render start", "hash", short(hash), "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, hash string, formats []string, layers int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "hash", short(hash), "err", err)
		return
	}
	h.Logger.Debug("render complete", "hash", short(hash), "layers", layers, "duration", d)
}

func (h *LogHooks) OnBatchStart(_ context.Context, seeds, workers int) {
	h.Logger.Debug("batch start", "seeds", seeds, "workers", workers)
}

func (h *LogHooks) OnBatchComplete(_ context.Context, seeds int, d time.Duration, err error) {
	h.Logger.Debug("batch complete", "seeds", seeds, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, id, method, route string) {
	h.Logger.Debug("request", "id", id, "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, id, method, route string, status, bytes int, d time.Duration) {
	h.Logger.Debug("response", "id", id, "status", status, "bytes", bytes, "duration", d)
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
