package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/posterforge/pkg/cache"
	"github.com/matzehuels/posterforge/pkg/errors"
	"github.com/matzehuels/posterforge/pkg/gallery"
	"github.com/matzehuels/posterforge/pkg/pipeline"
)

const smallPoster = `{"layer_count": 3, "point_count": 40, "canvas_size": [60, 80]}`

func newTestServer(t *testing.T) (*httptest.Server, *gallery.MemoryStore) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	store := gallery.NewMemoryStore()
	s := New(Config{
		Runner: pipeline.NewRunner(fc, nil, logger),
		Store:  store,
		Logger: logger,
	})
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return ts, store
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("missing request id: %q", resp.Header.Get(RequestIDHeader))
	}
	body := decode[healthResponse](t, resp)
	if body.Status != "ok" || body.Build.GoVersion == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	ts, _ := newTestServer(t)
	id := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}
}

func TestPalette(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/v1/palettes/mono?count=4&base_hue=0.25&seed=9", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(CacheHeader) != "miss" {
		t.Errorf("first request should miss")
	}
	first := decode[PaletteResponse](t, resp)
	if first.Mode != "mono" || len(first.Colors) != 4 || first.Seed != 9 {
		t.Errorf("palette = %+v", first)
	}

	resp = do(t, http.MethodGet, ts.URL+"/v1/palettes/MONO?count=4&base_hue=0.25&seed=9", "")
	if resp.Header.Get(CacheHeader) != "hit" {
		t.Errorf("second request should hit")
	}
	second := decode[PaletteResponse](t, resp)
	if strings.Join(first.Colors, ",") != strings.Join(second.Colors, ",") {
		t.Errorf("cached palette differs: %v vs %v", first.Colors, second.Colors)
	}
}

func TestPaletteErrors(t *testing.T) {
	ts, _ := newTestServer(t)
	tests := []struct {
		path  string
		code  errors.Code
		param string
	}{
		{"/v1/palettes/sepia", errors.ErrCodeInvalidParameter, "palette_mode"},
		{"/v1/palettes/vivid?count=0", errors.ErrCodeInvalidParameter, "count"},
		{"/v1/palettes/vivid?count=many", errors.ErrCodeInvalidParameter, "count"},
		{"/v1/palettes/vivid?count=500", errors.ErrCodeInvalidParameter, "count"},
		{"/v1/palettes/mono?base_hue=1.5", errors.ErrCodeInvalidParameter, "base_hue"},
		{"/v1/palettes/custom", errors.ErrCodeConfiguration, "custom"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := do(t, http.MethodGet, ts.URL+tt.path, "")
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d", resp.StatusCode)
			}
			body := decode[errorBody](t, resp)
			if body.Code != tt.code || body.Param != tt.param {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestRender(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/v1/render?format=png", smallPoster)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("Content-Type") != "image/png" {
		t.Errorf("content type = %s", resp.Header.Get("Content-Type"))
	}
	data, _ := io.ReadAll(resp.Body)
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 60 || b.Dy() != 80 {
		t.Errorf("size = %v", b)
	}

	again := do(t, http.MethodPost, ts.URL+"/v1/render", smallPoster)
	if again.Header.Get(CacheHeader) != "hit" {
		t.Error("identical render should hit the cache")
	}
	if again.Header.Get(HashHeader) != resp.Header.Get(HashHeader) {
		t.Error("hash should match")
	}

	svg := do(t, http.MethodPost, ts.URL+"/v1/render?format=svg", smallPoster)
	if svg.Header.Get("Content-Type") != "image/svg+xml" {
		t.Errorf("svg content type = %s", svg.Header.Get("Content-Type"))
	}
}

func TestRenderErrors(t *testing.T) {
	ts, _ := newTestServer(t)
	tests := []struct {
		name   string
		query  string
		body   string
		status int
		param  string
	}{
		{"bad format", "?format=gif", smallPoster, 400, "format"},
		{"bad scale", "?scale=x", smallPoster, 400, "scale"},
		{"malformed json", "", `{"seed":`, 400, ""},
		{"unknown key", "", `{"colour": 1}`, 400, ""},
		{"bad point count", "", `{"point_count": 2}`, 400, "point_count"},
		{"oversized layer count", "", `{"layer_count": 2000000000}`, 400, "layer_count"},
		{"oversized palette", "", `{"palette_size": 1152921504606846976}`, 400, "palette_size"},
		{"explicit zero points", "", `{"point_count": 0}`, 400, "point_count"},
		{"custom without table", "", `{"palette_mode": "custom"}`, 400, "custom_palette"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/v1/render"+tt.query, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decode[errorBody](t, resp)
			if body.Param != tt.param {
				t.Errorf("param = %q, want %q (%+v)", body.Param, tt.param, body)
			}
		})
	}
}

func TestPosterLifecycle(t *testing.T) {
	ts, store := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/v1/posters?formats=png,json", smallPoster)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	rec := decode[gallery.Record](t, resp)
	if resp.Header.Get("Location") != "/v1/posters/"+rec.ID {
		t.Errorf("location = %s", resp.Header.Get("Location"))
	}
	if rec.Config.LayerCount != 3 || len(rec.Palette) == 0 || len(rec.Formats) != 2 {
		t.Errorf("record = %+v", rec)
	}

	list := decode[[]gallery.Record](t, do(t, http.MethodGet, ts.URL+"/v1/posters", ""))
	if len(list) != 1 || list[0].ID != rec.ID {
		t.Errorf("list = %+v", list)
	}

	got := decode[gallery.Record](t, do(t, http.MethodGet, ts.URL+"/v1/posters/"+rec.ID, ""))
	if got.Hash != rec.Hash {
		t.Errorf("get = %+v", got)
	}

	img := do(t, http.MethodGet, ts.URL+"/v1/posters/"+rec.ID+"/image", "")
	if img.StatusCode != http.StatusOK || img.Header.Get(HashHeader) != rec.Hash {
		t.Errorf("image status=%d hash=%s", img.StatusCode, img.Header.Get(HashHeader))
	}
	if img.Header.Get(CacheHeader) != "hit" {
		t.Error("image of a saved poster should come from the cache")
	}

	del := do(t, http.MethodDelete, ts.URL+"/v1/posters/"+rec.ID, "")
	if del.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", del.StatusCode)
	}
	if _, err := store.Get(t.Context(), rec.ID); err != gallery.ErrNotFound {
		t.Errorf("record still stored: %v", err)
	}

	missing := do(t, http.MethodGet, ts.URL+"/v1/posters/"+rec.ID, "")
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("missing status = %d", missing.StatusCode)
	}
	if body := decode[errorBody](t, missing); body.Code != errors.ErrCodeNotFound {
		t.Errorf("missing body = %+v", body)
	}

	bad := do(t, http.MethodGet, ts.URL+"/v1/posters/not-a-uuid", "")
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed id status = %d", bad.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.InvalidParameter("x", 1, "bad"), 400},
		{errors.Configuration("x", "missing"), 400},
		{errors.Render(errors.InvalidParameter("point_count", 2, "bad"), "layer 0"), 400},
		{errors.New(errors.ErrCodeRender, "boom"), 500},
		{gallery.ErrNotFound, 404},
		{io.ErrUnexpectedEOF, 500},
	}
	for _, tt := range tests {
		if got := statusFor(errorCode(tt.err)); got != tt.want {
			t.Errorf("status(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
