package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/posterforge/pkg/buildinfo"
	"github.com/matzehuels/posterforge/pkg/cache"
	"github.com/matzehuels/posterforge/pkg/errors"
	"github.com/matzehuels/posterforge/pkg/gallery"
	pio "github.com/matzehuels/posterforge/pkg/io"
	"github.com/matzehuels/posterforge/pkg/observability"
	"github.com/matzehuels/posterforge/pkg/palette"
	"github.com/matzehuels/posterforge/pkg/pipeline"
	"github.com/matzehuels/posterforge/pkg/poster"
)

// Response headers.
const (
	HashHeader  = "X-Poster-Hash"
	CacheHeader = "X-Cache"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// PaletteResponse is the body of GET /v1/palettes/{mode}.
type PaletteResponse struct {
	Mode    palette.Mode `json:"mode"`
	Count   int          `json:"count"`
	BaseHue float64      `json:"base_hue"`
	Seed    uint64       `json:"seed"`
	Colors  []string     `json:"colors"`
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	mode, err := palette.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := queryParams{r: r}
	resp := PaletteResponse{
		Mode:    mode,
		Count:   q.intParam("count", palette.DefaultCount),
		BaseHue: q.floatParam("base_hue", poster.DefaultBaseHue),
		Seed:    q.uintParam("seed", poster.DefaultSeed),
	}
	if q.err != nil {
		s.writeError(w, r, q.err)
		return
	}
	if resp.Count > MaxPaletteCount {
		s.writeError(w, r, errors.InvalidParameter("count", resp.Count, "must be <= %d", MaxPaletteCount))
		return
	}

	ctx := r.Context()
	c, keyer := s.cache()
	key := keyer.PaletteKey(cache.PaletteKeyOpts{
		Mode:    string(mode),
		Count:   resp.Count,
		BaseHue: resp.BaseHue,
		Seed:    resp.Seed,
	})
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		if json.Unmarshal(data, &resp.Colors) == nil {
			observability.Cache().OnCacheHit(ctx, "palette")
			w.Header().Set(CacheHeader, "hit")
			writeJSON(w, http.StatusOK, resp)
			return
		}
	}
	observability.Cache().OnCacheMiss(ctx, "palette")

	pal, err := palette.Generate(palette.Spec{
		Mode:    mode,
		Count:   resp.Count,
		BaseHue: resp.BaseHue,
	}, poster.NewRand(resp.Seed))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp.Colors = pal.Hex()
	if data, err := json.Marshal(resp.Colors); err == nil {
		if c.Set(ctx, key, data, cache.TTLPalette) == nil {
			observability.Cache().OnCacheSet(ctx, "palette", len(data))
		}
	}
	w.Header().Set(CacheHeader, "miss")
	writeJSON(w, http.StatusOK, resp)
}

// readConfig decodes a JSON poster config from the request body, starting
// from the defaults and rejecting unknown keys.
func readConfig(w http.ResponseWriter, r *http.Request) (poster.Config, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	return pio.ReadConfig(r.Body, pio.FormatJSON)
}

func (s *Server) render(r *http.Request, cfg poster.Config, formats []string) (*pipeline.Result, error) {
	q := queryParams{r: r}
	opts := pipeline.Options{
		Poster:  cfg,
		Formats: formats,
		Scale:   q.floatParam("scale", pipeline.DefaultScale),
	}
	if q.err != nil {
		return nil, q.err
	}
	return s.runner.Render(r.Context(), opts)
}

func (s *Server) writeArtifact(w http.ResponseWriter, res *pipeline.Result, format string) {
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set(HashHeader, res.Hash)
	if res.CacheHit {
		w.Header().Set(CacheHeader, "hit")
	} else {
		w.Header().Set(CacheHeader, "miss")
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Artifacts[format])))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, err := singleFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, err := readConfig(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.render(r, cfg, []string{format})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeArtifact(w, res, format)
}

func (s *Server) handleCreatePoster(w http.ResponseWriter, r *http.Request) {
	formats := []string{pipeline.FormatPNG}
	if v := r.URL.Query().Get("formats"); v != "" {
		var err error
		if formats, err = pipeline.ParseFormats(v); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	cfg, err := readConfig(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.render(r, cfg, formats)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := gallery.New(cfg, res.Palette, res.Hash, formats)
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/posters/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListPosters(w http.ResponseWriter, r *http.Request) {
	q := queryParams{r: r}
	limit := q.intParam("limit", gallery.DefaultListLimit)
	if q.err != nil {
		s.writeError(w, r, q.err)
		return
	}
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []gallery.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (gallery.Record, bool) {
	id := chi.URLParam(r, "id")
	if err := gallery.ValidateID(id); err != nil {
		s.writeError(w, r, err)
		return gallery.Record{}, false
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return gallery.Record{}, false
	}
	return rec, true
}

func (s *Server) handleGetPoster(w http.ResponseWriter, r *http.Request) {
	if rec, ok := s.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, rec)
	}
}

func (s *Server) handlePosterImage(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	format, err := singleFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.render(r, rec.Config, []string{format})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeArtifact(w, res, format)
}

func (s *Server) handleDeletePoster(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := gallery.ValidateID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func singleFormat(r *http.Request) (string, error) {
	format := r.URL.Query().Get("format")
	if format == "" {
		return pipeline.FormatPNG, nil
	}
	return format, pipeline.ValidateFormat(format)
}

// queryParams parses optional query values, keeping the first error.
type queryParams struct {
	r   *http.Request
	err error
}

func (q *queryParams) raw(name string) (string, bool) {
	v := q.r.URL.Query().Get(name)
	return v, v != "" && q.err == nil
}

func (q *queryParams) intParam(name string, def int) int {
	v, ok := q.raw(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.err = errors.InvalidParameter(name, v, "must be an integer")
		return def
	}
	return n
}

func (q *queryParams) uintParam(name string, def uint64) uint64 {
	v, ok := q.raw(name)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		q.err = errors.InvalidParameter(name, v, "must be a non-negative integer")
		return def
	}
	return n
}

func (q *queryParams) floatParam(name string, def float64) float64 {
	v, ok := q.raw(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		q.err = errors.InvalidParameter(name, v, "must be a number")
		return def
	}
	return f
}
