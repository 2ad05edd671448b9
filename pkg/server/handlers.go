package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/rectile/pkg/buildinfo"
	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/pipeline"
	"github.com/matzehuels/rectile/pkg/render/sink"
	"github.com/matzehuels/rectile/pkg/tiling"
	"github.com/matzehuels/rectile/pkg/tiling/preset"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	if s.Counters == nil {
		notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, s.Counters.Snapshot())
}

type presetResponse struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Seeds       []tiling.Seed `json:"seeds"`
}

func (s *Server) listPresets(w http.ResponseWriter, r *http.Request) {
	all := preset.All()
	out := make([]presetResponse, 0, len(all))
	for _, p := range all {
		out = append(out, presetResponse{Name: p.Name, Description: p.Description, Seeds: p.Seeds})
	}
	writeJSON(w, http.StatusOK, out)
}

// TilingResponse is the body returned by POST /v1/tilings.
type TilingResponse struct {
	sink.Document
	InputHash string            `json:"input_hash"`
	Artifacts map[string][]byte `json:"artifacts,omitempty"`
	Cached    bool              `json:"cached"`
}

// createTiling runs the pipeline for a JSON body. Fields left out of the
// body's config keep the server defaults; an empty body renders the default
// preset.
func (s *Server) createTiling(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{Config: s.cfg.Tiling, Scale: s.cfg.Render.Scale}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body: %v", err))
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TilingResponse{
		Document:  res.Document,
		InputHash: res.InputHash,
		Artifacts: res.Artifacts,
		Cached:    res.CacheInfo.GenerateHit && res.CacheInfo.RenderHit,
	})
}

// renderPreset serves one artifact for a preset, e.g. classic.svg.
func (s *Server) renderPreset(w http.ResponseWriter, r *http.Request) {
	name, format, ok := strings.Cut(chi.URLParam(r, "file"), ".")
	if !ok || format == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "missing format extension"))
		return
	}
	if err := errors.ValidatePresetName(name); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Config:  s.cfg.Tiling,
		Preset:  name,
		Formats: []string{format},
		Scale:   s.cfg.Render.Scale,
	}
	if err := applyQuery(&opts, r.URL.Query()); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("ETag", `"`+res.InputHash[:16]+`"`)
	if !res.Tiling.Converged {
		w.Header().Set("X-Rectile-Converged", "false")
	}
	_, _ = w.Write(res.Artifacts[format])
}

// applyQuery overrides opts from query parameters. Setting cx without
// grid_width picks the matching grid width.
func applyQuery(opts *pipeline.Options, q url.Values) error {
	p := queryParser{q: q}
	cfg := &opts.Config

	if p.integer("cx", &cfg.CX) && !q.Has("grid_width") {
		cfg.GridWidth = tiling.SuggestGridWidth(cfg.CX)
	}
	p.integer("grid_width", &cfg.GridWidth)
	p.float("max_side", &cfg.MaxSide)
	p.float("edge_width", &cfg.EdgeWidth)
	p.boolean("colorize", &cfg.Colorize)
	p.boolean("label", &cfg.Label)
	p.integer("canvas_size", &cfg.CanvasSize)
	p.integer("max_iterations", &cfg.MaxIterations)
	if v := q.Get("conflicts"); v != "" {
		cfg.Conflicts = v
	}
	p.float("scale", &opts.Scale)
	if v := q.Get("view"); v != "" {
		opts.View = v
	}
	opts.Refresh = q.Has("refresh")
	return p.err
}

// queryParser records the first malformed parameter.
type queryParser struct {
	q   url.Values
	err error
}

func (p *queryParser) raw(name string) (string, bool) {
	v := p.q.Get(name)
	return v, v != "" && p.err == nil
}

func (p *queryParser) fail(name, value string, err error) {
	p.err = errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s=%q", name, value)
}

func (p *queryParser) integer(name string, dst *int) bool {
	v, ok := p.raw(name)
	if !ok {
		return false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(name, v, err)
		return false
	}
	*dst = n
	return true
}

func (p *queryParser) float(name string, dst *float64) {
	v, ok := p.raw(name)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(name, v, err)
		return
	}
	*dst = f
}

func (p *queryParser) boolean(name string, dst *bool) {
	v, ok := p.raw(name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(name, v, err)
		return
	}
	*dst = b
}
