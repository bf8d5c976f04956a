package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/treemap/pkg/buildinfo"
	"github.com/matzehuels/treemap/pkg/config"
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/core/scene"
	"github.com/matzehuels/treemap/pkg/errors"
	pkgio "github.com/matzehuels/treemap/pkg/io"
	"github.com/matzehuels/treemap/pkg/pipeline"
	"github.com/matzehuels/treemap/pkg/render/nodelink"
	"github.com/matzehuels/treemap/pkg/render/sink"
)

// =============================================================================
// Request and Response Types
// =============================================================================

// createRequest uploads a dataset. Exactly one of Dataset (JSON) and YAML
// must be set. Config is a TOML document applied over the defaults.
type createRequest struct {
	Name    string          `json:"name,omitempty"`
	Dataset json.RawMessage `json:"dataset,omitempty"`
	YAML    string          `json:"yaml,omitempty"`
	Config  string          `json:"config,omitempty"`
	Isolate []string        `json:"isolate,omitempty"`
	Select  []string        `json:"select,omitempty"`
}

type createResponse struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Nodes  int     `json:"nodes"`
	Leaves int     `json:"leaves"`
}

type eventResponse struct {
	Deltas   []scene.Delta      `json:"deltas"`
	Selected []hierarchy.NodeID `json:"selected"`
	Isolated []hierarchy.NodeID `json:"isolated"`
	Dragging bool               `json:"dragging"`
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	opts, err := req.options()
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.Logger = s.logger

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	id := s.add(&chart{name: res.Dataset.Name, opts: opts, result: res, created: time.Now()})
	s.logger.Info("created chart", "id", id, "nodes", res.Stats.NodeCount)
	writeJSON(w, http.StatusCreated, createResponse{
		ID:     id,
		Width:  res.Scene.Width,
		Height: res.Scene.Height,
		Nodes:  res.Stats.NodeCount,
		Leaves: res.Stats.LeafCount,
	})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	c, err := s.get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	c.mu.Lock()
	eng := c.result.Engine
	data, err := sink.RenderJSON(c.result.Scene,
		sink.WithJSONName(c.name),
		sink.WithJSONTiling(c.opts.Config.Tiling),
		sink.WithJSONSelection(eng.Selected(), eng.Isolated()))
	c.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	c, err := s.get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts := []sink.SVGOption{sink.WithInteraction()}
	c.mu.Lock()
	if guide, ok := c.result.Engine.Guide(time.Now()); ok {
		opts = append(opts, sink.WithGuide(guide))
	}
	data := sink.RenderSVG(c.result.Scene, opts...)
	c.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(data)
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	c, err := s.get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	c.mu.Lock()
	dot := nodelink.ToDOT(c.result.Tree, nodelink.Options{
		Detailed:    r.URL.Query().Get("detailed") == "true",
		VisibleOnly: true,
	})
	c.mu.Unlock()

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.Write([]byte(dot))
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	c, err := s.get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req eventRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	ev, err := req.event(c.result.Tree)
	if err != nil {
		s.writeError(w, err)
		return
	}
	deltas := c.apply(r.Context(), ev)
	if deltas == nil {
		deltas = []scene.Delta{}
	}
	eng := c.result.Engine
	writeJSON(w, http.StatusOK, eventResponse{
		Deltas:   deltas,
		Selected: nonNil(eng.Selected()),
		Isolated: nonNil(eng.Isolated()),
		Dragging: eng.Dragging(),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.remove(id) {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "chart %q not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

// options converts the request into pipeline options.
func (req createRequest) options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Name:    req.Name,
		Isolate: req.Isolate,
		Select:  req.Select,
		Formats: []string{pipeline.FormatSVG},
	}
	switch {
	case len(req.Dataset) > 0 && req.YAML != "":
		return opts, errors.New(errors.ErrCodeInvalidInput, "set either dataset or yaml, not both")
	case len(req.Dataset) > 0:
		opts.Data, opts.Format = req.Dataset, pkgio.FormatJSON
	case req.YAML != "":
		opts.Data, opts.Format = []byte(req.YAML), pkgio.FormatYAML
	default:
		return opts, errors.New(errors.ErrCodeInvalidInput, "dataset or yaml is required")
	}

	cfg := config.Default()
	if req.Config != "" {
		var err error
		if cfg, err = config.Parse(strings.NewReader(req.Config)); err != nil {
			return opts, err
		}
	}
	opts.Config = &cfg
	return opts, nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxLen)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request")
	}
	return nil
}

// statusOf maps an error code to an HTTP status.
func statusOf(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidSize:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusOf(code)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Code: string(code), Error: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func nonNil(ids []hierarchy.NodeID) []hierarchy.NodeID {
	if ids == nil {
		return []hierarchy.NodeID{}
	}
	return ids
}
