package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/treemap/pkg/cache"
	"github.com/matzehuels/treemap/pkg/core/interact"
	"github.com/matzehuels/treemap/pkg/core/scene"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// Defaults.
const (
	DefaultMaxCharts  = 256
	DefaultMaxBodyLen = 8 << 20
	DefaultCacheScope = "serve:"
)

// Server holds the live charts and serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxLen  int64
	maxSize int
	scope   string

	mu     sync.RWMutex
	charts map[string]*chart
	order  []string // creation order, oldest first
}

// chart is one live chart instance.
type chart struct {
	mu      sync.Mutex
	name    string
	opts    pipeline.Options
	result  *pipeline.Result
	created time.Time
}

// Option configures a [Server].
type Option func(*Server)

// WithMaxCharts bounds the number of live charts. Creating one more evicts
// the oldest.
func WithMaxCharts(n int) Option {
	return func(s *Server) { s.maxSize = n }
}

// WithMaxBodyLen bounds request bodies in bytes.
func WithMaxBodyLen(n int64) Option {
	return func(s *Server) { s.maxLen = n }
}

// WithCacheScope sets the prefix put on every cache key the server writes,
// so several servers can share one cache backend without sharing entries.
func WithCacheScope(prefix string) Option {
	return func(s *Server) { s.scope = prefix }
}

// New creates a server that builds charts with runner. The server keeps
// its own copy of runner whose keys carry the cache scope.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		maxLen:  DefaultMaxBodyLen,
		maxSize: DefaultMaxCharts,
		scope:   DefaultCacheScope,
		charts:  make(map[string]*chart),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, logger)
	}
	scoped := *s.runner
	scoped.Keyer = cache.NewScopedKeyer(s.runner.Keyer, s.scope)
	s.runner = &scoped
	return s
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/charts", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleScene)
			r.Delete("/", s.handleDelete)
			r.Get("/svg", s.handleSVG)
			r.Get("/dot", s.handleDOT)
			r.Post("/events", s.handleEvent)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// =============================================================================
// Chart Store
// =============================================================================

func (s *Server) add(c *chart) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	for s.maxSize > 0 && len(s.order) >= s.maxSize {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.charts, oldest)
		s.logger.Debug("evicted chart", "id", oldest)
	}
	s.charts[id] = c
	s.order = append(s.order, id)
	return id
}

func (s *Server) get(id string) (*chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.charts[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "chart %q not found", id)
	}
	return c, nil
}

func (s *Server) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.charts[id]; !ok {
		return false
	}
	delete(s.charts, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of live charts.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.charts)
}

// =============================================================================
// Chart Operations
// =============================================================================

// apply runs ev on the chart and keeps its scene in step. The caller holds
// c.mu.
func (c *chart) apply(ctx context.Context, ev interact.Event) []scene.Delta {
	deltas := c.result.Engine.Apply(ev)
	c.result.Scene.Apply(deltas)
	observability.Interaction().OnTransition(ctx, ev.Name(), len(deltas))
	return deltas
}

// =============================================================================
// Middleware
// =============================================================================

// logRequests logs each request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		dur := time.Since(start)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", dur,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
