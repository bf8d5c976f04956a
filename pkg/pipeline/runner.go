package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/cache"
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/core/interact"
	"github.com/matzehuels/treemap/pkg/core/layout"
	"github.com/matzehuels/treemap/pkg/core/scene"
	pkgio "github.com/matzehuels/treemap/pkg/io"
	"github.com/matzehuels/treemap/pkg/observability"
)

// ArtifactTTL is how long rendered artifacts stay cached.
const ArtifactTTL = 7 * 24 * time.Hour

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → layout → replay → render
// pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	hooks := observability.Pipeline()
	source := opts.Source()
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	ds, err := Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Dataset = ds
	result.Stats.LoadTime = time.Since(loadStart)
	if result.DatasetHash, err = HashDataset(ds); err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded dataset", "source", source, "roots", len(ds.Roots), "duration", result.Stats.LoadTime)

	// Stage 2: Build
	tree, err := r.build(ctx, source, ds, result)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	// Stage 3: Layout
	if err := r.layout(ctx, tree, opts, result); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	// Stage 4: Replay
	eng, err := Replay(ctx, tree, opts)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	result.Engine = eng
	result.Scene = Scene(tree, opts)
	if len(opts.Isolate)+len(opts.Select) > 0 {
		r.Logger.Info("replayed state",
			"isolated", len(eng.Isolated()),
			"selected", len(eng.Selected()))
	}

	// Stage 5: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result.DatasetHash, tree, result.Scene, eng, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) build(ctx context.Context, source string, ds pkgio.Dataset, result *Result) (*hierarchy.Tree, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, source)
	start := time.Now()
	tree, err := Build(ds)
	result.Stats.BuildTime = time.Since(start)
	if err != nil {
		hooks.OnBuildComplete(ctx, source, 0, result.Stats.BuildTime, err)
		return nil, err
	}
	hooks.OnBuildComplete(ctx, source, tree.Len(), result.Stats.BuildTime, nil)

	result.Tree = tree
	result.Stats.NodeCount = tree.Len()
	result.Stats.LeafCount = tree.LeafCount()
	result.Stats.MaxDepth = tree.MaxDepth()
	r.Logger.Info("built hierarchy",
		"nodes", tree.Len(),
		"leaves", tree.LeafCount(),
		"depth", tree.MaxDepth(),
		"duration", result.Stats.BuildTime)
	return tree, nil
}

func (r *Runner) layout(ctx context.Context, tree *hierarchy.Tree, opts Options, result *Result) error {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Config.Tiling, tree.Len())
	start := time.Now()
	err := Layout(tree, opts)
	result.Stats.LayoutTime = time.Since(start)
	hooks.OnLayoutComplete(ctx, opts.Config.Tiling, result.Stats.LayoutTime, err)
	if err != nil {
		return err
	}

	q := layout.Measure(tree)
	result.Stats.Quality = q
	r.Logger.Info("computed layout",
		"tiling", opts.Config.Tiling,
		"cells", q.Cells,
		"mean_aspect", fmt.Sprintf("%.2f", q.MeanAspect),
		"duration", result.Stats.LayoutTime)
	return nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, datasetHash string, t *hierarchy.Tree, sc *scene.Scene, eng *interact.Engine, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(datasetHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				hooks.OnCacheMiss(ctx, "artifact")
				break
			}
			hooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(uniq(opts.Formats)) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	rendered, err := Render(t.Node(t.Root()).Name, t, sc, eng, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(datasetHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, ArtifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func uniq(formats []string) map[string]struct{} {
	set := make(map[string]struct{}, len(formats))
	for _, f := range formats {
		set[f] = struct{}{}
	}
	return set
}
