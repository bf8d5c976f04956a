// Package pipeline runs a dataset through the whole chart pipeline.
//
// This package implements the load → build → layout → replay → render chain
// shared by the CLI commands and the HTTP server, so every entry point
// produces the same bytes for the same input.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Load: read a JSON or YAML dataset from a file or from memory
//  2. Build: turn the raw trees into an annotated [hierarchy.Tree]
//  3. Layout: assign rectangles with [layout.Compute]
//  4. Replay: apply recorded isolations and selections through an
//     [interact.Engine], so a static render can show interaction state
//  5. Render: produce SVG, JSON, DOT, PNG or PDF from the [scene.Scene]
//
// Each stage is also exported on its own.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "budget.yaml",
//	    Isolate: []string{"Budget/Engineering"},
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Rendered artifacts are cached by dataset, configuration and replay state;
// the earlier stages are cheap and always run.
//
// [hierarchy.Tree]: github.com/matzehuels/treemap/pkg/core/hierarchy.Tree
// [layout.Compute]: github.com/matzehuels/treemap/pkg/core/layout.Compute
// [interact.Engine]: github.com/matzehuels/treemap/pkg/core/interact.Engine
// [scene.Scene]: github.com/matzehuels/treemap/pkg/core/scene.Scene
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/cache"
	"github.com/matzehuels/treemap/pkg/config"
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/core/interact"
	"github.com/matzehuels/treemap/pkg/core/layout"
	"github.com/matzehuels/treemap/pkg/core/scene"
	"github.com/matzehuels/treemap/pkg/errors"
	pkgio "github.com/matzehuels/treemap/pkg/io"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input: either a file path, or raw bytes in an explicit format.
	Path   string       `json:"path,omitempty"`
	Data   []byte       `json:"-"`
	Format pkgio.Format `json:"format,omitempty"`
	Name   string       `json:"name,omitempty"` // synthetic root label when Data holds a forest

	// Chart configuration; nil means config.Default().
	Config *config.Config `json:"config,omitempty"`

	// Replay state, as node references (see [Resolve]).
	Isolate []string `json:"isolate,omitempty"`
	Select  []string `json:"select,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // DOT labels carry value and depth
	Refresh  bool     `json:"refresh,omitempty"`  // skip cache reads

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the loaded input.
	Dataset pkgio.Dataset

	// DatasetHash is the content hash of the dataset.
	DatasetHash string

	// Tree is the laid-out hierarchy with replayed state applied.
	Tree *hierarchy.Tree

	// Scene is the render model built from Tree.
	Scene *scene.Scene

	// Engine owns Tree's interaction state after replay. Callers may keep
	// driving it.
	Engine *interact.Engine

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LeafCount  int
	MaxDepth   int
	Quality    layout.Quality
	LoadTime   time.Duration
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid format: %q (must be one of: svg, json, dot, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Path == "" && o.Data == nil {
		return errors.New(errors.ErrCodeInvalidInput, "path or data is required")
	}
	if o.Data != nil && o.Format == "" {
		return errors.New(errors.ErrCodeInvalidInput, "format is required with inline data")
	}
	if o.Config == nil {
		cfg := config.Default()
		o.Config = &cfg
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Source names the input for logs and hooks.
func (o *Options) Source() string {
	if o.Path != "" {
		return o.Path
	}
	if o.Name != "" {
		return o.Name
	}
	return "<inline>"
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	configHash := cache.HashValue(struct {
		Config   *config.Config
		Scale    float64
		Detailed bool
	}{o.Config, o.Scale, o.Detailed})
	opts := cache.ArtifactKeyOpts{Format: format, ConfigHash: configHash}
	if len(o.Isolate) > 0 || len(o.Select) > 0 {
		opts.StateHash = cache.HashValue(struct {
			Isolate []string
			Select  []string
		}{o.Isolate, o.Select})
	}
	return opts
}
