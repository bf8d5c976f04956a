// Package pkg provides the core libraries for treemap visualization.
//
// # Overview
//
// Treemap draws a weighted hierarchy as nested rectangles whose areas are
// proportional to leaf weights, and keeps an interaction state on top of
// the drawing: selected leaves, isolated groups, and a lasso. The pkg
// directory is organized into these areas:
//
//  1. [core] - Domain logic (hierarchy, layout, scene, interaction)
//  2. [render] - Output sinks (SVG, JSON, PNG, PDF) and the node-link view
//  3. [pipeline] - Orchestration (load → build → layout → replay → render)
//  4. [cache] - Artifact caching (file, Redis, null)
//  5. [io] - JSON and YAML datasets
//  6. [config] - TOML chart settings
//
// # Architecture
//
// The typical data flow:
//
//	JSON/YAML dataset
//	         ↓
//	    [core/hierarchy] package (validate, aggregate, sort)
//	         ↓
//	    [core/layout] package (squarified rectangles)
//	         ↓
//	    [core/interact] package (selection and isolation state)
//	         ↓
//	    [core/scene] package (render model + deltas)
//	         ↓
//	    SVG/JSON/PNG/PDF output, terminal, or HTTP
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/treemap/pkg/core/geom"
//	    "github.com/matzehuels/treemap/pkg/core/hierarchy"
//	    "github.com/matzehuels/treemap/pkg/core/interact"
//	    "github.com/matzehuels/treemap/pkg/core/layout"
//	    "github.com/matzehuels/treemap/pkg/core/scene"
//	    "github.com/matzehuels/treemap/pkg/render/sink"
//	)
//
//	// 1. Build the tree
//	tree, _ := hierarchy.Build(hierarchy.NewGroup("Budget",
//	    hierarchy.NewLeaf("Infra", 30),
//	    hierarchy.NewLeaf("Web", 20),
//	))
//
//	// 2. Lay it out
//	_ = layout.Compute(tree, 960, 600)
//
//	// 3. Interact
//	eng := interact.New(tree)
//	sc := scene.Build(tree)
//	sc.Apply(eng.OnClick(geom.Point{X: 100, Y: 100}))
//
//	// 4. Render
//	svg := sink.RenderSVG(sc)
//
// Or run the whole chain through [pipeline.Runner]:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{Path: "budget.yaml"})
//
// [core]: github.com/matzehuels/treemap/pkg/core
// [render]: github.com/matzehuels/treemap/pkg/render
// [pipeline]: github.com/matzehuels/treemap/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/treemap/pkg/pipeline.Runner
// [cache]: github.com/matzehuels/treemap/pkg/cache
// [io]: github.com/matzehuels/treemap/pkg/io
// [config]: github.com/matzehuels/treemap/pkg/config
// [core/hierarchy]: github.com/matzehuels/treemap/pkg/core/hierarchy
// [core/layout]: github.com/matzehuels/treemap/pkg/core/layout
// [core/interact]: github.com/matzehuels/treemap/pkg/core/interact
// [core/scene]: github.com/matzehuels/treemap/pkg/core/scene
package pkg
