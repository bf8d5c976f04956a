// Package nodelink renders a hierarchy as a node-link diagram.
//
// # Overview
//
// A treemap hides the tree's shape inside nested rectangles. This package
// draws the same [hierarchy.Tree] as a top-down Graphviz diagram, which is
// handy for checking how an input file was grouped.
//
// # Usage
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Options
//
//   - Detailed: labels include the aggregate value and depth
//   - VisibleOnly: skip nodes hidden by an isolation
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [hierarchy.Tree]: github.com/matzehuels/treemap/pkg/core/hierarchy.Tree
package nodelink
