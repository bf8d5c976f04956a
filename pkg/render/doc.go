// Package render turns treemap scenes into files.
//
// # Overview
//
// The subpackages hold the actual renderers:
//
//   - [sink]: SVG and JSON documents built from a [scene.Scene]
//   - [nodelink]: the hierarchy as a Graphviz box-and-arrow diagram
//
// This package itself only converts finished SVG into raster and print
// formats.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg):
//
//	svg := sink.RenderSVG(sc)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// Both return an [errors.ErrCodeUnsupported] error when rsvg-convert is not
// on PATH.
//
// [sink]: github.com/matzehuels/treemap/pkg/render/sink
// [nodelink]: github.com/matzehuels/treemap/pkg/render/nodelink
// [scene.Scene]: github.com/matzehuels/treemap/pkg/core/scene.Scene
// [errors.ErrCodeUnsupported]: github.com/matzehuels/treemap/pkg/errors.ErrCodeUnsupported
package render
