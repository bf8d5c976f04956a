// Package sink writes a [scene.Scene] out as a document.
//
// # Overview
//
// A "sink" is the last step of the pipeline. This package provides:
//
//   - SVG: one <g> per node with fill tier, opacity, title band and labels
//   - JSON: the primitive list plus palette and selection state
//   - PDF and PNG: the SVG converted by rsvg-convert
//
// # SVG Output
//
// [RenderSVG] walks the scene in draw order. Groups get a body rect and a
// title band; leaves get a cell with a name and, when value labels are on, a
// value line. Labels that cannot fit are dropped or truncated. Hidden nodes
// are written with display="none".
//
//	svg := sink.RenderSVG(sc,
//	    sink.WithGuide(guide),
//	    sink.WithInteraction(),
//	)
//
// # JSON Output
//
// [RenderJSON] is the interchange format for the HTTP adapter: a browser
// holds the node array and applies deltas from the server by index.
//
// [scene.Scene]: github.com/matzehuels/treemap/pkg/core/scene.Scene
package sink
