// Package scene holds the render-ready view of a laid-out tree.
//
// A [Scene] keeps one [Primitive] per node, indexed by node ID, with the
// geometry, colour tier, label text and opacity a rendering surface needs.
// The data model in package hierarchy stays free of drawing concerns; sinks
// and interactive adapters read primitives instead.
//
// # Updates
//
// The interaction engine never touches primitives directly. It returns a
// list of [Delta] values, and the adapter feeds them to [Scene.Apply],
// which returns the IDs that need redrawing:
//
//	dirty := sc.Apply(engine.Click(p))
//	for _, id := range dirty {
//	    redraw(sc.Primitive(id))
//	}
//
// # Draw Order
//
// Node IDs are assigned in pre-order, so [Scene.Order] (ascending IDs)
// paints every group before the cells inside it.
package scene
