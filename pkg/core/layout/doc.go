// Package layout assigns a rectangle to every node of a [hierarchy.Tree].
//
// # Algorithm
//
// [Compute] works depth-first from the root, which receives the full chart
// extent {0, 0, width, height}:
//
//  1. A group reserves a title band at the top of its rectangle for its own
//     label. The synthetic super-root of a forest reserves none.
//  2. The rest of the rectangle, inset by the outer padding on all four
//     sides, is the content rectangle.
//  3. The content rectangle is divided among the children in proportion to
//     their aggregate value by a [Tiler]: [Squarify] (the default) or
//     [SliceDice].
//  4. Inner padding opens a gap between neighbouring children: any trailing
//     edge that does not touch the content edge is pulled inward.
//  5. With rounding enabled every coordinate is snapped to an integer.
//     Rounding is monotone, so snapped rectangles never overlap or turn
//     negative; the last child of a row absorbs the leftover pixel.
//
// A node whose aggregate value is zero receives a zero-area rectangle at
// the origin of its parent's content area. Such nodes are never hit by
// pointer events.
//
// # Relayout
//
// [Relayout] re-runs steps 1 through 5 beneath one parent, leaving hidden
// children out of both the value sum and the allocation. Hidden children
// keep their previous geometry, so showing them again without another
// relayout puts them back where they were.
//
// # Quality
//
// [Measure] summarises the aspect ratios of the visible leaf cells, which
// is how the two tilers are compared by the inspect command.
package layout
