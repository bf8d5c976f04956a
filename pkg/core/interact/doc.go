// Package interact implements selection, isolation and lasso selection on
// a laid-out [hierarchy.Tree].
//
// An [Engine] owns the interaction state of one chart: which leaves are
// selected, which groups are isolated, and the in-progress lasso drag.
// Every operation returns the render-attribute changes it caused as a list
// of [scene.Delta] values instead of touching any drawing surface, so the
// state machine can be tested without one.
//
// # Transitions
//
//   - Leaf click toggles the leaf between unselected (opacity 1) and
//     selected (dimmed opacity, 0.7 by default).
//   - Group title click isolates the group: it is dimmed, every leaf below
//     it becomes selected, and every sibling subtree is hidden. Clicking the
//     title again restores the flags that were in place before.
//   - A lasso drag selects every visible leaf whose cell intersects the
//     dragged rectangle. Leaves that are already selected stay selected.
//
// Selection and visibility are derived from what the user did: a leaf is
// selected when it was picked, or when an isolated ancestor holds it and it
// was not deselected since. Isolations can therefore be undone in any order.
// [Engine.State] and [Engine.Restore] move this state to an engine on a
// rebuilt tree.
//
// A pointer event resolves to one node at most: the title band of a group
// if the point lies in one, otherwise the leaf cell containing it. Hidden
// nodes and nodes with zero area are never hit, and a miss is a no-op.
//
// # Relayout
//
// By default hidden siblings leave a gap. [WithRelayoutOnIsolate] makes
// isolation re-run the layout beneath the parent so the remaining children
// fill the freed space; un-isolating runs it again with every child visible,
// which reproduces the original geometry.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Adapters that serve several
// goroutines must guard each engine with their own lock.
package interact
