package interact

import (
	"slices"
	"time"

	"github.com/matzehuels/treemap/pkg/core/geom"
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/core/layout"
	"github.com/matzehuels/treemap/pkg/core/scene"
)

// Delta is one render-attribute change produced by a transition.
type Delta = scene.Delta

// Engine is the selection state machine for one chart instance.
//
// A leaf is selected when the user picked it, or when an isolated ancestor
// holds it and the user has not released it from that isolation. A node is
// hidden while any isolated group lists it in a sibling subtree. Both flags
// are recomputed from this state after every transition.
type Engine struct {
	tree       *hierarchy.Tree
	dimmed     float64
	relayout   bool
	layoutOpts []layout.Option
	guideDelay time.Duration
	now        func() time.Time

	picked   map[hierarchy.NodeID]struct{}
	selected map[hierarchy.NodeID]struct{}
	isolated map[hierarchy.NodeID]*isolation
	drag     drag
}

// isolation records the held leaves the user deselected while the group
// was isolated.
type isolation struct {
	released map[hierarchy.NodeID]struct{}
}

func newIsolation() *isolation {
	return &isolation{released: make(map[hierarchy.NodeID]struct{})}
}

// New returns an engine that owns the interaction state of t. Any state
// already recorded on t is cleared.
func New(t *hierarchy.Tree, opts ...Option) *Engine {
	e := &Engine{
		tree:     t,
		picked:   make(map[hierarchy.NodeID]struct{}),
		selected: make(map[hierarchy.NodeID]struct{}),
		isolated: make(map[hierarchy.NodeID]*isolation),
	}
	defaults(e)
	for _, opt := range opts {
		opt(e)
	}
	t.ResetState()
	return e
}

// Tree returns the tree the engine operates on.
func (e *Engine) Tree() *hierarchy.Tree { return e.tree }

// =============================================================================
// Queries
// =============================================================================

// Selected returns the selected leaves in ascending order.
func (e *Engine) Selected() []hierarchy.NodeID { return sortedKeys(e.selected) }

// IsSelected reports whether id is a selected leaf.
func (e *Engine) IsSelected(id hierarchy.NodeID) bool {
	_, ok := e.selected[id]
	return ok
}

// Isolated returns the isolated groups in ascending order.
func (e *Engine) Isolated() []hierarchy.NodeID { return sortedKeys(e.isolated) }

// IsIsolated reports whether id is an isolated group.
func (e *Engine) IsIsolated(id hierarchy.NodeID) bool {
	_, ok := e.isolated[id]
	return ok
}

// Opacity returns the render opacity the engine assigns to id.
func (e *Engine) Opacity(id hierarchy.NodeID) float64 {
	if e.IsSelected(id) || e.IsIsolated(id) {
		return e.dimmed
	}
	return 1
}

func sortedKeys[V any](m map[hierarchy.NodeID]V) []hierarchy.NodeID {
	ids := make([]hierarchy.NodeID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// =============================================================================
// Hit testing
// =============================================================================

// HitTest resolves p to a node: the title band of a visible group when p
// lies in one, otherwise the visible leaf cell containing p. Hidden and
// zero-area nodes are never hit.
func (e *Engine) HitTest(p geom.Point) (hierarchy.NodeID, bool) {
	if e.tree.Len() == 0 {
		return hierarchy.NoNode, false
	}
	return e.hit(e.tree.Root(), p)
}

func (e *Engine) hit(id hierarchy.NodeID, p geom.Point) (hierarchy.NodeID, bool) {
	n := e.tree.Node(id)
	if !n.Visible || !n.Laid || !n.Rect.Contains(p) {
		return hierarchy.NoNode, false
	}
	if n.IsLeaf() {
		return id, true
	}
	if !n.Synthetic && n.Title.Contains(p) {
		return id, true
	}
	for _, c := range n.Children {
		if hit, ok := e.hit(c, p); ok {
			return hit, true
		}
	}
	return hierarchy.NoNode, false
}

// interactive reports whether a transition may target id.
func (e *Engine) interactive(n *hierarchy.Node) bool {
	if !n.Visible || !n.Laid {
		return false
	}
	if n.IsGroup() {
		return !n.Synthetic && !n.Title.Empty()
	}
	return !n.Rect.Empty()
}

// =============================================================================
// Transitions
// =============================================================================

// Apply runs one event through the state machine.
func (e *Engine) Apply(ev Event) []Delta {
	switch ev := ev.(type) {
	case ClickEvent:
		return e.OnClick(ev.At)
	case PointerDownEvent:
		return e.OnPointerDown(ev.At)
	case PointerMoveEvent:
		return e.OnPointerMove(ev.At)
	case PointerUpEvent:
		return e.OnPointerUp(ev.At)
	case LassoEvent:
		return e.Lasso(ev.Rect)
	case ToggleLeafEvent:
		return e.ToggleLeaf(ev.Node)
	case ToggleGroupEvent:
		return e.ToggleGroup(ev.Node)
	case ClearEvent:
		return e.ClearSelection()
	}
	return nil
}

// OnClick routes a click to the group or leaf under p. A miss is a no-op.
func (e *Engine) OnClick(p geom.Point) []Delta {
	id, ok := e.HitTest(p)
	if !ok {
		return nil
	}
	if e.tree.IsLeaf(id) {
		return e.ToggleLeaf(id)
	}
	return e.ToggleGroup(id)
}

// ToggleLeaf flips the selection of one leaf. Unknown IDs, groups, hidden
// leaves and zero-area leaves are ignored.
func (e *Engine) ToggleLeaf(id hierarchy.NodeID) []Delta {
	n, ok := e.tree.Lookup(id)
	if !ok || !n.IsLeaf() || !e.interactive(n) {
		return nil
	}
	if n.Selected {
		e.deselect(id)
	} else {
		e.pick(id)
	}
	d, _ := e.setSelected(n, e.wantSelected(id))
	return []Delta{d}
}

// pick makes a leaf selected: released from none of its holders, or
// picked when nothing holds it.
func (e *Engine) pick(leaf hierarchy.NodeID) {
	held := false
	for g, rec := range e.isolated {
		if e.tree.IsAncestor(g, leaf) {
			delete(rec.released, leaf)
			held = true
		}
	}
	if !held {
		e.picked[leaf] = struct{}{}
	}
}

func (e *Engine) deselect(leaf hierarchy.NodeID) {
	delete(e.picked, leaf)
	for g, rec := range e.isolated {
		if e.tree.IsAncestor(g, leaf) {
			rec.released[leaf] = struct{}{}
		}
	}
}

// ToggleGroup isolates a normal group or restores an isolated one. Unknown
// IDs, leaves, hidden groups and the synthetic root are ignored.
func (e *Engine) ToggleGroup(id hierarchy.NodeID) []Delta {
	n, ok := e.tree.Lookup(id)
	if !ok || !n.IsGroup() || !e.interactive(n) {
		return nil
	}
	if _, ok := e.isolated[id]; ok {
		delete(e.isolated, id)
		n.Isolated = false
	} else {
		e.isolated[id] = newIsolation()
		n.Isolated = true
	}

	scope := id
	if n.Parent != hierarchy.NoNode {
		scope = n.Parent
	}
	deltas := []Delta{e.opacityDelta(id)}
	deltas = append(deltas, e.sync(scope)...)
	if len(e.tree.Siblings(id)) > 0 {
		deltas = append(deltas, e.relayoutDeltas(n.Parent)...)
	}
	return deltas
}

// sync recomputes visibility and selection in scope's subtree and reports
// every flag that changed, in pre-order.
func (e *Engine) sync(scope hierarchy.NodeID) []Delta {
	var deltas []Delta
	for _, id := range e.tree.Descendants(scope) {
		n := e.tree.Node(id)
		if vis := !e.hidden(id); vis != n.Visible {
			n.Visible = vis
			deltas = append(deltas, Delta{Node: id, Attr: scene.AttrVisible, Visible: vis})
		}
		if n.IsLeaf() {
			if d, changed := e.setSelected(n, e.wantSelected(id)); changed {
				deltas = append(deltas, d)
			}
		}
	}
	return deltas
}

// hidden reports whether id lies in a sibling subtree of an isolated group.
func (e *Engine) hidden(id hierarchy.NodeID) bool {
	for g := range e.isolated {
		p := e.tree.Parent(g)
		if p == hierarchy.NoNode || g == id || e.tree.IsAncestor(g, id) {
			continue
		}
		if e.tree.IsAncestor(p, id) {
			return true
		}
	}
	return false
}

func (e *Engine) wantSelected(leaf hierarchy.NodeID) bool {
	if _, ok := e.picked[leaf]; ok {
		return true
	}
	return e.heldByIsolation(leaf)
}

// relayoutDeltas re-runs the layout beneath parent when the relayout
// policy is on and reports every moved node.
func (e *Engine) relayoutDeltas(parent hierarchy.NodeID) []Delta {
	if !e.relayout || parent == hierarchy.NoNode {
		return nil
	}
	changed, err := layout.Relayout(e.tree, parent, e.layoutOpts...)
	if err != nil {
		return nil
	}
	deltas := make([]Delta, 0, len(changed))
	for _, id := range changed {
		n := e.tree.Node(id)
		deltas = append(deltas, Delta{Node: id, Attr: scene.AttrRect, Rect: n.Rect, Title: n.Title})
	}
	return deltas
}

// ClearSelection deselects every picked leaf. Leaves an isolated group
// holds stay selected.
func (e *Engine) ClearSelection() []Delta {
	var deltas []Delta
	for _, id := range sortedKeys(e.picked) {
		delete(e.picked, id)
		if d, changed := e.setSelected(e.tree.Node(id), e.wantSelected(id)); changed {
			deltas = append(deltas, d)
		}
	}
	return deltas
}

// heldByIsolation reports whether an isolated ancestor holds leaf.
func (e *Engine) heldByIsolation(leaf hierarchy.NodeID) bool {
	for g, rec := range e.isolated {
		if !e.tree.IsAncestor(g, leaf) {
			continue
		}
		if _, released := rec.released[leaf]; !released {
			return true
		}
	}
	return false
}

func (e *Engine) setSelected(n *hierarchy.Node, on bool) (Delta, bool) {
	changed := n.Selected != on
	n.Selected = on
	if on {
		e.selected[n.ID] = struct{}{}
	} else {
		delete(e.selected, n.ID)
	}
	return e.opacityDelta(n.ID), changed
}

func (e *Engine) opacityDelta(id hierarchy.NodeID) Delta {
	return Delta{Node: id, Attr: scene.AttrOpacity, Opacity: e.Opacity(id)}
}
