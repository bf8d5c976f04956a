package interact

import (
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
)

// State is the interaction state of an engine, keyed by node ID. It carries
// over to an engine on another build of the same dataset, such as after a
// resize.
type State struct {
	// Picked lists the leaves the user selected directly.
	Picked []hierarchy.NodeID
	// Isolated maps each isolated group to the held leaves the user
	// deselected since isolating it.
	Isolated map[hierarchy.NodeID][]hierarchy.NodeID
}

// State returns a copy of the engine's interaction state.
func (e *Engine) State() State {
	s := State{
		Picked:   sortedKeys(e.picked),
		Isolated: make(map[hierarchy.NodeID][]hierarchy.NodeID, len(e.isolated)),
	}
	for g, rec := range e.isolated {
		s.Isolated[g] = sortedKeys(rec.released)
	}
	return s
}

// Restore replaces the engine's interaction state with s and recomputes
// every flag on the tree. IDs that are unknown or of the wrong kind are
// skipped. Hidden nodes keep their state.
func (e *Engine) Restore(s State) []Delta {
	e.picked = make(map[hierarchy.NodeID]struct{}, len(s.Picked))
	for _, id := range s.Picked {
		if n, ok := e.tree.Lookup(id); ok && n.IsLeaf() {
			e.picked[id] = struct{}{}
		}
	}

	for g := range e.isolated {
		e.tree.Node(g).Isolated = false
	}
	e.isolated = make(map[hierarchy.NodeID]*isolation, len(s.Isolated))
	for g, released := range s.Isolated {
		n, ok := e.tree.Lookup(g)
		if !ok || !n.IsGroup() || n.Synthetic {
			continue
		}
		rec := newIsolation()
		for _, l := range released {
			if e.tree.Valid(l) && e.tree.IsLeaf(l) && e.tree.IsAncestor(g, l) {
				rec.released[l] = struct{}{}
			}
		}
		e.isolated[g] = rec
		n.Isolated = true
	}

	var deltas []Delta
	for _, g := range sortedKeys(e.isolated) {
		deltas = append(deltas, e.opacityDelta(g))
	}
	deltas = append(deltas, e.sync(e.tree.Root())...)
	for _, g := range sortedKeys(e.isolated) {
		if len(e.tree.Siblings(g)) > 0 {
			deltas = append(deltas, e.relayoutDeltas(e.tree.Parent(g))...)
		}
	}
	return deltas
}
