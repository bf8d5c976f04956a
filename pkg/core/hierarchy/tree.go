package hierarchy

// Tree is an immutable-topology node arena produced by [Build].
//
// A Tree is not safe for concurrent mutation; one interaction engine owns it.
type Tree struct {
	nodes []Node
}

// Root returns the root ID (always 0 for a built tree).
func (t *Tree) Root() NodeID { return 0 }

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Valid reports whether id refers to a node in t.
func (t *Tree) Valid(id NodeID) bool { return id >= 0 && int(id) < len(t.nodes) }

// Node returns the node with the given ID. The pointer aliases the arena, so
// writes through it are visible to every holder of t. It panics on an
// invalid ID, like a slice index.
func (t *Tree) Node(id NodeID) *Node { return &t.nodes[id] }

// Lookup returns the node and true, or nil and false for an invalid ID.
func (t *Tree) Lookup(id NodeID) (*Node, bool) {
	if !t.Valid(id) {
		return nil, false
	}
	return &t.nodes[id], true
}

// Parent returns the parent ID or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].Parent }

// Children returns the sorted child IDs. The slice must not be modified.
func (t *Tree) Children(id NodeID) []NodeID { return t.nodes[id].Children }

// IsLeaf reports whether id is a leaf.
func (t *Tree) IsLeaf(id NodeID) bool { return t.nodes[id].Kind == KindLeaf }

// Siblings returns the other children of id's parent, in layout order.
func (t *Tree) Siblings(id NodeID) []NodeID {
	parent := t.nodes[id].Parent
	if parent == NoNode {
		return nil
	}
	kids := t.nodes[parent].Children
	out := make([]NodeID, 0, len(kids)-1)
	for _, k := range kids {
		if k != id {
			out = append(out, k)
		}
	}
	return out
}

// Subtree returns the half-open ID range [start, end) covering id and all
// of its descendants.
func (t *Tree) Subtree(id NodeID) (start, end NodeID) {
	return id, t.nodes[id].end
}

// Descendants returns id and all of its descendants in pre-order.
func (t *Tree) Descendants(id NodeID) []NodeID {
	start, end := t.Subtree(id)
	out := make([]NodeID, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

// Leaves returns the leaves in id's subtree in pre-order. A leaf's only
// leaf is itself.
func (t *Tree) Leaves(id NodeID) []NodeID {
	start, end := t.Subtree(id)
	var out []NodeID
	for i := start; i < end; i++ {
		if t.nodes[i].Kind == KindLeaf {
			out = append(out, i)
		}
	}
	return out
}

// IsAncestor reports whether a is a proper ancestor of d.
func (t *Tree) IsAncestor(a, d NodeID) bool {
	start, end := t.Subtree(a)
	return d > start && d < end
}

// Walk visits every node in pre-order until fn returns false.
func (t *Tree) Walk(fn func(*Node) bool) {
	for i := range t.nodes {
		if !fn(&t.nodes[i]) {
			return
		}
	}
}

// MaxDepth returns the depth of the deepest node.
func (t *Tree) MaxDepth() int {
	deepest := 0
	for i := range t.nodes {
		deepest = max(deepest, t.nodes[i].Depth)
	}
	return deepest
}

// LeafCount returns the number of leaves.
func (t *Tree) LeafCount() int {
	n := 0
	for i := range t.nodes {
		if t.nodes[i].Kind == KindLeaf {
			n++
		}
	}
	return n
}

// ResetState clears interaction state: every node visible, nothing
// selected or isolated. Topology and layout are untouched.
func (t *Tree) ResetState() {
	for i := range t.nodes {
		t.nodes[i].Visible = true
		t.nodes[i].Selected = false
		t.nodes[i].Isolated = false
	}
}
