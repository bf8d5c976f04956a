package hierarchy

import "testing"

func TestTreeRelationships(t *testing.T) {
	tree, err := Build(NewGroup("root",
		NewGroup("G", NewLeaf("g1", 3), NewLeaf("g2", 2)),
		NewGroup("H", NewLeaf("h1", 4)),
		NewLeaf("L", 1),
	))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	byName := map[string]NodeID{}
	tree.Walk(func(n *Node) bool {
		byName[n.Name] = n.ID
		return true
	})

	g := byName["G"]
	siblings := tree.Siblings(g)
	if len(siblings) != 2 {
		t.Fatalf("Siblings(G) = %v, want 2 entries", siblings)
	}
	for _, s := range siblings {
		if s == g {
			t.Error("Siblings should exclude the node itself")
		}
	}
	if tree.Siblings(tree.Root()) != nil {
		t.Error("root should have no siblings")
	}

	leaves := tree.Leaves(g)
	if len(leaves) != 2 {
		t.Errorf("Leaves(G) = %v, want 2 leaves", leaves)
	}
	if got := tree.Leaves(byName["g1"]); len(got) != 1 || got[0] != byName["g1"] {
		t.Errorf("Leaves(leaf) = %v, want itself", got)
	}

	start, end := tree.Subtree(g)
	if int(end-start) != 3 {
		t.Errorf("Subtree(G) size = %d, want 3", end-start)
	}
	if got := tree.Descendants(g); len(got) != 3 || got[0] != g {
		t.Errorf("Descendants(G) = %v, want G first then 2 leaves", got)
	}

	if tree.IsAncestor(g, byName["h1"]) {
		t.Error("G should not be an ancestor of h1")
	}
	if tree.Parent(tree.Root()) != NoNode {
		t.Error("root parent should be NoNode")
	}
	if _, ok := tree.Lookup(NodeID(tree.Len())); ok {
		t.Error("Lookup past the end should fail")
	}
}

func TestResetState(t *testing.T) {
	tree, err := Build(NewGroup("root", NewLeaf("a", 1)))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	leaf := tree.Node(1)
	leaf.Selected = true
	leaf.Visible = false
	tree.Node(0).Isolated = true

	tree.ResetState()

	if leaf.Selected || !leaf.Visible || tree.Node(0).Isolated {
		t.Error("ResetState should restore default interaction state")
	}
}
