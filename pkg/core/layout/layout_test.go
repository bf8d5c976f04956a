package layout

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/matzehuels/treemap/pkg/core/geom"
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/errors"
)

func mustBuild(t *testing.T, raw *hierarchy.RawNode) *hierarchy.Tree {
	t.Helper()
	tree, err := hierarchy.Build(raw)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return tree
}

func byName(tree *hierarchy.Tree) map[string]*hierarchy.Node {
	out := map[string]*hierarchy.Node{}
	tree.Walk(func(n *hierarchy.Node) bool {
		out[n.Name] = n
		return true
	})
	return out
}

// randomTree returns a deterministic tree with mixed depths, zero weights
// and equal weights.
func randomTree(seed int64) *hierarchy.RawNode {
	rng := rand.New(rand.NewSource(seed))
	var grow func(name string, depth int) *hierarchy.RawNode
	grow = func(name string, depth int) *hierarchy.RawNode {
		if depth >= 3 || (depth > 0 && rng.Intn(3) == 0) {
			v := float64(rng.Intn(6)) * 10
			return hierarchy.NewLeaf(name, v)
		}
		g := hierarchy.NewGroup(name)
		for i := range 2 + rng.Intn(5) {
			g.Children = append(g.Children, grow(fmt.Sprintf("%s.%d", name, i), depth+1))
		}
		return g
	}
	return grow("root", 0)
}

func TestTwoLeavesSplitByWeight(t *testing.T) {
	tree := mustBuild(t, hierarchy.NewGroup("A",
		hierarchy.NewLeaf("L1", 40),
		hierarchy.NewLeaf("L2", 60),
	))
	opts := []Option{WithOuterPadding(0), WithInnerPadding(0)}
	if err := Compute(tree, 100, 50, opts...); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	nodes := byName(tree)
	l1, l2 := nodes["L1"].Rect, nodes["L2"].Rect
	if l2.Area() <= l1.Area() {
		t.Errorf("L2 area %v should exceed L1 area %v", l2.Area(), l1.Area())
	}
	if got := l1.Area() / l2.Area(); math.Abs(got-40.0/60.0) > 1e-9 {
		t.Errorf("L1/L2 area ratio = %v, want %v", got, 40.0/60.0)
	}
	if l1.Height() != l2.Height() {
		t.Errorf("split should run along the long (x) axis, heights %v and %v", l1.Height(), l2.Height())
	}
	want := 100 * (50 - DefaultTitleBand)
	if got := l1.Area() + l2.Area(); got != want {
		t.Errorf("content area = %v, want %v", got, want)
	}
	if title, ok := TitleRect(tree, tree.Root()); !ok || title != geom.R(0, 0, 100, DefaultTitleBand) {
		t.Errorf("TitleRect(root) = %v, %v", title, ok)
	}
}

func TestComputeContainmentAndOverlap(t *testing.T) {
	configs := map[string][]Option{
		"squarify":         nil,
		"slicedice":        {WithTiler(SliceDice{})},
		"unrounded":        {WithRounding(false)},
		"wide padding":     {WithOuterPadding(3), WithInnerPadding(4), WithTitleBand(12)},
		"fractional":       {WithOuterPadding(0.5), WithInnerPadding(1.5), WithTitleBand(17.3)},
		"unrounded slices": {WithTiler(SliceDice{}), WithRounding(false), WithInnerPadding(0)},
	}

	for name, opts := range configs {
		for seed := int64(1); seed <= 20; seed++ {
			t.Run(fmt.Sprintf("%s/%d", name, seed), func(t *testing.T) {
				tree := mustBuild(t, randomTree(seed))
				if err := Compute(tree, 640, 480, opts...); err != nil {
					t.Fatalf("Compute() error: %v", err)
				}
				checkGeometry(t, tree, opts)
			})
		}
	}
}

func checkGeometry(t *testing.T, tree *hierarchy.Tree, opts []Option) {
	t.Helper()
	tree.Walk(func(n *hierarchy.Node) bool {
		if !n.Laid {
			t.Errorf("%s was not laid out", n.Name)
		}
		if n.Rect.Width() < 0 || n.Rect.Height() < 0 {
			t.Errorf("%s has negative size %v", n.Name, n.Rect)
		}
		if !n.IsGroup() {
			return true
		}
		content, ok := ContentRect(tree, n.ID, opts...)
		if !ok {
			t.Fatalf("ContentRect(%s) not available", n.Name)
		}
		for i, a := range n.Children {
			ra := tree.Node(a).Rect
			if !content.ContainsRect(ra) {
				t.Errorf("%s %v escapes parent content %v", tree.Node(a).Name, ra, content)
			}
			for _, b := range n.Children[i+1:] {
				if rb := tree.Node(b).Rect; ra.Overlaps(rb) {
					t.Errorf("siblings %s %v and %s %v overlap", tree.Node(a).Name, ra, tree.Node(b).Name, rb)
				}
			}
		}
		return true
	})
}

func TestComputeIdempotent(t *testing.T) {
	first := mustBuild(t, randomTree(7))
	second := mustBuild(t, randomTree(7))
	for _, tree := range []*hierarchy.Tree{first, second} {
		if err := Compute(tree, 800, 600); err != nil {
			t.Fatalf("Compute() error: %v", err)
		}
	}
	// Laying out the same tree again must not move anything.
	if err := Compute(second, 800, 600); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	for id := range first.Len() {
		a, b := first.Node(hierarchy.NodeID(id)), second.Node(hierarchy.NodeID(id))
		if a.Rect != b.Rect || a.Title != b.Title {
			t.Errorf("node %s: %v vs %v", a.Name, a.Rect, b.Rect)
		}
	}
}

func TestComputeRoundsToIntegers(t *testing.T) {
	tree := mustBuild(t, randomTree(3))
	if err := Compute(tree, 333, 217, WithTitleBand(13.7), WithInnerPadding(1.25)); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	tree.Walk(func(n *hierarchy.Node) bool {
		for _, v := range []float64{n.Rect.X0, n.Rect.Y0, n.Rect.X1, n.Rect.Y1} {
			if v != math.Trunc(v) {
				t.Errorf("%s has fractional coordinate in %v", n.Name, n.Rect)
				break
			}
		}
		return true
	})
}

func TestComputeZeroValue(t *testing.T) {
	tree := mustBuild(t, hierarchy.NewGroup("root",
		hierarchy.NewLeaf("zero", 0),
		hierarchy.NewLeaf("one", 1),
		hierarchy.NewGroup("empty"),
		hierarchy.NewGroup("zeros", hierarchy.NewLeaf("z1", 0), hierarchy.NewLeaf("z2", 0)),
	))
	if err := Compute(tree, 100, 100); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	nodes := byName(tree)
	content, _ := ContentRect(tree, tree.Root())
	for _, name := range []string{"zero", "empty", "zeros", "z1", "z2"} {
		r := nodes[name].Rect
		if r.Area() != 0 {
			t.Errorf("%s area = %v, want 0", name, r.Area())
		}
		if r.X0 != content.X0 || r.Y0 != content.Y0 {
			t.Errorf("%s rect %v should sit at the content origin", name, r)
		}
	}
	if got := nodes["one"].Rect; got != content {
		t.Errorf("sole weighted leaf = %v, want the whole content %v", got, content)
	}
}

func TestComputeZeroSizeChart(t *testing.T) {
	tree := mustBuild(t, randomTree(5))
	if err := Compute(tree, 0, 0); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	tree.Walk(func(n *hierarchy.Node) bool {
		if n.Rect.Area() != 0 {
			t.Errorf("%s area = %v in an empty chart", n.Name, n.Rect.Area())
		}
		return true
	})
}

func TestComputeErrors(t *testing.T) {
	tree := mustBuild(t, randomTree(1))
	tests := []struct {
		name string
		tree *hierarchy.Tree
		w, h float64
		code errors.Code
	}{
		{"nil tree", nil, 10, 10, errors.ErrCodeInvalidInput},
		{"negative width", tree, -1, 10, errors.ErrCodeInvalidSize},
		{"NaN height", tree, 10, math.NaN(), errors.ErrCodeInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compute(tt.tree, tt.w, tt.h)
			if !errors.Is(err, tt.code) {
				t.Errorf("Compute() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSyntheticRootHasNoTitleBand(t *testing.T) {
	tree, err := hierarchy.BuildForest("all", []*hierarchy.RawNode{
		hierarchy.NewLeaf("a", 1),
		hierarchy.NewLeaf("b", 1),
	})
	if err != nil {
		t.Fatalf("BuildForest() error: %v", err)
	}
	if err := Compute(tree, 100, 100, WithOuterPadding(0), WithInnerPadding(0)); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if _, ok := TitleRect(tree, tree.Root()); ok {
		t.Error("synthetic root should have no title band")
	}
	content, _ := ContentRect(tree, tree.Root(), WithOuterPadding(0))
	if content != geom.R(0, 0, 100, 100) {
		t.Errorf("synthetic root content = %v, want the whole chart", content)
	}
}

func TestInnerPaddingLeavesGap(t *testing.T) {
	tree := mustBuild(t, hierarchy.NewGroup("root",
		hierarchy.NewLeaf("a", 1),
		hierarchy.NewLeaf("b", 1),
	))
	if err := Compute(tree, 100, 40, WithTitleBand(0), WithOuterPadding(0), WithInnerPadding(2), WithTiler(SliceDice{})); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	nodes := byName(tree)
	a, b := nodes["a"].Rect, nodes["b"].Rect
	if a != geom.R(0, 0, 48, 40) {
		t.Errorf("a = %v, want [0,0 48,40]", a)
	}
	if b != geom.R(50, 0, 100, 40) {
		t.Errorf("b = %v, want [50,0 100,40]", b)
	}
}

func TestRelayoutRoundTrip(t *testing.T) {
	tree := mustBuild(t, hierarchy.NewGroup("root",
		hierarchy.NewGroup("G", hierarchy.NewLeaf("g1", 30), hierarchy.NewLeaf("g2", 20)),
		hierarchy.NewGroup("H", hierarchy.NewLeaf("h1", 25), hierarchy.NewLeaf("h2", 15)),
		hierarchy.NewLeaf("L", 10),
	))
	if err := Compute(tree, 400, 300); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	before := make([]geom.Rect, tree.Len())
	for i := range before {
		before[i] = tree.Node(hierarchy.NodeID(i)).Rect
	}

	nodes := byName(tree)
	hidden := []string{"H", "h1", "h2", "L"}
	for _, name := range hidden {
		nodes[name].Visible = false
	}

	changed, err := Relayout(tree, tree.Root())
	if err != nil {
		t.Fatalf("Relayout() error: %v", err)
	}
	if len(changed) == 0 {
		t.Fatal("Relayout() reported no changes")
	}
	content, _ := ContentRect(tree, tree.Root())
	if got := nodes["G"].Rect; got != content {
		t.Errorf("G after relayout = %v, want the whole content %v", got, content)
	}
	for _, name := range hidden {
		if n := nodes[name]; n.Rect != before[n.ID] {
			t.Errorf("hidden %s moved to %v", name, n.Rect)
		}
	}

	for _, name := range hidden {
		nodes[name].Visible = true
	}
	restored, err := Relayout(tree, tree.Root())
	if err != nil {
		t.Fatalf("Relayout() error: %v", err)
	}
	if len(restored) == 0 {
		t.Error("second Relayout() reported no changes")
	}
	for i, want := range before {
		if got := tree.Node(hierarchy.NodeID(i)).Rect; got != want {
			t.Errorf("%s = %v after round trip, want %v", tree.Node(hierarchy.NodeID(i)).Name, got, want)
		}
	}
}

func TestRelayoutErrors(t *testing.T) {
	tree := mustBuild(t, randomTree(2))
	if _, err := Relayout(tree, tree.Root()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Relayout() before Compute error = %v, want INVALID_INPUT", err)
	}
	if err := Compute(tree, 10, 10); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if _, err := Relayout(tree, hierarchy.NodeID(tree.Len())); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Relayout(unknown) error = %v, want INVALID_INPUT", err)
	}
}
