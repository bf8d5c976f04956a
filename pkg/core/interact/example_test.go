package interact_test

import (
	"fmt"

	"github.com/matzehuels/treemap/pkg/core/geom"
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/core/interact"
	"github.com/matzehuels/treemap/pkg/core/layout"
	"github.com/matzehuels/treemap/pkg/core/scene"
)

func ExampleEngine() {
	tree, _ := hierarchy.Build(hierarchy.NewGroup("A",
		hierarchy.NewLeaf("L1", 40),
		hierarchy.NewLeaf("L2", 60),
	))
	_ = layout.Compute(tree, 100, 50)
	sc := scene.Build(tree)
	engine := interact.New(tree)

	l1 := tree.Node(tree.Children(tree.Root())[1])
	click := geom.Point{X: l1.Rect.CenterX(), Y: l1.Rect.CenterY()}

	dirty := sc.Apply(engine.OnClick(click))
	fmt.Println(dirty, sc.Primitive(l1.ID).Label, sc.Primitive(l1.ID).Opacity)

	sc.Apply(engine.OnClick(click))
	fmt.Println(sc.Primitive(l1.ID).Opacity)
	// Output:
	// [2] L1 0.7
	// 1
}
