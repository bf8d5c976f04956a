package pipeline

import (
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/core/layout"
	"github.com/matzehuels/treemap/pkg/core/scene"
)

// Layout lays out t at the configured size. opts must have passed
// [Options.ValidateAndSetDefaults].
func Layout(t *hierarchy.Tree, opts Options) error {
	return layout.Compute(t, opts.Config.Width, opts.Config.Height, opts.Config.LayoutOptions()...)
}

// Scene builds the render model for t. Build it after [Replay] so the
// scene carries the replayed opacity and visibility.
func Scene(t *hierarchy.Tree, opts Options) *scene.Scene {
	return scene.Build(t, opts.Config.SceneOptions()...)
}
