package interact

import (
	"time"

	"github.com/matzehuels/treemap/pkg/core/layout"
	"github.com/matzehuels/treemap/pkg/core/scene"
)

// DefaultLassoRemovalDelay is how long the lasso guide stays on screen
// after the pointer is released.
const DefaultLassoRemovalDelay = time.Second

// Option configures an [Engine].
type Option func(*Engine)

// WithDimmedOpacity sets the opacity of selected leaves and isolated groups.
func WithDimmedOpacity(v float64) Option {
	return func(e *Engine) { e.dimmed = v }
}

// WithRelayoutOnIsolate makes isolation re-run the layout beneath the
// isolated group's parent.
func WithRelayoutOnIsolate(on bool) Option {
	return func(e *Engine) { e.relayout = on }
}

// WithLayoutOptions passes the options that were used to lay out the tree,
// so that relayout reproduces the same geometry.
func WithLayoutOptions(opts ...layout.Option) Option {
	return func(e *Engine) { e.layoutOpts = opts }
}

// WithLassoRemovalDelay sets how long the lasso guide lingers after release.
func WithLassoRemovalDelay(d time.Duration) Option {
	return func(e *Engine) { e.guideDelay = max(d, 0) }
}

// WithClock replaces time.Now for lasso guide expiry.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func defaults(e *Engine) {
	e.dimmed = scene.DefaultDimmedOpacity
	e.guideDelay = DefaultLassoRemovalDelay
	e.now = time.Now
}
