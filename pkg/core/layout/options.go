package layout

// Defaults used when no option overrides them.
const (
	DefaultTitleBand    = 24.0
	DefaultOuterPadding = 1.0
	DefaultInnerPadding = 1.0
)

// Option configures [Compute] and [Relayout].
type Option func(*config)

type config struct {
	titleBand float64
	outer     float64
	inner     float64
	round     bool
	tiler     Tiler
}

func newConfig(opts []Option) config {
	c := config{
		titleBand: DefaultTitleBand,
		outer:     DefaultOuterPadding,
		inner:     DefaultInnerPadding,
		round:     true,
		tiler:     Squarify{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.tiler == nil {
		c.tiler = Squarify{}
	}
	return c
}

// WithTitleBand sets the height reserved at the top of every group for its
// label. Negative values are treated as zero.
func WithTitleBand(h float64) Option {
	return func(c *config) { c.titleBand = max(h, 0) }
}

// WithOuterPadding sets the inset applied to all four sides of a group's
// content area.
func WithOuterPadding(p float64) Option {
	return func(c *config) { c.outer = max(p, 0) }
}

// WithInnerPadding sets the gap left between adjacent children.
func WithInnerPadding(p float64) Option {
	return func(c *config) { c.inner = max(p, 0) }
}

// WithRounding toggles snapping of coordinates to integers.
func WithRounding(on bool) Option {
	return func(c *config) { c.round = on }
}

// WithTiler selects the partitioning rule.
func WithTiler(t Tiler) Option {
	return func(c *config) { c.tiler = t }
}
