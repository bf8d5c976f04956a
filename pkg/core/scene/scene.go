package scene

import (
	"slices"
	"strconv"

	"github.com/matzehuels/treemap/pkg/core/geom"
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
)

// DefaultDimmedOpacity is the opacity of selected cells and isolated groups.
const DefaultDimmedOpacity = 0.7

// Primitive is everything a surface needs to draw one node.
type Primitive struct {
	Node      hierarchy.NodeID `json:"id"`
	Parent    hierarchy.NodeID `json:"parent"`
	Kind      hierarchy.Kind   `json:"-"`
	Group     bool             `json:"group"`
	Synthetic bool             `json:"synthetic,omitempty"`
	Depth     int              `json:"depth"`
	Rect      geom.Rect        `json:"rect"`  // leaf cell or whole group
	TitleRect geom.Rect        `json:"title"` // groups only
	FillTier  int              `json:"tier"`
	Fill      string           `json:"fill"`
	TitleFill string           `json:"title_fill,omitempty"`
	Label     string           `json:"label"`
	ValueText string           `json:"value,omitempty"`
	Opacity   float64          `json:"opacity"`
	Visible   bool             `json:"visible"`
	Hittable  bool             `json:"hittable"`
}

// Scene is the render model for one chart instance.
type Scene struct {
	Width   float64
	Height  float64
	Palette Palette

	prims []Primitive
}

// Option configures [Build].
type Option func(*options)

type options struct {
	palette     Palette
	valueLabels bool
	unit        string
	format      func(float64) string
	dimmed      float64
}

// WithPalette replaces the default colours.
func WithPalette(p Palette) Option {
	return func(o *options) { o.palette = p }
}

// WithValueLabels toggles value text on cells and group titles.
func WithValueLabels(on bool) Option {
	return func(o *options) { o.valueLabels = on }
}

// WithValueUnit appends unit to every formatted value, e.g. "m" for minutes.
func WithValueUnit(unit string) Option {
	return func(o *options) { o.unit = unit }
}

// WithValueFormat overrides number formatting for value labels.
func WithValueFormat(fn func(float64) string) Option {
	return func(o *options) {
		if fn != nil {
			o.format = fn
		}
	}
}

// WithDimmedOpacity sets the opacity given to nodes that are already
// selected or isolated when the scene is built.
func WithDimmedOpacity(v float64) Option {
	return func(o *options) { o.dimmed = v }
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Build creates one primitive per node of a laid-out tree. Selection and
// visibility flags already set on the tree are carried over.
func Build(t *hierarchy.Tree, opts ...Option) *Scene {
	o := options{
		palette:     DefaultPalette(),
		valueLabels: true,
		format:      formatValue,
		dimmed:      DefaultDimmedOpacity,
	}
	for _, opt := range opts {
		opt(&o)
	}

	root := t.Node(t.Root()).Rect
	s := &Scene{
		Width:   root.Width(),
		Height:  root.Height(),
		Palette: o.palette,
		prims:   make([]Primitive, t.Len()),
	}

	t.Walk(func(n *hierarchy.Node) bool {
		p := Primitive{
			Node:      n.ID,
			Parent:    n.Parent,
			Kind:      n.Kind,
			Group:     n.IsGroup(),
			Synthetic: n.Synthetic,
			Depth:     n.Depth,
			Rect:      n.Rect,
			FillTier:  o.palette.Tier(n.Depth),
			Fill:      o.palette.FillColor(n.Depth),
			Label:     n.Name,
			Opacity:   1,
			Visible:   n.Visible,
		}
		value := o.format(n.Value) + o.unit
		if n.IsGroup() {
			p.TitleRect = n.Title
			p.TitleFill = o.palette.TitleColor(n.Depth)
			if o.valueLabels && n.Value > 0 {
				p.Label = n.Name + " (" + value + ")"
			}
			if n.Isolated {
				p.Opacity = o.dimmed
			}
		} else {
			if o.valueLabels {
				p.ValueText = value
			}
			if n.Selected {
				p.Opacity = o.dimmed
			}
		}
		p.Hittable = hittable(&p)
		s.prims[n.ID] = p
		return true
	})
	return s
}

// hittable reports whether pointer events can land on p: groups through
// their title band, leaves through their cell.
func hittable(p *Primitive) bool {
	if !p.Visible {
		return false
	}
	if p.Group {
		return !p.Synthetic && !p.TitleRect.Empty()
	}
	return !p.Rect.Empty()
}

// Len returns the number of primitives.
func (s *Scene) Len() int { return len(s.prims) }

// Primitive returns the primitive for id.
func (s *Scene) Primitive(id hierarchy.NodeID) Primitive { return s.prims[id] }

// Primitives returns all primitives in draw order. The slice must not be
// modified.
func (s *Scene) Primitives() []Primitive { return s.prims }

// Order returns node IDs back to front: parents before children.
func (s *Scene) Order() []hierarchy.NodeID {
	ids := make([]hierarchy.NodeID, len(s.prims))
	for i := range ids {
		ids[i] = hierarchy.NodeID(i)
	}
	return ids
}

// Apply mutates primitives according to deltas and returns the sorted,
// de-duplicated IDs that need redrawing. Deltas naming unknown nodes are
// ignored.
func (s *Scene) Apply(deltas []Delta) []hierarchy.NodeID {
	var dirty []hierarchy.NodeID
	for _, d := range deltas {
		if d.Node < 0 || int(d.Node) >= len(s.prims) {
			continue
		}
		p := &s.prims[d.Node]
		switch d.Attr {
		case AttrOpacity:
			p.Opacity = d.Opacity
		case AttrVisible:
			p.Visible = d.Visible
		case AttrRect:
			p.Rect = d.Rect
			if p.Group {
				p.TitleRect = d.Title
			}
		default:
			continue
		}
		p.Hittable = hittable(p)
		dirty = append(dirty, d.Node)
	}
	slices.Sort(dirty)
	return slices.Compact(dirty)
}

// Visible returns the IDs of visible primitives in draw order.
func (s *Scene) Visible() []hierarchy.NodeID {
	var ids []hierarchy.NodeID
	for i := range s.prims {
		if s.prims[i].Visible {
			ids = append(ids, hierarchy.NodeID(i))
		}
	}
	return ids
}
