package layout

import (
	"slices"

	"github.com/matzehuels/treemap/pkg/core/geom"
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/errors"
)

// edgeEps decides whether a tiled edge touches the content edge.
const edgeEps = 1e-9

// Compute lays out every node of t inside a width x height chart. It lays
// out hidden nodes as well, so the result is the full-value layout.
func Compute(t *hierarchy.Tree, width, height float64, opts ...Option) error {
	if t == nil || t.Len() == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout of an empty tree")
	}
	if err := errors.ValidateDimensions(width, height); err != nil {
		return err
	}

	p := placer{tree: t, cfg: newConfig(opts)}
	p.place(t.Root(), geom.R(0, 0, width, height))
	return nil
}

// Relayout recomputes the geometry beneath parent, which must already have
// been laid out. Hidden children are excluded from the allocation and keep
// their current rectangles. It returns the IDs whose geometry changed, in
// ascending order.
func Relayout(t *hierarchy.Tree, parent hierarchy.NodeID, opts ...Option) ([]hierarchy.NodeID, error) {
	if t == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "relayout of a nil tree")
	}
	n, ok := t.Lookup(parent)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "relayout of unknown node %d", parent)
	}
	if !n.Laid {
		return nil, errors.New(errors.ErrCodeInvalidInput, "relayout of %q before layout", n.Name)
	}

	p := placer{tree: t, cfg: newConfig(opts), visibleOnly: true, changed: map[hierarchy.NodeID]struct{}{}}
	p.place(parent, n.Rect)

	ids := make([]hierarchy.NodeID, 0, len(p.changed))
	for id := range p.changed {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// TitleRect returns the title band of a laid-out group. Leaves and the
// synthetic root have none.
func TitleRect(t *hierarchy.Tree, id hierarchy.NodeID) (geom.Rect, bool) {
	n, ok := t.Lookup(id)
	if !ok || !n.IsGroup() || n.Synthetic || !n.Laid {
		return geom.Rect{}, false
	}
	return n.Title, true
}

// ContentRect returns the area of a laid-out group that is shared among its
// children, using the same options that were passed to [Compute].
func ContentRect(t *hierarchy.Tree, id hierarchy.NodeID, opts ...Option) (geom.Rect, bool) {
	n, ok := t.Lookup(id)
	if !ok || !n.IsGroup() || !n.Laid {
		return geom.Rect{}, false
	}
	p := placer{tree: t, cfg: newConfig(opts)}
	_, content := p.split(n, n.Rect)
	return content, true
}

// =============================================================================
// Placement
// =============================================================================

type placer struct {
	tree        *hierarchy.Tree
	cfg         config
	visibleOnly bool
	changed     map[hierarchy.NodeID]struct{}
}

func (p *placer) place(id hierarchy.NodeID, r geom.Rect) {
	if p.cfg.round {
		r = r.Round()
	}
	n := p.tree.Node(id)
	if !n.IsGroup() {
		p.set(n, r, geom.Rect{})
		return
	}

	title, content := p.split(n, r)
	p.set(n, r, title)
	p.tile(n, content)
}

// split divides a group's rectangle into its title band and content area.
func (p *placer) split(n *hierarchy.Node, r geom.Rect) (title, content geom.Rect) {
	band := 0.0
	if !n.Synthetic {
		band = min(p.cfg.titleBand, r.Height())
	}
	title = geom.R(r.X0, r.Y0, r.X1, r.Y0+band)
	if n.Synthetic {
		title = r.Collapse()
	}

	content = geom.R(r.X0, r.Y0+band, r.X1, r.Y1)
	o := p.cfg.outer
	content = content.Inset(o, o, o, o)
	if p.cfg.round {
		title, content = title.Round(), content.Round()
	}
	return title, content
}

func (p *placer) tile(n *hierarchy.Node, content geom.Rect) {
	var (
		kids   []hierarchy.NodeID
		values []float64
	)
	for _, c := range n.Children {
		child := p.tree.Node(c)
		if p.visibleOnly && !child.Visible {
			continue
		}
		if child.Value <= 0 || content.Empty() {
			p.collapse(c, content.Collapse())
			continue
		}
		kids = append(kids, c)
		values = append(values, child.Value)
	}
	if len(kids) == 0 {
		return
	}

	rects := p.cfg.tiler.Tile(content, values)
	for i, c := range kids {
		p.place(c, p.gap(rects[i], content))
	}
}

// gap pulls in every trailing edge that does not sit on the content edge.
func (p *placer) gap(r, content geom.Rect) geom.Rect {
	if p.cfg.inner <= 0 {
		return r
	}
	if r.X1 < content.X1-edgeEps {
		r.X1 = max(r.X1-p.cfg.inner, r.X0)
	}
	if r.Y1 < content.Y1-edgeEps {
		r.Y1 = max(r.Y1-p.cfg.inner, r.Y0)
	}
	return r
}

// collapse gives id and its whole subtree a zero-area rectangle at origin.
func (p *placer) collapse(id hierarchy.NodeID, origin geom.Rect) {
	start, end := p.tree.Subtree(id)
	for d := start; d < end; d++ {
		n := p.tree.Node(d)
		if p.visibleOnly && !n.Visible {
			continue
		}
		p.set(n, origin, origin)
	}
}

func (p *placer) set(n *hierarchy.Node, r, title geom.Rect) {
	if p.changed != nil && (!n.Laid || n.Rect != r || n.Title != title) {
		p.changed[n.ID] = struct{}{}
	}
	n.Rect, n.Title, n.Laid = r, title, true
}
