package interact

import (
	"time"

	"github.com/matzehuels/treemap/pkg/core/geom"
)

// drag is the lasso pointer state: idle or drawing, plus the guide that
// lingers after release.
type drag struct {
	drawing    bool
	start, end geom.Point

	guide      geom.Rect
	guideUntil time.Time // zero when no guide lingers
}

// OnPointerDown starts a lasso drag at p. Any drag in progress and any
// lingering guide are discarded.
func (e *Engine) OnPointerDown(p geom.Point) []Delta {
	e.drag = drag{drawing: true, start: p, end: p}
	return nil
}

// OnPointerMove extends the drag in progress. Without one it does nothing.
func (e *Engine) OnPointerMove(p geom.Point) []Delta {
	if e.drag.drawing {
		e.drag.end = p
	}
	return nil
}

// OnPointerUp finishes the drag at p. A release where the drag started
// selects nothing and removes the guide at once; otherwise every visible
// leaf intersecting the dragged rectangle becomes selected and the guide
// stays up for the removal delay.
func (e *Engine) OnPointerUp(p geom.Point) []Delta {
	if !e.drag.drawing {
		return nil
	}
	start := e.drag.start
	if p == start {
		e.drag = drag{}
		return nil
	}

	r := geom.Span(start, p)
	e.drag = drag{guide: r, guideUntil: e.now().Add(e.guideDelay)}
	if e.guideDelay == 0 {
		e.drag.guideUntil = time.Time{}
	}
	return e.Lasso(r)
}

// Dragging reports whether a lasso drag is in progress.
func (e *Engine) Dragging() bool { return e.drag.drawing }

// Guide returns the lasso guide rectangle to draw at time now: the live
// drag while drawing, or the last lasso until the removal delay passes.
func (e *Engine) Guide(now time.Time) (geom.Rect, bool) {
	if e.drag.drawing {
		return geom.Span(e.drag.start, e.drag.end), true
	}
	if e.drag.guideUntil.IsZero() || !now.Before(e.drag.guideUntil) {
		return geom.Rect{}, false
	}
	return e.drag.guide, true
}

// GuideExpiry returns when the lingering guide disappears, or false when
// none is lingering.
func (e *Engine) GuideExpiry() (time.Time, bool) {
	if e.drag.drawing || e.drag.guideUntil.IsZero() {
		return time.Time{}, false
	}
	return e.drag.guideUntil, true
}

// Lasso selects every visible, non-empty leaf whose cell intersects r.
// Touching edges count. Selected leaves stay selected, so repeating a
// lasso changes nothing.
func (e *Engine) Lasso(r geom.Rect) []Delta {
	r = geom.Span(geom.Point{X: r.X0, Y: r.Y0}, geom.Point{X: r.X1, Y: r.Y1})
	var deltas []Delta
	for _, id := range e.tree.Leaves(e.tree.Root()) {
		n := e.tree.Node(id)
		if n.Selected || !e.interactive(n) || !r.Intersects(n.Rect) {
			continue
		}
		e.pick(id)
		if d, changed := e.setSelected(n, e.wantSelected(id)); changed {
			deltas = append(deltas, d)
		}
	}
	return deltas
}
