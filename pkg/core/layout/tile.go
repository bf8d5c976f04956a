package layout

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/treemap/pkg/core/geom"
	"github.com/matzehuels/treemap/pkg/errors"
)

// Phi is the golden ratio, the target aspect ratio of [Squarify].
var Phi = (1 + math.Sqrt(5)) / 2

// Tiler partitions a rectangle among positive values.
//
// Tile is called with a non-empty rectangle and at least one value; every
// value is positive. It returns one rectangle per value, in order, that
// together cover area exactly and do not overlap.
type Tiler interface {
	Tile(area geom.Rect, values []float64) []geom.Rect
	Name() string
}

// Tiler names accepted by [TilerByName].
const (
	TilerSquarify  = "squarify"
	TilerSliceDice = "slicedice"
)

// TilerByName returns the tiler registered under name.
func TilerByName(name string) (Tiler, error) {
	switch name {
	case "", TilerSquarify:
		return Squarify{}, nil
	case TilerSliceDice:
		return SliceDice{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown tiling %q (want %s or %s)", name, TilerSquarify, TilerSliceDice)
}

// =============================================================================
// Squarify
// =============================================================================

// Squarify lays children out in rows whose cells approach Ratio as their
// aspect ratio. Ratio values below 1 select [Phi].
type Squarify struct {
	Ratio float64
}

// Name returns "squarify".
func (Squarify) Name() string { return TilerSquarify }

// Tile implements [Tiler].
func (s Squarify) Tile(area geom.Rect, values []float64) []geom.Rect {
	ratio := s.Ratio
	if ratio < 1 {
		ratio = Phi
	}

	out := make([]geom.Rect, len(values))
	remaining := floats.Sum(values)
	x0, y0, x1, y1 := area.X0, area.Y0, area.X1, area.Y1

	for i0, n := 0, len(values); i0 < n; {
		dx, dy := x1-x0, y1-y0

		i1 := i0 + 1
		rowSum := values[i0]
		lo, hi := rowSum, rowSum
		alpha := math.Max(dy/dx, dx/dy) / (remaining * ratio)
		beta := rowSum * rowSum * alpha
		best := math.Max(hi/beta, beta/lo)

		for ; i1 < n; i1++ {
			v := values[i1]
			s := rowSum + v
			l, h := math.Min(lo, v), math.Max(hi, v)
			beta = s * s * alpha
			worst := math.Max(h/beta, beta/l)
			if worst > best {
				break
			}
			rowSum, lo, hi, best = s, l, h, worst
		}

		last := i1 == n
		if dx < dy {
			edge := y1
			if !last {
				edge = y0 + dy*rowSum/remaining
			}
			splitX(out[i0:i1], values[i0:i1], rowSum, geom.R(x0, y0, x1, edge))
			y0 = edge
		} else {
			edge := x1
			if !last {
				edge = x0 + dx*rowSum/remaining
			}
			splitY(out[i0:i1], values[i0:i1], rowSum, geom.R(x0, y0, edge, y1))
			x0 = edge
		}
		remaining -= rowSum
		i0 = i1
	}
	return out
}

// =============================================================================
// Slice and dice
// =============================================================================

// SliceDice cuts the area into a single strip of cells along its longer
// axis.
type SliceDice struct{}

// Name returns "slicedice".
func (SliceDice) Name() string { return TilerSliceDice }

// Tile implements [Tiler].
func (SliceDice) Tile(area geom.Rect, values []float64) []geom.Rect {
	out := make([]geom.Rect, len(values))
	total := floats.Sum(values)
	if area.Width() >= area.Height() {
		splitX(out, values, total, area)
	} else {
		splitY(out, values, total, area)
	}
	return out
}

// =============================================================================
// Helpers
// =============================================================================

// splitX divides r into side-by-side columns. The last column ends exactly
// on r.X1 so accumulated error never leaves a seam.
func splitX(out []geom.Rect, values []float64, total float64, r geom.Rect) {
	k := r.Width() / total
	x := r.X0
	for i, v := range values {
		next := x + v*k
		if i == len(values)-1 {
			next = r.X1
		}
		out[i] = geom.R(x, r.Y0, next, r.Y1)
		x = next
	}
}

// splitY divides r into stacked rows. The last row ends exactly on r.Y1.
func splitY(out []geom.Rect, values []float64, total float64, r geom.Rect) {
	k := r.Height() / total
	y := r.Y0
	for i, v := range values {
		next := y + v*k
		if i == len(values)-1 {
			next = r.Y1
		}
		out[i] = geom.R(r.X0, y, r.X1, next)
		y = next
	}
}
