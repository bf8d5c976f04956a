package layout

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/treemap/pkg/core/hierarchy"
)

// Quality summarises how readable a layout is. Aspect ratios are
// max(w/h, h/w), so 1 is a perfect square.
type Quality struct {
	Cells        int     // visible leaves with non-zero area
	MeanAspect   float64 // area-weighted mean aspect ratio
	MaxAspect    float64
	StdDevAspect float64
	Coverage     float64 // leaf area divided by the root area
}

// Measure computes [Quality] over the visible, non-empty leaf cells of a
// laid-out tree. A tree without such cells yields the zero Quality.
func Measure(t *hierarchy.Tree) Quality {
	var aspects, areas []float64
	for _, id := range t.Leaves(t.Root()) {
		n := t.Node(id)
		if !n.Visible || n.Rect.Empty() {
			continue
		}
		w, h := n.Rect.Width(), n.Rect.Height()
		aspects = append(aspects, math.Max(w/h, h/w))
		areas = append(areas, n.Rect.Area())
	}
	if len(aspects) == 0 {
		return Quality{}
	}

	q := Quality{
		Cells:      len(aspects),
		MeanAspect: stat.Mean(aspects, areas),
		MaxAspect:  floats.Max(aspects),
	}
	if len(aspects) > 1 {
		q.StdDevAspect = stat.StdDev(aspects, nil)
	}
	if root := t.Node(t.Root()).Rect.Area(); root > 0 {
		q.Coverage = floats.Sum(areas) / root
	}
	return q
}
