package interact

import (
	"github.com/matzehuels/treemap/pkg/core/geom"
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
)

// Event is an input to [Engine.Apply].
type Event interface {
	// Name identifies the event kind in logs and hooks.
	Name() string
}

// ClickEvent is a pointer click at a surface-local point.
type ClickEvent struct{ At geom.Point }

// PointerDownEvent starts a lasso drag.
type PointerDownEvent struct{ At geom.Point }

// PointerMoveEvent extends the current lasso drag.
type PointerMoveEvent struct{ At geom.Point }

// PointerUpEvent finishes the current lasso drag.
type PointerUpEvent struct{ At geom.Point }

// LassoEvent selects by rectangle without a drag.
type LassoEvent struct{ Rect geom.Rect }

// ToggleLeafEvent toggles a leaf by ID.
type ToggleLeafEvent struct{ Node hierarchy.NodeID }

// ToggleGroupEvent isolates or restores a group by ID.
type ToggleGroupEvent struct{ Node hierarchy.NodeID }

// ClearEvent deselects every leaf not held by an isolation.
type ClearEvent struct{}

func (ClickEvent) Name() string       { return "click" }
func (PointerDownEvent) Name() string { return "pointer_down" }
func (PointerMoveEvent) Name() string { return "pointer_move" }
func (PointerUpEvent) Name() string   { return "pointer_up" }
func (LassoEvent) Name() string       { return "lasso" }
func (ToggleLeafEvent) Name() string  { return "toggle_leaf" }
func (ToggleGroupEvent) Name() string { return "toggle_group" }
func (ClearEvent) Name() string       { return "clear" }
