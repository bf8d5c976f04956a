package server

import (
	"github.com/matzehuels/treemap/pkg/core/geom"
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/core/interact"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// eventRequest is the wire form of an [interact.Event]. Pointer events use
// X and Y; toggles name their node by ID or by Path (see
// [pipeline.Resolve]).
type eventRequest struct {
	Type string            `json:"type"`
	X    float64           `json:"x"`
	Y    float64           `json:"y"`
	Rect *geom.Rect        `json:"rect,omitempty"`
	Node *hierarchy.NodeID `json:"node,omitempty"`
	Path string            `json:"path,omitempty"`
}

// event converts req into an engine event for t.
func (req eventRequest) event(t *hierarchy.Tree) (interact.Event, error) {
	at := geom.Point{X: req.X, Y: req.Y}
	switch req.Type {
	case "click":
		return interact.ClickEvent{At: at}, nil
	case "pointer_down":
		return interact.PointerDownEvent{At: at}, nil
	case "pointer_move":
		return interact.PointerMoveEvent{At: at}, nil
	case "pointer_up":
		return interact.PointerUpEvent{At: at}, nil
	case "lasso":
		if req.Rect == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "lasso event needs a rect")
		}
		return interact.LassoEvent{Rect: *req.Rect}, nil
	case "toggle_leaf", "toggle_group":
		id, err := req.target(t)
		if err != nil {
			return nil, err
		}
		if req.Type == "toggle_leaf" {
			return interact.ToggleLeafEvent{Node: id}, nil
		}
		return interact.ToggleGroupEvent{Node: id}, nil
	case "clear":
		return interact.ClearEvent{}, nil
	case "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "event type is required")
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown event type %q", req.Type)
}

func (req eventRequest) target(t *hierarchy.Tree) (hierarchy.NodeID, error) {
	switch {
	case req.Path != "":
		return pipeline.Resolve(t, req.Path)
	case req.Node != nil:
		if !t.Valid(*req.Node) {
			return hierarchy.NoNode, errors.New(errors.ErrCodeNotFound, "node %d not found", *req.Node)
		}
		return *req.Node, nil
	}
	return hierarchy.NoNode, errors.New(errors.ErrCodeInvalidInput, "%s event needs a node or path", req.Type)
}
