// Package server exposes interactive charts over HTTP.
//
// A client uploads a dataset once and receives a chart ID. The server keeps
// the laid-out tree and its [interact.Engine] in memory, so later requests
// only send pointer events and receive the render deltas they caused:
//
//	POST   /charts              upload a dataset, returns {"id": ...}
//	GET    /charts/{id}         scene document (JSON)
//	GET    /charts/{id}/svg     current state as SVG
//	GET    /charts/{id}/dot     node-link view as Graphviz DOT
//	POST   /charts/{id}/events  apply one event, returns the deltas
//	DELETE /charts/{id}         forget a chart
//	GET    /healthz             liveness
//	GET    /version             build information
//
// # Events
//
// Events are JSON objects with a "type" matching [interact.Event] names:
//
//	{"type": "click", "x": 120, "y": 40}
//	{"type": "pointer_down", "x": 10, "y": 10}
//	{"type": "lasso", "rect": {"x0": 0, "y0": 0, "x1": 200, "y1": 100}}
//	{"type": "toggle_leaf", "path": "Budget/Engineering/Infra"}
//	{"type": "toggle_group", "node": 3}
//	{"type": "clear"}
//
// Each chart has its own lock, so events on one chart are applied in
// arrival order while different charts proceed in parallel.
//
// [interact.Engine]: github.com/matzehuels/treemap/pkg/core/interact.Engine
// [interact.Event]: github.com/matzehuels/treemap/pkg/core/interact.Event
package server
