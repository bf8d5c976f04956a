package sink

import (
	"encoding/json"

	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/core/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	name     string
	tiling   string
	selected []hierarchy.NodeID
	isolated []hierarchy.NodeID
}

// WithJSONName records the dataset name.
func WithJSONName(name string) JSONOption { return func(r *jsonRenderer) { r.name = name } }

// WithJSONTiling records the tiling algorithm used for the layout.
func WithJSONTiling(name string) JSONOption { return func(r *jsonRenderer) { r.tiling = name } }

// WithJSONSelection records the engine's selection and isolation sets, so a
// client can rebuild its own state from the document.
func WithJSONSelection(selected, isolated []hierarchy.NodeID) JSONOption {
	return func(r *jsonRenderer) { r.selected, r.isolated = selected, isolated }
}

type jsonOutput struct {
	Name     string             `json:"name,omitempty"`
	Width    float64            `json:"width"`
	Height   float64            `json:"height"`
	Tiling   string             `json:"tiling,omitempty"`
	Palette  jsonPalette        `json:"palette"`
	Selected []hierarchy.NodeID `json:"selected,omitempty"`
	Isolated []hierarchy.NodeID `json:"isolated,omitempty"`
	Nodes    []scene.Primitive  `json:"nodes"`
}

type jsonPalette struct {
	Fill  []string `json:"fill"`
	Title []string `json:"title"`
	Text  string   `json:"text"`
	Guide string   `json:"guide"`
}

// RenderJSON exports the scene as a pretty-printed JSON document. Nodes are
// listed in draw order and each node's "id" equals its index, so deltas
// produced by an engine can be applied to the array directly.
//
// RenderJSON does not modify sc and is safe to call concurrently.
func RenderJSON(sc *scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Name:   r.name,
		Width:  sc.Width,
		Height: sc.Height,
		Tiling: r.tiling,
		Palette: jsonPalette{
			Fill:  sc.Palette.Fill,
			Title: sc.Palette.Title,
			Text:  sc.Palette.Text,
			Guide: sc.Palette.Guide,
		},
		Selected: r.selected,
		Isolated: r.isolated,
		Nodes:    sc.Primitives(),
	}
	return json.MarshalIndent(out, "", "  ")
}
