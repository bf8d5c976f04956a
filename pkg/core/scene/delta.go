package scene

import (
	"fmt"

	"github.com/matzehuels/treemap/pkg/core/geom"
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
)

// Attr names the attribute a [Delta] changes.
type Attr uint8

const (
	AttrOpacity Attr = 1 << iota
	AttrVisible
	AttrRect
)

// String returns the attribute name.
func (a Attr) String() string {
	switch a {
	case AttrOpacity:
		return "opacity"
	case AttrVisible:
		return "visible"
	case AttrRect:
		return "rect"
	}
	return "unknown"
}

// MarshalText encodes the attribute by name.
func (a Attr) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText decodes an attribute name written by MarshalText.
func (a *Attr) UnmarshalText(text []byte) error {
	for _, known := range []Attr{AttrOpacity, AttrVisible, AttrRect} {
		if string(text) == known.String() {
			*a = known
			return nil
		}
	}
	return fmt.Errorf("unknown delta attribute %q", text)
}

// Delta is one render-attribute change for one node. Only the field named
// by Attr is meaningful; Title accompanies Rect for groups.
type Delta struct {
	Node    hierarchy.NodeID `json:"node"`
	Attr    Attr             `json:"attr"`
	Opacity float64          `json:"opacity"`
	Visible bool             `json:"visible"`
	Rect    geom.Rect        `json:"rect"`
	Title   geom.Rect        `json:"title"`
}
