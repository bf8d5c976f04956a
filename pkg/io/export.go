package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/treemap/pkg/core/hierarchy"
)

// node mirrors hierarchy.RawNode but keeps an empty children list in the
// output, so empty groups stay groups after a round trip.
type node struct {
	Name     string   `json:"name" yaml:"name"`
	Value    *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Children *[]*node `json:"children,omitempty" yaml:"children,omitempty"`
}

func toNode(r *hierarchy.RawNode) *node {
	if r == nil {
		return nil
	}
	n := &node{Name: r.Name, Value: r.Value}
	if r.Children != nil {
		kids := make([]*node, len(r.Children))
		for i, c := range r.Children {
			kids[i] = toNode(c)
		}
		n.Children = &kids
	}
	return n
}

// payload is a single tree object or an array for a forest.
func (d Dataset) payload() any {
	roots := make([]*node, len(d.Roots))
	for i, r := range d.Roots {
		roots[i] = toNode(r)
	}
	if len(roots) == 1 {
		return roots[0]
	}
	return roots
}

// WriteJSON encodes d as indented JSON. [ReadJSON] reads the result back
// into an identical dataset.
func WriteJSON(d Dataset, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.payload()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes d as YAML.
func WriteYAML(d Dataset, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d.payload()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// ExportFile writes d to path in the format implied by its extension.
func ExportFile(d Dataset, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatYAML {
		return WriteYAML(d, f)
	}
	return WriteJSON(d, f)
}
