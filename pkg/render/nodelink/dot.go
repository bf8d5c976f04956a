package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the aggregate value and depth to every label.
	// When false, only the node name is shown.
	Detailed bool
	// VisibleOnly drops hidden nodes, so the diagram matches what the
	// treemap currently shows.
	VisibleOnly bool
}

// ToDOT converts a hierarchy to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Groups are drawn as folders, leaves as boxes. Selected leaves and isolated
// groups get a bold outline. A synthetic forest root is drawn dashed.
func ToDOT(t *hierarchy.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	t.Walk(func(n *hierarchy.Node) bool {
		if opts.VisibleOnly && !n.Visible {
			return true
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", dotID(n.ID), strings.Join(fmtAttrs(n, fmtLabel(n, opts.Detailed)), ", "))
		return true
	})

	buf.WriteString("\n")
	t.Walk(func(n *hierarchy.Node) bool {
		if opts.VisibleOnly && !n.Visible {
			return true
		}
		for _, c := range n.Children {
			if opts.VisibleOnly && !t.Node(c).Visible {
				continue
			}
			fmt.Fprintf(&buf, "  %s -> %s;\n", dotID(n.ID), dotID(c))
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

func dotID(id hierarchy.NodeID) string { return "n" + strconv.Itoa(int(id)) }

func fmtLabel(n *hierarchy.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}
	return fmt.Sprintf("%s\nvalue: %s\ndepth: %d", n.Name, strconv.FormatFloat(n.Value, 'f', -1, 64), n.Depth)
}

func fmtAttrs(n *hierarchy.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.Synthetic:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case n.IsGroup():
		attrs = append(attrs, "shape=folder", "fillcolor=\"#BBDEFB\"")
	}
	if (n.IsLeaf() && n.Selected) || (n.IsGroup() && n.Isolated) {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based <svg> header with one
// whose width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
