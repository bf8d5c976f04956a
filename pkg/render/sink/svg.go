package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/treemap/pkg/core/geom"
	"github.com/matzehuels/treemap/pkg/core/scene"
)

const interactionCSS = `
    .cell { transition: opacity 0.2s ease; }
    .cell:hover > rect.body, .group > rect.title:hover { stroke-width: 2; }
    .group > rect.title { cursor: pointer; }
    .leaf { cursor: pointer; }
    text { pointer-events: none; }`

const (
	// DefaultFontFamily is used when no [WithFontFamily] option is given.
	DefaultFontFamily = "Helvetica, Arial, sans-serif"

	strokeColor = "#FFFFFF"
	strokeWidth = 0.5
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	guide       geom.Rect
	showGuide   bool
	font        string
	interactive bool
}

// WithGuide draws the lasso guide rectangle on top of the chart.
func WithGuide(r geom.Rect) SVGOption {
	return func(s *svgRenderer) { s.guide, s.showGuide = r, true }
}

// WithFontFamily sets the CSS font-family of all labels.
func WithFontFamily(f string) SVGOption {
	return func(s *svgRenderer) {
		if f != "" {
			s.font = f
		}
	}
}

// WithInteraction adds hover styles so the SVG can be embedded in a page
// that forwards clicks back to an engine.
func WithInteraction() SVGOption {
	return func(s *svgRenderer) { s.interactive = true }
}

// RenderSVG draws sc as a standalone SVG document. Primitives are emitted in
// draw order, one <g> per node with id "node-<id>". Hidden nodes are kept
// with display="none" so a client can show them again without re-rendering.
func RenderSVG(sc *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{font: DefaultFontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(sc.Width), num(sc.Height), sc.Width, sc.Height)
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", interactionCSS)
	}
	fmt.Fprintf(&buf, `  <g font-family="%s" fill="%s">`+"\n", escapeXML(r.font), sc.Palette.Text)

	for _, p := range sc.Primitives() {
		if p.Synthetic {
			continue
		}
		if p.Group {
			renderGroup(&buf, p)
		} else {
			renderLeaf(&buf, p)
		}
	}
	buf.WriteString("  </g>\n")

	if r.showGuide {
		g := r.guide
		fmt.Fprintf(&buf, `  <rect class="lasso" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="1" stroke-dasharray="4 2"/>`+"\n",
			num(g.X0), num(g.Y0), num(g.Width()), num(g.Height()), sc.Palette.Guide)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func openNode(buf *bytes.Buffer, p scene.Primitive, class string) {
	fmt.Fprintf(buf, `    <g id="node-%d" class="cell %s" data-depth="%d" opacity="%s"`, p.Node, class, p.Depth, num(p.Opacity))
	if !p.Visible {
		buf.WriteString(` display="none"`)
	}
	buf.WriteString(">\n")
}

func renderGroup(buf *bytes.Buffer, p scene.Primitive) {
	openNode(buf, p, "group")
	writeRect(buf, "body", p.Rect, p.Fill)
	if !p.TitleRect.Empty() {
		writeRect(buf, "title", p.TitleRect, p.TitleFill)
		if fs, ok := fitText(p.TitleRect, p.Label); ok {
			fmt.Fprintf(buf, `      <text x="%s" y="%s" font-size="%s" dominant-baseline="central">%s</text>`+"\n",
				num(p.TitleRect.X0+textPad), num(p.TitleRect.CenterY()), num(fs),
				escapeXML(truncate(p.Label, p.TitleRect.Width(), fs)))
		}
	}
	buf.WriteString("    </g>\n")
}

func renderLeaf(buf *bytes.Buffer, p scene.Primitive) {
	openNode(buf, p, "leaf")
	writeRect(buf, "body", p.Rect, p.Fill)
	if fs, ok := fitText(p.Rect, p.Label); ok {
		y := p.Rect.Y0 + textPad + fs
		fmt.Fprintf(buf, `      <text x="%s" y="%s" font-size="%s">%s</text>`+"\n",
			num(p.Rect.X0+textPad), num(y), num(fs), escapeXML(truncate(p.Label, p.Rect.Width(), fs)))
		if p.ValueText != "" && y+fs*valueLineHeight <= p.Rect.Y1-textPad {
			fmt.Fprintf(buf, `      <text class="value" x="%s" y="%s" font-size="%s" fill-opacity="0.8">%s</text>`+"\n",
				num(p.Rect.X0+textPad), num(y+fs*valueLineHeight), num(fs*valueScale), escapeXML(p.ValueText))
		}
	}
	buf.WriteString("    </g>\n")
}

func writeRect(buf *bytes.Buffer, class string, r geom.Rect, fill string) {
	fmt.Fprintf(buf, `      <rect class="%s" x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		class, num(r.X0), num(r.Y0), num(max(0, r.Width())), num(max(0, r.Height())), fill, strokeColor, num(strokeWidth))
}

// num formats a coordinate with the shortest exact representation.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
