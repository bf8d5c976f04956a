package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/treemap/pkg/config"
	"github.com/matzehuels/treemap/pkg/core/geom"
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/core/interact"
	"github.com/matzehuels/treemap/pkg/core/scene"
	pkgio "github.com/matzehuels/treemap/pkg/io"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// Status bar styles
var (
	statusStyle    = lipgloss.NewStyle().Foreground(colorGray)
	statusKeyStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// statusHeight is the number of rows below the chart.
const statusHeight = 1

// =============================================================================
// ChartModel - Interactive treemap
// =============================================================================

// ChartModel is the bubbletea model for the interactive treemap. One
// terminal cell is one layout unit; the chart is rebuilt when the window
// is resized and the interaction state carried over by node ID.
type ChartModel struct {
	ctx  context.Context
	ds   pkgio.Dataset
	opts pipeline.Options

	tree  *hierarchy.Tree
	eng   *interact.Engine
	scene *scene.Scene

	width, height int
	pressed       bool
	pressAt       geom.Point
	status        string
	err           error
}

// guideExpiredMsg redraws once a lingering lasso guide is due to vanish.
type guideExpiredMsg struct{}

// NewChartModel creates a chart model for ds. opts carries the chart
// configuration and the initial replay state; its size is replaced by the
// terminal's.
func NewChartModel(ctx context.Context, ds pkgio.Dataset, opts pipeline.Options) ChartModel {
	return ChartModel{ctx: ctx, ds: ds, opts: opts}
}

// cellConfig adapts cfg to a grid of w×h terminal cells.
func cellConfig(cfg config.Config, w, h int) config.Config {
	cfg.Width = float64(w)
	cfg.Height = float64(h)
	cfg.TitleBandHeight = 1
	cfg.OuterPadding = 0
	cfg.InnerPadding = 1
	cfg.RoundCoordinates = true
	return cfg
}

// resize rebuilds the chart for a w×h terminal.
func (m *ChartModel) resize(w, h int) error {
	m.width, m.height = w, h
	rows := max(h-statusHeight, 1)


	base := config.Default()
	if m.opts.Config != nil {
		base = *m.opts.Config
	}
	cfg := cellConfig(base, max(w, 1), rows)
	opts := m.opts
	opts.Config = &cfg

	tree, err := pipeline.Build(m.ds)
	if err != nil {
		return err
	}
	if err := pipeline.Layout(tree, opts); err != nil {
		return err
	}

	var eng *interact.Engine
	if m.eng == nil {
		if eng, err = pipeline.Replay(m.ctx, tree, opts); err != nil {
			return err
		}
	} else {
		eng = interact.New(tree, cfg.EngineOptions()...)
		eng.Restore(m.eng.State())
	}

	m.tree, m.eng = tree, eng
	m.scene = pipeline.Scene(tree, opts)
	return nil
}

// apply runs ev through the engine and patches the scene.
func (m *ChartModel) apply(ev interact.Event) {
	deltas := m.eng.Apply(ev)
	m.scene.Apply(deltas)
	observability.Interaction().OnTransition(m.ctx, ev.Name(), len(deltas))
	if len(deltas) > 0 {
		m.status = fmt.Sprintf("%s: %d changes", ev.Name(), len(deltas))
	}
}

// cellPoint maps a terminal cell to the layout point at its centre.
func cellPoint(x, y int) geom.Point {
	return geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

// guideCmd schedules a redraw for when the lingering guide expires.
func (m ChartModel) guideCmd() tea.Cmd {
	until, ok := m.eng.GuideExpiry()
	if !ok {
		return nil
	}
	return tea.Tick(time.Until(until), func(time.Time) tea.Msg { return guideExpiredMsg{} })
}

func (m ChartModel) Init() tea.Cmd {
	return nil
}

func (m ChartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if err := m.resize(msg.Width, msg.Height); err != nil {
			m.err = err
			return m, tea.Quit
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "c":
			if m.eng != nil {
				m.apply(interact.ClearEvent{})
			}
		}

	case tea.MouseMsg:
		if m.eng == nil || msg.Action == tea.MouseActionPress && msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		p := cellPoint(msg.X, msg.Y)
		switch msg.Action {
		case tea.MouseActionPress:
			m.pressed, m.pressAt = true, p
			m.apply(interact.PointerDownEvent{At: p})
		case tea.MouseActionMotion:
			if m.pressed {
				m.apply(interact.PointerMoveEvent{At: p})
			}
		case tea.MouseActionRelease:
			if !m.pressed {
				return m, nil
			}
			m.pressed = false
			m.apply(interact.PointerUpEvent{At: p})
			if p == m.pressAt {
				m.apply(interact.ClickEvent{At: p})
			}
			return m, m.guideCmd()
		}

	case guideExpiredMsg:
		// View reads the guide against the clock; nothing to update.
	}
	return m, nil
}

func (m ChartModel) View() string {
	if m.scene == nil {
		return "loading..."
	}
	rows := max(m.height-statusHeight, 1)
	guide, showGuide := m.eng.Guide(time.Now())
	g := paint(m.scene, m.width, rows, guide, showGuide)

	var b strings.Builder
	b.WriteString(g.String())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m ChartModel) statusLine() string {
	if m.err != nil {
		return statusErrStyle.Render(m.err.Error())
	}
	keys := statusKeyStyle.Render("click") + statusStyle.Render(" toggle  ") +
		statusKeyStyle.Render("drag") + statusStyle.Render(" lasso  ") +
		statusKeyStyle.Render("c") + statusStyle.Render(" clear  ") +
		statusKeyStyle.Render("q") + statusStyle.Render(" quit")
	state := statusStyle.Render(fmt.Sprintf("  %d selected · %d isolated",
		len(m.eng.Selected()), len(m.eng.Isolated())))
	line := keys + state
	if m.status != "" {
		line += StyleDim.Render("  " + m.status)
	}
	return line
}

// Err returns the error that ended the program, if any.
func (m ChartModel) Err() error { return m.err }

// =============================================================================
// Grid Painting
// =============================================================================

// cell is one painted terminal cell.
type cell struct {
	ch rune
	bg string // hex colour, "" for terminal default
	fg string
}

// grid is a painted chart, row-major.
type grid struct {
	w, h  int
	cells []cell
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, cells: make([]cell, w*h)}
	for i := range g.cells {
		g.cells[i].ch = ' '
	}
	return g
}

func (g *grid) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return nil
	}
	return &g.cells[y*g.w+x]
}

// bounds converts r to the half-open cell range it covers.
func (g *grid) bounds(r geom.Rect) (x0, y0, x1, y1 int) {
	return max(int(r.X0), 0), max(int(r.Y0), 0), min(int(r.X1), g.w), min(int(r.Y1), g.h)
}

func (g *grid) fill(r geom.Rect, bg string) {
	x0, y0, x1, y1 := g.bounds(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			*g.at(x, y) = cell{ch: ' ', bg: bg}
		}
	}
}

// text writes s from (x, y), clipped to x1.
func (g *grid) text(x, y, x1 int, s, fg string) {
	for _, r := range s {
		if x >= x1 {
			return
		}
		if c := g.at(x, y); c != nil {
			c.ch, c.fg = r, fg
		}
		x++
	}
}

// outline draws the border of r in fg over whatever is painted.
func (g *grid) outline(r geom.Rect, fg string) {
	x0, y0, x1, y1 := g.bounds(r)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	set := func(x, y int, ch rune) {
		if c := g.at(x, y); c != nil {
			c.ch, c.fg = ch, fg
		}
	}
	for x := x0; x < x1; x++ {
		set(x, y0, '─')
		set(x, y1-1, '─')
	}
	for y := y0; y < y1; y++ {
		set(x0, y, '│')
		set(x1-1, y, '│')
	}
	set(x0, y0, '┌')
	set(x1-1, y0, '┐')
	set(x0, y1-1, '└')
	set(x1-1, y1-1, '┘')
}

// String renders the grid with runs of equal colours merged.
func (g *grid) String() string {
	var b strings.Builder
	for y := 0; y < g.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run []rune
		var cur cell
		flush := func() {
			if len(run) == 0 {
				return
			}
			st := lipgloss.NewStyle()
			if cur.bg != "" {
				st = st.Background(lipgloss.Color(cur.bg))
			}
			if cur.fg != "" {
				st = st.Foreground(lipgloss.Color(cur.fg))
			}
			b.WriteString(st.Render(string(run)))
			run = run[:0]
		}
		for x := 0; x < g.w; x++ {
			c := *g.at(x, y)
			if c.bg != cur.bg || c.fg != cur.fg {
				flush()
				cur = c
			}
			run = append(run, c.ch)
		}
		flush()
	}
	return b.String()
}

// paint draws sc onto a w×h grid, back to front, with the lasso guide on
// top.
func paint(sc *scene.Scene, w, h int, guide geom.Rect, showGuide bool) *grid {
	g := newGrid(w, h)
	text := sc.Palette.Text
	for _, id := range sc.Order() {
		p := sc.Primitive(id)
		if !p.Visible || p.Synthetic || p.Rect.Empty() {
			continue
		}
		fill := dim(p.Fill, p.Opacity)
		g.fill(p.Rect, fill)
		x0, y0, x1, _ := g.bounds(p.Rect)
		if p.Group {
			if !p.TitleRect.Empty() {
				g.fill(p.TitleRect, dim(p.TitleFill, p.Opacity))
				g.text(x0, y0, x1, label(p), text)
			}
			continue
		}
		g.text(x0, y0, x1, p.Label, text)
		if p.ValueText != "" {
			g.text(x0, y0+1, x1, p.ValueText, text)
		}
	}
	if showGuide {
		g.outline(guide, sc.Palette.Guide)
	}
	return g
}

// label is a group's title text.
func label(p scene.Primitive) string {
	if p.ValueText == "" {
		return p.Label
	}
	return p.Label + " " + p.ValueText
}

// dim darkens hex towards black so a cell at opacity o reads as it would
// over a dark background. Unparseable colours are returned unchanged.
func dim(hex string, o float64) string {
	if o >= 1 {
		return hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.BlendRgb(colorful.Color{}, 1-o).Hex()
}
