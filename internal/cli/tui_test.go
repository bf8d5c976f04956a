package cli

import (
	"context"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/treemap/pkg/config"
	"github.com/matzehuels/treemap/pkg/core/geom"
	"github.com/matzehuels/treemap/pkg/core/interact"
	pkgio "github.com/matzehuels/treemap/pkg/io"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

func newTestChart(t *testing.T, w, h int) ChartModel {
	t.Helper()
	ds, err := pkgio.ReadJSON(strings.NewReader(budgetJSON))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	opts := pipeline.Options{Data: []byte(budgetJSON), Format: pkgio.FormatJSON}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	m := NewChartModel(context.Background(), ds, opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(ChartModel)
}

// leafCell returns a terminal cell inside the named leaf.
func leafCell(t *testing.T, m ChartModel, path string) (int, int) {
	t.Helper()
	id, err := pipeline.Resolve(m.tree, path)
	if err != nil {
		t.Fatalf("Resolve(%q) error: %v", path, err)
	}
	r := m.tree.Node(id).Rect
	return int(r.CenterX()), int(r.CenterY())
}

func click(m ChartModel, x, y int) ChartModel {
	next, _ := m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	next, _ = next.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	return next.(ChartModel)
}

func TestCellConfig(t *testing.T) {
	cfg := cellConfig(config.Default(), 80, 23)
	if cfg.Width != 80 || cfg.Height != 23 {
		t.Errorf("size = %vx%v, want 80x23", cfg.Width, cfg.Height)
	}
	if cfg.TitleBandHeight != 1 || cfg.OuterPadding != 0 {
		t.Errorf("title band %v, outer padding %v, want 1 and 0", cfg.TitleBandHeight, cfg.OuterPadding)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("cell config invalid: %v", err)
	}
}

func TestChartModelClickSelects(t *testing.T) {
	m := newTestChart(t, 80, 25)
	x, y := leafCell(t, m, "Misc")

	m = click(m, x, y)
	if got := len(m.eng.Selected()); got != 1 {
		t.Fatalf("selected = %d after click, want 1", got)
	}
	misc, _ := pipeline.Resolve(m.tree, "Misc")
	if op := m.scene.Primitive(misc).Opacity; op != 0.7 {
		t.Errorf("scene opacity = %v, want 0.7", op)
	}

	m = click(m, x, y)
	if got := len(m.eng.Selected()); got != 0 {
		t.Errorf("selected = %d after second click, want 0", got)
	}
}

func TestChartModelDragLassos(t *testing.T) {
	m := newTestChart(t, 80, 25)

	next, _ := m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	next, _ = next.Update(tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if !next.(ChartModel).eng.Dragging() {
		t.Fatal("engine should be dragging after press and motion")
	}
	next, cmd := next.Update(tea.MouseMsg{X: 79, Y: 23, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = next.(ChartModel)

	if got := len(m.eng.Selected()); got != 4 {
		t.Errorf("selected = %d after lasso over the chart, want 4", got)
	}
	if cmd == nil {
		t.Error("release should schedule the guide expiry redraw")
	}
	if !strings.Contains(m.View(), "┌") {
		t.Error("view should draw the lingering guide")
	}
}

func TestChartModelClearAndResize(t *testing.T) {
	m := newTestChart(t, 80, 25)
	ops, err := pipeline.Resolve(m.tree, "Ops")
	if err != nil {
		t.Fatalf("Resolve(Ops) error: %v", err)
	}
	m.apply(interact.ToggleGroupEvent{Node: ops})
	x, y := leafCell(t, m, "Misc")
	m = click(m, x, y) // hidden by the isolation: no-op
	if got := len(m.eng.Selected()); got != 1 {
		t.Fatalf("selected = %d, want Ops' single leaf", got)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(ChartModel)
	if !m.eng.IsIsolated(ops) {
		t.Error("isolation should survive a resize")
	}
	if got := len(m.eng.Selected()); got != 1 {
		t.Errorf("selected = %d after resize, want 1", got)
	}
	if w := m.tree.Node(m.tree.Root()).Rect.Width(); w != 60 {
		t.Errorf("root width = %v after resize, want 60", w)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	m = next.(ChartModel)
	if got := len(m.eng.Selected()); got != 1 {
		t.Errorf("clear should keep leaves held by an isolation, got %d selected", got)
	}
}

func TestChartModelResizeKeepsHiddenAndReleasedLeaves(t *testing.T) {
	m := newTestChart(t, 80, 25)
	misc, _ := pipeline.Resolve(m.tree, "Misc")
	eng, _ := pipeline.Resolve(m.tree, "Eng")
	web, _ := pipeline.Resolve(m.tree, "Budget/Eng/Web")

	m.apply(interact.ToggleLeafEvent{Node: misc})
	m.apply(interact.ToggleGroupEvent{Node: eng})
	m.apply(interact.ToggleLeafEvent{Node: web})
	before := m.eng.Selected()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 70, Height: 22})
	m = next.(ChartModel)
	if got := m.eng.Selected(); !slices.Equal(got, before) {
		t.Errorf("selected = %v after resize, want %v", got, before)
	}
	if !m.eng.IsSelected(misc) || m.tree.Node(misc).Visible {
		t.Error("Misc should stay selected and hidden")
	}
	if m.eng.IsSelected(web) {
		t.Error("Web was deselected inside the isolation and should stay so")
	}
	if op := m.scene.Primitive(web).Opacity; op != 1 {
		t.Errorf("Web opacity = %v, want 1", op)
	}
}

func TestPaint(t *testing.T) {
	m := newTestChart(t, 80, 25)
	g := paint(m.scene, 80, 24, geom.Rect{}, false)

	if g.w != 80 || g.h != 24 {
		t.Fatalf("grid = %dx%d, want 80x24", g.w, g.h)
	}
	out := g.String()
	if strings.Count(out, "\n") != 23 {
		t.Errorf("painted %d lines, want 24", strings.Count(out, "\n")+1)
	}
	for _, want := range []string{"Budget", "Eng"} {
		if !strings.Contains(out, want) {
			t.Errorf("painted grid missing %q", want)
		}
	}
	if c := g.at(80, 0); c != nil {
		t.Error("at() outside the grid should return nil")
	}
}

func TestDim(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		o    float64
		want string
	}{
		{"opaque unchanged", "#2196f3", 1, "#2196f3"},
		{"transparent is black", "#ffffff", 0, "#000000"},
		{"half", "#ffffff", 0.5, "#808080"},
		{"unparseable unchanged", "blue", 0.5, "blue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dim(tt.hex, tt.o); got != tt.want {
				t.Errorf("dim(%q, %v) = %q, want %q", tt.hex, tt.o, got, tt.want)
			}
		})
	}
}
