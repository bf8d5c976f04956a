package scene

// Palette maps node depth to colours. Depths beyond the last tier reuse the
// last tier.
type Palette struct {
	Fill  []string // cell and group body colours, shallowest first
	Title []string // group title band colours, shallowest first
	Text  string
	Guide string // lasso guide stroke
}

// DefaultPalette is a five-tier blue ramp.
func DefaultPalette() Palette {
	return Palette{
		Fill:  []string{"#64B5F6", "#2196F3", "#1976D2", "#1565C0", "#0D47A1"},
		Title: []string{"#1565C0", "#0D47A1", "#0A367A", "#072654", "#051B3B"},
		Text:  "#FFFFFF",
		Guide: "#FF4081",
	}
}

// Tier clamps depth to the palette's range.
func (p Palette) Tier(depth int) int {
	n := len(p.Fill)
	if n == 0 || depth < 0 {
		return 0
	}
	return min(depth, n-1)
}

// FillColor returns the body colour for depth.
func (p Palette) FillColor(depth int) string {
	return pick(p.Fill, p.Tier(depth))
}

// TitleColor returns the title band colour for depth.
func (p Palette) TitleColor(depth int) string {
	if len(p.Title) == 0 {
		return p.FillColor(depth)
	}
	return pick(p.Title, min(p.Tier(depth), len(p.Title)-1))
}

func pick(colors []string, i int) string {
	if len(colors) == 0 {
		return "#808080"
	}
	return colors[i]
}
