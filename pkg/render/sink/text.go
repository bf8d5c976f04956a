package sink

import "github.com/matzehuels/treemap/pkg/core/geom"

const (
	textPad         = 4.0
	fontHeightRatio = 0.6
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 14.0
	valueLineHeight = 1.3
	valueScale      = 0.85
	minLabelChars   = 3
)

// fitText picks a font size for label inside r. It reports false when r is
// too small to hold even a truncated label.
func fitText(r geom.Rect, label string) (float64, bool) {
	if label == "" || r.Empty() {
		return 0, false
	}
	fs := min(fontSizeMax, r.Height()*fontHeightRatio)
	if fs < fontSizeMin {
		return 0, false
	}
	if r.Width()-2*textPad < minLabelChars*fs*fontCharWidth {
		return 0, false
	}
	return fs, true
}

// truncate shortens label to what fits in width at font size fs, marking the
// cut with "..".
func truncate(label string, width, fs float64) string {
	runes := []rune(label)
	maxChars := max(minLabelChars, int((width-2*textPad)/(fs*fontCharWidth)))
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}
