package geom

import "testing"

func TestRectDimensions(t *testing.T) {
	tests := []struct {
		name         string
		r            Rect
		wantW, wantH float64
		wantEmpty    bool
	}{
		{"positive", R(10, 20, 50, 80), 40, 60, false},
		{"zero width", R(10, 20, 10, 80), 0, 60, true},
		{"zero height", R(0, 5, 100, 5), 100, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Width(); got != tt.wantW {
				t.Errorf("Width() = %v, want %v", got, tt.wantW)
			}
			if got := tt.r.Height(); got != tt.wantH {
				t.Errorf("Height() = %v, want %v", got, tt.wantH)
			}
			if got := tt.r.Empty(); got != tt.wantEmpty {
				t.Errorf("Empty() = %v, want %v", got, tt.wantEmpty)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := R(0, 0, 10, 10)
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{5, 5}, true},
		{"top-left corner", Point{0, 0}, true},
		{"right edge excluded", Point{10, 5}, false},
		{"bottom edge excluded", Point{5, 10}, false},
		{"outside", Point{-1, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	if R(5, 5, 5, 5).Contains(Point{5, 5}) {
		t.Error("empty rect should not contain its own corner")
	}
}

func TestRectIntersects(t *testing.T) {
	r := R(0, 0, 10, 10)
	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"overlap", R(5, 5, 15, 15), true},
		{"contained", R(2, 2, 3, 3), true},
		{"touching edge", R(10, 0, 20, 10), true},
		{"separated x", R(11, 0, 20, 10), false},
		{"separated y", R(0, 11, 10, 20), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Intersects(tt.o); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", tt.o, got, tt.want)
			}
			if got := tt.o.Intersects(r); got != tt.want {
				t.Errorf("Intersects is not symmetric for %v", tt.o)
			}
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	if R(0, 0, 10, 10).Overlaps(R(10, 0, 20, 10)) {
		t.Error("touching rects should not overlap in interior area")
	}
	if !R(0, 0, 10, 10).Overlaps(R(9, 9, 20, 20)) {
		t.Error("rects sharing a corner square should overlap")
	}
}

func TestRectInset(t *testing.T) {
	got := R(0, 0, 100, 50).Inset(20, 1, 1, 1)
	if want := R(1, 20, 99, 49); got != want {
		t.Errorf("Inset() = %v, want %v", got, want)
	}

	collapsed := R(0, 0, 4, 4).Inset(10, 0, 0, 0)
	if collapsed.Height() != 0 || collapsed.Y0 != 7 {
		t.Errorf("Inset() collapse = %v, want zero height at midpoint 7", collapsed)
	}
}

func TestSpanNormalizes(t *testing.T) {
	got := Span(Point{50, 40}, Point{10, 5})
	if want := R(10, 5, 50, 40); got != want {
		t.Errorf("Span() = %v, want %v", got, want)
	}
}

func TestRound(t *testing.T) {
	got := R(0.4, 0.5, 10.49, 10.51).Round()
	if want := R(0, 1, 10, 11); got != want {
		t.Errorf("Round() = %v, want %v", got, want)
	}
}
