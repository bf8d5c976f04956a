package render

import (
	"testing"

	"github.com/matzehuels/treemap/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="10" height="10"><rect width="10" height="10" fill="#2196F3"/></svg>`

func TestToPNG_BadScale(t *testing.T) {
	for _, scale := range []float64{0, -1} {
		_, err := ToPNG([]byte(tinySVG), scale)
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("ToPNG(scale=%g) code = %v, want %v", scale, errors.GetCode(err), errors.ErrCodeInvalidConfig)
		}
	}
}

func TestConvert(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}

	png, err := ToPNG([]byte(tinySVG), 1)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Errorf("ToPNG() output does not start with a PNG signature")
	}

	pdf, err := ToPDF([]byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if len(pdf) < 5 || string(pdf[:5]) != "%PDF-" {
		t.Errorf("ToPDF() output does not start with %%PDF-")
	}
}

func TestConvert_Missing(t *testing.T) {
	if Available() {
		t.Skip("rsvg-convert installed")
	}
	_, err := ToPDF([]byte(tinySVG))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnsupported)
	}
}
