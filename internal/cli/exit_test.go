package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/treemap/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"interrupted", fmt.Errorf("render: %w", context.Canceled), ExitInterrupted},
		{"negative weight", errors.New(errors.ErrCodeInvalidInput, "negative value"), ExitInvalid},
		{"bad config", fmt.Errorf("invalid options: %w", errors.New(errors.ErrCodeInvalidConfig, "tiling")), ExitInvalid},
		{"bad width", errors.New(errors.ErrCodeInvalidSize, "width"), ExitInvalid},
		{"missing file", errors.New(errors.ErrCodeFileNotFound, "nope.json"), ExitNotFound},
		{"unknown node", errors.New(errors.ErrCodeNotFound, "Nope"), ExitNotFound},
		{"redis path", errors.New(errors.ErrCodeUnsupported, "no directory"), ExitUnsupported},
		{"plain", fmt.Errorf("boom"), ExitFailure},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("%s: ExitCode(%v) = %d, want %d", tt.name, tt.err, got, tt.want)
		}
	}
}

func TestExitCodeFromCommand(t *testing.T) {
	_, err := runCLI(t, "render", filepath.Join(t.TempDir(), "nope.json"), "--no-cache")
	if got := ExitCode(err); got != ExitNotFound {
		t.Errorf("ExitCode(render nope.json) = %d, want %d (err %v)", got, ExitNotFound, err)
	}

	var buf bytes.Buffer
	ReportError(&buf, err)
	if !strings.Contains(buf.String(), string(errors.ErrCodeFileNotFound)) {
		t.Errorf("ReportError() = %q, want the error code", buf.String())
	}

	buf.Reset()
	ReportError(&buf, context.Canceled)
	if buf.Len() != 0 {
		t.Errorf("ReportError(canceled) = %q, want nothing", buf.String())
	}
}
