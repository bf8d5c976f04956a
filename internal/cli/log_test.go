package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/cache"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

func TestPipelineLogFields(t *testing.T) {
	path := writeFile(t, "budget.json", budgetJSON)

	tests := []struct {
		name    string
		level   log.Level
		want    []string
		notWant []string
	}{
		{
			name:  "info",
			level: log.InfoLevel,
			want: []string{
				"built hierarchy", "nodes=7", "leaves=4", "depth=2",
				"computed layout", "tiling=squarify", "cells=",
				"rendered outputs", "cached=false",
			},
			notWant: []string{"loaded dataset"},
		},
		{
			name:  "debug",
			level: log.DebugLevel,
			want:  []string{"loaded dataset", "roots=1", "built hierarchy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			runner := pipeline.NewRunner(cache.NewNullCache(), nil, newLogger(&buf, tt.level))
			if _, err := runner.Execute(context.Background(), pipeline.Options{Path: path}); err != nil {
				t.Fatalf("Execute() error: %v", err)
			}

			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("log output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(out, s) {
					t.Errorf("log output should not contain %q at %s level", s, tt.level)
				}
			}
		})
	}
}

func TestReplayLogged(t *testing.T) {
	path := writeFile(t, "budget.json", budgetJSON)
	var buf bytes.Buffer
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, newLogger(&buf, log.InfoLevel))

	_, err := runner.Execute(context.Background(), pipeline.Options{
		Path:    path,
		Isolate: []string{"Eng"},
		Select:  []string{"Misc"},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "replayed state") || !strings.Contains(out, "isolated=1") {
		t.Errorf("log output should report the replayed isolation:\n%s", out)
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Rendered budget.json")

	out := buf.String()
	if !strings.Contains(out, "Rendered budget.json (") || !strings.Contains(out, "s)") {
		t.Errorf("progress output = %q, want the message and a duration", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), logger)); got != logger {
		t.Error("loggerFromContext should return the stored logger")
	}
	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("loggerFromContext should fall back to a default logger")
	}
}
