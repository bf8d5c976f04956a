package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	chart    chartFlags
	output   string   // output file path (or base path for multiple outputs)
	formats  []string // output formats: svg, json, dot, png, pdf
	isolate  []string // node references to isolate before rendering
	sel      []string // leaf references to select before rendering
	name     string   // label for the synthetic root of a forest
	scale    float64  // PNG scale factor
	detailed bool     // value and depth in DOT labels
	cacheURL string   // cache backend spec (redis://..., file://...)
	noCache  bool     // disable caching entirely
	refresh  bool     // ignore cached artifacts
}

// renderCommand creates the render command for generating treemap images.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a hierarchy to SVG, JSON, DOT, PNG or PDF",
		Long: `Render lays out a JSON or YAML hierarchy and writes the requested formats.

Interaction state can be baked into the output with --isolate and --select.
Nodes are referenced by their full path ("Budget/Engineering/Infra") or by
a name that is unique in the tree.`,
		Example: `  treemap render budget.yaml
  treemap render budget.yaml -f svg,png -o out/budget
  treemap render budget.json --isolate Engineering --select Engineering/Infra`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	opts.chart.bind(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, png, pdf (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.isolate, "isolate", nil, "group(s) to isolate, by path or unique name")
	cmd.Flags().StringSliceVar(&opts.sel, "select", nil, "leaf or leaves to select, by path or unique name")
	cmd.Flags().StringVar(&opts.name, "name", "", "label for the root when the file holds several trees")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show value and depth in DOT labels")
	cmd.Flags().StringVar(&opts.cacheURL, "cache", "", "cache backend (file:///dir, redis://host:6379/0, none)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// runRender executes the pipeline and writes every artifact.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := opts.chart.resolve(cmd)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cacheURL, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, os.Stderr, "Loading "+filepath.Base(input))
	restore := trackStages(spinner)
	spinner.Start()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Path:     input,
		Name:     opts.name,
		Config:   &cfg,
		Isolate:  opts.isolate,
		Select:   opts.sel,
		Formats:  opts.formats,
		Scale:    opts.scale,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
		Logger:   logger,
	})
	spinner.Stop()
	restore()
	if err != nil {
		return err
	}
	prog.done("Rendered " + input)

	paths, err := writeArtifacts(ctx, result.Artifacts, opts.formats, opts.output, input)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	printStats(result.Stats.NodeCount, result.Stats.LeafCount, result.CacheInfo.RenderHit)
	if q := result.Stats.Quality; q.Cells > 0 {
		printKeyValue("Aspect", fmt.Sprintf("%.2f mean, %.2f max", q.MeanAspect, q.MaxAspect))
	}
	for _, p := range paths {
		printFile(p)
	}
	printNewline()
	printNextStep("Explore interactively", appName+" view "+input)
	return nil
}

// writeArtifacts writes each format to its output path and returns the
// paths written. A single format goes to output as given (or stdout for
// "-"); several formats share a base path.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	logger := loggerFromContext(ctx)

	var paths []string
	for _, format := range formats {
		path := outputPath(output, input, format, len(formats))
		out, err := openOutput(path)
		if err != nil {
			return nil, err
		}
		_, err = out.Write(artifacts[format])
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", format, err)
		}
		logger.Debugf("Wrote %s: %d bytes", format, len(artifacts[format]))
		if path != "-" {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// outputPath picks the file for one format.
func outputPath(output, input, format string, count int) string {
	if output == "-" {
		return output
	}
	if output != "" && count == 1 {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// openOutput opens path for writing; "-" means stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
