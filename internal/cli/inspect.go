package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/core/layout"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// inspectCommand creates the inspect command, which prints the hierarchy
// and its layout as a table.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		chart    chartFlags
		name     string
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the hierarchy, its layout and layout quality",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := chart.resolve(cmd)
			if err != nil {
				return err
			}
			opts := pipeline.Options{Path: args[0], Name: name, Config: &cfg}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			ds, err := pipeline.Load(opts)
			if err != nil {
				return err
			}
			tree, err := pipeline.Build(ds)
			if err != nil {
				return err
			}
			if err := pipeline.Layout(tree, opts); err != nil {
				return err
			}
			writeInspect(cmd.OutOrStdout(), tree, maxDepth)
			return nil
		},
	}

	chart.bind(cmd)
	cmd.Flags().StringVar(&name, "name", "", "label for the root when the file holds several trees")
	cmd.Flags().IntVar(&maxDepth, "depth", -1, "deepest level to list (-1 for all)")

	return cmd
}

// writeInspect prints one table row per node and a quality summary.
func writeInspect(w io.Writer, t *hierarchy.Tree, maxDepth int) {
	var rows [][]string
	t.Walk(func(n *hierarchy.Node) bool {
		if maxDepth >= 0 && n.Depth > maxDepth {
			return true
		}
		name := strings.Repeat("  ", n.Depth) + n.Name
		if n.Synthetic {
			name += " (synthetic)"
		}
		rows = append(rows, []string{
			fmt.Sprint(n.ID),
			name,
			n.Kind.String(),
			formatFloat(n.Value),
			fmt.Sprintf("%s × %s", formatFloat(n.Rect.Width()), formatFloat(n.Rect.Height())),
			fmt.Sprintf("(%s, %s)", formatFloat(n.Rect.X0), formatFloat(n.Rect.Y0)),
		})
		return true
	})

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Node", "Kind", "Value", "Size", "Origin").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleDim
			case col == 3 || col == 4:
				return StyleNumber
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(w, tbl.Render())

	q := layout.Measure(t)
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleTitle.Render("Layout quality"))
	writeKeyValue(w, "Cells", fmt.Sprint(q.Cells))
	writeKeyValue(w, "Mean aspect", fmt.Sprintf("%.2f", q.MeanAspect))
	writeKeyValue(w, "Max aspect", fmt.Sprintf("%.2f", q.MaxAspect))
	writeKeyValue(w, "Std dev", fmt.Sprintf("%.2f", q.StdDevAspect))
	writeKeyValue(w, "Coverage", fmt.Sprintf("%.1f%%", q.Coverage*100))
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
