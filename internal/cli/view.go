package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/pipeline"
)

// viewCommand creates the view command for exploring a chart in the terminal.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		chart   chartFlags
		isolate []string
		sel     []string
		name    string
	)

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Explore a hierarchy interactively in the terminal",
		Long: `View draws the treemap in the terminal and lets you interact with it:

  click a leaf         select or deselect it
  click a group title  isolate the group, click again to restore
  drag                 lasso-select every leaf the rectangle touches
  c                    clear the selection
  q                    quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := chart.resolve(cmd)
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				Path:    args[0],
				Name:    name,
				Config:  &cfg,
				Isolate: isolate,
				Select:  sel,
				Logger:  loggerFromContext(cmd.Context()),
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			ds, err := pipeline.Load(opts)
			if err != nil {
				return err
			}

			model := NewChartModel(cmd.Context(), ds, opts)
			p := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(ChartModel); ok {
				return m.Err()
			}
			return nil
		},
	}

	chart.bind(cmd)
	cmd.Flags().StringSliceVar(&isolate, "isolate", nil, "group(s) to isolate on start")
	cmd.Flags().StringSliceVar(&sel, "select", nil, "leaf or leaves to select on start")
	cmd.Flags().StringVar(&name, "name", "", "label for the root when the file holds several trees")

	return cmd
}
