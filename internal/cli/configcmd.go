package cli

import (
	"github.com/spf13/cobra"
)

// configCommand creates the config command, which prints the effective
// configuration as TOML.
func (c *CLI) configCommand() *cobra.Command {
	var chart chartFlags

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Config prints the configuration that render, view and inspect would use:
the defaults, overlaid with --config, overlaid with any flags given.
Redirect the output to start a configuration file.`,
		Example: `  treemap config > treemap.toml
  treemap config --config treemap.toml --tiling slicedice`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := chart.resolve(cmd)
			if err != nil {
				return err
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}

	chart.bind(cmd)
	return cmd
}
