package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/cache"
	"github.com/matzehuels/treemap/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
		Long: `Manage the cache that render and serve keep rendered artifacts in.

Without --cache the commands act on the user cache directory
($XDG_CACHE_HOME/treemap or ~/.cache/treemap).`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var spec string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := newCache(ctx, spec, false)
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return errors.New(errors.ErrCodeUnsupported, "cache %q cannot be cleared", spec)
			}
			n, err := clearer.Clear(ctx)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "clear cache")
			}

			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached artifacts", n)
			if fc, ok := store.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&spec, "cache", "", "cache backend (file:///dir, redis://host:6379/0)")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	var spec string
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the directory artifacts are cached in",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDirFor(spec)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&spec, "cache", "", "cache backend (file:///dir)")
	return cmd
}

// cacheDirFor returns the directory a cache spec stores files in. An empty
// spec means the user cache directory.
func cacheDirFor(spec string) (string, error) {
	if spec == "" {
		return cacheDir()
	}
	dir, ok := cache.DirOf(spec)
	if !ok {
		return "", errors.New(errors.ErrCodeUnsupported, "cache %q has no local directory", spec)
	}
	return dir, nil
}
