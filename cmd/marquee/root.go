package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

// Execute runs the CLI with the given arguments
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, a.teardown())
}

// createRootCommand creates the root cobra command with all subcommands.
// Without a subcommand it opens the browser on a terminal and prints the
// first page otherwise.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "marquee",
		Short:   "Browse a cached catalog of popular movies",
		Version: a.version,
		Long: `Marquee loads the popular-titles catalog from a cache service,
lets you search, filter and sort it page by page, and keeps a list of
favorites that survives restarts.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isTerminal(a.stdout) {
				return a.runBrowse(cmd.Context())
			}
			return a.runList(cmd.Context(), listOptions{})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is ~/.config/marquee/config.yaml)")
	rootCmd.SetVersionTemplate("marquee {{.Version}}\n")

	rootCmd.AddCommand(
		a.newBrowseCommand(),
		a.newListCommand(),
		a.newFavoritesCommand(),
		a.newGenresCommand(),
		a.newShowCommand(),
	)

	return rootCmd
}
