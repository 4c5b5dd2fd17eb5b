package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "cineslime",
		Short: "Telegram bot serving a private film and series archive",
		Long: `cineslime answers title queries from its archive of channel files,
falls back to the TMDB catalog, and lets users request what is missing.`,
		SilenceUsage: true,
	}
	rootCmd.Version = version

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(statsCommand())
	rootCmd.AddCommand(versionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot, the status server and the scheduled jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := InitializeApplication()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer cleanup()

			return app.Run(cmd.Context())
		},
	}
}

func statsCommand() *cobra.Command {
	var asJSON bool

	command := &cobra.Command{
		Use:   "stats",
		Short: "Print archive and user totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, cleanup, err := InitializeAdmin()
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer cleanup()

			summary, err := admin.Summary(cmd.Context())
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), summary, asJSON)
		},
	}
	command.Flags().BoolVar(&asJSON, "json", false, "print the totals as JSON")

	return command
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of cineslime",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
