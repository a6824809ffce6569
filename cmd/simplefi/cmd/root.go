// Package cmd provides the simplefi command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/simplefi_backend/internal/platform/config"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd represents the base command. Without a subcommand it runs the server.
var rootCmd = &cobra.Command{
	Use:   "simplefi",
	Short: "Double-entry bookkeeping API server",
	Long: `simplefi serves the ledger HTTP API and manages its database.

Configuration comes from the environment, optionally seeded from a .env file.

Example:
  simplefi serve
  simplefi migrate up
  simplefi token alice --ttl 1h`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
			return err
		}

		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
		slog.SetDefault(logger)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
}
