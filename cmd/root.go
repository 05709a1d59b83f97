package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prohmpiriya/charity-events/pkg/config"
	"github.com/prohmpiriya/charity-events/pkg/logger"
)

var (
	envFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "charity-events",
	Short: "Charity events catalog API and client",
	Long: `Serves the read-only charity events catalog over a JSON API and
provides commands that list, search and show events through that API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to an env file (defaults to ./.env when present)")
}

func loadConfig(cmd *cobra.Command) error {
	var err error
	if envFile != "" {
		cfg, err = config.LoadWithPath(envFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&logger.Config{
		Level:       cfg.Log.Level,
		ServiceName: cfg.App.Name,
		Development: cfg.Log.Development,
		OutputPath:  logOutput(cmd, cfg.Log.OutputPath),
	}); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	return nil
}

// logOutput returns where cmd writes its logs. Only serve logs to stdout; the client
// commands render to stdout, so their logs go to stderr unless a file is configured.
func logOutput(cmd *cobra.Command, configured string) string {
	if cmd.Name() == "serve" {
		return configured
	}
	if configured == "" || configured == "stdout" {
		return "stderr"
	}
	return configured
}
