package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/outlet/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "outlet",
	Short: "Outlet places tool output in workspace docks and the center area",
	Long: `Outlet drives the placement state machine of outlets: named output surfaces
that open in a dock, cycle between allowed locations and remember their place.

It replays scenario files, serves sessions over HTTP and exposes them to
agents through the Model Context Protocol.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./outlet.yaml or ~/.config/outlet/outlet.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides the config)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
}

// loadConfig reads the config file named by --config and applies the logging
// flags on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if asJSON, _ := cmd.Flags().GetBool("log-json"); asJSON {
		cfg.Log.Format = "json"
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)
	return cfg, logger, nil
}
