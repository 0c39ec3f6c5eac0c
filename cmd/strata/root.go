package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/strata/internal/config"
	"github.com/aretw0/strata/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Strata is a drag-and-drop ordering puzzle",
	Long: `Strata asks the player to sort pieces into ordered slots, by mouse or keyboard,
in the terminal or through an HTTP/WebSocket API.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Puzzle config file (default: the embedded fossil puzzle)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (overrides the config)")
}

// loadConfig reads --config, or the embedded puzzle, and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		return nil, err
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format, _ = cmd.Flags().GetString("log-format")
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := logging.ParseLevel(cfg.Log.Level)
	if cfg.Log.Format == "json" {
		return logging.NewJSON(os.Stderr, level)
	}
	return logging.New(level)
}
