package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/strata/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check puzzle config files",
	Long:  `Loads each file (or --config, or the embedded puzzle), builds its registry and reports problems.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			report(cmd, cfg.Name, cfg)
			return nil
		}

		failed := 0
		for _, path := range args {
			cfg, err := config.Load(path)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
				continue
			}
			report(cmd, path, cfg)
		}
		if failed > 0 {
			return fmt.Errorf("validation failed: %d of %d files invalid", failed, len(args))
		}
		return nil
	},
}

func report(cmd *cobra.Command, name string, cfg *config.Config) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d pieces, %d slots) ✅\n", name, len(cfg.Pieces), len(cfg.Solution))
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
