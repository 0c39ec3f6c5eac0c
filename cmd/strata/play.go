package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/internal/presentation/tui"
	"github.com/aretw0/strata/pkg/observability"
)

const debugLogFile = "strata-debug.log"

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the puzzle in the terminal",
	Long: `Starts the puzzle in full-screen terminal mode with mouse and keyboard input.
When stdin is not a terminal (or with --headless) it reads text commands instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		headless, _ := cmd.Flags().GetBool("headless")
		if cmd.Flags().Changed("dwell") {
			cfg.Dwell, _ = cmd.Flags().GetDuration("dwell")
		}

		interactive := !headless && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

		logger, closeLog, err := playLogger(cmd, interactive)
		if err != nil {
			return err
		}
		defer closeLog()

		p, err := strata.New(
			strata.WithConfig(cfg),
			strata.WithLogger(logger),
			strata.WithLifecycleHooks(observability.LoggingHooks(logger)),
		)
		if err != nil {
			return err
		}

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		if interactive {
			return tui.Run(ctx, p, os.Stdin, os.Stdout, tui.WithLogger(logger))
		}

		runner := strata.NewRunner()
		runner.Input = os.Stdin
		runner.Output = os.Stdout
		runner.Headless = headless
		if !headless {
			tui.PrintBanner(os.Stdout)
			runner.Renderer = tui.NewRenderer(80)
		}
		return runner.Run(ctx, p)
	},
}

// playLogger keeps the full-screen terminal clean: there, logs only go to a file and
// only with --debug.
func playLogger(cmd *cobra.Command, interactive bool) (*slog.Logger, func(), error) {
	debug, _ := cmd.Flags().GetBool("debug")
	switch {
	case !interactive:
		level := slog.LevelWarn
		if debug {
			level = slog.LevelDebug
		}
		return logging.New(level), func() {}, nil
	case !debug:
		return logging.NewNop(), func() {}, nil
	}

	f, err := os.OpenFile(debugLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return logging.NewText(f, slog.LevelDebug), func() { _ = f.Close() }, nil
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Bool("headless", false, "Read text commands from stdin without banner or prompts")
	playCmd.Flags().Duration("dwell", 0, "Hover time before a dragged piece drops on its own (overrides the config)")

	// 'play' is the default command.
	rootCmd.RunE = playCmd.RunE
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}

// signalContext is used by long-running commands.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
