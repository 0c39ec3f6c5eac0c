package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/strata"
)

// Run plays p in the terminal until the user quits or ctx is cancelled.
func Run(ctx context.Context, p *strata.Puzzle, in io.Reader, out io.Writer, opts ...Option) error {
	opts = append([]Option{WithContext(ctx), WithRenderer(NewRenderer(72))}, opts...)
	program := tea.NewProgram(New(p, opts...),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
