package strata

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/view"
)

// Runner drives a Puzzle from line-based text commands.
// It is the headless host used when no terminal is attached and in scripted tests.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms help text before it is written.
// This allows markdown rendering without coupling the core package to a terminal library.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

// RunnerHelp lists the text commands understood by Runner.
const RunnerHelp = `# Commands

- **drop** *piece* *slot*: move a piece into a slot (slots count from 0 at the bottom)
- **select** *piece*: select a piece, then **place** *slot* to drop it
- **undo**, **redo**: step through the history
- **reset**: return every piece to the pool
- **check**: evaluate the arrangement
- **show**: print the board
- **quit**: leave
`

// Run reads commands until EOF or quit.
func (r *Runner) Run(ctx context.Context, p *Puzzle) error {
	if r.Input == nil {
		return errors.New("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return errors.New("output writer must be set (use os.Stdout)")
	}
	lines := bufio.NewReader(r.Input)
	w := r.Output

	if !r.Headless {
		fmt.Fprintln(w, "--- Strata (text mode) ---")
		r.render(w, RunnerHelp)
		fmt.Fprint(w, Board(p.View()))
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Headless {
			fmt.Fprint(w, "> ")
		}
		text, err := lines.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("input error: %w", err)
		}
		eof := err != nil

		text, err = SanitizeCommand(text)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			text = ""
		}
		fields := strings.Fields(text)
		if len(fields) > 0 {
			if fields[0] == "quit" || fields[0] == "exit" {
				fmt.Fprintln(w, "Bye!")
				return nil
			}
			if cmdErr := r.exec(ctx, p, fields); cmdErr != nil {
				fmt.Fprintf(w, "Error: %v\n", cmdErr)
			}
		}
		if eof {
			return nil
		}
	}
}

func (r *Runner) exec(ctx context.Context, p *Puzzle, fields []string) error {
	w := r.Output
	arg := func(i int) (string, error) {
		if len(fields) <= i {
			return "", fmt.Errorf("%s: missing argument", fields[0])
		}
		return fields[i], nil
	}
	slotArg := func(i int) (int, error) {
		s, err := arg(i)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%s: slot must be a number: %w", fields[0], err)
		}
		return n, nil
	}

	switch fields[0] {
	case "drop":
		piece, err := arg(1)
		if err != nil {
			return err
		}
		slot, err := slotArg(2)
		if err != nil {
			return err
		}
		if _, err := p.Drop(ctx, domain.PieceID(piece), slot); err != nil {
			return err
		}
	case "select":
		piece, err := arg(1)
		if err != nil {
			return err
		}
		if err := p.SelectPiece(domain.PieceID(piece)); err != nil {
			return err
		}
	case "place":
		slot, err := slotArg(1)
		if err != nil {
			return err
		}
		if _, _, err := p.SelectSlot(ctx, slot); err != nil {
			return err
		}
	case "undo":
		p.Undo(ctx)
	case "redo":
		p.Redo(ctx)
	case "reset":
		p.Reset(ctx)
	case "check":
		p.Check(ctx)
	case "show":
		fmt.Fprint(w, Board(p.View()))
		return nil
	case "help":
		r.render(w, RunnerHelp)
		return nil
	default:
		return fmt.Errorf("unknown command %q (try help)", fields[0])
	}

	if status := p.Status(); status != "" {
		fmt.Fprintln(w, status)
	}
	return nil
}

func (r *Runner) render(w io.Writer, md string) {
	out := md
	if r.Renderer != nil {
		if rendered, err := r.Renderer(md); err == nil {
			out = rendered
		}
	}
	fmt.Fprintln(w, strings.TrimSpace(out))
}

// Board renders a view model as plain text, top slot first.
func Board(m view.Model) string {
	var b strings.Builder
	for i := len(m.Slots) - 1; i >= 0; i-- {
		s := m.Slots[i]
		content := "."
		if s.Piece != nil {
			content = fmt.Sprintf("%s (%s)", s.Piece.Label, s.Piece.ID)
		}
		fmt.Fprintf(&b, "%d %-14s | %s\n", s.Index, s.Name, content)
	}
	pool := make([]string, len(m.Pool))
	for i, pv := range m.Pool {
		pool[i] = string(pv.ID)
	}
	fmt.Fprintf(&b, "pool: %s\n", strings.Join(pool, " "))
	return b.String()
}
