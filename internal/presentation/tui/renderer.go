package tui

import (
	"github.com/charmbracelet/glamour"

	"github.com/aretw0/strata"
)

// NewRenderer returns a markdown renderer for help text, wrapped at width columns
// (0 keeps glamour's default). The style follows the terminal background.
func NewRenderer(width int) strata.ContentRenderer {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, err }
	}
	return r.Render
}
