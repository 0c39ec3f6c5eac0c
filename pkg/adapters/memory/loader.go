package memory

import (
	"fmt"
	"sort"

	"github.com/aretw0/strata/internal/config"
)

// Loader implements ports.PuzzleLoader using an in-memory map.
type Loader struct {
	puzzles map[string][]byte
}

// NewLoader creates a new Loader with the provided raw YAML definitions keyed by name.
func NewLoader(data map[string]string) *Loader {
	puzzles := make(map[string][]byte, len(data))
	for k, v := range data {
		puzzles[k] = []byte(v)
	}
	return &Loader{puzzles: puzzles}
}

// NewDefaultLoader creates a Loader holding only the embedded fossil puzzle.
func NewDefaultLoader() *Loader {
	return &Loader{puzzles: map[string][]byte{config.DefaultName: config.DefaultYAML()}}
}

// GetPuzzle retrieves the raw definition of a puzzle by name.
func (l *Loader) GetPuzzle(name string) ([]byte, error) {
	content, ok := l.puzzles[name]
	if !ok {
		return nil, fmt.Errorf("puzzle not found: %s", name)
	}
	return content, nil
}

// ListPuzzles returns all available puzzle names.
func (l *Loader) ListPuzzles() ([]string, error) {
	keys := make([]string, 0, len(l.puzzles))
	for k := range l.puzzles {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
