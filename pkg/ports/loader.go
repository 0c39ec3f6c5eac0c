package ports

// PuzzleLoader defines how hosts retrieve puzzle definitions.
// This allows the catalogue (embedded, memory, directory) to be decoupled.
type PuzzleLoader interface {
	// GetPuzzle retrieves the raw YAML definition of a puzzle by name.
	GetPuzzle(name string) ([]byte, error)

	// ListPuzzles returns the names of all available puzzles, sorted.
	ListPuzzles() ([]string, error)
}
