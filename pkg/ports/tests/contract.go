package tests

import (
	"testing"

	"github.com/aretw0/strata/internal/config"
	"github.com/aretw0/strata/pkg/ports"
)

// PuzzleLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.PuzzleLoader.
// setupData maps every puzzle name the loader was prepared with to its YAML.
func PuzzleLoaderContractTest(t *testing.T, loader ports.PuzzleLoader, setupData map[string][]byte) {
	t.Helper()

	t.Run("GetPuzzle_Success", func(t *testing.T) {
		for name, expected := range setupData {
			content, err := loader.GetPuzzle(name)
			if err != nil {
				t.Fatalf("unexpected error getting puzzle %s: %v", name, err)
			}
			if string(content) != string(expected) {
				t.Errorf("content mismatch for %s. got %q, want %q", name, content, expected)
			}
			if _, err := config.Parse(content); err != nil {
				t.Errorf("puzzle %s does not parse: %v", name, err)
			}
		}
	})

	t.Run("GetPuzzle_NotFound", func(t *testing.T) {
		if _, err := loader.GetPuzzle("non-existent-puzzle"); err == nil {
			t.Error("expected error for non-existent puzzle, got nil")
		}
	})

	t.Run("ListPuzzles", func(t *testing.T) {
		names, err := loader.ListPuzzles()
		if err != nil {
			t.Fatalf("unexpected error listing puzzles: %v", err)
		}
		if len(names) != len(setupData) {
			t.Errorf("expected %d puzzles, got %d", len(setupData), len(names))
		}
		for i := 1; i < len(names); i++ {
			if names[i-1] > names[i] {
				t.Errorf("names are not sorted: %v", names)
				break
			}
		}
		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}
		for name := range setupData {
			if !lookup[name] {
				t.Errorf("puzzle %s missing from list", name)
			}
		}
	})
}
