// Package file serves puzzle definitions from a directory of YAML files.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

var extensions = []string{".yaml", ".yml"}

// Loader implements ports.PuzzleLoader over a directory. The puzzle name is the file
// name without its extension.
type Loader struct {
	fsys fs.FS
}

// New creates a Loader over fsys.
func New(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// NewDir creates a Loader over a directory on disk.
func NewDir(dir string) *Loader {
	return New(os.DirFS(dir))
}

// GetPuzzle reads name.yaml (or name.yml).
func (l *Loader) GetPuzzle(name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid puzzle name %q", name)
	}
	for _, ext := range extensions {
		data, err := fs.ReadFile(l.fsys, name+ext)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read puzzle %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("puzzle not found: %s", name)
}

// ListPuzzles returns the names of all YAML files at the top of the directory.
func (l *Loader) ListPuzzles() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list puzzles: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := path.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
