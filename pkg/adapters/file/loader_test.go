package file_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/aretw0/strata/pkg/adapters/file"
	contract "github.com/aretw0/strata/pkg/ports/tests"
)

const pair = "pieces: [{id: a}, {id: b}]\nsolution: [a, b]\n"

func TestFileLoader_Contract(t *testing.T) {
	fsys := fstest.MapFS{
		"pair.yaml":     {Data: []byte(pair)},
		"short.yml":     {Data: []byte("pieces: [{id: a}]\nsolution: [a]\n")},
		"README.md":     {Data: []byte("# not a puzzle")},
		"nested/x.yaml": {Data: []byte(pair)},
	}

	contract.PuzzleLoaderContractTest(t, file.New(fsys), map[string][]byte{
		"pair":  []byte(pair),
		"short": []byte("pieces: [{id: a}]\nsolution: [a]\n"),
	})
}

func TestFileLoader_RejectsPaths(t *testing.T) {
	l := file.New(fstest.MapFS{"nested/x.yaml": {Data: []byte(pair)}})
	if _, err := l.GetPuzzle("nested/x"); err == nil {
		t.Error("expected error for a nested name")
	}
	if _, err := l.GetPuzzle(""); err == nil {
		t.Error("expected error for an empty name")
	}
}

func TestFileLoader_Dir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "disk.yaml"), []byte(pair), 0644); err != nil {
		t.Fatal(err)
	}

	names, err := file.NewDir(dir).ListPuzzles()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "disk" {
		t.Errorf("expected [disk], got %v", names)
	}
}
