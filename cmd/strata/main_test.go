package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "strata version "+strings.TrimSpace(strata.Version)+"\n", out)
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(good, []byte("pieces: [{id: a}, {id: b}]\nsolution: [a, b]\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("pieces: [{id: a}]\nsolution: [a, ghost]\n"), 0o644))

	out, _, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "good.yaml: valid (2 pieces, 2 slots)")

	out, errOut, err := execute(t, "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files invalid")
	assert.Contains(t, out, "good.yaml: valid")
	assert.Contains(t, errOut, "bad.yaml")
}

func TestValidateCommand_Default(t *testing.T) {
	out, _, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "fossils: valid (7 pieces, 7 slots)")
}
