// Package assets measures piece images stored on a filesystem.
package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
)

// Measurer implements view.Measurer by decoding image headers from an fs.FS.
// Only the header is read, so measuring is cheap even for large images.
type Measurer struct {
	fsys fs.FS
}

// New creates a Measurer reading from fsys.
func New(fsys fs.FS) *Measurer {
	return &Measurer{fsys: fsys}
}

// Measure returns the pixel height of asset.
func (m *Measurer) Measure(ctx context.Context, asset string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	name := path.Clean(asset)
	if !fs.ValidPath(name) {
		return 0, fmt.Errorf("invalid asset path %q", asset)
	}

	f, err := m.fsys.Open(name)
	if err != nil {
		return 0, fmt.Errorf("failed to open asset: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return cfg.Height, nil
}
