package photobooth

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// PaletteEntry is one sticker thumbnail offered for dragging.
type PaletteEntry struct {
	Name  string // name passed to BeginDrag, relative to the sticker filesystem
	Image image.Image
}

// paletteExts lists the file extensions treated as stickers.
var paletteExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true}

// LoadPalette decodes every sticker image at the top level of fsys
// concurrently and returns them sorted by name.
func LoadPalette(ctx context.Context, fsys fs.FS) ([]PaletteEntry, error) {
	dirents, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read sticker dir: %w", err)
	}
	var names []string
	for _, d := range dirents {
		if d.IsDir() || !paletteExts[strings.ToLower(path.Ext(d.Name()))] {
			continue
		}
		names = append(names, d.Name())
	}
	sort.Strings(names)

	entries := make([]PaletteEntry, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("read sticker %s: %w", name, err)
			}
			img, _, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("decode sticker %s: %w", name, err)
			}
			entries[i] = PaletteEntry{Name: name, Image: img}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
