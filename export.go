package photobooth

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// ExportResult is an encoded PNG of the composition. Complete is false when
// some photo or sticker had not decoded and the image may be missing it.
type ExportResult struct {
	PNG       []byte
	Complete  bool
	Offscreen bool // composited fresh rather than copied from the live surface
}

// Export encodes the scene. With the frame disabled the live surface is
// encoded as is. With the frame enabled and every asset ready the scene is
// recomposited offscreen so the border sits between photos and stickers;
// otherwise the live surface is encoded and the result is marked incomplete.
func Export(scene *Scene, live Surface) (ExportResult, error) {
	ready := scene.AllReady()
	src := live.Image()
	offscreen := false

	if scene.Frame.Enabled && ready {
		w, h := live.Size()
		out := NewRasterSurface(w, h)
		composite(scene, out)
		src = out.Image()
		offscreen = true
	}

	data, err := encodePNG(src)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{PNG: data, Complete: ready, Offscreen: offscreen}, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportPath returns the file an export is written to. An empty label gives
// ExportFileName; otherwise the sanitized label is prefixed.
func ExportPath(dir, label string) string {
	if strings.TrimSpace(label) == "" {
		return filepath.Join(dir, ExportFileName)
	}
	return filepath.Join(dir, sanitizeLabel(label)+"-"+ExportFileName)
}

// WriteExport writes res to ExportPath(dir, label), creating dir if needed,
// and returns the path written.
func WriteExport(dir, label string, res ExportResult) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := ExportPath(dir, label)
	if err := os.WriteFile(path, res.PNG, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
