package photobooth

import "time"

// RenderStats reports what a render pass drew and what it had to skip.
type RenderStats struct {
	Photos   int // photos drawn
	Stickers int // stickers drawn
	Pending  int // assets skipped because they have not decoded yet
	Frame    bool
	Elapsed  time.Duration
}

// Complete reports whether nothing was skipped.
func (st RenderStats) Complete() bool {
	return st.Pending == 0
}

// Render clears dst and paints the scene onto it. Undecoded assets are
// omitted; the caller re-renders when the loader reports them ready.
func Render(scene *Scene, dst Surface) RenderStats {
	t0 := time.Now()
	dst.Clear()
	stats := composite(scene, dst)
	stats.Elapsed = time.Since(t0)
	return stats
}

// composite draws photos, then the frame, then stickers in z-order. The
// exporter uses the same pass so both paths share one layer order.
func composite(scene *Scene, dst Surface) RenderStats {
	var stats RenderStats
	for i := range scene.Photos {
		p := &scene.Photos[i]
		img := p.Image.Image()
		if img == nil {
			stats.Pending++
			continue
		}
		dst.DrawImage(img, p.Rect().ImageRect())
		stats.Photos++
	}

	if scene.Frame.Enabled {
		w, h := dst.Size()
		strokeRect(dst, scene.Frame.StrokeRect(w, h), scene.Frame.Width, scene.Frame.Color)
		stats.Frame = true
	}

	for _, st := range scene.Stickers {
		img := st.Image.Image()
		if img == nil {
			stats.Pending++
			continue
		}
		dst.DrawImage(img, st.Bounds().ImageRect())
		stats.Stickers++
	}
	return stats
}
