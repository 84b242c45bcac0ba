package ebitenbooth

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/photobooth"
)

const (
	thumbSize = 80 // longest side of a rendered thumbnail
	thumbGap  = 10
)

// thumb is one palette entry laid out on screen.
type thumb struct {
	entry photobooth.PaletteEntry
	rect  image.Rectangle
	img   *ebiten.Image
}

// layoutPalette places n square thumbnails in columns starting at (x0, y0),
// wrapping to a new column when the next one would pass maxY.
func layoutPalette(n, x0, y0, maxY int) []image.Rectangle {
	rects := make([]image.Rectangle, 0, n)
	x, y := x0, y0
	for i := 0; i < n; i++ {
		if y+thumbSize > maxY && y != y0 {
			x += thumbSize + thumbGap
			y = y0
		}
		rects = append(rects, image.Rect(x, y, x+thumbSize, y+thumbSize))
		y += thumbSize + thumbGap
	}
	return rects
}

// paletteColumns returns how many columns layoutPalette uses for n entries.
func paletteColumns(n, y0, maxY int) int {
	if n == 0 {
		return 0
	}
	rects := layoutPalette(n, 0, y0, maxY)
	return rects[len(rects)-1].Min.X/(thumbSize+thumbGap) + 1
}

// thumbAt returns the index of the thumbnail containing (x, y), or -1.
func thumbAt(thumbs []thumb, x, y int) int {
	p := image.Pt(x, y)
	for i := range thumbs {
		if p.In(thumbs[i].rect) {
			return i
		}
	}
	return -1
}

// dropSize returns the width a sticker of bounds b is drawn at in the
// palette, which is also the size it is dropped at.
func dropSize(b image.Rectangle) float64 {
	return float64(b.Dx()) * fitScale(b.Dx(), b.Dy())
}

// fitScale returns the uniform scale that fits a w x h image in a square of
// side thumbSize.
func fitScale(w, h int) float64 {
	side := max(w, h)
	if side == 0 {
		return 1
	}
	return float64(thumbSize) / float64(side)
}
