package photobooth

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Surface is a drawing target the renderer paints onto.
type Surface interface {
	Size() (w, h int)
	Clear()
	DrawImage(src image.Image, dst image.Rectangle)
	FillRect(r image.Rectangle, c color.Color)
	Image() image.Image
}

// RasterSurface is a CPU-side RGBA surface. The live canvas and the export
// composition are both RasterSurfaces; front-ends upload its pixels.
type RasterSurface struct {
	img *image.RGBA
}

// NewRasterSurface creates a transparent surface of w x h pixels.
func NewRasterSurface(w, h int) *RasterSurface {
	return &RasterSurface{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Size returns the surface dimensions.
func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the pixel buffer. Contents are discarded.
func (s *RasterSurface) Resize(w, h int) {
	if cw, ch := s.Size(); cw == w && ch == h {
		s.Clear()
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Clear resets every pixel to transparent.
func (s *RasterSurface) Clear() {
	clear(s.img.Pix)
}

// DrawImage composites src over the surface, scaled to fill dst.
func (s *RasterSurface) DrawImage(src image.Image, dst image.Rectangle) {
	if src == nil || dst.Empty() {
		return
	}
	sb := src.Bounds()
	if sb.Dx() == dst.Dx() && sb.Dy() == dst.Dy() {
		draw.Draw(s.img, dst, src, sb.Min, draw.Over)
		return
	}
	xdraw.ApproxBiLinear.Scale(s.img, dst, src, sb, xdraw.Over, nil)
}

// FillRect paints r with c, replacing what was there.
func (s *RasterSurface) FillRect(r image.Rectangle, c color.Color) {
	draw.Draw(s.img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// Image returns the surface's backing image. It is premultiplied RGBA and
// aliases the surface; callers must not retain it across draws.
func (s *RasterSurface) Image() image.Image {
	return s.img
}

// RGBA returns the backing buffer for pixel upload.
func (s *RasterSurface) RGBA() *image.RGBA {
	return s.img
}

// strokeRect strokes r with a line of the given width centered on its edges.
func strokeRect(dst Surface, r Rect, width float64, c color.Color) {
	if width <= 0 {
		return
	}
	outer := r.Inset(-width / 2).ImageRect()
	inner := r.Inset(width / 2).ImageRect()
	dst.FillRect(image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y), c)
	dst.FillRect(image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y), c)
	dst.FillRect(image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y), c)
	dst.FillRect(image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y), c)
}
