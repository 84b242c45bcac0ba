package photobooth

import (
	"errors"
	"image"
	"image/color"
	"math"
)

// Fixed layout and decoration constants. None of these are user-configurable.
const (
	CellWidth         = 320 // width of one photo slot in canvas pixels
	CellHeight        = 240 // height of one photo slot in canvas pixels
	BorderWidth       = 20  // frame stroke width in canvas pixels
	CountdownSeconds  = 5   // countdown length per slot
	StickerDropOffset = 30  // vertical offset applied to a dropped sticker
	ExportFileName    = "photobooth.png"
)

// BorderColor is the solid color of the optional frame.
var BorderColor = color.RGBA{R: 0xB5, G: 0xB8, B: 0x8C, A: 0xFF}

var (
	// ErrInvalidPhotoCount is returned when a session is started with a photo
	// count other than 2 or 4.
	ErrInvalidPhotoCount = errors.New("photobooth: photo count must be 2 or 4")

	// ErrNoPendingSticker is returned by a drop that has no drag in progress.
	ErrNoPendingSticker = errors.New("photobooth: no sticker is being dragged")

	// ErrDeviceUnavailable wraps frame source failures. The session cannot
	// capture until a new session is started.
	ErrDeviceUnavailable = errors.New("photobooth: camera unavailable")

	// ErrAssetNotReady is returned when an asset's pixels are requested before
	// decoding has finished.
	ErrAssetNotReady = errors.New("photobooth: asset not ready")
)

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in canvas pixels. The origin is at the
// top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Inset returns r shrunk by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// ImageRect rounds r to integer pixel bounds.
func (r Rect) ImageRect() image.Rectangle {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	return image.Rect(x0, y0, x0+int(math.Round(r.Width)), y0+int(math.Round(r.Height)))
}
