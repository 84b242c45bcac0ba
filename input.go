package photobooth

import (
	"fmt"
	"log/slog"
)

// PointerKind identifies a pointer event delivered to the controller.
type PointerKind uint8

const (
	PointerDown  PointerKind = iota // button pressed over the canvas
	PointerMove                     // pointer moved, button held or not
	PointerUp                       // button released
	PointerLeave                    // pointer left the canvas bounds
	PointerDrop                     // a palette drag was released over the canvas
)

// PointerEvent is a pointer event in screen coordinates. Src and Size are
// only used by PointerDrop.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
	Src  string
	Size float64
}

type pendingDrop struct {
	asset      *Asset
	x, y, size float64
	generation uint64
}

// Controller turns pointer input into scene mutations. All coordinates it
// receives through Pick, Drag and DropSticker are canvas-local.
type Controller struct {
	scene  *Scene
	loader *AssetLoader
	log    *slog.Logger

	// Origin is the canvas's on-screen top-left, subtracted by ToCanvas.
	Origin Vec2

	dragSrc    string
	dragSize   float64
	dragActive bool

	selected         *Sticker
	offsetX, offsetY float64
	down             bool

	drops    []pendingDrop
	onChange func()
}

// NewController creates a controller for scene that loads stickers through
// loader.
func NewController(scene *Scene, loader *AssetLoader, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{scene: scene, loader: loader, log: log}
}

// OnChange registers fn to be called after every scene mutation.
func (c *Controller) OnChange(fn func()) {
	c.onChange = fn
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

// Reset drops the selection, the palette drag and any drops still loading.
func (c *Controller) Reset() {
	c.selected = nil
	c.down = false
	c.dragActive = false
	c.dragSrc = ""
	c.dragSize = 0
	c.drops = c.drops[:0]
}

// ToCanvas converts screen coordinates to canvas-local coordinates.
func (c *Controller) ToCanvas(x, y float64) (float64, float64) {
	return x - c.Origin.X, y - c.Origin.Y
}

// BeginDrag records the sticker a palette drag started on and the width the
// palette rendered it at.
func (c *Controller) BeginDrag(src string, size float64) {
	c.dragSrc = src
	c.dragSize = size
	c.dragActive = true
}

// Dragging reports whether a palette drag is in progress.
func (c *Controller) Dragging() bool {
	return c.dragActive
}

// CancelDrag abandons a palette drag released outside the canvas.
func (c *Controller) CancelDrag() {
	c.dragActive = false
}

// DropSticker starts loading the dragged sticker. Once it decodes, it is
// placed centered horizontally on (x, y) and StickerDropOffset above it.
func (c *Controller) DropSticker(x, y float64) error {
	if !c.dragActive {
		return ErrNoPendingSticker
	}
	c.dragActive = false
	c.drops = append(c.drops, pendingDrop{
		asset:      c.loader.Open(c.dragSrc),
		x:          x,
		y:          y,
		size:       c.dragSize,
		generation: c.scene.Generation(),
	})
	return nil
}

// PendingDrops returns the number of dropped stickers still loading.
func (c *Controller) PendingDrops() int {
	return len(c.drops)
}

// settle places every drop whose asset has finished loading. Drops from a
// previous session and drops that failed to decode are discarded.
func (c *Controller) settle() {
	if len(c.drops) == 0 {
		return
	}
	placed := false
	kept := c.drops[:0]
	for _, d := range c.drops {
		switch {
		case d.generation != c.scene.Generation():
		case d.asset.Err() != nil:
			c.log.Warn("sticker dropped without image", "sticker", d.asset.Name, "err", d.asset.Err())
		case d.asset.Ready():
			c.scene.AddSticker(&Sticker{
				Image: d.asset,
				X:     d.x - d.size/2,
				Y:     d.y - StickerDropOffset,
				Size:  d.size,
			})
			placed = true
		default:
			kept = append(kept, d)
		}
	}
	c.drops = kept
	if placed {
		c.changed()
	}
}

// Pick selects the topmost sticker under (x, y), records the grab offset
// and brings it to the front. A miss clears the selection.
func (c *Controller) Pick(x, y float64) *Sticker {
	i := c.scene.StickerAt(x, y)
	if i < 0 {
		c.selected = nil
		return nil
	}
	st := c.scene.BringToFront(i)
	c.selected = st
	c.offsetX = x - st.X
	c.offsetY = y - st.Y
	c.changed()
	return st
}

// Drag moves the selected sticker so the grab point follows (x, y).
func (c *Controller) Drag(x, y float64) {
	if c.selected == nil {
		return
	}
	c.selected.X = x - c.offsetX
	c.selected.Y = y - c.offsetY
	c.changed()
}

// Release clears the selection.
func (c *Controller) Release() {
	c.selected = nil
}

// Selected returns the sticker being dragged, or nil.
func (c *Controller) Selected() *Sticker {
	return c.selected
}

// ToggleFrame flips the border on or off.
func (c *Controller) ToggleFrame() bool {
	c.scene.Frame.Enabled = !c.scene.Frame.Enabled
	c.changed()
	return c.scene.Frame.Enabled
}

// HandlePointer runs the pointer state machine for one event in screen
// coordinates.
func (c *Controller) HandlePointer(evt PointerEvent) error {
	x, y := c.ToCanvas(evt.X, evt.Y)
	switch evt.Kind {
	case PointerDown:
		c.down = true
		c.Pick(x, y)
	case PointerMove:
		if c.down {
			c.Drag(x, y)
		}
	case PointerUp:
		c.down = false
		c.Release()
	case PointerLeave:
		c.down = false
		c.Release()
	case PointerDrop:
		if evt.Src != "" {
			c.BeginDrag(evt.Src, evt.Size)
		}
		return c.DropSticker(x, y)
	default:
		return fmt.Errorf("pointer event: unknown kind %d", evt.Kind)
	}
	return nil
}
