package photobooth

import (
	"fmt"
	"image/color"
)

// PhotoSlot is one captured still placed at its grid cell. Slots are never
// mutated after capture.
type PhotoSlot struct {
	Index  int
	Col    int
	Row    int
	X, Y   int
	Width  int
	Height int
	Image  *Asset
	PNG    []byte // encoded snapshot the asset was decoded from
}

// Rect returns the slot's pixel placement.
func (p PhotoSlot) Rect() Rect {
	return Rect{X: float64(p.X), Y: float64(p.Y), Width: float64(p.Width), Height: float64(p.Height)}
}

// Sticker is a user-placed square decoration. Its z-order is its position in
// Scene.Stickers; later entries draw on top.
type Sticker struct {
	Image *Asset
	X, Y  float64
	Size  float64
}

// Bounds returns the sticker's square footprint.
func (s *Sticker) Bounds() Rect {
	return Rect{X: s.X, Y: s.Y, Width: s.Size, Height: s.Size}
}

// Contains reports whether (x, y) lies inside the sticker's square, edges
// included.
func (s *Sticker) Contains(x, y float64) bool {
	return s.Bounds().Contains(x, y)
}

// FrameState is the optional solid border around the whole canvas.
type FrameState struct {
	Enabled bool
	Width   float64
	Color   color.Color
}

// StrokeRect returns the rectangle the border is stroked along for a canvas
// of w x h. The stroke is centered on this rectangle and inset by half its
// width so it sits entirely inside the canvas.
func (f FrameState) StrokeRect(w, h int) Rect {
	return Rect{Width: float64(w), Height: float64(h)}.Inset(f.Width / 2)
}

func defaultFrame() FrameState {
	return FrameState{Width: BorderWidth, Color: BorderColor}
}

// Scene is the layered composition: photos, then the frame, then stickers.
// It is owned by a single loop and is not safe for concurrent use.
type Scene struct {
	Session  Session
	Photos   []PhotoSlot
	Frame    FrameState
	Stickers []*Sticker

	generation uint64
}

// NewScene creates an empty scene with no session.
func NewScene() *Scene {
	return &Scene{Frame: defaultFrame()}
}

// Reset installs sess and clears photos, stickers and the frame. Work queued
// against the previous session can detect the reset through Generation.
func (s *Scene) Reset(sess Session) {
	s.Session = sess
	s.Photos = nil
	s.Stickers = nil
	s.Frame = defaultFrame()
	s.generation++
}

// Generation increments on each Reset.
func (s *Scene) Generation() uint64 {
	return s.generation
}

// Width returns the canvas width for the current session.
func (s *Scene) Width() int { return s.Session.Width() }

// Height returns the canvas height for the current session.
func (s *Scene) Height() int { return s.Session.Height() }

// AddPhoto appends slot. Slots must arrive in index order.
func (s *Scene) AddPhoto(slot PhotoSlot) error {
	if slot.Index != len(s.Photos) {
		return fmt.Errorf("add photo %d: next slot is %d", slot.Index, len(s.Photos))
	}
	if slot.Index >= s.Session.PhotoCount {
		return fmt.Errorf("add photo %d: session holds %d photos", slot.Index, s.Session.PhotoCount)
	}
	s.Photos = append(s.Photos, slot)
	return nil
}

// AddSticker places st on top of every existing sticker.
func (s *Scene) AddSticker(st *Sticker) {
	s.Stickers = append(s.Stickers, st)
}

// StickerAt returns the index of the topmost sticker containing (x, y), or
// -1 if none does.
func (s *Scene) StickerAt(x, y float64) int {
	for i := len(s.Stickers) - 1; i >= 0; i-- {
		if s.Stickers[i].Contains(x, y) {
			return i
		}
	}
	return -1
}

// BringToFront moves the sticker at index i to the top of the z-order and
// returns it.
func (s *Scene) BringToFront(i int) *Sticker {
	st := s.Stickers[i]
	copy(s.Stickers[i:], s.Stickers[i+1:])
	s.Stickers[len(s.Stickers)-1] = st
	return st
}

// AllReady reports whether every photo and sticker asset has decoded.
func (s *Scene) AllReady() bool {
	for i := range s.Photos {
		if !s.Photos[i].Image.Ready() {
			return false
		}
	}
	for _, st := range s.Stickers {
		if !st.Image.Ready() {
			return false
		}
	}
	return true
}
