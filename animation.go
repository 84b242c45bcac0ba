package photobooth

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultFlashDuration is the fade time of the capture flash in seconds.
const DefaultFlashDuration = 0.35

// Flash is the white overlay shown over the live view after a capture. It
// fades from opaque to transparent. Front-ends call Update(dt) each frame
// and draw a white layer at Alpha. It never touches the scene, so renders
// and exports are unaffected.
type Flash struct {
	tween *gween.Tween
	alpha float64
	Done  bool
}

// NewFlash creates a finished flash. Call Trigger to start it.
func NewFlash() *Flash {
	return &Flash{Done: true}
}

// Trigger restarts the fade over duration seconds.
func (f *Flash) Trigger(duration float32) {
	f.tween = gween.New(1, 0, duration, ease.OutQuad)
	f.alpha = 1
	f.Done = false
}

// Update advances the fade by dt seconds.
func (f *Flash) Update(dt float32) {
	if f.Done || f.tween == nil {
		return
	}
	val, finished := f.tween.Update(dt)
	f.alpha = float64(val)
	if finished {
		f.alpha = 0
		f.Done = true
	}
}

// Alpha returns the overlay opacity in [0, 1].
func (f *Flash) Alpha() float64 {
	return f.alpha
}
