package photobooth

import (
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Status texts shown once the countdown is over.
const (
	StatusDone        = "Done"
	StatusUnavailable = "Camera unavailable"
)

const tickInterval = time.Second

// Phase is the capture sequencer's state.
type Phase uint8

const (
	PhaseIdle      Phase = iota // no session running
	PhaseCounting               // counting down to the next capture
	PhaseCapturing              // taking the snapshot for the current slot
	PhaseDone                   // every slot captured
	PhaseFailed                 // the frame source failed; start a new session to retry
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCounting:
		return "counting"
	case PhaseCapturing:
		return "capturing"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// Sequencer runs the countdown and capture loop for one session at a time.
// It is driven by Update with elapsed time so tests can simulate the clock.
type Sequencer struct {
	scene  *Scene
	live   *RasterSurface
	source FrameSource
	loader *AssetLoader
	sound  SoundCue
	log    *slog.Logger

	phase   Phase
	slot    int
	count   int
	elapsed time.Duration
	status  string
	err     error

	// OnCapture fires after a slot is appended to the scene.
	OnCapture func(PhotoSlot)
	// OnError fires once when the frame source fails.
	OnError func(error)
}

// NewSequencer creates an idle sequencer that captures into scene and paints
// snapshots onto live.
func NewSequencer(scene *Scene, live *RasterSurface, source FrameSource, loader *AssetLoader, sound SoundCue, log *slog.Logger) *Sequencer {
	if log == nil {
		log = slog.Default()
	}
	return &Sequencer{
		scene:  scene,
		live:   live,
		source: source,
		loader: loader,
		sound:  sound,
		log:    log,
	}
}

// Start validates photoCount, cancels any running sequence, resets the scene,
// resizes the live surface and begins counting down the first slot.
func (q *Sequencer) Start(photoCount int) error {
	sess, err := NewSession(photoCount)
	if err != nil {
		return err
	}
	q.Cancel()
	q.scene.Reset(sess)
	q.live.Resize(sess.Width(), sess.Height())
	q.err = nil
	q.log.Info("session started", "session", sess.ID, "photos", sess.PhotoCount,
		"width", sess.Width(), "height", sess.Height())
	q.beginSlot(0)
	return nil
}

// Cancel stops the running sequence. Pending ticks are discarded.
func (q *Sequencer) Cancel() {
	q.phase = PhaseIdle
	q.elapsed = 0
	q.count = 0
	q.slot = 0
}

// Update advances the countdown by dt, performing one tick per elapsed
// second. It returns the number of photos captured during the call.
func (q *Sequencer) Update(dt time.Duration) int {
	if q.phase != PhaseCounting {
		return 0
	}
	captured := 0
	q.elapsed += dt
	for q.phase == PhaseCounting && q.elapsed >= tickInterval {
		q.elapsed -= tickInterval
		if q.tick() {
			captured++
		}
	}
	if q.phase != PhaseCounting {
		q.elapsed = 0
	}
	return captured
}

// tick counts down one second and captures when the count reaches zero.
func (q *Sequencer) tick() bool {
	q.count--
	q.status = strconv.Itoa(q.count)
	if q.count > 0 {
		return false
	}

	q.phase = PhaseCapturing
	if err := q.capture(); err != nil {
		q.fail(err)
		return false
	}
	q.beginSlot(q.slot + 1)
	return true
}

func (q *Sequencer) beginSlot(index int) {
	q.slot = index
	if index >= q.scene.Session.PhotoCount {
		q.phase = PhaseDone
		q.status = StatusDone
		q.log.Info("session complete", "session", q.scene.Session.ID, "photos", len(q.scene.Photos))
		return
	}
	q.phase = PhaseCounting
	q.count = CountdownSeconds
	q.status = strconv.Itoa(q.count)
}

// capture takes the mirrored snapshot for the current slot, queues its
// decode, appends the slot and paints it on the live surface right away.
func (q *Sequencer) capture() error {
	if q.sound != nil {
		q.sound.Play()
	}

	frame, err := q.source.Frame()
	if err != nil {
		return fmt.Errorf("capture slot %d: %w: %w", q.slot, ErrDeviceUnavailable, err)
	}

	sess := q.scene.Session
	snap := snapshot(frame, sess.CellWidth, sess.CellHeight)
	data, err := encodePNG(snap)
	if err != nil {
		return fmt.Errorf("capture slot %d: %w", q.slot, err)
	}

	r := sess.SlotRect(q.slot)
	col, row := sess.Cell(q.slot)
	slot := PhotoSlot{
		Index:  q.slot,
		Col:    col,
		Row:    row,
		X:      int(r.X),
		Y:      int(r.Y),
		Width:  sess.CellWidth,
		Height: sess.CellHeight,
		Image:  q.loader.Decode(fmt.Sprintf("photo-%s-%d", sess.ID, q.slot), data),
		PNG:    data,
	}
	if err := q.scene.AddPhoto(slot); err != nil {
		return err
	}
	q.live.DrawImage(snap, r.ImageRect())
	q.log.Debug("photo captured", "session", sess.ID, "slot", slot.Index, "x", slot.X, "y", slot.Y)

	if q.OnCapture != nil {
		q.OnCapture(slot)
	}
	return nil
}

func (q *Sequencer) fail(err error) {
	q.phase = PhaseFailed
	q.status = StatusUnavailable
	q.err = err
	q.log.Error("capture failed", "session", q.scene.Session.ID, "slot", q.slot, "err", err)
	if q.OnError != nil {
		q.OnError(err)
	}
}

// Phase returns the current state.
func (q *Sequencer) Phase() Phase { return q.phase }

// Slot returns the index of the slot being counted down or captured.
func (q *Sequencer) Slot() int { return q.slot }

// Count returns the countdown value currently displayed.
func (q *Sequencer) Count() int { return q.count }

// Status returns the countdown value or a completion marker.
func (q *Sequencer) Status() string { return q.status }

// Err returns the frame source failure that stalled the session, if any.
func (q *Sequencer) Err() error { return q.err }

// Running reports whether a countdown is in progress.
func (q *Sequencer) Running() bool { return q.phase == PhaseCounting || q.phase == PhaseCapturing }

// snapshot scales frame into a w x h raster, flipped about its vertical
// centerline so the result reads like a mirror.
func snapshot(frame image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	b := frame.Bounds()
	if b.Empty() {
		return dst
	}
	sx := float64(w) / float64(b.Dx())
	sy := float64(h) / float64(b.Dy())
	s2d := f64.Aff3{
		-sx, 0, float64(w) + sx*float64(b.Min.X),
		0, sy, -sy * float64(b.Min.Y),
	}
	xdraw.ApproxBiLinear.Transform(dst, s2d, frame, b, xdraw.Src, nil)
	return dst
}
