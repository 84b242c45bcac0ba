package photobooth

import (
	"errors"
	"image"
	"strconv"
	"testing"
	"time"
)

func TestTwoPhotoScenario(t *testing.T) {
	b := newTestBooth(t, nil)
	if err := b.StartSession(2); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if w, h := b.Surface().Size(); w != 320 || h != 480 {
		t.Errorf("canvas = %dx%d, want 320x480", w, h)
	}

	advance(b, 10)

	photos := b.Scene().Photos
	if len(photos) != 2 {
		t.Fatalf("photos = %d, want 2", len(photos))
	}
	if photos[0].X != 0 || photos[0].Y != 0 {
		t.Errorf("photo 0 at (%d, %d), want (0, 0)", photos[0].X, photos[0].Y)
	}
	if photos[1].X != 0 || photos[1].Y != 240 {
		t.Errorf("photo 1 at (%d, %d), want (0, 240)", photos[1].X, photos[1].Y)
	}
	if b.Status() != StatusDone {
		t.Errorf("Status = %q, want %q", b.Status(), StatusDone)
	}
	if b.Sequencer().Phase() != PhaseDone {
		t.Errorf("Phase = %v, want done", b.Sequencer().Phase())
	}

	advance(b, 10)
	if len(b.Scene().Photos) != 2 {
		t.Errorf("photos after done = %d, want 2", len(b.Scene().Photos))
	}
}

func TestFourPhotoPlacement(t *testing.T) {
	b := newTestBooth(t, nil)
	if err := b.StartSession(4); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	advance(b, 20)

	want := []image.Point{{0, 0}, {320, 0}, {0, 240}, {320, 240}}
	photos := b.Scene().Photos
	if len(photos) != len(want) {
		t.Fatalf("photos = %d, want %d", len(photos), len(want))
	}
	for i, p := range photos {
		if p.Index != i {
			t.Errorf("photos[%d].Index = %d", i, p.Index)
		}
		if p.X != want[i].X || p.Y != want[i].Y {
			t.Errorf("photo %d at (%d, %d), want (%d, %d)", i, p.X, p.Y, want[i].X, want[i].Y)
		}
		if p.Col != i%2 || p.Row != i/2 {
			t.Errorf("photo %d cell = (%d, %d), want (%d, %d)", i, p.Col, p.Row, i%2, i/2)
		}
	}
}

func TestCountdownSequence(t *testing.T) {
	b := newTestBooth(t, nil)
	_ = b.StartSession(2)
	seq := b.Sequencer()

	if seq.Status() != "5" || seq.Phase() != PhaseCounting {
		t.Fatalf("initial status = %q phase %v, want \"5\" counting", seq.Status(), seq.Phase())
	}
	for want := 4; want >= 1; want-- {
		b.Update(time.Second)
		if seq.Status() != strconv.Itoa(want) {
			t.Errorf("status = %q, want %d", seq.Status(), want)
		}
		if len(b.Scene().Photos) != 0 {
			t.Fatalf("photo captured at countdown %d", want)
		}
	}

	b.Update(999 * time.Millisecond)
	if len(b.Scene().Photos) != 0 {
		t.Fatal("photo captured before the countdown reached zero")
	}
	b.Update(time.Millisecond)
	if len(b.Scene().Photos) != 1 {
		t.Fatalf("photos = %d, want 1 at zero", len(b.Scene().Photos))
	}
	if seq.Slot() != 1 || seq.Status() != "5" {
		t.Errorf("after capture slot = %d status = %q, want 1 \"5\"", seq.Slot(), seq.Status())
	}
}

func TestUpdateAccumulatesLargeSteps(t *testing.T) {
	b := newTestBooth(t, nil)
	_ = b.StartSession(4)
	b.Update(12 * time.Second)
	if got := len(b.Scene().Photos); got != 2 {
		t.Errorf("photos after 12s = %d, want 2", got)
	}
	if got := b.Sequencer().Count(); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}
}

func TestStartSessionInvalidCount(t *testing.T) {
	b := newTestBooth(t, nil)
	_ = b.StartSession(4)
	advance(b, 5)

	if err := b.StartSession(3); !errors.Is(err, ErrInvalidPhotoCount) {
		t.Fatalf("StartSession(3) err = %v, want ErrInvalidPhotoCount", err)
	}
	if len(b.Scene().Photos) != 1 || b.Scene().Session.PhotoCount != 4 {
		t.Error("rejected session start disturbed the running session")
	}
}

func TestStartSessionCancelsRunningSequence(t *testing.T) {
	b := newTestBooth(t, nil)
	_ = b.StartSession(4)
	advance(b, 7)
	b.Scene().AddSticker(&Sticker{Size: 10})
	b.ToggleFrame()

	if err := b.StartSession(2); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	scene := b.Scene()
	if len(scene.Photos) != 0 || len(scene.Stickers) != 0 || scene.Frame.Enabled {
		t.Fatalf("scene not reset: photos %d stickers %d frame %v", len(scene.Photos), len(scene.Stickers), scene.Frame.Enabled)
	}
	if b.Status() != "5" {
		t.Errorf("status = %q, want fresh countdown", b.Status())
	}

	// The old sequence had 3 seconds left on slot 1; it must not fire.
	advance(b, 3)
	if len(scene.Photos) != 0 {
		t.Errorf("stale countdown captured %d photos", len(scene.Photos))
	}
	advance(b, 7)
	if len(scene.Photos) != 2 {
		t.Errorf("photos = %d, want 2", len(scene.Photos))
	}
}

func TestCapturePlaysSoundAndNotifies(t *testing.T) {
	sound := &countingSound{}
	var slots []int
	b := New(Config{
		Source:    ImageSource{Img: solidImage(CellWidth, CellHeight, red)},
		Sound:     sound,
		OnCapture: func(p PhotoSlot) { slots = append(slots, p.Index) },
	})
	_ = b.StartSession(2)
	advance(b, 10)

	if sound.plays != 2 {
		t.Errorf("sound plays = %d, want 2", sound.plays)
	}
	if len(slots) != 2 || slots[0] != 0 || slots[1] != 1 {
		t.Errorf("OnCapture slots = %v, want [0 1]", slots)
	}
}

func TestCapturePaintsLiveSurfaceImmediately(t *testing.T) {
	b := newTestBooth(t, nil)
	_ = b.StartSession(2)
	advance(b, 5)

	p := b.Scene().Photos[0]
	// Decodes are only applied at the start of Update, before the capture.
	if p.Image.Ready() {
		t.Fatal("photo asset ready in the update that captured it")
	}
	if got := rgbaAt(b.Surface().Image(), 100, 100); got != red {
		t.Errorf("live pixel = %v, want %v before decode completes", got, red)
	}
	if got := rgbaAt(b.Surface().Image(), 100, 300); got.A != 0 {
		t.Errorf("uncaptured slot pixel = %v, want transparent", got)
	}
}

func TestCaptureEncodesDecodableSnapshot(t *testing.T) {
	b := newTestBooth(t, nil)
	_ = b.StartSession(2)
	advance(b, 5)

	if err := b.Settle(testContext(t)); err != nil {
		t.Fatalf("Settle: %v", err)
	}
	p := b.Scene().Photos[0]
	if !p.Image.Ready() {
		t.Fatalf("photo not ready after settle: %v", p.Image.Err())
	}
	w, h, err := p.Image.Size()
	if err != nil || w != CellWidth || h != CellHeight {
		t.Errorf("photo size = %dx%d (%v), want %dx%d", w, h, err, CellWidth, CellHeight)
	}
	if len(p.PNG) == 0 {
		t.Error("photo has no encoded bytes")
	}
}

func TestCaptureFailureStallsSession(t *testing.T) {
	var errs []error
	b := New(Config{
		Source:  FailingSource{Err: errors.New("permission denied")},
		OnError: func(err error) { errs = append(errs, err) },
	})
	_ = b.StartSession(2)
	advance(b, 12)

	seq := b.Sequencer()
	if seq.Phase() != PhaseFailed {
		t.Fatalf("Phase = %v, want failed", seq.Phase())
	}
	if len(errs) != 1 {
		t.Fatalf("OnError calls = %d, want 1", len(errs))
	}
	if !errors.Is(errs[0], ErrDeviceUnavailable) {
		t.Errorf("err = %v, want ErrDeviceUnavailable", errs[0])
	}
	if b.Status() != StatusUnavailable {
		t.Errorf("Status = %q, want %q", b.Status(), StatusUnavailable)
	}
	if len(b.Scene().Photos) != 0 {
		t.Errorf("photos = %d, want 0", len(b.Scene().Photos))
	}

	// A new session clears the failure.
	_ = b.StartSession(2)
	if seq.Err() != nil || seq.Phase() != PhaseCounting {
		t.Errorf("after restart err = %v phase = %v", seq.Err(), seq.Phase())
	}
}

func TestSnapshotMirrors(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			if x < 320 {
				frame.SetRGBA(x, y, red)
			} else {
				frame.SetRGBA(x, y, blue)
			}
		}
	}

	snap := snapshot(frame, CellWidth, CellHeight)
	if b := snap.Bounds(); b.Dx() != CellWidth || b.Dy() != CellHeight {
		t.Fatalf("snapshot size = %dx%d, want %dx%d", b.Dx(), b.Dy(), CellWidth, CellHeight)
	}
	if got := rgbaAt(snap, 40, 120); got != blue {
		t.Errorf("left of snapshot = %v, want mirrored right half %v", got, blue)
	}
	if got := rgbaAt(snap, 280, 120); got != red {
		t.Errorf("right of snapshot = %v, want mirrored left half %v", got, red)
	}
}

func TestSnapshotOffsetBounds(t *testing.T) {
	frame := solidImage(100, 100, green).SubImage(image.Rect(20, 20, 80, 80))
	snap := snapshot(frame, 60, 60)
	if got := rgbaAt(snap, 30, 30); got != green {
		t.Errorf("center pixel = %v, want %v", got, green)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseCounting.String() != "counting" || Phase(42).String() != "phase(42)" {
		t.Errorf("Phase strings = %q, %q", PhaseCounting.String(), Phase(42).String())
	}
}
