package photobooth

import (
	"context"
	"io/fs"
	"log/slog"
	"time"
)

// Config wires a Booth to its collaborators. Only Source is required.
type Config struct {
	Source   FrameSource
	Sound    SoundCue
	Stickers fs.FS // resolves sticker names passed to BeginDrag
	Logger   *slog.Logger
	Debug    bool // log per-render stats at debug level

	OnCapture func(PhotoSlot)
	OnError   func(error)
}

// Booth owns one scene and the components that act on it. Every method must
// be called from the same goroutine; decode goroutines only hand results
// back through the asset loader.
type Booth struct {
	scene  *Scene
	live   *RasterSurface
	loader *AssetLoader
	seq    *Sequencer
	ctl    *Controller
	log    *slog.Logger
	debug  bool

	dirty       bool
	injectQueue []PointerEvent
	lastStats   RenderStats
}

// New creates a booth with an empty scene. Call StartSession to begin.
func New(cfg Config) *Booth {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	scene := NewScene()
	live := NewRasterSurface(CellWidth, 2*CellHeight)
	loader := NewAssetLoader(cfg.Stickers, log)

	b := &Booth{
		scene:  scene,
		live:   live,
		loader: loader,
		log:    log,
		debug:  cfg.Debug,
	}
	b.seq = NewSequencer(scene, live, cfg.Source, loader, cfg.Sound, log)
	b.seq.OnCapture = cfg.OnCapture
	b.seq.OnError = cfg.OnError
	b.ctl = NewController(scene, loader, log)
	b.ctl.OnChange(b.invalidate)
	return b
}

func (b *Booth) invalidate() {
	b.dirty = true
}

// StartSession cancels any running capture, clears the scene and starts
// counting down the first of photoCount slots.
func (b *Booth) StartSession(photoCount int) error {
	if err := b.seq.Start(photoCount); err != nil {
		return err
	}
	b.ctl.Reset()
	b.injectQueue = b.injectQueue[:0]
	b.Render()
	return nil
}

// Update applies finished decodes, advances the countdown by dt, consumes
// one injected pointer event and re-renders if anything changed.
func (b *Booth) Update(dt time.Duration) {
	if changed := b.loader.Poll(); len(changed) > 0 {
		b.assetsChanged()
	}
	b.seq.Update(dt)
	b.processInjectedInput()
	if b.dirty {
		b.Render()
	}
}

func (b *Booth) assetsChanged() {
	b.ctl.settle()
	// Captures paint straight onto the live surface, over any frame or
	// stickers; the first render after the decode restores the layer order.
	b.dirty = true
}

// Settle blocks until every queued decode has been applied, then renders.
func (b *Booth) Settle(ctx context.Context) error {
	for b.loader.Pending() > 0 {
		if _, err := b.loader.Wait(ctx); err != nil {
			return err
		}
		b.assetsChanged()
	}
	if b.dirty {
		b.Render()
	}
	return nil
}

// Render repaints the live surface from the scene.
func (b *Booth) Render() RenderStats {
	b.dirty = false
	b.lastStats = Render(b.scene, b.live)
	if b.debug {
		debugLog(b.log, b.lastStats)
	}
	return b.lastStats
}

// Export encodes the current composition. An incomplete result is logged
// so the fallback is never silent.
func (b *Booth) Export() (ExportResult, error) {
	res, err := Export(b.scene, b.live)
	if err != nil {
		return res, err
	}
	if !res.Complete {
		b.log.Warn("export is missing images that have not finished loading",
			"session", b.scene.Session.ID, "pending", b.loader.Pending())
	}
	return res, nil
}

// ToggleFrame flips the border and re-renders.
func (b *Booth) ToggleFrame() bool {
	on := b.ctl.ToggleFrame()
	b.Render()
	return on
}

// Idle reports whether no injected input, decode or drop is outstanding.
func (b *Booth) Idle() bool {
	return len(b.injectQueue) == 0 && b.loader.Pending() == 0 && b.ctl.PendingDrops() == 0
}

// Scene returns the booth's scene.
func (b *Booth) Scene() *Scene { return b.scene }

// Surface returns the live canvas.
func (b *Booth) Surface() *RasterSurface { return b.live }

// Sequencer returns the capture sequencer.
func (b *Booth) Sequencer() *Sequencer { return b.seq }

// Controller returns the interaction controller.
func (b *Booth) Controller() *Controller { return b.ctl }

// Loader returns the asset loader.
func (b *Booth) Loader() *AssetLoader { return b.loader }

// Status returns the countdown or completion text.
func (b *Booth) Status() string { return b.seq.Status() }

// LastStats returns the stats of the most recent render.
func (b *Booth) LastStats() RenderStats { return b.lastStats }
