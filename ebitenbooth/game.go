// Package ebitenbooth runs a photobooth.Booth in an Ebitengine window: a
// start screen, the live canvas with countdown, a sticker palette dragged
// with the mouse, a capture flash and shutter sound.
package ebitenbooth

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/photobooth"
)

const (
	margin    = 16
	statusBar = 24
	helpBar   = 32
	noticeTTL = 3 * time.Second
)

var (
	backgroundColor = color.RGBA{R: 0x23, G: 0x1e, B: 0x2d, A: 0xff}
	ghostAlpha      = float32(0.6)
)

// view is the active screen.
type view uint8

const (
	viewStart view = iota
	viewInstructions
	viewBooth
)

// Options configures the window front-end.
type Options struct {
	Title     string
	Photos    int    // if 2 or 4, the booth view opens with this session running
	ExportDir string // directory photobooth.png is written to
	Palette   []photobooth.PaletteEntry
	Logger    *slog.Logger
}

// Game implements ebiten.Game around a Booth.
type Game struct {
	booth  *photobooth.Booth
	flash  *photobooth.Flash
	opts   Options
	log    *slog.Logger
	thumbs []thumb
	canvas *ebiten.Image
	white  *ebiten.Image

	view      view
	dragThumb int
	inside    bool
	lastX     int
	lastY     int
	notice    string
	noticeFor time.Duration
	sticky    bool
}

// NewGame builds the booth from cfg and wraps it for Ebitengine. The capture
// and error hooks of cfg are chained so the game can flash and show notices.
func NewGame(cfg photobooth.Config, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = opts.Logger
	}
	g := &Game{
		flash:     photobooth.NewFlash(),
		opts:      opts,
		log:       opts.Logger,
		dragThumb: -1,
	}

	onCapture, onError := cfg.OnCapture, cfg.OnError
	cfg.OnCapture = func(slot photobooth.PhotoSlot) {
		g.flash.Trigger(photobooth.DefaultFlashDuration)
		if onCapture != nil {
			onCapture(slot)
		}
	}
	cfg.OnError = func(err error) {
		g.showSticky("Camera access denied. Press 2 or 4 to retry.")
		if onError != nil {
			onError(err)
		}
	}
	g.booth = photobooth.New(cfg)
	g.booth.Controller().Origin = photobooth.Vec2{X: margin, Y: margin + statusBar}

	maxY := screenHeight() - helpBar - margin
	rects := layoutPalette(len(opts.Palette), margin+2*photobooth.CellWidth+margin, margin+statusBar, maxY)
	for i, e := range opts.Palette {
		g.thumbs = append(g.thumbs, thumb{entry: e, rect: rects[i]})
	}

	if opts.Photos == 2 || opts.Photos == 4 {
		g.startSession(opts.Photos)
	}
	return g
}

// Booth returns the wrapped booth.
func (g *Game) Booth() *photobooth.Booth {
	return g.booth
}

func (g *Game) startSession(n int) {
	g.view = viewBooth
	g.sticky = false
	g.notice = ""
	if err := g.booth.StartSession(n); err != nil {
		g.show(err.Error())
	}
}

func (g *Game) show(msg string) {
	g.notice = msg
	g.noticeFor = noticeTTL
	g.sticky = false
}

func (g *Game) showSticky(msg string) {
	g.notice = msg
	g.sticky = true
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())

	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		g.startSession(2)
	case inpututil.IsKeyJustPressed(ebiten.Key4):
		g.startSession(4)
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		if g.view != viewBooth {
			g.view = viewInstructions
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if g.view == viewInstructions {
			g.view = viewStart
		}
	}

	if g.view == viewBooth {
		if inpututil.IsKeyJustPressed(ebiten.KeyF) {
			g.booth.ToggleFrame()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			g.save()
		}
		g.handleMouse()
	}

	g.booth.Update(dt)
	g.flash.Update(float32(dt.Seconds()))
	if !g.sticky && g.noticeFor > 0 {
		g.noticeFor -= dt
		if g.noticeFor <= 0 {
			g.notice = ""
		}
	}
	return nil
}

func (g *Game) save() {
	res, err := g.booth.Export()
	if err != nil {
		g.log.Error("export failed", "err", err)
		g.show("Export failed: " + err.Error())
		return
	}
	path, err := photobooth.WriteExport(g.opts.ExportDir, "", res)
	if err != nil {
		g.log.Error("export failed", "err", err)
		g.show("Export failed: " + err.Error())
		return
	}
	g.log.Info("export written", "path", path, "complete", res.Complete)
	if res.Complete {
		g.show("Saved " + path)
	} else {
		g.show("Saved " + path + " (some images were still loading)")
	}
}

func (g *Game) canvasRect() image.Rectangle {
	w, h := g.booth.Surface().Size()
	o := g.booth.Controller().Origin
	return image.Rect(int(o.X), int(o.Y), int(o.X)+w, int(o.Y)+h)
}

// handleMouse runs the palette drag and forwards canvas pointer events.
func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	ctl := g.booth.Controller()
	inside := image.Pt(mx, my).In(g.canvasRect())

	pointer := func(kind photobooth.PointerKind) {
		if err := ctl.HandlePointer(photobooth.PointerEvent{Kind: kind, X: x, Y: y}); err != nil {
			g.log.Debug("pointer event rejected", "kind", kind, "err", err)
		}
	}

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if i := thumbAt(g.thumbs, mx, my); i >= 0 {
			g.dragThumb = i
			ctl.BeginDrag(g.thumbs[i].entry.Name, dropSize(g.thumbs[i].entry.Image.Bounds()))
		} else if inside {
			pointer(photobooth.PointerDown)
		}
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if g.dragThumb >= 0 {
			if inside {
				pointer(photobooth.PointerDrop)
			} else {
				ctl.CancelDrag()
			}
			g.dragThumb = -1
		}
		pointer(photobooth.PointerUp)
	case mx != g.lastX || my != g.lastY:
		pointer(photobooth.PointerMove)
	}

	if g.inside && !inside {
		pointer(photobooth.PointerLeave)
	}
	g.inside = inside
	g.lastX, g.lastY = mx, my
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if g.white == nil {
		g.white = ebiten.NewImage(1, 1)
		g.white.Fill(color.White)
	}

	switch g.view {
	case viewStart:
		ebitenutil.DebugPrintAt(screen, "PHOTOBOOTH\n\nPress 2 for two photos, 4 for four photos.\nPress I for instructions.", margin, margin)
	case viewInstructions:
		ebitenutil.DebugPrintAt(screen, "Pose when the countdown reaches zero.\n"+
			"Drag stickers from the right onto your photos, then drag them around.\n"+
			"F toggles the frame, S saves photobooth.png.\n\nEsc to go back.", margin, margin)
	case viewBooth:
		g.drawBooth(screen)
	}

	if g.notice != "" {
		ebitenutil.DebugPrintAt(screen, g.notice, margin, screenHeight()-helpBar)
	}
}

func (g *Game) drawBooth(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, g.booth.Status(), margin, margin)

	rgba := g.booth.Surface().RGBA()
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	if g.canvas == nil || g.canvas.Bounds().Dx() != w || g.canvas.Bounds().Dy() != h {
		if g.canvas != nil {
			g.canvas.Deallocate()
		}
		g.canvas = ebiten.NewImage(w, h)
	}
	g.canvas.WritePixels(rgba.Pix)

	o := g.booth.Controller().Origin
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(o.X, o.Y)
	screen.DrawImage(g.canvas, op)

	if a := g.flash.Alpha(); a > 0 {
		fop := &ebiten.DrawImageOptions{}
		fop.GeoM.Scale(float64(w), float64(h))
		fop.GeoM.Translate(o.X, o.Y)
		fop.ColorScale.ScaleAlpha(float32(a))
		screen.DrawImage(g.white, fop)
	}

	for i := range g.thumbs {
		t := &g.thumbs[i]
		if t.img == nil {
			t.img = ebiten.NewImageFromImage(t.entry.Image)
		}
		g.drawThumb(screen, t, float64(t.rect.Min.X), float64(t.rect.Min.Y), 1)
	}
	if g.dragThumb >= 0 {
		mx, my := ebiten.CursorPosition()
		g.drawThumb(screen, &g.thumbs[g.dragThumb], float64(mx-thumbSize/2), float64(my-thumbSize/2), ghostAlpha)
	}

	ebitenutil.DebugPrintAt(screen, helpText(g.booth.Scene().Frame.Enabled), margin, screenHeight()-helpBar+14)
}

func (g *Game) drawThumb(screen *ebiten.Image, t *thumb, x, y float64, alpha float32) {
	b := t.img.Bounds()
	s := fitScale(b.Dx(), b.Dy())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(alpha)
	screen.DrawImage(t.img, op)
}

// helpText is the key legend, with the current frame state.
func helpText(frameOn bool) string {
	state := "off"
	if frameOn {
		state = "on"
	}
	return "2/4 new session  F frame: " + state + "  S save"
}

// Layout implements ebiten.Game with a fixed logical screen.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth(len(g.thumbs)), screenHeight()
}

func screenWidth(stickers int) int {
	cols := paletteColumns(stickers, margin+statusBar, screenHeight()-helpBar-margin)
	return margin + 2*photobooth.CellWidth + margin + cols*(thumbSize+thumbGap) + margin
}

func screenHeight() int {
	return margin + statusBar + 2*photobooth.CellHeight + margin + helpBar
}

// Run opens the window and blocks until it is closed. A shutter sound is
// attached unless cfg already carries one.
func Run(cfg photobooth.Config, opts Options) error {
	if cfg.Source == nil {
		return errors.New("ebitenbooth: no frame source")
	}
	if cfg.Sound == nil {
		cfg.Sound = NewBeep(audio.NewContext(sampleRate))
	}
	g := NewGame(cfg, opts)
	title := opts.Title
	if title == "" {
		title = "Photobooth"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(screenWidth(len(g.thumbs)), screenHeight())
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run photobooth window: %w", err)
	}
	return nil
}
