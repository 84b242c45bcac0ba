// Package photobooth is the composition engine of a photobooth: a timed
// capture sequence, a layered scene of photos, border and stickers, pointer
// driven sticker placement, deterministic rendering and PNG export.
//
// # Quick start
//
// A [Booth] wires every component to one [Scene]. Drive it from a single
// loop with the elapsed time since the previous update:
//
//	booth := photobooth.New(photobooth.Config{
//		Source:   photobooth.NewPatternSource(640, 480),
//		Stickers: os.DirFS("stickers"),
//	})
//	if err := booth.StartSession(4); err != nil {
//		return err
//	}
//	for booth.Sequencer().Running() {
//		booth.Update(time.Second / 60)
//	}
//
// The [ebitenbooth] package runs the same booth inside an Ebitengine window.
//
// # Scene
//
// A scene always draws in the same order: photos in capture order, then the
// border if enabled, then stickers in z-order. [Render] and [Export] share
// this pass. Assets decode on background goroutines; renders skip assets
// that are not [Asset.Ready] and the booth re-renders when the
// [AssetLoader] reports them done.
//
// # Capture
//
// The [Sequencer] counts down [CountdownSeconds] per slot, one state per
// elapsed second, then takes a mirrored snapshot from the [FrameSource].
// Starting a new session cancels the running countdown before the scene is
// reset.
//
// # Input
//
// The [Controller] picks the topmost sticker under the pointer, brings it to
// the front and drags it with the grab offset preserved. Tests and scripts
// inject pointer events with [Booth.InjectDrag] and friends; [Script] runs a
// whole composition from YAML or JSON.
//
// [ebitenbooth]: https://pkg.go.dev/github.com/phanxgames/photobooth/ebitenbooth
package photobooth
