package photobooth

import (
	"bytes"
	"image/color"
	"testing"
)

func renderScene(t *testing.T, photos int) (*Scene, *RasterSurface) {
	t.Helper()
	scene := NewScene()
	sess, err := NewSession(photos)
	if err != nil {
		t.Fatal(err)
	}
	scene.Reset(sess)
	for i := 0; i < photos; i++ {
		r := sess.SlotRect(i)
		_ = scene.AddPhoto(PhotoSlot{
			Index: i, X: int(r.X), Y: int(r.Y), Width: CellWidth, Height: CellHeight,
			Image: NewReadyAsset("photo", solidImage(CellWidth, CellHeight, red)),
		})
	}
	return scene, NewRasterSurface(sess.Width(), sess.Height())
}

func pixels(s *RasterSurface) []byte {
	return bytes.Clone(s.RGBA().Pix)
}

// --- Layers ---

func TestRenderDrawsPhotos(t *testing.T) {
	scene, dst := renderScene(t, 2)
	stats := Render(scene, dst)

	if stats.Photos != 2 || stats.Pending != 0 || !stats.Complete() {
		t.Errorf("stats = %+v, want 2 photos, none pending", stats)
	}
	for _, y := range []int{5, 235, 245, 475} {
		if got := rgbaAt(dst.Image(), 160, y); got != red {
			t.Errorf("pixel (160, %d) = %v, want %v", y, got, red)
		}
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	scene, dst := renderScene(t, 4)
	scene.AddSticker(&Sticker{Image: NewReadyAsset("s", solidImage(40, 40, blue)), X: 300, Y: 220, Size: 40})
	scene.AddSticker(&Sticker{Image: NewReadyAsset("s", solidImage(10, 10, green)), X: 5.5, Y: 7, Size: 64})
	scene.Frame.Enabled = true

	Render(scene, dst)
	first := pixels(dst)
	Render(scene, dst)
	if !bytes.Equal(first, dst.RGBA().Pix) {
		t.Error("second render differs from the first")
	}
}

func TestRenderClearsPreviousContent(t *testing.T) {
	scene, dst := renderScene(t, 2)
	dst.FillRect(dst.RGBA().Bounds(), green)
	scene.Photos = scene.Photos[:1]
	Render(scene, dst)
	if got := rgbaAt(dst.Image(), 160, 300); got.A != 0 {
		t.Errorf("empty slot pixel = %v, want transparent", got)
	}
}

func TestRenderFrameInset(t *testing.T) {
	scene, dst := renderScene(t, 2)
	scene.Frame.Enabled = true
	stats := Render(scene, dst)
	if !stats.Frame {
		t.Error("stats.Frame = false with frame enabled")
	}

	border := []struct{ x, y int }{
		{0, 0}, {19, 19}, {160, 0}, {160, 19}, {0, 240}, {319, 240}, {300, 240}, {160, 479}, {160, 460},
	}
	for _, p := range border {
		if got := rgbaAt(dst.Image(), p.x, p.y); got != BorderColor {
			t.Errorf("pixel (%d, %d) = %v, want border %v", p.x, p.y, got, BorderColor)
		}
	}
	inside := []struct{ x, y int }{{20, 20}, {160, 20}, {299, 240}, {160, 459}}
	for _, p := range inside {
		if got := rgbaAt(dst.Image(), p.x, p.y); got != red {
			t.Errorf("pixel (%d, %d) = %v, want photo %v", p.x, p.y, got, red)
		}
	}
}

func TestFrameToggleTwiceRestores(t *testing.T) {
	scene, dst := renderScene(t, 4)
	Render(scene, dst)
	before := pixels(dst)

	scene.Frame.Enabled = true
	Render(scene, dst)
	if bytes.Equal(before, dst.RGBA().Pix) {
		t.Fatal("enabling the frame changed nothing")
	}
	scene.Frame.Enabled = false
	Render(scene, dst)
	if !bytes.Equal(before, dst.RGBA().Pix) {
		t.Error("toggling the frame twice did not restore the original render")
	}
}

func TestRenderStickersAboveFrame(t *testing.T) {
	scene, dst := renderScene(t, 2)
	scene.Frame.Enabled = true
	scene.AddSticker(&Sticker{Image: NewReadyAsset("s", solidImage(40, 40, blue)), X: 0, Y: 0, Size: 40})
	Render(scene, dst)

	if got := rgbaAt(dst.Image(), 5, 5); got != blue {
		t.Errorf("sticker over border = %v, want %v", got, blue)
	}
	if got := rgbaAt(dst.Image(), 45, 5); got != BorderColor {
		t.Errorf("border beside sticker = %v, want %v", got, BorderColor)
	}
}

func TestRenderZOrder(t *testing.T) {
	scene, dst := renderScene(t, 2)
	a := &Sticker{Image: NewReadyAsset("a", solidImage(40, 40, blue)), X: 100, Y: 100, Size: 40}
	b := &Sticker{Image: NewReadyAsset("b", solidImage(40, 40, green)), X: 120, Y: 120, Size: 40}
	scene.AddSticker(a)
	scene.AddSticker(b)

	Render(scene, dst)
	if got := rgbaAt(dst.Image(), 130, 130); got != green {
		t.Errorf("overlap = %v, want top sticker %v", got, green)
	}

	scene.BringToFront(0)
	Render(scene, dst)
	if got := rgbaAt(dst.Image(), 130, 130); got != blue {
		t.Errorf("overlap after promotion = %v, want %v", got, blue)
	}
}

func TestRenderSkipsPendingAssets(t *testing.T) {
	scene, dst := renderScene(t, 2)
	scene.Photos[1].Image = &Asset{Name: "decoding"}
	scene.AddSticker(&Sticker{Image: &Asset{Name: "decoding"}, X: 0, Y: 0, Size: 40})

	stats := Render(scene, dst)
	if stats.Photos != 1 || stats.Stickers != 0 || stats.Pending != 2 {
		t.Errorf("stats = %+v, want 1 photo, 0 stickers, 2 pending", stats)
	}
	if got := rgbaAt(dst.Image(), 160, 300); got.A != 0 {
		t.Errorf("pending photo area = %v, want transparent", got)
	}
}

func TestRenderScalesStickers(t *testing.T) {
	scene, dst := renderScene(t, 2)
	scene.AddSticker(&Sticker{Image: NewReadyAsset("s", solidImage(10, 10, blue)), X: 50, Y: 50, Size: 100})
	Render(scene, dst)
	if got := rgbaAt(dst.Image(), 100, 100); got != blue {
		t.Errorf("scaled sticker center = %v, want %v", got, blue)
	}
	if got := rgbaAt(dst.Image(), 160, 100); got != red {
		t.Errorf("outside scaled sticker = %v, want %v", got, red)
	}
}

func TestStrokeRectSkipsZeroWidth(t *testing.T) {
	dst := NewRasterSurface(10, 10)
	strokeRect(dst, Rect{Width: 10, Height: 10}, 0, color.Black)
	if got := rgbaAt(dst.Image(), 0, 0); got.A != 0 {
		t.Errorf("zero-width stroke painted %v", got)
	}
}
