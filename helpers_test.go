package photobooth

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
	"time"
)

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func stickerFS(t *testing.T) fstest.MapFS {
	t.Helper()
	return fstest.MapFS{
		"star.png":  {Data: pngBytes(t, solidImage(40, 40, blue))},
		"heart.png": {Data: pngBytes(t, solidImage(40, 40, green))},
		"notes.txt": {Data: []byte("not a sticker")},
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

type countingSound struct{ plays int }

func (s *countingSound) Play() { s.plays++ }

func newTestBooth(t *testing.T, src FrameSource) *Booth {
	t.Helper()
	if src == nil {
		src = ImageSource{Img: solidImage(CellWidth, CellHeight, red)}
	}
	return New(Config{Source: src, Stickers: stickerFS(t)})
}

// advance runs n one-second updates.
func advance(b *Booth, n int) {
	for i := 0; i < n; i++ {
		b.Update(time.Second)
	}
}
