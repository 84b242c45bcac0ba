package photobooth

import (
	"fmt"
	"image"
	"image/color"
	"os"
)

// FrameSource supplies the current live camera frame. Frames may be any
// resolution; capture scales them into one cell.
type FrameSource interface {
	Frame() (image.Image, error)
}

// SoundCue is played once per capture. Failures are the cue's own concern.
type SoundCue interface {
	Play()
}

// ImageSource returns the same still image for every frame.
type ImageSource struct {
	Img image.Image
}

// Frame implements FrameSource.
func (s ImageSource) Frame() (image.Image, error) {
	if s.Img == nil {
		return nil, fmt.Errorf("image source: no image")
	}
	return s.Img, nil
}

// LoadImageSource decodes the image at path into an ImageSource.
func LoadImageSource(path string) (ImageSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImageSource{}, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return ImageSource{}, fmt.Errorf("decode frame %s: %w", path, err)
	}
	return ImageSource{Img: img}, nil
}

// PatternSource generates a moving test card. Each call to Frame advances
// the pattern by one step.
type PatternSource struct {
	Width, Height int
	step          int
}

// NewPatternSource creates a test card of w x h pixels.
func NewPatternSource(w, h int) *PatternSource {
	return &PatternSource{Width: w, Height: h}
}

// Frame implements FrameSource.
func (p *PatternSource) Frame() (image.Image, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("pattern source: invalid size %dx%d", p.Width, p.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	shift := p.step * 8
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8((x + shift) * 255 / p.Width),
				G: uint8(y * 255 / p.Height),
				B: uint8(255 - x*255/p.Width),
				A: 0xFF,
			})
		}
	}
	p.step++
	return img, nil
}

// FailingSource reports Err for every frame. It stands in for a camera that
// was denied or unplugged.
type FailingSource struct {
	Err error
}

// Frame implements FrameSource.
func (s FailingSource) Frame() (image.Image, error) {
	return nil, s.Err
}
