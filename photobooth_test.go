package photobooth

import (
	"image"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 20, 30, true},
		{"top-left edge", 10, 20, true},
		{"bottom-right edge", 40, 60, true},
		{"left of", 9.9, 30, false},
		{"below", 20, 60.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	got := Rect{Width: 320, Height: 480}.Inset(10)
	want := Rect{X: 10, Y: 10, Width: 300, Height: 460}
	if got != want {
		t.Errorf("Inset = %+v, want %+v", got, want)
	}
	if out := (Rect{X: 10, Y: 10, Width: 20, Height: 20}).Inset(-5); out != (Rect{X: 5, Y: 5, Width: 30, Height: 30}) {
		t.Errorf("negative Inset = %+v", out)
	}
}

func TestRectImageRect(t *testing.T) {
	got := Rect{X: 5.5, Y: 7.2, Width: 64, Height: 31.6}.ImageRect()
	want := image.Rect(6, 7, 70, 39)
	if got != want {
		t.Errorf("ImageRect = %v, want %v", got, want)
	}
}
