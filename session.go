package photobooth

import (
	"fmt"

	"github.com/google/uuid"
)

// Session is the capture configuration of one photobooth run. It is
// immutable; starting a new run replaces it.
type Session struct {
	ID         string
	PhotoCount int
	Columns    int
	Rows       int
	CellWidth  int
	CellHeight int
}

// NewSession validates photoCount and derives the grid. Four photos use a
// 2x2 grid, two photos a single column of two rows.
func NewSession(photoCount int) (Session, error) {
	if photoCount != 2 && photoCount != 4 {
		return Session{}, fmt.Errorf("start session with %d photos: %w", photoCount, ErrInvalidPhotoCount)
	}
	cols := 1
	if photoCount == 4 {
		cols = 2
	}
	return Session{
		ID:         uuid.NewString(),
		PhotoCount: photoCount,
		Columns:    cols,
		Rows:       2,
		CellWidth:  CellWidth,
		CellHeight: CellHeight,
	}, nil
}

// Width returns the canvas width in pixels.
func (s Session) Width() int { return s.Columns * s.CellWidth }

// Height returns the canvas height in pixels.
func (s Session) Height() int { return s.Rows * s.CellHeight }

// Cell returns the grid column and row of slot index.
func (s Session) Cell(index int) (col, row int) {
	if s.Columns == 0 {
		return 0, 0
	}
	return index % s.Columns, index / s.Columns
}

// SlotRect returns the pixel placement of slot index.
func (s Session) SlotRect(index int) Rect {
	col, row := s.Cell(index)
	return Rect{
		X:      float64(col * s.CellWidth),
		Y:      float64(row * s.CellHeight),
		Width:  float64(s.CellWidth),
		Height: float64(s.CellHeight),
	}
}
