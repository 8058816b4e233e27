package ui

import (
	"image/color"

	"github.com/calixto/fence/internal/board"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},  // Soft yellow-green
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
		Background:     color.RGBA{40, 44, 52, 255},    // Dark gray
		TextColor:      color.RGBA{220, 220, 220, 255}, // Light gray
	}
}

// Renderer draws the 1x16 strip board.
type Renderer struct {
	sprites    *sprites
	theme      *Theme
	squareSize int
	originX    int
	originY    int
}

// NewRenderer creates a new renderer with the board strip starting at
// the given origin.
func NewRenderer(squareSize, originX, originY int) (*Renderer, error) {
	sp, err := newSprites(squareSize)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		sprites:    sp,
		theme:      DefaultTheme(),
		squareSize: squareSize,
		originX:    originX,
		originY:    originY,
	}, nil
}

// DrawBoard draws the board squares.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	for s := board.Square(0); s < board.BoardSize; s++ {
		x, y := r.SquareToScreen(s)

		c := r.theme.LightSquare
		if s%2 == 1 {
			c = r.theme.DarkSquare
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(r.squareSize), float32(r.squareSize), c, false)
	}
}

// DrawHighlights draws selection, legal-move, and last-move highlights.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, legalMoves []board.Move, lastMove board.Move, haveLastMove bool) {
	if haveLastMove {
		r.highlightSquare(screen, lastMove.From(), r.theme.LastMoveColor)
		r.highlightSquare(screen, lastMove.To(), r.theme.LastMoveColor)
	}

	if selected != board.NoSquare {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
		for _, m := range legalMoves {
			if m.From() == selected {
				r.drawLegalMoveIndicator(screen, m.To())
			}
		}
	}
}

// DrawCheck highlights the king's square if in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	if kingSq != board.NoSquare {
		r.highlightSquare(screen, kingSq, r.theme.CheckColor)
	}
}

// highlightSquare draws a colored overlay on a square.
func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if !sq.Valid() {
		return
	}
	x, y := r.SquareToScreen(sq)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(r.squareSize), float32(r.squareSize), c, false)
}

// drawLegalMoveIndicator draws a circle on legal move squares.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square) {
	x, y := r.SquareToScreen(sq)
	cx := float32(x) + float32(r.squareSize)/2
	cy := float32(y) + float32(r.squareSize)/2
	radius := float32(r.squareSize) * 0.15

	vector.DrawFilledCircle(screen, cx, cy, radius, r.theme.LegalMoveColor, false)
}

// DrawPieces draws all pieces on the board.
func (r *Renderer) DrawPieces(screen *ebiten.Image, b uint64) {
	for s := board.Square(0); s < board.BoardSize; s++ {
		piece := board.NibbleAt(b, s)
		if piece == board.Empty {
			continue
		}
		x, y := r.SquareToScreen(s)
		r.sprites.draw(screen, piece, x, y)
	}
}

// SquareToScreen converts a board square to screen coordinates.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	return r.originX + int(sq)*r.squareSize, r.originY
}

// ScreenToSquare converts screen coordinates to a board square, or
// NoSquare when the point is off the strip.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if y < r.originY || y >= r.originY+r.squareSize {
		return board.NoSquare
	}
	if x < r.originX || x >= r.originX+board.BoardSize*r.squareSize {
		return board.NoSquare
	}
	return board.Square((x - r.originX) / r.squareSize)
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
