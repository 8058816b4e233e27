package ui

import (
	"bytes"
	"embed"
	"fmt"
	"image"

	"github.com/calixto/fence/internal/board"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// allPieces lists every piece code that has a sprite.
var allPieces = []board.Piece{
	board.WhitePawn, board.WhiteKnight, board.WhiteKing,
	board.WhiteBishop, board.WhiteRook, board.WhiteQueen,
	board.BlackPawn, board.BlackKnight, board.BlackKing,
	board.BlackBishop, board.BlackRook, board.BlackQueen,
}

// sprites holds the piece images, rasterized once from the embedded
// SVG assets at the board's square size.
type sprites struct {
	images map[board.Piece]*ebiten.Image
	size   int
}

// newSprites rasterizes all twelve piece sprites at the given size.
func newSprites(size int) (*sprites, error) {
	s := &sprites{
		images: make(map[board.Piece]*ebiten.Image, len(allPieces)),
		size:   size,
	}
	for _, p := range allPieces {
		img, err := rasterizeSprite(spritePath(p), size)
		if err != nil {
			return nil, err
		}
		s.images[p] = img
	}
	return s, nil
}

// spritePath derives the asset name from the piece code: a color
// prefix and the piece letter, e.g. "wQ" or "bN".
func spritePath(p board.Piece) string {
	prefix := "w"
	if p.Color() == board.Black {
		prefix = "b"
	}
	letter := p.Char() &^ 0x20 // uppercase either way.
	return fmt.Sprintf("assets/pieces/%s%c.svg", prefix, letter)
}

// rasterizeSprite renders one embedded SVG into a square image.
func rasterizeSprite(path string, size int) (*ebiten.Image, error) {
	data, err := pieceAssets.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("piece asset %s: %w", path, err)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("piece asset %s: %w", path, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)

	return ebiten.NewImageFromImage(rgba), nil
}

// draw places a piece sprite with its top-left corner at (x, y).
func (s *sprites) draw(screen *ebiten.Image, p board.Piece, x, y int) {
	img := s.images[p]
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}
