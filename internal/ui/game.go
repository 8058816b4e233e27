// Package ui implements the FENCE chess GUI using Ebitengine.
package ui

import (
	"fmt"
	"log"

	"github.com/calixto/fence/internal/board"
	"github.com/calixto/fence/internal/engine"
	"github.com/calixto/fence/internal/storage"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// UI Constants
const (
	SquareSize   = 72
	BoardMargin  = 16
	BoardY       = 64
	ScreenWidth  = board.BoardSize*SquareSize + 2*BoardMargin
	ScreenHeight = 224
)

// Game implements ebiten.Game interface.
type Game struct {
	// Core game state
	position    board.Position
	history     map[uint64]int
	moveHistory []board.Move
	lastMove    board.Move
	hasLastMove bool

	// UI state
	selectedSquare board.Square
	legalMoves     []board.Move

	// Game settings
	depth       int
	shortest    bool
	playerColor board.Color

	// Storage
	store *storage.Store

	// Components
	renderer *Renderer

	// AI engine
	tbl        board.AttackTable
	engine     *engine.Engine
	aiThinking bool
	aiMove     chan board.Move

	// Game state
	gameOver   bool
	gameResult string
	recorded   bool
}

// NewGame creates a new FENCE chess game.
func NewGame() (*Game, error) {
	renderer, err := NewRenderer(SquareSize, BoardMargin, BoardY)
	if err != nil {
		return nil, err
	}

	g := &Game{
		position:       board.NewPosition(),
		history:        make(map[uint64]int),
		selectedSquare: board.NoSquare,
		renderer:       renderer,
		tbl:            board.RayAttacks{},
		engine:         engine.New(board.RayAttacks{}),
		aiMove:         make(chan board.Move, 1),
	}

	g.store, err = storage.Open()
	if err != nil {
		log.Printf("Warning: Failed to open storage: %v", err)
	}
	g.loadPreferences()

	g.legalMoves = g.engine.Moves(g.position)
	return g, nil
}

// loadPreferences applies the stored play settings.
func (g *Game) loadPreferences() {
	prefs := storage.DefaultPreferences()
	if g.store != nil {
		loaded, err := g.store.Preferences()
		if err != nil {
			log.Printf("Warning: Failed to load preferences: %v", err)
		} else {
			prefs = loaded
		}
	}

	g.depth = prefs.Depth
	g.shortest = prefs.ShortestLine
	g.playerColor = board.White
	if prefs.HumanColor == "b" {
		g.playerColor = board.Black
	}
}

// Update advances the game state by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
		return nil
	}

	if g.gameOver {
		return nil
	}

	// Collect a finished AI search.
	select {
	case m := <-g.aiMove:
		g.aiThinking = false
		g.playMove(m)
	default:
	}

	if g.position.Active != g.playerColor {
		if !g.aiThinking {
			g.aiThinking = true
			go g.runAI(g.position, g.historySnapshot())
		}
		return nil
	}

	g.handleClick()
	return nil
}

// runAI searches the position and posts the chosen move.
func (g *Game) runAI(pos board.Position, history map[uint64]int) {
	res := g.engine.Score(pos.Active, pos, engine.Options{
		Depth:        g.depth,
		ShortestLine: g.shortest,
		History:      history,
	})
	if len(res.PV) == 0 {
		// No move means the game is already over; playMove marked it
		// finished when the last move was played.
		return
	}
	g.aiMove <- res.PV[0]
}

// handleClick processes human move input.
func (g *Game) handleClick() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	sq := g.renderer.ScreenToSquare(ebiten.CursorPosition())
	if sq == board.NoSquare {
		g.selectedSquare = board.NoSquare
		return
	}

	if g.selectedSquare != board.NoSquare {
		move := board.NewMove(g.selectedSquare, sq)
		for _, m := range g.legalMoves {
			if m == move {
				g.selectedSquare = board.NoSquare
				g.playMove(move)
				return
			}
		}
	}

	// Select one of the mover's pieces.
	if board.NibbleAt(g.position.Board, sq).Belongs(g.position.Active) {
		g.selectedSquare = sq
	} else {
		g.selectedSquare = board.NoSquare
	}
}

// playMove applies a legal move and updates the game state.
func (g *Game) playMove(m board.Move) {
	g.history[g.position.Board]++
	g.position = g.position.Apply(m)
	g.moveHistory = append(g.moveHistory, m)
	g.lastMove = m
	g.hasLastMove = true
	g.legalMoves = g.engine.Moves(g.position)

	outcome := g.engine.Classify(g.position)
	switch {
	case outcome.Over():
		g.finish(outcome.String(), outcome, false)
	case g.history[g.position.Board] >= 3:
		g.finish("draw, threefold repetition", board.InProgress, true)
	}
}

// finish ends the game and records it in the ledger.
func (g *Game) finish(result string, outcome board.Outcome, repetition bool) {
	g.gameOver = true
	g.gameResult = result

	if g.store == nil || g.recorded {
		return
	}
	g.recorded = true

	rec := storage.GameRecord{
		Outcome:    int(outcome),
		Plies:      len(g.moveHistory),
		Depth:      g.depth,
		Repetition: repetition,
	}
	if winner, decisive := outcome.Winner(); decisive {
		rec.Winner = "w"
		if winner == board.Black {
			rec.Winner = "b"
		}
	}
	if err := g.store.RecordGame(rec); err != nil {
		log.Printf("Warning: Failed to record game: %v", err)
	}
}

// restart begins a fresh game.
func (g *Game) restart() {
	g.position = board.NewPosition()
	g.history = make(map[uint64]int)
	g.moveHistory = nil
	g.hasLastMove = false
	g.selectedSquare = board.NoSquare
	g.legalMoves = g.engine.Moves(g.position)
	g.gameOver = false
	g.gameResult = ""
	g.recorded = false

	// Drop a stale AI answer from the previous game.
	select {
	case <-g.aiMove:
	default:
	}
	g.aiThinking = false
}

// historySnapshot copies the repetition history for the AI goroutine.
func (g *Game) historySnapshot() map[uint64]int {
	snapshot := make(map[uint64]int, len(g.history))
	for b, n := range g.history {
		snapshot[b] = n
	}
	return snapshot
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.Theme().Background)

	g.renderer.DrawBoard(screen)
	g.renderer.DrawHighlights(screen, g.selectedSquare, g.legalMoves, g.lastMove, g.hasLastMove)

	if board.InCheck(g.tbl, g.position.Board, g.position.Active) {
		g.renderer.DrawCheck(screen, board.FindNibble(g.position.Board, board.King(g.position.Active)))
	}

	g.renderer.DrawPieces(screen, g.position.Board)
	g.drawStatus(screen)
}

// drawStatus renders the title and status lines.
func (g *Game) drawStatus(screen *ebiten.Image) {
	g.drawText(screen, "FENCE", boldFace(), BoardMargin, 18)

	status := fmt.Sprintf("%v to move", g.position.Active)
	switch {
	case g.gameOver:
		status = g.gameResult + "  (R to restart)"
	case g.aiThinking:
		status = "thinking..."
	}
	g.drawText(screen, status, regularFace(), BoardMargin, BoardY+SquareSize+24)

	g.drawText(screen, g.position.String(), regularFace(), BoardMargin, BoardY+SquareSize+48)
}

// drawText draws a single line of text at the given position.
func (g *Game) drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y int) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(g.renderer.Theme().TextColor)
	text.Draw(screen, s, face, op)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close releases resources held by the game.
func (g *Game) Close() {
	if g.store != nil {
		g.store.Close()
	}
}
