// Package engine implements game-tree search for FENCE chess.
package engine

import (
	"github.com/calixto/fence/internal/board"
)

// Score bounds. Wins and losses are scored from the root player's
// point of view; leaf estimates from the material evaluator stay
// strictly inside the win/loss bounds so that a forced result always
// dominates an estimate.
const (
	ScoreWin  = 100
	ScoreLoss = -100
	ScoreDraw = 0
)

// Options configures a search.
type Options struct {
	// Depth is the maximum search depth in ply.
	Depth int

	// ShortestLine makes the search prefer the shortest line among
	// equal-scoring ones. It disables the early exit on a found win,
	// so searches run longer but mating lines come out minimal.
	ShortestLine bool

	// History carries counts of boards seen before the root position,
	// for threefold-repetition detection. May be nil.
	History map[uint64]int
}

// Result is the outcome of a search: the score the root player can
// force and the principal variation that reaches it.
type Result struct {
	Score int
	PV    []board.Move
}

// Engine searches FENCE positions. It holds only the attack table, so
// a single Engine may serve any number of sequential searches.
type Engine struct {
	tbl board.AttackTable
}

// New creates an engine using the given attack table.
func New(tbl board.AttackTable) *Engine {
	return &Engine{tbl: tbl}
}

// Score searches the position to the given depth and returns the score
// for root together with the principal variation. root is normally
// pos.Active, but scoring a position for the player not to move is
// allowed.
func (e *Engine) Score(root board.Color, pos board.Position, opts Options) Result {
	seen := make(map[uint64]int, len(opts.History)+8)
	for b, n := range opts.History {
		seen[b] = n
	}

	score, pv := e.search(searchState{
		root:     root,
		maxDepth: opts.Depth,
		shortest: opts.ShortestLine,
	}, pos, ScoreLoss-1, ScoreWin+1, 0, nil, seen)

	return Result{Score: score, PV: pv}
}

// Classify reports the terminal state of a position using the engine's
// attack table.
func (e *Engine) Classify(pos board.Position) board.Outcome {
	return board.Classify(e.tbl, pos)
}

// Moves returns the legal moves in a position using the engine's
// attack table.
func (e *Engine) Moves(pos board.Position) []board.Move {
	return board.Moves(e.tbl, pos.Board, pos.Active)
}
