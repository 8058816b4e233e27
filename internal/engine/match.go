package engine

import "github.com/calixto/fence/internal/board"

// GameRecord is the trace of one self-play game.
type GameRecord struct {
	Outcome    board.Outcome
	Moves      []board.Move
	Final      board.Position
	Repetition bool // drawn by threefold repetition rather than Outcome.
}

// MatchOptions configures self-play.
type MatchOptions struct {
	WhiteDepth   int
	BlackDepth   int
	ShortestLine bool
}

// PlayGame plays the engine against itself from the starting position
// until the game ends. Both sides search with their own depth;
// repetition history accumulates across the whole game, and arriving
// at a board that has already occurred three times ends it as a draw.
func (e *Engine) PlayGame(opts MatchOptions) GameRecord {
	pos := board.NewPosition()
	history := make(map[uint64]int)
	var moves []board.Move

	for {
		if outcome := board.Classify(e.tbl, pos); outcome.Over() {
			return GameRecord{Outcome: outcome, Moves: moves, Final: pos}
		}
		if history[pos.Board] >= 3 {
			return GameRecord{Outcome: board.InProgress, Moves: moves, Final: pos, Repetition: true}
		}

		depth := opts.WhiteDepth
		if pos.Active == board.Black {
			depth = opts.BlackDepth
		}

		res := e.Score(pos.Active, pos, Options{
			Depth:        depth,
			ShortestLine: opts.ShortestLine,
			History:      history,
		})
		if len(res.PV) == 0 {
			// Classify said the game is on, so there is always a move.
			return GameRecord{Outcome: board.Classify(e.tbl, pos), Moves: moves, Final: pos}
		}

		history[pos.Board]++
		pos = pos.Apply(res.PV[0])
		moves = append(moves, res.PV[0])
	}
}
