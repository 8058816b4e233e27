package engine

import (
	"maps"
	"slices"

	"github.com/calixto/fence/internal/board"
)

// searchState holds the parameters that stay fixed for a whole search.
type searchState struct {
	root     board.Color
	maxDepth int
	shortest bool
}

// search is depth-limited minimax with alpha-beta pruning. It returns
// the best score the root player can force from pos and the move list
// from the root to the position that realizes it.
//
// The side to move maximizes when it is the root player and minimizes
// otherwise. The repetition counter and the line so far are threaded
// through by copy: every child frame gets its own map and slice, so
// sibling branches never observe each other's history.
func (e *Engine) search(st searchState, pos board.Position, alpha, beta, depth int, line []board.Move, seen map[uint64]int) (int, []board.Move) {
	// Threefold repetition is a draw the moment it is observed.
	if seen[pos.Board] >= 3 {
		return ScoreDraw, line
	}

	// Checkmates and the one-position draws end the search here.
	if score, over := e.outcomeScore(st.root, pos); over {
		return score, line
	}

	// At the horizon, fall back to the material estimate.
	if depth == st.maxDepth {
		return Material(st.root, pos.Board), line
	}

	moves := board.Moves(e.tbl, pos.Board, pos.Active)
	maximizing := pos.Active == st.root

	bestScore := ScoreWin + 1
	if maximizing {
		bestScore = ScoreLoss - 1
	}
	var bestLine []board.Move

	for _, m := range moves {
		next := pos.Apply(m)

		nextLine := append(slices.Clone(line), m)
		nextSeen := maps.Clone(seen)
		nextSeen[pos.Board]++

		score, predicted := e.search(st, next, alpha, beta, depth+1, nextLine, nextSeen)

		if maximizing {
			if score > bestScore || (st.shortest && score == bestScore && len(predicted) < len(bestLine)) {
				bestScore = score
				bestLine = predicted
			}
			if bestScore >= beta && (!st.shortest || len(predicted) >= len(bestLine)) {
				break
			}
			alpha = max(alpha, bestScore)
			if !st.shortest && bestScore == ScoreWin {
				return bestScore, bestLine
			}
		} else {
			if score < bestScore || (st.shortest && score == bestScore && len(predicted) < len(bestLine)) {
				bestScore = score
				bestLine = predicted
			}
			if bestScore <= alpha && (!st.shortest || len(predicted) >= len(bestLine)) {
				break
			}
			beta = min(beta, bestScore)
			if !st.shortest && bestScore == ScoreLoss {
				return bestScore, bestLine
			}
		}
	}

	return bestScore, bestLine
}

// outcomeScore translates a terminal classification into a score for
// the root player. The second return value is false while the game is
// still in progress.
func (e *Engine) outcomeScore(root board.Color, pos board.Position) (int, bool) {
	switch board.Classify(e.tbl, pos) {
	case board.InProgress:
		return 0, false
	case board.WhiteWins:
		if root == board.White {
			return ScoreWin, true
		}
		return ScoreLoss, true
	case board.BlackWins:
		if root == board.Black {
			return ScoreWin, true
		}
		return ScoreLoss, true
	default:
		return ScoreDraw, true
	}
}
