package board

// Game limits enforced by Classify. Unlike the official rules of
// chess, the fifty-move rule is automatically a draw, and the game is
// also a draw at 150 fullmoves.
const (
	FullMoveCap   = 150
	HalfMoveLimit = 100
)

// Outcome classifies a position. The integer values are part of the
// wire contract and follow a small bit layout: the high bit flags a
// checkmate, the next bit a draw, and the low bits the reasoning.
type Outcome int

const (
	InProgress       Outcome = 0
	DrawMoveCap      Outcome = 4
	Stalemate        Outcome = 5
	DrawFiftyMove    Outcome = 6
	DrawInsufficient Outcome = 7
	BlackWins        Outcome = 8
	WhiteWins        Outcome = 9
)

// Over reports whether the game has ended.
func (o Outcome) Over() bool {
	return o != InProgress
}

// Winner returns the winning color for a decisive outcome. The second
// return value is false for draws and games in progress.
func (o Outcome) Winner() (Color, bool) {
	switch o {
	case WhiteWins:
		return White, true
	case BlackWins:
		return Black, true
	}
	return White, false
}

// String returns a short description of the outcome.
func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case DrawMoveCap:
		return "draw, 150-fullmove cap"
	case Stalemate:
		return "draw, stalemate"
	case DrawFiftyMove:
		return "draw, 50-move rule"
	case DrawInsufficient:
		return "draw, insufficient material"
	case BlackWins:
		return "black wins"
	case WhiteWins:
		return "white wins"
	default:
		return "unknown"
	}
}

// Classify determines whether the position ends the game.
//
// For checkmate, only the player to move is examined. The position is
// assumed to come from an actual game: both players cannot
// be in checkmate at once, because the previous turn would have ended
// the game first.
//
// Threefold repetition cannot be detected from a single position; the
// search tracks it separately.
func Classify(tbl AttackTable, p Position) Outcome {
	if p.FullMove >= FullMoveCap {
		return DrawMoveCap
	}
	if !HasMoves(tbl, p.Board, p.Active) {
		if InCheck(tbl, p.Board, p.Active) {
			if p.Active == White {
				return BlackWins
			}
			return WhiteWins
		}
		return Stalemate
	}
	if p.HalfMove >= HalfMoveLimit {
		return DrawFiftyMove
	}
	if InsufficientMaterial(PieceSet(p.Board)) {
		return DrawInsufficient
	}
	return InProgress
}
