package engine

import "github.com/calixto/fence/internal/board"

// materialValues holds piece values in pawn-knight-bishop-rook-queen-
// king order, matching the bit layout of the piece-set bitmap. The
// values are the regular chess ones; the king's keeps a lost king
// dominant over everything else.
var materialValues = [6]int{1, 3, 3, 5, 9, 100}

// Material estimates a board for the given player by material count.
// With at most one of each piece per side, the piece-set bitmap is the
// whole material story; no per-square scan is needed.
func Material(root board.Color, b uint64) int {
	set := board.PieceSet(b)

	// Black pieces occupy the low six bits, white the high six.
	var score int
	for i, v := range materialValues {
		score -= int(set>>i&1) * v
		score += int(set>>(i+6)&1) * v
	}

	if root == board.Black {
		score = -score
	}
	return score
}
