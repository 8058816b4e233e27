// Package tablebase generates endgame tablebase candidates: every
// placement of a small piece set that ends the game at once.
package tablebase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/calixto/fence/internal/board"
)

// Entry is one candidate endgame position together with its
// classification.
type Entry struct {
	Record  string
	Outcome board.Outcome
}

// Filter selects which terminal positions Generate keeps.
type Filter struct {
	Checkmates bool
	Stalemates bool
}

// Generate enumerates every board holding both kings plus the extra
// pieces (given as FENCE characters, e.g. "qP"), and returns the
// placements that are checkmate or stalemate with either side to move.
//
// Placements that cannot arise from play are skipped: adjacent kings,
// pawns behind their start squares, pawns past the enemy king, and
// boards with both sides in check at once.
func Generate(tbl board.AttackTable, extra string, f Filter) ([]Entry, error) {
	pieces := []byte{'K', 'k'}
	for i := 0; i < len(extra); i++ {
		c := extra[i]
		if p, ok := board.PieceFromChar(c); !ok || p == board.Empty || p.IsKing() {
			return nil, fmt.Errorf("invalid extra piece: %c", c)
		}
		pieces = append(pieces, c)
	}
	if len(pieces) > board.BoardSize {
		return nil, fmt.Errorf("too many pieces: %d", len(pieces))
	}
	for len(pieces) < board.BoardSize {
		pieces = append(pieces, '.')
	}

	var entries []Entry
	err := uniquePermutations(pieces, func(placement []byte) error {
		if !plausible(placement) {
			return nil
		}

		b, err := board.ParsePlacement(string(placement))
		if err != nil {
			return err
		}

		// Simultaneous check cannot come out of a legal game.
		if board.InCheck(tbl, b, board.White) && board.InCheck(tbl, b, board.Black) {
			return nil
		}

		for _, active := range []board.Color{board.White, board.Black} {
			pos := board.Position{Board: b, Active: active, FullMove: 1}
			outcome := board.Classify(tbl, pos)
			keep := (f.Checkmates && isMate(outcome)) ||
				(f.Stalemates && outcome == board.Stalemate)
			if keep {
				entries = append(entries, Entry{Record: pos.String(), Outcome: outcome})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func isMate(o board.Outcome) bool {
	_, ok := o.Winner()
	return ok
}

// plausible applies the cheap position-legality heuristics that need
// no attack table.
func plausible(placement []byte) bool {
	whiteKing := strings.IndexByte(string(placement), 'K')
	blackKing := strings.IndexByte(string(placement), 'k')

	// Kings can't be adjacent.
	if abs(whiteKing-blackKing) == 1 {
		return false
	}

	// Pawns can't move backwards, and can't get past the opponent
	// king.
	if p := strings.IndexByte(string(placement), 'P'); p >= 0 {
		if board.Square(p) < board.PawnStartWhite || p > blackKing {
			return false
		}
	}
	if p := strings.IndexByte(string(placement), 'p'); p >= 0 {
		if board.Square(p) > board.PawnStartBlack || p < whiteKing {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// uniquePermutations visits every distinct permutation of seq exactly
// once, in lexicographic order. This is Knuth's Algorithm L (the
// next_permutation of C++): find the rightmost ascent, swap its head
// with the smallest larger element to its right, and reverse the tail.
// Duplicate elements never produce duplicate permutations.
func uniquePermutations(seq []byte, visit func([]byte) error) error {
	sort.Slice(seq, func(i, j int) bool { return seq[i] < seq[j] })

	for {
		if err := visit(seq); err != nil {
			return err
		}

		// Rightmost k with seq[k] < seq[k+1]; none means seq is
		// weakly decreasing and we have visited everything.
		k := len(seq) - 2
		for k >= 0 && seq[k] >= seq[k+1] {
			k--
		}
		if k < 0 {
			return nil
		}

		// Rightmost i with seq[k] < seq[i].
		i := len(seq) - 1
		for seq[k] >= seq[i] {
			i--
		}
		seq[k], seq[i] = seq[i], seq[k]

		// Reverse the tail after k.
		for l, r := k+1, len(seq)-1; l < r; l, r = l+1, r-1 {
			seq[l], seq[r] = seq[r], seq[l]
		}
	}
}
