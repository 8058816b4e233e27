package board

import (
	"fmt"
	"strings"
)

// Move encodes a move in a single byte: the high nibble is the source
// square and the low nibble is the destination. There is no special
// encoding for captures.
type Move uint8

// NewMove creates a move from source and destination squares.
func NewMove(from, to Square) Move {
	return Move(from)<<4 | Move(to)
}

// From returns the source square.
func (m Move) From() Square {
	return Square(m >> 4)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m & 0xF)
}

// String returns the move in "from-to" form, e.g. "5-7".
func (m Move) String() string {
	return m.From().String() + "-" + m.To().String()
}

// ParseMove parses a move in "from-to" form.
func ParseMove(s string) (Move, error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return 0, fmt.Errorf("invalid move: %s", s)
	}
	fromSq, err := ParseSquare(from)
	if err != nil {
		return 0, fmt.Errorf("invalid move %s: %w", s, err)
	}
	toSq, err := ParseSquare(to)
	if err != nil {
		return 0, fmt.Errorf("invalid move %s: %w", s, err)
	}
	return NewMove(fromSq, toSq), nil
}

// FormatMoves renders a move list as space-separated "from-to" pairs.
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
