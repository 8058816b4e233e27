package board

import (
	"fmt"
	"io"
)

// Playback writes a move-by-move replay of a line from the given
// position, one FENCE record per move. The header row of square
// indices makes the from-to numbers easy to follow by eye.
func Playback(w io.Writer, p Position, moves []Move) {
	fmt.Fprintln(w, "0123456789012345")
	fmt.Fprintln(w, p)
	for _, m := range moves {
		p = p.Apply(m)
		fmt.Fprintf(w, "%s  after %s\n", p, m)
	}
}
