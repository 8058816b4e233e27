package engine

import "github.com/calixto/fence/internal/board"

// Explore enumerates the game tree breadth-first from the starting
// position and returns the number of distinct boards first reached at
// each ply, up to maxPly entries. Boards are deduplicated per side to
// move: the same arrangement with the other player on turn is a
// different node.
//
// The enumeration stops early when a frontier empties out.
func (e *Engine) Explore(maxPly int) []int {
	seen := [2]map[uint64]bool{
		board.White: {},
		board.Black: {},
	}

	frontier := map[uint64]bool{board.StartBoard: true}
	active := board.White

	var counts []int
	for ply := 0; ply < maxPly && len(frontier) > 0; ply++ {
		for b := range frontier {
			seen[active][b] = true
		}

		next := make(map[uint64]bool)
		opponent := active.Other()
		for b := range frontier {
			for _, m := range board.Moves(e.tbl, b, active) {
				nb := board.ApplyToBoard(b, m)
				if !seen[opponent][nb] {
					next[nb] = true
				}
			}
		}

		frontier = next
		active = opponent
		counts = append(counts, len(frontier))
	}
	return counts
}
