package board

// Moves returns all legal moves for the given player.
//
// For every piece of the player, the attack table supplies the
// pseudo-legal destinations for the current occupancy; squares held by
// the player's own pieces are masked off, which also turns the pawn's
// forward attack into "push if empty, capture if enemy". The pawn
// double-step is the one rule the table cannot express, since it
// depends on two squares being empty, and is patched in here. Each
// candidate is then tried on the board and kept only if the mover is
// not left in check.
//
// Move order is fixed: source squares from 15 down to 0, destinations
// from 15 down to 0. The search preserves this order, so it is
// observable in principal variations.
func Moves(tbl AttackTable, board uint64, c Color) []Move {
	occupancy := Occupancy(board)
	own := PlayerOccupancy(board, c)

	var moves []Move
	for from := Square(BoardSize - 1); from >= 0; from-- {
		p := NibbleAt(board, from)
		if !p.Belongs(c) {
			continue
		}

		destinations := tbl.Attacks(p, from, occupancy) &^ own

		// Pawn double-step from the start square, if both squares
		// ahead are empty.
		if p == WhitePawn && from == PawnStartWhite && occupancy>>8&3 == 0 {
			destinations |= Square(7).Bit()
		} else if p == BlackPawn && from == PawnStartBlack && occupancy>>6&3 == 0 {
			destinations |= Square(8).Bit()
		}

		for to := Square(BoardSize - 1); to >= 0; to-- {
			if destinations&to.Bit() == 0 {
				continue
			}
			m := NewMove(from, to)
			if !InCheck(tbl, ApplyToBoard(board, m), c) {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// HasMoves reports whether the given player has at least one legal move.
func HasMoves(tbl AttackTable, board uint64, c Color) bool {
	return len(Moves(tbl, board, c)) > 0
}

// ApplyToBoard applies a move to the board alone: the source nibble is
// copied to the destination and the source square is cleared. The move
// is assumed to be valid.
func ApplyToBoard(board uint64, m Move) uint64 {
	moved := NibbleAt(board, m.From())
	return WithNibble(BlankNibble(board, m.From()), m.To(), moved)
}

// Apply returns the position after the move. The halfmove clock resets
// on pawn moves and captures, the fullmove number increments after
// black moves, and the active color toggles. The move is assumed to be
// legal.
func (p Position) Apply(m Move) Position {
	moved := NibbleAt(p.Board, m.From())
	captured := NibbleAt(p.Board, m.To())

	next := p
	next.Board = ApplyToBoard(p.Board, m)

	if moved.IsPawn() || captured != Empty {
		next.HalfMove = 0
	} else {
		next.HalfMove++
	}
	if p.Active == Black {
		next.FullMove++
	}
	next.Active = p.Active.Other()
	return next
}
