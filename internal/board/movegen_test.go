package board

import (
	"bytes"
	"testing"
)

func mustParse(t *testing.T, record string) Position {
	t.Helper()
	pos, err := ParseFENCE(record)
	if err != nil {
		t.Fatalf("ParseFENCE(%q): %v", record, err)
	}
	return pos
}

func TestMovesStartPosition(t *testing.T) {
	var rays RayAttacks
	moves := Moves(rays, StartBoard, White)

	// Only the knight and the pawn can move; everything else is boxed
	// in. Generator order is part of the contract (it shows through
	// in principal variations).
	want := []Move{NewMove(5, 7), NewMove(5, 6), NewMove(4, 7), NewMove(4, 6)}
	if len(moves) != len(want) {
		t.Fatalf("start position has %d moves (%s), want %d", len(moves), FormatMoves(moves), len(want))
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("move %d = %s, want %s", i, moves[i], want[i])
		}
	}

	// Black's opening moves mirror white's.
	black := Moves(rays, StartBoard, Black)
	wantBlack := []Move{NewMove(11, 9), NewMove(11, 8), NewMove(10, 9), NewMove(10, 8)}
	if FormatMoves(black) != FormatMoves(wantBlack) {
		t.Errorf("black moves = %s, want %s", FormatMoves(black), FormatMoves(wantBlack))
	}
}

func TestPawnDoubleStep(t *testing.T) {
	var rays RayAttacks

	tests := []struct {
		placement string
		player    Color
		move      Move
		want      bool
	}{
		// Start squares with a clear path.
		{"K....P.........k", White, NewMove(5, 7), true},
		{"K.........p....k", Black, NewMove(10, 8), true},
		// Path blocked one or two squares ahead.
		{"K....Pn........k", White, NewMove(5, 7), false},
		{"K....P.n.......k", White, NewMove(5, 7), false},
		{"K.......N.p....k", Black, NewMove(10, 8), false},
		// Not on the start square.
		{"K.....P........k", White, NewMove(6, 8), false},
	}

	for _, tc := range tests {
		board, err := ParsePlacement(tc.placement)
		if err != nil {
			t.Fatal(err)
		}
		moves := Moves(rays, board, tc.player)
		found := false
		for _, m := range moves {
			if m == tc.move {
				found = true
			}
		}
		if found != tc.want {
			t.Errorf("%q: double step %s in %s = %v, want %v", tc.placement, tc.move, FormatMoves(moves), found, tc.want)
		}
	}
}

func TestPawnPushAndCapture(t *testing.T) {
	var rays RayAttacks

	// A pawn's forward square doubles as its capture square: it may
	// advance onto an empty square or take an enemy piece there, but
	// never its own.
	board, err := ParsePlacement("K.....Pn.......k")
	if err != nil {
		t.Fatal(err)
	}
	moves := Moves(rays, board, White)
	if !containsMove(moves, NewMove(6, 7)) {
		t.Errorf("pawn cannot capture the knight ahead: %s", FormatMoves(moves))
	}

	board, err = ParsePlacement("K.....PN.......k")
	if err != nil {
		t.Fatal(err)
	}
	moves = Moves(rays, board, White)
	if containsMove(moves, NewMove(6, 7)) {
		t.Errorf("pawn may move onto its own knight: %s", FormatMoves(moves))
	}
}

func TestMovesFilterCheck(t *testing.T) {
	var rays RayAttacks

	// The king may not step into the rook's line, and the rook covers
	// the only square it could reach.
	board, err := ParsePlacement("K.r............k")
	if err != nil {
		t.Fatal(err)
	}
	if moves := Moves(rays, board, White); len(moves) != 0 {
		t.Errorf("white has moves %s, want none", FormatMoves(moves))
	}

	// A pinned queen may still slide along the pin line.
	board, err = ParsePlacement("KQ....r........k")
	if err != nil {
		t.Fatal(err)
	}
	moves := Moves(rays, board, White)
	for _, m := range moves {
		if m.From() == 1 && m.To() > 6 {
			t.Errorf("queen left the pin line with %s", m)
		}
	}
	if !containsMove(moves, NewMove(1, 6)) {
		t.Errorf("queen cannot capture the pinning rook: %s", FormatMoves(moves))
	}
}

// TestMoveSoundness checks the legal-move invariant: applying any
// generated move never leaves the mover in check.
func TestMoveSoundness(t *testing.T) {
	var rays RayAttacks

	placements := []string{
		"KQRBNP....pnbrqk",
		"K.qr........RQ.k",
		"......Kp.......k",
		"..KpQnRbBrNqP..k",
		"K....n.........k",
		"KQRB..NP.p.nbrqk",
	}

	for _, placement := range placements {
		board, err := ParsePlacement(placement)
		if err != nil {
			t.Fatal(err)
		}
		for _, player := range []Color{White, Black} {
			for _, m := range Moves(rays, board, player) {
				if InCheck(rays, ApplyToBoard(board, m), player) {
					t.Errorf("%q: move %s leaves %v in check", placement, m, player)
				}
			}
		}
	}
}

func TestApplyToBoard(t *testing.T) {
	board := ApplyToBoard(StartBoard, NewMove(4, 6))
	if got := NibbleAt(board, 6); got != WhiteKnight {
		t.Errorf("destination = %v, want knight", got)
	}
	if got := NibbleAt(board, 4); got != Empty {
		t.Errorf("source = %v, want empty", got)
	}
}

func TestApply(t *testing.T) {
	pos := mustParse(t, "K..R.......r...k w 3 7")

	// Quiet rook move: halfmove ticks, fullmove waits for black.
	next := pos.Apply(NewMove(3, 5))
	if got := next.String(); got != "K....R.....r...k b 4 7" {
		t.Errorf("after quiet move: %s", got)
	}

	// Black captures: halfmove resets, fullmove increments.
	next = next.Apply(NewMove(11, 5))
	if got := next.String(); got != "K....r.........k w 0 8" {
		t.Errorf("after capture: %s", got)
	}

	// Pawn moves also reset the halfmove clock.
	pos = mustParse(t, "K....P.........k w 12 30")
	next = pos.Apply(NewMove(5, 6))
	if got := next.String(); got != "K.....P........k b 0 30" {
		t.Errorf("after pawn push: %s", got)
	}
}

func TestPlayback(t *testing.T) {
	var buf bytes.Buffer
	pos := mustParse(t, StartFENCE)
	Playback(&buf, pos, []Move{NewMove(5, 7), NewMove(10, 8)})

	want := "0123456789012345\n" +
		"KQRBNP....pnbrqk w 0 1\n" +
		"KQRBN..P..pnbrqk b 0 1  after 5-7\n" +
		"KQRBN..Pp..nbrqk w 0 2  after 10-8\n"
	if got := buf.String(); got != want {
		t.Errorf("playback = %q, want %q", got, want)
	}
}

func containsMove(moves []Move, m Move) bool {
	for _, have := range moves {
		if have == m {
			return true
		}
	}
	return false
}
