package uci

import (
	"strings"
	"testing"

	"github.com/calixto/fence/internal/board"
	"github.com/calixto/fence/internal/storage"
)

func runCommands(t *testing.T, commands string) []string {
	t.Helper()
	var out strings.Builder
	NewIO(board.RayAttacks{}, strings.NewReader(commands), &out).Run()
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestHandshake(t *testing.T) {
	lines := runCommands(t, "fence\nisready\nquit\n")
	want := []string{"id name Fence", "id author Calixto", "fenceok", "readyok"}
	if len(lines) != len(want) {
		t.Fatalf("output = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPositionAndDisplay(t *testing.T) {
	lines := runCommands(t, "position startpos moves 5-7 10-8\nd\nquit\n")
	if len(lines) != 2 {
		t.Fatalf("output = %q", lines)
	}
	if lines[1] != "KQRBN..Pp..nbrqk w 0 2" {
		t.Errorf("position after moves = %q", lines[1])
	}
}

func TestPositionRejectsIllegalMove(t *testing.T) {
	lines := runCommands(t, "position startpos moves 0-1\nquit\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "illegal move") {
		t.Errorf("output = %q, want an illegal-move notice", lines)
	}
}

func TestStatus(t *testing.T) {
	lines := runCommands(t, "position fence K.kn............ w 39 20\nstatus\nquit\n")
	if len(lines) != 1 || lines[0] != "status 8 black wins" {
		t.Errorf("output = %q, want status 8", lines)
	}
}

func TestGoReportsMate(t *testing.T) {
	lines := runCommands(t, "position fence K.kq............ b 0 1\ngo depth 4 shortest\nquit\n")
	if len(lines) != 3 {
		t.Fatalf("output = %q", lines)
	}
	if lines[0] != "score 100" {
		t.Errorf("score line = %q", lines[0])
	}
	if lines[1] != "pv 3-1" {
		t.Errorf("pv line = %q", lines[1])
	}
	if lines[2] != "bestmove 3-1" {
		t.Errorf("bestmove line = %q", lines[2])
	}
}

func TestGoOnFinishedGame(t *testing.T) {
	lines := runCommands(t, "position fence K..........N..Pk b 0 1\ngo depth 4\nquit\n")
	if len(lines) != 2 {
		t.Fatalf("output = %q", lines)
	}
	if lines[0] != "score -100" {
		t.Errorf("score line = %q", lines[0])
	}
	if lines[1] != "bestmove (none)" {
		t.Errorf("bestmove line = %q", lines[1])
	}
}

func TestEndgameRoundTrip(t *testing.T) {
	store, err := storage.OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer store.Close()

	var out strings.Builder
	p := NewIO(board.RayAttacks{}, strings.NewReader("gen-endgame q\nendgame q\nquit\n"), &out)
	p.UseStore(store)
	p.Run()

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("output = %q", lines)
	}
	if !strings.HasPrefix(lines[0], "info string endgame table q:") {
		t.Errorf("generation summary = %q", lines[0])
	}

	// The guarded queen mate must come back from the store with its
	// terminal code.
	found := false
	for _, line := range lines[1:] {
		if line == "Kqk............. w 0 1 8 black wins" {
			found = true
		}
	}
	if !found {
		t.Errorf("stored table output missing the guarded queen mate: %q", lines[1:])
	}

	// The table is persisted under its material string.
	entries, ok, err := store.EndgameTable("q")
	if err != nil || !ok || len(entries) == 0 {
		t.Errorf("EndgameTable(q): ok=%v len=%d err=%v", ok, len(entries), err)
	}
}

func TestExplore(t *testing.T) {
	lines := runCommands(t, "explore 2\nquit\n")
	want := []string{
		"# positions reachable after 1 halfmoves = 4",
		"# positions reachable after 2 halfmoves = 16",
	}
	if len(lines) != len(want) || lines[0] != want[0] || lines[1] != want[1] {
		t.Errorf("output = %q, want %q", lines, want)
	}
}
