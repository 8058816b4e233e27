package storage

import (
	"os"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreferences(t *testing.T) {
	s := newTestStore(t)

	// Nothing saved yet: the defaults come back.
	prefs, err := s.Preferences()
	if err != nil {
		t.Fatalf("Preferences failed: %v", err)
	}
	if prefs != DefaultPreferences() {
		t.Errorf("fresh store preferences = %+v", prefs)
	}

	prefs.Name = "Calixto"
	prefs.Depth = 8
	prefs.HumanColor = "b"
	if err := s.SetPreferences(prefs); err != nil {
		t.Fatalf("SetPreferences failed: %v", err)
	}

	loaded, err := s.Preferences()
	if err != nil {
		t.Fatalf("Preferences failed: %v", err)
	}
	if loaded != prefs {
		t.Errorf("loaded preferences = %+v, want %+v", loaded, prefs)
	}
}

func TestRecordGame(t *testing.T) {
	s := newTestStore(t)

	records := []GameRecord{
		{Outcome: 9, Winner: "w", Plies: 21, Depth: 6},
		{Outcome: 9, Winner: "w", Plies: 17, Depth: 8},
		{Outcome: 8, Winner: "b", Plies: 30, Depth: 6},
		{Outcome: 5, Plies: 44, Depth: 6},
		{Repetition: true, Plies: 28, Depth: 6},
	}
	for _, rec := range records {
		if err := s.RecordGame(rec); err != nil {
			t.Fatalf("RecordGame failed: %v", err)
		}
	}

	ledger, err := s.Ledger()
	if err != nil {
		t.Fatalf("Ledger failed: %v", err)
	}
	if ledger.Games != 5 || ledger.WhiteWins != 2 || ledger.BlackWins != 1 || ledger.Draws != 2 {
		t.Errorf("ledger = %+v", ledger)
	}
	if ledger.ByOutcome["9"] != 2 || ledger.ByOutcome["5"] != 1 || ledger.ByOutcome["rep"] != 1 {
		t.Errorf("outcome counts = %v", ledger.ByOutcome)
	}
	if ledger.WinsByDepth["6"] != 2 || ledger.WinsByDepth["8"] != 1 {
		t.Errorf("wins by depth = %v", ledger.WinsByDepth)
	}
	if avg := ledger.AveragePlies(); avg != 28 {
		t.Errorf("average plies = %v, want 28", avg)
	}
}

func TestEndgameTables(t *testing.T) {
	s := newTestStore(t)

	entries := []EndgameEntry{
		{Record: "Kqk............. w 0 1", Outcome: 8},
		{Record: "K.k............q w 0 1", Outcome: 5},
	}
	if err := s.SaveEndgameTable("q", entries); err != nil {
		t.Fatalf("SaveEndgameTable failed: %v", err)
	}
	if err := s.SaveEndgameTable("bp", nil); err != nil {
		t.Fatalf("SaveEndgameTable failed: %v", err)
	}

	loaded, found, err := s.EndgameTable("q")
	if err != nil {
		t.Fatalf("EndgameTable failed: %v", err)
	}
	if !found {
		t.Fatal("stored table reported missing")
	}
	if len(loaded) != 2 || loaded[0] != entries[0] || loaded[1] != entries[1] {
		t.Errorf("loaded table differs: %+v", loaded)
	}

	if _, found, err := s.EndgameTable("rr"); err != nil || found {
		t.Errorf("missing table: found=%v err=%v", found, err)
	}

	materials, err := s.EndgameMaterials()
	if err != nil {
		t.Fatalf("EndgameMaterials failed: %v", err)
	}
	if len(materials) != 2 {
		t.Errorf("materials = %v, want two entries", materials)
	}
}

func TestDataDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FENCE_DATA_DIR", dir)

	got, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if got != dir {
		t.Errorf("DataDir = %q, want %q", got, dir)
	}

	dbDir, err := DatabaseDir()
	if err != nil {
		t.Fatalf("DatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); err != nil {
		t.Errorf("database dir not created: %v", err)
	}
}
