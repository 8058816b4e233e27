package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys. Endgame tables get one key per material string under
// the prefix.
const (
	keyPreferences = "preferences"
	keyLedger      = "ledger"
	prefixEndgame  = "endgame/"
)

// Preferences are the play settings the GUI persists between runs.
// Depth is the engine's search depth in ply; HumanColor is "w" or "b"
// in FENCE notation.
type Preferences struct {
	Name         string `json:"name"`
	Depth        int    `json:"depth"`
	ShortestLine bool   `json:"shortest_line"`
	HumanColor   string `json:"human_color"`
}

// DefaultPreferences returns the settings used until the player
// changes them.
func DefaultPreferences() Preferences {
	return Preferences{
		Name:         "Player",
		Depth:        6,
		ShortestLine: true,
		HumanColor:   "w",
	}
}

// GameRecord summarizes one finished game the way the engine reports
// it: the terminal code, the winner ("w", "b", or "" for a draw), the
// game length in ply, and the search depth that played it. Repetition
// marks threefold draws, which no terminal code covers.
type GameRecord struct {
	Outcome    int    `json:"outcome"`
	Winner     string `json:"winner"`
	Plies      int    `json:"plies"`
	Depth      int    `json:"depth"`
	Repetition bool   `json:"repetition"`
}

// Ledger aggregates finished games. ByOutcome counts games per
// terminal code (with "rep" for threefold draws); WinsByDepth counts
// decisive games per search depth.
type Ledger struct {
	Games       int            `json:"games"`
	WhiteWins   int            `json:"white_wins"`
	BlackWins   int            `json:"black_wins"`
	Draws       int            `json:"draws"`
	ByOutcome   map[string]int `json:"by_outcome"`
	WinsByDepth map[string]int `json:"wins_by_depth"`
	TotalPlies  int            `json:"total_plies"`
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		ByOutcome:   make(map[string]int),
		WinsByDepth: make(map[string]int),
	}
}

// add folds one game into the ledger.
func (l *Ledger) add(rec GameRecord) {
	l.Games++
	l.TotalPlies += rec.Plies

	key := fmt.Sprintf("%d", rec.Outcome)
	if rec.Repetition {
		key = "rep"
	}
	l.ByOutcome[key]++

	switch rec.Winner {
	case "w":
		l.WhiteWins++
		l.WinsByDepth[fmt.Sprintf("%d", rec.Depth)]++
	case "b":
		l.BlackWins++
		l.WinsByDepth[fmt.Sprintf("%d", rec.Depth)]++
	default:
		l.Draws++
	}
}

// AveragePlies returns the mean game length in ply.
func (l *Ledger) AveragePlies() float64 {
	if l.Games == 0 {
		return 0
	}
	return float64(l.TotalPlies) / float64(l.Games)
}

// EndgameEntry is one stored endgame-table position: its FENCE record
// and terminal code.
type EndgameEntry struct {
	Record  string `json:"record"`
	Outcome int    `json:"outcome"`
}

// Store wraps the Badger database.
type Store struct {
	db *badger.DB
}

// Open opens the store in the default database directory.
func Open() (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dir)
}

// OpenAt opens a store backed by the given directory.
func OpenAt(dir string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// putJSON marshals v under key.
func (s *Store) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// getJSON unmarshals key into v, reporting whether the key existed.
func (s *Store) getJSON(key string, v any) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(data []byte) error {
			return json.Unmarshal(data, v)
		})
	})
	return found, err
}

// Preferences loads the stored play settings, or the defaults when
// none have been saved yet.
func (s *Store) Preferences() (Preferences, error) {
	prefs := DefaultPreferences()
	_, err := s.getJSON(keyPreferences, &prefs)
	return prefs, err
}

// SetPreferences saves the play settings.
func (s *Store) SetPreferences(prefs Preferences) error {
	return s.putJSON(keyPreferences, prefs)
}

// Ledger loads the match ledger, empty when nothing has been recorded.
func (s *Store) Ledger() (*Ledger, error) {
	ledger := NewLedger()
	_, err := s.getJSON(keyLedger, ledger)
	return ledger, err
}

// RecordGame folds a finished game into the ledger and saves it.
func (s *Store) RecordGame(rec GameRecord) error {
	ledger, err := s.Ledger()
	if err != nil {
		return err
	}
	ledger.add(rec)
	return s.putJSON(keyLedger, ledger)
}

// SaveEndgameTable stores the generated table for a piece set, keyed
// by its material string (e.g. "q" or "bp").
func (s *Store) SaveEndgameTable(material string, entries []EndgameEntry) error {
	return s.putJSON(prefixEndgame+material, entries)
}

// EndgameTable loads the stored table for a piece set, reporting
// whether one was ever generated.
func (s *Store) EndgameTable(material string) ([]EndgameEntry, bool, error) {
	var entries []EndgameEntry
	found, err := s.getJSON(prefixEndgame+material, &entries)
	return entries, found, err
}

// EndgameMaterials returns the material strings of all stored endgame
// tables.
func (s *Store) EndgameMaterials() ([]string, error) {
	var materials []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefixEndgame)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			materials = append(materials, key[len(prefixEndgame):])
		}
		return nil
	})

	return materials, err
}
