// Package uci implements the fence-uci text protocol, a UCI-shaped
// command loop for driving the engine over stdin/stdout.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/calixto/fence/internal/board"
	"github.com/calixto/fence/internal/engine"
	"github.com/calixto/fence/internal/storage"
	"github.com/calixto/fence/internal/tablebase"
)

// defaultDepth is the search depth used when "go" gives none.
const defaultDepth = 8

// Protocol implements the fence-uci command loop.
type Protocol struct {
	in  io.Reader
	out io.Writer

	engine   *engine.Engine
	tbl      board.AttackTable
	position board.Position

	// Board occurrence counts along the played line, for threefold
	// repetition in the search.
	history map[uint64]int

	// Store for endgame tables, opened on first use unless injected
	// with UseStore.
	store     *storage.Store
	ownsStore bool
}

// New creates a protocol handler on stdin/stdout.
func New(tbl board.AttackTable) *Protocol {
	return NewIO(tbl, os.Stdin, os.Stdout)
}

// NewIO creates a protocol handler with explicit input and output.
func NewIO(tbl board.AttackTable, in io.Reader, out io.Writer) *Protocol {
	return &Protocol{
		in:       in,
		out:      out,
		engine:   engine.New(tbl),
		tbl:      tbl,
		position: board.NewPosition(),
		history:  make(map[uint64]int),
	}
}

// UseStore attaches an already-open store for the endgame-table
// commands. The caller keeps ownership and closes it.
func (u *Protocol) UseStore(s *storage.Store) {
	u.store = s
}

// openStore returns the store, opening the default one on first use.
func (u *Protocol) openStore() *storage.Store {
	if u.store == nil {
		s, err := storage.Open()
		if err != nil {
			fmt.Fprintf(u.out, "info string %v\n", err)
			return nil
		}
		u.store = s
		u.ownsStore = true
	}
	return u.store
}

// Run reads commands until "quit" or end of input.
func (u *Protocol) Run() {
	defer func() {
		if u.ownsStore {
			u.store.Close()
		}
	}()

	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "fence":
			u.handleFence()
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "newgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "status":
			u.handleStatus()
		case "explore":
			u.handleExplore(args)
		case "gen-attacks":
			u.handleGenAttacks(args)
		case "gen-endgame":
			u.handleGenEndgame(args)
		case "endgame":
			u.handleEndgame(args)
		case "d":
			u.handleDisplay()
		case "quit":
			return
		}
	}
}

// handleFence responds to the "fence" handshake.
func (u *Protocol) handleFence() {
	fmt.Fprintln(u.out, "id name Fence")
	fmt.Fprintln(u.out, "id author Calixto")
	fmt.Fprintln(u.out, "fenceok")
}

// handleNewGame resets to the starting position.
func (u *Protocol) handleNewGame() {
	u.position = board.NewPosition()
	u.history = make(map[uint64]int)
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves 5-7 10-8
//   - position fence KQRBNP....pnbrqk w 0 1
//   - position fence KQRBNP....pnbrqk w 0 1 moves 5-7
func (u *Protocol) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	moveStart := len(args)
	for i, arg := range args {
		if arg == "moves" {
			moveStart = i + 1
		}
	}

	switch args[0] {
	case "startpos":
		u.position = board.NewPosition()
	case "fence":
		recordEnd := moveStart
		if moveStart < len(args) {
			recordEnd = moveStart - 1
		}
		record := strings.Join(args[1:recordEnd], " ")
		pos, err := board.ParseFENCE(record)
		if err != nil {
			fmt.Fprintf(u.out, "info string invalid FENCE: %v\n", err)
			return
		}
		u.position = pos
	default:
		return
	}

	u.history = make(map[uint64]int)
	for _, moveStr := range args[moveStart:] {
		move, err := board.ParseMove(moveStr)
		if err != nil {
			fmt.Fprintf(u.out, "info string invalid move: %s\n", moveStr)
			return
		}
		if !containsMove(u.engine.Moves(u.position), move) {
			fmt.Fprintf(u.out, "info string illegal move: %s\n", moveStr)
			return
		}
		u.history[u.position.Board]++
		u.position = u.position.Apply(move)
	}
}

// handleGo runs a search and reports score, principal variation, and
// best move.
//
//	go [depth N] [shortest]
func (u *Protocol) handleGo(args []string) {
	opts := engine.Options{Depth: defaultDepth, History: u.history}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				if d, err := strconv.Atoi(args[i+1]); err == nil && d > 0 {
					opts.Depth = d
				}
				i++
			}
		case "shortest":
			opts.ShortestLine = true
		}
	}

	res := u.engine.Score(u.position.Active, u.position, opts)

	fmt.Fprintf(u.out, "score %d\n", res.Score)
	if len(res.PV) > 0 {
		fmt.Fprintf(u.out, "pv %s\n", board.FormatMoves(res.PV))
		fmt.Fprintf(u.out, "bestmove %s\n", res.PV[0])
	} else {
		fmt.Fprintln(u.out, "bestmove (none)")
	}
}

// handleStatus reports the terminal classification of the current
// position.
func (u *Protocol) handleStatus() {
	outcome := u.engine.Classify(u.position)
	fmt.Fprintf(u.out, "status %d %s\n", int(outcome), outcome)
}

// handleExplore counts reachable positions per ply from the start
// position.
func (u *Protocol) handleExplore(args []string) {
	plies := 5
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			plies = n
		}
	}

	counts := u.engine.Explore(plies)
	for i, n := range counts {
		fmt.Fprintf(u.out, "# positions reachable after %d halfmoves = %d\n", i+1, n)
	}
	if len(counts) < plies {
		fmt.Fprintln(u.out, "No more traversable positions after this depth.")
	}
}

// handleGenAttacks writes the full attack-table file.
func (u *Protocol) handleGenAttacks(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(u.out, "info string usage: gen-attacks <path>")
		return
	}
	if err := board.WriteAttacksFile(args[0]); err != nil {
		fmt.Fprintf(u.out, "info string %v\n", err)
		return
	}
	fmt.Fprintf(u.out, "info string attack table written to %s\n", args[0])
}

// handleGenEndgame generates the endgame table for a piece set (e.g.
// "gen-endgame q") and stores it.
func (u *Protocol) handleGenEndgame(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(u.out, "info string usage: gen-endgame <material>")
		return
	}
	material := args[0]

	entries, err := tablebase.Generate(u.tbl, material, tablebase.Filter{Checkmates: true, Stalemates: true})
	if err != nil {
		fmt.Fprintf(u.out, "info string %v\n", err)
		return
	}

	store := u.openStore()
	if store == nil {
		return
	}

	stored := make([]storage.EndgameEntry, len(entries))
	var mates int
	for i, e := range entries {
		stored[i] = storage.EndgameEntry{Record: e.Record, Outcome: int(e.Outcome)}
		if _, decisive := e.Outcome.Winner(); decisive {
			mates++
		}
	}
	if err := store.SaveEndgameTable(material, stored); err != nil {
		fmt.Fprintf(u.out, "info string %v\n", err)
		return
	}
	fmt.Fprintf(u.out, "info string endgame table %s: %d checkmates, %d stalemates stored\n",
		material, mates, len(stored)-mates)
}

// handleEndgame prints a previously generated endgame table.
func (u *Protocol) handleEndgame(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(u.out, "info string usage: endgame <material>")
		return
	}

	store := u.openStore()
	if store == nil {
		return
	}

	entries, found, err := store.EndgameTable(args[0])
	if err != nil {
		fmt.Fprintf(u.out, "info string %v\n", err)
		return
	}
	if !found {
		fmt.Fprintf(u.out, "info string no endgame table for %s; run gen-endgame %s first\n", args[0], args[0])
		return
	}
	for _, e := range entries {
		fmt.Fprintf(u.out, "%s %d %s\n", e.Record, e.Outcome, board.Outcome(e.Outcome))
	}
}

// handleDisplay prints the current position with a square-index ruler.
func (u *Protocol) handleDisplay() {
	fmt.Fprintln(u.out, "0123456789012345")
	fmt.Fprintln(u.out, u.position)
}

func containsMove(moves []board.Move, m board.Move) bool {
	for _, have := range moves {
		if have == m {
			return true
		}
	}
	return false
}
