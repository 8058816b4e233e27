// fence-match plays engine-vs-engine games and reports a match record.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/calixto/fence/internal/board"
	"github.com/calixto/fence/internal/engine"
	"github.com/calixto/fence/internal/storage"
)

var (
	games      = flag.Int("games", 1, "number of games to play")
	whiteDepth = flag.Int("white-depth", 6, "search depth for white")
	blackDepth = flag.Int("black-depth", 6, "search depth for black")
	shortest   = flag.Bool("shortest", false, "prefer shortest winning lines")
	record     = flag.Bool("record", false, "record results in the match statistics database")
	verbose    = flag.Bool("v", false, "print a playback of each game")
)

func main() {
	flag.Parse()

	var store *storage.Store
	if *record {
		var err error
		store, err = storage.Open()
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()
	}

	eng := engine.New(board.RayAttacks{})
	opts := engine.MatchOptions{
		WhiteDepth:   *whiteDepth,
		BlackDepth:   *blackDepth,
		ShortestLine: *shortest,
	}

	var wins, losses, draws int
	start := time.Now()

	for n := 0; n < *games; n++ {
		game := eng.PlayGame(opts)

		if *verbose {
			board.Playback(os.Stdout, board.NewPosition(), game.Moves)
		}

		outcome := "draw, threefold repetition"
		if !game.Repetition {
			outcome = game.Outcome.String()
		}
		fmt.Printf("%d %s (%d moves)\n", n, outcome, len(game.Moves))

		winner, decisive := game.Outcome.Winner()
		switch {
		case decisive && winner == board.White:
			wins++
		case decisive:
			losses++
		default:
			draws++
		}

		if store != nil {
			rec := storage.GameRecord{
				Outcome:    int(game.Outcome),
				Plies:      len(game.Moves),
				Depth:      *whiteDepth,
				Repetition: game.Repetition,
			}
			if decisive {
				rec.Winner = "w"
				if winner == board.Black {
					rec.Winner = "b"
					rec.Depth = *blackDepth
				}
			}
			if err := store.RecordGame(rec); err != nil {
				log.Printf("record game: %v", err)
			}
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("Match record: %d-%d-%d\n", wins, losses, draws)
	fmt.Printf("Elapsed: %.2fs (%.3fs/game)\n", elapsed.Seconds(), elapsed.Seconds()/float64(*games))

	if store != nil {
		ledger, err := store.Ledger()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Ledger: %d games, %d-%d-%d, %.1f plies/game\n",
			ledger.Games, ledger.WhiteWins, ledger.BlackWins, ledger.Draws, ledger.AveragePlies())
	}
}
