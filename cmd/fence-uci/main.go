package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/calixto/fence/internal/board"
	"github.com/calixto/fence/internal/uci"
)

var (
	tablePath  = flag.String("table", "", "attack table file (default: compute attacks geometrically)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	// The attack lookup is loaded once here and immutable afterwards.
	var tbl board.AttackTable = board.RayAttacks{}
	if *tablePath != "" {
		loaded, err := board.LoadAttacks(*tablePath)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("attack table loaded from %s (%d entries)", *tablePath, loaded.Len())
		tbl = loaded
	}

	uci.New(tbl).Run()
}
