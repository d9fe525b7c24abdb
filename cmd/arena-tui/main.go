package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/arena-league/internal/arena"
	"github.com/Garsondee/arena-league/internal/termview"
)

func main() {
	config := flag.String("config", "", "arena YAML (default $ARENA_CONFIG, then the built-in warehouse)")
	seed := flag.Int64("seed", 0, "match seed (0 uses $ARENA_SEED, then 1)")
	flag.Parse()

	if err := run(*config, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "arena-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(config string, seed int64) error {
	if err := arena.LoadEnv(); err != nil {
		return err
	}
	cfg, err := arena.ConfigFromEnv(config)
	if err != nil {
		return err
	}
	seed, err = arena.SeedFromEnv(seed, 1)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	r, err := termview.New(screen, cfg, seed)
	if err != nil {
		return err
	}
	r.Run()
	return nil
}
