package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/arena-league/internal/arena"
	"github.com/Garsondee/arena-league/internal/viewer"
)

func main() {
	config := flag.String("config", "", "arena YAML (default $ARENA_CONFIG, then the built-in warehouse)")
	seed := flag.Int64("seed", 0, "match seed (0 uses $ARENA_SEED, then 1)")
	flag.Parse()

	if err := arena.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := arena.ConfigFromEnv(*config)
	if err != nil {
		log.Fatal(err)
	}
	s, err := arena.SeedFromEnv(*seed, 1)
	if err != nil {
		log.Fatal(err)
	}

	g, err := viewer.New(cfg, s)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Arena League: " + cfg.Arena.Name)
	ebiten.SetWindowSize(g.Size())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
