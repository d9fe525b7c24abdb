package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/ttacon/chalk"

	"github.com/Garsondee/arena-league/internal/arena"
	"github.com/Garsondee/arena-league/internal/game"
)

// runStats is what one seeded match produced.
type runStats struct {
	runIndex int
	seed     int64
	ticks    int
	over     bool
	winner   string // empty on a draw or timeout
	alive    map[string]int
	total    map[string]int

	firstKillTick   int
	firstStuckTick  int
	stabbed, sniped int
	melees, throws  int
	hits, impacts   int
	stuckEvents     int
	escapeEvents    int

	kills  map[string]int
	deaths map[string]bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, chalk.Red.Color("error: "+err.Error()))
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("headless-report", flag.ContinueOnError)
	var (
		runs     int
		maxTicks int
		seedBase int64
		seedStep int64
		config   string
	)
	fs.IntVar(&runs, "runs", 5, "number of headless matches")
	fs.IntVar(&maxTicks, "ticks", 18000, "tick limit per match")
	fs.Int64Var(&seedBase, "seed-base", 0, "seed for run 1 (0 uses $ARENA_SEED, then 42)")
	fs.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	fs.StringVar(&config, "config", "", "arena YAML (default $ARENA_CONFIG, then the built-in warehouse)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if runs <= 0 {
		return errors.New("-runs must be > 0")
	}
	if maxTicks <= 0 {
		return errors.New("-ticks must be > 0")
	}

	if err := arena.LoadEnv(); err != nil {
		return err
	}
	cfg, err := arena.ConfigFromEnv(config)
	if err != nil {
		return err
	}
	seedBase, err = arena.SeedFromEnv(seedBase, 42)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "=== Headless Arena Report ===\n")
	fmt.Fprintf(out, "arena=%s matchup=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		cfg.Arena.Name, strings.Join(cfg.Titles(), "-vs-"), runs, maxTicks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		rs, err := runMatch(cfg, i+1, seedBase+int64(i)*seedStep, maxTicks)
		if err != nil {
			return errors.Wrapf(err, "run %d", i+1)
		}
		all = append(all, rs)
		printRun(out, rs)
	}
	printAggregate(out, cfg.Titles(), all)
	return nil
}

func runMatch(cfg *arena.Config, runIndex int, seed int64, maxTicks int) (runStats, error) {
	m, err := cfg.BuildMatch(game.WithSeed(seed))
	if err != nil {
		return runStats{}, err
	}
	for m.Tick() < maxTicks && !m.Over() {
		m.Step()
	}
	return collect(m, runIndex, seed), nil
}

func collect(m *game.Match, runIndex int, seed int64) runStats {
	sl := m.Engine().SimLog()
	rs := runStats{
		runIndex:       runIndex,
		seed:           seed,
		ticks:          m.Tick(),
		over:           m.Over(),
		alive:          map[string]int{},
		total:          map[string]int{},
		firstKillTick:  firstTick(sl.Entries(), "combat", "kill"),
		firstStuckTick: firstTick(sl.Entries(), "move", "stuck"),
		stabbed:        m.Feed().CountBy(game.KillStabbed),
		sniped:         m.Feed().CountBy(game.KillSniped),
		melees:         sl.CountCategory("combat", "melee"),
		throws:         sl.CountCategory("combat", "throw"),
		hits:           sl.CountCategory("weapon", "hit"),
		impacts:        sl.CountCategory("weapon", "impact"),
		stuckEvents:    sl.CountCategory("move", "stuck"),
		escapeEvents:   sl.CountCategory("move", "escape"),
		kills:          map[string]int{},
		deaths:         map[string]bool{},
	}
	if w, ok := m.Winner(); ok {
		rs.winner = m.Title(w)
	}
	for _, a := range m.Agents() {
		title := m.Title(a.Team())
		rs.total[title]++
		if a.Alive() {
			rs.alive[title]++
		}
	}
	for _, ev := range m.Feed().Events() {
		rs.kills[ev.Attacker]++
		rs.deaths[ev.Victim] = true
	}
	return rs
}

func firstTick(entries []game.SimLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

// outcome classifies a finished run.
func outcome(rs runStats) string {
	switch {
	case !rs.over:
		return "timeout"
	case rs.winner == "":
		return "draw"
	case rs.alive[rs.winner] == rs.total[rs.winner]:
		return "flawless"
	case rs.alive[rs.winner] == 1:
		return "close"
	default:
		return "decisive"
	}
}

func printRun(out io.Writer, rs runStats) {
	fmt.Fprintf(out, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	result := outcome(rs)
	if rs.winner != "" {
		result = chalk.Green.Color(rs.winner+" WINS") + " (" + result + ")"
	} else {
		result = chalk.Yellow.Color(strings.ToUpper(result))
	}
	fmt.Fprintf(out, "result: %s at T=%d\n", result, rs.ticks)
	fmt.Fprintf(out, "phase_markers: first_kill=%d first_stuck=%d\n", rs.firstKillTick, rs.firstStuckTick)
	fmt.Fprintf(out, "kills: stabbed=%d sniped=%d\n", rs.stabbed, rs.sniped)
	fmt.Fprintf(out, "combat_events: melee=%d throw=%d hit=%d impact=%d\n", rs.melees, rs.throws, rs.hits, rs.impacts)
	fmt.Fprintf(out, "movement_events: stuck=%d escape=%d\n\n", rs.stuckEvents, rs.escapeEvents)
}

// botAgg is one bot's record across runs.
type botAgg struct {
	name   string
	kills  int
	deaths int
}

func printAggregate(out io.Writer, titles []string, all []runStats) {
	wins := map[string]int{}
	outcomes := map[string]int{}
	bots := map[string]*botAgg{}
	totalTicks, stabbed, sniped, stuck, escape := 0, 0, 0, 0, 0

	for _, rs := range all {
		if rs.winner != "" {
			wins[rs.winner]++
		}
		outcomes[outcome(rs)]++
		totalTicks += rs.ticks
		stabbed += rs.stabbed
		sniped += rs.sniped
		stuck += rs.stuckEvents
		escape += rs.escapeEvents
		for name, k := range rs.kills {
			agg(bots, name).kills += k
		}
		for name := range rs.deaths {
			agg(bots, name).deaths++
		}
	}

	fmt.Fprintf(out, "=== Aggregate (%d runs) ===\n", len(all))
	for _, t := range titles {
		line := fmt.Sprintf("%s: %d wins (%.0f%%)", t, wins[t], 100*float64(wins[t])/float64(len(all)))
		if wins[t] > 0 && wins[t] == maxWins(wins) {
			line = chalk.Green.Color(line)
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "outcomes: %s\n", formatCounts(outcomes))
	fmt.Fprintf(out, "avg_ticks=%.0f stabbed=%d sniped=%d stuck=%d escape=%d\n",
		float64(totalTicks)/float64(len(all)), stabbed, sniped, stuck, escape)

	fmt.Fprintln(out, "bots (kills/deaths):")
	for _, b := range rankBots(bots) {
		fmt.Fprintf(out, "  %-10s %3d / %3d\n", b.name, b.kills, b.deaths)
	}
}

func agg(bots map[string]*botAgg, name string) *botAgg {
	b, ok := bots[name]
	if !ok {
		b = &botAgg{name: name}
		bots[name] = b
	}
	return b
}

func maxWins(wins map[string]int) int {
	best := 0
	for _, w := range wins {
		best = max(best, w)
	}
	return best
}

// rankBots orders by kills, then fewest deaths, then name.
func rankBots(bots map[string]*botAgg) []*botAgg {
	out := make([]*botAgg, 0, len(bots))
	for _, b := range bots {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].kills != out[j].kills {
			return out[i].kills > out[j].kills
		}
		if out[i].deaths != out[j].deaths {
			return out[i].deaths < out[j].deaths
		}
		return out[i].name < out[j].name
	})
	return out
}

func formatCounts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, " ")
}
