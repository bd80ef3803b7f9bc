package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/cardroom/holdem-engine/pkg/board"
	"github.com/cardroom/holdem-engine/pkg/cards"
	"github.com/cardroom/holdem-engine/pkg/equity"
	"github.com/cardroom/holdem-engine/pkg/notation"
	"github.com/cardroom/holdem-engine/pkg/solver"
)

func main() {
	mode := flag.String("mode", "solve", "What to run: solve, equity, texture, draws, runs")
	configFile := flag.String("config", "", "Optional config file (YAML/JSON) with defaults for the flags below")

	boardStr := flag.String("board", "", "Community cards, e.g. Kh7s2c")
	heroStr := flag.String("hero", "", "Hero hole cards, e.g. AhKh")
	heroRange := flag.String("hero-range", "", "Hero range, e.g. 'AA,KK-JJ,AKs'")
	villainRange := flag.String("villain-range", "", "Villain range")

	pot := flag.Float64("pot", 10, "Starting pot in BB")
	stack := flag.Float64("stack", 100, "Stack size per player in BB")
	iterations := flag.Int("iterations", 1000, "CFR iterations")
	sims := flag.Int("sims", 10000, "Monte Carlo simulations for equity mode")
	simsPerCombo := flag.Int("sims-per-combo", 200, "Simulations per combo for range equity")
	opponents := flag.Int("opponents", 1, "Number of opponents for equity mode")

	saveFile := flag.String("save", "", "Save solve result to JSON file")
	dbFile := flag.String("db", "", "SQLite file to record solve runs in")
	runID := flag.Int64("run", 0, "With -mode runs: print the stored run with this id")
	simLog := flag.String("simlog", "", "Write per-iteration YAML log to this file")
	verbose := flag.Bool("verbose", false, "Debug logging")

	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).Level(level)

	if *configFile != "" {
		viper.SetConfigFile(*configFile)
		if err := viper.ReadInConfig(); err != nil {
			fatal("reading config file", err)
		}
		// Config values fill in flags the user left at defaults.
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		applyConfig(set, map[string]any{
			"board": boardStr, "hero": heroStr, "hero-range": heroRange,
			"villain-range": villainRange, "pot": pot, "stack": stack,
			"iterations": iterations, "sims": sims, "sims-per-combo": simsPerCombo,
		})
	}

	switch *mode {
	case "solve":
		runSolve(*boardStr, *heroRange, *villainRange, *pot, *stack, *iterations, *saveFile, *dbFile, *simLog)
	case "equity":
		runEquity(*boardStr, *heroStr, *villainRange, *opponents, *sims, *simsPerCombo)
	case "texture":
		runTexture(*boardStr)
	case "draws":
		runDraws(*boardStr, *heroStr)
	case "runs":
		runRuns(*dbFile, *boardStr, *runID)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

func applyConfig(set map[string]bool, targets map[string]any) {
	for key, target := range targets {
		if set[key] || !viper.IsSet(key) {
			continue
		}
		switch t := target.(type) {
		case *string:
			*t = viper.GetString(key)
		case *int:
			*t = viper.GetInt(key)
		case *float64:
			*t = viper.GetFloat64(key)
		}
	}
}

func runSolve(boardStr, heroRange, villainRange string, pot, stack float64, iterations int, saveFile, dbFile, simLog string) {
	boardCards := mustCards("board", boardStr)
	r0 := mustRange("hero-range", heroRange)
	r1 := mustRange("villain-range", villainRange)

	cfg := solver.Config{
		Ranges:     [2]notation.HandRange{r0, r1},
		Board:      boardCards,
		Pot:        pot,
		StackSize:  stack,
		Iterations: iterations,
		LogEvery:   iterations / 10,
	}
	if simLog != "" {
		f, err := os.Create(simLog)
		if err != nil {
			fatal("creating simlog file", err)
		}
		defer f.Close()
		cfg.IterationLog = f
	}

	res, err := solver.New(cfg).Solve()
	if err != nil {
		fatal("solving", err)
	}

	printStrategies(res)
	fmt.Printf("\n%d info sets, exploitability proxy %.4f, %s\n",
		res.InfoSets, res.Exploitability, res.Elapsed.Round(time.Millisecond))

	if saveFile != "" {
		if err := solver.SaveResult(saveFile, res); err != nil {
			fatal("saving result", err)
		}
		fmt.Printf("saved result to %s\n", saveFile)
	}
	if dbFile != "" {
		store, err := solver.OpenStore(dbFile)
		if err != nil {
			fatal("opening store", err)
		}
		defer store.Close()
		id, err := store.SaveRun(boardCards, res)
		if err != nil {
			fatal("recording run", err)
		}
		fmt.Printf("recorded run %d in %s\n", id, dbFile)
	}
}

func runEquity(boardStr, heroStr, villainRange string, opponents, sims, simsPerCombo int) {
	hero := mustCards("hero", heroStr)
	var boardCards []cards.Card
	if boardStr != "" {
		boardCards = mustCards("board", boardStr)
	}

	calc := equity.NewCalculator()

	var res equity.Result
	var err error
	if villainRange != "" {
		hr := mustRange("villain-range", villainRange)
		res, err = calc.CalculateVsRange(hero, boardCards, hr, simsPerCombo)
	} else {
		res, err = calc.Calculate(equity.Input{
			Hero:           hero,
			Community:      boardCards,
			NumOpponents:   opponents,
			NumSimulations: sims,
		})
	}
	if err != nil {
		fatal("calculating equity", err)
	}

	fmt.Printf("win %.1f%%  tie %.1f%%  lose %.1f%%  (%d samples, ±%.2f)\n",
		res.Win, res.Tie, res.Lose, res.Samples, res.StdErr)
}

func runTexture(boardStr string) {
	boardCards := mustCards("board", boardStr)
	t, err := board.AnalyzeTexture(boardCards)
	if err != nil {
		fatal("analyzing texture", err)
	}

	fmt.Printf("%s: %s board, danger %s (wetness %d)\n", boardStr, t.Label, t.Danger, t.Wetness)
	fmt.Printf("  paired=%v trips=%v monotone=%v twoTone=%v rainbow=%v\n",
		t.Paired, t.Trips, t.Monotone, t.TwoTone, t.Rainbow)
	fmt.Printf("  connectivity=%d oesd=%v gutshot=%v\n", t.Connectivity, t.OESDPossible, t.GutshotPossible)

	if nuts := board.FindNuts(boardCards); len(nuts) > 0 {
		fmt.Printf("  nuts: %v\n", nuts)
	}
	if danger := board.FindDangerCards(boardCards); len(danger) > 0 {
		max := len(danger)
		if max > 10 {
			max = 10
		}
		fmt.Printf("  danger cards: %v\n", danger[:max])
	}
}

func runDraws(boardStr, heroStr string) {
	hero := mustCards("hero", heroStr)
	boardCards := mustCards("board", boardStr)

	draws, err := board.FindDraws(hero, boardCards)
	if err != nil {
		fatal("finding draws", err)
	}
	if len(draws) == 0 {
		fmt.Println("no draws")
		return
	}
	for _, d := range draws {
		fmt.Printf("%s: %d outs, %.1f%% by river (%v)\n", d.Type, d.Outs, d.Probability*100, d.Cards)
	}
}

func runRuns(dbFile, boardStr string, runID int64) {
	if dbFile == "" {
		fmt.Fprintln(os.Stderr, "missing -db")
		os.Exit(2)
	}
	store, err := solver.OpenStore(dbFile)
	if err != nil {
		fatal("opening store", err)
	}
	defer store.Close()

	if runID > 0 {
		res, err := store.LoadRun(runID)
		if err != nil {
			fatal("loading run", err)
		}
		printStrategies(res)
		fmt.Printf("\n%d info sets, %d iterations, %s\n",
			res.InfoSets, res.Iterations, res.Elapsed.Round(time.Millisecond))
		return
	}

	runs, err := store.ListRuns(boardStr)
	if err != nil {
		fatal("listing runs", err)
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return
	}
	for _, r := range runs {
		fmt.Printf("%4d  %s  %-10s  %6d iters  %5d info sets  %dms\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.Board, r.Iterations, r.InfoSets, r.ElapsedMS)
	}
}

func printStrategies(res *solver.Result) {
	keys := make([]string, 0, len(res.Strategies))
	for k := range res.Strategies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Printf("%s\n", key)
		for _, p := range res.Strategies[key] {
			if p.Probability < 0.01 {
				continue
			}
			fmt.Printf("  %-6s %5.1f%%  (ev %.2f)\n", p.Action, p.Probability*100, p.EV)
		}
	}
}

func mustCards(name, s string) []cards.Card {
	if s == "" {
		fmt.Fprintf(os.Stderr, "missing -%s\n", name)
		os.Exit(2)
	}
	cs, err := cards.ParseCards(s)
	if err != nil {
		fatal("parsing -"+name, err)
	}
	return cs
}

func mustRange(name, s string) notation.HandRange {
	if s == "" {
		fmt.Fprintf(os.Stderr, "missing -%s\n", name)
		os.Exit(2)
	}
	hr, err := notation.ParseRange(s)
	if err != nil {
		fatal("parsing -"+name, err)
	}
	return hr
}

func fatal(what string, err error) {
	fmt.Fprintf(os.Stderr, "error %s: %v\n", what, err)
	os.Exit(1)
}
