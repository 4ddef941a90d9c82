package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/iamasit07/connect4-terminal/internal/service/bot"
	"github.com/iamasit07/connect4-terminal/internal/service/selfplay"
)

func main() {
	games := flag.Int("games", 10, "number of games to play")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	first := flag.String("first", "hard", "difficulty of Player 1 (easy, medium, hard)")
	second := flag.String("second", "medium", "difficulty of Player 2 (easy, medium, hard)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "base random seed")
	output := flag.String("output", "", "write one JSON line per game to this file")
	flag.Parse()

	if *games < 1 {
		fmt.Fprintln(os.Stderr, "-games must be at least 1")
		flag.Usage()
		os.Exit(1)
	}

	var enc *json.Encoder
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *output, err)
		}
		defer f.Close()
		enc = json.NewEncoder(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := selfplay.Config{
		Games:   *games,
		Workers: *workers,
		First:   bot.ParseDifficulty(*first),
		Second:  bot.ParseDifficulty(*second),
		Seed:    *seed,
	}
	fmt.Printf("Playing %d games, %s (X) vs %s (O), seed %d, %d workers\n", cfg.Games, cfg.First, cfg.Second, cfg.Seed, cfg.Workers)

	start := time.Now()
	summary, err := selfplay.Run(ctx, cfg, func(r selfplay.Result) {
		if enc == nil {
			return
		}
		if err := enc.Encode(r); err != nil {
			log.Printf("Failed to write game %d: %v", r.Game, err)
		}
	})
	if err != nil {
		log.Printf("Stopped early: %v", err)
	}

	fmt.Printf("\nGames: %d in %s\n", summary.Games, time.Since(start).Round(time.Millisecond))
	fmt.Printf("%s (X) wins: %d\n", cfg.First, summary.FirstWins)
	fmt.Printf("%s (O) wins: %d\n", cfg.Second, summary.SecondWins)
	fmt.Printf("Draws: %d\n", summary.Draws)
	if summary.Games > 0 {
		fmt.Printf("Average length: %.1f moves\n", float64(summary.TotalMoves)/float64(summary.Games))
	}
}
