package selfplay

import (
	"context"
	"log"
	"math/rand"
	"runtime"
	"sync"

	"github.com/iamasit07/connect4-terminal/internal/domain"
	"github.com/iamasit07/connect4-terminal/internal/service/bot"
	"github.com/pkg/errors"
)

type Config struct {
	Games   int
	Workers int
	First   bot.Difficulty // plays Player1
	Second  bot.Difficulty // plays Player2
	Seed    int64
}

// Result is one finished engine-vs-engine game.
type Result struct {
	Game    int             `json:"game"`
	Winner  domain.PlayerID `json:"winner"`
	Moves   int             `json:"moves"`
	Columns []int           `json:"columns"`
}

type Summary struct {
	Games      int `json:"games"`
	FirstWins  int `json:"first_wins"`
	SecondWins int `json:"second_wins"`
	Draws      int `json:"draws"`
	TotalMoves int `json:"total_moves"`
}

func (s *Summary) add(r Result) {
	s.Games++
	s.TotalMoves += r.Moves
	switch r.Winner {
	case domain.Player1:
		s.FirstWins++
	case domain.Player2:
		s.SecondWins++
	default:
		s.Draws++
	}
}

// PlayGame plays one game between two engines. Each side draws from its own
// source seeded from seed, so a game replays exactly for the same seed.
func PlayGame(index int, first, second bot.Difficulty, seed int64) (Result, error) {
	g := domain.NewGame(domain.ModePvP)
	engines := map[domain.PlayerID]*bot.Engine{
		domain.Player1: bot.New(g.Board, domain.Player1, rand.New(rand.NewSource(seed))),
		domain.Player2: bot.New(g.Board, domain.Player2, rand.New(rand.NewSource(seed+1))),
	}
	levels := map[domain.PlayerID]bot.Difficulty{
		domain.Player1: first,
		domain.Player2: second,
	}

	for !g.IsFinished() {
		move := engines[g.CurrentPlayer].SelectMove(levels[g.CurrentPlayer])
		if move == domain.NoMove {
			return Result{}, errors.Errorf("game %d: no move for player %d on a live board", index, g.CurrentPlayer)
		}
		if _, err := g.MakeMove(move.Column); err != nil {
			return Result{}, errors.Wrapf(err, "game %d: player %d column %d", index, g.CurrentPlayer, move.Column)
		}
	}

	return Result{
		Game:    index,
		Winner:  g.Winner,
		Moves:   g.MoveCount(),
		Columns: g.Columns(),
	}, nil
}

// Run plays cfg.Games games on a pool of cfg.Workers goroutines. onResult,
// if not nil, is called from a single goroutine as games finish.
func Run(ctx context.Context, cfg Config, onResult func(Result)) (Summary, error) {
	if cfg.Games < 1 {
		return Summary{}, errors.Errorf("games must be at least 1, got %d", cfg.Games)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	tasks := make(chan int, cfg.Games)
	results := make(chan Result, cfg.Games)
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for index := range tasks {
				if ctx.Err() != nil {
					return
				}
				res, err := PlayGame(index, cfg.First, cfg.Second, cfg.Seed+int64(index)*2)
				if err != nil {
					errs <- err
					return
				}
				results <- res
				log.Printf("[SELFPLAY] game %d finished on worker %d: winner %d after %d moves", index, id, res.Winner, res.Moves)
			}
		}(i)
	}

	for i := 0; i < cfg.Games; i++ {
		tasks <- i
	}
	close(tasks)

	go func() {
		wg.Wait()
		close(results)
	}()

	var summary Summary
	for res := range results {
		summary.add(res)
		if onResult != nil {
			onResult(res)
		}
	}

	select {
	case err := <-errs:
		return summary, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}
