package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/iamasit07/connect4-terminal/internal/config"
	"github.com/iamasit07/connect4-terminal/internal/domain"
	"github.com/pkg/errors"
)

// openTestDB connects to TEST_DATABASE_URL or skips.
func openTestDB(t *testing.T) *StatsRepo {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := Open(&config.Config{DatabaseURL: url, DBDriver: config.GetEnv("TEST_DB_DRIVER", "pgx"), DBMaxOpenConns: 2, DBMaxIdleConns: 1, DBConnMaxLifetimeMin: 1})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`TRUNCATE game, mode_stats;`); err != nil {
		t.Fatal(err)
	}
	return NewStatsRepo(db)
}

func TestStatsRepoRoundTrip(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	g := domain.NewGame(domain.ModeHard)
	for _, col := range []int{0, 6, 1, 6, 3, 6, 0, 6} {
		g.MakeMove(col)
	}
	rec, err := g.Record()
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.SaveGame(ctx, rec); err != nil {
		t.Fatal(err)
	}
	// a second save must not count the game twice
	if err := repo.SaveGame(ctx, rec); err != nil {
		t.Fatal(err)
	}

	totals, err := repo.GetTotals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 1 || totals[0].GamesPlayed != 1 || totals[0].Player2Wins != 1 {
		t.Fatalf("unexpected totals %+v", totals)
	}

	got, err := repo.GetGameByID(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Winner != "Charles" || len(got.Columns) != 8 || got.Board[2][6] != int(domain.Player2) {
		t.Fatalf("unexpected record %+v", got)
	}

	recent, err := repo.GetRecentGames(ctx, 5)
	if err != nil || len(recent) != 1 {
		t.Fatalf("expected one recent game, got %d (%v)", len(recent), err)
	}

	n, err := repo.DeleteGamesBefore(ctx, time.Now().Add(time.Hour))
	if err != nil || n != 1 {
		t.Fatalf("expected 1 deleted, got %d (%v)", n, err)
	}
	if _, err := repo.GetGameByID(ctx, rec.ID); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}
