package stats

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/iamasit07/connect4-terminal/internal/domain"
	"github.com/pkg/errors"
)

type memoryRepo struct {
	games      []domain.GameRecord
	totals     map[domain.GameMode]*domain.ModeStats
	totalsHits int
	failSave   bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{totals: map[domain.GameMode]*domain.ModeStats{}}
}

func (m *memoryRepo) SaveGame(_ context.Context, rec *domain.GameRecord) error {
	if m.failSave {
		return errors.New("disk on fire")
	}
	m.games = append(m.games, *rec)
	st, ok := m.totals[rec.Mode]
	if !ok {
		st = &domain.ModeStats{Mode: rec.Mode}
		m.totals[rec.Mode] = st
	}
	st.Add(rec.Outcome)
	return nil
}

func (m *memoryRepo) GetTotals(context.Context) ([]domain.ModeStats, error) {
	m.totalsHits++
	out := make([]domain.ModeStats, 0, len(m.totals))
	for _, st := range m.totals {
		out = append(out, *st)
	}
	return out, nil
}

func (m *memoryRepo) GetRecentGames(_ context.Context, limit int) ([]domain.GameRecord, error) {
	games := append([]domain.GameRecord(nil), m.games...)
	sort.Slice(games, func(i, j int) bool { return games[i].FinishedAt.After(games[j].FinishedAt) })
	if len(games) > limit {
		games = games[:limit]
	}
	return games, nil
}

func (m *memoryRepo) GetGameByID(_ context.Context, id string) (*domain.GameRecord, error) {
	for i := range m.games {
		if m.games[i].ID == id {
			return &m.games[i], nil
		}
	}
	return nil, domain.ErrGameNotFound
}

func (m *memoryRepo) DeleteGamesBefore(_ context.Context, cutoff time.Time) (int64, error) {
	kept := m.games[:0]
	var n int64
	for _, g := range m.games {
		if g.FinishedAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, g)
	}
	m.games = kept
	return n, nil
}

type memoryCache struct {
	values map[string]string
	fail   bool
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if c.fail {
		return errors.New("cache down")
	}
	switch v := value.(type) {
	case []byte:
		c.values[key] = string(v)
	case string:
		c.values[key] = v
	}
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	if c.fail {
		return "", errors.New("cache down")
	}
	v, ok := c.values[key]
	if !ok {
		return "", errors.New("miss")
	}
	return v, nil
}

func (c *memoryCache) Del(_ context.Context, keys ...string) error {
	if c.fail {
		return errors.New("cache down")
	}
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

type recordingPublisher struct {
	events []map[string]interface{}
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, event string, payload map[string]interface{}) error {
	if p.fail {
		return errors.New("broker down")
	}
	payload["event"] = event
	p.events = append(p.events, payload)
	return nil
}

func finishedGame(t *testing.T, mode domain.GameMode, cols ...int) *domain.Game {
	t.Helper()
	g := domain.NewGame(mode)
	for _, col := range cols {
		if _, err := g.MakeMove(col); err != nil {
			t.Fatal(err)
		}
	}
	if !g.IsFinished() {
		g.Abandon()
	}
	return g
}

func TestRecordGame(t *testing.T) {
	repo := newMemoryRepo()
	cache := &memoryCache{values: map[string]string{totalsCacheKey: "stale"}}
	pub := &recordingPublisher{}
	svc := NewService(repo, cache, pub, time.Minute)

	g := finishedGame(t, domain.ModePvP, 0, 1, 0, 1, 0, 1, 0)
	rec, err := svc.RecordGame(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Outcome != domain.OutcomePlayer1Win || len(repo.games) != 1 {
		t.Fatalf("game not stored: %+v", rec)
	}
	if _, ok := cache.values[totalsCacheKey]; ok {
		t.Fatal("cached totals must be invalidated")
	}
	if len(pub.events) != 1 || pub.events[0]["event"] != "game_finished" || pub.events[0]["game_id"] != g.ID {
		t.Fatalf("unexpected events %+v", pub.events)
	}
}

func TestRecordGameRejectsActiveGame(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil, time.Minute)
	if _, err := svc.RecordGame(context.Background(), domain.NewGame(domain.ModeEasy)); !errors.Is(err, domain.ErrGameInProgress) {
		t.Fatalf("expected ErrGameInProgress, got %v", err)
	}
}

func TestRecordGameSurvivesCacheAndPublisherFailures(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, &memoryCache{values: map[string]string{}, fail: true}, &recordingPublisher{fail: true}, time.Minute)

	if _, err := svc.RecordGame(context.Background(), finishedGame(t, domain.ModeMedium, 3)); err != nil {
		t.Fatalf("side effects must not fail the game: %v", err)
	}
	if len(repo.games) != 1 {
		t.Fatal("game not stored")
	}

	totals, err := svc.Totals(context.Background())
	if err != nil || totals[2].Abandoned != 1 {
		t.Fatalf("expected totals from the repository, got %+v (%v)", totals, err)
	}
}

func TestRecordGameRepositoryFailure(t *testing.T) {
	repo := newMemoryRepo()
	repo.failSave = true
	pub := &recordingPublisher{}
	svc := NewService(repo, nil, pub, time.Minute)

	if _, err := svc.RecordGame(context.Background(), finishedGame(t, domain.ModeHard, 3)); err == nil {
		t.Fatal("expected the repository error")
	}
	if len(pub.events) != 0 {
		t.Fatal("nothing should be published for an unsaved game")
	}
}

func TestTotalsCacheAside(t *testing.T) {
	repo := newMemoryRepo()
	cache := &memoryCache{values: map[string]string{}}
	svc := NewService(repo, cache, nil, time.Minute)
	ctx := context.Background()

	svc.RecordGame(ctx, finishedGame(t, domain.ModeEasy, 3))

	first, err := svc.Totals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(domain.Modes) {
		t.Fatalf("expected every mode, got %+v", first)
	}
	for i, mode := range domain.Modes {
		if first[i].Mode != mode {
			t.Fatalf("position %d: expected %s, got %s", i, mode, first[i].Mode)
		}
	}
	if first[1].GamesPlayed != 1 || first[1].Abandoned != 1 || first[0].GamesPlayed != 0 {
		t.Fatalf("unexpected totals %+v", first)
	}

	second, _ := svc.Totals(ctx)
	if repo.totalsHits != 1 {
		t.Fatalf("second read should come from the cache, repository hit %d times", repo.totalsHits)
	}
	if second[1] != first[1] {
		t.Fatalf("cached totals differ: %+v vs %+v", second[1], first[1])
	}

	svc.RecordGame(ctx, finishedGame(t, domain.ModeEasy, 3))
	third, _ := svc.Totals(ctx)
	if repo.totalsHits != 2 || third[1].GamesPlayed != 2 {
		t.Fatalf("recording must invalidate the cache: hits=%d totals=%+v", repo.totalsHits, third[1])
	}
}

func TestRecentGamesClampsLimit(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil, time.Minute)
	ctx := context.Background()

	games, err := svc.RecentGames(ctx, 0)
	if err != nil || games == nil || len(games) != 0 {
		t.Fatalf("expected an empty, non-nil list, got %v (%v)", games, err)
	}

	base := time.Now()
	for i := 0; i < MaxHistoryLimit+5; i++ {
		repo.games = append(repo.games, domain.GameRecord{ID: string(rune('a' + i%26)), FinishedAt: base.Add(time.Duration(i) * time.Second)})
	}
	if games, _ = svc.RecentGames(ctx, 1000); len(games) != MaxHistoryLimit {
		t.Fatalf("expected %d games, got %d", MaxHistoryLimit, len(games))
	}
	if games, _ = svc.RecentGames(ctx, -3); len(games) != DefaultHistoryLimit {
		t.Fatalf("expected %d games, got %d", DefaultHistoryLimit, len(games))
	}
}

func TestPurgeBefore(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil, time.Minute)
	now := time.Now()
	repo.games = []domain.GameRecord{
		{ID: "old", FinishedAt: now.Add(-48 * time.Hour)},
		{ID: "new", FinishedAt: now},
	}

	n, err := svc.PurgeBefore(context.Background(), now.Add(-24*time.Hour))
	if err != nil || n != 1 {
		t.Fatalf("expected 1 purged, got %d (%v)", n, err)
	}
	if _, err := svc.Game(context.Background(), "old"); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if rec, err := svc.Game(context.Background(), "new"); err != nil || rec.ID != "new" {
		t.Fatalf("expected the new game, got %v (%v)", rec, err)
	}
}
