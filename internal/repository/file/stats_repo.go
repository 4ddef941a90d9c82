package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect4-terminal/internal/domain"
	"github.com/pkg/errors"
)

type document struct {
	Totals map[domain.GameMode]domain.ModeStats `json:"totals"`
	Games  []domain.GameRecord                  `json:"games"`
}

// StatsRepo keeps statistics in a single JSON file. Every write rewrites the
// file through a temporary sibling, so a crash leaves the previous version.
type StatsRepo struct {
	path string
	mu   sync.Mutex
	doc  document
}

// Open loads path, or starts empty when the file does not exist yet.
func Open(path string) (*StatsRepo, error) {
	r := &StatsRepo{
		path: path,
		doc:  document{Totals: map[domain.GameMode]domain.ModeStats{}},
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if len(data) == 0 {
		return r, nil
	}
	if err := json.Unmarshal(data, &r.doc); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if r.doc.Totals == nil {
		r.doc.Totals = map[domain.GameMode]domain.ModeStats{}
	}
	return r, nil
}

func (r *StatsRepo) SaveGame(_ context.Context, rec *domain.GameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.doc.Games {
		if g.ID == rec.ID {
			return nil
		}
	}

	r.doc.Games = append(r.doc.Games, *rec)
	st := r.doc.Totals[rec.Mode]
	st.Mode = rec.Mode
	st.Add(rec.Outcome)
	r.doc.Totals[rec.Mode] = st

	return r.flush()
}

func (r *StatsRepo) GetTotals(context.Context) ([]domain.ModeStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	totals := make([]domain.ModeStats, 0, len(r.doc.Totals))
	for _, st := range r.doc.Totals {
		totals = append(totals, st)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Mode < totals[j].Mode })
	return totals, nil
}

func (r *StatsRepo) GetRecentGames(_ context.Context, limit int) ([]domain.GameRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	games := make([]domain.GameRecord, len(r.doc.Games))
	copy(games, r.doc.Games)
	sort.SliceStable(games, func(i, j int) bool { return games[i].FinishedAt.After(games[j].FinishedAt) })
	if limit > 0 && len(games) > limit {
		games = games[:limit]
	}
	return games, nil
}

func (r *StatsRepo) GetGameByID(_ context.Context, id string) (*domain.GameRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.doc.Games {
		if g.ID == id {
			rec := g
			return &rec, nil
		}
	}
	return nil, domain.ErrGameNotFound
}

func (r *StatsRepo) DeleteGamesBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]domain.GameRecord, 0, len(r.doc.Games))
	for _, g := range r.doc.Games {
		if !g.FinishedAt.Before(cutoff) {
			kept = append(kept, g)
		}
	}
	deleted := int64(len(r.doc.Games) - len(kept))
	if deleted == 0 {
		return 0, nil
	}

	r.doc.Games = kept
	return deleted, r.flush()
}

// flush must be called with mu held.
func (r *StatsRepo) flush() error {
	data, err := json.MarshalIndent(r.doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode stats")
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return errors.Wrapf(err, "replace %s", r.path)
	}
	return nil
}
