package stats

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/iamasit07/connect4-terminal/internal/domain"
	"github.com/pkg/errors"
)

const totalsCacheKey = "stats:totals"

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type Repository interface {
	SaveGame(ctx context.Context, rec *domain.GameRecord) error
	GetTotals(ctx context.Context) ([]domain.ModeStats, error)
	GetRecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error)
	GetGameByID(ctx context.Context, id string) (*domain.GameRecord, error)
	DeleteGamesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type Publisher interface {
	Publish(ctx context.Context, event string, payload map[string]interface{}) error
}

// Service records finished games and answers statistics queries
type Service struct {
	repo      Repository
	cache     CacheRepository // Optional, can be nil
	publisher Publisher       // Optional, can be nil
	cacheTTL  time.Duration
}

func NewService(repo Repository, cache CacheRepository, publisher Publisher, cacheTTL time.Duration) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		cacheTTL:  cacheTTL,
	}
}

// RecordGame stores a finished game. Only the repository can fail it; the
// cache and analytics are best effort.
func (s *Service) RecordGame(ctx context.Context, g *domain.Game) (*domain.GameRecord, error) {
	rec, err := g.Record()
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveGame(ctx, rec); err != nil {
		return nil, errors.Wrapf(err, "save game %s", rec.ID)
	}

	s.invalidateTotals(ctx)

	if s.publisher != nil {
		payload := map[string]interface{}{
			"game_id":     rec.ID,
			"mode":        rec.Mode,
			"outcome":     rec.Outcome,
			"winner":      rec.Winner,
			"total_moves": rec.TotalMoves,
			"duration_ms": rec.FinishedAt.Sub(rec.StartedAt).Milliseconds(),
		}
		if err := s.publisher.Publish(ctx, "game_finished", payload); err != nil {
			log.Printf("[STATS] Failed to publish game %s: %v", rec.ID, err)
		}
	}

	log.Printf("[STATS] Recorded %s game %s: %s after %d moves", rec.Mode, rec.ID, rec.Outcome, rec.TotalMoves)
	return rec, nil
}

// Totals returns one entry per game mode, in domain.Modes order, zero-filled
// for modes that were never played.
func (s *Service) Totals(ctx context.Context) ([]domain.ModeStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, totalsCacheKey); err == nil && cached != "" {
			var totals []domain.ModeStats
			if err := json.Unmarshal([]byte(cached), &totals); err == nil {
				return totals, nil
			}
			log.Printf("[STATS] Ignoring corrupt cached totals")
		}
	}

	stored, err := s.repo.GetTotals(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load totals")
	}

	byMode := make(map[domain.GameMode]domain.ModeStats, len(stored))
	for _, st := range stored {
		byMode[st.Mode] = st
	}
	totals := make([]domain.ModeStats, 0, len(domain.Modes))
	for _, mode := range domain.Modes {
		st, ok := byMode[mode]
		if !ok {
			st = domain.ModeStats{Mode: mode}
		}
		totals = append(totals, st)
	}

	if s.cache != nil {
		if data, err := json.Marshal(totals); err == nil {
			if err := s.cache.Set(ctx, totalsCacheKey, data, s.cacheTTL); err != nil {
				log.Printf("[STATS] Failed to cache totals: %v", err)
			}
		}
	}
	return totals, nil
}

// RecentGames returns the newest games first. limit is clamped to
// 1..MaxHistoryLimit, with DefaultHistoryLimit for anything below 1.
func (s *Service) RecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	games, err := s.repo.GetRecentGames(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "load recent games")
	}
	if games == nil {
		games = []domain.GameRecord{}
	}
	return games, nil
}

func (s *Service) Game(ctx context.Context, id string) (*domain.GameRecord, error) {
	return s.repo.GetGameByID(ctx, id)
}

// PurgeBefore deletes history older than cutoff. Totals are kept.
func (s *Service) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.repo.DeleteGamesBefore(ctx, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "purge history")
	}
	return n, nil
}

func (s *Service) invalidateTotals(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, totalsCacheKey); err != nil {
		log.Printf("[STATS] Failed to invalidate cached totals: %v", err)
	}
}
