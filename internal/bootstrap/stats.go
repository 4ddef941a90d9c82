package bootstrap

import (
	"log"

	"github.com/iamasit07/connect4-terminal/internal/config"
	"github.com/iamasit07/connect4-terminal/internal/events"
	"github.com/iamasit07/connect4-terminal/internal/repository/file"
	"github.com/iamasit07/connect4-terminal/internal/repository/postgres"
	"github.com/iamasit07/connect4-terminal/internal/repository/redis"
	"github.com/iamasit07/connect4-terminal/internal/service/stats"
	"github.com/pkg/errors"
)

// StatsService wires the statistics service from cfg: Postgres when
// DATABASE_URL is set, the JSON file otherwise, plus the optional Redis
// cache and Kafka analytics. The returned func releases all of it.
func StatsService(cfg *config.Config) (*stats.Service, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var repo stats.Repository
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() { db.Close() })

		log.Println("Running database migrations...")
		if err := postgres.RunMigrations(db); err != nil {
			cleanup()
			return nil, func() {}, errors.Wrap(err, "migration failed")
		}
		repo = postgres.NewStatsRepo(db)
	} else {
		fileRepo, err := file.Open(cfg.StatsFile)
		if err != nil {
			return nil, cleanup, err
		}
		log.Printf("Using statistics file %s", cfg.StatsFile)
		repo = fileRepo
	}

	// Setup Redis Cache wrapper if Redis is reachable
	var cache stats.CacheRepository
	if client := redis.NewClient(cfg); client != nil {
		closers = append(closers, func() { client.Close() })
		cache = redis.NewRedisCache(client)
	}

	var publisher stats.Publisher
	if analytics := events.NewAnalytics(cfg.KafkaBrokers, cfg.KafkaTopic); analytics != nil {
		closers = append(closers, func() { analytics.Close() })
		publisher = analytics
	}

	return stats.NewService(repo, cache, publisher, cfg.StatsCacheTTL), cleanup, nil
}
