package postgres

import (
	"database/sql"
	"log"
	"time"

	"github.com/iamasit07/connect4-terminal/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

// Open connects with cfg.DBDriver ("pgx" or "postgres" for lib/pq), applies
// the pool settings and pings the server.
func Open(cfg *config.Config) (*sql.DB, error) {
	driver := cfg.DBDriver
	if driver != "pgx" && driver != "postgres" {
		log.Printf("Unknown DB_DRIVER %q, using pgx", driver)
		driver = "pgx"
	}

	db, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s connection", driver)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeMin) * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "unable to connect to database")
	}

	log.Printf("Database connected successfully (%s)", driver)
	return db, nil
}
