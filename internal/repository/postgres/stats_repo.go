package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/iamasit07/connect4-terminal/internal/domain"
	"github.com/pkg/errors"
)

type StatsRepo struct {
	DB *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{DB: db}
}

// SaveGame stores a finished game and bumps its mode counters transactionally.
// Saving the same game twice leaves the counters alone.
func (r *StatsRepo) SaveGame(ctx context.Context, rec *domain.GameRecord) error {
	columnsJSON, err := json.Marshal(rec.Columns)
	if err != nil {
		return errors.Wrap(err, "failed to marshal columns")
	}
	boardJSON, err := json.Marshal(rec.Board)
	if err != nil {
		return errors.Wrap(err, "failed to marshal board state")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	query := `
	INSERT INTO game (game_id, mode, player1_name, player2_name, outcome, winner_name, columns_played, total_moves, board_state, started_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (game_id) DO NOTHING;
	`
	res, err := tx.ExecContext(ctx, query, rec.ID, string(rec.Mode), rec.Player1, rec.Player2, string(rec.Outcome),
		nullString(rec.Winner), columnsJSON, rec.TotalMoves, boardJSON, rec.StartedAt, rec.FinishedAt)
	if err != nil {
		return errors.Wrap(err, "failed to insert game record")
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if inserted == 1 {
		if err := r.bumpModeStatsTx(ctx, tx, rec.Mode, rec.Outcome); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// bumpModeStatsTx upserts the counters for one more game of mode
func (r *StatsRepo) bumpModeStatsTx(ctx context.Context, tx *sql.Tx, mode domain.GameMode, outcome domain.Outcome) error {
	var delta domain.ModeStats
	delta.Add(outcome)

	query := `
	INSERT INTO mode_stats (mode, games_played, player1_wins, player2_wins, draws, abandoned)
	VALUES ($1, 1, $2, $3, $4, $5)
	ON CONFLICT (mode) DO UPDATE SET
		games_played = mode_stats.games_played + 1,
		player1_wins = mode_stats.player1_wins + EXCLUDED.player1_wins,
		player2_wins = mode_stats.player2_wins + EXCLUDED.player2_wins,
		draws = mode_stats.draws + EXCLUDED.draws,
		abandoned = mode_stats.abandoned + EXCLUDED.abandoned;
	`
	_, err := tx.ExecContext(ctx, query, string(mode), delta.Player1Wins, delta.Player2Wins, delta.Draws, delta.Abandoned)
	if err != nil {
		return errors.Wrap(err, "failed to update mode stats in transaction")
	}
	return nil
}

func (r *StatsRepo) GetTotals(ctx context.Context) ([]domain.ModeStats, error) {
	query := `
	SELECT mode, games_played, player1_wins, player2_wins, draws, abandoned
	FROM mode_stats
	ORDER BY mode;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query mode stats")
	}
	defer rows.Close()

	var totals []domain.ModeStats
	for rows.Next() {
		var st domain.ModeStats
		var mode string
		if err := rows.Scan(&mode, &st.GamesPlayed, &st.Player1Wins, &st.Player2Wins, &st.Draws, &st.Abandoned); err != nil {
			return nil, errors.Wrap(err, "failed to scan mode stats")
		}
		st.Mode = domain.GameMode(mode)
		totals = append(totals, st)
	}
	return totals, rows.Err()
}

const selectGame = `
	SELECT game_id, mode, player1_name, player2_name, outcome, winner_name,
	       columns_played, total_moves, board_state, started_at, finished_at
	FROM game
`

// GetRecentGames returns up to limit games, newest first
func (r *StatsRepo) GetRecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	rows, err := r.DB.QueryContext(ctx, selectGame+` ORDER BY finished_at DESC LIMIT $1;`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query games")
	}
	defer rows.Close()

	var games []domain.GameRecord
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *rec)
	}
	return games, rows.Err()
}

func (r *StatsRepo) GetGameByID(ctx context.Context, id string) (*domain.GameRecord, error) {
	row := r.DB.QueryRowContext(ctx, selectGame+` WHERE game_id = $1;`, id)
	rec, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGameNotFound
	}
	return rec, err
}

func (r *StatsRepo) DeleteGamesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM game WHERE finished_at < $1;`, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete old games")
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanGame(s scanner) (*domain.GameRecord, error) {
	var rec domain.GameRecord
	var mode, outcome string
	var winner sql.NullString
	var columnsJSON, boardJSON []byte

	err := s.Scan(&rec.ID, &mode, &rec.Player1, &rec.Player2, &outcome, &winner,
		&columnsJSON, &rec.TotalMoves, &boardJSON, &rec.StartedAt, &rec.FinishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to scan game")
	}

	rec.Mode = domain.GameMode(mode)
	rec.Outcome = domain.Outcome(outcome)
	rec.Winner = winner.String
	if err := json.Unmarshal(columnsJSON, &rec.Columns); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal columns")
	}
	if err := json.Unmarshal(boardJSON, &rec.Board); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal board state")
	}
	return &rec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
