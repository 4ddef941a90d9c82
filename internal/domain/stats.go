package domain

import "time"

type Outcome string

const (
	OutcomePlayer1Win Outcome = "player1_win"
	OutcomePlayer2Win Outcome = "player2_win"
	OutcomeDraw       Outcome = "draw"
	OutcomeAbandoned  Outcome = "abandoned"
)

// GameRecord is a finished game as it is stored and served.
type GameRecord struct {
	ID         string    `json:"id"`
	Mode       GameMode  `json:"mode"`
	Player1    string    `json:"player1"`
	Player2    string    `json:"player2"`
	Outcome    Outcome   `json:"outcome"`
	Winner     string    `json:"winner,omitempty"`
	Columns    []int     `json:"columns"`
	TotalMoves int       `json:"total_moves"`
	Board      [][]int   `json:"board"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// ModeStats are the running totals for one game mode.
type ModeStats struct {
	Mode        GameMode `json:"mode"`
	GamesPlayed int      `json:"games_played"`
	Player1Wins int      `json:"player1_wins"`
	Player2Wins int      `json:"player2_wins"`
	Draws       int      `json:"draws"`
	Abandoned   int      `json:"abandoned"`
}

// Add counts one more game with the given outcome.
func (s *ModeStats) Add(outcome Outcome) {
	s.GamesPlayed++
	switch outcome {
	case OutcomePlayer1Win:
		s.Player1Wins++
	case OutcomePlayer2Win:
		s.Player2Wins++
	case OutcomeDraw:
		s.Draws++
	case OutcomeAbandoned:
		s.Abandoned++
	}
}

// PlayerNames returns the display names of both sides for a mode. Against
// the computer the second name is the bot's.
func PlayerNames(mode GameMode) (string, string) {
	if mode.IsComputer() {
		return "You", GetBotName(mode)
	}
	return "Player 1", "Player 2"
}

// Record snapshots a finished game. It returns ErrGameInProgress while the
// game is still active.
func (g *Game) Record() (*GameRecord, error) {
	if !g.IsFinished() {
		return nil, ErrGameInProgress
	}

	p1, p2 := PlayerNames(g.Mode)
	rec := &GameRecord{
		ID:         g.ID,
		Mode:       g.Mode,
		Player1:    p1,
		Player2:    p2,
		Columns:    g.Columns(),
		TotalMoves: g.MoveCount(),
		Board:      g.Board.Ints(),
		StartedAt:  g.StartedAt,
		FinishedAt: g.FinishedAt,
	}

	switch {
	case g.Status == StatusDraw:
		rec.Outcome = OutcomeDraw
	case g.Status == StatusAbandoned:
		rec.Outcome = OutcomeAbandoned
	case g.Winner == Player1:
		rec.Outcome = OutcomePlayer1Win
		rec.Winner = p1
	default:
		rec.Outcome = OutcomePlayer2Win
		rec.Winner = p2
	}
	return rec, nil
}
