package domain

import (
	"time"

	"github.com/google/uuid"
)

// Game is one running session. It owns the board; bots borrow it to search
// and hand back a Move, but only MakeMove commits.
type Game struct {
	ID            string
	Mode          GameMode
	Board         *Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	Moves         []Move
	StartedAt     time.Time
	FinishedAt    time.Time
}

func NewGame(mode GameMode) *Game {
	return &Game{
		ID:            uuid.New().String(),
		Mode:          mode,
		Board:         NewBoard(),
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
		Moves:         make([]Move, 0, MaxMoves),
		StartedAt:     time.Now(),
	}
}

// MakeMove drops the current player's disk into column, then checks for a
// win from that cell and for a full board before passing the turn.
func (g *Game) MakeMove(column int) (Move, error) {
	if g.Status != StatusActive {
		return NoMove, ErrGameOver
	}

	if !g.Board.IsValidMove(column) {
		if column >= 0 && column < Columns {
			return NoMove, ErrColumnFull
		}
		return NoMove, ErrInvalidMove
	}

	move, err := g.Board.Drop(column, g.CurrentPlayer)
	if err != nil {
		return NoMove, err
	}
	g.Moves = append(g.Moves, move)

	if g.Board.Winning(move, g.CurrentPlayer) {
		g.Status = StatusWon
		g.Winner = g.CurrentPlayer
		g.FinishedAt = time.Now()
		return move, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		g.FinishedAt = time.Now()
		return move, nil
	}

	g.CurrentPlayer = Opponent(g.CurrentPlayer)
	return move, nil
}

// Abandon ends an active game without a result.
func (g *Game) Abandon() {
	if g.Status != StatusActive {
		return
	}
	g.Status = StatusAbandoned
	g.FinishedAt = time.Now()
}

func (g *Game) MoveCount() int {
	return len(g.Moves)
}

// Columns is the sequence of columns played, in order.
func (g *Game) Columns() []int {
	cols := make([]int, len(g.Moves))
	for i, m := range g.Moves {
		cols[i] = m.Column
	}
	return cols
}

func (g *Game) IsFinished() bool {
	return g.Status != StatusActive
}
