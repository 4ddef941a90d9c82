package bot

import (
	"github.com/iamasit07/connect4-terminal/internal/domain"
)

// Rand is the part of *math/rand.Rand the bots draw from. Tests plug in a
// scripted source to pin the medium and easy choices.
type Rand interface {
	Intn(n int) int
}

// SearchStats describes the last hard-move decision.
type SearchStats struct {
	Column   int
	Score    int
	Nodes    int
	Shortcut string // "win", "block" or "" when the search ran
}

// Engine picks moves for one side of one board. It searches on that board
// in place (every simulated disk is retracted before a call returns), so an
// Engine must not be shared between goroutines or boards in use elsewhere.
type Engine struct {
	board    *domain.Board
	player   domain.PlayerID
	opponent domain.PlayerID
	rng      Rand
	depth    int
	last     SearchStats
}

func New(board *domain.Board, player domain.PlayerID, rng Rand) *Engine {
	return &Engine{
		board:    board,
		player:   player,
		opponent: domain.Opponent(player),
		rng:      rng,
		depth:    SearchDepth,
	}
}

// SetDepth changes how many plies SelectHardMove searches. Values below 1
// are raised to 1.
func (e *Engine) SetDepth(depth int) {
	e.depth = max(depth, 1)
}

func (e *Engine) Player() domain.PlayerID {
	return e.player
}

func (e *Engine) LastSearch() SearchStats {
	return e.last
}

// SelectMove selects the move based on difficulty
func (e *Engine) SelectMove(difficulty Difficulty) domain.Move {
	switch difficulty {
	case DifficultyEasy:
		return e.SelectEasyMove()
	case DifficultyMedium:
		return e.SelectMediumMove()
	case DifficultyHard:
		return e.SelectHardMove()
	default:
		return e.SelectMediumMove()
	}
}

// FindWinningMove returns the leftmost placement that gives player four in a
// row right now, or domain.NoMove.
func (e *Engine) FindWinningMove(player domain.PlayerID) domain.Move {
	for col := 0; col < domain.Columns; col++ {
		sim, ok := e.board.Simulate(col, player)
		if !ok {
			continue
		}
		won := e.board.Winning(sim.Move, player)
		sim.Undo()
		if won {
			return sim.Move
		}
	}
	return domain.NoMove
}

// resolve turns a chosen column into a Move with gravity applied.
func (e *Engine) resolve(col int) domain.Move {
	row := e.board.LandingRow(col)
	if row < 0 {
		return domain.NoMove
	}
	return domain.Move{Row: row, Column: col}
}
