package bot

import (
	"github.com/iamasit07/connect4-terminal/internal/domain"
)

// SelectEasyMove plays a uniformly random column, drawing again while the
// drawn column is full. On a full board it returns domain.NoMove.
func (e *Engine) SelectEasyMove() domain.Move {
	if e.board.IsFull() {
		return domain.NoMove
	}

	for {
		col := e.rng.Intn(domain.Columns)
		if move := e.resolve(col); move != domain.NoMove {
			return move
		}
	}
}
