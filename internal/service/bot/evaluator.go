package bot

import (
	"github.com/iamasit07/connect4-terminal/internal/domain"
)

const (
	// window scores, from the evaluated player's point of view
	SCORE_FOUR         = 100
	SCORE_THREE_OPEN   = 5
	SCORE_TWO_OPEN     = 2
	SCORE_OPP_FOUR     = -100
	SCORE_OPP_THREE    = -4
	SCORE_CENTER_PIECE = 3
	windowLength       = domain.ToWin
)

// Evaluate scores the board for player by looking at every run of four
// cells (69 of them on a 6x7 board) plus a bonus for disks in the centre
// column. It only reads the board.
func Evaluate(board *domain.Board, player domain.PlayerID) int {
	opponent := domain.Opponent(player)
	score := 0

	// horizontal windows
	for r := 0; r < domain.Rows; r++ {
		for c := 0; c <= domain.Columns-windowLength; c++ {
			score += scoreWindow(board, r, c, 0, 1, player, opponent)
		}
	}

	// vertical windows
	for c := 0; c < domain.Columns; c++ {
		for r := 0; r <= domain.Rows-windowLength; r++ {
			score += scoreWindow(board, r, c, 1, 0, player, opponent)
		}
	}

	// diagonal \ windows, going down and right from the top rows
	for r := 0; r <= domain.Rows-windowLength; r++ {
		for c := 0; c <= domain.Columns-windowLength; c++ {
			score += scoreWindow(board, r, c, 1, 1, player, opponent)
		}
	}

	// diagonal / windows, going up and right from the bottom rows
	for r := windowLength - 1; r < domain.Rows; r++ {
		for c := 0; c <= domain.Columns-windowLength; c++ {
			score += scoreWindow(board, r, c, -1, 1, player, opponent)
		}
	}

	// the centre column takes part in the most windows
	for r := 0; r < domain.Rows; r++ {
		if board.Cell(r, domain.CenterColumn) == player {
			score += SCORE_CENTER_PIECE
		}
	}

	return score
}

func scoreWindow(board *domain.Board, row, col, dRow, dCol int, player, opponent domain.PlayerID) int {
	mine, theirs, empty := 0, 0, 0
	for i := 0; i < windowLength; i++ {
		switch board.Cell(row+i*dRow, col+i*dCol) {
		case player:
			mine++
		case opponent:
			theirs++
		default:
			empty++
		}
	}

	switch {
	case mine == 4:
		return SCORE_FOUR
	case mine == 3 && empty == 1:
		return SCORE_THREE_OPEN
	case mine == 2 && empty == 2:
		return SCORE_TWO_OPEN
	case theirs == 4:
		return SCORE_OPP_FOUR
	case theirs == 3 && empty == 1:
		return SCORE_OPP_THREE
	default:
		// mixed windows can no longer become four for either side
		return 0
	}
}
