package bot

import (
	"log"
	"math"

	"github.com/iamasit07/connect4-terminal/internal/domain"
)

// SearchDepth is how many plies the hard bot looks ahead, its own move included.
const SearchDepth = 5

// SelectHardMove implements hard difficulty using Minimax with alpha-beta pruning
// 1. take an immediate win
// 2. block the opponent's immediate win
// 3. otherwise search every open column SearchDepth plies deep
// and keep the strictly best score, so equal scores keep the leftmost column
func (e *Engine) SelectHardMove() domain.Move {
	e.last = SearchStats{Column: -1}

	if move := e.FindWinningMove(e.player); move != domain.NoMove {
		e.last = SearchStats{Column: move.Column, Shortcut: "win"}
		return move
	}

	if move := e.FindWinningMove(e.opponent); move != domain.NoMove {
		e.last = SearchStats{Column: move.Column, Shortcut: "block"}
		return move
	}

	validColumns := e.board.LegalColumns()
	bestScore := math.MinInt
	bestCol := -1

	for _, col := range validColumns {
		row := e.board.Place(col, e.player)
		score := e.minimax(e.depth-1, math.MinInt, math.MaxInt, false)
		e.board.Retract(row, col)

		if score > bestScore {
			bestScore = score
			bestCol = col
		}
	}

	if bestCol < 0 {
		// nothing beat the sentinel; only possible with no open column at all
		if len(validColumns) == 0 {
			return domain.NoMove
		}
		bestCol = validColumns[0]
	}

	e.last.Column = bestCol
	e.last.Score = bestScore
	log.Printf("[BOT] hard move for player %d: column %d (score %d, %d nodes)", e.player, bestCol, bestScore, e.last.Nodes)

	return e.resolve(bestCol)
}

// minimax implements the minimax algorithm with alpha-beta pruning.
// Scores are always from e.player's point of view: the maximizing side
// drops e.player's disks, the minimizing side drops the opponent's.
func (e *Engine) minimax(depth int, alpha, beta int, maximizing bool) int {
	e.last.Nodes++

	// Terminal conditions
	if depth == 0 || e.board.IsGameOver() {
		return Evaluate(e.board, e.player)
	}

	validColumns := e.board.LegalColumns()
	if len(validColumns) == 0 {
		return 0
	}

	if maximizing {
		maxEval := math.MinInt
		for _, col := range validColumns {
			row := e.board.Place(col, e.player)
			eval := e.minimax(depth-1, alpha, beta, false)
			e.board.Retract(row, col)

			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)
			if beta <= alpha {
				break // Beta cutoff
			}
		}
		return maxEval
	}

	minEval := math.MaxInt
	for _, col := range validColumns {
		row := e.board.Place(col, e.opponent)
		eval := e.minimax(depth-1, alpha, beta, true)
		e.board.Retract(row, col)

		minEval = min(minEval, eval)
		beta = min(beta, eval)
		if beta <= alpha {
			break // Alpha cutoff
		}
	}
	return minEval
}
