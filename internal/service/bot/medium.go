package bot

import (
	"github.com/iamasit07/connect4-terminal/internal/domain"
)

const (
	// chance, out of 100, that medium plays its best strategic column
	strategicChance = 70
)

// centre-first order medium shuffles when it plays loosely
var centerPreference = [domain.Columns]int{3, 2, 4, 1, 5, 0, 6}

// SelectMediumMove
// 1. win if it can
// 2. block the opponent's immediate win
// 3. 70% of the time, play the column with the best threat + centre score
// 4. otherwise the first open column of a shuffled centre-first order
func (e *Engine) SelectMediumMove() domain.Move {
	if move := e.FindWinningMove(e.player); move != domain.NoMove {
		return move
	}

	if move := e.FindWinningMove(e.opponent); move != domain.NoMove {
		return move
	}

	if move := e.findBestStrategicMove(e.player); move != domain.NoMove {
		if e.rng.Intn(100) < strategicChance {
			return move
		}
	}

	order := centerPreference
	for i := range order {
		j := e.rng.Intn(domain.Columns)
		order[i], order[j] = order[j], order[i]
	}
	for _, col := range order {
		if move := e.resolve(col); move != domain.NoMove {
			return move
		}
	}

	return e.SelectEasyMove()
}

// findBestStrategicMove scores every open column by the connections its
// landing cell would make plus a centre bonus. Ties keep the leftmost column.
func (e *Engine) findBestStrategicMove(player domain.PlayerID) domain.Move {
	bestScore := -1
	best := domain.NoMove

	for _, col := range e.board.LegalColumns() {
		move := e.resolve(col)
		score := e.countThreats(col, player) + centerBonus(col)
		if score > bestScore {
			bestScore = score
			best = move
		}
	}
	return best
}

// countThreats drops player's disk into col for a moment and adds up the
// horizontal and vertical runs through it. A run only counts once it
// connects at least two disks.
func (e *Engine) countThreats(col int, player domain.PlayerID) int {
	sim, ok := e.board.Simulate(col, player)
	if !ok {
		return 0
	}
	defer sim.Undo()

	threats := 0
	for _, axis := range [][2]int{{0, 1}, {1, 0}} {
		count := 1 + e.run(sim.Move, axis[0], axis[1], player) + e.run(sim.Move, -axis[0], -axis[1], player)
		if count >= 2 {
			threats += count
		}
	}
	return threats
}

// run counts player's disks walking from m in one direction, not including m.
func (e *Engine) run(m domain.Move, dRow, dCol int, player domain.PlayerID) int {
	n := 0
	r, c := m.Row+dRow, m.Column+dCol
	for r >= 0 && r < domain.Rows && c >= 0 && c < domain.Columns && e.board.Cell(r, c) == player {
		n++
		r += dRow
		c += dCol
	}
	return n
}

func centerBonus(col int) int {
	switch col {
	case 3:
		return 3
	case 2, 4:
		return 2
	case 1, 5:
		return 1
	default:
		return 0
	}
}
