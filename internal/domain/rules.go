package domain

// the four lines a disk can be part of, as (dRow, dCol).
// each axis is scanned in both directions from the placed disk.
var axes = [4][2]int{
	{1, 0},  // vertical
	{0, 1},  // horizontal
	{-1, 1}, // diagonal /
	{1, 1},  // diagonal \
}

// Winning reports whether the disk at m completes four in a row for player.
// It must be called right after player's disk landed on m; any other cell
// (empty, out of range, owned by the other side) is reported as no win.
//
// The count starts at 1 for the placed disk and both halves of an axis add
// to the same count, so a disk dropped into the gap of X X _ X wins.
func (b *Board) Winning(m Move, player PlayerID) bool {
	if !IsPlayer(player) || !inBounds(m.Row, m.Column) || b.cells[m.Row][m.Column] != player {
		return false
	}

	for _, axis := range axes {
		count := 1
		count = b.extend(m, axis[0], axis[1], player, count)
		count = b.extend(m, -axis[0], -axis[1], player, count)
		if count >= ToWin {
			return true
		}
	}
	return false
}

// extend walks away from m adding same-player disks to count until it hits
// something else or the count reaches ToWin. At most three steps.
func (b *Board) extend(m Move, dRow, dCol int, player PlayerID, count int) int {
	r, c := m.Row+dRow, m.Column+dCol
	for count < ToWin && inBounds(r, c) && b.cells[r][c] == player {
		count++
		r += dRow
		c += dCol
	}
	return count
}

// HasWinner scans every occupied cell through Winning.
func (b *Board) HasWinner() (PlayerID, bool) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			p := b.cells[r][c]
			if p == Empty {
				continue
			}
			if b.Winning(Move{Row: r, Column: c}, p) {
				return p, true
			}
		}
	}
	return Empty, false
}

// IsGameOver is true once anyone has four in a row or the top row is full.
func (b *Board) IsGameOver() bool {
	if _, won := b.HasWinner(); won {
		return true
	}
	return b.IsFull()
}
