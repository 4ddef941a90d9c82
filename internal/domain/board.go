package domain

import "github.com/pkg/errors"

// Board is the 6x7 grid. Row 0 is the top row and row 5 the bottom one,
// so a disk dropped into a column lands on the highest free row index.
type Board struct {
	cells [Rows][Columns]PlayerID
}

func NewBoard() *Board {
	return &Board{}
}

// NewBoardFromGrid builds a board from a stored Rows x Columns grid of player ids.
// It rejects anything a real game could not have produced cell by cell, including
// disks floating above an empty cell.
func NewBoardFromGrid(grid [][]int) (*Board, error) {
	if len(grid) != Rows {
		return nil, errors.Wrapf(ErrInvalidBoard, "expected %d rows, got %d", Rows, len(grid))
	}

	b := NewBoard()
	for row := range grid {
		if len(grid[row]) != Columns {
			return nil, errors.Wrapf(ErrInvalidBoard, "row %d: expected %d columns, got %d", row, Columns, len(grid[row]))
		}
		for col, v := range grid[row] {
			p := PlayerID(v)
			if p != Empty && !IsPlayer(p) {
				return nil, errors.Wrapf(ErrInvalidBoard, "cell (%d,%d) holds %d", row, col, v)
			}
			b.cells[row][col] = p
		}
	}

	// gravity: nothing may sit on top of an empty cell
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows-1; row++ {
			if b.cells[row][col] != Empty && b.cells[row+1][col] == Empty {
				return nil, errors.Wrapf(ErrInvalidBoard, "disk at (%d,%d) is floating", row, col)
			}
		}
	}

	return b, nil
}

func (b *Board) Cell(row, col int) PlayerID {
	if !inBounds(row, col) {
		return Empty
	}
	return b.cells[row][col]
}

// Grid returns a copy of the cells; changing it does not touch the board.
func (b *Board) Grid() [Rows][Columns]PlayerID {
	return b.cells
}

// Ints converts the board for JSON storage.
func (b *Board) Ints() [][]int {
	out := make([][]int, Rows)
	for row := range out {
		out[row] = make([]int, Columns)
		for col := range out[row] {
			out[row][col] = int(b.cells[row][col])
		}
	}
	return out
}

func (b *Board) IsValidMove(column int) bool {
	if column < 0 || column >= Columns {
		return false
	}

	// here cells[0] represents the top row (0 -> top and 5 -> bottom)
	return b.cells[0][column] == Empty
}

// LandingRow is the row a disk dropped into column would occupy, or -1.
func (b *Board) LandingRow(column int) int {
	if column < 0 || column >= Columns {
		return -1
	}
	for row := Rows - 1; row >= 0; row-- {
		if b.cells[row][column] == Empty {
			return row
		}
	}
	return -1
}

// LegalColumns lists the columns that can still take a disk, left to right.
func (b *Board) LegalColumns() []int {
	cols := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.cells[0][col] == Empty {
			cols = append(cols, col)
		}
	}
	return cols
}

func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b.cells[0][c] == Empty {
			return false
		}
	}

	return true
}

func (b *Board) MoveCount() int {
	n := 0
	for row := range b.cells {
		for _, p := range b.cells[row] {
			if p != Empty {
				n++
			}
		}
	}
	return n
}

// Place drops a disk for player into column and returns the row it landed on,
// or -1 if the column is full. It does not validate player; search code only
// ever passes one of the two sides.
func (b *Board) Place(column int, player PlayerID) int {
	row := b.LandingRow(column)
	if row < 0 {
		return -1
	}
	b.cells[row][column] = player
	return row
}

// Retract clears a cell unconditionally. Paired with Place during search.
func (b *Board) Retract(row, column int) {
	if inBounds(row, column) {
		b.cells[row][column] = Empty
	}
}

// Simulation is a placement that has to be undone before the caller returns.
type Simulation struct {
	board *Board
	Move  Move
}

// Undo restores the cell the simulation filled. Calling it twice is harmless.
func (s *Simulation) Undo() {
	if s.board == nil {
		return
	}
	s.board.Retract(s.Move.Row, s.Move.Column)
	s.board = nil
}

// Simulate places a hypothetical disk and returns the guard that removes it.
// ok is false when the column cannot take a disk; nothing is changed then.
func (b *Board) Simulate(column int, player PlayerID) (sim Simulation, ok bool) {
	row := b.Place(column, player)
	if row < 0 {
		return Simulation{Move: NoMove}, false
	}
	return Simulation{board: b, Move: Move{Row: row, Column: column}}, true
}

// Drop is the real, non-reversible placement used by the game loop.
func (b *Board) Drop(column int, player PlayerID) (Move, error) {
	if !IsPlayer(player) {
		return NoMove, ErrInvalidPlayer
	}
	if column < 0 || column >= Columns {
		return NoMove, ErrInvalidMove
	}

	// shifting the disk from top to bottom till it
	// reaches the end or another disk
	row := b.Place(column, player)
	if row < 0 {
		return NoMove, ErrColumnFull
	}
	return Move{Row: row, Column: column}, nil
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}
