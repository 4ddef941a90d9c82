package domain

import (
	"testing"

	"github.com/pkg/errors"
)

// parseBoard reads six rows of seven cells, top row first: '.' empty, 'X' Player1, 'O' Player2.
func parseBoard(t *testing.T, rows ...string) *Board {
	t.Helper()
	if len(rows) != Rows {
		t.Fatalf("need %d rows, got %d", Rows, len(rows))
	}
	grid := make([][]int, Rows)
	for r, line := range rows {
		if len(line) != Columns {
			t.Fatalf("row %d: need %d cells, got %q", r, Columns, line)
		}
		grid[r] = make([]int, Columns)
		for c, ch := range line {
			switch ch {
			case 'X':
				grid[r][c] = int(Player1)
			case 'O':
				grid[r][c] = int(Player2)
			}
		}
	}
	b, err := NewBoardFromGrid(grid)
	if err != nil {
		t.Fatalf("bad test board: %v", err)
	}
	return b
}

// drawnBoard is full and has no four in a row anywhere.
func drawnBoard(t *testing.T) *Board {
	return parseBoard(t,
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
	)
}

func TestDropFollowsGravity(t *testing.T) {
	b := NewBoard()

	for want := Rows - 1; want >= 0; want-- {
		m, err := b.Drop(2, Player1)
		if err != nil {
			t.Fatalf("drop %d: %v", want, err)
		}
		if m.Row != want || m.Column != 2 {
			t.Fatalf("expected (%d,2), got %+v", want, m)
		}
	}

	if _, err := b.Drop(2, Player2); !errors.Is(err, ErrColumnFull) {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
	if _, err := b.Drop(7, Player1); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	if _, err := b.Drop(0, Empty); !errors.Is(err, ErrInvalidPlayer) {
		t.Fatalf("expected ErrInvalidPlayer, got %v", err)
	}
}

func TestLegalColumnsSkipsFullColumns(t *testing.T) {
	b := parseBoard(t,
		"X.....O",
		"O.....X",
		"X.....O",
		"O.....X",
		"X.....O",
		"O.....X",
	)

	got := b.LegalColumns()
	want := []int{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if b.LandingRow(0) != -1 || b.LandingRow(3) != Rows-1 {
		t.Fatalf("unexpected landing rows: col0=%d col3=%d", b.LandingRow(0), b.LandingRow(3))
	}
}

func TestPlaceRetractRestoresBoard(t *testing.T) {
	b := parseBoard(t,
		".......",
		".......",
		"...O...",
		"..XX...",
		"..OXO..",
		".XOOXX.",
	)

	for _, player := range []PlayerID{Player1, Player2} {
		for _, col := range b.LegalColumns() {
			before := b.Grid()
			row := b.Place(col, player)
			if row < 0 {
				t.Fatalf("place on legal column %d failed", col)
			}
			if b.Cell(row, col) != player {
				t.Fatalf("column %d: disk not at row %d", col, row)
			}
			b.Retract(row, col)
			if b.Grid() != before {
				t.Fatalf("column %d: board not restored after retract", col)
			}
		}
	}
}

func TestPlaceOnFullColumnReturnsSentinel(t *testing.T) {
	b := drawnBoard(t)
	before := b.Grid()

	for col := 0; col < Columns; col++ {
		if row := b.Place(col, Player1); row != -1 {
			t.Fatalf("column %d: expected -1, got %d", col, row)
		}
	}
	if b.Grid() != before {
		t.Fatal("failed place changed the board")
	}
}

func TestSimulationUndo(t *testing.T) {
	b := NewBoard()
	before := b.Grid()

	sim, ok := b.Simulate(3, Player2)
	if !ok {
		t.Fatal("simulate on empty board failed")
	}
	if sim.Move != (Move{Row: Rows - 1, Column: 3}) {
		t.Fatalf("unexpected simulated move %+v", sim.Move)
	}
	sim.Undo()
	sim.Undo()
	if b.Grid() != before {
		t.Fatal("board not restored after undo")
	}

	full := drawnBoard(t)
	if sim, ok := full.Simulate(0, Player1); ok || sim.Move != NoMove {
		t.Fatalf("expected failed simulation, got %+v ok=%v", sim.Move, ok)
	}
}

func TestNewBoardFromGridRejectsFloatingDisk(t *testing.T) {
	grid := make([][]int, Rows)
	for r := range grid {
		grid[r] = make([]int, Columns)
	}
	grid[3][4] = int(Player1)

	if _, err := NewBoardFromGrid(grid); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("expected ErrInvalidBoard, got %v", err)
	}

	grid[3][4] = 0
	grid[5][4] = 9
	if _, err := NewBoardFromGrid(grid); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("expected ErrInvalidBoard for bad cell, got %v", err)
	}

	if _, err := NewBoardFromGrid(grid[:5]); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("expected ErrInvalidBoard for short grid, got %v", err)
	}
}

func TestIntsRoundTrip(t *testing.T) {
	b := parseBoard(t,
		".......",
		".......",
		".......",
		".......",
		"...X...",
		"..OXO..",
	)

	again, err := NewBoardFromGrid(b.Ints())
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if again.Grid() != b.Grid() {
		t.Fatal("grid changed in round trip")
	}
	if b.MoveCount() != 4 {
		t.Fatalf("expected 4 disks, got %d", b.MoveCount())
	}
}
