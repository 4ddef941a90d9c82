package domain

import (
	"testing"

	"github.com/pkg/errors"
)

func TestRecordWonGame(t *testing.T) {
	g := NewGame(ModeHard)
	if _, err := g.Record(); !errors.Is(err, ErrGameInProgress) {
		t.Fatalf("expected ErrGameInProgress, got %v", err)
	}

	// the computer side stacks column 6 while X scatters
	for _, col := range []int{0, 6, 1, 6, 3, 6, 0, 6} {
		if _, err := g.MakeMove(col); err != nil {
			t.Fatal(err)
		}
	}

	rec, err := g.Record()
	if err != nil {
		t.Fatal(err)
	}
	if rec.Outcome != OutcomePlayer2Win || rec.Winner != "Charles" || rec.Player1 != "You" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.TotalMoves != 8 || len(rec.Columns) != 8 || rec.Board[2][6] != int(Player2) {
		t.Fatalf("record does not match the game: %+v", rec)
	}
}

func TestRecordAbandonedAndDraw(t *testing.T) {
	g := NewGame(ModePvP)
	g.MakeMove(3)
	g.Abandon()
	rec, err := g.Record()
	if err != nil {
		t.Fatal(err)
	}
	if rec.Outcome != OutcomeAbandoned || rec.Winner != "" || rec.Player2 != "Player 2" {
		t.Fatalf("unexpected record %+v", rec)
	}

	g = NewGame(ModePvP)
	g.Board = drawnBoard(t)
	g.Status = StatusDraw
	if rec, _ = g.Record(); rec.Outcome != OutcomeDraw {
		t.Fatalf("expected draw, got %s", rec.Outcome)
	}
}

func TestModeStatsAdd(t *testing.T) {
	s := ModeStats{Mode: ModeEasy}
	for _, o := range []Outcome{OutcomePlayer1Win, OutcomePlayer2Win, OutcomePlayer2Win, OutcomeDraw, OutcomeAbandoned} {
		s.Add(o)
	}
	want := ModeStats{Mode: ModeEasy, GamesPlayed: 5, Player1Wins: 1, Player2Wins: 2, Draws: 1, Abandoned: 1}
	if s != want {
		t.Fatalf("expected %+v, got %+v", want, s)
	}
}
