package terminal

import (
	"context"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/iamasit07/connect4-terminal/internal/domain"
	"github.com/iamasit07/connect4-terminal/internal/service/bot"
	"github.com/pkg/errors"
)

type StatsRecorder interface {
	RecordGame(ctx context.Context, g *domain.Game) (*domain.GameRecord, error)
	Totals(ctx context.Context) ([]domain.ModeStats, error)
}

// App is the interactive menu and game loop. The human is always Player 1;
// in computer modes the engine plays Player 2.
type App struct {
	ui    *UI
	stats StatsRecorder
	rng   bot.Rand
}

func NewApp(screen tcell.Screen, stats StatsRecorder, rng bot.Rand) *App {
	return &App{
		ui:    NewUI(screen),
		stats: stats,
		rng:   rng,
	}
}

// Run shows the main menu until the player exits or the screen closes.
func (a *App) Run(ctx context.Context) error {
	for {
		a.ui.Clear()
		a.ui.PrintStyled("=== Connect 4 ===", styleTitle)
		a.ui.PrintCentered("1. Player vs Player")
		a.ui.PrintCentered("2. Player vs Computer")
		a.ui.PrintCentered("3. Statistics")
		a.ui.PrintCentered("4. Exit")
		a.ui.Blank()

		choice, err := a.ui.SelectOption(1, 4)
		if err != nil {
			if errors.Is(err, ErrQuit) {
				choice = 4
			} else {
				return nil
			}
		}

		switch choice {
		case 1:
			err = a.play(ctx, domain.ModePvP)
		case 2:
			err = a.chooseDifficulty(ctx)
		case 3:
			err = a.showStats(ctx)
		case 4:
			a.ui.Clear()
			a.ui.PrintCentered("Thanks for playing!")
			a.ui.PrintCentered("Goodbye!")
			a.ui.Show()
			return nil
		}

		if errors.Is(err, ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) chooseDifficulty(ctx context.Context) error {
	a.ui.Clear()
	a.ui.PrintStyled("Starting Player vs Computer", styleTitle)
	a.ui.PrintCentered("Choose Difficulty")
	a.ui.PrintCentered("1. Easy")
	a.ui.PrintCentered("2. Medium")
	a.ui.PrintCentered("3. Hard")
	a.ui.PrintCentered("4. Back to menu")
	a.ui.Blank()

	choice, err := a.ui.SelectOption(1, 4)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		return a.play(ctx, domain.ModeEasy)
	case 2:
		return a.play(ctx, domain.ModeMedium)
	case 3:
		return a.play(ctx, domain.ModeHard)
	default:
		return nil
	}
}

// play runs one game to the end. Quitting at the column prompt abandons the
// game; it is recorded like any other.
func (a *App) play(ctx context.Context, mode domain.GameMode) error {
	g := domain.NewGame(mode)

	var engine *bot.Engine
	difficulty, vsComputer := bot.DifficultyForMode(mode)
	if vsComputer {
		engine = bot.New(g.Board, domain.Player2, a.rng)
	}
	log.Printf("[GAME] Started %s game %s", mode, g.ID)

	for !g.IsFinished() {
		a.renderGame(g)

		if vsComputer && g.CurrentPlayer == domain.Player2 {
			a.ui.PrintCentered(thinkingLine(mode))
			a.ui.Show()

			move := engine.SelectMove(difficulty)
			if _, err := g.MakeMove(move.Column); err != nil {
				return errors.Wrapf(err, "computer move in column %d", move.Column)
			}
			continue
		}

		a.printTurn(g)
		col, err := a.ui.ReadColumn(g.Board)
		if err != nil {
			g.Abandon()
			a.record(ctx, g)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		if _, err := g.MakeMove(col); err != nil {
			return errors.Wrapf(err, "move in column %d", col)
		}
	}

	a.renderGame(g)
	text, style := resultBanner(g)
	a.ui.PrintStyled(text, style)
	a.record(ctx, g)

	return a.ui.WaitForEnter("Press Enter to return to main menu...")
}

func (a *App) renderGame(g *domain.Game) {
	a.ui.Clear()
	switch g.Mode {
	case domain.ModePvP:
		a.ui.PrintStyled("Starting Player vs Player", styleTitle)
	case domain.ModeHard:
		a.ui.PrintStyled("Starting Player vs Computer - Hard Difficulty", styleTitle)
		a.ui.PrintStyled("Warning: This AI is very challenging!", styleWarning)
	default:
		a.ui.PrintStyled(fmt.Sprintf("Starting Player vs Computer - %s Difficulty", modeTitle(g.Mode)), styleTitle)
	}
	a.ui.Blank()
	a.ui.DrawBoard(g.Board)
	a.ui.Blank()
}

func (a *App) printTurn(g *domain.Game) {
	if g.CurrentPlayer == domain.Player1 {
		a.ui.PrintStyled("Player 1's turn (Red)", stylePlayer1)
	} else {
		a.ui.PrintStyled("Player 2's turn (Yellow)", stylePlayer2)
	}
	a.ui.PrintStyled("(q to leave the game)", styleHint)
}

func (a *App) record(ctx context.Context, g *domain.Game) {
	if a.stats == nil {
		return
	}
	if _, err := a.stats.RecordGame(ctx, g); err != nil {
		log.Printf("[GAME] Failed to record game %s: %v", g.ID, err)
		a.ui.PrintStyled("Could not save this game to the statistics.", styleWarning)
	}
}

func (a *App) showStats(ctx context.Context) error {
	a.ui.Clear()
	a.ui.PrintStyled("=== Statistics ===", styleTitle)
	a.ui.Blank()

	var totals []domain.ModeStats
	var err error
	if a.stats != nil {
		totals, err = a.stats.Totals(ctx)
	}
	if err != nil {
		log.Printf("[GAME] Failed to load statistics: %v", err)
		a.ui.PrintStyled("Statistics are unavailable right now.", styleWarning)
	}

	for _, st := range totals {
		secondSide := "Player 2 wins"
		if st.Mode.IsComputer() {
			secondSide = "Computer wins"
		}
		a.ui.PrintStyled(modeLabel(st.Mode), styleTitle)
		a.ui.PrintCentered(fmt.Sprintf("Games played: %d", st.GamesPlayed))
		a.ui.PrintCentered(fmt.Sprintf("Player 1 wins: %d | %s: %d | Draws: %d | Abandoned: %d",
			st.Player1Wins, secondSide, st.Player2Wins, st.Draws, st.Abandoned))
		a.ui.Blank()
	}

	return a.ui.WaitForEnter("Press Enter to return to main menu...")
}

func resultBanner(g *domain.Game) (string, tcell.Style) {
	if g.Status == domain.StatusDraw {
		return "It's a Draw!", styleTitle
	}

	if g.Winner == domain.Player1 {
		switch g.Mode {
		case domain.ModePvP, domain.ModeMedium:
			return "Player 1 (Red) wins!", stylePlayer1
		case domain.ModeEasy:
			return "Player (Red) wins!", stylePlayer1
		default:
			return "AMAZING! You beat the Hard AI!", stylePlayer1
		}
	}

	switch g.Mode {
	case domain.ModePvP:
		return "Player 2 (Yellow) wins!", stylePlayer2
	case domain.ModeHard:
		return "Computer Won! The AI is too strong!", stylePlayer2
	default:
		return "Computer Won! Better luck next time!", stylePlayer2
	}
}

func thinkingLine(mode domain.GameMode) string {
	if mode == domain.ModeHard {
		return "Computer is thinking hard..."
	}
	return "Computer is thinking..."
}

func modeTitle(mode domain.GameMode) string {
	switch mode {
	case domain.ModeEasy:
		return "Easy"
	case domain.ModeMedium:
		return "Medium"
	case domain.ModeHard:
		return "Hard"
	default:
		return string(mode)
	}
}

func modeLabel(mode domain.GameMode) string {
	if mode == domain.ModePvP {
		return "Player vs Player"
	}
	return fmt.Sprintf("Player vs Computer (%s, %s)", modeTitle(mode), domain.GetBotName(mode))
}
