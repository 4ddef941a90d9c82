package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/iamasit07/connect4-terminal/internal/domain"
	"github.com/pkg/errors"
)

var (
	// ErrQuit is returned when the player presses q or Esc at a prompt.
	ErrQuit = errors.New("player quit")
	// ErrClosed is returned once the screen stops delivering events.
	ErrClosed = errors.New("screen closed")
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleHint    = tcell.StyleDefault.Dim(true)
	styleWarning = tcell.StyleDefault.Foreground(tcell.ColorRed)
	stylePlayer1 = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePlayer2 = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

const maxInputLength = 8

type segment struct {
	text  string
	style tcell.Style
}

type line []segment

func (l line) width() int {
	n := 0
	for _, s := range l {
		n += len([]rune(s.text))
	}
	return n
}

// UI is a console-like view over a tcell screen: a list of centred lines with
// an optional prompt under them. Nothing reaches the terminal until Show.
type UI struct {
	screen tcell.Screen
	lines  []line
	prompt string
	input  string
}

func NewUI(screen tcell.Screen) *UI {
	return &UI{screen: screen}
}

func (u *UI) Clear() {
	u.lines = u.lines[:0]
}

func (u *UI) PrintCentered(text string) {
	u.PrintStyled(text, styleDefault)
}

func (u *UI) PrintStyled(text string, style tcell.Style) {
	u.lines = append(u.lines, line{{text: text, style: style}})
}

func (u *UI) Blank() {
	u.lines = append(u.lines, nil)
}

// DrawBoard adds the board with a 1-7 column header. Player 1 is a red X,
// Player 2 a yellow O.
func (u *UI) DrawBoard(b *domain.Board) {
	var header strings.Builder
	header.WriteString(" ")
	for c := 1; c <= domain.Columns; c++ {
		fmt.Fprintf(&header, " %d  ", c)
	}
	u.PrintStyled(header.String(), styleTitle)

	for r := 0; r < domain.Rows; r++ {
		row := line{{text: "|", style: styleDefault}}
		for c := 0; c < domain.Columns; c++ {
			row = append(row, segment{text: " ", style: styleDefault})
			switch b.Cell(r, c) {
			case domain.Player1:
				row = append(row, segment{text: "X", style: stylePlayer1})
			case domain.Player2:
				row = append(row, segment{text: "O", style: stylePlayer2})
			default:
				row = append(row, segment{text: " ", style: styleDefault})
			}
			row = append(row, segment{text: " |", style: styleDefault})
		}
		u.lines = append(u.lines, row)
	}

	u.PrintCentered("+" + strings.Repeat("---+", domain.Columns))
}

// Show renders the buffered lines centred on the current screen width. When
// the text is taller than the screen the oldest lines scroll off.
func (u *UI) Show() {
	u.screen.Clear()
	width, height := u.screen.Size()

	all := u.lines
	if u.prompt != "" {
		all = append(all[:len(all):len(all)], line{
			{text: u.prompt, style: styleDefault},
			{text: u.input, style: styleTitle},
		})
	}
	if len(all) > height {
		all = all[len(all)-height:]
	}

	cursorX, cursorY := -1, -1
	for y, ln := range all {
		x := (width - ln.width()) / 2
		if x < 0 {
			x = 0
		}
		for _, seg := range ln {
			for _, r := range seg.text {
				u.screen.SetContent(x, y, r, nil, seg.style)
				x++
			}
		}
		cursorX, cursorY = x, y
	}

	if u.prompt != "" {
		u.screen.ShowCursor(cursorX, cursorY)
	} else {
		u.screen.HideCursor()
	}
	u.screen.Show()
}

// SelectOption reads a number in [low, high] typed at a prompt and confirmed
// with Enter. Bad input is reported and asked for again.
func (u *UI) SelectOption(low, high int) (int, error) {
	u.prompt = fmt.Sprintf("Please select an option (%d-%d): ", low, high)
	u.input = ""
	defer func() {
		u.prompt = ""
		u.input = ""
	}()

	for {
		u.Show()

		switch ev := u.screen.PollEvent().(type) {
		case nil:
			return 0, ErrClosed
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return 0, ErrQuit
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if n := len(u.input); n > 0 {
					u.input = u.input[:n-1]
				}
			case tcell.KeyEnter:
				text := strings.TrimSpace(u.input)
				u.input = ""
				value, err := strconv.Atoi(text)
				if err != nil {
					u.PrintCentered("Invalid input.")
					u.prompt = fmt.Sprintf("Please enter a number (%d-%d): ", low, high)
					continue
				}
				if value < low || value > high {
					u.PrintCentered("Input out of range.")
					u.prompt = fmt.Sprintf("Please enter a number (%d-%d): ", low, high)
					continue
				}
				return value, nil
			case tcell.KeyRune:
				r := ev.Rune()
				if r == 'q' || r == 'Q' {
					return 0, ErrQuit
				}
				if len(u.input) < maxInputLength && r < 128 {
					u.input += string(r)
				}
			}
		}
	}
}

// ReadColumn asks for a column 1-7 until an open one is chosen and returns
// it zero-based.
func (u *UI) ReadColumn(b *domain.Board) (int, error) {
	for {
		choice, err := u.SelectOption(1, domain.Columns)
		if err != nil {
			return 0, err
		}
		col := choice - 1
		if b.IsValidMove(col) {
			return col, nil
		}
		u.PrintCentered("Column full, please choose another column")
	}
}

// WaitForEnter prints message and blocks until Enter, Esc or q.
func (u *UI) WaitForEnter(message string) error {
	u.PrintStyled(message, styleHint)
	for {
		u.Show()

		switch ev := u.screen.PollEvent().(type) {
		case nil:
			return ErrClosed
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEnter || ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
				return nil
			}
		}
	}
}
