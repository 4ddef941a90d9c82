package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const (
	Rows         = 6
	Columns      = 7
	ToWin        = 4
	CenterColumn = Columns / 2
	MaxMoves     = Rows * Columns
)

// Opponent returns the other side. Empty has no opponent and maps to itself.
func Opponent(p PlayerID) PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

func IsPlayer(p PlayerID) bool {
	return p == Player1 || p == Player2
}

// Move is a resolved placement: the column chosen and the row gravity put the disk in.
type Move struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// NoMove is returned when no placement exists (full column, full board, no winning move).
var NoMove = Move{Row: -1, Column: -1}

func (m Move) IsValid() bool {
	return inBounds(m.Row, m.Column)
}

// GameMode is how a session is played: two humans or a human against one of the bots.
type GameMode string

const (
	ModePvP    GameMode = "pvp"
	ModeEasy   GameMode = "easy"
	ModeMedium GameMode = "medium"
	ModeHard   GameMode = "hard"
)

var Modes = []GameMode{ModePvP, ModeEasy, ModeMedium, ModeHard}

func (m GameMode) IsComputer() bool {
	return m == ModeEasy || m == ModeMedium || m == ModeHard
}

var BotNames = map[GameMode]string{
	ModeEasy:   "Alice",
	ModeMedium: "Bob",
	ModeHard:   "Charles",
}

func GetBotName(mode GameMode) string {
	if name, ok := BotNames[mode]; ok {
		return name
	}
	return "BOT"
}

// to represent the game status
type GameStatus string

const (
	StatusActive    GameStatus = "active"
	StatusWon       GameStatus = "won"
	StatusDraw      GameStatus = "draw"
	StatusAbandoned GameStatus = "abandoned"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove   Error = "invalid move"
	ErrColumnFull    Error = "column is full"
	ErrInvalidPlayer Error = "invalid player"
	ErrGameOver      Error = "game is over"
	ErrInvalidBoard  Error = "invalid board"

	ErrGameNotFound   Error = "game not found"
	ErrGameInProgress Error = "game is still in progress"
)
