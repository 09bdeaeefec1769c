package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/battleship/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return NewOutputTo(format, os.Stdout)
}

// NewOutputTo creates a new Output formatter writing to w
func NewOutputTo(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameState:
		o.printGameState(v)
	case GameList:
		o.printGameList(v)
	case PlaceResult:
		o.printPlaceResult(v)
	case ShotResult:
		o.printShotResult(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		o.printJSON(data)
	}
}

// Cursor response type
type Cursor struct {
	ShipIndex   int    `json:"ship_index"`
	ShipLength  int    `json:"ship_length,omitempty"`
	Orientation string `json:"orientation"`
}

// Board response type
type Board struct {
	Ships    []int `json:"ships"`
	Hits     []int `json:"hits"`
	Misses   []int `json:"misses"`
	HitCount int   `json:"hit_count"`
}

// GameState response type
type GameState struct {
	ID            string  `json:"id"`
	Phase         string  `json:"phase"`
	Turn          string  `json:"turn,omitempty"`
	Winner        string  `json:"winner,omitempty"`
	Strategy      string  `json:"strategy"`
	Status        string  `json:"status"`
	Cursor        *Cursor `json:"cursor,omitempty"`
	Preview       []int   `json:"preview,omitempty"`
	PlayerBoard   Board   `json:"player_board"`
	OpponentBoard Board   `json:"opponent_board"`
}

// GameSummary response type
type GameSummary struct {
	ID     string `json:"id"`
	Phase  string `json:"phase"`
	Winner string `json:"winner,omitempty"`
	Status string `json:"status"`
}

// GameList response type
type GameList struct {
	Games []GameSummary `json:"games"`
}

// Ship response type
type Ship struct {
	Origin      int    `json:"origin"`
	Length      int    `json:"length"`
	Orientation string `json:"orientation"`
	Cells       []int  `json:"cells"`
}

// PlaceResult response type
type PlaceResult struct {
	Ship     Ship      `json:"ship"`
	Complete bool      `json:"complete"`
	Game     GameState `json:"game"`
}

// ShotResult response type
type ShotResult struct {
	Attacker string    `json:"attacker"`
	Index    int       `json:"index"`
	X        int       `json:"x"`
	Y        int       `json:"y"`
	Outcome  string    `json:"outcome"`
	Hits     int       `json:"hits"`
	Winner   string    `json:"winner,omitempty"`
	Game     GameState `json:"game"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGameState(g GameState) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	fmt.Fprintf(o.w, "Phase: %s\n", g.Phase)
	if g.Turn != "" {
		fmt.Fprintf(o.w, "Turn: %s\n", g.Turn)
	}
	if g.Winner != "" {
		fmt.Fprintf(o.w, "Winner: %s\n", g.Winner)
	}
	fmt.Fprintf(o.w, "Opponent: %s\n", model.StrategyDisplayName(g.Strategy))
	fmt.Fprintf(o.w, "Status: %s\n", g.Status)

	fmt.Fprintf(o.w, "\nYour Board (%d hits taken):\n", g.PlayerBoard.HitCount)
	o.printBoard(g.PlayerBoard, g.Preview)
	fmt.Fprintf(o.w, "\nComputer Board (%d hits scored):\n", g.OpponentBoard.HitCount)
	o.printBoard(g.OpponentBoard, nil)
}

func (o *Output) printGameList(l GameList) {
	if len(l.Games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	for _, g := range l.Games {
		line := fmt.Sprintf("%s  %-11s  %s", g.ID, g.Phase, g.Status)
		if g.Winner != "" {
			line += "  (winner: " + g.Winner + ")"
		}
		fmt.Fprintln(o.w, line)
	}
}

// renderBoard draws a board as text: S ship, X hit, o miss, + preview
func renderBoard(b Board, preview []int) string {
	cells := make([]byte, boardSize*boardSize)
	for i := range cells {
		cells[i] = '.'
	}
	mark := func(indices []int, c byte) {
		for _, i := range indices {
			if i >= 0 && i < len(cells) {
				cells[i] = c
			}
		}
	}
	mark(preview, '+')
	mark(b.Ships, 'S')
	mark(b.Misses, 'o')
	mark(b.Hits, 'X')

	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < boardSize; x++ {
		fmt.Fprintf(&sb, " %d", x)
	}
	sb.WriteString("\n")
	for y := 0; y < boardSize; y++ {
		fmt.Fprintf(&sb, " %d ", y)
		for x := 0; x < boardSize; x++ {
			sb.WriteByte(' ')
			sb.WriteByte(cells[y*boardSize+x])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (o *Output) printBoard(b Board, preview []int) {
	fmt.Fprint(o.w, renderBoard(b, preview))
}

func (o *Output) printPlaceResult(p PlaceResult) {
	fmt.Fprintf(o.w, "Placed ship of size %d (%s) on cells %v\n", p.Ship.Length, p.Ship.Orientation, p.Ship.Cells)
	if p.Complete {
		fmt.Fprintln(o.w, "Fleet complete, the computer has placed its ships")
	}
	fmt.Fprintln(o.w, p.Game.Status)
}

func (o *Output) printShotResult(s ShotResult) {
	who := "You"
	if s.Attacker == "opponent" {
		who = "Computer"
	}
	fmt.Fprintf(o.w, "%s fired at %d,%d: %s (%d hits)\n", who, s.X, s.Y, s.Outcome, s.Hits)
	fmt.Fprintln(o.w, s.Game.Status)
}
