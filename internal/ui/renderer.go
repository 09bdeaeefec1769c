package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/mcoot/battleship/internal/model"
)

// Layout of the two boards and the text lines beneath them
const (
	playerBoardLeft   = 0
	opponentBoardLeft = 28
	boardTop          = 2
	statusRow         = boardTop + model.BoardSize + 1
	noticeRow         = statusRow + 1
	helpRow           = noticeRow + 2
)

const helpText = "Arrows move  R rotate  Enter place/fire  Q quit"

// Renderer handles drawing a game view to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws both boards, the status line and any notice.
func (r *Renderer) Render(v *View) {
	r.screen.Clear()

	r.renderBoard(v, model.SidePlayer, playerBoardLeft, "Your fleet")
	r.renderBoard(v, model.SideOpponent, opponentBoardLeft, "Computer")

	r.RenderMessage(v.Status, 0, statusRow, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
	r.RenderMessage(v.Notice, 0, noticeRow, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	r.RenderMessage(helpText, 0, helpRow, tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

func (r *Renderer) renderBoard(v *View, side model.Side, left int, title string) {
	board := v.Boards[side]
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	if board.Disabled {
		titleStyle = titleStyle.Dim(true)
	}
	r.RenderMessage(title, left, 0, titleStyle)

	labelStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	for i := 0; i < model.BoardSize; i++ {
		label := []rune(strconv.Itoa(i))[0]
		r.screen.SetContent(cellX(left, i), boardTop-1, label, labelStyle)
		r.screen.SetContent(left+1, boardTop+i, label, labelStyle)
	}

	showCursor := v.Phase != model.PhaseGameOver && v.ActiveBoard() == side
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			mark := board.Cells[model.ToIndex(x, y)]
			style := markStyle(mark)
			if showCursor && v.Cursor.X == x && v.Cursor.Y == y {
				style = style.Reverse(true)
			}
			r.screen.SetContent(cellX(left, x), boardTop+y, markRune(mark), style)
		}
	}
}

// RenderMessage writes msg starting at (x, y).
func (r *Renderer) RenderMessage(msg string, x, y int, style tcell.Style) {
	i := 0
	for _, ch := range msg {
		r.screen.SetContent(x+i, y, ch, style)
		i++
	}
}

func cellX(left, x int) int {
	return left + 3 + 2*x
}

func markRune(m Mark) rune {
	switch m {
	case MarkShip:
		return 'S'
	case MarkPreview:
		return '+'
	case MarkHit:
		return 'X'
	case MarkMiss:
		return 'o'
	default:
		return '.'
	}
}

func markStyle(m Mark) tcell.Style {
	switch m {
	case MarkShip:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	case MarkPreview:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case MarkHit:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case MarkMiss:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}
