package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/jackyboi/asyncchess/internal/chess"
)

const (
	leftMargin = 4
	topMargin  = 2
	// each square is two cells wide so the board comes out roughly square
	squareWidth = 2
)

// drawText places text at the specified coordinates with the provided style.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawRune places a single rune.
func drawRune(s tcell.Screen, x, y int, style tcell.Style, r rune) {
	s.SetContent(x, y, r, nil, style)
}

// toBoardCoord maps a screen cell to board coordinates, reporting whether
// the cell falls inside the board at all.
func toBoardCoord(screenX, screenY int) (int, int, bool) {
	x := screenX - leftMargin
	y := screenY - topMargin
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	bx := x / squareWidth
	if bx > 7 || y > 7 {
		return 0, 0, false
	}
	return bx, y, true
}

func (a *App) draw(banner string) {
	s := a.screen
	s.Clear()

	view := a.ctrl.View()
	selected, hasSelection := a.ctrl.Selected()

	for y := 0; y < 8; y++ {
		// rank label
		drawRune(s, leftMargin-2, topMargin+y, tcell.StyleDefault.Foreground(a.theme.Label), rune('8'-y))
		for x := 0; x < 8; x++ {
			at := chess.OnBoard(x, y)
			bg := a.theme.SquareLight
			if (x+y)%2 == 1 {
				bg = a.theme.SquareDark
			}
			if hasSelection && at == selected {
				bg = a.theme.Selected
			}
			a.drawSquare(x, y, bg, view)
		}
	}
	for x := 0; x < 8; x++ {
		drawRune(s, leftMargin+x*squareWidth, topMargin+9, tcell.StyleDefault.Foreground(a.theme.Label), rune('a'+x))
	}

	a.drawCaptured(view.Captured())

	if banner != "" {
		drawText(s, leftMargin, topMargin-1, tcell.StyleDefault.Foreground(a.theme.Banner).Bold(true), banner)
	}
	drawText(s, leftMargin, topMargin+12, tcell.StyleDefault.Foreground(a.theme.Label),
		"click: select/move   r: restart   q: quit")

	s.Show()
}

func (a *App) drawSquare(x, y int, bg tcell.Color, view chess.View) {
	col := leftMargin + x*squareWidth
	row := topMargin + y
	fill := tcell.StyleDefault.Background(bg)

	piece, ok := view.PieceAt(chess.OnBoard(x, y))
	if !ok {
		drawRune(a.screen, col, row, fill, ' ')
		drawRune(a.screen, col+1, row, fill, ' ')
		return
	}

	style := fill.Foreground(a.theme.Black)
	if piece.IsWhite {
		style = fill.Foreground(a.theme.White)
	}
	drawRune(a.screen, col, row, style, piece.Rune())
	drawRune(a.screen, col+1, row, fill, ' ')
}

func (a *App) drawCaptured(captured []chess.Piece) {
	if len(captured) == 0 {
		return
	}
	label := tcell.StyleDefault.Foreground(a.theme.Label)
	drawText(a.screen, leftMargin, topMargin+10, label, fmt.Sprintf("taken (%d):", len(captured)))

	x := leftMargin
	row := topMargin + 11
	for _, p := range captured {
		style := tcell.StyleDefault.Foreground(a.theme.Black)
		if p.IsWhite {
			style = tcell.StyleDefault.Foreground(a.theme.White)
		}
		drawRune(a.screen, x, row, style, p.Rune())
		x += 2
	}
}
