package ui

import "github.com/gdamore/tcell/v2"

// Theme holds the colors used to draw the board.
type Theme struct {
	SquareLight tcell.Color
	SquareDark  tcell.Color
	White       tcell.Color
	Black       tcell.Color
	Selected    tcell.Color
	Label       tcell.Color
	Banner      tcell.Color
}

// DefaultTheme is a brown-board look that survives 16-color terminals.
func DefaultTheme() Theme {
	return Theme{
		SquareLight: tcell.ColorWheat,
		SquareDark:  tcell.ColorSaddleBrown,
		White:       tcell.ColorWhite,
		Black:       tcell.ColorBlack,
		Selected:    tcell.ColorGreen,
		Label:       tcell.ColorGray,
		Banner:      tcell.ColorRed,
	}
}
