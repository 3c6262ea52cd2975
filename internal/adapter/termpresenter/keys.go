package termpresenter

import (
	"github.com/gdamore/tcell/v2"
	"github.com/park285/Cheese-Checkers/internal/game"
)

// MapKey translates a key press into a game event. Arrows move, z confirms,
// x cancels, q or Ctrl-C quits. Anything else is EventOther.
func MapKey(ev *tcell.EventKey) game.Event {
	if ev == nil {
		return game.Other()
	}
	switch ev.Key() {
	case tcell.KeyUp:
		return game.Up()
	case tcell.KeyDown:
		return game.Down()
	case tcell.KeyLeft:
		return game.Left()
	case tcell.KeyRight:
		return game.Right()
	case tcell.KeyCtrlC:
		return game.Quit()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'z':
			return game.Confirm()
		case 'x':
			return game.Cancel()
		case 'q':
			return game.Quit()
		}
	}
	return game.Other()
}
