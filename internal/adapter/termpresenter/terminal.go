// Package termpresenter draws game snapshots on a tcell screen and turns key
// presses into game events.
package termpresenter

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/park285/Cheese-Checkers/internal/draughts"
	"github.com/park285/Cheese-Checkers/internal/game"
	"github.com/park285/Cheese-Checkers/pkg/checkersdto"
)

// Screen layout. The status line sits above the border; square (x,y) is drawn
// three cells wide at column x*3+2 of row y+2.
const (
	statusRow   = 0
	borderTop   = 1
	boardWidth  = draughts.Size*3 + 4
	boardHeight = draughts.Size + 2
	hintRow     = borderTop + boardHeight
	cellWidth   = 3
)

var errNilSnapshot = errors.New("termpresenter: nil snapshot")

// Terminal implements game.Renderer and game.InputSource over a tcell screen.
type Terminal struct {
	screen  tcell.Screen
	palette Palette
	once    sync.Once
}

// NewTerminal opens the controlling terminal.
func NewTerminal() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return NewTerminalWithScreen(s)
}

// NewTerminalWithScreen initialises s and takes ownership of it.
func NewTerminalWithScreen(s tcell.Screen) (*Terminal, error) {
	if s == nil {
		return nil, errors.New("termpresenter: nil screen")
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	s.HideCursor()
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	return &Terminal{screen: s, palette: DefaultPalette()}, nil
}

// Close restores the terminal. Safe to call more than once.
func (t *Terminal) Close() {
	t.once.Do(t.screen.Fini)
}

func (t *Terminal) Render(snap *checkersdto.Snapshot) error {
	if snap == nil {
		return errNilSnapshot
	}
	t.screen.Clear()
	t.drawText(0, statusRow, snap.Status, t.palette.Text)
	t.drawBorder()

	for y := 0; y < draughts.Size; y++ {
		for x := 0; x < draughts.Size; x++ {
			sq := checkersdto.Square{X: x, Y: y}
			st := t.palette.squareStyle(snap, sq)
			icon := ' '
			if pv, ok := snap.PieceAt(sq); ok {
				icon = glyph(pv)
			}
			col, row := x*cellWidth+2, y+borderTop+1
			t.screen.SetContent(col, row, ' ', nil, st)
			t.screen.SetContent(col+1, row, icon, nil, st)
			t.screen.SetContent(col+2, row, ' ', nil, st)
		}
	}

	row := hintRow
	for _, line := range snap.Hints {
		t.drawText(0, row, line, t.palette.Text)
		row++
	}
	if snap.Phase == checkersdto.PhaseMainMenu && snap.Banner != "" {
		for i, line := range strings.Split(snap.Banner, "\n") {
			t.drawText(0, row+1+i, line, t.palette.Text)
		}
	}
	t.screen.Show()
	return nil
}

// NextEvent blocks until a key is pressed. Resizes repaint the screen and
// are not reported. A finalised screen ends input with game.ErrInputClosed.
func (t *Terminal) NextEvent() (game.Event, error) {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return game.Event{}, game.ErrInputClosed
		case *tcell.EventKey:
			return MapKey(ev), nil
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *Terminal) drawBorder() {
	st := t.palette.Border
	top, bottom := borderTop, borderTop+boardHeight-1
	right := boardWidth - 1
	for x := 1; x < right; x++ {
		t.screen.SetContent(x, top, '═', nil, st)
		t.screen.SetContent(x, bottom, '═', nil, st)
	}
	for y := top + 1; y < bottom; y++ {
		t.screen.SetContent(0, y, '║', nil, st)
		t.screen.SetContent(right, y, '║', nil, st)
	}
	t.screen.SetContent(0, top, '╔', nil, st)
	t.screen.SetContent(right, top, '╗', nil, st)
	t.screen.SetContent(0, bottom, '╚', nil, st)
	t.screen.SetContent(right, bottom, '╝', nil, st)
}

func (t *Terminal) drawText(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		if r == '\t' {
			x += 4
			continue
		}
		t.screen.SetContent(x, y, r, nil, st)
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		x += w
	}
}
