package termpresenter

import (
	"github.com/gdamore/tcell/v2"
	"github.com/park285/Cheese-Checkers/pkg/checkersdto"
)

// Palette holds the cell styles used to paint the board.
type Palette struct {
	Text       tcell.Style
	Border     tcell.Style
	LightSq    tcell.Style // (x+y) even, never playable
	DarkSq     tcell.Style // (x+y) odd, playable
	Highlights map[checkersdto.Highlight]tcell.Style
}

func DefaultPalette() Palette {
	base := tcell.StyleDefault.Foreground(tcell.ColorBlack)
	red := base.Background(tcell.ColorRed)
	yellow := base.Background(tcell.NewRGBColor(255, 255, 135))
	green := base.Background(tcell.NewRGBColor(0, 215, 0))
	return Palette{
		Text:    tcell.StyleDefault,
		Border:  tcell.StyleDefault,
		LightSq: base.Background(tcell.NewRGBColor(224, 224, 224)),
		DarkSq:  base.Background(tcell.ColorWhite),
		Highlights: map[checkersdto.Highlight]tcell.Style{
			checkersdto.HighlightForced:            yellow,
			checkersdto.HighlightAlternativeAction: yellow,
			checkersdto.HighlightThreatened:        red,
			checkersdto.HighlightSelectedInvalid:   red,
			checkersdto.HighlightSelectedValid:     green,
			checkersdto.HighlightSelectedAction:    green,
			checkersdto.HighlightDimmed:            base.Background(tcell.ColorGray),
		},
	}
}

// squareStyle returns the background for sq after applying the snapshot's
// layers in order.
func (p Palette) squareStyle(snap *checkersdto.Snapshot, sq checkersdto.Square) tcell.Style {
	st := p.LightSq
	if (sq.X+sq.Y)%2 == 1 {
		st = p.DarkSq
	}
	if h, ok := snap.HighlightAt(sq); ok {
		if hs, ok := p.Highlights[h]; ok {
			st = hs
		}
	}
	return st
}

func glyph(pv checkersdto.PieceView) rune {
	white := pv.Team == "WHITE"
	switch {
	case pv.King && white:
		return '◇'
	case pv.King:
		return '◆'
	case white:
		return '○'
	default:
		return '●'
	}
}
