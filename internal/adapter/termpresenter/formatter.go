package termpresenter

import (
	"strings"

	"github.com/park285/Cheese-Checkers/internal/game"
	"github.com/park285/Cheese-Checkers/internal/msgcat"
	"github.com/park285/Cheese-Checkers/pkg/checkersdto"
)

// Formatter renders status and hint text from the message catalog. Keys that
// are missing or fail to render fall back to the built-in English texts.
type Formatter struct {
	cat      *msgcat.Catalog
	fallback game.StatusFormatter
}

func NewFormatter(cat *msgcat.Catalog) *Formatter {
	return &Formatter{cat: cat, fallback: game.DefaultFormatter()}
}

func (f *Formatter) Status(snap *checkersdto.Snapshot) string {
	key := "title.turn"
	switch snap.Phase {
	case checkersdto.PhaseMainMenu:
		key = "title.menu"
	case checkersdto.PhaseGameOver:
		key = "title.win"
	}
	data := map[string]any{"Player": snap.ActivePlayer, "Winner": snap.Winner}
	return f.cat.RenderOr(key, data, f.fallback.Status(snap))
}

func (f *Formatter) Hints(snap *checkersdto.Snapshot) []string {
	var key string
	switch snap.Phase {
	case checkersdto.PhaseMainMenu:
		key = "hint.menu"
	case checkersdto.PhaseSelectPiece:
		key = "hint.select"
	case checkersdto.PhaseMovePiece:
		key = "hint.move"
	case checkersdto.PhaseGameOver:
		key = "hint.gameover"
	default:
		return nil
	}
	text, err := f.render(key, nil)
	if err != nil {
		return f.fallback.Hints(snap)
	}
	return strings.Split(text, "\n")
}

// Tally renders the main-menu win tally banner.
func (f *Formatter) Tally(t checkersdto.Tally) string {
	data := map[string]any{"White": t.White, "Black": t.Black, "Total": t.Total()}
	return f.cat.RenderOr("menu.tally", data, "")
}

// LastGame renders the one-line summary of a finished match.
func (f *Formatter) LastGame(res *checkersdto.MatchResult) string {
	if res == nil {
		return ""
	}
	data := map[string]any{"Winner": res.Winner, "Loser": res.Loser, "Actions": res.Actions, "Captures": res.Captures}
	return f.cat.RenderOr("menu.last", data, "")
}

// Text renders an arbitrary catalog key, returning fallback on failure.
func (f *Formatter) Text(key string, data map[string]any, fallback string) string {
	return f.cat.RenderOr(key, data, fallback)
}

func (f *Formatter) render(key string, data any) (string, error) {
	if f.cat == nil {
		return "", msgcat.ErrNotFound
	}
	return f.cat.Render(key, data)
}
