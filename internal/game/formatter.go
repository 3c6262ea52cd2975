package game

import "github.com/park285/Cheese-Checkers/pkg/checkersdto"

// plainFormatter is used when no catalog-backed formatter is configured.
type plainFormatter struct{}

func (plainFormatter) Status(snap *checkersdto.Snapshot) string {
	switch snap.Phase {
	case checkersdto.PhaseMainMenu:
		return "Welcome to CHECKERS!"
	case checkersdto.PhaseGameOver:
		return snap.Winner + " wins!"
	default:
		return snap.ActivePlayer + "'s turn..."
	}
}

func (plainFormatter) Hints(snap *checkersdto.Snapshot) []string {
	switch snap.Phase {
	case checkersdto.PhaseMainMenu:
		return []string{"[press any key to start!]"}
	case checkersdto.PhaseSelectPiece:
		return []string{"move:  ▲     select: [z]", "     ◄ ▼ ►"}
	case checkersdto.PhaseMovePiece:
		return []string{"select: [z]   cancel: [x]", "cycle actions: ◄ ►"}
	case checkersdto.PhaseGameOver:
		return []string{"quit: [q]"}
	default:
		return nil
	}
}

// DefaultFormatter returns the built-in English texts.
func DefaultFormatter() StatusFormatter { return plainFormatter{} }
