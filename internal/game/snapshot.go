package game

import (
	"github.com/park285/Cheese-Checkers/internal/draughts"
	"github.com/park285/Cheese-Checkers/pkg/checkersdto"
)

// Snapshot builds the presenter view of the current state.
func (s *Session) Snapshot() *checkersdto.Snapshot {
	snap := &checkersdto.Snapshot{
		SessionID:    s.id,
		Phase:        s.phase.String(),
		ActivePlayer: s.active.String(),
		Selected:     toDTOSquare(s.selected),
		ActionIndex:  s.actionIndex,
		Banner:       s.banner,
	}
	if s.Finished() {
		snap.Winner = s.winner.String()
	}
	if s.phase != PhaseMainMenu {
		snap.Pieces = pieceViews(s.board)
	}

	layers := make(map[checkersdto.Highlight][]checkersdto.Square)
	mark := func(h checkersdto.Highlight, sq draughts.Square) {
		layers[h] = append(layers[h], toDTOSquare(sq))
	}

	switch s.phase {
	case PhaseMainMenu:
		for y := 0; y < draughts.Size; y++ {
			for x := 0; x < draughts.Size; x++ {
				if sq := (draughts.Square{X: x, Y: y}); sq.Dark() {
					mark(checkersdto.HighlightDimmed, sq)
				}
			}
		}
	case PhaseSelectPiece:
		for _, p := range s.board.JumpCandidates(s.active) {
			mark(checkersdto.HighlightForced, p.Pos)
		}
		if s.board.IsAvailable(s.active, s.selected) {
			mark(checkersdto.HighlightSelectedValid, s.selected)
		} else {
			mark(checkersdto.HighlightSelectedInvalid, s.selected)
		}
	case PhaseMovePiece:
		acts := s.board.Actions(s.selected)
		for i, d := range acts.Active() {
			landing, _ := acts.Landing(s.selected, i)
			if i == s.actionIndex {
				mark(checkersdto.HighlightSelectedAction, landing)
			} else {
				mark(checkersdto.HighlightAlternativeAction, landing)
			}
			if acts.Jumping() {
				mark(checkersdto.HighlightThreatened, s.selected.Add(d))
			}
		}
		mark(checkersdto.HighlightDimmed, s.selected)
	}

	for _, h := range checkersdto.HighlightOrder {
		if sqs := layers[h]; len(sqs) > 0 {
			snap.Layers = append(snap.Layers, checkersdto.Layer{Highlight: h, Squares: sqs})
		}
	}

	snap.Status = s.formatter.Status(snap)
	snap.Hints = s.formatter.Hints(snap)
	return snap
}

func pieceViews(b *draughts.Board) []checkersdto.PieceView {
	list := b.Pieces()
	out := make([]checkersdto.PieceView, 0, len(list))
	for _, p := range list {
		out = append(out, checkersdto.PieceView{
			Square: toDTOSquare(p.Pos),
			Team:   p.Team.String(),
			King:   p.King,
		})
	}
	return out
}

func toDTOSquare(sq draughts.Square) checkersdto.Square {
	return checkersdto.Square{X: sq.X, Y: sq.Y}
}
