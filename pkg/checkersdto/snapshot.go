package checkersdto

// Phase names mirror the session phases.
const (
	PhaseMainMenu    = "MAIN_MENU"
	PhaseSelectPiece = "SELECT_PIECE"
	PhaseMovePiece   = "MOVE_PIECE"
	PhaseGameOver    = "GAME_OVER"
)

type Square struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type PieceView struct {
	Square Square `json:"square"`
	Team   string `json:"team"`
	King   bool   `json:"king"`
}

// Highlight is a square highlight category.
type Highlight string

const (
	HighlightForced            Highlight = "FORCED"
	HighlightAlternativeAction Highlight = "ALTERNATIVE_ACTION"
	HighlightThreatened        Highlight = "THREATENED"
	HighlightSelectedInvalid   Highlight = "SELECTED_INVALID"
	HighlightSelectedValid     Highlight = "SELECTED_VALID"
	HighlightSelectedAction    Highlight = "SELECTED_ACTION"
	HighlightDimmed            Highlight = "DIMMED"
)

// HighlightOrder is the paint order. Later categories overpaint earlier ones.
var HighlightOrder = []Highlight{
	HighlightForced,
	HighlightAlternativeAction,
	HighlightThreatened,
	HighlightSelectedInvalid,
	HighlightSelectedValid,
	HighlightSelectedAction,
	HighlightDimmed,
}

// Layer is one highlight category with the squares it covers.
type Layer struct {
	Highlight Highlight
	Squares   []Square
}

// Snapshot is a read-only view of a session for presenters.
type Snapshot struct {
	SessionID    string
	Phase        string
	ActivePlayer string
	Winner       string
	Selected     Square
	ActionIndex  int
	Pieces       []PieceView
	// Layers are ordered by HighlightOrder; empty categories are omitted.
	Layers []Layer
	Status string
	Hints  []string
	Banner string
}

// HighlightAt returns the topmost highlight covering sq.
func (s *Snapshot) HighlightAt(sq Square) (Highlight, bool) {
	if s == nil {
		return "", false
	}
	var (
		top   Highlight
		found bool
	)
	for _, l := range s.Layers {
		for _, q := range l.Squares {
			if q == sq {
				top, found = l.Highlight, true
				break
			}
		}
	}
	return top, found
}

func (s *Snapshot) PieceAt(sq Square) (PieceView, bool) {
	if s == nil {
		return PieceView{}, false
	}
	for _, p := range s.Pieces {
		if p.Square == sq {
			return p, true
		}
	}
	return PieceView{}, false
}

// Layer returns the squares of one category, or nil.
func (s *Snapshot) Layer(h Highlight) []Square {
	if s == nil {
		return nil
	}
	for _, l := range s.Layers {
		if l.Highlight == h {
			return l.Squares
		}
	}
	return nil
}
