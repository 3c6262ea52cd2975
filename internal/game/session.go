// Package game drives a single local draughts match: the turn and selection
// state machine, the snapshot handed to presenters, and the input loop.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/park285/Cheese-Checkers/internal/draughts"
	"github.com/park285/Cheese-Checkers/internal/obslog"
	"github.com/park285/Cheese-Checkers/pkg/checkersdto"
	"go.uber.org/zap"
)

// Session owns the board and every piece of mutable game state. It is not
// safe for concurrent use; the loop processes one event at a time.
type Session struct {
	id     string
	board  *draughts.Board
	phase  Phase
	active draughts.Team

	selected    draughts.Square
	actionIndex int

	winner draughts.Team

	actions    int
	captures   int
	promotions int
	startedAt  time.Time
	endedAt    time.Time

	banner    string
	formatter StatusFormatter
	logger    *zap.Logger
	now       func() time.Time
}

// Transition is the result of handling one event.
type Transition struct {
	From    Phase
	To      Phase
	Outcome *draughts.Outcome
	Quit    bool
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithFormatter(f StatusFormatter) Option {
	return func(s *Session) {
		if f != nil {
			s.formatter = f
		}
	}
}

// WithFirstPlayer overrides the side that opens; BLACK by default.
func WithFirstPlayer(t draughts.Team) Option {
	return func(s *Session) { s.active = t }
}

// WithBanner sets extra text shown on the main menu.
func WithBanner(text string) Option {
	return func(s *Session) { s.banner = text }
}

func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession starts on the main menu with BLACK to move and the selection at
// (0,0). A nil board means the standard opening position.
func NewSession(board *draughts.Board, opts ...Option) *Session {
	if board == nil {
		board = draughts.NewStandardBoard()
	}
	s := &Session{
		id:        uuid.NewString(),
		board:     board,
		phase:     PhaseMainMenu,
		active:    draughts.Black,
		formatter: plainFormatter{},
		logger:    obslog.L(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.now()
	return s
}

func (s *Session) ID() string                    { return s.id }
func (s *Session) Phase() Phase                  { return s.phase }
func (s *Session) ActivePlayer() draughts.Team   { return s.active }
func (s *Session) Selected() draughts.Square     { return s.selected }
func (s *Session) ActionIndex() int              { return s.actionIndex }
func (s *Session) Board() *draughts.Board        { return s.board.Clone() }
func (s *Session) Finished() bool                { return s.phase == PhaseGameOver }
func (s *Session) Winner() (draughts.Team, bool) { return s.winner, s.Finished() }

// Handle applies one event and reports the resulting transition. An error is
// only returned for engine invariant violations.
func (s *Session) Handle(ev Event) (Transition, error) {
	tr := Transition{From: s.phase, To: s.phase}
	if ev.Kind == EventQuit {
		tr.Quit = true
		return tr, nil
	}

	switch s.phase {
	case PhaseMainMenu:
		s.phase = PhaseSelectPiece
		s.startedAt = s.now()
	case PhaseSelectPiece:
		s.handleSelect(ev)
	case PhaseMovePiece:
		out, err := s.handleMove(ev)
		if err != nil {
			return tr, err
		}
		tr.Outcome = out
	case PhaseGameOver:
	}

	tr.To = s.phase
	return tr, nil
}

func (s *Session) handleSelect(ev Event) {
	switch ev.Kind {
	case EventDirection:
		s.selected = draughts.Square{
			X: wrap(s.selected.X+ev.DX, draughts.Size),
			Y: wrap(s.selected.Y+ev.DY, draughts.Size),
		}
	case EventConfirm:
		if !s.board.IsAvailable(s.active, s.selected) {
			s.logger.Debug("checkers_select_ignored",
				zap.String("game_id", s.id),
				zap.String("team", s.active.String()),
				zap.String("square", s.selected.String()),
			)
			return
		}
		s.phase = PhaseMovePiece
		s.actionIndex = 0
	}
}

func (s *Session) handleMove(ev Event) (*draughts.Outcome, error) {
	switch ev.Kind {
	case EventCancel:
		s.phase = PhaseSelectPiece
	case EventDirection:
		total := s.board.Actions(s.selected).Count()
		if total == 0 {
			return nil, fmt.Errorf("%w: piece at %s selected without actions", draughts.ErrInvariant, s.selected)
		}
		s.actionIndex = wrap(s.actionIndex+sign(ev.DX), total)
	case EventConfirm:
		return s.commit()
	}
	return nil, nil
}

func (s *Session) commit() (*draughts.Outcome, error) {
	out, err := s.board.Apply(s.selected, s.actionIndex)
	if err != nil {
		s.logger.Error("checkers_apply_error",
			zap.String("game_id", s.id),
			zap.String("square", s.selected.String()),
			zap.Int("action_index", s.actionIndex),
			zap.Error(err),
		)
		return nil, err
	}
	s.actions++
	if out.Capture {
		s.captures++
	}
	if out.Promoted {
		s.promotions++
	}
	s.selected = out.To
	s.actionIndex = 0
	s.phase = PhaseSelectPiece

	switch {
	case out.OpponentBlocked:
		s.phase = PhaseGameOver
		s.winner = s.active
		s.endedAt = s.now()
		s.logger.Info("checkers_game_over",
			zap.String("game_id", s.id),
			zap.String("winner", s.winner.String()),
			zap.Int("actions", s.actions),
			zap.Int("captures", s.captures),
		)
	case out.ChainContinues:
		// same player keeps the turn; only the chained piece is selectable
	default:
		s.active = s.active.Opponent()
	}

	s.logger.Info("checkers_action",
		zap.String("game_id", s.id),
		zap.String("team", out.Team.String()),
		zap.String("from", out.From.String()),
		zap.String("to", out.To.String()),
		zap.Bool("capture", out.Capture),
		zap.Bool("promoted", out.Promoted),
		zap.Bool("chain", out.ChainContinues),
	)
	return &out, nil
}

// Result returns the match summary once the game is over, nil before.
func (s *Session) Result() *checkersdto.MatchResult {
	if !s.Finished() {
		return nil
	}
	return &checkersdto.MatchResult{
		GameID:     s.id,
		Winner:     s.winner.String(),
		Loser:      s.winner.Opponent().String(),
		Actions:    s.actions,
		Captures:   s.captures,
		Promotions: s.promotions,
		Remaining: map[string]int{
			draughts.White.String(): s.board.Count(draughts.White),
			draughts.Black.String(): s.board.Count(draughts.Black),
		},
		StartedAt:  s.startedAt,
		EndedAt:    s.endedAt,
		FinalBoard: pieceViews(s.board),
	}
}

func wrap(v, n int) int { return ((v % n) + n) % n }

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
