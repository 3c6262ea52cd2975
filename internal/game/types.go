package game

import (
	"context"
	"errors"

	"github.com/park285/Cheese-Checkers/pkg/checkersdto"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseMainMenu Phase = iota
	PhaseSelectPiece
	PhaseMovePiece
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMainMenu:
		return checkersdto.PhaseMainMenu
	case PhaseSelectPiece:
		return checkersdto.PhaseSelectPiece
	case PhaseMovePiece:
		return checkersdto.PhaseMovePiece
	case PhaseGameOver:
		return checkersdto.PhaseGameOver
	default:
		return "UNKNOWN"
	}
}

type EventKind int

const (
	EventOther EventKind = iota
	EventDirection
	EventConfirm
	EventCancel
	EventQuit
)

// Event is one abstract input. DX and DY are only meaningful for
// EventDirection.
type Event struct {
	Kind EventKind
	DX   int
	DY   int
}

func Direction(dx, dy int) Event { return Event{Kind: EventDirection, DX: dx, DY: dy} }

func Up() Event      { return Direction(0, -1) }
func Down() Event    { return Direction(0, 1) }
func Left() Event    { return Direction(-1, 0) }
func Right() Event   { return Direction(1, 0) }
func Confirm() Event { return Event{Kind: EventConfirm} }
func Cancel() Event  { return Event{Kind: EventCancel} }
func Quit() Event    { return Event{Kind: EventQuit} }
func Other() Event   { return Event{Kind: EventOther} }

// ErrInputClosed is returned by an InputSource that has no more events.
var ErrInputClosed = errors.New("input source closed")

// Renderer draws a snapshot.
type Renderer interface {
	Render(snap *checkersdto.Snapshot) error
}

// InputSource blocks until the next event is available.
type InputSource interface {
	NextEvent() (Event, error)
}

// ResultSink receives the outcome of a finished game.
type ResultSink interface {
	Record(ctx context.Context, res *checkersdto.MatchResult) error
}

// StatusFormatter produces the text shown around the board.
type StatusFormatter interface {
	Status(snap *checkersdto.Snapshot) string
	Hints(snap *checkersdto.Snapshot) []string
}
