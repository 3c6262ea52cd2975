// Package draughts holds the English draughts board model and rule engine.
// Board orientation: row 0 is WHITE's back rank, row 7 is BLACK's.
package draughts

import (
	"fmt"
	"strings"
)

const (
	// Size is the board edge length.
	Size = 8
	// PiecesPerTeam is the number of men each side starts with.
	PiecesPerTeam = 12
)

// Square is a board coordinate. X is the column, Y the row.
type Square struct {
	X int
	Y int
}

func (s Square) Add(d Direction) Square { return Square{X: s.X + d.DX, Y: s.Y + d.DY} }

// OnBoard reports whether s lies within the 8x8 grid.
func (s Square) OnBoard() bool { return s.X >= 0 && s.X < Size && s.Y >= 0 && s.Y < Size }

// Dark reports whether s is a playable square.
func (s Square) Dark() bool { return (s.X+s.Y)%2 == 1 }

func (s Square) String() string { return fmt.Sprintf("(%d,%d)", s.X, s.Y) }

// Team identifies a side.
type Team int

const (
	White Team = iota
	Black
)

func (t Team) Opponent() Team {
	if t == White {
		return Black
	}
	return White
}

func (t Team) String() string {
	switch t {
	case White:
		return "WHITE"
	case Black:
		return "BLACK"
	default:
		return fmt.Sprintf("Team(%d)", int(t))
	}
}

func (t Team) valid() bool { return t == White || t == Black }

// ParseTeam accepts "white"/"w" and "black"/"b" in any case.
func ParseTeam(s string) (Team, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	default:
		return White, fmt.Errorf("unknown team %q", s)
	}
}

// PromotionRow is the row on which a man of team t is crowned.
func PromotionRow(t Team) int {
	if t == Black {
		return 0
	}
	return Size - 1
}

// Direction is a diagonal unit step.
type Direction struct {
	DX int
	DY int
}

var (
	UpLeft    = Direction{DX: -1, DY: -1}
	UpRight   = Direction{DX: 1, DY: -1}
	DownRight = Direction{DX: 1, DY: 1}
	DownLeft  = Direction{DX: -1, DY: 1}
)

// kingDirections is also the order in which actions are listed.
var kingDirections = [...]Direction{UpLeft, UpRight, DownRight, DownLeft}

// Piece is a man or king on the board.
type Piece struct {
	Pos         Square
	Team        Team
	King        bool
	InJumpChain bool
}

// LegalDirections returns every diagonal for a king, otherwise the two
// diagonals pointing away from the piece's own back rank.
func (p Piece) LegalDirections() []Direction {
	if p.King {
		return append([]Direction(nil), kingDirections[:]...)
	}
	if p.Team == Black {
		return []Direction{UpLeft, UpRight}
	}
	return []Direction{DownLeft, DownRight}
}

// promote crowns a man standing on its promotion row. Reports whether the
// piece changed.
func (p *Piece) promote() bool {
	if p.King || p.Pos.Y != PromotionRow(p.Team) {
		return false
	}
	p.King = true
	return true
}

// Actions lists what a piece may do. Moves and Jumps are never both set.
type Actions struct {
	Moves []Direction
	Jumps []Direction
}

func (a Actions) Jumping() bool { return len(a.Jumps) > 0 }

// Active returns the list an action index refers to.
func (a Actions) Active() []Direction {
	if a.Jumping() {
		return a.Jumps
	}
	return a.Moves
}

func (a Actions) Count() int { return len(a.Active()) }

// Landing returns the square the piece at from reaches by taking action i.
func (a Actions) Landing(from Square, i int) (Square, bool) {
	dirs := a.Active()
	if i < 0 || i >= len(dirs) {
		return Square{}, false
	}
	to := from.Add(dirs[i])
	if a.Jumping() {
		to = to.Add(dirs[i])
	}
	return to, true
}

// Outcome describes an applied action.
type Outcome struct {
	Team     Team
	From     Square
	To       Square
	Capture  bool
	Captured Square
	Promoted bool
	// ChainContinues is set when the same piece must keep capturing.
	ChainContinues bool
	// OpponentBlocked is set when the other side has nothing left to play.
	OpponentBlocked bool
}
