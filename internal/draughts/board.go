package draughts

import (
	"fmt"
	"sort"
)

// Board owns every live piece, indexed by square.
type Board struct {
	pieces map[Square]*Piece
}

// NewBoard builds a board from an explicit placement. Men placed on their
// promotion row are crowned immediately.
func NewBoard(pieces ...Piece) (*Board, error) {
	b := &Board{pieces: make(map[Square]*Piece, len(pieces))}
	counts := make(map[Team]int, 2)
	for _, p := range pieces {
		if !p.Pos.OnBoard() {
			return nil, fmt.Errorf("%w: piece off board at %s", ErrInvalidSetup, p.Pos)
		}
		if !p.Team.valid() {
			return nil, fmt.Errorf("%w: unknown team %d at %s", ErrInvalidSetup, int(p.Team), p.Pos)
		}
		if _, taken := b.pieces[p.Pos]; taken {
			return nil, fmt.Errorf("%w: square %s occupied twice", ErrInvalidSetup, p.Pos)
		}
		counts[p.Team]++
		if counts[p.Team] > PiecesPerTeam {
			return nil, fmt.Errorf("%w: more than %d %s pieces", ErrInvalidSetup, PiecesPerTeam, p.Team)
		}
		piece := p
		piece.promote()
		b.pieces[piece.Pos] = &piece
	}
	return b, nil
}

// NewStandardBoard returns the opening position: WHITE on the dark squares of
// rows 0-2, BLACK on rows 5-7.
func NewStandardBoard() *Board {
	b := &Board{pieces: make(map[Square]*Piece, PiecesPerTeam*2)}
	for x := 0; x < Size; x++ {
		for y := 0; y < 3; y++ {
			if sq := (Square{X: x, Y: y}); sq.Dark() {
				b.pieces[sq] = &Piece{Pos: sq, Team: White}
			}
		}
		for y := Size - 3; y < Size; y++ {
			if sq := (Square{X: x, Y: y}); sq.Dark() {
				b.pieces[sq] = &Piece{Pos: sq, Team: Black}
			}
		}
	}
	return b
}

// PieceAt returns a copy of the piece on sq.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	p, ok := b.pieces[sq]
	if !ok {
		return Piece{}, false
	}
	return *p, true
}

// Pieces returns copies of all pieces ordered by row, then column.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, 0, len(b.pieces))
	for _, p := range b.ordered() {
		out = append(out, *p)
	}
	return out
}

func (b *Board) TeamPieces(t Team) []Piece {
	var out []Piece
	for _, p := range b.ordered() {
		if p.Team == t {
			out = append(out, *p)
		}
	}
	return out
}

func (b *Board) Count(t Team) int {
	n := 0
	for _, p := range b.pieces {
		if p.Team == t {
			n++
		}
	}
	return n
}

func (b *Board) Clone() *Board {
	c := &Board{pieces: make(map[Square]*Piece, len(b.pieces))}
	for sq, p := range b.pieces {
		cp := *p
		c.pieces[sq] = &cp
	}
	return c
}

// Actions derives the steps and captures available to the piece on sq.
// An empty square yields no actions.
func (b *Board) Actions(sq Square) Actions {
	p, ok := b.pieces[sq]
	if !ok {
		return Actions{}
	}
	return b.actionsFor(p)
}

func (b *Board) actionsFor(p *Piece) Actions {
	var a Actions
	for _, d := range p.LegalDirections() {
		target := p.Pos.Add(d)
		if !target.OnBoard() {
			continue
		}
		occupant, occupied := b.pieces[target]
		if !occupied {
			a.Moves = append(a.Moves, d)
			continue
		}
		if occupant.Team == p.Team {
			continue
		}
		landing := target.Add(d)
		if !landing.OnBoard() {
			continue
		}
		if _, blocked := b.pieces[landing]; blocked {
			continue
		}
		a.Jumps = append(a.Jumps, d)
	}
	// captures are mandatory at the piece level
	if len(a.Jumps) > 0 {
		a.Moves = nil
	}
	return a
}

func (b *Board) ordered() []*Piece {
	list := make([]*Piece, 0, len(b.pieces))
	for _, p := range b.pieces {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Pos.Y != list[j].Pos.Y {
			return list[i].Pos.Y < list[j].Pos.Y
		}
		return list[i].Pos.X < list[j].Pos.X
	})
	return list
}
