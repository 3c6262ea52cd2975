package draughts

import "fmt"

// JumpCandidates returns the pieces of team that must capture. A piece in the
// middle of a jump chain is returned alone.
func (b *Board) JumpCandidates(team Team) []Piece {
	var out []Piece
	for _, p := range b.ordered() {
		if p.Team != team {
			continue
		}
		if p.InJumpChain {
			return []Piece{*p}
		}
		if len(b.actionsFor(p).Jumps) > 0 {
			out = append(out, *p)
		}
	}
	return out
}

// AvailablePieces returns the pieces of team allowed to act this turn. When
// any capture exists only capturing pieces are returned.
func (b *Board) AvailablePieces(team Team) []Piece {
	if jumpers := b.JumpCandidates(team); len(jumpers) > 0 {
		return jumpers
	}
	var out []Piece
	for _, p := range b.ordered() {
		if p.Team == team && len(b.actionsFor(p).Moves) > 0 {
			out = append(out, *p)
		}
	}
	return out
}

// IsAvailable reports whether the piece on sq belongs to team and may act.
func (b *Board) IsAvailable(team Team, sq Square) bool {
	for _, p := range b.AvailablePieces(team) {
		if p.Pos == sq {
			return true
		}
	}
	return false
}

// Apply performs action index i of the piece on from. Captures take priority
// over steps whenever the piece has any.
func (b *Board) Apply(from Square, i int) (Outcome, error) {
	p, ok := b.pieces[from]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: no piece at %s", ErrInvariant, from)
	}
	acts := b.actionsFor(p)
	dirs := acts.Active()
	if i < 0 || i >= len(dirs) {
		return Outcome{}, fmt.Errorf("%w: action %d out of range (%d available) at %s", ErrInvariant, i, len(dirs), from)
	}
	d := dirs[i]
	out := Outcome{Team: p.Team, From: from, To: from.Add(d)}

	if acts.Jumping() {
		victim := from.Add(d)
		if _, ok := b.pieces[victim]; !ok {
			return Outcome{}, fmt.Errorf("%w: capture target %s is empty", ErrInvariant, victim)
		}
		delete(b.pieces, victim)
		out.Capture = true
		out.Captured = victim
		out.To = victim.Add(d)
	}

	delete(b.pieces, from)
	p.Pos = out.To
	b.pieces[out.To] = p
	out.Promoted = p.promote()

	if out.Capture {
		p.InJumpChain = len(b.actionsFor(p).Jumps) > 0
	} else {
		p.InJumpChain = false
	}
	out.ChainContinues = p.InJumpChain
	out.OpponentBlocked = len(b.AvailablePieces(p.Team.Opponent())) == 0
	return out, nil
}
