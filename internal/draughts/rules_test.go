package draughts

import (
	"errors"
	"math/rand"
	"testing"
)

func TestMandatoryCaptureRestrictsAvailablePieces(t *testing.T) {
	b := mustBoard(t,
		Piece{Pos: sq(1, 5), Team: Black},
		Piece{Pos: sq(6, 5), Team: Black},
		Piece{Pos: sq(4, 7), Team: Black},
		Piece{Pos: sq(2, 4), Team: White},
	)
	avail := b.AvailablePieces(Black)
	if len(avail) != 1 || avail[0].Pos != sq(1, 5) {
		t.Fatalf("only the capturing piece may act, got %+v", avail)
	}
	if b.IsAvailable(Black, sq(6, 5)) {
		t.Fatalf("non-capturing piece reported available")
	}
	if !b.IsAvailable(Black, sq(1, 5)) {
		t.Fatalf("capturing piece reported unavailable")
	}
	if b.IsAvailable(White, sq(1, 5)) {
		t.Fatalf("piece reported available for the wrong team")
	}
}

func TestApplyStep(t *testing.T) {
	b := NewStandardBoard()
	out, err := b.Apply(sq(2, 5), 1)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.From != sq(2, 5) || out.To != sq(3, 4) || out.Capture || out.ChainContinues || out.OpponentBlocked {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if _, ok := b.PieceAt(sq(2, 5)); ok {
		t.Fatalf("origin square still occupied")
	}
	if p, ok := b.PieceAt(sq(3, 4)); !ok || p.Team != Black {
		t.Fatalf("piece missing at destination")
	}
}

func TestApplyCaptureRemovesVictim(t *testing.T) {
	b := mustBoard(t,
		Piece{Pos: sq(1, 5), Team: Black},
		Piece{Pos: sq(2, 4), Team: White},
		Piece{Pos: sq(6, 1), Team: White},
	)
	out, err := b.Apply(sq(1, 5), 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !out.Capture || out.Captured != sq(2, 4) || out.To != sq(3, 3) {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if _, ok := b.PieceAt(sq(2, 4)); ok {
		t.Fatalf("captured piece still on board")
	}
	if got := b.Count(White); got != 1 {
		t.Fatalf("white count = %d, want 1", got)
	}
	if out.OpponentBlocked {
		t.Fatalf("white still has a move")
	}
}

func TestDoubleJumpForcesSamePiece(t *testing.T) {
	b := mustBoard(t,
		Piece{Pos: sq(1, 7), Team: Black},
		Piece{Pos: sq(6, 7), Team: Black},
		Piece{Pos: sq(2, 6), Team: White},
		Piece{Pos: sq(4, 4), Team: White},
		Piece{Pos: sq(5, 6), Team: White},
		Piece{Pos: sq(0, 1), Team: White},
	)
	if n := len(b.JumpCandidates(Black)); n != 2 {
		t.Fatalf("expected two black jumpers, got %d", n)
	}
	out, err := b.Apply(sq(1, 7), 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.To != sq(3, 5) || !out.ChainContinues {
		t.Fatalf("expected chain continuation from (3,5), got %+v", out)
	}
	jumpers := b.JumpCandidates(Black)
	if len(jumpers) != 1 || jumpers[0].Pos != sq(3, 5) || !jumpers[0].InJumpChain {
		t.Fatalf("chain piece must be the only candidate, got %+v", jumpers)
	}
	if b.IsAvailable(Black, sq(6, 7)) {
		t.Fatalf("other jumper must not be selectable mid-chain")
	}

	out, err = b.Apply(sq(3, 5), 0)
	if err != nil {
		t.Fatalf("Apply second jump: %v", err)
	}
	if out.To != sq(5, 3) || out.ChainContinues {
		t.Fatalf("unexpected second outcome %+v", out)
	}
	if p, _ := b.PieceAt(sq(5, 3)); p.InJumpChain {
		t.Fatalf("chain flag not cleared after the last capture")
	}
}

func TestPromotionIsPermanent(t *testing.T) {
	b := mustBoard(t,
		Piece{Pos: sq(2, 6), Team: White},
		Piece{Pos: sq(7, 6), Team: Black},
	)
	out, err := b.Apply(sq(2, 6), 1)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !out.Promoted || out.To != sq(3, 7) {
		t.Fatalf("expected promotion at (3,7), got %+v", out)
	}
	// walk the king back up the board; it must stay crowned
	pos := out.To
	for i := 0; i < 3; i++ {
		a := b.Actions(pos)
		idx := -1
		for j, d := range a.Active() {
			if d == UpLeft || d == UpRight {
				idx = j
				break
			}
		}
		if idx < 0 {
			t.Fatalf("king at %s has no backward move: %+v", pos, a)
		}
		out, err = b.Apply(pos, idx)
		if err != nil {
			t.Fatalf("Apply king move: %v", err)
		}
		if out.Promoted {
			t.Fatalf("king promoted twice")
		}
		pos = out.To
		if p, _ := b.PieceAt(pos); !p.King {
			t.Fatalf("king lost its crown at %s", pos)
		}
	}
}

func TestPromotionDuringCaptureExtendsChain(t *testing.T) {
	b := mustBoard(t,
		Piece{Pos: sq(5, 2), Team: Black},
		Piece{Pos: sq(4, 1), Team: White},
		Piece{Pos: sq(2, 1), Team: White},
	)
	out, err := b.Apply(sq(5, 2), 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !out.Promoted || out.To != sq(3, 0) {
		t.Fatalf("expected crowning capture to (3,0), got %+v", out)
	}
	if !out.ChainContinues {
		t.Fatalf("new king should continue capturing backwards")
	}
	a := b.Actions(sq(3, 0))
	if len(a.Jumps) != 1 || a.Jumps[0] != DownLeft {
		t.Fatalf("expected one backward jump, got %+v", a)
	}
}

func TestApplyInvariantViolations(t *testing.T) {
	b := NewStandardBoard()
	if _, err := b.Apply(sq(3, 3), 0); !errors.Is(err, ErrInvariant) {
		t.Fatalf("empty square: expected ErrInvariant, got %v", err)
	}
	if _, err := b.Apply(sq(0, 5), 1); !errors.Is(err, ErrInvariant) {
		t.Fatalf("index past end: expected ErrInvariant, got %v", err)
	}
	if _, err := b.Apply(sq(1, 6), 0); !errors.Is(err, ErrInvariant) {
		t.Fatalf("blocked piece: expected ErrInvariant, got %v", err)
	}
	if _, err := b.Apply(sq(2, 5), -1); !errors.Is(err, ErrInvariant) {
		t.Fatalf("negative index: expected ErrInvariant, got %v", err)
	}
	if b.Count(Black) != PiecesPerTeam || b.Count(White) != PiecesPerTeam {
		t.Fatalf("failed apply must not mutate the board")
	}
}

func TestOpponentBlockedWithoutCapture(t *testing.T) {
	b := mustBoard(t,
		Piece{Pos: sq(0, 1), Team: White},
		Piece{Pos: sq(1, 2), Team: Black},
		Piece{Pos: sq(2, 3), Team: Black},
		Piece{Pos: sq(6, 5), Team: Black},
	)
	out, err := b.Apply(sq(6, 5), 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !out.OpponentBlocked {
		t.Fatalf("white has no legal action and should be reported blocked")
	}
}

func TestOpponentBlockedAfterLastCapture(t *testing.T) {
	b := mustBoard(t,
		Piece{Pos: sq(1, 5), Team: Black},
		Piece{Pos: sq(2, 4), Team: White},
	)
	out, err := b.Apply(sq(1, 5), 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !out.OpponentBlocked || b.Count(White) != 0 {
		t.Fatalf("capturing the last piece must block the opponent: %+v", out)
	}
}

// TestRandomPlayoutInvariants plays seeded random games and checks the
// board invariants after every action.
func TestRandomPlayoutInvariants(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b := NewStandardBoard()
		team := Black
		counts := map[Team]int{White: PiecesPerTeam, Black: PiecesPerTeam}

		for ply := 0; ply < 400; ply++ {
			avail := b.AvailablePieces(team)
			if len(avail) == 0 {
				break
			}
			if jumpers := b.JumpCandidates(team); len(jumpers) > 0 {
				for _, p := range avail {
					if !b.Actions(p.Pos).Jumping() {
						t.Fatalf("seed %d: non-capturing piece %s available while captures exist", seed, p.Pos)
					}
				}
			}
			p := avail[rng.Intn(len(avail))]
			acts := b.Actions(p.Pos)
			if acts.Count() == 0 {
				t.Fatalf("seed %d: available piece %s has no actions", seed, p.Pos)
			}
			wasKing := p.King
			out, err := b.Apply(p.Pos, rng.Intn(acts.Count()))
			if err != nil {
				t.Fatalf("seed %d: Apply: %v", seed, err)
			}

			moved, ok := b.PieceAt(out.To)
			if !ok || moved.Team != team {
				t.Fatalf("seed %d: moved piece missing at %s", seed, out.To)
			}
			if wasKing && !moved.King {
				t.Fatalf("seed %d: king lost its crown", seed)
			}
			if moved.Pos.Y == PromotionRow(team) && !moved.King {
				t.Fatalf("seed %d: man on promotion row not crowned", seed)
			}

			seen := make(map[Square]bool)
			for _, q := range b.Pieces() {
				if !q.Pos.OnBoard() {
					t.Fatalf("seed %d: piece off board at %s", seed, q.Pos)
				}
				if seen[q.Pos] {
					t.Fatalf("seed %d: two pieces on %s", seed, q.Pos)
				}
				seen[q.Pos] = true
				a := b.Actions(q.Pos)
				if len(a.Moves) > 0 && len(a.Jumps) > 0 {
					t.Fatalf("seed %d: piece %s has both moves and jumps", seed, q.Pos)
				}
			}
			for _, tm := range []Team{White, Black} {
				n := b.Count(tm)
				if n > counts[tm] {
					t.Fatalf("seed %d: %s piece count grew", seed, tm)
				}
				counts[tm] = n
			}

			if got := len(b.AvailablePieces(team.Opponent())) == 0; got != out.OpponentBlocked {
				t.Fatalf("seed %d: OpponentBlocked=%v but availability says %v", seed, out.OpponentBlocked, got)
			}
			if out.OpponentBlocked {
				break
			}
			if out.ChainContinues {
				jumpers := b.JumpCandidates(team)
				if len(jumpers) != 1 || jumpers[0].Pos != out.To {
					t.Fatalf("seed %d: chain must force the piece at %s, got %+v", seed, out.To, jumpers)
				}
				continue
			}
			team = team.Opponent()
		}
	}
}
