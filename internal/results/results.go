// Package results archives finished matches and answers win-tally queries.
// Only outcomes are kept; there is no move list and no way to resume a game.
package results

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/park285/Cheese-Checkers/pkg/checkersdto"
)

var ErrNilResult = errors.New("results: nil match result")

// Sink accepts finished matches.
type Sink interface {
	Record(ctx context.Context, res *checkersdto.MatchResult) error
}

// Ledger is a Sink that can also report totals and recent games. Recording
// the same game id twice must not count the win twice.
type Ledger interface {
	Sink
	Tally(ctx context.Context) (checkersdto.Tally, error)
	Recent(ctx context.Context, limit int) ([]*checkersdto.MatchResult, error)
}

// normalize validates res and fills in a game id when it has none.
func normalize(res *checkersdto.MatchResult) (*checkersdto.MatchResult, error) {
	if res == nil {
		return nil, ErrNilResult
	}
	cp := *res
	cp.GameID = strings.TrimSpace(cp.GameID)
	if cp.GameID == "" {
		cp.GameID = uuid.NewString()
	}
	cp.Winner = strings.ToUpper(strings.TrimSpace(cp.Winner))
	return &cp, nil
}

func addWin(t *checkersdto.Tally, winner string) {
	switch winner {
	case "WHITE":
		t.White++
	case "BLACK":
		t.Black++
	}
}
