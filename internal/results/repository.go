package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/park285/Cheese-Checkers/pkg/checkersdto"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS checkers_matches (
    game_id     TEXT PRIMARY KEY,
    winner      TEXT NOT NULL,
    loser       TEXT NOT NULL,
    actions     INTEGER NOT NULL,
    captures    INTEGER NOT NULL,
    promotions  INTEGER NOT NULL,
    remaining   JSONB NOT NULL,
    final_board JSONB NOT NULL,
    started_at  TIMESTAMPTZ NOT NULL,
    ended_at    TIMESTAMPTZ NOT NULL,
    duration_ms BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS checkers_matches_ended_at_idx ON checkers_matches (ended_at DESC);`

// Repository archives results in the checkers_matches table.
type Repository struct {
	db *sql.DB
}

// NewRepository opens and pings the database at databaseURL.
func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// EnsureSchema creates the table and index when missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure checkers schema: %w", err)
	}
	return nil
}

// Record upserts res. The win is counted once per game id since tallies are
// derived from the table.
func (r *Repository) Record(ctx context.Context, res *checkersdto.MatchResult) error {
	res, err := normalize(res)
	if err != nil {
		return err
	}
	remaining, err := json.Marshal(res.Remaining)
	if err != nil {
		return fmt.Errorf("marshal remaining: %w", err)
	}
	board, err := json.Marshal(res.FinalBoard)
	if err != nil {
		return fmt.Errorf("marshal final_board: %w", err)
	}

	const q = `INSERT INTO checkers_matches (
        game_id, winner, loser, actions, captures, promotions,
        remaining, final_board, started_at, ended_at, duration_ms
      ) VALUES (
        $1,$2,$3,$4,$5,$6,$7::jsonb,$8::jsonb,$9,$10,$11
      ) ON CONFLICT (game_id) DO UPDATE SET
        winner=EXCLUDED.winner,
        loser=EXCLUDED.loser,
        actions=EXCLUDED.actions,
        captures=EXCLUDED.captures,
        promotions=EXCLUDED.promotions,
        remaining=EXCLUDED.remaining,
        final_board=EXCLUDED.final_board,
        started_at=EXCLUDED.started_at,
        ended_at=EXCLUDED.ended_at,
        duration_ms=EXCLUDED.duration_ms`

	_, err = r.db.ExecContext(ctx, q,
		res.GameID, res.Winner, res.Loser,
		res.Actions, res.Captures, res.Promotions,
		string(remaining), string(board),
		res.StartedAt, res.EndedAt, res.Duration().Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("upsert checkers match: %w", err)
	}
	return nil
}

func (r *Repository) Tally(ctx context.Context) (checkersdto.Tally, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT winner, COUNT(*) FROM checkers_matches GROUP BY winner`)
	if err != nil {
		return checkersdto.Tally{}, fmt.Errorf("select tally: %w", err)
	}
	defer rows.Close()

	var t checkersdto.Tally
	for rows.Next() {
		var (
			winner string
			n      int
		)
		if err := rows.Scan(&winner, &n); err != nil {
			return checkersdto.Tally{}, fmt.Errorf("scan tally: %w", err)
		}
		switch winner {
		case "WHITE":
			t.White = n
		case "BLACK":
			t.Black = n
		}
	}
	return t, rows.Err()
}

func (r *Repository) Recent(ctx context.Context, limit int) ([]*checkersdto.MatchResult, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	const q = `SELECT game_id, winner, loser, actions, captures, promotions,
        remaining, final_board, started_at, ended_at
      FROM checkers_matches
      ORDER BY ended_at DESC
      LIMIT $1`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent matches: %w", err)
	}
	defer rows.Close()

	out := make([]*checkersdto.MatchResult, 0, limit)
	for rows.Next() {
		var (
			res                    checkersdto.MatchResult
			remainingRaw, boardRaw []byte
		)
		if err := rows.Scan(
			&res.GameID, &res.Winner, &res.Loser,
			&res.Actions, &res.Captures, &res.Promotions,
			&remainingRaw, &boardRaw, &res.StartedAt, &res.EndedAt,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if err := json.Unmarshal(remainingRaw, &res.Remaining); err != nil {
			return nil, fmt.Errorf("decode remaining for %s: %w", res.GameID, err)
		}
		if err := json.Unmarshal(boardRaw, &res.FinalBoard); err != nil {
			return nil, fmt.Errorf("decode final_board for %s: %w", res.GameID, err)
		}
		out = append(out, &res)
	}
	return out, rows.Err()
}
