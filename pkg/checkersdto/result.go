package checkersdto

import "time"

// MatchResult is the archived outcome of a finished game. It carries counts
// and the final position only; no move list is kept.
type MatchResult struct {
	GameID     string         `json:"game_id"`
	Winner     string         `json:"winner"`
	Loser      string         `json:"loser"`
	Actions    int            `json:"actions"`
	Captures   int            `json:"captures"`
	Promotions int            `json:"promotions"`
	Remaining  map[string]int `json:"remaining"`
	StartedAt  time.Time      `json:"started_at"`
	EndedAt    time.Time      `json:"ended_at"`
	FinalBoard []PieceView    `json:"final_board"`
}

func (r *MatchResult) Duration() time.Duration {
	if r == nil {
		return 0
	}
	d := r.EndedAt.Sub(r.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// Tally counts wins per team.
type Tally struct {
	White int `json:"white"`
	Black int `json:"black"`
}

func (t Tally) Total() int { return t.White + t.Black }
