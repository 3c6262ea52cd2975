package results

import (
	"context"
	"sort"
	"sync"

	"github.com/park285/Cheese-Checkers/pkg/checkersdto"
)

// memrepo keeps results for the lifetime of the process. It is the default
// when neither Redis nor Postgres is configured.
type memrepo struct {
	mu sync.RWMutex

	byID  map[string]*checkersdto.MatchResult
	order []string // insertion order, oldest first
	tally checkersdto.Tally
}

func NewMemoryLedger() Ledger {
	return &memrepo{byID: make(map[string]*checkersdto.MatchResult)}
}

func (m *memrepo) Record(ctx context.Context, res *checkersdto.MatchResult) error {
	res, err := normalize(res)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[res.GameID]; !exists {
		m.order = append(m.order, res.GameID)
		addWin(&m.tally, res.Winner)
	}
	m.byID[res.GameID] = res
	return nil
}

func (m *memrepo) Tally(ctx context.Context) (checkersdto.Tally, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tally, nil
}

func (m *memrepo) Recent(ctx context.Context, limit int) ([]*checkersdto.MatchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]*checkersdto.MatchResult, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		cp := *m.byID[m.order[i]]
		items = append(items, &cp)
	}
	// EndedAt desc, later insertions first on ties
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].EndedAt.After(items[j].EndedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
