package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/park285/Cheese-Checkers/pkg/checkersdto"
	"github.com/redis/go-redis/v9"
)

const (
	defaultResultTTL   = 7 * 24 * time.Hour
	defaultRecentLimit = 20
)

// RedisStore keeps each result as JSON under checkers:result:<id> with a TTL,
// win counters under checkers:wins:<team> and a capped id list in
// checkers:recent. Counters do not expire.
type RedisStore struct {
	rdb         *redis.Client
	ttl         time.Duration
	recentLimit int
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration, recentLimit int) *RedisStore {
	if ttl <= 0 {
		ttl = defaultResultTTL
	}
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}
	return &RedisStore{rdb: rdb, ttl: ttl, recentLimit: recentLimit}
}

func (s *RedisStore) keyResult(id string) string { return "checkers:result:" + strings.TrimSpace(id) }
func (s *RedisStore) keyWins(team string) string { return "checkers:wins:" + strings.ToLower(team) }
func (s *RedisStore) keyRecent() string          { return "checkers:recent" }

func (s *RedisStore) Record(ctx context.Context, res *checkersdto.MatchResult) error {
	res, err := normalize(res)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	created, err := s.rdb.SetNX(ctx, s.keyResult(res.GameID), raw, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis save result: %w", err)
	}
	if !created {
		// already counted; refresh the payload only
		return s.rdb.Set(ctx, s.keyResult(res.GameID), raw, s.ttl).Err()
	}

	pipe := s.rdb.TxPipeline()
	if res.Winner == "WHITE" || res.Winner == "BLACK" {
		pipe.Incr(ctx, s.keyWins(res.Winner))
	}
	pipe.LPush(ctx, s.keyRecent(), res.GameID)
	pipe.LTrim(ctx, s.keyRecent(), 0, int64(s.recentLimit-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis update tally: %w", err)
	}
	return nil
}

func (s *RedisStore) Tally(ctx context.Context) (checkersdto.Tally, error) {
	vals, err := s.rdb.MGet(ctx, s.keyWins("WHITE"), s.keyWins("BLACK")).Result()
	if err != nil {
		return checkersdto.Tally{}, fmt.Errorf("redis tally: %w", err)
	}
	var t checkersdto.Tally
	if t.White, err = counter(vals[0]); err != nil {
		return checkersdto.Tally{}, err
	}
	if t.Black, err = counter(vals[1]); err != nil {
		return checkersdto.Tally{}, err
	}
	return t, nil
}

// Recent returns the newest results first. Ids whose payload has expired are
// skipped.
func (s *RedisStore) Recent(ctx context.Context, limit int) ([]*checkersdto.MatchResult, error) {
	if limit <= 0 || limit > s.recentLimit {
		limit = s.recentLimit
	}
	ids, err := s.rdb.LRange(ctx, s.keyRecent(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis recent: %w", err)
	}
	out := make([]*checkersdto.MatchResult, 0, len(ids))
	for _, id := range ids {
		res, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if res != nil {
			out = append(out, res)
		}
	}
	return out, nil
}

// load returns the stored result for id, or nil when it is absent.
func (s *RedisStore) load(ctx context.Context, id string) (*checkersdto.MatchResult, error) {
	raw, err := s.rdb.Get(ctx, s.keyResult(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis load result: %w", err)
	}
	var res checkersdto.MatchResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", id, err)
	}
	return &res, nil
}

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func counter(v any) (int, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case string:
		n, err := strconv.Atoi(x)
		if err != nil {
			return 0, fmt.Errorf("bad win counter %q: %w", x, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected counter type %T", v)
	}
}
