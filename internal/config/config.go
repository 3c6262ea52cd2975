package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/park285/Cheese-Checkers/internal/draughts"
)

type AppConfig struct {
	MessagesDir string
	// FirstPlayer opens every game. BLACK unless CHECKERS_FIRST_PLAYER says
	// otherwise.
	FirstPlayer draughts.Team

	RedisURL    string
	DatabaseURL string

	SnapshotDir string

	ResultTTLSec int
	RecentLimit  int
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		ResultTTLSec: 604800,
		RecentLimit:  20,
		FirstPlayer:  draughts.Black,
	}

	cfg.MessagesDir = strings.TrimSpace(os.Getenv("CHECKERS_MESSAGES_DIR"))

	if v := strings.TrimSpace(os.Getenv("CHECKERS_FIRST_PLAYER")); v != "" {
		team, err := draughts.ParseTeam(v)
		if err != nil {
			return nil, fmt.Errorf("CHECKERS_FIRST_PLAYER: %w", err)
		}
		cfg.FirstPlayer = team
	}

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	cfg.SnapshotDir = strings.TrimSpace(os.Getenv("CHECKERS_SNAPSHOT_DIR"))

	if v := strings.TrimSpace(os.Getenv("CHECKERS_RESULT_TTL_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ResultTTLSec = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("CHECKERS_RECENT_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RecentLimit = n
		}
	}

	if cfg.RedisURL != "" && !strings.HasPrefix(cfg.RedisURL, "redis://") && !strings.HasPrefix(cfg.RedisURL, "rediss://") {
		return nil, errors.New("REDIS_URL must start with redis:// or rediss://")
	}
	if cfg.DatabaseURL != "" && !strings.HasPrefix(cfg.DatabaseURL, "postgres://") && !strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
		return nil, errors.New("DATABASE_URL must be a postgres:// URL")
	}

	return cfg, nil
}
