package checkersbuilder

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/park285/Cheese-Checkers/internal/adapter/termpresenter"
	"github.com/park285/Cheese-Checkers/internal/config"
	"github.com/park285/Cheese-Checkers/internal/msgcat"
	"github.com/park285/Cheese-Checkers/internal/results"
	"github.com/park285/Cheese-Checkers/internal/service/boardimage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Deps struct {
	Catalog   *msgcat.Catalog
	Formatter *termpresenter.Formatter
	// Ledger answers tally queries: Redis when configured, then Postgres,
	// otherwise process memory.
	Ledger results.Ledger
	// Sink receives every finished match: the ledger, the Postgres archive
	// and the PNG exporter, whichever are configured.
	Sink *results.Fanout

	logger  *zap.Logger
	closers []func() error
}

func New(cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cat, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	d := &Deps{
		Catalog:   cat,
		Formatter: termpresenter.NewFormatter(cat),
		Sink:      results.NewFanout(),
		logger:    logger,
	}

	var (
		redisStore *results.RedisStore
		repo       *results.Repository
	)
	if strings.TrimSpace(cfg.RedisURL) != "" {
		opts, perr := parseRedisURL(cfg.RedisURL)
		if perr != nil {
			return nil, fmt.Errorf("parse redis url: %w", perr)
		}
		rdb := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		redisStore = results.NewRedisStore(rdb, time.Duration(cfg.ResultTTLSec)*time.Second, cfg.RecentLimit)
		d.closers = append(d.closers, redisStore.Close)
	}

	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		repo, err = results.NewRepository(cfg.DatabaseURL)
		if err != nil {
			_ = d.Close()
			return nil, err
		}
		d.closers = append(d.closers, repo.Close)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = repo.EnsureSchema(ctx)
		cancel()
		if err != nil {
			_ = d.Close()
			return nil, err
		}
	}

	switch {
	case redisStore != nil:
		d.Ledger = redisStore
		d.Sink.Add("redis", redisStore)
		if repo != nil {
			d.Sink.Add("postgres", repo)
		}
	case repo != nil:
		d.Ledger = repo
		d.Sink.Add("postgres", repo)
	default:
		d.Ledger = results.NewMemoryLedger()
		d.Sink.Add("memory", d.Ledger)
	}

	if dir := strings.TrimSpace(cfg.SnapshotDir); dir != "" {
		d.Sink.Add("boardimage", boardimage.NewExporter(dir, boardimage.NewPNGRenderer()))
	}

	logger.Info("checkers_deps_ready",
		zap.Bool("redis", redisStore != nil),
		zap.Bool("postgres", repo != nil),
		zap.Bool("snapshots", cfg.SnapshotDir != ""),
		zap.Int("sinks", d.Sink.Len()),
	)
	return d, nil
}

// Banner renders the win tally and the latest result for the main menu.
// Lookup failures are logged; a failed tally produces an empty banner.
func (d *Deps) Banner(ctx context.Context) string {
	tally, err := d.Ledger.Tally(ctx)
	if err != nil {
		d.logger.Warn("checkers_tally_error", zap.Error(err))
		return ""
	}
	if tally.Total() == 0 {
		return ""
	}
	lines := []string{d.Formatter.Tally(tally)}
	recent, err := d.Ledger.Recent(ctx, 1)
	if err != nil {
		d.logger.Warn("checkers_recent_error", zap.Error(err))
	} else if len(recent) > 0 {
		if last := d.Formatter.LastGame(recent[0]); last != "" {
			lines = append(lines, last)
		}
	}
	return strings.Join(lines, "\n")
}

// Close releases every backend connection.
func (d *Deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}

func parseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("missing redis host")
	}
	port := u.Port()
	if port == "" {
		port = "6379"
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redis db %q", p)
		}
		db = n
	}
	pass, _ := u.User.Password()
	opts := &redis.Options{Addr: net.JoinHostPort(host, port), Password: pass, DB: db}
	if u.Scheme == "rediss" {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12, ServerName: host}
	}
	return opts, nil
}
