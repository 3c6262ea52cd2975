package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/park285/Cheese-Checkers/internal/adapter/termpresenter"
	"github.com/park285/Cheese-Checkers/internal/checkersbuilder"
	appcfg "github.com/park285/Cheese-Checkers/internal/config"
	"github.com/park285/Cheese-Checkers/internal/game"
	"github.com/park285/Cheese-Checkers/internal/obslog"
	"github.com/park285/Cheese-Checkers/internal/service/boardimage"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := obslog.InitFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "log init error: %v\n", err)
		return 1
	}
	defer obslog.Sync()
	logger := obslog.L()

	cfg, err := appcfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	deps, err := checkersbuilder.New(cfg, logger)
	if err != nil {
		logger.Error("checkers_init_error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "init error: %v\n", err)
		return 1
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Warn("checkers_close_error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := game.NewSession(nil,
		game.WithLogger(logger),
		game.WithFormatter(deps.Formatter),
		game.WithFirstPlayer(cfg.FirstPlayer),
		game.WithBanner(deps.Banner(ctx)),
	)

	term, err := termpresenter.NewTerminal()
	if err != nil {
		logger.Error("checkers_terminal_error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "terminal error: %v\n", err)
		return 1
	}
	defer func() {
		if r := recover(); r != nil {
			term.Close()
			panic(r)
		}
	}()
	// closing the screen unblocks NextEvent, which ends the loop cleanly
	go func() {
		<-ctx.Done()
		term.Close()
	}()

	logger.Info("checkers_session_start", zap.String("game_id", session.ID()))
	err = game.Run(ctx, session, term, term, deps.Sink)
	term.Close()
	if err != nil {
		logger.Error("checkers_fatal", zap.String("game_id", session.ID()), zap.Error(err))
		msg := deps.Formatter.Text("error.fatal", map[string]any{"Err": err.Error()}, "checkers stopped: "+err.Error())
		fmt.Fprintln(os.Stderr, msg)
		return 1
	}
	if session.Finished() && cfg.SnapshotDir != "" {
		if path, ok := boardimage.NewExporter(cfg.SnapshotDir, nil).Saved(session.ID()); ok {
			fmt.Println(deps.Formatter.Text("export.saved", map[string]any{"Path": path}, path))
		}
	}
	return 0
}
