package game

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Run renders, waits for input and applies it until a quit event arrives or
// the input source closes. The finished game is handed to sink once; sink
// failures are logged and do not stop the loop.
func Run(ctx context.Context, s *Session, r Renderer, in InputSource, sink ResultSink) error {
	for {
		if err := r.Render(s.Snapshot()); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		ev, err := in.NextEvent()
		if err != nil {
			if errors.Is(err, ErrInputClosed) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		tr, err := s.Handle(ev)
		if err != nil {
			return err
		}
		if tr.Quit {
			s.logger.Info("checkers_quit", zap.String("game_id", s.id), zap.String("phase", s.phase.String()))
			return nil
		}
		if tr.To == PhaseGameOver && tr.From != PhaseGameOver && sink != nil {
			if err := sink.Record(ctx, s.Result()); err != nil {
				s.logger.Error("checkers_result_record_error", zap.String("game_id", s.id), zap.Error(err))
			}
		}
	}
}
