package boardimage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/park285/Cheese-Checkers/internal/obslog"
	"github.com/park285/Cheese-Checkers/pkg/checkersdto"
	"go.uber.org/zap"
)

var ErrInvalidGameID = errors.New("boardimage: invalid game id")

// Exporter writes the final position of each finished game to <dir>/<id>.png.
type Exporter struct {
	dir      string
	renderer BoardRenderer
}

func NewExporter(dir string, renderer BoardRenderer) *Exporter {
	if renderer == nil {
		renderer = NewPNGRenderer()
	}
	return &Exporter{dir: strings.TrimSpace(dir), renderer: renderer}
}

// Path returns where the image for gameID is written.
func (e *Exporter) Path(gameID string) (string, error) {
	id := strings.TrimSpace(gameID)
	if id == "" || id != filepath.Base(id) || id == "." || id == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidGameID, gameID)
	}
	return filepath.Join(e.dir, id+".png"), nil
}

// Saved reports the image path for gameID when a non-empty file was
// written there.
func (e *Exporter) Saved(gameID string) (string, bool) {
	path, err := e.Path(gameID)
	if err != nil {
		return "", false
	}
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() || fi.Size() == 0 {
		return "", false
	}
	return path, true
}

func (e *Exporter) Record(ctx context.Context, res *checkersdto.MatchResult) error {
	if res == nil {
		return errors.New("boardimage: nil result")
	}
	path, err := e.Path(res.GameID)
	if err != nil {
		return err
	}
	sub := fmt.Sprintf("%d actions, %d captures, %s", res.Actions, res.Captures, res.Duration().Round(time.Second))
	data, err := e.renderer.RenderPNG(ctx, res.FinalBoard, RenderOptions{
		Title:    res.Winner + " wins!",
		Subtitle: sub,
	})
	if err != nil {
		return fmt.Errorf("render final board: %w", err)
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	obslog.L().Info("checkers_board_exported", zap.String("game_id", res.GameID), zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
