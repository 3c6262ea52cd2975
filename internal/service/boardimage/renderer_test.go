package boardimage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/park285/Cheese-Checkers/internal/game"
	"github.com/park285/Cheese-Checkers/pkg/checkersdto"
)

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

// pixel samples a point near the top-left corner of board square (x,y).
func pixel(img image.Image, x, y int) color.RGBA {
	px := sideMargin + x*squareSize + 4
	py := topMargin + y*squareSize + 4
	return color.RGBAModel.Convert(img.At(px, py)).(color.RGBA)
}

func centre(img image.Image, x, y int) color.RGBA {
	px := sideMargin + x*squareSize + squareSize/2
	py := topMargin + y*squareSize + squareSize/2
	return color.RGBAModel.Convert(img.At(px, py)).(color.RGBA)
}

func TestRenderPNGDimensionsAndSquares(t *testing.T) {
	data, err := NewPNGRenderer().RenderPNG(context.Background(), nil, RenderOptions{Title: "CHECKERS"})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img := decode(t, data)
	b := img.Bounds()
	if b.Dx() != boardSize+sideMargin*2 || b.Dy() != boardSize+topMargin+bottomMargin {
		t.Fatalf("unexpected size %v", b)
	}
	if got := pixel(img, 0, 0); got != lightSquare {
		t.Fatalf("(0,0) = %v, want light square", got)
	}
	if got := pixel(img, 1, 0); got != darkSquare {
		t.Fatalf("(1,0) = %v, want dark square", got)
	}
}

func TestRenderPNGPiecesAndLayers(t *testing.T) {
	pieces := []checkersdto.PieceView{
		{Square: checkersdto.Square{X: 1, Y: 0}, Team: "WHITE"},
		{Square: checkersdto.Square{X: 2, Y: 7}, Team: "BLACK", King: true},
	}
	layers := []checkersdto.Layer{{Highlight: checkersdto.HighlightDimmed, Squares: []checkersdto.Square{{X: 0, Y: 0}}}}
	data, err := NewPNGRenderer().RenderPNG(context.Background(), pieces, RenderOptions{Layers: layers})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img := decode(t, data)
	if c := centre(img, 1, 0); c.R < 200 || c.G < 200 {
		t.Fatalf("white disc centre = %v", c)
	}
	if c := pixel(img, 0, 0); c == lightSquare || c.R >= lightSquare.R {
		t.Fatalf("dimmed square not darkened: %v", c)
	}
	if c := pixel(img, 2, 7); c != darkSquare {
		t.Fatalf("square corner outside the disc should stay dark, got %v", c)
	}
}

func TestRenderPNGRejectsBadPieces(t *testing.T) {
	r := NewPNGRenderer()
	_, err := r.RenderPNG(context.Background(), []checkersdto.PieceView{{Square: checkersdto.Square{X: 8, Y: 0}, Team: "WHITE"}}, RenderOptions{})
	if !errors.Is(err, errOffBoard) {
		t.Fatalf("expected errOffBoard, got %v", err)
	}
	if _, err := r.RenderPNG(context.Background(), []checkersdto.PieceView{{Team: "RED"}}, RenderOptions{}); err == nil {
		t.Fatalf("expected error for unknown team")
	}
}

func TestRenderPNGHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewPNGRenderer().RenderPNG(ctx, nil, RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderSnapshot(t *testing.T) {
	s := game.NewSession(nil)
	if _, err := s.Handle(game.Other()); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	data, err := RenderSnapshot(context.Background(), NewPNGRenderer(), s.Snapshot())
	if err != nil {
		t.Fatalf("RenderSnapshot: %v", err)
	}
	img := decode(t, data)
	if c := centre(img, 0, 5); c.R > 100 {
		t.Fatalf("expected a black disc at (0,5), got %v", c)
	}
	if _, err := RenderSnapshot(context.Background(), NewPNGRenderer(), nil); err == nil {
		t.Fatalf("expected error for nil snapshot")
	}
}

func TestPieceImageCache(t *testing.T) {
	a, err := renderPieceImage("BLACK", true, 32)
	if err != nil {
		t.Fatalf("renderPieceImage: %v", err)
	}
	b, _ := renderPieceImage("BLACK", true, 32)
	if a != b {
		t.Fatalf("expected cached image to be reused")
	}
	if a.Bounds().Dx() != 32 {
		t.Fatalf("size = %v", a.Bounds())
	}
}

func TestExporterWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "boards")
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	res := &checkersdto.MatchResult{
		GameID:     "game-42",
		Winner:     "WHITE",
		Loser:      "BLACK",
		Actions:    31,
		Captures:   12,
		StartedAt:  start,
		EndedAt:    start.Add(3 * time.Minute),
		FinalBoard: []checkersdto.PieceView{{Square: checkersdto.Square{X: 3, Y: 4}, Team: "WHITE", King: true}},
	}
	exp := NewExporter(dir, nil)
	if err := exp.Record(context.Background(), res); err != nil {
		t.Fatalf("Record: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "game-42.png"))
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	decode(t, raw)
}

func TestExporterRejectsUnsafeIDs(t *testing.T) {
	exp := NewExporter(t.TempDir(), nil)
	for _, id := range []string{"", "..", "../escape", "a/b"} {
		if _, err := exp.Path(id); !errors.Is(err, ErrInvalidGameID) {
			t.Fatalf("Path(%q) err = %v", id, err)
		}
	}
	if err := exp.Record(context.Background(), &checkersdto.MatchResult{GameID: "../x"}); !errors.Is(err, ErrInvalidGameID) {
		t.Fatalf("Record with unsafe id: %v", err)
	}
	if err := exp.Record(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
}

func TestExporterSavedOnlyAfterWrite(t *testing.T) {
	dir := t.TempDir()
	exp := NewExporter(dir, nil)
	res := &checkersdto.MatchResult{
		GameID:     "g-saved",
		Winner:     "BLACK",
		FinalBoard: []checkersdto.PieceView{{Square: checkersdto.Square{X: 0, Y: 5}, Team: "BLACK"}},
	}
	if _, ok := exp.Saved(res.GameID); ok {
		t.Fatalf("Saved before Record")
	}
	if err := exp.Record(context.Background(), res); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if path, ok := exp.Saved(res.GameID); !ok || path != filepath.Join(dir, "g-saved.png") {
		t.Fatalf("Saved = %q/%v", path, ok)
	}

	// a regular file where the directory should be makes the write fail
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	broken := NewExporter(blocker, nil)
	if err := broken.Record(context.Background(), res); err == nil {
		t.Fatalf("expected write failure")
	}
	if _, ok := broken.Saved(res.GameID); ok {
		t.Fatalf("Saved after failed write")
	}
	if _, ok := exp.Saved("../escape"); ok {
		t.Fatalf("Saved accepted an unsafe id")
	}
}
