// Package boardimage renders draughts positions to PNG.
package boardimage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strconv"
	"strings"

	"github.com/park285/Cheese-Checkers/internal/draughts"
	"github.com/park285/Cheese-Checkers/pkg/checkersdto"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type RenderOptions struct {
	Title    string
	Subtitle string
	// Layers are painted over the squares in order, before pieces.
	Layers []checkersdto.Layer
}

type BoardRenderer interface {
	RenderPNG(ctx context.Context, pieces []checkersdto.PieceView, opts RenderOptions) ([]byte, error)
}

const (
	squareSize   = 64
	boardSize    = squareSize * draughts.Size
	sideMargin   = 28
	topMargin    = 84
	bottomMargin = 28
	panelHeight  = 28
	panelGap     = 8
	panelRadius  = 8
	panelPadX    = 16
)

var (
	lightSquare    = color.RGBA{224, 224, 224, 255}
	darkSquare     = color.RGBA{120, 94, 72, 255}
	backgroundFill = color.RGBA{22, 24, 34, 255}
	panelColor     = color.NRGBA{R: 36, G: 40, B: 58, A: 250}
	textPrimary    = color.NRGBA{R: 236, G: 239, B: 255, A: 255}
	textSecondary  = color.NRGBA{R: 190, G: 196, B: 220, A: 255}
	coordColor     = color.NRGBA{R: 8, G: 214, B: 120, A: 255}

	highlightColors = map[checkersdto.Highlight]color.Color{
		checkersdto.HighlightForced:            color.NRGBA{R: 255, G: 228, B: 120, A: 150},
		checkersdto.HighlightAlternativeAction: color.NRGBA{R: 255, G: 228, B: 120, A: 150},
		checkersdto.HighlightThreatened:        color.NRGBA{R: 230, G: 60, B: 60, A: 160},
		checkersdto.HighlightSelectedInvalid:   color.NRGBA{R: 230, G: 60, B: 60, A: 160},
		checkersdto.HighlightSelectedValid:     color.NRGBA{R: 40, G: 200, B: 60, A: 160},
		checkersdto.HighlightSelectedAction:    color.NRGBA{R: 40, G: 200, B: 60, A: 160},
		checkersdto.HighlightDimmed:            color.NRGBA{R: 0, G: 0, B: 0, A: 110},
	}
)

var errOffBoard = errors.New("piece outside the board")

type pngRenderer struct{}

func NewPNGRenderer() BoardRenderer {
	return &pngRenderer{}
}

func (r *pngRenderer) RenderPNG(ctx context.Context, pieces []checkersdto.PieceView, opts RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	origin := image.Point{X: sideMargin, Y: topMargin}
	img := image.NewRGBA(image.Rect(0, 0, boardSize+sideMargin*2, boardSize+topMargin+bottomMargin))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(backgroundFill), image.Point{}, imagedraw.Src)

	drawHUD(img, opts, image.Rect(origin.X, origin.Y, origin.X+boardSize, origin.Y+boardSize))
	drawSquares(img, origin)
	for _, l := range opts.Layers {
		clr, ok := highlightColors[l.Highlight]
		if !ok {
			continue
		}
		for _, sq := range l.Squares {
			imagedraw.Draw(img, squareRect(sq, origin), image.NewUniform(clr), image.Point{}, imagedraw.Over)
		}
	}
	if err := drawPieces(img, pieces, origin); err != nil {
		return nil, err
	}
	drawCoordinates(img, origin)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSnapshot draws a live snapshot with its highlights and status line.
func RenderSnapshot(ctx context.Context, r BoardRenderer, snap *checkersdto.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, errors.New("snapshot is nil")
	}
	return r.RenderPNG(ctx, snap.Pieces, RenderOptions{
		Title:    snap.Status,
		Subtitle: snap.Phase,
		Layers:   snap.Layers,
	})
}

func drawSquares(dst imagedraw.Image, origin image.Point) {
	for y := 0; y < draughts.Size; y++ {
		for x := 0; x < draughts.Size; x++ {
			sq := checkersdto.Square{X: x, Y: y}
			imagedraw.Draw(dst, squareRect(sq, origin), image.NewUniform(squareColor(sq)), image.Point{}, imagedraw.Src)
		}
	}
}

func drawPieces(dst imagedraw.Image, pieces []checkersdto.PieceView, origin image.Point) error {
	for _, p := range pieces {
		if p.Square.X < 0 || p.Square.X >= draughts.Size || p.Square.Y < 0 || p.Square.Y >= draughts.Size {
			return fmt.Errorf("%w: (%d,%d)", errOffBoard, p.Square.X, p.Square.Y)
		}
		img, err := renderPieceImage(p.Team, p.King, squareSize)
		if err != nil {
			return err
		}
		imagedraw.Draw(dst, squareRect(p.Square, origin), img, image.Point{}, imagedraw.Over)
	}
	return nil
}

func drawHUD(img *image.RGBA, opts RenderOptions, boardRect image.Rectangle) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{Dst: img, Face: face}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "CHECKERS"
	}
	subBottom := boardRect.Min.Y - panelGap*2
	subTop := subBottom - panelHeight
	titleBottom := subTop - panelGap
	titleRect := image.Rect(boardRect.Min.X, titleBottom-panelHeight, boardRect.Max.X, titleBottom)

	drawRoundedPanel(img, titleRect, panelRadius, panelColor)
	drawCenteredString(drawer, titleRect, truncateWithEllipsis(face, title, titleRect.Dx()-panelPadX*2), textPrimary)

	if sub := strings.TrimSpace(opts.Subtitle); sub != "" {
		width := drawer.MeasureString(sub).Round() + panelPadX*2
		if width > boardRect.Dx() {
			width = boardRect.Dx()
		}
		left := boardRect.Min.X + (boardRect.Dx()-width)/2
		subRect := image.Rect(left, subTop, left+width, subBottom)
		drawRoundedPanel(img, subRect, panelRadius, panelColor)
		drawCenteredString(drawer, subRect, truncateWithEllipsis(face, sub, width-panelPadX*2), textSecondary)
	}
}

func drawCoordinates(dst imagedraw.Image, origin image.Point) {
	drawer := &font.Drawer{Dst: dst, Face: basicfont.Face7x13, Src: image.NewUniform(coordColor)}
	ascent := basicfont.Face7x13.Metrics().Ascent.Ceil()
	for i := 0; i < draughts.Size; i++ {
		label := strconv.Itoa(i)
		center := i*squareSize + squareSize/2
		drawCenteredText(drawer, label, origin.X-sideMargin/2, origin.Y+center+ascent/2)
		drawCenteredText(drawer, label, origin.X+center, origin.Y+boardSize+ascent+4)
	}
}

func truncateWithEllipsis(face font.Face, text string, maxWidth int) string {
	if text == "" || maxWidth <= 0 {
		return text
	}
	drawer := font.Drawer{Face: face}
	if drawer.MeasureString(text).Round() <= maxWidth {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if candidate := string(runes) + "..."; drawer.MeasureString(candidate).Round() <= maxWidth {
			return candidate
		}
	}
	return ""
}

// drawRoundedPanel fills rect leaving the corners rounded by radius.
func drawRoundedPanel(img *image.RGBA, rect image.Rectangle, radius int, clr color.Color) {
	if rect.Empty() {
		return
	}
	if limit := min(rect.Dx(), rect.Dy()) / 2; radius > limit {
		radius = limit
	}
	fill := image.NewUniform(clr)
	imagedraw.Draw(img, image.Rect(rect.Min.X+radius, rect.Min.Y, rect.Max.X-radius, rect.Max.Y), fill, image.Point{}, imagedraw.Over)
	imagedraw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y+radius, rect.Min.X+radius, rect.Max.Y-radius), fill, image.Point{}, imagedraw.Over)
	imagedraw.Draw(img, image.Rect(rect.Max.X-radius, rect.Min.Y+radius, rect.Max.X, rect.Max.Y-radius), fill, image.Point{}, imagedraw.Over)

	corners := []struct {
		center image.Point
		quad   image.Rectangle
	}{
		{image.Pt(rect.Min.X+radius, rect.Min.Y+radius), image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+radius, rect.Min.Y+radius)},
		{image.Pt(rect.Max.X-radius-1, rect.Min.Y+radius), image.Rect(rect.Max.X-radius, rect.Min.Y, rect.Max.X, rect.Min.Y+radius)},
		{image.Pt(rect.Min.X+radius, rect.Max.Y-radius-1), image.Rect(rect.Min.X, rect.Max.Y-radius, rect.Min.X+radius, rect.Max.Y)},
		{image.Pt(rect.Max.X-radius-1, rect.Max.Y-radius-1), image.Rect(rect.Max.X-radius, rect.Max.Y-radius, rect.Max.X, rect.Max.Y)},
	}
	r2 := radius * radius
	for _, c := range corners {
		for y := c.quad.Min.Y; y < c.quad.Max.Y; y++ {
			for x := c.quad.Min.X; x < c.quad.Max.X; x++ {
				dx, dy := x-c.center.X, y-c.center.Y
				if dx*dx+dy*dy <= r2 {
					imagedraw.Draw(img, image.Rect(x, y, x+1, y+1), fill, image.Point{}, imagedraw.Over)
				}
			}
		}
	}
}

func drawCenteredString(drawer *font.Drawer, rect image.Rectangle, text string, clr color.Color) {
	if text == "" {
		return
	}
	metrics := drawer.Face.Metrics()
	width := drawer.MeasureString(text).Round()
	x := max(rect.Min.X+(rect.Dx()-width)/2, rect.Min.X)
	baseline := rect.Min.Y + (rect.Dy()+metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2
	drawer.Src = image.NewUniform(clr)
	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(text)
}

func drawCenteredText(drawer *font.Drawer, text string, centerX, baseline int) {
	width := drawer.MeasureString(text).Round()
	drawer.Dot = fixed.P(centerX-width/2, baseline)
	drawer.DrawString(text)
}

func squareRect(sq checkersdto.Square, origin image.Point) image.Rectangle {
	x := origin.X + sq.X*squareSize
	y := origin.Y + sq.Y*squareSize
	return image.Rect(x, y, x+squareSize, y+squareSize)
}

func squareColor(sq checkersdto.Square) color.Color {
	if (sq.X+sq.Y)%2 == 1 {
		return darkSquare
	}
	return lightSquare
}
