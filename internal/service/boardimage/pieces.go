package boardimage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const discSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100" height="100">
<circle cx="50" cy="50" r="38" fill="%[1]s" stroke="%[2]s" stroke-width="4"/>
<circle cx="50" cy="50" r="27" fill="none" stroke="%[2]s" stroke-width="3"/>
%[3]s</svg>`

const crownSVG = `<polygon points="30,62 30,40 40,50 50,34 60,50 70,40 70,62" fill="%s"/>`

type pieceStyle struct {
	fill, stroke, crown string
}

var pieceStyles = map[string]pieceStyle{
	"WHITE": {fill: "#f4f1ea", stroke: "#3a3a3a", crown: "#c8a030"},
	"BLACK": {fill: "#2b2b2b", stroke: "#101010", crown: "#e0c060"},
}

type pieceCacheKey struct {
	team string
	king bool
	size int
}

var (
	pieceCache   = map[pieceCacheKey]image.Image{}
	pieceCacheMu sync.RWMutex
)

func pieceSVG(team string, king bool) ([]byte, error) {
	st, ok := pieceStyles[team]
	if !ok {
		return nil, fmt.Errorf("unknown team %q", team)
	}
	crown := ""
	if king {
		crown = fmt.Sprintf(crownSVG, st.crown)
	}
	return []byte(fmt.Sprintf(discSVG, st.fill, st.stroke, crown)), nil
}

func renderPieceImage(team string, king bool, size int) (image.Image, error) {
	key := pieceCacheKey{team: team, king: king, size: size}

	pieceCacheMu.RLock()
	if img, ok := pieceCache[key]; ok {
		pieceCacheMu.RUnlock()
		return img, nil
	}
	pieceCacheMu.RUnlock()

	data, err := pieceSVG(team, king)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse piece svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	pieceCacheMu.Lock()
	pieceCache[key] = img
	pieceCacheMu.Unlock()
	return img, nil
}
