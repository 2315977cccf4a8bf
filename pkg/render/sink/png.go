package sink

import (
	"bytes"
	"image/png"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/fogleman/gg"

	"github.com/classkit/wordcloud/pkg/cloud"
)

// Font candidates for the raster output, tried in order. The CJK fonts
// come first so Korean classroom words render correctly when available.
var fontCandidates = []string{
	"NotoSansCJK-Regular.ttc",
	"NotoSansKR-Regular.otf",
	"NotoSans-Regular.ttf",
	"DejaVuSans.ttf",
	"Arial.ttf",
}

var (
	fontPathOnce sync.Once
	fontPath     string
)

// findFontPath locates a usable system font once per process. An empty
// result means no candidate was found; rendering then falls back to
// gg's built-in bitmap face, which is fixed-size but never fails.
func findFontPath() string {
	fontPathOnce.Do(func() {
		for _, name := range fontCandidates {
			if path, err := findfont.Find(name); err == nil {
				fontPath = path
				return
			}
		}
	})
	return fontPath
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
}

// WithPNGScale sets the raster scale factor (default 2.0 for 2x
// resolution).
func WithPNGScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground overrides the theme background color.
func WithPNGBackground(color string) PNGOption {
	return func(r *pngRenderer) { r.background = color }
}

// RenderPNG rasterizes placed words natively, drawing each word
// center-anchored at its box center with the layout's size and color.
func RenderPNG(placed []cloud.PlacedWord, cfg cloud.Config, opts ...PNGOption) ([]byte, error) {
	cfg = cfg.Normalize()

	r := pngRenderer{scale: 2.0, background: themeBackground(cfg.Theme)}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1.0
	}

	w := int(cfg.CanvasWidth * r.scale)
	h := int(cfg.CanvasHeight * r.scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)
	dc.SetHexColor(r.background)
	dc.Clear()

	path := findFontPath()
	for _, p := range placed {
		if path != "" {
			// Face loading can fail on exotic font files; the word is
			// still drawn with the previous (or built-in) face.
			_ = dc.LoadFontFace(path, p.FontSize)
		}
		dc.SetHexColor(p.Color)
		dc.DrawStringAnchored(p.Key, p.CenterX(), p.CenterY(), 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
