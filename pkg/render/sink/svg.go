// Package sink renders placed word clouds to output formats: SVG,
// PNG, and JSON. The SVG renderer is the reference output; PNG is a
// native raster of the same geometry, and JSON exposes the placed
// boxes for SPA consumers that draw client-side.
package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/classkit/wordcloud/pkg/cloud"
)

// Background colors per theme, chosen to keep every palette legible.
var themeBackgrounds = map[string]string{
	"mono": "#f9fafb",
}

// defaultBackground is used for themes without a specific background.
const defaultBackground = "#ffffff"

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	tooltips   bool
	fontFamily string
}

// WithBackground overrides the theme background color.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithTooltips attaches a <title> tooltip to each word showing the
// occurrence count and distinct-participant count.
func WithTooltips() SVGOption {
	return func(r *svgRenderer) { r.tooltips = true }
}

// WithFontFamily overrides the CSS font stack.
func WithFontFamily(family string) SVGOption {
	return func(r *svgRenderer) { r.fontFamily = family }
}

// RenderSVG renders placed words as a standalone SVG document.
// Each word is drawn as a centered text glyph at its box center, sized
// and colored as the layout decided.
func RenderSVG(placed []cloud.PlacedWord, cfg cloud.Config, opts ...SVGOption) []byte {
	cfg = cfg.Normalize()

	r := svgRenderer{
		background: themeBackground(cfg.Theme),
		fontFamily: "'Noto Sans KR', 'Apple SD Gothic Neo', sans-serif",
	}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		cfg.CanvasWidth, cfg.CanvasHeight, cfg.CanvasWidth, cfg.CanvasHeight)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)

	for _, p := range placed {
		renderWord(&buf, &r, p)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderWord(buf *bytes.Buffer, r *svgRenderer, p cloud.PlacedWord) {
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s" font-family=%q text-anchor="middle" dominant-baseline="central">`,
		p.CenterX(), p.CenterY(), p.FontSize, p.Color, r.fontFamily)

	if r.tooltips {
		fmt.Fprintf(buf, `<title>%s</title>`, escapeXML(tooltip(p)))
	}

	buf.WriteString(escapeXML(p.Key))
	buf.WriteString("</text>\n")
}

// tooltip formats the hover text: occurrence count and distinct
// participant count.
func tooltip(p cloud.PlacedWord) string {
	return fmt.Sprintf("%d회 (%d명)", p.Count, p.Submitters)
}

func themeBackground(theme string) string {
	if bg, ok := themeBackgrounds[theme]; ok {
		return bg
	}
	return defaultBackground
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
