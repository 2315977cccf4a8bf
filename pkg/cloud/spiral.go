package cloud

import (
	"math"
	"math/rand"
	"time"
	"unicode/utf8"
)

// Text-metric heuristic for estimating a word's bounding box without a
// glyph measurement API. Renderers that can measure text may substitute
// exact metrics, but layout always uses these so output is stable
// across render targets.
const (
	charWidthRatio  = 0.6
	lineHeightRatio = 1.2
)

// EstimateBox returns the approximate width and height of a word
// rendered at fontSize. Width scales with rune count, not byte count.
func EstimateBox(word string, fontSize float64) (w, h float64) {
	n := utf8.RuneCountInString(word)
	return float64(n) * fontSize * charWidthRatio, fontSize * lineHeightRatio
}

// Layout computes a non-overlapping placement for each word on the
// canvas. Words must already be sorted by count descending (the order
// Aggregate produces); they are processed in that order, largest first,
// and each accepted box constrains all later words.
//
// Placement walks an Archimedean-like spiral outward from the canvas
// center, accepting the first candidate that lies fully in bounds and
// does not collide with any previously placed box (boxes are inflated
// by cfg.Padding for the collision test). If cfg.MaxAttempts steps find
// no free spot, the word falls back to a uniform-random in-bounds
// position without a collision recheck; such words are marked Fallback
// and may overlap.
//
// The function never fails: empty input yields an empty slice, and
// degenerate canvas sizes degrade to clamped fallback placements.
func Layout(words []AggregatedWord, cfg Config) []PlacedWord {
	cfg = cfg.Normalize()
	if len(words) == 0 {
		return []PlacedWord{}
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	palette := Palette(cfg.Theme)
	maxCount := words[0].Count
	for _, w := range words {
		maxCount = max(maxCount, w.Count)
	}

	centerX := cfg.CanvasWidth / 2
	centerY := cfg.CanvasHeight / 2

	placed := make([]PlacedWord, 0, len(words))
	for rank, word := range words {
		size := FontSize(word.Count, maxCount, cfg)
		boxW, boxH := EstimateBox(word.Key, size)

		p := PlacedWord{
			Key:        word.Key,
			Width:      boxW,
			Height:     boxH,
			FontSize:   size,
			Color:      Color(rank, palette),
			Rank:       rank,
			Count:      word.Count,
			Submitters: len(word.SubmitterIDs),
		}

		x, y, ok := spiralSearch(boxW, boxH, centerX, centerY, placed, cfg)
		if !ok {
			x = randomCoord(rng, cfg.CanvasWidth, boxW)
			y = randomCoord(rng, cfg.CanvasHeight, boxH)
			p.Fallback = true
		}
		p.X, p.Y = x, y
		placed = append(placed, p)
	}
	return placed
}

// spiralSearch walks the spiral and returns the first free top-left
// corner, or ok=false when the attempt budget runs out.
func spiralSearch(boxW, boxH, centerX, centerY float64, placed []PlacedWord, cfg Config) (x, y float64, ok bool) {
	angle := 0.0
	radius := 0.0
	radiusStep := cfg.SpiralStep / (2 * math.Pi)

	for range cfg.MaxAttempts {
		x = centerX + radius*math.Cos(angle) - boxW/2
		y = centerY + radius*math.Sin(angle) - boxH/2

		if inBounds(x, y, boxW, boxH, cfg.CanvasWidth, cfg.CanvasHeight) &&
			!collidesAny(x, y, boxW, boxH, placed, cfg.Padding) {
			return x, y, true
		}

		angle += cfg.AngleStep
		radius += radiusStep
	}
	return 0, 0, false
}

func inBounds(x, y, w, h, canvasW, canvasH float64) bool {
	return x >= 0 && y >= 0 && x+w <= canvasW && y+h <= canvasH
}

func collidesAny(x, y, w, h float64, placed []PlacedWord, padding float64) bool {
	for _, p := range placed {
		if x < p.X+p.Width+padding && x+w+padding > p.X &&
			y < p.Y+p.Height+padding && y+h+padding > p.Y {
			return true
		}
	}
	return false
}

// randomCoord picks a fallback coordinate in [0, span-box], clamping
// the range so oversized boxes pin to the canvas origin instead of
// rendering off-canvas, and zero or negative spans cannot panic the
// random source.
func randomCoord(rng *rand.Rand, span, box float64) float64 {
	limit := span - box
	if limit <= 0 {
		return 0
	}
	return rng.Float64() * limit
}
