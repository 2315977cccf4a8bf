package cloud

import "math"

// FontSize maps a word's count to a font size within the configured
// bounds. The ratio count/maxCount is clamped to [0, 1] and shaped by
// cfg.CurveExponent (1.0 linear, lower values keep small words fuller).
// cfg.FontScale multiplies both bounds uniformly.
//
// maxCount below 1 is treated as 1 so an empty aggregation cannot
// divide by zero. The function is deterministic and monotonic in count.
func FontSize(count, maxCount int, cfg Config) float64 {
	cfg = cfg.Normalize()
	if maxCount < 1 {
		maxCount = 1
	}
	ratio := float64(count) / float64(maxCount)
	ratio = min(max(ratio, 0), 1)

	ratio = math.Pow(ratio, cfg.CurveExponent)

	lo := cfg.MinFontSize * cfg.FontScale
	hi := cfg.MaxFontSize * cfg.FontScale
	return lo + (hi-lo)*ratio
}
