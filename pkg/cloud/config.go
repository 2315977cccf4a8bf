package cloud

import "math/rand"

// Default layout parameters. These match the reference visual output;
// callers override individual fields as needed.
const (
	DefaultCanvasWidth  = 600.0
	DefaultCanvasHeight = 400.0
	DefaultMinFontSize  = 20.0
	DefaultMaxFontSize  = 56.0
	DefaultCurve        = 0.7 // power-curve exponent; 1.0 is linear
	DefaultPadding      = 5.0
	DefaultSpiralStep   = 5.0
	DefaultAngleStep    = 0.5 // radians
	DefaultMaxAttempts  = 500
	DefaultTheme        = "purple"
)

// FontScale bounds for the user-adjustable zoom.
const (
	MinFontScale = 0.5
	MaxFontScale = 2.0
)

// Config controls one layout run. The zero value is usable after
// Normalize fills in defaults.
type Config struct {
	CanvasWidth  float64 `json:"canvas_width" toml:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height" toml:"canvas_height"`

	MinFontSize float64 `json:"min_font_size" toml:"min_font_size"`
	MaxFontSize float64 `json:"max_font_size" toml:"max_font_size"`

	// FontScale multiplies both font bounds uniformly. Values outside
	// [MinFontScale, MaxFontScale] are clamped.
	FontScale float64 `json:"font_scale" toml:"font_scale"`

	// CurveExponent shapes the count→size mapping: 1.0 is linear,
	// values below 1 shrink low-frequency words less aggressively.
	CurveExponent float64 `json:"curve_exponent" toml:"curve_exponent"`

	// Theme selects a named palette; unknown names fall back to the
	// default theme.
	Theme string `json:"theme" toml:"theme"`

	Padding     float64 `json:"padding" toml:"padding"`
	SpiralStep  float64 `json:"spiral_step" toml:"spiral_step"`
	AngleStep   float64 `json:"angle_step" toml:"angle_step"`
	MaxAttempts int     `json:"max_attempts" toml:"max_attempts"`

	// Rand is the random source for the placement fallback. Inject a
	// seeded source for deterministic tests; nil means a time-seeded
	// source is created per layout run.
	Rand *rand.Rand `json:"-" toml:"-"`
}

// Normalize fills zero fields with defaults and clamps FontScale.
// It returns the receiver by value so literals compose:
//
//	cfg := cloud.Config{Theme: "sunset"}.Normalize()
func (c Config) Normalize() Config {
	if c.CanvasWidth == 0 {
		c.CanvasWidth = DefaultCanvasWidth
	}
	if c.CanvasHeight == 0 {
		c.CanvasHeight = DefaultCanvasHeight
	}
	if c.MinFontSize == 0 {
		c.MinFontSize = DefaultMinFontSize
	}
	if c.MaxFontSize == 0 {
		c.MaxFontSize = DefaultMaxFontSize
	}
	if c.FontScale == 0 {
		c.FontScale = 1.0
	}
	c.FontScale = min(max(c.FontScale, MinFontScale), MaxFontScale)
	if c.CurveExponent == 0 {
		c.CurveExponent = DefaultCurve
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.Padding == 0 {
		c.Padding = DefaultPadding
	}
	if c.SpiralStep == 0 {
		c.SpiralStep = DefaultSpiralStep
	}
	if c.AngleStep == 0 {
		c.AngleStep = DefaultAngleStep
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	return c
}
