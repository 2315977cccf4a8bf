// Package pipeline provides the core word-cloud pipeline.
//
// This package implements the complete aggregate → layout → render
// pipeline that can be used by CLI and API components. By centralizing
// this logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Aggregate: Group raw submissions into counted, ranked words
//  2. Layout: Place each word on the canvas via spiral search
//  3. Render: Generate output in various formats (SVG, PNG, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Submissions: subs,
//	    Theme:       "blue",
//	    Formats:     []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/classkit/wordcloud/pkg/cache"
	"github.com/classkit/wordcloud/pkg/cloud"
	"github.com/classkit/wordcloud/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility. The
	// seed only affects the fallback placement of words the spiral
	// search could not fit, but a fixed default keeps layouts stable
	// across runs and therefore cacheable.
	DefaultSeed = int64(42)

	// DefaultPNGScale is the default raster scale factor for PNG output.
	DefaultPNGScale = 2.0
)

// Visualization type constants.
const (
	VizTypeCloud    = "cloud"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeCloud

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeCloud:    true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the word-cloud pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Submissions are the raw word submissions to visualize.
	Submissions []cloud.Submission `json:"submissions,omitempty"`

	// Layout options
	VizType     string  `json:"viz_type,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	MinFontSize float64 `json:"min_font_size,omitempty"`
	MaxFontSize float64 `json:"max_font_size,omitempty"`
	FontScale   float64 `json:"font_scale,omitempty"`
	Curve       float64 `json:"curve,omitempty"`
	Theme       string  `json:"theme,omitempty"`
	Padding     float64 `json:"padding,omitempty"`
	SpiralStep  float64 `json:"spiral_step,omitempty"`
	AngleStep   float64 `json:"angle_step,omitempty"`
	MaxAttempts int     `json:"max_attempts,omitempty"`
	Seed        int64   `json:"seed,omitempty"`

	// Nodelink options
	MaxWords   int  `json:"max_words,omitempty"`
	ShowCounts bool `json:"show_counts,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Tooltips bool     `json:"tooltips,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Words is the aggregated word list, ranked by count.
	Words []cloud.AggregatedWord

	// AggregateHash is the content hash of the aggregated words.
	AggregateHash string

	// Placed contains the laid-out words (empty for nodelink runs).
	Placed []cloud.PlacedWord

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SubmissionCount int
	WordCount       int
	AggregateTime   time.Duration
	LayoutTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	AggregateHit bool // Whether aggregation came from cache
	LayoutHit    bool // Whether layout came from cache
	RenderHit    bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidViz,
			"invalid viz_type: %q (must be one of: cloud, nodelink)", vizType)
	}
	return nil
}

// ValidateTheme checks that a theme name is known.
func ValidateTheme(theme string) error {
	if !cloud.ValidTheme(theme) {
		return errors.New(errors.ErrCodeInvalidTheme, "unknown theme: %q", theme)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as
// calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Theme != "" {
		if err := ValidateTheme(o.Theme); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// IsCloud returns true if this is a spiral cloud visualization.
func (o *Options) IsCloud() bool {
	return o.VizType == "" || o.VizType == VizTypeCloud
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// CloudConfig builds the layout config from the options. The random
// source is seeded from Seed so repeated runs with equal options place
// fallback words identically.
func (o *Options) CloudConfig() cloud.Config {
	seed := o.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	return cloud.Config{
		CanvasWidth:   o.Width,
		CanvasHeight:  o.Height,
		MinFontSize:   o.MinFontSize,
		MaxFontSize:   o.MaxFontSize,
		FontScale:     o.FontScale,
		CurveExponent: o.Curve,
		Theme:         o.Theme,
		Padding:       o.Padding,
		SpiralStep:    o.SpiralStep,
		AngleStep:     o.AngleStep,
		MaxAttempts:   o.MaxAttempts,
		Rand:          rand.New(rand.NewSource(seed)),
	}.Normalize()
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg := o.CloudConfig()
	return cache.LayoutKeyOpts{
		Width:       cfg.CanvasWidth,
		Height:      cfg.CanvasHeight,
		MinFontSize: cfg.MinFontSize,
		MaxFontSize: cfg.MaxFontSize,
		FontScale:   cfg.FontScale,
		Curve:       cfg.CurveExponent,
		Theme:       cfg.Theme,
		Padding:     cfg.Padding,
		SpiralStep:  cfg.SpiralStep,
		AngleStep:   cfg.AngleStep,
		MaxAttempts: cfg.MaxAttempts,
		Seed:        o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:  format,
		VizType: o.VizType,
	}
	if format == FormatPNG {
		opts.Scale = o.PNGScale
	}
	return opts
}
