package cache

// Keyer derives cache keys for the three pipeline stages. Centralizing
// key derivation keeps CLI and API cache entries interchangeable.
type Keyer interface {
	// AggregateKey keys an aggregation result by the hash of its
	// submission list.
	AggregateKey(submissionsHash string) string

	// LayoutKey keys a layout result by the aggregate hash and the
	// layout options that shape placement.
	LayoutKey(aggregateHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the layout hash and the
	// render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts carries every option that changes layout output.
// Two runs with equal aggregate hash and equal opts produce equal
// layouts (the random fallback is seeded via Seed).
type LayoutKeyOpts struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	MinFontSize float64 `json:"min_font_size"`
	MaxFontSize float64 `json:"max_font_size"`
	FontScale   float64 `json:"font_scale"`
	Curve       float64 `json:"curve"`
	Theme       string  `json:"theme"`
	Padding     float64 `json:"padding"`
	SpiralStep  float64 `json:"spiral_step"`
	AngleStep   float64 `json:"angle_step"`
	MaxAttempts int     `json:"max_attempts"`
	Seed        int64   `json:"seed"`
}

// ArtifactKeyOpts carries render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	VizType string  `json:"viz_type"`
	Scale   float64 `json:"scale,omitempty"`
}

// DefaultKeyer is the standard key derivation: prefix plus a SHA-256
// hash of the JSON-encoded components.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// AggregateKey generates a key for aggregation results.
func (k *DefaultKeyer) AggregateKey(submissionsHash string) string {
	return hashKey("agg", submissionsHash)
}

// LayoutKey generates a key for layout results.
func (k *DefaultKeyer) LayoutKey(aggregateHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", aggregateHash, opts)
}

// ArtifactKey generates a key for rendered artifacts.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
