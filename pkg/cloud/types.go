// Package cloud implements the shared word-cloud core: frequency
// aggregation, font scaling, palette selection, and the spiral layout
// engine that places word boxes on a canvas without overlap.
//
// The package is deliberately total: no function returns an error, and
// every input (including empty lists and degenerate canvas sizes)
// produces a best-effort result. Validation of user input belongs to
// the store and API boundaries, not here.
//
// # Pipeline
//
// The typical flow is:
//
//	ranked := cloud.Aggregate(submissions)
//	placed := cloud.Layout(ranked, cfg)
//
// Both steps are pure functions; repeated invocations recompute from
// scratch and do not share state, so concurrent callers need no
// synchronization.
package cloud

// Submission is one word contributed by one participant.
type Submission struct {
	SubmitterID string `json:"submitter_id" bson:"submitter_id"`
	Word        string `json:"word" bson:"word"`
}

// AggregatedWord is one distinct word and its statistics within one
// aggregation run. Key is the lowercased form of the word and doubles
// as the display string.
type AggregatedWord struct {
	Key string `json:"key" bson:"key"`

	// Count is the total number of submissions for this key. A
	// participant submitting the same word twice counts twice.
	Count int `json:"count" bson:"count"`

	// SubmitterIDs holds the distinct participants who submitted this
	// word at least once, sorted for deterministic serialization.
	// Invariant: len(SubmitterIDs) <= Count.
	SubmitterIDs []string `json:"submitter_ids" bson:"submitter_ids"`
}

// PlacedWord is one AggregatedWord annotated with render geometry for
// one layout run. X and Y are the top-left corner of the bounding box
// in canvas coordinates.
type PlacedWord struct {
	Key      string  `json:"key" bson:"key"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Width    float64 `json:"width" bson:"width"`
	Height   float64 `json:"height" bson:"height"`
	FontSize float64 `json:"font_size" bson:"font_size"`
	Color    string  `json:"color" bson:"color"`

	// Rank is the 0-based position in the descending-count ordering
	// used for this run.
	Rank int `json:"rank" bson:"rank"`

	// Count and Submitters carry the aggregation statistics through to
	// renderers (tooltips).
	Count      int `json:"count" bson:"count"`
	Submitters int `json:"submitters" bson:"submitters"`

	// Fallback marks words placed by the unconstrained random escape
	// valve after the spiral search exhausted its attempt budget. Such
	// boxes may overlap previously placed ones.
	Fallback bool `json:"fallback,omitempty" bson:"fallback,omitempty"`
}

// CenterX returns the horizontal center of the word box, where
// renderers anchor the glyph.
func (p PlacedWord) CenterX() float64 { return p.X + p.Width/2 }

// CenterY returns the vertical center of the word box.
func (p PlacedWord) CenterY() float64 { return p.Y + p.Height/2 }
