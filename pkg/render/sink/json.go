package sink

import (
	"encoding/json"

	"github.com/classkit/wordcloud/pkg/cloud"
)

// Document is the JSON artifact: the canvas frame plus every placed
// word, ready for a client-side renderer.
type Document struct {
	Width  float64            `json:"width"`
	Height float64            `json:"height"`
	Theme  string             `json:"theme"`
	Words  []cloud.PlacedWord `json:"words"`
}

// RenderJSON encodes placed words and their frame as indented JSON.
func RenderJSON(placed []cloud.PlacedWord, cfg cloud.Config) ([]byte, error) {
	cfg = cfg.Normalize()
	doc := Document{
		Width:  cfg.CanvasWidth,
		Height: cfg.CanvasHeight,
		Theme:  cfg.Theme,
		Words:  placed,
	}
	if doc.Words == nil {
		doc.Words = []cloud.PlacedWord{}
	}
	return json.MarshalIndent(doc, "", "  ")
}
