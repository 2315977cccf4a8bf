package pipeline

import (
	"encoding/json"

	"github.com/classkit/wordcloud/pkg/cloud"
	"github.com/classkit/wordcloud/pkg/errors"
	"github.com/classkit/wordcloud/pkg/render/nodelink"
	"github.com/classkit/wordcloud/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
// Cloud runs render from the placed words; nodelink runs build their
// DOT graph from the aggregated words on demand.
func Render(placed []cloud.PlacedWord, words []cloud.AggregatedWord, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if opts.IsNodelink() {
		return renderNodelink(words, opts)
	}
	return renderCloud(placed, opts)
}

// renderCloud generates spiral cloud outputs.
func renderCloud(placed []cloud.PlacedWord, opts Options) (map[string][]byte, error) {
	cfg := opts.CloudConfig()
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(placed, cfg, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(placed, cfg, sink.WithPNGScale(opts.PNGScale))
		case FormatJSON:
			data, err = sink.RenderJSON(placed, cfg)
		case FormatDOT:
			err = errors.New(errors.ErrCodeInvalidFormat,
				"dot output requires viz_type %q", VizTypeNodelink)
		default:
			err = errors.New(errors.ErrCodeInvalidFormat, "unsupported cloud format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink generates bipartite word-participant outputs.
func renderNodelink(words []cloud.AggregatedWord, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(words, nodelink.Options{
		MaxWords:   opts.MaxWords,
		ShowCounts: opts.ShowCounts,
	})

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatJSON:
			data, err = json.MarshalIndent(words, "", "  ")
		case FormatPNG:
			err = errors.New(errors.ErrCodeUnsupported, "nodelink does not support png output")
		default:
			err = errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Tooltips {
		svgOpts = append(svgOpts, sink.WithTooltips())
	}
	return svgOpts
}
