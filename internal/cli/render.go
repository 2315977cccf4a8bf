package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/classkit/wordcloud/pkg/cache"
	"github.com/classkit/wordcloud/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple outputs)
	vizTypes   []string // visualization types: "cloud", "nodelink"
	formats    []string // output formats: "svg", "png", "json", "dot"
	theme      string   // color palette name
	width      float64  // canvas width in pixels
	height     float64  // canvas height in pixels
	minFont    float64  // smallest font size
	maxFont    float64  // largest font size
	fontScale  float64  // uniform font multiplier
	curve      float64  // count→size curve exponent (1.0 = linear)
	seed       int64    // random seed for fallback placement
	tooltips   bool     // embed count tooltips in SVG output
	maxWords   int      // cap on words in nodelink diagrams
	showCounts bool     // append counts to nodelink word labels
	noCache    bool     // disable the render cache
	refresh    bool     // recompute even on a cache hit
}

// newRenderCmd creates the render command for generating word-cloud artifacts
// from a submissions file.
func newRenderCmd() *cobra.Command {
	var vizTypesStr, formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a submissions file to word-cloud artifacts",
		Long: `Render reads word submissions from a JSON file (array or JSON lines,
"-" for stdin), aggregates them, and writes the requested artifacts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.vizTypes = parseVizTypes(vizTypesStr)
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			for _, v := range opts.vizTypes {
				if err := pipeline.ValidateVizType(v); err != nil {
					return err
				}
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single type/format) or base path (multiple)")
	cmd.Flags().StringVarP(&vizTypesStr, "type", "t", "", "visualization type(s): cloud (default), nodelink (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "color theme: purple (default), pink, blue, green, sunset, orange, pastel, mono")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height")
	cmd.Flags().Float64Var(&opts.minFont, "min-font", 0, "smallest font size")
	cmd.Flags().Float64Var(&opts.maxFont, "max-font", 0, "largest font size")
	cmd.Flags().Float64Var(&opts.fontScale, "font-scale", 0, "uniform font multiplier (0.5-2.0)")
	cmd.Flags().Float64Var(&opts.curve, "curve", 0, "size curve exponent (1.0 = linear)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed for fallback placement")
	cmd.Flags().BoolVar(&opts.tooltips, "tooltips", false, "embed count tooltips in SVG output")
	cmd.Flags().IntVar(&opts.maxWords, "max-words", 0, "cap on words in nodelink diagrams")
	cmd.Flags().BoolVar(&opts.showCounts, "show-counts", false, "append counts to nodelink word labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// parseVizTypes parses the --type flag into a slice of visualization types.
// If empty, defaults to ["cloud"].
func parseVizTypes(s string) []string {
	if s == "" {
		return []string{pipeline.VizTypeCloud}
	}
	return strings.Split(s, ",")
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
// This is used when generating multiple files (e.g., class_cloud.svg, class_nodelink.svg).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads submissions from input and renders every requested
// type/format combination.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	subs, err := readSubmissions(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %d submissions", len(subs))

	runner := pipeline.NewRunner(newRenderCache(opts.noCache), nil, logger)
	defer runner.Close()

	single := len(opts.vizTypes) == 1 && len(opts.formats) == 1
	base := basePath(opts.output, input)

	for _, vizType := range opts.vizTypes {
		popts := pipeline.Options{
			Submissions: subs,
			VizType:     vizType,
			Theme:       opts.theme,
			Width:       opts.width,
			Height:      opts.height,
			MinFontSize: opts.minFont,
			MaxFontSize: opts.maxFont,
			FontScale:   opts.fontScale,
			Curve:       opts.curve,
			Seed:        opts.seed,
			Tooltips:    opts.tooltips,
			MaxWords:    opts.maxWords,
			ShowCounts:  opts.showCounts,
			Formats:     compatibleFormats(vizType, opts.formats),
			Refresh:     opts.refresh,
			Logger:      logger,
		}
		if len(popts.Formats) == 0 {
			logger.Debugf("Skipping %s (no supported formats requested)", vizType)
			continue
		}

		prog := newProgress(logger)
		result, err := runner.Execute(ctx, popts)
		if err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Rendered %d words (%s)", result.Stats.WordCount, vizType))
		printStats(result.Stats.WordCount, result.Stats.SubmissionCount, result.CacheInfo.RenderHit)

		for _, format := range popts.Formats {
			path := opts.output
			if !single || path == "" {
				if len(opts.vizTypes) == 1 {
					path = fmt.Sprintf("%s.%s", base, format)
				} else {
					path = fmt.Sprintf("%s_%s.%s", base, vizType, format)
				}
			}
			if err := writeArtifact(path, result.Artifacts[format]); err != nil {
				return err
			}
			printFile(path)
		}
	}

	return nil
}

// compatibleFormats filters requested formats to those the viz type
// supports: dot is nodelink-only, png is cloud-only.
func compatibleFormats(vizType string, formats []string) []string {
	var out []string
	for _, f := range formats {
		if vizType == pipeline.VizTypeCloud && f == pipeline.FormatDOT {
			continue
		}
		if vizType == pipeline.VizTypeNodelink && f == pipeline.FormatPNG {
			continue
		}
		out = append(out, f)
	}
	return out
}

// newRenderCache builds the file-backed render cache, falling back to a
// null cache when disabled or unavailable.
func newRenderCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// writeArtifact writes data to path (stdout when path is empty).
func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}
