// Package nodelink renders the word↔participant relationship as a
// node-link diagram via Graphviz. It complements the cloud view: the
// cloud shows what was said, the nodelink shows who said it.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/classkit/wordcloud/pkg/cloud"
)

// Options configures node-link diagram generation.
type Options struct {
	// MaxWords bounds how many top-ranked words appear. Zero means all;
	// busy sessions stay readable with a bound around 20.
	MaxWords int

	// ShowCounts appends the submission count to each word label.
	ShowCounts bool
}

// ToDOT converts aggregated words to Graphviz DOT. Words become boxes
// with font size tracking their count; participants become ellipses,
// with an edge from each participant to every word they submitted.
func ToDOT(words []cloud.AggregatedWord, opts Options) string {
	if opts.MaxWords > 0 && len(words) > opts.MaxWords {
		words = words[:opts.MaxWords]
	}

	var buf bytes.Buffer
	buf.WriteString("graph wordcloud {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"sans-serif\"];\n")
	buf.WriteString("\n")

	maxCount := 1
	if len(words) > 0 {
		maxCount = words[0].Count
	}

	seen := make(map[string]bool)
	for _, w := range words {
		label := w.Key
		if opts.ShowCounts {
			label = fmt.Sprintf("%s (%d)", w.Key, w.Count)
		}
		fmt.Fprintf(&buf, "  %q [label=%q, shape=box, style=\"rounded,filled\", fillcolor=\"#ede9fe\", fontsize=%d];\n",
			wordNode(w.Key), label, wordFontSize(w.Count, maxCount))

		for _, id := range w.SubmitterIDs {
			if !seen[id] {
				seen[id] = true
				fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, fontsize=10, color=\"#9ca3af\"];\n",
					participantNode(id), id)
			}
		}
	}

	buf.WriteString("\n")
	for _, w := range words {
		for _, id := range w.SubmitterIDs {
			fmt.Fprintf(&buf, "  %q -- %q [color=\"#d1d5db\"];\n", participantNode(id), wordNode(w.Key))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// wordNode and participantNode namespace node IDs so a participant
// named like a word cannot collide.
func wordNode(key string) string       { return "w:" + key }
func participantNode(id string) string { return "p:" + id }

// wordFontSize maps counts to a small DOT font-size range.
func wordFontSize(count, maxCount int) int {
	if maxCount < 1 {
		maxCount = 1
	}
	return 12 + (12*count)/maxCount
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's svg element so the diagram
// scales to its container instead of using fixed point sizes.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
