package nodelink

import (
	"strings"
	"testing"

	"github.com/classkit/wordcloud/pkg/cloud"
)

func testWords() []cloud.AggregatedWord {
	return []cloud.AggregatedWord{
		{Key: "cookie", Count: 3, SubmitterIDs: []string{"s1", "s2"}},
		{Key: "team", Count: 1, SubmitterIDs: []string{"s3"}},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testWords(), Options{})

	if !strings.HasPrefix(dot, "graph wordcloud {") {
		t.Errorf("missing graph header:\n%s", dot)
	}
	for _, want := range []string{
		`"w:cookie" [label="cookie"`,
		`"w:team" [label="team"`,
		`"p:s1" [label="s1"`,
		`"p:s1" -- "w:cookie"`,
		`"p:s2" -- "w:cookie"`,
		`"p:s3" -- "w:team"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTShowCounts(t *testing.T) {
	dot := ToDOT(testWords(), Options{ShowCounts: true})
	if !strings.Contains(dot, `label="cookie (3)"`) {
		t.Errorf("count label missing:\n%s", dot)
	}
}

func TestToDOTMaxWords(t *testing.T) {
	dot := ToDOT(testWords(), Options{MaxWords: 1})
	if strings.Contains(dot, "w:team") {
		t.Errorf("MaxWords not applied:\n%s", dot)
	}
	if !strings.Contains(dot, "w:cookie") {
		t.Errorf("top word dropped:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(nil, Options{})
	if !strings.Contains(dot, "graph wordcloud {") || strings.Contains(dot, `"w:`) {
		t.Errorf("empty DOT unexpected:\n%s", dot)
	}
}

func TestWordFontSize(t *testing.T) {
	if got := wordFontSize(10, 10); got != 24 {
		t.Errorf("max count size = %d, want 24", got)
	}
	if got := wordFontSize(0, 10); got != 12 {
		t.Errorf("zero count size = %d, want 12", got)
	}
	if got := wordFontSize(1, 0); got < 12 {
		t.Errorf("degenerate maxCount size = %d, want >= 12", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" something>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("dimensions not rewritten: %s", out)
	}
}
