package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/classkit/wordcloud/pkg/cache"
	"github.com/classkit/wordcloud/pkg/cloud"
)

func testSubmissions() []cloud.Submission {
	return []cloud.Submission{
		{Word: "수학", SubmitterID: "s1"},
		{Word: "수학", SubmitterID: "s2"},
		{Word: "과학", SubmitterID: "s1"},
		{Word: "체육", SubmitterID: "s3"},
	}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	t.Cleanup(func() { fc.Close() })
	return NewRunner(fc, nil, nil)
}

func TestRunnerExecute(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{
		Submissions: testSubmissions(),
		Theme:       "blue",
		Formats:     []string{"svg", "json"},
	}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.SubmissionCount != 4 {
		t.Errorf("SubmissionCount = %d, want 4", result.Stats.SubmissionCount)
	}
	if result.Stats.WordCount != 3 {
		t.Errorf("WordCount = %d, want 3", result.Stats.WordCount)
	}
	if len(result.Words) != 3 || result.Words[0].Key != "수학" {
		t.Errorf("Words = %v, want 수학 ranked first", result.Words)
	}
	if len(result.Placed) != 3 {
		t.Errorf("Placed = %d words, want 3", len(result.Placed))
	}
	if result.AggregateHash == "" {
		t.Error("AggregateHash should be set")
	}

	svg, ok := result.Artifacts["svg"]
	if !ok || !strings.Contains(string(svg), "<svg") {
		t.Error("svg artifact missing or malformed")
	}
	if _, ok := result.Artifacts["json"]; !ok {
		t.Error("json artifact missing")
	}

	if result.CacheInfo.AggregateHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("First run should not hit the cache")
	}
}

func TestRunnerExecuteCachesStages(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{Submissions: testSubmissions(), Formats: []string{"svg"}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("First Execute: %v", err)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Second Execute: %v", err)
	}

	if !second.CacheInfo.AggregateHit {
		t.Error("Second run should hit the aggregate cache")
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("Second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("Second run should hit the artifact cache")
	}

	if string(first.Artifacts["svg"]) != string(second.Artifacts["svg"]) {
		t.Error("Cached artifact should match the original")
	}
	if second.AggregateHash != first.AggregateHash {
		t.Error("AggregateHash should be stable across runs")
	}
}

func TestRunnerExecuteRefreshSkipsCache(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{Submissions: testSubmissions()}

	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("First Execute: %v", err)
	}

	opts.Refresh = true
	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Refresh Execute: %v", err)
	}
	if result.CacheInfo.AggregateHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("Refresh run should bypass the cache")
	}
}

func TestRunnerExecuteNodelinkDOT(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{
		Submissions: testSubmissions(),
		VizType:     VizTypeNodelink,
		Formats:     []string{"dot"},
	}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(result.Placed) != 0 {
		t.Error("Nodelink run should not produce a placement")
	}
	dot := string(result.Artifacts["dot"])
	if !strings.Contains(dot, "graph wordcloud") {
		t.Errorf("dot artifact should contain the graph header, got %q", dot)
	}
	if !strings.Contains(dot, "수학") {
		t.Error("dot artifact should contain submitted words")
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)

	if _, err := r.Execute(context.Background(), Options{Formats: []string{"pdf"}}); err == nil {
		t.Error("Invalid format should fail")
	}
	if _, err := r.Execute(context.Background(), Options{VizType: "treemap"}); err == nil {
		t.Error("Invalid viz type should fail")
	}
}

func TestRunnerNilDependencies(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Error("NewRunner should fill nil dependencies")
	}

	result, err := r.Execute(context.Background(), Options{Submissions: testSubmissions()})
	if err != nil {
		t.Fatalf("Execute with null cache: %v", err)
	}
	if len(result.Artifacts["svg"]) == 0 {
		t.Error("svg artifact missing")
	}
}

func TestRunnerExecuteEmptySubmissions(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)

	result, err := r.Execute(context.Background(), Options{Formats: []string{"svg", "json"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.WordCount != 0 {
		t.Errorf("WordCount = %d, want 0", result.Stats.WordCount)
	}
	if !strings.Contains(string(result.Artifacts["svg"]), "<svg") {
		t.Error("Empty cloud should still render an svg shell")
	}
}
