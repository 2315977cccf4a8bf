package cloud

import (
	"math"
	"math/rand"
	"testing"
)

type wordCount struct {
	key   string
	count int
}

// aggregated builds an AggregatedWord list from count pairs, already in
// the descending order Layout expects.
func aggregated(pairs ...wordCount) []AggregatedWord {
	out := make([]AggregatedWord, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, AggregatedWord{Key: p.key, Count: p.count, SubmitterIDs: []string{"s"}})
	}
	return out
}

func pair(key string, count int) wordCount { return wordCount{key, count} }

func overlaps(a, b PlacedWord, padding float64) bool {
	return a.X < b.X+b.Width+padding && a.X+a.Width+padding > b.X &&
		a.Y < b.Y+b.Height+padding && a.Y+a.Height+padding > b.Y
}

func TestLayoutEmpty(t *testing.T) {
	got := Layout(nil, Config{})
	if len(got) != 0 {
		t.Errorf("Layout(nil) = %v, want empty", got)
	}
}

func TestLayoutNonOverlap(t *testing.T) {
	words := aggregated(
		pair("cookie", 10),
		pair("team", 8),
		pair("shop", 5),
		pair("wish", 3),
		pair("rank", 1),
	)
	cfg := Config{Rand: rand.New(rand.NewSource(1))}.Normalize()

	placed := Layout(words, cfg)
	if len(placed) != len(words) {
		t.Fatalf("placed %d words, want %d", len(placed), len(words))
	}

	for i := range placed {
		if placed[i].Fallback {
			t.Fatalf("word %q unexpectedly hit fallback", placed[i].Key)
		}
		for j := i + 1; j < len(placed); j++ {
			if overlaps(placed[i], placed[j], cfg.Padding) {
				t.Errorf("boxes overlap: %q %+v and %q %+v",
					placed[i].Key, placed[i], placed[j].Key, placed[j])
			}
		}
	}
}

func TestLayoutInBounds(t *testing.T) {
	words := aggregated(pair("alpha", 6), pair("beta", 4), pair("gamma", 2))
	cfg := Config{Rand: rand.New(rand.NewSource(7))}.Normalize()

	for _, p := range Layout(words, cfg) {
		if p.Fallback {
			continue
		}
		if p.X < 0 || p.Y < 0 || p.X+p.Width > cfg.CanvasWidth || p.Y+p.Height > cfg.CanvasHeight {
			t.Errorf("%q out of bounds: %+v", p.Key, p)
		}
	}
}

func TestLayoutRankOrderAndMetadata(t *testing.T) {
	words := aggregated(pair("first", 9), pair("second", 4))
	placed := Layout(words, Config{Rand: rand.New(rand.NewSource(3))})

	if placed[0].Rank != 0 || placed[1].Rank != 1 {
		t.Errorf("ranks = %d, %d, want 0, 1", placed[0].Rank, placed[1].Rank)
	}
	if placed[0].FontSize <= placed[1].FontSize {
		t.Errorf("font sizes not descending: %v <= %v", placed[0].FontSize, placed[1].FontSize)
	}
	if placed[0].Count != 9 || placed[0].Submitters != 1 {
		t.Errorf("metadata not carried: %+v", placed[0])
	}
	if placed[0].Color == "" || placed[1].Color == "" {
		t.Error("colors not assigned")
	}
}

func TestLayoutOversizedWordFallsBack(t *testing.T) {
	// A 40-rune word at any font size cannot fit a 100x40 canvas.
	long := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	words := aggregated(pair(long, 5))
	cfg := Config{
		CanvasWidth:  100,
		CanvasHeight: 40,
		Rand:         rand.New(rand.NewSource(11)),
	}.Normalize()

	placed := Layout(words, cfg)
	if len(placed) != 1 {
		t.Fatalf("placed %d words, want 1", len(placed))
	}

	p := placed[0]
	if !p.Fallback {
		t.Error("oversized word did not fall back")
	}
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		t.Errorf("fallback coordinates not finite: %+v", p)
	}
	// Oversized boxes clamp to the origin rather than going negative.
	if p.X < 0 || p.Y < 0 {
		t.Errorf("fallback coordinates negative: %+v", p)
	}
}

func TestLayoutDeterministicWithSeededRand(t *testing.T) {
	words := aggregated(pair("one", 3), pair("two", 2), pair("three", 1))

	run := func() []PlacedWord {
		return Layout(words, Config{Rand: rand.New(rand.NewSource(42))})
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("run differs at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestLayoutDegenerateCanvas(t *testing.T) {
	words := aggregated(pair("word", 1))

	// Zero and negative canvas sizes must not panic and must produce
	// finite coordinates for every word.
	for _, dims := range [][2]float64{{0.1, 0.1}, {-10, -10}} {
		cfg := Config{
			CanvasWidth:  dims[0],
			CanvasHeight: dims[1],
			Rand:         rand.New(rand.NewSource(5)),
		}
		for _, p := range Layout(words, cfg) {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) {
				t.Errorf("canvas %v: NaN coordinates %+v", dims, p)
			}
		}
	}
}

func TestLayoutDenseInputCompletes(t *testing.T) {
	// Far more words than the canvas can hold; later words must still
	// all receive placements via the fallback path.
	var words []AggregatedWord
	for i := range 120 {
		words = append(words, AggregatedWord{
			Key:          "word" + string(rune('a'+i%26)) + string(rune('a'+i/26)),
			Count:        120 - i,
			SubmitterIDs: []string{"s"},
		})
	}
	cfg := Config{CanvasWidth: 200, CanvasHeight: 150, Rand: rand.New(rand.NewSource(9))}

	placed := Layout(words, cfg)
	if len(placed) != len(words) {
		t.Fatalf("placed %d words, want %d", len(placed), len(words))
	}
}

func TestEstimateBoxRuneCount(t *testing.T) {
	// Korean words must be measured by rune count, not byte length.
	wASCII, _ := EstimateBox("cook", 10)
	wKorean, _ := EstimateBox("쿠키쿠키", 10)
	if wASCII != wKorean {
		t.Errorf("4-rune widths differ: %v vs %v", wASCII, wKorean)
	}

	_, h := EstimateBox("x", 10)
	if h != 12 {
		t.Errorf("height = %v, want 12", h)
	}
}
