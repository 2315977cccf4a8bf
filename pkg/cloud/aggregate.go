package cloud

import (
	"sort"
	"strings"
)

// Aggregate reduces a submission list into distinct-word frequency
// statistics, sorted by count descending.
//
// Words are grouped case-insensitively: the lowercased form is the
// grouping key and the display string. Count increments once per
// submission (no per-participant dedup); SubmitterIDs collects the
// distinct participants per key. Empty and whitespace-only words are
// dropped before grouping.
//
// Ties are broken by first-occurrence order: a key seen earlier in the
// input sorts before a key with equal count seen later. This makes the
// output a pure, deterministic function of the input list.
func Aggregate(subs []Submission) []AggregatedWord {
	type group struct {
		count      int
		submitters map[string]struct{}
	}

	// order tracks first-occurrence so the stable sort below can break
	// count ties deterministically.
	groups := make(map[string]*group)
	order := make([]string, 0, len(subs))

	for _, s := range subs {
		key := strings.ToLower(strings.TrimSpace(s.Word))
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{submitters: make(map[string]struct{})}
			groups[key] = g
			order = append(order, key)
		}
		g.count++
		g.submitters[s.SubmitterID] = struct{}{}
	}

	out := make([]AggregatedWord, 0, len(order))
	for _, key := range order {
		g := groups[key]
		ids := make([]string, 0, len(g.submitters))
		for id := range g.submitters {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out = append(out, AggregatedWord{
			Key:          key,
			Count:        g.count,
			SubmitterIDs: ids,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
