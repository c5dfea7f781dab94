package detect

import (
	"cmp"
	"slices"
)

// Resolve selects a non-overlapping subset of candidates. Candidates are
// stably ordered by start, then by descending confidence, and folded left to
// right: a record that starts at or after the last kept record's end is
// kept; an overlapping record replaces the last kept one only when its
// confidence is strictly greater. The input slice is not modified.
func Resolve(candidates []Record) []Record {
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(b.Confidence, a.Confidence)
	})

	kept := make([]Record, 0, len(sorted))
	lastEnd := -1
	for _, r := range sorted {
		switch {
		case r.Start >= lastEnd:
			kept = append(kept, r)
			lastEnd = r.End
		case r.Confidence > kept[len(kept)-1].Confidence:
			kept[len(kept)-1] = r
			lastEnd = r.End
		}
	}
	return kept
}
