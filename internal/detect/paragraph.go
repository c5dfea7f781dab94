package detect

import (
	"strings"
	"unicode/utf8"

	"github.com/abhisek/essaylens/internal/catalog"
	"github.com/abhisek/essaylens/internal/textstats"
)

// excerptLength is how many characters of a sentence are quoted in records
// that cover a whole sentence.
const excerptLength = 50

// CoherenceDetector flags body paragraphs that open without a transition.
type CoherenceDetector struct {
	cfg *catalog.Coherence
}

func (d *CoherenceDetector) Category() Category { return CategoryCoherence }

func (d *CoherenceDetector) Detect(text string) []Record {
	paragraphs := textstats.Paragraphs(text)
	if len(paragraphs) <= 1 {
		return nil
	}

	var out []Record
	for _, p := range paragraphs[1:] {
		first, _, _ := strings.Cut(p, ".")
		lower := strings.ToLower(first)
		if textstats.ContainsAny(lower, d.cfg.Transitions) ||
			utf8.RuneCountInString(p) < d.cfg.MinParagraphLength {
			continue
		}
		start := strings.Index(text, p)
		if start < 0 {
			continue
		}
		out = append(out, newRecord(CategoryCoherence, excerpt(lower), start, start+max(len(first), 1),
			"Add transition words",
			"Consider adding transition words to improve paragraph flow.",
			SeverityLow, confidenceCoherence))
	}
	return out
}

// ClarityDetector flags overlong sentences.
type ClarityDetector struct {
	maxWords int
}

func (d *ClarityDetector) Category() Category { return CategoryClarity }

func (d *ClarityDetector) Detect(text string) []Record {
	var out []Record
	for _, s := range textstats.Sentences(text) {
		if len(strings.Fields(s)) <= d.maxWords {
			continue
		}
		start := strings.Index(text, s)
		if start < 0 {
			continue
		}
		out = append(out, newRecord(CategoryClarity, excerpt(s), start, start+len(s),
			"Break into shorter sentences",
			"This sentence is very long and may be hard to follow.",
			SeverityMedium, confidenceClarity))
	}
	return out
}

// RedundancyDetector flags phrases that repeat their own meaning.
type RedundancyDetector struct {
	phrases []catalog.Redundancy
}

func (d *RedundancyDetector) Category() Category { return CategoryRedundancy }

func (d *RedundancyDetector) Detect(text string) []Record {
	var out []Record
	for _, p := range d.phrases {
		for _, loc := range p.Pattern.FindAllStringIndex(text, -1) {
			out = append(out, newRecord(CategoryRedundancy, text[loc[0]:loc[1]], loc[0], loc[1],
				p.Replacement, "This phrase contains redundant words.",
				SeverityLow, confidenceRedundancy))
		}
	}
	return out
}

func excerpt(s string) string {
	r := []rune(s)
	if len(r) > excerptLength {
		r = r[:excerptLength]
	}
	return string(r) + "..."
}
