package detect

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/essaylens/internal/catalog"
	"github.com/abhisek/essaylens/internal/textstats"
)

// StyleDetector combines the style regex rules with word repetition and
// passive voice checks.
type StyleDetector struct {
	rules      *RuleDetector
	repetition *catalog.Repetition
	passive    *catalog.PassiveVoice
}

func (d *StyleDetector) Category() Category { return CategoryStyle }

func (d *StyleDetector) Detect(text string) []Record {
	out := d.rules.Detect(text)
	out = append(out, d.repeatedWords(text)...)
	out = append(out, d.passiveVoice(text)...)
	return out
}

// repeatedWords flags overused content words once, at their first
// occurrence, in order of first appearance.
func (d *StyleDetector) repeatedWords(text string) []Record {
	type tally struct {
		count int
		first []int
	}
	counts := make(map[string]*tally)
	var order []string
	for _, loc := range textstats.WordIndexes(text) {
		w := strings.ToLower(text[loc[0]:loc[1]])
		t, ok := counts[w]
		if !ok {
			t = &tally{first: loc}
			counts[w] = t
			order = append(order, w)
		}
		t.count++
	}

	var out []Record
	for _, w := range order {
		t := counts[w]
		if utf8.RuneCountInString(w) < d.repetition.MinLength ||
			d.repetition.IsStopWord(w) ||
			t.count < d.repetition.MinCount {
			continue
		}
		out = append(out, newRecord(CategoryStyle, w, t.first[0], t.first[1],
			"Use synonyms for variety",
			fmt.Sprintf("The word '%s' appears %d times. Consider using synonyms.", w, t.count),
			SeverityLow, confidenceRepetition))
	}
	return out
}

// passiveVoice flags be-verb + past participle constructions unless an
// explicit "by" agent follows right after.
func (d *StyleDetector) passiveVoice(text string) []Record {
	var out []Record
	for _, loc := range d.passive.Regexp.FindAllStringIndex(text, -1) {
		following := text[loc[1]:min(len(text), loc[1]+d.passive.AgentWindow)]
		if d.passive.AgentRegexp.MatchString(following) {
			continue
		}
		out = append(out, newRecord(CategoryStyle, text[loc[0]:loc[1]], loc[0], loc[1],
			"Consider active voice",
			"Consider rewriting in active voice for more direct expression.",
			SeverityLow, confidencePassive))
	}
	return out
}
