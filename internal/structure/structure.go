// Package structure detects the organizational signals of an essay:
// introduction, thesis, conclusion and transitions.
package structure

import (
	"strings"
	"unicode/utf8"

	"github.com/abhisek/essaylens/internal/catalog"
	"github.com/abhisek/essaylens/internal/textstats"
)

// Result is the structure analysis of one essay.
type Result struct {
	HasIntroduction    bool    `json:"has_introduction"`
	HasConclusion      bool    `json:"has_conclusion"`
	ThesisDetected     bool    `json:"thesis_detected"`
	BodyParagraphs     int     `json:"body_paragraphs"`
	TotalParagraphs    int     `json:"total_paragraphs"`
	TransitionCount    int     `json:"transition_count"`
	AvgParagraphLength float64 `json:"avg_paragraph_length"`
	StructureScore     float64 `json:"structure_score"`
}

// Analyzer scores essay structure against a lexicon.
type Analyzer struct {
	lex *catalog.StructureLexicon
}

// NewAnalyzer returns an analyzer backed by the catalog's structure lexicon.
func NewAnalyzer(c *catalog.Catalog) *Analyzer {
	return &Analyzer{lex: &c.Structure}
}

// Analyze inspects text. All phrase tests are case-insensitive substring
// matches.
func (a *Analyzer) Analyze(text string) Result {
	paragraphs := textstats.Paragraphs(text)

	var r Result
	if n := len(paragraphs); n > 0 {
		first := strings.ToLower(paragraphs[0])
		r.HasIntroduction = textstats.ContainsAny(first, a.lex.Introductions) ||
			utf8.RuneCountInString(first) >= a.lex.IntroductionMinLength
		r.ThesisDetected = textstats.ContainsAny(first, a.lex.Thesis)

		last := strings.ToLower(paragraphs[n-1])
		r.HasConclusion = textstats.ContainsAny(last, a.lex.Conclusions) ||
			utf8.RuneCountInString(last) >= a.lex.ConclusionMinLength
	}

	r.TotalParagraphs = len(paragraphs)
	if r.HasIntroduction && r.HasConclusion {
		r.BodyParagraphs = max(0, len(paragraphs)-2)
	} else {
		r.BodyParagraphs = max(0, len(paragraphs)-1)
	}
	r.TransitionCount = textstats.CountPresent(strings.ToLower(text), a.lex.Transitions)

	words := 0
	for _, p := range paragraphs {
		words += len(strings.Fields(p))
	}
	r.AvgParagraphLength = float64(words) / float64(max(len(paragraphs), 1))

	r.StructureScore = Score(r.HasIntroduction, r.HasConclusion, r.ThesisDetected,
		r.TotalParagraphs, r.TransitionCount)
	return r
}

// Score combines the presence signals and counts into a 1-10 score.
func Score(intro, conclusion, thesis bool, paragraphs, transitions int) float64 {
	score := 5.0
	for _, present := range []bool{intro, conclusion, thesis} {
		if present {
			score++
		}
	}

	switch {
	case paragraphs >= 4:
		score += 1.0
	case paragraphs >= 3:
		score += 0.5
	case paragraphs < 2:
		score -= 1.0
	}

	switch {
	case transitions >= 3:
		score += 1.0
	case transitions >= 1:
		score += 0.5
	}
	return min(max(score, 1.0), 10.0)
}
