package scoring

import (
	"strings"

	"github.com/abhisek/essaylens/internal/catalog"
	"github.com/abhisek/essaylens/internal/detect"
	"github.com/abhisek/essaylens/internal/textstats"
)

// Severity deductions applied to the conventions rule score.
var severityDeduction = map[detect.Severity]float64{
	detect.SeverityHigh:   0.5,
	detect.SeverityMedium: 0.3,
	detect.SeverityLow:    0.1,
}

// RuleScorer derives aspect scores from text features alone.
type RuleScorer struct {
	lex *catalog.FeatureLexicon
}

// NewRuleScorer returns a scorer backed by the catalog's feature lexicon.
func NewRuleScorer(c *catalog.Catalog) *RuleScorer {
	return &RuleScorer{lex: &c.Features}
}

// Score computes the rule-based aspects for an essay. errors are the
// resolved detection records for the same text.
func (s *RuleScorer) Score(text, prompt string, f textstats.Features, errors []detect.Record, level Level) Aspects {
	factor := level.Factor()
	a := Aspects{
		Content:      min(10.0, s.content(text, prompt, f)*factor),
		Organization: min(10.0, organization(text, f)*factor),
		Language:     min(10.0, language(f)*factor),
		Conventions:  min(10.0, conventions(errors)),
	}
	a.Overall = a.Mean()
	return a
}

func (s *RuleScorer) content(text, prompt string, f textstats.Features) float64 {
	score := 5.0
	switch {
	case f.WordCount >= 300:
		score += 1.0
	case f.WordCount >= 200:
		score += 0.5
	case f.WordCount < 100:
		score -= 1.0
	}

	lower := strings.ToLower(text)
	score += min(float64(textstats.CountPresent(lower, s.lex.Evidence))*0.5, 2.0)

	if f.HasThesis {
		score += 1.0
	}

	score += promptOverlap(prompt, lower) * 2.0
	return min(score, 10.0)
}

// promptOverlap is the share of distinct prompt words that also appear in
// the essay.
func promptOverlap(prompt, lowerText string) float64 {
	promptWords := wordSet(strings.ToLower(prompt))
	essayWords := wordSet(lowerText)
	shared := 0
	for w := range promptWords {
		if _, ok := essayWords[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(max(len(promptWords), 1))
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range textstats.Words(s) {
		set[w] = struct{}{}
	}
	return set
}

func organization(text string, f textstats.Features) float64 {
	score := 5.0
	switch {
	case f.ParagraphCount >= 4:
		score += 1.5
	case f.ParagraphCount >= 3:
		score += 1.0
	case f.ParagraphCount < 2:
		score -= 1.0
	}

	if f.HasIntroduction {
		score += 1.0
	}
	if f.HasConclusion {
		score += 1.0
	}

	score += min(float64(f.TransitionCount)*0.3, 1.5)

	// The raw split keeps empty pieces, so "A. B. C." counts as four.
	if len(textstats.SentencePieces(text)) > 3 {
		score += 0.5
	}
	return min(score, 10.0)
}

func language(f textstats.Features) float64 {
	score := 5.0
	switch {
	case f.VocabularyDiversity > 0.7:
		score += 1.5
	case f.VocabularyDiversity > 0.5:
		score += 1.0
	case f.VocabularyDiversity < 0.3:
		score -= 1.0
	}

	switch avg := f.AvgWordsPerSentence; {
	case avg >= 12 && avg <= 20:
		score += 1.0
	case avg > 25:
		score -= 0.5
	case avg < 8:
		score -= 0.5
	}

	score += min(f.AcademicVocabularyRatio*10, 2.0)
	score += min(f.ComplexSentenceRatio*2, 1.0)
	return min(score, 10.0)
}

func conventions(errors []detect.Record) float64 {
	score := 8.0
	for _, e := range errors {
		d, ok := severityDeduction[e.Severity]
		if !ok {
			d = severityDeduction[detect.SeverityMedium]
		}
		score -= d
	}
	return max(score, 1.0)
}
