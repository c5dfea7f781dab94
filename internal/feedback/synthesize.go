package feedback

import (
	"fmt"
	"slices"

	"github.com/abhisek/essaylens/internal/detect"
	"github.com/abhisek/essaylens/internal/scoring"
)

// Improvement cut points. Aspects at or above improvementCeiling get no
// suggestion.
const (
	improvementCeiling = 8.0
	highPriorityBelow  = 6.0
	midPriorityBelow   = 7.0

	// An error category with more hits than this is high priority.
	errorHighPriorityCount = 5
)

// Synthesize builds the feedback and improvement lists for final scores.
// errors are the resolved detection records; their count and category mix
// drive the conventions comment and the error-focused suggestion.
func Synthesize(scores scoring.Aspects, errors []detect.Record, level scoring.Level) ([]Item, []Suggestion) {
	return Feedback(scores, len(errors), level), Improvements(scores, errors, level)
}

// Feedback returns one item for the overall score and each aspect, plus a
// level item when the score is notable for the writer's level.
func Feedback(scores scoring.Aspects, errorCount int, level scoring.Level) []Item {
	items := make([]Item, 0, 6)
	items = append(items, pick(overallBands, scores.Overall).item("Overall Assessment"))

	for _, af := range aspectFeedback {
		items = append(items, pick(af.Bands, scores.Get(af.Aspect)).item(af.Category))
	}
	items = append(items, conventionsItem(scores.Conventions, errorCount))

	switch {
	case level == scoring.Advanced && scores.Overall < 7.0:
		items = append(items, clone(advancedExpectations))
	case level == scoring.Beginner && scores.Overall >= 7.0:
		items = append(items, clone(beginnerAchievement))
	}
	return items
}

func pick(bands []band, score float64) band {
	for _, b := range bands {
		if score >= b.Min {
			return b
		}
	}
	return bands[len(bands)-1]
}

func (b band) item(category string) Item {
	return Item{
		Category:    category,
		Type:        b.Type,
		Severity:    b.Severity,
		Comment:     b.Comment,
		Suggestions: slices.Clone(b.Suggestions),
	}
}

func conventionsItem(score float64, errorCount int) Item {
	switch {
	case score >= 8.0 && errorCount <= 2:
		return Item{
			Category:    conventionsCategory,
			Type:        Positive,
			Severity:    SeverityLow,
			Comment:     "Excellent command of writing conventions with minimal errors.",
			Suggestions: slices.Clone(conventionsExcellent),
		}
	case score >= 6.5:
		return Item{
			Category:    conventionsCategory,
			Type:        Neutral,
			Severity:    SeverityMedium,
			Comment:     fmt.Sprintf("Good conventions with %d errors detected.", errorCount),
			Suggestions: slices.Clone(conventionsGood),
		}
	default:
		return Item{
			Category:    conventionsCategory,
			Type:        Improvement,
			Severity:    SeverityHigh,
			Comment:     fmt.Sprintf("Multiple convention errors detected (%d total).", errorCount),
			Suggestions: slices.Clone(conventionsWeak),
		}
	}
}

func clone(it Item) Item {
	it.Suggestions = slices.Clone(it.Suggestions)
	return it
}

// Improvements returns a suggestion for every aspect below 8.0, one for the
// most frequent error category, or a general suggestion when neither
// applies.
func Improvements(scores scoring.Aspects, errors []detect.Record, level scoring.Level) []Suggestion {
	var out []Suggestion
	for _, k := range scoring.Order {
		score := scores.Get(k)
		if score >= improvementCeiling {
			continue
		}
		out = append(out, aspectSuggestion(k, priorityFor(score), level))
	}

	if s, ok := errorSuggestion(errors); ok {
		out = append(out, s)
	}

	if len(out) == 0 {
		g := generalDevelopment
		g.Tips = slices.Clone(g.Tips)
		out = append(out, g)
	}
	return out
}

func priorityFor(score float64) Priority {
	switch {
	case score < highPriorityBelow:
		return PriorityHigh
	case score < midPriorityBelow:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func aspectSuggestion(k scoring.Aspect, p Priority, level scoring.Level) Suggestion {
	s := aspectImprovements[k]
	s.Priority = p
	s.Tips = slices.Clone(s.Tips)

	switch level {
	case scoring.Advanced:
		if k == scoring.Content || k == scoring.Language {
			s.Tips = append(s.Tips, advancedTips...)
		}
	case scoring.Beginner:
		s.Tips = s.Tips[:min(len(s.Tips), beginnerTipLimit)]
	}
	return s
}

// errorSuggestion targets the most frequent error category. Ties go to the
// category seen first in errors.
func errorSuggestion(errors []detect.Record) (Suggestion, bool) {
	if len(errors) == 0 {
		return Suggestion{}, false
	}

	counts := make(map[detect.Category]int)
	var order []detect.Category
	for _, e := range errors {
		if counts[e.Category] == 0 {
			order = append(order, e.Category)
		}
		counts[e.Category]++
	}

	top := order[0]
	for _, c := range order[1:] {
		if counts[c] > counts[top] {
			top = c
		}
	}

	tmpl, ok := errorImprovements[top]
	if !ok {
		return Suggestion{}, false
	}
	n := counts[top]
	p := PriorityMedium
	if n > errorHighPriorityCount {
		p = PriorityHigh
	}
	return Suggestion{
		Area:        tmpl.Area,
		Priority:    p,
		Description: fmt.Sprintf(tmpl.Description, n),
		Tips:        slices.Clone(tmpl.Tips),
	}, true
}

// Fallback returns the canned feedback and improvement used when a full
// analysis could not be completed.
func Fallback() ([]Item, []Suggestion) {
	item := Item{
		Category:    "General",
		Type:        Info,
		Severity:    SeverityInfo,
		Comment:     "Basic analysis completed. For detailed feedback, please try again.",
		Suggestions: []string{"Continue practicing writing", "Focus on essay structure"},
	}
	suggestion := Suggestion{
		Area:        "General Writing",
		Priority:    PriorityMedium,
		Description: "Continue developing your writing skills.",
		Tips:        []string{"Practice regularly", "Read model essays", "Seek feedback"},
	}
	return []Item{item}, []Suggestion{suggestion}
}
