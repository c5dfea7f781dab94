package detect

import "github.com/abhisek/essaylens/internal/catalog"

// Detector finds one category of issue in a text. Implementations are pure
// and never consult each other's output.
type Detector interface {
	Category() Category
	Detect(text string) []Record
}

// DefaultDetectors returns the eight detectors in output order.
func DefaultDetectors(c *catalog.Catalog) []Detector {
	return []Detector{
		&SpellingDetector{corrections: c.Spelling},
		&RuleDetector{category: CategoryGrammar, rules: c.Grammar, confidence: confidenceRule},
		&RuleDetector{category: CategoryPunctuation, rules: c.Punctuation, confidence: confidenceRule},
		&WordChoiceDetector{confusables: c.Confusables, cues: c.ContextCues},
		&StyleDetector{
			rules:      &RuleDetector{category: CategoryStyle, rules: c.Style, confidence: confidenceStyleRule},
			repetition: &c.Repetition,
			passive:    &c.PassiveVoice,
		},
		&CoherenceDetector{cfg: &c.Coherence},
		&RedundancyDetector{phrases: c.Redundancy},
		&ClarityDetector{maxWords: c.Clarity.MaxSentenceWords},
	}
}

// Engine runs a fixed detector set and resolves overlaps.
type Engine struct {
	detectors []Detector
}

// NewEngine builds an engine over the default detectors for the catalog.
func NewEngine(c *catalog.Catalog) *Engine {
	return NewEngineWith(DefaultDetectors(c)...)
}

// NewEngineWith builds an engine over an explicit detector list.
func NewEngineWith(detectors ...Detector) *Engine {
	return &Engine{detectors: detectors}
}

// Detect returns every candidate record, unresolved, in detector order.
// Records with an empty or out-of-range span are dropped.
func (e *Engine) Detect(text string) []Record {
	var out []Record
	for _, d := range e.detectors {
		for _, r := range d.Detect(text) {
			if r.Start < 0 || r.Start >= r.End || r.End > len(text) {
				continue
			}
			out = append(out, r)
		}
	}
	return out
}

// Run detects and resolves, returning a non-overlapping set ordered by start.
func (e *Engine) Run(text string) []Record {
	return Resolve(e.Detect(text))
}
