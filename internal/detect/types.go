package detect

// Category classifies a detected writing issue.
type Category string

const (
	CategorySpelling    Category = "spelling"
	CategoryGrammar     Category = "grammar"
	CategoryPunctuation Category = "punctuation"
	CategoryWordChoice  Category = "word_choice"
	CategoryStyle       Category = "style"
	CategoryCoherence   Category = "coherence"
	CategoryRedundancy  Category = "redundancy"
	CategoryClarity     Category = "clarity"
)

// Categories lists every category in detector order.
var Categories = []Category{
	CategorySpelling,
	CategoryGrammar,
	CategoryPunctuation,
	CategoryWordChoice,
	CategoryStyle,
	CategoryCoherence,
	CategoryRedundancy,
	CategoryClarity,
}

var labels = map[Category]string{
	CategorySpelling:    "Spelling Error",
	CategoryGrammar:     "Grammar Error",
	CategoryPunctuation: "Punctuation Error",
	CategoryWordChoice:  "Word Choice Error",
	CategoryStyle:       "Style Issue",
	CategoryCoherence:   "Coherence Issue",
	CategoryRedundancy:  "Redundancy Issue",
	CategoryClarity:     "Clarity Issue",
}

// Label is the display name of the category.
func (c Category) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

// Severity is the qualitative impact of an issue.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Record is one detected issue. Start and End are byte offsets into the
// analyzed text, half-open, with Start < End.
type Record struct {
	Category    Category `json:"type"`
	Label       string   `json:"error_type"`
	Text        string   `json:"text"`
	Start       int      `json:"start_pos"`
	End         int      `json:"end_pos"`
	Suggestion  string   `json:"suggestion"`
	Explanation string   `json:"explanation"`
	Severity    Severity `json:"severity"`
	Confidence  float64  `json:"confidence"`
}

// Fixed per-detector confidences. They only break ties between overlapping
// records.
const (
	confidenceSpelling   = 0.9
	confidenceRule       = 0.8 // grammar and punctuation
	confidenceWordChoice = 0.6
	confidenceStyleRule  = 0.7
	confidenceRepetition = 0.6
	confidencePassive    = 0.5
	confidenceCoherence  = 0.6
	confidenceRedundancy = 0.8
	confidenceClarity    = 0.7
)

func newRecord(cat Category, text string, start, end int, suggestion, explanation string, sev Severity, conf float64) Record {
	return Record{
		Category:    cat,
		Label:       cat.Label(),
		Text:        text,
		Start:       start,
		End:         end,
		Suggestion:  suggestion,
		Explanation: explanation,
		Severity:    sev,
		Confidence:  conf,
	}
}

// Group buckets records by category. Every category is present in the
// result, possibly with an empty slice.
func Group(records []Record) map[Category][]Record {
	out := make(map[Category][]Record, len(Categories))
	for _, c := range Categories {
		out[c] = []Record{}
	}
	for _, r := range records {
		out[r.Category] = append(out[r.Category], r)
	}
	return out
}
