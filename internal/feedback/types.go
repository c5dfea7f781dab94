// Package feedback turns final scores and detected errors into feedback
// items and prioritized improvement suggestions. Every text comes from fixed
// threshold tables, so output is deterministic.
package feedback

// Polarity is the tone of a feedback item.
type Polarity string

const (
	Positive    Polarity = "positive"
	Neutral     Polarity = "neutral"
	Improvement Polarity = "improvement"
	Info        Polarity = "info"
)

// Severity tags a feedback item for display.
type Severity string

const (
	SeverityInfo   Severity = "info"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
	SeverityWarn   Severity = "warning"
)

// Priority orders improvement suggestions.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Item is one piece of feedback on an aspect of the essay.
type Item struct {
	Category    string   `json:"category"`
	Type        Polarity `json:"type"`
	Severity    Severity `json:"severity"`
	Comment     string   `json:"comment"`
	Suggestions []string `json:"suggestions"`
}

// Suggestion is a prioritized improvement with concrete tips.
type Suggestion struct {
	Area        string   `json:"area"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
	Tips        []string `json:"tips"`
}
