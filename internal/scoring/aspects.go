// Package scoring computes rule-based aspect scores and fuses them with
// externally supplied model scores.
package scoring

import (
	"math"

	"github.com/abhisek/essaylens/internal/textstats"
)

// Aspect names one graded dimension of writing quality.
type Aspect string

const (
	Content      Aspect = "content"
	Organization Aspect = "organization"
	Language     Aspect = "language"
	Conventions  Aspect = "conventions"
)

// Order is the fixed aspect iteration order. Fusion depends on it.
var Order = []Aspect{Content, Organization, Language, Conventions}

// NeutralScore stands in for any model score that is unavailable.
const NeutralScore = 6.0

// Aspects holds one score per aspect plus their composite.
type Aspects struct {
	Overall      float64 `json:"overall,omitempty"`
	Content      float64 `json:"content"`
	Organization float64 `json:"organization"`
	Language     float64 `json:"language"`
	Conventions  float64 `json:"conventions"`
}

// Neutral returns the scores substituted when no model is available.
func Neutral() Aspects {
	return Aspects{
		Overall:      NeutralScore,
		Content:      NeutralScore,
		Organization: NeutralScore,
		Language:     NeutralScore,
		Conventions:  NeutralScore,
	}
}

// Uniform returns Aspects with every field set to v.
func Uniform(v float64) Aspects {
	return Aspects{Overall: v, Content: v, Organization: v, Language: v, Conventions: v}
}

// Get returns the score for one aspect.
func (a Aspects) Get(k Aspect) float64 {
	switch k {
	case Content:
		return a.Content
	case Organization:
		return a.Organization
	case Language:
		return a.Language
	case Conventions:
		return a.Conventions
	}
	return 0
}

func (a *Aspects) set(k Aspect, v float64) {
	switch k {
	case Content:
		a.Content = v
	case Organization:
		a.Organization = v
	case Language:
		a.Language = v
	case Conventions:
		a.Conventions = v
	}
}

// Mean is the average of the four aspects; Overall is not included.
func (a Aspects) Mean() float64 {
	return (a.Content + a.Organization + a.Language + a.Conventions) / 4
}

// Sanitize replaces NaN and infinite values with NeutralScore.
func (a Aspects) Sanitize() Aspects {
	fix := func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NeutralScore
		}
		return v
	}
	return Aspects{
		Overall:      fix(a.Overall),
		Content:      fix(a.Content),
		Organization: fix(a.Organization),
		Language:     fix(a.Language),
		Conventions:  fix(a.Conventions),
	}
}

// Finalize clamps every score into [1, 10] and rounds to one decimal place.
func (a Aspects) Finalize() Aspects {
	f := func(v float64) float64 {
		return textstats.Round(clamp(v), 1)
	}
	return Aspects{
		Overall:      f(a.Overall),
		Content:      f(a.Content),
		Organization: f(a.Organization),
		Language:     f(a.Language),
		Conventions:  f(a.Conventions),
	}
}

func clamp(v float64) float64 {
	return min(max(v, 1.0), 10.0)
}

// Level is the writer's proficiency level.
type Level string

const (
	Beginner     Level = "beginner"
	Intermediate Level = "intermediate"
	Advanced     Level = "advanced"
)

// Factor scales the content, organization and language rule scores.
// Unrecognized levels are treated like intermediate.
func (l Level) Factor() float64 {
	switch l {
	case Beginner:
		return 1.1
	case Advanced:
		return 0.9
	default:
		return 1.0
	}
}
