package scoring

import (
	"math"

	"github.com/abhisek/essaylens/internal/detect"
)

const (
	modelWeight     = 0.7
	ruleWeight      = 0.3
	divergentModel  = 0.4
	divergentRule   = 0.6
	divergenceLimit = 2.0
)

// Fuse blends model and rule scores aspect by aspect in Order. Once any
// aspect's model and rule scores differ by more than 2.0, the rule score
// is weighted higher for that aspect and every aspect after it. The
// model's own Overall is ignored; the fused Overall is the aspect mean.
func Fuse(model, rule Aspects) Aspects {
	wm, wr := modelWeight, ruleWeight
	var out Aspects
	for _, k := range Order {
		m, r := model.Get(k), rule.Get(k)
		if math.Abs(m-r) > divergenceLimit {
			wm, wr = divergentModel, divergentRule
		}
		out.set(k, m*wm+r*wr)
	}
	out.Overall = out.Mean()
	return out
}

// Error penalty limits.
const (
	conventionsPenaltyPerError = 0.15
	conventionsPenaltyCap      = 2.5
	styleThreshold             = 3
	languagePenaltyPerStyle    = 0.1
	languagePenaltyCap         = 1.0
)

// AdjustForErrors lowers conventions by the number of mechanical errors
// and language by heavy style issues, then recomputes Overall.
func AdjustForErrors(a Aspects, errors []detect.Record) Aspects {
	var spelling, grammar, punctuation, style int
	for _, e := range errors {
		switch e.Category {
		case detect.CategorySpelling:
			spelling++
		case detect.CategoryGrammar:
			grammar++
		case detect.CategoryPunctuation:
			punctuation++
		case detect.CategoryStyle:
			style++
		}
	}

	if total := spelling + grammar + punctuation + style; total > 0 {
		penalty := min(float64(total)*conventionsPenaltyPerError, conventionsPenaltyCap)
		a.Conventions = max(a.Conventions-penalty, 1.0)
	}
	if style > styleThreshold {
		penalty := min(float64(style)*languagePenaltyPerStyle, languagePenaltyCap)
		a.Language = max(a.Language-penalty, 1.0)
	}
	a.Overall = a.Mean()
	return a
}
