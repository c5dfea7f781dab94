package detect

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/essaylens/internal/catalog"
)

// RuleDetector applies an ordered list of regex rules. Each match becomes a
// record whose suggestion is derived by the rule's fix.
type RuleDetector struct {
	category   Category
	rules      []catalog.Rule
	confidence float64
}

func (d *RuleDetector) Category() Category { return d.category }

func (d *RuleDetector) Detect(text string) []Record {
	var out []Record
	for i := range d.rules {
		rule := &d.rules[i]
		for _, loc := range rule.Regexp.FindAllStringIndex(text, -1) {
			match := text[loc[0]:loc[1]]
			out = append(out, newRecord(d.category, match, loc[0], loc[1],
				suggest(rule, match), rule.Explanation(), Severity(rule.Severity), d.confidence))
		}
	}
	return out
}

var (
	singularVerbs = map[string]string{"are": "is", "were": "was"}
	pluralVerbs   = map[string]string{"is": "are", "was": "were"}
	modalOf       = map[string]string{"of": "have"}
)

var wordToken = regexp.MustCompile(`\b\w+\b`)

func suggest(rule *catalog.Rule, match string) string {
	switch rule.Fix {
	case catalog.FixSingularAgreement:
		return swapWords(match, singularVerbs)
	case catalog.FixPluralAgreement:
		return swapWords(match, pluralVerbs)
	case catalog.FixModalHave:
		return swapWords(match, modalOf)
	case catalog.FixNeedsCorrection:
		return match + " [needs correction]"
	case catalog.FixFirstMark:
		_, n := utf8.DecodeRuneInString(match)
		return match[:n]
	case catalog.FixAddSpace:
		_, n := utf8.DecodeRuneInString(match)
		return match[:n] + " " + match[n:]
	case catalog.FixTrimSpace:
		return strings.TrimSpace(match)
	case catalog.FixReplace:
		return matchCase(match, rule.Replacement)
	case catalog.FixConsiderRevision:
		return match + " [consider revision]"
	default:
		return match
	}
}

// swapWords replaces whole words found in pairs (keyed by lower case),
// carrying over the capitalization of the word it replaces.
func swapWords(s string, pairs map[string]string) string {
	return wordToken.ReplaceAllStringFunc(s, func(w string) string {
		if repl, ok := pairs[strings.ToLower(w)]; ok {
			return matchCase(w, repl)
		}
		return w
	})
}

// matchCase shapes repl after orig: all caps stays all caps, a leading
// capital stays a leading capital.
func matchCase(orig, repl string) string {
	if orig == "" || repl == "" {
		return repl
	}
	first, _ := utf8.DecodeRuneInString(orig)
	if !unicode.IsUpper(first) {
		return repl
	}
	if utf8.RuneCountInString(orig) > 1 && orig == strings.ToUpper(orig) {
		return strings.ToUpper(repl)
	}
	r, n := utf8.DecodeRuneInString(repl)
	return string(unicode.ToUpper(r)) + repl[n:]
}
