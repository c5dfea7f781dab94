// Package catalog holds the versioned rule tables used by the essay
// analyzer: misspellings, confusable words, regex rules, phrase lists and
// the lexicons behind the structure and feature heuristics.
//
// The tables ship embedded in the binary as YAML. They are parsed and every
// pattern compiled exactly once; a Catalog is read-only afterwards and safe
// for concurrent use.
package catalog

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// supportedMajor is the only catalog major version this build understands.
const supportedMajor = "v1"

// Fix names how a regex rule derives its suggestion from the matched text.
type Fix string

const (
	FixSingularAgreement Fix = "singular_agreement"
	FixPluralAgreement   Fix = "plural_agreement"
	FixModalHave         Fix = "modal_have"
	FixNeedsCorrection   Fix = "needs_correction"
	FixFirstMark         Fix = "first_mark"
	FixAddSpace          Fix = "add_space"
	FixTrimSpace         Fix = "trim_space"
	FixKeep              Fix = "keep"
	FixReplace           Fix = "replace"
	FixConsiderRevision  Fix = "consider_revision"
)

var knownFixes = map[Fix]bool{
	FixSingularAgreement: true,
	FixPluralAgreement:   true,
	FixModalHave:         true,
	FixNeedsCorrection:   true,
	FixFirstMark:         true,
	FixAddSpace:          true,
	FixTrimSpace:         true,
	FixKeep:              true,
	FixReplace:           true,
	FixConsiderRevision:  true,
}

// Correction maps a common misspelling to its correct form.
type Correction struct {
	Wrong string `yaml:"wrong"`
	Right string `yaml:"right"`

	Pattern *regexp.Regexp `yaml:"-"`
}

// Confusable is a word that is often mixed up with its alternatives.
type Confusable struct {
	Word         string   `yaml:"word"`
	Alternatives []string `yaml:"alternatives"`
}

// ContextCue picks an alternative for a confusable word when any keyword
// appears near it.
type ContextCue struct {
	Word     string   `yaml:"word"`
	Keywords []string `yaml:"keywords"`
	Choose   string   `yaml:"choose"`
}

// Rule is a single regex-driven grammar, punctuation or style check.
type Rule struct {
	ID          string `yaml:"id"`
	Pattern     string `yaml:"pattern"`
	IgnoreCase  bool   `yaml:"ignore_case"`
	Message     string `yaml:"message"`
	Advice      string `yaml:"advice"`
	Severity    string `yaml:"severity"`
	Fix         Fix    `yaml:"fix"`
	Replacement string `yaml:"replacement"`

	Regexp *regexp.Regexp `yaml:"-"`
}

// Explanation is the human-readable reason attached to a rule hit.
func (r *Rule) Explanation() string {
	return r.Message + ". " + r.Advice
}

// PassiveVoice describes the passive construction check.
type PassiveVoice struct {
	Pattern     string `yaml:"pattern"`
	Agent       string `yaml:"agent"`
	AgentWindow int    `yaml:"agent_window"`

	Regexp      *regexp.Regexp `yaml:"-"`
	AgentRegexp *regexp.Regexp `yaml:"-"`
}

// Repetition configures the overused-word check.
type Repetition struct {
	MinLength int      `yaml:"min_length"`
	MinCount  int      `yaml:"min_count"`
	StopWords []string `yaml:"stop_words"`

	stop map[string]bool
}

// IsStopWord reports whether w (lower-case) is excluded from repetition checks.
func (r *Repetition) IsStopWord(w string) bool {
	return r.stop[w]
}

// Coherence configures the paragraph transition check.
type Coherence struct {
	MinParagraphLength int      `yaml:"min_paragraph_length"`
	Transitions        []string `yaml:"transitions"`
}

// Redundancy maps a redundant phrase to its concise replacement.
type Redundancy struct {
	Phrase      string `yaml:"phrase"`
	Replacement string `yaml:"replacement"`

	Pattern *regexp.Regexp `yaml:"-"`
}

// Clarity configures the long-sentence check.
type Clarity struct {
	MaxSentenceWords int `yaml:"max_sentence_words"`
}

// StructureLexicon drives the structure analyzer.
type StructureLexicon struct {
	Introductions         []string `yaml:"introductions"`
	IntroductionMinLength int      `yaml:"introduction_min_length"`
	Thesis                []string `yaml:"thesis"`
	Conclusions           []string `yaml:"conclusions"`
	ConclusionMinLength   int      `yaml:"conclusion_min_length"`
	Transitions           []string `yaml:"transitions"`
}

// FeatureLexicon drives feature extraction and rule-based scoring.
type FeatureLexicon struct {
	Introductions []string `yaml:"introductions"`
	Conclusions   []string `yaml:"conclusions"`
	Thesis        []string `yaml:"thesis"`
	ThesisWindow  int      `yaml:"thesis_window"`
	Transitions   []string `yaml:"transitions"`
	Academic      []string `yaml:"academic"`
	Evidence      []string `yaml:"evidence"`

	academic map[string]bool
}

// IsAcademic reports whether w (lower-case) is academic vocabulary.
func (f *FeatureLexicon) IsAcademic(w string) bool {
	return f.academic[w]
}

// Catalog is the complete, compiled rule set.
type Catalog struct {
	Version      string           `yaml:"version"`
	Spelling     []Correction     `yaml:"spelling"`
	Confusables  []Confusable     `yaml:"confusables"`
	ContextCues  []ContextCue     `yaml:"context_cues"`
	Grammar      []Rule           `yaml:"grammar"`
	Punctuation  []Rule           `yaml:"punctuation"`
	Style        []Rule           `yaml:"style"`
	PassiveVoice PassiveVoice     `yaml:"passive_voice"`
	Repetition   Repetition       `yaml:"repetition"`
	Coherence    Coherence        `yaml:"coherence"`
	Redundancy   []Redundancy     `yaml:"redundancy"`
	Clarity      Clarity          `yaml:"clarity"`
	Structure    StructureLexicon `yaml:"structure"`
	Features     FeatureLexicon   `yaml:"features"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog. It is parsed on first use and shared
// afterwards.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(embedded)
	})
	return defaultCat, defaultErr
}

// MustDefault is Default for callers that treat a broken embedded catalog as
// a build defect.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and compiles a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.compile(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) compile() error {
	v := "v" + strings.TrimPrefix(c.Version, "v")
	if !semver.IsValid(v) {
		return fmt.Errorf("catalog version %q is not a semantic version", c.Version)
	}
	if semver.Major(v) != supportedMajor {
		return fmt.Errorf("catalog version %s unsupported: want %s.x", c.Version, supportedMajor)
	}

	for i := range c.Spelling {
		s := &c.Spelling[i]
		s.Pattern = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(s.Wrong) + `\b`)
	}
	for i := range c.Redundancy {
		r := &c.Redundancy[i]
		r.Pattern = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(r.Phrase) + `\b`)
	}

	for _, set := range []struct {
		name  string
		rules []Rule
	}{
		{"grammar", c.Grammar},
		{"punctuation", c.Punctuation},
		{"style", c.Style},
	} {
		for i := range set.rules {
			if err := set.rules[i].compile(); err != nil {
				return fmt.Errorf("%s rule %q: %w", set.name, set.rules[i].ID, err)
			}
		}
	}

	var err error
	if c.PassiveVoice.Regexp, err = regexp.Compile(`(?i)` + c.PassiveVoice.Pattern); err != nil {
		return fmt.Errorf("passive voice pattern: %w", err)
	}
	if c.PassiveVoice.AgentRegexp, err = regexp.Compile(`(?i)` + c.PassiveVoice.Agent); err != nil {
		return fmt.Errorf("passive voice agent pattern: %w", err)
	}

	c.Repetition.stop = toSet(c.Repetition.StopWords)
	c.Features.academic = toSet(c.Features.Academic)
	return nil
}

func (r *Rule) compile() error {
	if !knownFixes[r.Fix] {
		return fmt.Errorf("unknown fix %q", r.Fix)
	}
	switch r.Severity {
	case "low", "medium", "high":
	default:
		return fmt.Errorf("unknown severity %q", r.Severity)
	}
	pattern := r.Pattern
	if r.IgnoreCase {
		pattern = `(?i)` + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	r.Regexp = re
	return nil
}

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[strings.ToLower(w)] = true
	}
	return m
}

// Summary reports rule counts per table, in a stable order.
func (c *Catalog) Summary() []Count {
	return []Count{
		{"spelling", len(c.Spelling)},
		{"confusables", len(c.Confusables)},
		{"grammar", len(c.Grammar)},
		{"punctuation", len(c.Punctuation)},
		{"style", len(c.Style)},
		{"redundancy", len(c.Redundancy)},
		{"stop_words", len(c.Repetition.StopWords)},
		{"coherence_transitions", len(c.Coherence.Transitions)},
		{"structure_transitions", len(c.Structure.Transitions)},
		{"academic_words", len(c.Features.Academic)},
	}
}

// Count is a named table size.
type Count struct {
	Table string
	Rules int
}
