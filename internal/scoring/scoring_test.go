package scoring

import (
	"math"
	"testing"

	"github.com/abhisek/essaylens/internal/catalog"
	"github.com/abhisek/essaylens/internal/detect"
	"github.com/abhisek/essaylens/internal/textstats"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: got %v, want %v", name, got, want)
	}
}

func records(n int, cat detect.Category, sev detect.Severity) []detect.Record {
	out := make([]detect.Record, n)
	for i := range out {
		out[i] = detect.Record{Category: cat, Severity: sev, Start: i * 10, End: i*10 + 5}
	}
	return out
}

func TestFuse_DivergenceSwitchesWeightsForEveryAspect(t *testing.T) {
	model := Uniform(9)
	rule := Uniform(4)

	got := Fuse(model, rule)
	for _, k := range Order {
		approx(t, string(k), got.Get(k), 0.4*9+0.6*4)
	}
	approx(t, "overall", got.Overall, 6.0)
}

func TestFuse_WeightsCarryOverToLaterAspects(t *testing.T) {
	model := Aspects{Content: 9, Organization: 6, Language: 7, Conventions: 7}
	rule := Aspects{Content: 4, Organization: 6, Language: 6, Conventions: 6}

	got := Fuse(model, rule)
	approx(t, "content", got.Content, 6.0)
	approx(t, "organization", got.Organization, 6.0)
	// Language does not diverge on its own but inherits 0.4/0.6.
	approx(t, "language", got.Language, 0.4*7+0.6*6)
	approx(t, "conventions", got.Conventions, 0.4*7+0.6*6)
}

func TestFuse_NoDivergenceKeepsBaseWeights(t *testing.T) {
	model := Aspects{Content: 7, Organization: 7, Language: 7, Conventions: 7}
	rule := Aspects{Content: 6, Organization: 6, Language: 6, Conventions: 5}

	got := Fuse(model, rule)
	approx(t, "content", got.Content, 0.7*7+0.3*6)
	approx(t, "conventions", got.Conventions, 0.7*7+0.3*5)
}

func TestFuse_IgnoresModelOverall(t *testing.T) {
	model := Uniform(6)
	model.Overall = 10
	got := Fuse(model, Uniform(6))
	approx(t, "overall", got.Overall, 6)
}

func TestAdjustForErrors(t *testing.T) {
	base := Uniform(6)

	tests := []struct {
		name        string
		errors      []detect.Record
		conventions float64
		language    float64
	}{
		{"no errors", nil, 6, 6},
		{"two spelling", records(2, detect.CategorySpelling, detect.SeverityMedium), 5.7, 6},
		{"penalty capped", records(40, detect.CategoryGrammar, detect.SeverityHigh), 3.5, 6},
		{"style hits language", records(5, detect.CategoryStyle, detect.SeverityLow), 5.25, 5.5},
		{"three style spare language", records(3, detect.CategoryStyle, detect.SeverityLow), 5.55, 6},
		{"other categories ignored", records(9, detect.CategoryClarity, detect.SeverityMedium), 6, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustForErrors(base, tt.errors)
			approx(t, "conventions", got.Conventions, tt.conventions)
			approx(t, "language", got.Language, tt.language)
			approx(t, "overall", got.Overall, got.Mean())
		})
	}
}

func TestAdjustForErrors_FloorsAtOne(t *testing.T) {
	low := Aspects{Content: 2, Organization: 2, Language: 1.2, Conventions: 1.5}
	got := AdjustForErrors(low, records(20, detect.CategoryStyle, detect.SeverityLow))
	approx(t, "conventions", got.Conventions, 1)
	approx(t, "language", got.Language, 1)
}

func TestScenarioE_FusedThenPenalized(t *testing.T) {
	fused := Fuse(Uniform(9), Uniform(4))
	got := AdjustForErrors(fused, records(10, detect.CategorySpelling, detect.SeverityMedium)).Finalize()

	if got.Content != 6 || got.Organization != 6 || got.Language != 6 {
		t.Errorf("got %+v, want 6.0 for content, organization and language", got)
	}
	if got.Conventions != 4.5 {
		t.Errorf("got conventions %v, want 4.5", got.Conventions)
	}
	if got.Overall != 5.6 {
		t.Errorf("got overall %v, want 5.6", got.Overall)
	}
}

func TestFinalize_ClampsAndRounds(t *testing.T) {
	got := Aspects{Overall: 12, Content: -3, Organization: 6.25, Language: 7.04, Conventions: math.NaN()}.
		Sanitize().Finalize()
	want := Aspects{Overall: 10, Content: 1, Organization: 6.3, Language: 7, Conventions: 6}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSanitize(t *testing.T) {
	got := Aspects{Overall: math.Inf(1), Content: 7, Organization: math.NaN(), Language: 3, Conventions: math.Inf(-1)}.Sanitize()
	want := Aspects{Overall: 6, Content: 7, Organization: 6, Language: 3, Conventions: 6}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLevelFactor(t *testing.T) {
	tests := []struct {
		level Level
		want  float64
	}{
		{Beginner, 1.1},
		{Intermediate, 1.0},
		{Advanced, 0.9},
		{Level("expert"), 1.0},
	}
	for _, tt := range tests {
		if got := tt.level.Factor(); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestRuleScorer_Content(t *testing.T) {
	s := NewRuleScorer(catalog.MustDefault())
	text := "For example, research shows gardens grow."
	f := textstats.Features{WordCount: 50, HasThesis: true}

	// 5 - 1 short + 1 evidence + 1 thesis + 2 full prompt overlap
	approx(t, "content", s.content(text, "Gardens grow", f), 8)
	// Half the prompt words are present.
	approx(t, "content half overlap", s.content(text, "gardens shrink", f), 7)
	approx(t, "content empty prompt", s.content(text, "", f), 6)
}

func TestRuleScorer_Organization(t *testing.T) {
	rich := textstats.Features{ParagraphCount: 4, HasIntroduction: true, HasConclusion: true, TransitionCount: 10}
	approx(t, "capped", organization("A. B. C. D.", rich), 10)

	sparse := textstats.Features{ParagraphCount: 1}
	approx(t, "sparse", organization("One sentence", sparse), 4)

	// Three terminators give four raw pieces.
	approx(t, "flow bonus", organization("A. B. C.", sparse), 4.5)
}

func TestRuleScorer_Language(t *testing.T) {
	f := textstats.Features{
		VocabularyDiversity:     0.8,
		AvgWordsPerSentence:     15,
		AcademicVocabularyRatio: 0.05,
		ComplexSentenceRatio:    0.25,
	}
	approx(t, "language", language(f), 8.5)

	flat := textstats.Features{VocabularyDiversity: 0.2, AvgWordsPerSentence: 30}
	approx(t, "flat", language(flat), 3.5)
}

func TestRuleScorer_Conventions(t *testing.T) {
	mixed := []detect.Record{
		{Severity: detect.SeverityHigh},
		{Severity: detect.SeverityMedium},
		{Severity: detect.SeverityLow},
	}
	approx(t, "mixed", conventions(mixed), 7.1)
	approx(t, "floored", conventions(records(30, detect.CategoryGrammar, detect.SeverityHigh)), 1)
	approx(t, "none", conventions(nil), 8)
}

func TestRuleScorer_LevelFactor(t *testing.T) {
	s := NewRuleScorer(catalog.MustDefault())
	text := "For example, research shows gardens grow."
	f := textstats.Features{WordCount: 50, HasThesis: true, ParagraphCount: 1, VocabularyDiversity: 0.4, AvgWordsPerSentence: 10}

	inter := s.Score(text, "gardens grow", f, nil, Intermediate)
	begin := s.Score(text, "gardens grow", f, nil, Beginner)
	adv := s.Score(text, "gardens grow", f, nil, Advanced)

	approx(t, "beginner content", begin.Content, inter.Content*1.1)
	approx(t, "advanced language", adv.Language, inter.Language*0.9)
	approx(t, "conventions unscaled", begin.Conventions, inter.Conventions)
	approx(t, "overall", inter.Overall, inter.Mean())
}

func TestConventions_MonotonicInErrorCount(t *testing.T) {
	s := NewRuleScorer(catalog.MustDefault())
	text := "In this essay I argue that gardens matter.\n\nFirst, they feed people."
	f := textstats.ExtractFeatures(text, &catalog.MustDefault().Features)
	model := Aspects{Content: 8, Organization: 7, Language: 7, Conventions: 8}

	for _, sev := range []detect.Severity{detect.SeverityLow, detect.SeverityMedium, detect.SeverityHigh} {
		prev := math.Inf(1)
		for n := range 40 {
			errs := records(n, detect.CategorySpelling, sev)
			rule := s.Score(text, "gardens", f, errs, Intermediate)
			got := AdjustForErrors(Fuse(model, rule), errs).Finalize().Conventions
			if got > prev {
				t.Fatalf("%s: conventions rose from %v to %v at %d errors", sev, prev, got, n)
			}
			prev = got
		}
	}
}

func TestScoreBounds(t *testing.T) {
	s := NewRuleScorer(catalog.MustDefault())
	engine := detect.NewEngine(catalog.MustDefault())
	texts := []string{
		"",
		"x",
		"I cant beleive we dont have time. He are very very happy!!",
		"In this essay I will argue, for example, according to research shows, that analysis and hypothesis matter.",
	}
	models := []Aspects{Uniform(1), Uniform(10), Uniform(NeutralScore)}
	for _, text := range texts {
		errs := engine.Run(text)
		f := textstats.ExtractFeatures(text, &catalog.MustDefault().Features)
		for _, level := range []Level{Beginner, Intermediate, Advanced} {
			for _, m := range models {
				got := AdjustForErrors(Fuse(m, s.Score(text, text, f, errs, level)), errs).Finalize()
				for _, v := range []float64{got.Overall, got.Content, got.Organization, got.Language, got.Conventions} {
					if v < 1 || v > 10 {
						t.Errorf("text %q level %s: score %v out of range", text, level, v)
					}
				}
			}
		}
	}
}
