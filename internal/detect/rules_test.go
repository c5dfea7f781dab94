package detect

import (
	"testing"

	"github.com/abhisek/essaylens/internal/catalog"
)

func detectorFor(t *testing.T, cat Category) Detector {
	t.Helper()
	for _, d := range DefaultDetectors(catalog.MustDefault()) {
		if d.Category() == cat {
			return d
		}
	}
	t.Fatalf("no detector for %s", cat)
	return nil
}

func TestGrammarSuggestions(t *testing.T) {
	d := detectorFor(t, CategoryGrammar)
	tests := []struct {
		text, match, suggestion string
	}{
		{"she were late", "she were", "she was"},
		{"They is here", "They is", "They are"},
		{"we was there", "we was", "we were"},
		{"It Could Of been", "Could Of", "Could Have"},
		{"might of seen", "might of", "might have"},
		{"he were gone", "he were", "he was"},
		{"they was here", "they was", "they were"},
		{"you must of known", "must of", "must have"},
		{"YOU SHOULD OF ASKED", "SHOULD OF", "SHOULD HAVE"},
		{"this is different than that", "different than", "different than [needs correction]"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := d.Detect(tt.text)
			if len(got) == 0 {
				t.Fatal("expected a grammar record")
			}
			if got[0].Text != tt.match {
				t.Errorf("got match %q, want %q", got[0].Text, tt.match)
			}
			if got[0].Suggestion != tt.suggestion {
				t.Errorf("got suggestion %q, want %q", got[0].Suggestion, tt.suggestion)
			}
			if got[0].Confidence != 0.8 {
				t.Errorf("got confidence %v, want 0.8", got[0].Confidence)
			}
		})
	}
}

func TestPunctuationSuggestions(t *testing.T) {
	d := detectorFor(t, CategoryPunctuation)
	tests := []struct {
		text, match, suggestion string
		severity                Severity
	}{
		{"Wait!! ", "!!", "!", SeverityLow},
		{"Hello,world", ",w", ", w", SeverityMedium},
		{"Hi , there", " ,", ",", SeverityLow},
		{"a word(note) ", "d(", "d(", SeverityLow},
		{"(note)then ", ")t", ")t", SeverityLow},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := d.Detect(tt.text)
			if len(got) != 1 {
				t.Fatalf("got %d records %+v, want 1", len(got), got)
			}
			if got[0].Text != tt.match || got[0].Suggestion != tt.suggestion {
				t.Errorf("got %q -> %q, want %q -> %q", got[0].Text, got[0].Suggestion, tt.match, tt.suggestion)
			}
			if got[0].Severity != tt.severity {
				t.Errorf("got severity %q, want %q", got[0].Severity, tt.severity)
			}
		})
	}
}

func TestStyleRuleSuggestions(t *testing.T) {
	d := detectorFor(t, CategoryStyle)
	tests := []struct {
		text, suggestion string
	}{
		{"Very very good", "Extremely"},
		{"in order to win", "to"},
		{"It failed due to the fact that rain fell", "because"},
		{"so that that works", "that that [consider revision]"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := d.Detect(tt.text)
			if len(got) == 0 {
				t.Fatal("expected a style record")
			}
			if got[0].Suggestion != tt.suggestion {
				t.Errorf("got %q, want %q", got[0].Suggestion, tt.suggestion)
			}
			if got[0].Confidence != 0.7 {
				t.Errorf("got confidence %v, want 0.7", got[0].Confidence)
			}
		})
	}
}

func TestStyle_Repetition(t *testing.T) {
	d := detectorFor(t, CategoryStyle)
	got := d.Detect("Garden garden garden garden garden garden grows.")
	if len(got) != 1 {
		t.Fatalf("got %d records %+v, want 1", len(got), got)
	}
	r := got[0]
	if r.Text != "garden" || r.Start != 0 || r.End != 6 {
		t.Errorf("got %q at [%d,%d), want garden at [0,6)", r.Text, r.Start, r.End)
	}
	if r.Explanation != "The word 'garden' appears 6 times. Consider using synonyms." {
		t.Errorf("got explanation %q", r.Explanation)
	}
}

func TestStyle_RepetitionIgnoresStopAndShortWords(t *testing.T) {
	d := detectorFor(t, CategoryStyle)
	text := "those those those those those those tree tree tree tree tree tree"
	if got := d.Detect(text); len(got) != 0 {
		t.Errorf("got %d records, want 0", len(got))
	}
}

func TestStyle_PassiveVoice(t *testing.T) {
	d := detectorFor(t, CategoryStyle)

	got := d.Detect("The cake was baked yesterday.")
	if len(got) != 1 || got[0].Text != "was baked" {
		t.Fatalf("got %+v, want one passive record", got)
	}
	if got[0].Confidence != 0.5 {
		t.Errorf("got confidence %v, want 0.5", got[0].Confidence)
	}

	if got := d.Detect("The cake was baked by Sam."); len(got) != 0 {
		t.Errorf("got %+v, want no record with a by-agent", got)
	}
}

func TestWordChoice_ContextCues(t *testing.T) {
	d := detectorFor(t, CategoryWordChoice)
	tests := []struct {
		text, suggestion string
	}{
		{"The affect was a result of rain", "effect"},
		{"The affect was large", "effect"},
		{"Will it effect and influence us", "affect"},
		{"It was than, when we left", "then"},
		{"We wanted more then that", "than"},
		{"There it is", "their"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := d.Detect(tt.text)
			if len(got) == 0 {
				t.Fatal("expected a word choice record")
			}
			if got[0].Suggestion != tt.suggestion {
				t.Errorf("got %q, want %q", got[0].Suggestion, tt.suggestion)
			}
		})
	}
}

func TestWordChoice_EveryOccurrence(t *testing.T) {
	d := detectorFor(t, CategoryWordChoice)
	got := d.Detect("Your dog and your cat")
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].Text != "Your" || got[1].Text != "your" {
		t.Errorf("got %q and %q", got[0].Text, got[1].Text)
	}
	if got[0].Explanation != "'Your' might be confused with similar words. Check context." {
		t.Errorf("got explanation %q", got[0].Explanation)
	}
}

func TestRedundancy(t *testing.T) {
	d := detectorFor(t, CategoryRedundancy)
	got := d.Detect("A Free Gift and past history.")
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].Text != "Free Gift" || got[0].Suggestion != "gift" {
		t.Errorf("got %q -> %q", got[0].Text, got[0].Suggestion)
	}
	if got[1].Suggestion != "history" {
		t.Errorf("got %q, want history", got[1].Suggestion)
	}
}

func TestClarity_LongSentence(t *testing.T) {
	d := detectorFor(t, CategoryClarity)
	long := ""
	for range 41 {
		long += "word "
	}
	got := d.Detect("Short one. " + long + ".")
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Start != len("Short one. ") {
		t.Errorf("got start %d", got[0].Start)
	}
	if got[0].Severity != SeverityMedium || got[0].Confidence != 0.7 {
		t.Errorf("got %s/%v, want medium/0.7", got[0].Severity, got[0].Confidence)
	}
}

func TestMatchCase(t *testing.T) {
	tests := []struct{ orig, repl, want string }{
		{"of", "have", "have"},
		{"Of", "have", "Have"},
		{"OF", "have", "HAVE"},
		{"I", "to", "To"},
	}
	for _, tt := range tests {
		if got := matchCase(tt.orig, tt.repl); got != tt.want {
			t.Errorf("matchCase(%q, %q) = %q, want %q", tt.orig, tt.repl, got, tt.want)
		}
	}
}
