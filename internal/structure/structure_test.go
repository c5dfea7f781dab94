package structure

import (
	"strings"
	"testing"

	"github.com/abhisek/essaylens/internal/catalog"
)

func analyzer() *Analyzer {
	return NewAnalyzer(catalog.MustDefault())
}

func TestAnalyze_FullEssay(t *testing.T) {
	text := "In this essay I will argue that gardens matter.\n\n" +
		"First, they feed people.\n\n" +
		"However, they also build community.\n\n" +
		"In conclusion, gardens matter."

	got := analyzer().Analyze(text)

	if !got.HasIntroduction || !got.ThesisDetected || !got.HasConclusion {
		t.Errorf("got intro=%v thesis=%v conclusion=%v, want all true",
			got.HasIntroduction, got.ThesisDetected, got.HasConclusion)
	}
	if got.TotalParagraphs != 4 {
		t.Errorf("got %d paragraphs, want 4", got.TotalParagraphs)
	}
	if got.BodyParagraphs != 2 {
		t.Errorf("got %d body paragraphs, want 2", got.BodyParagraphs)
	}
	// first, however
	if got.TransitionCount != 2 {
		t.Errorf("got %d transitions, want 2", got.TransitionCount)
	}
	// 5 + 3 presence + 1 paragraphs + 0.5 transitions
	if got.StructureScore != 9.5 {
		t.Errorf("got score %v, want 9.5", got.StructureScore)
	}
}

func TestAnalyze_LongParagraphsCountAsIntroAndConclusion(t *testing.T) {
	intro := strings.Repeat("a", 101)
	conclusion := strings.Repeat("b", 51)

	got := analyzer().Analyze(intro + "\n\n" + conclusion)
	if !got.HasIntroduction {
		t.Error("expected a 101 character first paragraph to count as an introduction")
	}
	if !got.HasConclusion {
		t.Error("expected a 51 character last paragraph to count as a conclusion")
	}

	got = analyzer().Analyze(strings.Repeat("a", 100) + "\n\n" + strings.Repeat("b", 50))
	if got.HasIntroduction || got.HasConclusion {
		t.Errorf("got intro=%v conclusion=%v at the length limits, want false", got.HasIntroduction, got.HasConclusion)
	}
	if got.BodyParagraphs != 1 {
		t.Errorf("got %d body paragraphs, want 1", got.BodyParagraphs)
	}
}

func TestAnalyze_TransitionsCountedOnce(t *testing.T) {
	got := analyzer().Analyze("however however however")
	if got.TransitionCount != 1 {
		t.Errorf("got %d transitions, want 1", got.TransitionCount)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	got := analyzer().Analyze("")
	if got.TotalParagraphs != 0 || got.BodyParagraphs != 0 {
		t.Errorf("got %+v, want zero paragraphs", got)
	}
	if got.AvgParagraphLength != 0 {
		t.Errorf("got avg %v, want 0", got.AvgParagraphLength)
	}
	// 5 - 1 for fewer than two paragraphs
	if got.StructureScore != 4 {
		t.Errorf("got score %v, want 4", got.StructureScore)
	}
}

func TestAnalyze_AvgParagraphLength(t *testing.T) {
	got := analyzer().Analyze("one two three\n\nfour five")
	if got.AvgParagraphLength != 2.5 {
		t.Errorf("got %v, want 2.5", got.AvgParagraphLength)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name                      string
		intro, conclusion, thesis bool
		paragraphs, transitions   int
		want                      float64
	}{
		{"everything", true, true, true, 5, 4, 10},
		{"nothing", false, false, false, 1, 0, 4},
		{"three paragraphs", false, false, false, 3, 1, 6},
		{"two paragraphs", true, false, false, 2, 0, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.intro, tt.conclusion, tt.thesis, tt.paragraphs, tt.transitions)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
