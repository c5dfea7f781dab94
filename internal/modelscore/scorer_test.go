package modelscore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/abhisek/essaylens/internal/llm"
	"github.com/abhisek/essaylens/internal/scoring"
)

const sampleScores = `{"overall":7,"content":7,"organization":6.5,"language":7,"conventions":8}`

func TestLLMScorer_Score(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(sampleScores)})
	s := NewLLMScorer(mock, 0)

	got, err := s.Score(context.Background(), "Climate change is the defining issue of our time.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := scoring.Aspects{Overall: 7, Content: 7, Organization: 6.5, Language: 7, Conventions: 8}
	if *got != want {
		t.Errorf("got %+v, want %+v", *got, want)
	}

	req := mock.Calls[0]
	if req.Schema != EssayScores {
		t.Error("expected the essay-scores schema")
	}
	if !strings.Contains(req.Messages[0].Content, "defining issue") {
		t.Errorf("essay missing from prompt: %q", req.Messages[0].Content)
	}
	if s.ModelID() != "mock" {
		t.Errorf("got model %q, want mock", s.ModelID())
	}
}

func TestLLMScorer_RejectsOutOfRange(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"overall":7,"content":11,"organization":6,"language":7,"conventions":8}`),
	})
	_, err := NewLLMScorer(mock, 0).Score(context.Background(), "essay")
	var inv *llm.ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Errorf("got %v, want ErrInvalidResponse", err)
	}
}

func TestLLMScorer_RejectsMissingAspect(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"overall":7,"content":7}`)})
	if _, err := NewLLMScorer(mock, 0).Score(context.Background(), "essay"); err == nil {
		t.Error("expected error for incomplete scores")
	}
}

func TestLLMScorer_ProviderError(t *testing.T) {
	_, err := NewLLMScorer(llm.NewMockProvider(), 0).Score(context.Background(), "essay")
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("got %v, want ErrProviderUnavailable", err)
	}
}

func TestLLMScorer_EmptyEssay(t *testing.T) {
	mock := llm.NewMockProvider()
	if _, err := NewLLMScorer(mock, 0).Score(context.Background(), ""); err == nil {
		t.Error("expected error for empty essay")
	}
	if mock.CallCount() != 0 {
		t.Errorf("got %d provider calls, want 0", mock.CallCount())
	}
}

func TestLLMScorer_TruncatesLongEssay(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(sampleScores)})
	essay := strings.Repeat("é", 50)
	if _, err := NewLLMScorer(mock, 10).Score(context.Background(), essay); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := mock.Calls[0].Messages[0].Content
	if n := utf8.RuneCountInString(strings.TrimPrefix(content, "Essay:\n\n")); n != 10 {
		t.Errorf("got %d essay runes, want 10", n)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"essay", 10, "essay"},
		{"essay", 5, "essay"},
		{"essay", 3, "ess"},
		{"naïve", 3, "naï"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

type deadlineProvider struct {
	deadline time.Time
}

func (p *deadlineProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.deadline, _ = ctx.Deadline()
	return &llm.Response{Content: json.RawMessage(sampleScores)}, nil
}

func (p *deadlineProvider) ModelID() string { return "deadline" }

func TestLLMScorer_Timeout(t *testing.T) {
	p := &deadlineProvider{}
	if _, err := NewLLMScorer(p, 0).Score(context.Background(), "An essay."); err != nil {
		t.Fatal(err)
	}
	if !p.deadline.IsZero() {
		t.Error("expected no deadline without a timeout")
	}

	if _, err := NewLLMScorer(p, 0).WithTimeout(time.Minute).Score(context.Background(), "An essay."); err != nil {
		t.Fatal(err)
	}
	if p.deadline.IsZero() || time.Until(p.deadline) > time.Minute {
		t.Errorf("got deadline %v, want within one minute", p.deadline)
	}
}
