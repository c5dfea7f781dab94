package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/essaylens/internal/logging"
	"github.com/abhisek/essaylens/internal/store"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"content":7,"language":7}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"content":3,"language":4}`)},
	)

	first, err := mock.Generate(context.Background(), Request{Schema: rubricSchema()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Usage.InputTokens != 10 || first.StopReason != "end" {
		t.Errorf("got %+v", first)
	}
	second, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(second.Content) != `{"content":3,"language":4}` {
		t.Errorf("got %s", second.Content)
	}

	var unavail *ErrProviderUnavailable
	if _, err := mock.Generate(context.Background(), Request{}); !errors.As(err, &unavail) {
		t.Errorf("got %v, want ErrProviderUnavailable on empty queue", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("got %d calls, want 3", mock.CallCount())
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"content":12,"language":7}`)})
	var inv *ErrInvalidResponse
	if _, err := mock.Generate(context.Background(), Request{Schema: rubricSchema()}); !errors.As(err, &inv) {
		t.Errorf("got %v, want ErrInvalidResponse", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse(MockResponse{Content: json.RawMessage(`{}`)})
	_, _ = mock.Generate(context.Background(), Request{System: "sys"})
	if mock.Calls[0].System != "sys" {
		t.Errorf("got system %q, want sys", mock.Calls[0].System)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Errorf("got %q, want unknown", p)
	}
	ctx = WithPurpose(ctx, PurposeEssayScoring)
	if p := PurposeFrom(ctx); p != PurposeEssayScoring {
		t.Errorf("got %q, want %q", p, PurposeEssayScoring)
	}
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (f *fakeRecorder) AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, data)
	return f.err
}

func TestWithAudit_RecordsSuccess(t *testing.T) {
	rec := &fakeRecorder{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"content":7,"language":7}`),
		Usage:   Usage{InputTokens: 120, OutputTokens: 12},
	})
	p := WithAudit(mock, "gemini", rec, nil)
	clock := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	p.(*AuditProvider).now = func() time.Time {
		clock = clock.Add(250 * time.Millisecond)
		return clock
	}

	ctx := WithPurpose(context.Background(), PurposeEssayScoring)
	_, err := p.Generate(ctx, Request{
		System:   "grade",
		Messages: []Message{{Role: RoleUser, Content: "essay text"}},
		Schema:   rubricSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("got %d events, want 1", len(rec.events))
	}
	e := rec.events[0]
	if e.Provider != "gemini" || e.Model != "mock" || e.Purpose != PurposeEssayScoring {
		t.Errorf("got %+v", e)
	}
	if !e.Success || e.InputTokens != 120 || e.OutputTokens != 12 || e.LatencyMs != 250 {
		t.Errorf("got %+v", e)
	}
	for _, want := range []string{"[system]\ngrade", "[user]\nessay text", "[schema: test-rubric]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
}

func TestWithAudit_RecordsFailureAndLogsRecorderError(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := &fakeRecorder{err: errors.New("disk full")}
	p := WithAudit(NewMockProvider(), "openai", rec, logging.NewLoggerFromCore(core))

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected provider error to pass through")
	}
	if len(rec.events) != 1 || rec.events[0].Success || rec.events[0].ErrorMessage == "" {
		t.Errorf("got %+v", rec.events)
	}
	if logs.FilterMessage("failed to record model call").Len() != 1 {
		t.Error("expected recorder failure to be logged")
	}
}

func TestWithAudit_StoreIntegration(t *testing.T) {
	s, err := store.Open(t.TempDir() + "/audit.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	p := WithAudit(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), "mock", s, nil)
	if _, err := p.Generate(WithPurpose(context.Background(), PurposeEssayScoring), Request{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	events, err := s.QueryLLMEvents(context.Background(), store.QueryOpts{Purpose: PurposeEssayScoring})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].ResponseBody != "{}" {
		t.Errorf("got %+v", events)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, "ESSAYLENS_LLM_ANTHROPIC_API_KEY"},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk"}}, ""},
		{"openai without key", Config{Provider: ProviderOpenAI}, "ESSAYLENS_LLM_OPENAI_API_KEY"},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, ""},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, "ESSAYLENS_LLM_OPENROUTER_API_KEY"},
		{"mock needs no key", Config{Provider: ProviderMock}, ""},
		{"unknown provider", Config{Provider: "palm"}, "unknown LLM provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	if _, ok := DiscoverConfig(DefaultConfig()); ok {
		t.Fatal("expected no discovery without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-oai")
	cfg, ok := DiscoverConfig(DefaultConfig())
	if !ok || cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-oai" {
		t.Errorf("got %+v, want openai preferred over anthropic", cfg)
	}
	if cfg.OpenAI.Model != "gpt-mini" {
		t.Errorf("got model %q, want defaults preserved", cfg.OpenAI.Model)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantID  string
		wantErr bool
	}{
		{"mock", Config{Provider: ProviderMock}, "mock", false},
		{"openai", Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "k", Model: "gpt-mini"}}, "gpt-5-mini", false},
		{"openrouter", Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "k", Model: "openai/gpt-5-mini"}}, "openai/gpt-5-mini", false},
		{"anthropic", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k", Model: "claude-sonnet"}}, "claude-sonnet-4-5", false},
		{"missing key", Config{Provider: ProviderOpenAI}, "", true},
		{"unknown", Config{Provider: "palm"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), tt.cfg, &fakeRecorder{}, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ModelID() != tt.wantID {
				t.Errorf("got model %q, want %q", p.ModelID(), tt.wantID)
			}
		})
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-5-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-5-mini")
	}
	if got := c.Cost(1_000_000, 500_000); got != 1.25 {
		t.Errorf("got %v, want 1.25", got)
	}
	if LookupCost("mock") != nil {
		t.Error("expected no pricing for mock")
	}
}
