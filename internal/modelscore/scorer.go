// Package modelscore supplies model-predicted aspect scores for an essay.
// LLMScorer asks a hosted language model to grade against a fixed rubric;
// Cached memoizes any scorer behind Redis or an in-process map.
package modelscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/abhisek/essaylens/internal/llm"
	"github.com/abhisek/essaylens/internal/scoring"
)

// DefaultMaxEssayRunes bounds the essay text sent to the model.
const DefaultMaxEssayRunes = 12000

const systemPrompt = `You are an experienced writing teacher grading a student essay.
Score each aspect on a 1-10 scale, where 1 is very weak and 10 is exemplary:
- content: relevance, depth of ideas, use of evidence and examples
- organization: introduction, paragraphing, logical flow, conclusion
- language: vocabulary range, sentence variety, tone
- conventions: spelling, grammar, punctuation, capitalization
- overall: your holistic judgement of the essay
Decimals are allowed. Respond only with the JSON object.`

func scoreProperty(desc string) map[string]any {
	return map[string]any{
		"type":        "number",
		"minimum":     1,
		"maximum":     10,
		"description": desc,
	}
}

// EssayScores is the response schema: five numbers in [1, 10].
var EssayScores = &llm.Schema{
	Name:        "essay-scores",
	Description: "Rubric scores for a student essay",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overall":      scoreProperty("Holistic score"),
			"content":      scoreProperty("Ideas, relevance and evidence"),
			"organization": scoreProperty("Structure and flow"),
			"language":     scoreProperty("Vocabulary and sentence variety"),
			"conventions":  scoreProperty("Spelling, grammar and punctuation"),
		},
		"required":             []any{"overall", "content", "organization", "language", "conventions"},
		"additionalProperties": false,
	},
}

// LLMScorer grades essays with a language model.
type LLMScorer struct {
	provider  llm.Provider
	maxRunes  int
	maxTokens int
	timeout   time.Duration
}

// NewLLMScorer returns a scorer backed by p. maxRunes <= 0 selects
// DefaultMaxEssayRunes.
func NewLLMScorer(p llm.Provider, maxRunes int) *LLMScorer {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxEssayRunes
	}
	return &LLMScorer{provider: p, maxRunes: maxRunes, maxTokens: 256}
}

// WithTimeout bounds every Score call, retries included. Zero means no
// bound beyond the caller's context.
func (s *LLMScorer) WithTimeout(d time.Duration) *LLMScorer {
	s.timeout = d
	return s
}

// ModelID identifies the model behind the scores.
func (s *LLMScorer) ModelID() string {
	return s.provider.ModelID()
}

// Score returns the model's rubric scores for essay.
func (s *LLMScorer) Score(ctx context.Context, essay string) (*scoring.Aspects, error) {
	if essay == "" {
		return nil, errors.New("modelscore: empty essay")
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeEssayScoring), llm.Request{
		System:    systemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Essay:\n\n" + truncateRunes(essay, s.maxRunes)}},
		Schema:    EssayScores,
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("score essay: %w", err)
	}

	var a scoring.Aspects
	if err := json.Unmarshal(resp.Content, &a); err != nil {
		return nil, fmt.Errorf("decode essay scores: %w", err)
	}
	return &a, nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
