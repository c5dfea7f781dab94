// Package llm talks to hosted language models. Providers return JSON that
// conforms to a caller-supplied schema; decorators add retries and an audit
// trail of every call.
package llm

import (
	"context"
	"encoding/json"
	"net/http"
)

// Provider generates structured output from a hosted model.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the provider uses its native structured output mechanism and
	// Content is JSON conforming to the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	System   string
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil the
	// raw text is returned wrapped as a JSON string.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name is kebab-case, e.g. "essay-scores". It doubles as the tool name
	// for Anthropic and the schema name for OpenAI.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// PurposeEssayScoring labels calls made to score an essay.
const PurposeEssayScoring = "essay-scoring"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose attaches a purpose label to the context for the audit trail.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// finishResponse validates content against the request schema and assembles
// the normalized Response shared by every SDK adapter.
func finishResponse(req Request, content json.RawMessage, model string, usage Usage, stop string) (*Response, error) {
	if err := ValidateJSON(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// statusError maps an HTTP status from a provider API error onto the typed
// errors the retry decorator understands.
func statusError(code int, err error) error {
	if code == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through so callers can pin exact IDs.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
