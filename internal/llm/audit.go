package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/essaylens/internal/logging"
	"github.com/abhisek/essaylens/internal/store"
)

// Recorder persists one provider call. *store.Store satisfies it.
type Recorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// AuditProvider records every call made through the wrapped provider.
type AuditProvider struct {
	inner    Provider
	name     string
	recorder Recorder
	log      logging.Logger
	now      func() time.Time
}

// WithAudit wraps p so each Generate call is recorded under providerName.
// Recording failures are logged and never fail the call.
func WithAudit(p Provider, providerName string, rec Recorder, log logging.Logger) Provider {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &AuditProvider{inner: p, name: providerName, recorder: rec, log: log, now: time.Now}
}

func (a *AuditProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := a.now()
	resp, err := a.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    a.name,
		Model:       a.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   a.now().Sub(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// The caller's context may already be done; the audit row still matters.
	if recErr := a.recorder.AppendLLMRequest(context.WithoutCancel(ctx), data); recErr != nil {
		a.log.Warn("failed to record model call",
			logging.String("purpose", data.Purpose),
			logging.Err(recErr))
	}
	return resp, err
}

func (a *AuditProvider) ModelID() string {
	return a.inner.ModelID()
}

// transcript renders a request as readable text for the audit log.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
