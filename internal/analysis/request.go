package analysis

import (
	"bytes"
	"encoding/json"

	"github.com/abhisek/essaylens/internal/scoring"
)

// Request is one essay submitted for analysis.
type Request struct {
	Essay  string        `json:"essay"`
	Prompt string        `json:"prompt"`
	Level  scoring.Level `json:"level"`
}

// InputError reports a request the caller must fix. It is never produced
// for failures inside the analysis itself.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// Normalize fills the default level.
func (r Request) Normalize() Request {
	if r.Level == "" {
		r.Level = scoring.Intermediate
	}
	return r
}

// Validate checks the required fields.
func (r Request) Validate() error {
	if r.Essay == "" {
		return &InputError{Msg: "Essay text is required"}
	}
	if r.Prompt == "" {
		return &InputError{Msg: "Prompt text is required"}
	}
	return nil
}

// DecodeRequest parses a JSON request document and validates it. Every
// failure is an *InputError.
func DecodeRequest(data []byte) (Request, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Request{}, &InputError{Msg: "No input data provided"}
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, &InputError{Msg: "Invalid JSON input: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req.Normalize(), nil
}

// ErrorDocument is the response body for a rejected request.
type ErrorDocument struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorDocument wraps err for output.
func NewErrorDocument(err error) ErrorDocument {
	return ErrorDocument{Success: false, Error: err.Error()}
}
