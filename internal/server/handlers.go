package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/abhisek/essaylens/internal/analysis"
	"github.com/abhisek/essaylens/internal/logging"
)

type handlers struct {
	analyzer Analyzer
	log      logging.Logger
	version  string
	timeout  time.Duration
	maxBody  int64
	started  time.Time
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime"`
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.started).Truncate(time.Second).String(),
	})
}

func (h *handlers) analyze(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if h.maxBody > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, &analysis.InputError{Msg: "Request body too large"})
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req, err := analysis.DecodeRequest(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	log := h.log.With(logging.String("request_id", RequestIDFrom(r.Context())))
	res := h.analyzer.Analyze(ctx, req)
	if res.AnalysisMethod == analysis.MethodFallback {
		log.Warn("served fallback analysis", logging.String("level", string(res.Level)))
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, analysis.NewErrorDocument(err))
}
