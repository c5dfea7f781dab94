package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/essaylens/internal/analysis"
	"github.com/abhisek/essaylens/internal/report"
)

// readySignal is printed by --test so callers can probe the binary.
const readySignal = "ML_MODEL_READY"

const (
	formatJSON = "json"
	formatText = "text"
)

// runAnalyze reads one request from stdin and writes its analysis. Any
// failure is written to stdout as an error document and the command fails.
func runAnalyze(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	format, _ := cmd.Flags().GetString("format")
	if format != formatJSON && format != formatText {
		return reportError(out, fmt.Errorf("unknown output format %q", format))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return reportError(out, err)
	}
	log, err := newLogger(cfg.Log, "warn")
	if err != nil {
		return reportError(out, err)
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return reportError(out, fmt.Errorf("read input: %w", err))
	}
	req, err := analysis.DecodeRequest(data)
	if err != nil {
		return reportError(out, err)
	}

	d, err := buildDeps(cmd.Context(), cmd, cfg, log, nil)
	if err != nil {
		return reportError(out, err)
	}
	defer d.Close()

	res := d.service.Analyze(cmd.Context(), req)

	if format == formatText {
		width, _ := cmd.Flags().GetInt("width")
		_, err := lipgloss.Fprintln(out, report.Render(res, width))
		return err
	}
	return writeJSON(out, res)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func reportError(w io.Writer, err error) error {
	if werr := writeJSON(w, analysis.NewErrorDocument(err)); werr != nil {
		return werr
	}
	return errReported
}
