// Package report renders an analysis result as a styled terminal report.
package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/essaylens/internal/analysis"
	"github.com/abhisek/essaylens/internal/detect"
)

// DefaultWidth is used when the caller passes a non-positive width.
const DefaultWidth = 72

// maxErrorsShown caps the error list; the rest are summarized.
const maxErrorsShown = 10

// Render formats res for a terminal of the given width.
func Render(res *analysis.Result, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	inner := width - 6

	var sections []string
	sections = append(sections, header(res, inner))
	sections = append(sections, scores(res, inner))
	sections = append(sections, stats(res))
	if res.StructureAnalysis.Result != nil {
		sections = append(sections, structureSection(res))
	}
	if len(res.Feedback) > 0 {
		sections = append(sections, feedbackSection(res, inner))
	}
	if len(res.Improvements) > 0 {
		sections = append(sections, improvementsSection(res, inner))
	}
	sections = append(sections, errorsSection(res, inner))

	return cardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func header(res *analysis.Result, width int) string {
	title := titleStyle.Render("Essay Report")
	overall := lipgloss.NewStyle().
		Bold(true).
		Foreground(scoreColor(res.OverallScore)).
		Render(fmt.Sprintf("%.1f / 10", res.OverallScore))

	gap := width - lipgloss.Width(title) - lipgloss.Width(overall)
	if gap < 1 {
		gap = 1
	}
	meta := fmt.Sprintf("level %s · %s", res.Level, res.AnalysisMethod)
	if res.ModelScoresSource != "" {
		meta += " · model scores: " + res.ModelScoresSource
	}
	return title + strings.Repeat(" ", gap) + overall + "\n" + dimStyle.Render(meta)
}

func scores(res *analysis.Result, width int) string {
	d := res.DetailedScores
	rows := []struct {
		label string
		score float64
	}{
		{"Content", d.Content},
		{"Organization", d.Organization},
		{"Language", d.Language},
		{"Conventions", d.Conventions},
	}
	lines := []string{sectionStyle.Render("Scores")}
	for _, r := range rows {
		lines = append(lines, scoreBar{Label: r.label, Score: r.score, LabelWidth: 14, Width: width}.View())
	}
	return strings.Join(lines, "\n")
}

func stats(res *analysis.Result) string {
	s := res.Statistics
	line := fmt.Sprintf("%d words · %d sentences · %d paragraphs · %.0f%% unique · %.1f min read",
		s.WordCount, s.SentenceCount, s.ParagraphCount, s.VocabularyDiversity*100, s.ReadingTimeMinutes)
	return sectionStyle.Render("Statistics") + "\n" + bodyStyle.Render(line)
}

func structureSection(res *analysis.Result) string {
	st := res.StructureAnalysis.Result
	mark := func(ok bool, name string) string {
		if ok {
			return lipgloss.NewStyle().Foreground(Success).Render("✓ " + name)
		}
		return lipgloss.NewStyle().Foreground(Error).Render("✗ " + name)
	}
	line := strings.Join([]string{
		mark(st.HasIntroduction, "introduction"),
		mark(st.ThesisDetected, "thesis"),
		mark(st.HasConclusion, "conclusion"),
	}, "  ")
	detail := dimStyle.Render(fmt.Sprintf("%d body paragraphs, %d transitions, structure score %.1f",
		st.BodyParagraphs, st.TransitionCount, st.StructureScore))
	return sectionStyle.Render("Structure") + "\n" + line + "\n" + detail
}

func feedbackSection(res *analysis.Result, width int) string {
	lines := []string{sectionStyle.Render("Feedback")}
	for _, f := range res.Feedback {
		head := lipgloss.NewStyle().
			Bold(true).
			Foreground(severityColor(string(f.Severity))).
			Render(fmt.Sprintf("%s (%s)", f.Category, f.Type))
		lines = append(lines, head)
		lines = append(lines, bodyStyle.Width(width).Render(f.Comment))
		for _, s := range f.Suggestions {
			lines = append(lines, hintStyle.Width(width).Render("  • "+s))
		}
	}
	return strings.Join(lines, "\n")
}

func improvementsSection(res *analysis.Result, width int) string {
	lines := []string{sectionStyle.Render("Improvements")}
	for _, imp := range res.Improvements {
		lines = append(lines, bodyStyle.Width(width).Render(
			fmt.Sprintf("[%s] %s: %s", imp.Priority, imp.Area, imp.Description)))
		for _, tip := range imp.Tips {
			lines = append(lines, hintStyle.Width(width).Render("  • "+tip))
		}
	}
	return strings.Join(lines, "\n")
}

func errorsSection(res *analysis.Result, width int) string {
	title := sectionStyle.Render(fmt.Sprintf("Errors (%d)", res.ErrorCount))
	if res.ErrorCount == 0 {
		return title + "\n" + hintStyle.Render("No errors found.")
	}

	lines := []string{title}
	for _, c := range detect.Categories {
		if n := len(res.GroupedErrors[c]); n > 0 {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("%s: %d", c, n)))
		}
	}
	for i, e := range res.Errors {
		if i == maxErrorsShown {
			lines = append(lines, hintStyle.Render(fmt.Sprintf("… and %d more", len(res.Errors)-maxErrorsShown)))
			break
		}
		lines = append(lines, errorLine(e, width))
	}
	return strings.Join(lines, "\n")
}

func errorLine(e detect.Record, width int) string {
	sev := lipgloss.NewStyle().
		Foreground(severityColor(string(e.Severity))).
		Render(fmt.Sprintf("%-6s", e.Severity))
	text := fmt.Sprintf("%q → %q", e.Text, e.Suggestion)
	return sev + " " + bodyStyle.Width(width-7).Render(text)
}
