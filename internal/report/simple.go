package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dorkscan/dorkscan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display: one block per URL with
// glyph-coded outcomes, followed by a run summary.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether categories with no matches are listed
	// per URL. When false, only matched categories are shown.
	showEmpty bool

	// verbose includes failure details and egress information.
	verbose bool

	// titleCaser renders category names like "payment gateway" as
	// "Payment Gateway" in headings.
	titleCaser cases.Caser
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to list unmatched categories too.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
		titleCaser: cases.Title(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run report in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeVerdicts(&sb, report)
	w.writeSummary(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the run header with query information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         DORKSCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Query:      %s\n", report.Query))
	sb.WriteString(fmt.Sprintf("Date:       %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Candidates: %d offered, %d new\n", report.Candidates, report.NewURLs()))
	sb.WriteString("\n")
}

// writeVerdicts writes one block per processed URL.
func (w *SimpleWriter) writeVerdicts(sb *strings.Builder, report *model.RunReport) {
	if len(report.Verdicts) == 0 {
		sb.WriteString("No new URLs for this query.\n\n")
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RESULTS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for i := range report.Verdicts {
		w.writeVerdict(sb, &report.Verdicts[i])
	}
}

// writeVerdict writes a single URL block.
func (w *SimpleWriter) writeVerdict(sb *strings.Builder, v *model.Verdict) {
	sb.WriteString(fmt.Sprintf("%s %s\n", w.statusGlyph(v), v.URL))

	switch v.Status {
	case model.StatusFetchFailed:
		sb.WriteString(fmt.Sprintf("   fetch failed: %s\n", v.ErrorMessage))
	case model.StatusSkipped:
		sb.WriteString("   skipped: response was not HTML\n")
	case model.StatusOK:
		w.writeMatches(sb, v)
	}

	if w.verbose && v.Proxy != "" {
		sb.WriteString(fmt.Sprintf("   via: %s\n", v.Proxy))
	}
	sb.WriteString("\n")
}

// writeMatches writes the per-category match lines for a classified URL.
func (w *SimpleWriter) writeMatches(sb *strings.Builder, v *model.Verdict) {
	var any bool
	for _, category := range sortedCategories(v) {
		names := v.Matches[category]
		if len(names) == 0 {
			if w.showEmpty {
				sb.WriteString(fmt.Sprintf("   ✖️ %s: none\n", w.titleCaser.String(category)))
			}
			continue
		}
		any = true
		sb.WriteString(fmt.Sprintf("   ✅ %s: %s\n", w.titleCaser.String(category), strings.Join(names, ", ")))
	}
	if !any && !w.showEmpty {
		sb.WriteString("   no signature matches\n")
	}
}

// statusGlyph returns the leading glyph for a verdict.
func (w *SimpleWriter) statusGlyph(v *model.Verdict) string {
	switch v.Status {
	case model.StatusOK:
		if hasAnyMatch(v) {
			return "🔥"
		}
		return "  "
	case model.StatusFetchFailed:
		return "✖️"
	case model.StatusSkipped:
		return "··"
	default:
		return "??"
	}
}

// sortedCategories returns the verdict's category names in stable order.
// Map iteration order would make repeated runs print differently.
func sortedCategories(v *model.Verdict) []string {
	categories := make([]string, 0, len(v.Matches))
	for category := range v.Matches {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// hasAnyMatch reports whether any category in the verdict matched.
func hasAnyMatch(v *model.Verdict) bool {
	for category := range v.Matches {
		if v.HasMatch(category) {
			return true
		}
	}
	return false
}

// writeSummary writes the run summary footer.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Matched:      %d\n", report.MatchedCount()))
	sb.WriteString(fmt.Sprintf("  Classified:   %d\n", report.CountByStatus(model.StatusOK)))
	sb.WriteString(fmt.Sprintf("  Fetch failed: %d\n", report.CountByStatus(model.StatusFetchFailed)))
	sb.WriteString(fmt.Sprintf("  Skipped:      %d\n", report.CountByStatus(model.StatusSkipped)))
	sb.WriteString(fmt.Sprintf("  Duration:     %s\n", report.Duration().Round(10*time.Millisecond)))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
