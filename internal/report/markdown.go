package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dorkscan/dorkscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: the nao1215/markdown library gives type-safe fluent
// generation with tables, GitHub-flavored alerts, and mermaid charts.
type MarkdownWriter struct {
	baseWriter

	titleCaser cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titleCaser: cases.Title(language.English),
	}
}

// Write outputs the run report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeResults(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the run header with query information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("Dorkscan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Query", "`" + report.Query + "`"},
			{"Date", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Candidates", strconv.Itoa(report.Candidates)},
			{"New URLs", strconv.Itoa(report.NewURLs())},
			{"Duration", report.Duration().String()},
		},
	})
	md.PlainText("")
}

// writeSummary writes the outcome summary with a status pie chart.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"🔥 Matched", strconv.Itoa(report.MatchedCount())},
			{"✅ Classified", strconv.Itoa(report.CountByStatus(model.StatusOK))},
			{"✖️ Fetch failed", strconv.Itoa(report.CountByStatus(model.StatusFetchFailed))},
			{"Skipped (non-HTML)", strconv.Itoa(report.CountByStatus(model.StatusSkipped))},
		},
	})
	md.PlainText("")

	if report.NewURLs() > 0 {
		w.writePieChart(md, report)
	}

	if report.HasMatches() {
		md.Warningf(
			"%d of %d new URLs matched at least one signature.",
			report.MatchedCount(), report.NewURLs(),
		)
	} else if report.NewURLs() > 0 {
		md.Note("No signature matches in this run.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of verdict outcomes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.RunReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Verdict Outcomes"),
		piechart.WithShowData(true),
	)

	if n := report.CountByStatus(model.StatusOK); n > 0 {
		chart.LabelAndIntValue("Classified", uint64(n))
	}
	if n := report.CountByStatus(model.StatusFetchFailed); n > 0 {
		chart.LabelAndIntValue("Fetch failed", uint64(n))
	}
	if n := report.CountByStatus(model.StatusSkipped); n > 0 {
		chart.LabelAndIntValue("Skipped", uint64(n))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeResults writes the per-URL results table.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Results")
	md.PlainText("")

	if len(report.Verdicts) == 0 {
		md.PlainText("No new URLs for this query.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Verdicts))
	for i := range report.Verdicts {
		v := &report.Verdicts[i]
		rows = append(rows, []string{
			"`" + v.URL + "`",
			v.Status.String(),
			w.matchCell(v),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Status", "Matches"},
		Rows:   rows,
	})
	md.PlainText("")
}

// matchCell renders a verdict's matches as "Category: a, b" pairs.
func (w *MarkdownWriter) matchCell(v *model.Verdict) string {
	var parts []string
	for _, category := range sortedCategories(v) {
		names := v.Matches[category]
		if len(names) == 0 {
			continue
		}
		parts = append(parts, w.titleCaser.String(category)+": "+strings.Join(names, ", "))
	}
	if len(parts) == 0 {
		if v.Status == model.StatusFetchFailed {
			return v.ErrorMessage
		}
		return "-"
	}
	return strings.Join(parts, "; ")
}
