package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dorkscan/dorkscan/internal/model"
)

// sampleReport builds a run report with one match, one clean page,
// one fetch failure, and one skipped response.
func sampleReport() *model.RunReport {
	r := &model.RunReport{
		Query:      `inurl:checkout "powered by"`,
		StartedAt:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 3, 14, 9, 31, 15, 0, time.UTC),
		Candidates: 10,
	}
	r.Verdicts = []model.Verdict{
		{
			URL:    "https://shop.example/checkout",
			Status: model.StatusOK,
			Matches: map[string][]string{
				"payment gateway":  {"Stripe"},
				"challenge system": {},
			},
			StatusCode: 200,
		},
		{
			URL:    "https://blog.example",
			Status: model.StatusOK,
			Matches: map[string][]string{
				"payment gateway":  {},
				"challenge system": {},
			},
			StatusCode: 200,
		},
		{
			URL:          "https://down.example",
			Status:       model.StatusFetchFailed,
			ErrorMessage: "connection_refused: dial tcp: connection refused",
			Matches: map[string][]string{
				"payment gateway":  {},
				"challenge system": {},
			},
		},
		{
			URL:    "https://pdf.example/manual.pdf",
			Status: model.StatusSkipped,
			Matches: map[string][]string{
				"payment gateway":  {},
				"challenge system": {},
			},
		},
	}
	return r
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders matches with title-cased categories", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(sampleReport()); err != nil {
			t.Fatalf("Write() = %v, want nil", err)
		}

		output := buf.String()
		for _, want := range []string{
			"DORKSCAN REPORT",
			`inurl:checkout "powered by"`,
			"🔥 https://shop.example/checkout",
			"✅ Payment Gateway: Stripe",
			"✖️ https://down.example",
			"fetch failed: connection_refused",
			"skipped: response was not HTML",
			"Matched:      1",
			"Fetch failed: 1",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("hides unmatched categories by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(sampleReport()); err != nil {
			t.Fatalf("Write() = %v, want nil", err)
		}
		if strings.Contains(buf.String(), "Challenge System: none") {
			t.Error("unmatched category shown without WithShowEmpty")
		}
	})

	t.Run("WithShowEmpty lists unmatched categories", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithShowEmpty(true))

		if _, err := w.Write(sampleReport()); err != nil {
			t.Fatalf("Write() = %v, want nil", err)
		}
		if !strings.Contains(buf.String(), "Challenge System: none") {
			t.Errorf("unmatched category not shown with WithShowEmpty:\n%s", buf.String())
		}
	})

	t.Run("empty run says so", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		r := model.NewRunReport("site:example.com", 3)
		r.Finish(nil)

		if _, err := w.Write(r); err != nil {
			t.Fatalf("Write() = %v, want nil", err)
		}
		if !strings.Contains(buf.String(), "No new URLs") {
			t.Errorf("empty run output missing notice:\n%s", buf.String())
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output round-trips", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(sampleReport()); err != nil {
			t.Fatalf("Write() = %v, want nil", err)
		}

		var decoded model.RunReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("Unmarshal() = %v, want nil", err)
		}
		if decoded.Query != `inurl:checkout "powered by"` {
			t.Errorf("Query = %q, want original query", decoded.Query)
		}
		if len(decoded.Verdicts) != 4 {
			t.Errorf("Verdicts = %d entries, want 4", len(decoded.Verdicts))
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.Write(sampleReport()); err != nil {
			t.Fatalf("Write() = %v, want nil", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("pretty printed output has no indentation")
		}
	})

	t.Run("full writer wraps with version", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewFullJSONWriter(&buf, "1.2.3")

		if _, err := w.Write(sampleReport()); err != nil {
			t.Fatalf("Write() = %v, want nil", err)
		}

		var wrapped JSONReport
		if err := json.Unmarshal(buf.Bytes(), &wrapped); err != nil {
			t.Fatalf("Unmarshal() = %v, want nil", err)
		}
		if wrapped.Version != "1.2.3" {
			t.Errorf("Version = %q, want %q", wrapped.Version, "1.2.3")
		}
		if wrapped.Report == nil || len(wrapped.Report.Verdicts) != 4 {
			t.Error("wrapped report missing verdicts")
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf)

	if _, err := w.Write(sampleReport()); err != nil {
		t.Fatalf("Write() = %v, want nil", err)
	}

	output := buf.String()
	for _, want := range []string{
		"# Dorkscan Report",
		"## Summary",
		"## Results",
		"`https://shop.example/checkout`",
		"Payment Gateway: Stripe",
		"mermaid",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))

	if _, err := mw.Write(sampleReport()); err != nil {
		t.Fatalf("Write() = %v, want nil", err)
	}
	if a.Len() == 0 || b.Len() == 0 {
		t.Errorf("MultiWriter wrote %d and %d bytes, want both non-zero", a.Len(), b.Len())
	}
}
