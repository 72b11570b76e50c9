package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dorkscan/dorkscan/internal/config"
	"github.com/dorkscan/dorkscan/internal/model"
)

// TestNewScanCmd tests the scan command creation.
func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "scan [url]..." {
			t.Errorf("expected use 'scan [url]...', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has query flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("query")
		if flag == nil {
			t.Fatal("expected query flag")
		}
		if flag.Shorthand != "q" {
			t.Errorf("expected shorthand 'q', got %q", flag.Shorthand)
		}
	})

	t.Run("has list flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("list")
		if flag == nil {
			t.Fatal("expected list flag")
		}
		if flag.Shorthand != "l" {
			t.Errorf("expected shorthand 'l', got %q", flag.Shorthand)
		}
	})

	t.Run("has proxy flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("proxy")
		if flag == nil {
			t.Fatal("expected proxy flag")
		}
		if flag.Shorthand != "p" {
			t.Errorf("expected shorthand 'p', got %q", flag.Shorthand)
		}
	})

	t.Run("has mode flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("mode") == nil {
			t.Fatal("expected mode flag")
		}
	})

	t.Run("has tor flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("tor") == nil {
			t.Fatal("expected tor flag")
		}
	})

	t.Run("has timeout flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("timeout")
		if flag == nil {
			t.Fatal("expected timeout flag")
		}
		if flag.Shorthand != "t" {
			t.Errorf("expected shorthand 't', got %q", flag.Shorthand)
		}
	})

	t.Run("has concurrency flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("concurrency")
		if flag == nil {
			t.Fatal("expected concurrency flag")
		}
		if flag.Shorthand != "b" {
			t.Errorf("expected shorthand 'b', got %q", flag.Shorthand)
		}
	})

	t.Run("has catalog flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("catalog") == nil {
			t.Fatal("expected catalog flag")
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("expected shorthand 'j', got %q", flag.Shorthand)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})
}

// TestBuildConfig tests configuration building from flags.
func TestBuildConfig(t *testing.T) {
	t.Run("builds config with default values", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("query", "inurl:checkout")
		cfg, err := buildConfig(cmd, []string{"https://a.example"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg == nil {
			t.Fatal("expected non-nil config")
		}
		if cfg.Query != "inurl:checkout" {
			t.Errorf("expected query 'inurl:checkout', got %q", cfg.Query)
		}
		if len(cfg.Candidates) != 1 || cfg.Candidates[0] != "https://a.example" {
			t.Errorf("expected candidates [https://a.example], got %v", cfg.Candidates)
		}
		if cfg.UseEmbeddedTor {
			t.Error("expected UseEmbeddedTor to be false")
		}
	})

	t.Run("builds config with proxy pool and mode", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("query", "inurl:checkout")
		_ = cmd.Flags().Set("proxy", "socks5://10.0.0.1:1080,http://10.0.0.2:8080")
		_ = cmd.Flags().Set("mode", "random")
		cfg, err := buildConfig(cmd, []string{"https://a.example"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cfg.Proxies) != 2 {
			t.Errorf("expected 2 proxies, got %v", cfg.Proxies)
		}
		if cfg.ProxyMode != "random" {
			t.Errorf("expected mode 'random', got %q", cfg.ProxyMode)
		}
	})

	t.Run("builds config with custom timeout and concurrency", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("query", "inurl:checkout")
		_ = cmd.Flags().Set("timeout", "30s")
		_ = cmd.Flags().Set("concurrency", "8")
		cfg, err := buildConfig(cmd, []string{"https://a.example"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected timeout 30s, got %v", cfg.Timeout)
		}
		if cfg.Concurrency != 8 {
			t.Errorf("expected concurrency 8, got %d", cfg.Concurrency)
		}
	})

	t.Run("reads candidates from list file", func(t *testing.T) {
		listPath := filepath.Join(t.TempDir(), "urls.txt")
		content := `# candidate urls
https://a.example

https://b.example
`
		if err := os.WriteFile(listPath, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile() = %v, want nil", err)
		}

		cmd := NewScanCmd()
		_ = cmd.Flags().Set("query", "inurl:checkout")
		_ = cmd.Flags().Set("list", listPath)
		cfg, err := buildConfig(cmd, []string{"https://c.example"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cfg.Candidates) != 3 {
			t.Fatalf("expected 3 candidates, got %v", cfg.Candidates)
		}
		if cfg.Candidates[0] != "https://c.example" {
			t.Errorf("expected args before file entries, got %v", cfg.Candidates)
		}
	})

	t.Run("missing list file returns error", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("query", "inurl:checkout")
		_ = cmd.Flags().Set("list", filepath.Join(t.TempDir(), "missing.txt"))
		if _, err := buildConfig(cmd, nil); err == nil {
			t.Error("expected error for missing list file")
		}
	})

	t.Run("missing explicit config file returns error", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("query", "inurl:checkout")
		_ = cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml"))
		if _, err := buildConfig(cmd, []string{"https://a.example"}); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("config file fills unset fields", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), ".dorkscan")
		content := `proxies:
  - http://file.example:8080
mode: fixed
`
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile() = %v, want nil", err)
		}

		cmd := NewScanCmd()
		_ = cmd.Flags().Set("query", "inurl:checkout")
		_ = cmd.Flags().Set("config", configPath)
		cfg, err := buildConfig(cmd, []string{"https://a.example"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cfg.Proxies) != 1 || cfg.Proxies[0] != "http://file.example:8080" {
			t.Errorf("expected proxy from config file, got %v", cfg.Proxies)
		}
		if cfg.ProxyMode != "fixed" {
			t.Errorf("expected mode 'fixed' from config file, got %q", cfg.ProxyMode)
		}
	})
}

// TestGetVerboseFlag tests the verbose flag retrieval.
func TestGetVerboseFlag(t *testing.T) {
	t.Run("returns false when flag not set", func(t *testing.T) {
		cmd := NewScanCmd()
		if getVerboseFlag(cmd) {
			t.Error("expected false when flag not set")
		}
	})

	t.Run("returns value from parent verbose flag", func(t *testing.T) {
		root := NewRootCmd()
		_ = root.PersistentFlags().Set("verbose", "true")

		scanCmd, _, err := root.Find([]string{"scan"})
		if err != nil {
			t.Fatalf("failed to find scan command: %v", err)
		}

		if !getVerboseFlag(scanCmd) {
			t.Error("expected true from parent verbose flag")
		}
	})
}

// TestReadCandidates tests candidate list parsing.
func TestReadCandidates(t *testing.T) {
	t.Parallel()

	t.Run("skips blanks and comments", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "urls.txt")
		content := "# header\nhttps://a.example\n\n  https://b.example  \n# trailing\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile() = %v, want nil", err)
		}

		urls, err := readCandidates(path)
		if err != nil {
			t.Fatalf("readCandidates() = %v, want nil", err)
		}
		if len(urls) != 2 || urls[0] != "https://a.example" || urls[1] != "https://b.example" {
			t.Errorf("readCandidates() = %v, want trimmed URLs only", urls)
		}
	})

	t.Run("missing file returns error", func(t *testing.T) {
		t.Parallel()

		if _, err := readCandidates(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

// sampleRunReport builds a one-verdict report for output tests.
func sampleRunReport() *model.RunReport {
	r := model.NewRunReport(`inurl:checkout`, 1)
	v := model.NewVerdict("https://shop.example/checkout", []string{"payment gateway"})
	v.Status = model.StatusOK
	v.StatusCode = 200
	v.Matches["payment gateway"] = []string{"Stripe"}
	r.Finish([]model.Verdict{*v})
	return r
}

// TestOutputReport tests report routing to the terminal and output file.
func TestOutputReport(t *testing.T) {
	t.Parallel()

	t.Run("terminal only without output file", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		var terminal bytes.Buffer
		if err := outputReport(cfg, sampleRunReport(), false, &terminal); err != nil {
			t.Fatalf("outputReport() = %v, want nil", err)
		}
		if !strings.Contains(terminal.String(), "https://shop.example/checkout") {
			t.Error("terminal report missing verdict URL")
		}
	})

	t.Run("output file gets the format and the terminal keeps the summary", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.JSONReport = true
		cfg.ReportFile = filepath.Join(t.TempDir(), "out", "report.json")

		var terminal bytes.Buffer
		if err := outputReport(cfg, sampleRunReport(), false, &terminal); err != nil {
			t.Fatalf("outputReport() = %v, want nil", err)
		}

		data, err := os.ReadFile(cfg.ReportFile)
		if err != nil {
			t.Fatalf("ReadFile() = %v, want nil", err)
		}
		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("output file is not valid JSON: %v", err)
		}

		if !strings.Contains(terminal.String(), "Stripe") {
			t.Error("terminal summary missing match name")
		}
		if strings.Contains(terminal.String(), `"verdicts"`) {
			t.Error("terminal should carry the text summary, not the JSON body")
		}
	})
}
