package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dorkscan/dorkscan/internal/classify"
	"github.com/dorkscan/dorkscan/internal/fetch"
	"github.com/dorkscan/dorkscan/internal/model"
	"github.com/dorkscan/dorkscan/internal/surface"
)

// ErrStore marks dedup store failures. They abort the whole run and are
// distinguishable from per-URL fetch failures via errors.Is.
var ErrStore = errors.New("dedup store failure")

// DefaultConcurrency is the worker pool size when none is configured.
// Fetch latency dominates wall-clock time and URLs are independent, so
// a modest pool gives most of the win without hammering egresses.
const DefaultConcurrency = 5

// SeenStore is the dedup store consumed by the runner.
type SeenStore interface {
	// Seen returns all URLs previously recorded for this exact query.
	Seen(ctx context.Context, query string) (map[string]struct{}, error)

	// Record idempotently persists each (query, url) pair. When Record
	// returns nil the pairs are durable.
	Record(ctx context.Context, query string, urls []string) error
}

// PageFetcher fetches one URL through the configured egress.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Result, error)
}

// Runner executes the fetch-classify pipeline for a query.
type Runner struct {
	store       SeenStore
	fetcher     PageFetcher
	classifier  *classify.Classifier
	concurrency int
	logger      *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrency sets the worker pool size.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner.
func NewRunner(store SeenStore, fetcher PageFetcher, classifier *classify.Classifier, opts ...Option) *Runner {
	r := &Runner{
		store:       store,
		fetcher:     fetcher,
		classifier:  classifier,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Filter removes already-seen candidates, preserving order, and
// truncates to limit. A non-positive limit means no truncation.
func Filter(candidates []string, seen map[string]struct{}, limit int) []string {
	filtered := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		filtered = append(filtered, c)
		if limit > 0 && len(filtered) == limit {
			break
		}
	}
	return filtered
}

// Run processes the candidate list for a query and returns one verdict
// per newly surfaced URL, in candidate order.
//
// An empty filtered list returns an empty (non-nil) slice: "nothing new"
// is a normal outcome, not an error. Store failures return an error
// wrapping ErrStore. On cancellation no new fetches start; verdicts that
// completed are returned together with the context error.
func (r *Runner) Run(ctx context.Context, query string, candidates []string, limit int) ([]model.Verdict, error) {
	seen, err := r.store.Seen(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	filtered := Filter(candidates, seen, limit)
	if len(filtered) == 0 {
		r.logger.Info("no new candidates", "query", query, "candidates", len(candidates))
		return []model.Verdict{}, nil
	}

	// Durably mark the batch seen before any fetch starts. A crash from
	// here on cannot re-offer these URLs as new.
	if err := r.store.Record(ctx, query, filtered); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	r.logger.Info("processing batch",
		"query", query,
		"new_urls", len(filtered),
		"concurrency", r.concurrency,
	)

	// Pre-allocated and index-addressed so out-of-order completion still
	// yields candidate-order results.
	verdicts := make([]*model.Verdict, len(filtered))

	g := new(errgroup.Group)
	g.SetLimit(r.concurrency)

	for i, url := range filtered {
		// Stop issuing new fetches once cancelled; in-flight workers
		// run to completion or their own timeout.
		select {
		case <-ctx.Done():
		default:
			g.Go(func() error {
				verdicts[i] = r.process(ctx, url)
				return nil
			})
		}
	}

	// Workers never return errors; failures live in the verdicts.
	_ = g.Wait() //nolint:errcheck

	results := make([]model.Verdict, 0, len(filtered))
	for _, v := range verdicts {
		if v != nil {
			results = append(results, *v)
		}
	}

	return results, ctx.Err()
}

// process runs fetch → normalize → classify for one URL and always
// produces a verdict.
func (r *Runner) process(ctx context.Context, url string) *model.Verdict {
	verdict := model.NewVerdict(url, r.classifier.Categories())

	res, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		// Malformed URL or similar caller-side problem; treated like a
		// failed fetch for this URL so siblings are unaffected.
		verdict.Status = model.StatusFetchFailed
		verdict.ErrorMessage = err.Error()
		return verdict
	}

	verdict.Proxy = res.Proxy
	if !res.OK() {
		verdict.Status = model.StatusFetchFailed
		verdict.ErrorMessage = res.Failure.Error()
		return verdict
	}
	verdict.StatusCode = res.StatusCode

	s, ok := surface.Extract(res)
	if !ok {
		verdict.Status = model.StatusSkipped
		return verdict
	}

	verdict.Matches = r.classifier.Classify(s)
	verdict.Status = model.StatusOK
	return verdict
}
