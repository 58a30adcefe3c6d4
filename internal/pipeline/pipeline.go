// Package pipeline orchestrates a single process-url pass: fetch,
// content extraction, structured extraction, dedup insert, similarity
// query. Data flows strictly forward; any stage failure is terminal.
package pipeline

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/vcatlas/vcatlas/internal/fetcher"
	"github.com/vcatlas/vcatlas/internal/index"
	"github.com/vcatlas/vcatlas/internal/llm"
	"github.com/vcatlas/vcatlas/internal/metrics"
	"github.com/vcatlas/vcatlas/internal/page"
	"github.com/vcatlas/vcatlas/internal/vc"
)

// similarLimit caps the number of neighbors returned per request.
const similarLimit = 3

// Result is everything the API layer needs to shape a response.
type Result struct {
	Record   vc.Record
	Summary  string
	Similar  []string
	Inserted bool
}

// Pipeline processes one URL per call and holds no per-request state;
// the only shared state is the external index.
type Pipeline struct {
	fetcher   fetcher.Fetcher
	extractor llm.Extractor
	idx       index.Index
	logger    *zap.Logger
}

// New wires the pipeline from process-scoped clients.
func New(f fetcher.Fetcher, e llm.Extractor, idx index.Index, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{fetcher: f, extractor: e, idx: idx, logger: logger}
}

// Process handles one URL end to end. Fetch and HTML-parse failures
// carry fetcher.ErrFetch, model failures carry llm.ErrExtraction, and
// index failures come back unclassified.
func (p *Pipeline) Process(ctx context.Context, rawURL string) (Result, error) {
	resp, err := p.fetcher.Fetch(ctx, fetcher.Request{URL: rawURL})
	if err != nil {
		metrics.ObserveProcess(rawURL, metrics.OutcomeFetchFailed)
		return Result{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	content, err := page.Extract(resp.Body, rawURL)
	if err != nil {
		metrics.ObserveProcess(rawURL, metrics.OutcomeFetchFailed)
		return Result{}, fmt.Errorf("%w: extract content: %v", fetcher.ErrFetch, err)
	}

	record, err := p.extractor.Extract(ctx, content.Blob())
	if err != nil {
		metrics.ObserveProcess(rawURL, metrics.OutcomeExtractFailed)
		return Result{}, fmt.Errorf("extract info from %s: %w", rawURL, err)
	}

	names, err := p.idx.Names(ctx)
	if err != nil {
		metrics.ObserveProcess(rawURL, metrics.OutcomeIndexFailed)
		return Result{}, fmt.Errorf("list stored names: %w", err)
	}

	inserted := false
	if !slices.Contains(names, record.VCName) {
		// Check-then-insert is not transactional: two concurrent requests
		// for the same new firm can both pass the check and both insert.
		id := record.ID()
		if err := p.idx.Insert(ctx, id, record); err != nil {
			metrics.ObserveProcess(rawURL, metrics.OutcomeIndexFailed)
			return Result{}, fmt.Errorf("insert record %q: %w", record.VCName, err)
		}
		inserted = true
		p.logger.Info("record inserted",
			zap.String("vc_name", record.VCName),
			zap.String("id", id),
		)
	} else {
		metrics.ObserveDedupHit()
		p.logger.Info("record already stored", zap.String("vc_name", record.VCName))
	}

	matches, err := p.idx.Similar(ctx, record.Canonical(), similarLimit)
	if err != nil {
		metrics.ObserveProcess(rawURL, metrics.OutcomeIndexFailed)
		return Result{}, fmt.Errorf("similarity query: %w", err)
	}
	similar := make([]string, 0, len(matches))
	for _, m := range matches {
		similar = append(similar, m.VCName)
	}

	metrics.ObserveProcess(rawURL, metrics.OutcomeOK)
	return Result{
		Record:   record,
		Summary:  record.Summary(rawURL),
		Similar:  similar,
		Inserted: inserted,
	}, nil
}
