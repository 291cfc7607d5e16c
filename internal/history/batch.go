// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history resolves DYK records for many articles at once.
// Articles are independent: each gets its own resolution, a failure is
// recorded against that article only, and the run continues.
package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/article-history/internal/dyk"
	"github.com/pdiddy/article-history/internal/store"
	"github.com/pdiddy/article-history/pkg/types"
)

const defaultConcurrency = 4

// Job is one article to resolve.
type Job struct {
	Article  string
	Template types.Template
}

// Fingerprint identifies the job's template contents. Two jobs with equal
// templates have equal fingerprints.
func (j Job) Fingerprint() string {
	// json.Marshal sorts map keys, so the encoding is stable.
	data, _ := json.Marshal(j.Template)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16])
}

// Outcome is the result for one job.
type Outcome struct {
	Article string
	Entry   *types.DykEntry
	Err     error
	Skipped bool
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Resolved int
	Skipped  int
	Failed   int
	Outcomes []Outcome
}

// Total returns the number of articles processed.
func (r BatchResult) Total() int {
	return r.Resolved + r.Skipped + r.Failed
}

// HasFailures reports whether any article failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Runner resolves batches of articles.
type Runner struct {
	Resolver *dyk.Resolver
	// Store is optional. When set, unchanged articles are skipped and
	// results are persisted.
	Store  *store.Store
	Config types.BatchConfig
	Logger *zap.Logger
}

// Run resolves every job, at most Config.Concurrency at a time, and writes
// per-article progress and a summary to w in job order. It returns an error
// only when the store fails or ctx is cancelled; resolution failures are
// reported in the result.
func (r *Runner) Run(ctx context.Context, jobs []Job, w io.Writer) (BatchResult, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := r.Config.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	outcomes := make([]Outcome, len(jobs))
	fingerprints := make([]string, len(jobs))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, job := range jobs {
		outcomes[i].Article = job.Article
		fingerprints[i] = job.Fingerprint()

		if r.Store != nil && !r.Config.Force {
			rec, err := r.Store.Lookup(ctx, job.Article)
			if err != nil {
				return BatchResult{}, err
			}
			if rec != nil && rec.Fingerprint == fingerprints[i] {
				outcomes[i].Entry = &rec.Entry
				outcomes[i].Skipped = true
				continue
			}
		}

		// Each goroutine writes only its own slot.
		g.Go(func() error {
			entry, err := r.Resolver.Resolve(ctx, job.Article, &job.Template)
			outcomes[i].Entry = entry
			outcomes[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	// Results already obtained are persisted even if ctx was cancelled.
	storeCtx := context.WithoutCancel(ctx)

	var result BatchResult
	for i, o := range outcomes {
		switch {
		case o.Skipped:
			fmt.Fprintf(w, "skipped:  %s (unchanged)\n", o.Article)
			result.Skipped++
		case o.Err != nil:
			fmt.Fprintf(w, "failed:   %s (%v)\n", o.Article, o.Err)
			logger.Warn("dyk resolution failed", zap.String("article", o.Article), zap.Error(o.Err))
			result.Failed++
			if r.Store != nil {
				if err := r.Store.SaveFailure(storeCtx, o.Article, fingerprints[i], o.Err); err != nil {
					return result, err
				}
			}
		default:
			n := len(types.Collect(o.Entry.ToParams()))
			fmt.Fprintf(w, "resolved: %s (%d params)\n", o.Article, n)
			result.Resolved++
			if r.Store != nil {
				if err := r.Store.SaveEntry(storeCtx, o.Article, fingerprints[i], o.Entry); err != nil {
					return result, err
				}
			}
		}
	}
	result.Outcomes = outcomes

	fmt.Fprintf(w, "\nBatch summary: %d resolved, %d skipped, %d failed (total: %d)\n",
		result.Resolved, result.Skipped, result.Failed, result.Total())
	logger.Info("batch complete",
		zap.Int("resolved", result.Resolved),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}
