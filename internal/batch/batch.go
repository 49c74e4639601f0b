// Package batch analyzes many documents with bounded concurrency.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/readability/internal/model"
)

// Analyzer computes metrics for one document's text.
type Analyzer interface {
	Analyze(text string) (model.MetricResult, error)
}

// Config configures a batch run.
type Config struct {
	// MaxConcurrency of 0 means one worker per document.
	MaxConcurrency int
	// OnMessage receives progress messages; it may be nil.
	OnMessage func(string)
}

// Result pairs a document with its analysis outcome.
type Result struct {
	Name   string
	Result model.MetricResult
	Err    error
}

// Run analyzes docs concurrently. Results keep the input order and carry
// per-document errors; only context cancellation aborts the whole run.
func Run(ctx context.Context, a Analyzer, docs []model.Document, cfg Config) ([]Result, error) {
	results := make([]Result, len(docs))
	if len(docs) == 0 {
		return results, nil
	}

	messages := make(chan string)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range messages {
			if cfg.OnMessage != nil {
				cfg.OnMessage(msg)
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	if cfg.MaxConcurrency > 0 {
		g.SetLimit(cfg.MaxConcurrency)
	}
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := a.Analyze(doc.Text)
			results[i] = Result{Name: doc.Name, Result: res, Err: err}
			if err != nil {
				messages <- fmt.Sprintf("%s: %v", doc.Name, err)
			} else {
				messages <- fmt.Sprintf("%s: %d words, %d sentences", doc.Name, res.Stats.Words, res.Stats.Sentences)
			}
			return nil
		})
	}
	err := g.Wait()
	close(messages)
	<-done
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Failed counts results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
