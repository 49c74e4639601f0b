package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/verte-zerg/readability/internal/model"
)

type fakeAnalyzer struct{}

func (fakeAnalyzer) Analyze(text string) (model.MetricResult, error) {
	if text == "" {
		return model.MetricResult{}, errors.New("empty")
	}
	words := len(strings.Fields(text))
	return model.MetricResult{Stats: model.TokenStats{Words: words, Sentences: 1}}, nil
}

func TestRunKeepsInputOrder(t *testing.T) {
	var docs []model.Document
	for i := 1; i <= 20; i++ {
		docs = append(docs, model.Document{
			Name: fmt.Sprintf("doc-%d", i),
			Text: strings.Repeat("word ", i),
		})
	}
	var mu sync.Mutex
	var messages []string
	results, err := Run(context.Background(), fakeAnalyzer{}, docs, Config{
		MaxConcurrency: 3,
		OnMessage: func(msg string) {
			mu.Lock()
			messages = append(messages, msg)
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != len(docs) {
		t.Fatalf("expected %d results, got %d", len(docs), len(results))
	}
	for i, r := range results {
		if r.Name != docs[i].Name {
			t.Fatalf("result %d is %s, want %s", i, r.Name, docs[i].Name)
		}
		if r.Result.Stats.Words != i+1 {
			t.Fatalf("result %d has %d words, want %d", i, r.Result.Stats.Words, i+1)
		}
	}
	if len(messages) != len(docs) {
		t.Fatalf("expected %d messages, got %d", len(docs), len(messages))
	}
}

func TestRunCapturesPerDocumentErrors(t *testing.T) {
	docs := []model.Document{
		{Name: "ok", Text: "some words"},
		{Name: "empty", Text: ""},
	}
	results, err := Run(context.Background(), fakeAnalyzer{}, docs, Config{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if results[0].Err != nil {
		t.Fatalf("unexpected error for ok doc: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Fatalf("expected error for empty doc")
	}
	if Failed(results) != 1 {
		t.Fatalf("expected 1 failure, got %d", Failed(results))
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	docs := []model.Document{{Name: "a", Text: "text"}}
	if _, err := Run(ctx, fakeAnalyzer{}, docs, Config{MaxConcurrency: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunEmpty(t *testing.T) {
	results, err := Run(context.Background(), fakeAnalyzer{}, nil, Config{})
	if err != nil || len(results) != 0 {
		t.Fatalf("expected empty results, got %v, %v", results, err)
	}
}
