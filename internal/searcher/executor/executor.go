// Package executor runs phrase queries against a built index, adding
// logging, Prometheus metrics and an optional result cache around the phrase
// engine.
package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/phrase-index/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/internal/searcher/phrase"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/metrics"
)

type Result struct {
	Phrase  string                `json:"phrase"`
	Terms   []string              `json:"terms"`
	DocIDs  []index.DocID         `json:"doc_ids"`
	Matches map[index.DocID][]int `json:"matches,omitempty"`
	Cached  bool                  `json:"cached"`
}

type Executor struct {
	idx     *index.InvertedIndex
	cache   *cache.QueryCache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Executor)

// WithCache enables result caching.
func WithCache(c *cache.QueryCache) Option {
	return func(e *Executor) {
		e.cache = c
	}
}

// WithMetrics records query metrics into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Executor) {
		e.metrics = m
	}
}

func New(idx *index.InvertedIndex, opts ...Option) *Executor {
	e := &Executor{
		idx:    idx,
		logger: slog.Default().With("component", "phrase-executor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute finds every document containing query as an exact phrase. Results
// are in ascending DocID order. Cache failures never fail the query.
func (e *Executor) Execute(ctx context.Context, query string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		e.observe("error", "none", 0, 0)
		return nil, fmt.Errorf("executing phrase %q: %w", query, err)
	}
	start := time.Now()
	terms := e.idx.Normalizer().Normalize(query)
	if len(terms) == 0 {
		e.logger.Debug("phrase normalized to nothing", "phrase", query)
		e.observe("zero_result", "none", time.Since(start), 0)
		return &Result{
			Phrase: query,
			Terms:  terms,
			DocIDs: []index.DocID{},
		}, nil
	}

	var result *Result
	cacheStatus := "none"
	if e.cache != nil {
		cached, hit, err := e.fromCache(ctx, terms)
		switch {
		case err != nil:
			e.logger.Error("cached evaluation failed, evaluating directly", "phrase", query, "error", err)
		case hit:
			cacheStatus = "hit"
			result = cached
		default:
			cacheStatus = "miss"
			result = cached
		}
	}
	if result == nil {
		result = e.evaluate(terms)
	}
	result.Phrase = query
	result.Cached = cacheStatus == "hit"

	resultType := "hit"
	if len(result.DocIDs) == 0 {
		resultType = "zero_result"
	}
	e.observe(resultType, cacheStatus, time.Since(start), len(result.DocIDs))
	e.logger.Info("phrase query executed",
		"phrase", query,
		"terms", terms,
		"results", len(result.DocIDs),
		"cache", cacheStatus,
	)
	return result, nil
}

func (e *Executor) evaluate(terms []string) *Result {
	docIDs := phrase.SearchTerms(e.idx, terms)
	matches := make(map[index.DocID][]int, len(docIDs))
	for _, doc := range docIDs {
		matches[doc] = phrase.MatchTerms(e.idx, terms, doc)
	}
	return &Result{
		Terms:   terms,
		DocIDs:  docIDs,
		Matches: matches,
	}
}

func (e *Executor) fromCache(ctx context.Context, terms []string) (*Result, bool, error) {
	key := cache.Key(e.idx.Fingerprint(), terms)
	data, hit, err := e.cache.GetOrCompute(ctx, key, func() ([]byte, error) {
		return json.Marshal(e.evaluate(terms))
	})
	if err != nil {
		return nil, false, err
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("decoding cached result: %w", err)
	}
	if result.DocIDs == nil {
		result.DocIDs = []index.DocID{}
	}
	if e.metrics != nil {
		if hit {
			e.metrics.CacheHitsTotal.Inc()
		} else {
			e.metrics.CacheMissesTotal.Inc()
		}
	}
	return &result, hit, nil
}

func (e *Executor) observe(resultType, cacheStatus string, elapsed time.Duration, results int) {
	if e.metrics == nil {
		return
	}
	e.metrics.PhraseQueriesTotal.WithLabelValues(resultType).Inc()
	if resultType == "error" {
		return
	}
	e.metrics.PhraseQueryLatency.WithLabelValues(cacheStatus).Observe(elapsed.Seconds())
	e.metrics.PhraseResultsCount.Observe(float64(results))
}
