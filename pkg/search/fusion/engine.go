package fusion

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config controls the fan-out behavior of the Engine.
type Config struct {
	TopK         int           // per-retriever candidate depth
	TopN         int           // fused documents kept per query
	GroupTimeout time.Duration // ceiling for the whole query batch
}

func DefaultConfig() Config {
	return Config{
		TopK:         DefaultTopK,
		TopN:         DefaultTopN,
		GroupTimeout: 120 * time.Second,
	}
}

// Result holds the fused documents per query. A query that failed appears in
// Failed instead of Documents; the batch itself never aborts on one query.
type Result struct {
	Documents map[string][]string
	Failed    map[string]error
}

// Engine runs every query against every retriever concurrently and fuses the
// per-query rankings.
type Engine struct {
	retrievers []Retriever
	cfg        Config
}

// NewEngine builds an engine. Retriever order is the tie-break order during
// fusion, so pass the dense retriever first.
func NewEngine(cfg Config, retrievers ...Retriever) *Engine {
	return &Engine{retrievers: retrievers, cfg: cfg}
}

// SearchAll executes the query batch. Each query fans out to all retrievers;
// a retriever error fails only that query.
func (e *Engine) SearchAll(ctx context.Context, queries []string) (*Result, error) {
	if len(e.retrievers) == 0 {
		return nil, fmt.Errorf("fusion engine has no retrievers")
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.GroupTimeout)
	defer cancel()

	res := &Result{
		Documents: make(map[string][]string, len(queries)),
		Failed:    make(map[string]error),
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, query := range queries {
		query := query
		g.Go(func() error {
			docs, err := e.searchOne(gctx, query)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed[query] = err
				return nil
			}
			res.Documents[query] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (e *Engine) searchOne(ctx context.Context, query string) ([]string, error) {
	lists := make([][]ScoredDocument, len(e.retrievers))

	g, gctx := errgroup.WithContext(ctx)
	for i, retriever := range e.retrievers {
		i, retriever := i, retriever
		g.Go(func() error {
			docs, err := retriever.Retrieve(gctx, query, e.cfg.TopK)
			if err != nil {
				return fmt.Errorf("retriever %d: %w", i, err)
			}
			lists[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Fuse(lists, e.cfg.TopN), nil
}
