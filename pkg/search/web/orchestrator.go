package web

import (
	"context"
	"sync"
	"time"

	"ai-advising-be/internal/pkg/logger"
)

// Config bounds the question fan-out.
type Config struct {
	Stagger     time.Duration // delay between consecutive question starts
	TaskTimeout time.Duration // ceiling per question
	Timeout     time.Duration // ceiling for the whole batch
}

func DefaultConfig() Config {
	return Config{
		Stagger:     500 * time.Millisecond,
		TaskTimeout: 55 * time.Second,
		Timeout:     60 * time.Second,
	}
}

// Orchestrator runs a batch of questions against a Searcher, one goroutine
// per question. Failures and timeouts drop the question from the result map
// rather than failing the batch.
type Orchestrator struct {
	searcher Searcher
	cfg      Config
	log      logger.ILogger
}

func NewOrchestrator(searcher Searcher, cfg Config, log logger.ILogger) *Orchestrator {
	return &Orchestrator{searcher: searcher, cfg: cfg, log: log}
}

// SearchAll answers the questions concurrently. Question i starts after
// i * Stagger to avoid hammering the provider. The result maps question to
// answer; a question that failed or timed out is simply absent.
func (o *Orchestrator) SearchAll(ctx context.Context, questions []string) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	results := make(map[string]string, len(questions))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, question := range questions {
		wg.Add(1)
		go func(i int, question string) {
			defer wg.Done()

			delay := time.Duration(i) * o.cfg.Stagger
			if delay > 0 {
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return
				}
			}

			taskCtx, taskCancel := context.WithTimeout(ctx, o.cfg.TaskTimeout)
			defer taskCancel()

			answer, err := o.searcher.Answer(taskCtx, question)
			if err != nil {
				if o.log != nil {
					o.log.Warn("web_search", "question dropped", map[string]interface{}{
						"question": question,
						"error":    err.Error(),
					})
				}
				return
			}

			mu.Lock()
			results[question] = answer
			mu.Unlock()
		}(i, question)
	}

	wg.Wait()
	return results
}
