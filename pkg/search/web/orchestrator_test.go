package web

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	mu      sync.Mutex
	answers map[string]string
	failOn  map[string]bool
	hangOn  map[string]bool
	started map[string]time.Time
}

func (f *fakeSearcher) Answer(ctx context.Context, question string) (string, error) {
	f.mu.Lock()
	if f.started == nil {
		f.started = make(map[string]time.Time)
	}
	f.started[question] = time.Now()
	f.mu.Unlock()

	if f.hangOn[question] {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.failOn[question] {
		return "", errors.New("upstream 500")
	}
	return f.answers[question], nil
}

func testConfig() Config {
	return Config{
		Stagger:     20 * time.Millisecond,
		TaskTimeout: 200 * time.Millisecond,
		Timeout:     500 * time.Millisecond,
	}
}

func TestOrchestratorSearchAll(t *testing.T) {
	t.Run("answers every question", func(t *testing.T) {
		searcher := &fakeSearcher{answers: map[string]string{
			"q1": "a1",
			"q2": "a2",
		}}
		o := NewOrchestrator(searcher, testConfig(), nil)

		got := o.SearchAll(context.Background(), []string{"q1", "q2"})
		assert.Equal(t, map[string]string{"q1": "a1", "q2": "a2"}, got)
	})

	t.Run("failed question is omitted, not fatal", func(t *testing.T) {
		searcher := &fakeSearcher{
			answers: map[string]string{"good": "answer"},
			failOn:  map[string]bool{"bad": true},
		}
		o := NewOrchestrator(searcher, testConfig(), nil)

		got := o.SearchAll(context.Background(), []string{"good", "bad"})
		require.Len(t, got, 1)
		assert.Equal(t, "answer", got["good"])
		assert.NotContains(t, got, "bad")
	})

	t.Run("hung question times out and is omitted", func(t *testing.T) {
		searcher := &fakeSearcher{
			answers: map[string]string{"fast": "ok"},
			hangOn:  map[string]bool{"slow": true},
		}
		o := NewOrchestrator(searcher, testConfig(), nil)

		got := o.SearchAll(context.Background(), []string{"fast", "slow"})
		assert.Equal(t, map[string]string{"fast": "ok"}, got)
	})

	t.Run("starts are staggered", func(t *testing.T) {
		searcher := &fakeSearcher{answers: map[string]string{
			"first":  "1",
			"second": "2",
		}}
		cfg := testConfig()
		o := NewOrchestrator(searcher, cfg, nil)

		o.SearchAll(context.Background(), []string{"first", "second"})

		gap := searcher.started["second"].Sub(searcher.started["first"])
		assert.GreaterOrEqual(t, gap, cfg.Stagger/2)
	})

	t.Run("empty batch", func(t *testing.T) {
		o := NewOrchestrator(&fakeSearcher{}, testConfig(), nil)
		got := o.SearchAll(context.Background(), nil)
		assert.Empty(t, got)
	})
}
