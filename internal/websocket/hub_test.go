package websocket

import (
	"testing"
	"time"

	"ai-advising-be/internal/pkg/logger"
	"ai-advising-be/pkg/progress"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quietLogger struct{}

func (quietLogger) Debug(string, string, map[string]interface{}) {}
func (quietLogger) Info(string, string, map[string]interface{})  {}
func (quietLogger) Warn(string, string, map[string]interface{})  {}
func (quietLogger) Error(string, string, map[string]interface{}) {}
func (quietLogger) Sync() error                                  { return nil }
func (quietLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (quietLogger) GetLogById(string) (*logger.LogEntry, error) { return nil, nil }

func newTestClient(h *Hub, sessionID uuid.UUID, buffer int) *Client {
	return &Client{
		Hub:       h,
		SessionID: sessionID,
		Send:      make(chan []byte, buffer),
	}
}

func (h *Hub) watcherCount(sessionID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func TestHubRegisterUnregister(t *testing.T) {
	h := NewHub(nil, quietLogger{})
	go h.Run()

	sessionID := uuid.New()
	client := newTestClient(h, sessionID, 8)

	h.register <- client
	require.Eventually(t, func() bool {
		return h.watcherCount(sessionID) == 1
	}, time.Second, 5*time.Millisecond)

	h.unregister <- client
	require.Eventually(t, func() bool {
		return h.watcherCount(sessionID) == 0
	}, time.Second, 5*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open)
}

func TestHubDropsSlowWatcher(t *testing.T) {
	h := NewHub(nil, quietLogger{})
	go h.Run()

	sessionID := uuid.New()
	slow := newTestClient(h, sessionID, 1)
	healthy := newTestClient(h, sessionID, 8)

	h.register <- slow
	h.register <- healthy
	require.Eventually(t, func() bool {
		return h.watcherCount(sessionID) == 2
	}, time.Second, 5*time.Millisecond)

	// Fill the slow watcher's buffer so the next frame cannot be delivered.
	slow.Send <- []byte("stale")

	h.SendProgress(sessionID, progress.Event{Phase: progress.PhaseInit, Progress: 0.1})

	require.Eventually(t, func() bool {
		return h.watcherCount(sessionID) == 1
	}, time.Second, 5*time.Millisecond)

	// The hub goroutine must survive the drop and keep serving the
	// remaining watcher.
	h.SendProgress(sessionID, progress.Event{Phase: progress.PhaseQueryGen, Progress: 0.2})

	received := 0
	for received < 2 {
		select {
		case <-healthy.Send:
			received++
		case <-time.After(time.Second):
			t.Fatalf("healthy watcher received %d of 2 frames", received)
		}
	}

	<-slow.Send // the frame buffered before the drop
	_, open := <-slow.Send
	assert.False(t, open)
}
