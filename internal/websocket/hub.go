package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-advising-be/internal/pkg/logger"
	"ai-advising-be/pkg/progress"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub fans progress and result frames out to every connection watching a
// session. Multiple tabs can watch one session; a Redis relay carries frames
// to clients connected to other instances.
type Hub struct {
	// SessionID -> connections watching it
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance relay; nil disables it
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
					h.logger.Info("Hub", "Session has no watchers left", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendProgress delivers one pipeline progress event to every watcher of the
// session, local and remote.
func (h *Hub) SendProgress(sessionID uuid.UUID, event progress.Event) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":     "progress",
		"phase":    event.Phase,
		"progress": event.Progress,
		"message":  event.Message,
		"data":     event.Data,
	})
	h.send(sessionID, data)
}

// SendResult delivers the final recommendations frame.
func (h *Hub) SendResult(sessionID uuid.UUID, payload interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "result",
		"data": payload,
	})
	h.send(sessionID, data)
}

func (h *Hub) send(sessionID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients, localFound := h.clients[sessionID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				// The unregister handler closes Send; closing here too
				// would double-close the channel.
				h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"session_id": sessionID})
				h.unregister <- client
			}
		}
	}

	// Relay for watchers on other instances
	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_session_id": sessionID.String(),
			"message":           json.RawMessage(data),
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

// subscribeToRedis forwards relayed frames to local watchers. Every instance
// subscribes to the same channel and filters by session.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetSessionID string          `json:"target_session_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		sid, err := uuid.Parse(payload.TargetSessionID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[sid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					h.unregister <- client
				}
			}
		}
	}
}
