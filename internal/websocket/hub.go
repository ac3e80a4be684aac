package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"realestate-buyer-be/internal/pkg/logger"
)

const clusterChannel = "session_activity_events"

// Hub tracks live watchers per profiling session and fans session
// activity out to them. Redis carries the fanout across instances.
type Hub struct {
	// SessionID -> open connections (an agent can watch the same
	// session from several tabs)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

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
			h.logger.Info("Hub", "Watcher registered", map[string]interface{}{"session_id": client.SessionID})

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
					h.logger.Info("Hub", "Last watcher left", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers a session activity frame to every watcher of the
// session. With Redis available the frame goes through the cluster
// channel so every instance, this one included, delivers exactly once.
func (h *Hub) Send(sessionID uuid.UUID, eventType string, payload map[string]interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":       "session_event",
		"event_type": eventType,
		"data":       payload,
	})

	if h.rdb == nil {
		h.deliverLocal(sessionID, data)
		return
	}

	envelope, _ := json.Marshal(map[string]interface{}{
		"session_id": sessionID.String(),
		"message":    json.RawMessage(data),
	})
	h.rdb.Publish(context.Background(), clusterChannel, envelope)
}

func (h *Hub) deliverLocal(sessionID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := h.clients[sessionID]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Unregister closes the channel
			h.logger.Warn("Hub", "Watcher send buffer full, dropping connection", map[string]interface{}{"session_id": sessionID})
			h.unregister <- client
		}
	}
}

// subscribeToRedis receives frames off the cluster channel and delivers
// them to local watchers.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope struct {
			SessionID string          `json:"session_id"`
			Message   json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		sessionId, err := uuid.Parse(envelope.SessionID)
		if err != nil {
			continue
		}
		h.deliverLocal(sessionId, envelope.Message)
	}
}
