package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Tarunsai01/ARIA/internal/model"
	"github.com/Tarunsai01/ARIA/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// relayChannel carries frames between instances. Every instance
// subscribes; each delivers only to users it holds locally.
const relayChannel = "cluster_events"

const broadcastTarget = "*"

type relayFrame struct {
	// Origin tags the publishing instance so it can skip its own
	// frames; Redis pub/sub echoes back to the publisher.
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

type Hub struct {
	// user -> open connections (multi-device)
	sessions map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// nil when Redis is not configured; the hub then serves this
	// instance only.
	rdb *redis.Client

	id     string
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		sessions:   make(map[uuid.UUID][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
		id:         uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.relayLoop()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.sessions[client.UserID] = append(h.sessions[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.drop(client)
		}
	}
}

// drop removes one connection and closes its Send channel. Safe to call
// twice for the same client: the second call no longer finds it.
func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.sessions[client.UserID]
	for i, c := range conns {
		if c == client {
			h.sessions[client.UserID] = append(conns[:i], conns[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.sessions[client.UserID]) == 0 {
		delete(h.sessions, client.UserID)
		h.logger.Info("Hub", "Last session closed", map[string]interface{}{"user_id": client.UserID})
	}
}

// Send pushes a notification to one user's sessions, local and remote.
func (h *Hub) Send(userID uuid.UUID, notification model.Notification) {
	data := encodeNotification(notification)
	h.deliverLocal(&userID, data)
	h.relay(userID.String(), data)
}

// Broadcast pushes a notification to every connected user.
func (h *Hub) Broadcast(notification model.Notification) {
	data := encodeNotification(notification)
	h.deliverLocal(nil, data)
	h.relay(broadcastTarget, data)
}

func encodeNotification(n model.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": n,
	})
	return data
}

// deliverLocal fans data out to the target user's connections, or to
// everyone when target is nil. Connections with a full buffer are
// unregistered after the read lock is released; pushing to unregister
// while holding it would deadlock against Run.
func (h *Hub) deliverLocal(target *uuid.UUID, data []byte) {
	var stalled []*Client

	h.mu.RLock()
	if target == nil {
		for _, conns := range h.sessions {
			stalled = append(stalled, sendEach(conns, data)...)
		}
	} else {
		stalled = sendEach(h.sessions[*target], data)
	}
	h.mu.RUnlock()

	for _, c := range stalled {
		h.logger.Warn("Hub", "Send buffer full, dropping connection", map[string]interface{}{"user_id": c.UserID})
		h.unregister <- c
	}
}

func sendEach(conns []*Client, data []byte) (stalled []*Client) {
	for _, c := range conns {
		select {
		case c.Send <- data:
		default:
			stalled = append(stalled, c)
		}
	}
	return stalled
}

func (h *Hub) relay(target string, data []byte) {
	if h.rdb == nil {
		return
	}
	frame, _ := json.Marshal(relayFrame{Origin: h.id, TargetUserID: target, Message: data})
	h.rdb.Publish(context.Background(), relayChannel, frame)
}

func (h *Hub) relayLoop() {
	pubsub := h.rdb.Subscribe(context.Background(), relayChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var frame relayFrame
		if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
			h.logger.Warn("Hub", "Bad relay frame", map[string]interface{}{"error": err.Error()})
			continue
		}
		if frame.Origin == h.id {
			continue
		}

		if frame.TargetUserID == broadcastTarget {
			h.deliverLocal(nil, frame.Message)
			continue
		}
		uid, err := uuid.Parse(frame.TargetUserID)
		if err != nil {
			continue
		}
		h.deliverLocal(&uid, frame.Message)
	}
}
