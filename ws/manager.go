package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"tweet-server/entities"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

type subscriber struct {
	conn *websocket.Conn
	// gorilla connections allow one concurrent writer
	writeMu sync.Mutex
}

func (s *subscriber) write(payload []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

// Manager keeps track of UI clients subscribed to tweet events.
type Manager struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber // subscriberID -> conn
}

func NewManager() *Manager {
	return &Manager{subscribers: make(map[string]*subscriber)}
}

// Register adds a connection and returns its subscriber id.
func (m *Manager) Register(conn *websocket.Conn) string {
	id := uuid.New().String()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers[id] = &subscriber{conn: conn}
	return id
}

// Unregister closes and removes a subscriber.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sub, ok := m.subscribers[id]; ok {
		_ = sub.conn.Close()
		delete(m.subscribers, id)
	}
}

// Count returns the number of connected subscribers.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}

// Publish sends the event to every subscriber. Subscribers whose write
// fails are dropped.
func (m *Manager) Publish(event entities.TweetEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to encode tweet event", slog.String("error", err.Error()))
		return
	}

	m.mu.RLock()
	targets := make(map[string]*subscriber, len(m.subscribers))
	for id, sub := range m.subscribers {
		targets[id] = sub
	}
	m.mu.RUnlock()

	for id, sub := range targets {
		if err := sub.write(payload); err != nil {
			slog.Warn("dropping websocket subscriber",
				slog.String("subscriber_id", id),
				slog.String("error", err.Error()),
			)
			m.Unregister(id)
		}
	}
}
