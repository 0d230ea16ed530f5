package realtime

import (
	"sync"

	"go.uber.org/zap"
)

// Событие realtime-канала
type Event struct {
	Room    string `json:"room"`
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// Hub раздает сообщения websocket-клиентам по комнатам.
// Комната пользователя: "user-<id>", дежурные службы: "emergency-responders".
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]struct{}),
		logger: logger,
	}
}

func (h *Hub) join(room string, c *Client) {
	h.mu.Lock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) leave(c *Client) {
	h.mu.Lock()
	for room, clients := range h.rooms {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
	h.mu.Unlock()
}

// Отправка всем клиентам комнаты. Медленные клиенты пропускают сообщение,
// отправитель никогда не блокируется.
func (h *Hub) Broadcast(room string, msg []byte) {
	h.mu.RLock()
	for c := range h.rooms[room] {
		select {
		case c.send <- msg:
		default:
		}
	}
	h.mu.RUnlock()
}
