package realtime

import (
	"net/http"
	"time"

	models "github.com/glkeru/safedrive/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// Команда клиента (подписка на дополнительные комнаты)
type clientCommand struct {
	Action string `json:"action"`
}

// Подключение websocket-клиента: автоматически входит в свою комнату,
// admin/fleet может командой join-responders войти в комнату дежурных.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userId uuid.UUID, role string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("ws upgrade", zap.Error(err))
		return
	}

	c := &Client{conn: conn, send: make(chan []byte, 16)}
	h.join("user-"+userId.String(), c)

	go c.writePump()

	defer func() {
		h.leave(c)
		close(c.send)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var cmd clientCommand
		err := conn.ReadJSON(&cmd)
		if err != nil {
			return
		}
		if cmd.Action == "join-responders" && (role == models.RoleAdmin || role == models.RoleFleet) {
			h.join(RoomResponders, c)
		}
	}
}

const RoomResponders = "emergency-responders"

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
