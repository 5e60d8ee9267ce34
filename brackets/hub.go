package brackets

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Типы сообщений, которые получают клиенты комнаты площадки.
const (
	MessageStandingsUpdated = "STANDINGS_UPDATED"
	MessageMatchUpdated     = "MATCH_UPDATED"
	MessageScheduleCreated  = "SCHEDULE_CREATED"
	MessagePlayersUpdated   = "PLAYERS_UPDATED"
)

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	Room     string
	IsClosed bool
	Mu       sync.Mutex
}

type WebSocketMessage struct {
	Type    string      `json:"type"`              // например, "STANDINGS_UPDATED"
	Payload interface{} `json:"payload"`           // данные сообщения
	RoomID  string      `json:"room_id,omitempty"` // комната площадки
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// PlaygroundRoom is the room name clients of one playground join.
func PlaygroundRoom(playgroundID int) string {
	return "playground_" + strconv.Itoa(playgroundID)
}

type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
	done       chan struct{}
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run обслуживает регистрацию клиентов до отмены контекста.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.logger.Info("ws client registered", slog.String("room", client.Room), slog.Int("clients", len(h.rooms[client.Room])))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room][client]; ok {
				client.close()
				delete(h.rooms[client.Room], client)
				if len(h.rooms[client.Room]) == 0 {
					delete(h.rooms, client.Room)
					h.logger.Info("ws room closed", slog.String("room", client.Room))
				} else {
					h.logger.Info("ws client unregistered", slog.String("room", client.Room), slog.Int("clients", len(h.rooms[client.Room])))
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, clients := range h.rooms {
		for client := range clients {
			client.close()
		}
		delete(h.rooms, room)
	}
}

// Join registers the client unless the hub has already stopped.
func (h *Hub) Join(c *Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

// Clients returns the number of connected clients across all rooms.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.rooms {
		n += len(clients)
	}
	return n
}

func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// BroadcastToRoom отправляет сообщение всем клиентам в указанной комнате.
// Клиенты с переполненным буфером пропускают сообщение.
func (h *Hub) BroadcastToRoom(roomID string, message interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	roomClients, ok := h.rooms[roomID]
	if !ok {
		h.logger.Debug("no ws clients in room", slog.String("room", roomID))
		return
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal ws message", slog.String("room", roomID), slog.Any("error", err))
		return
	}

	for client := range roomClients {
		client.Mu.Lock()
		if client.IsClosed {
			client.Mu.Unlock()
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			h.logger.Warn("ws client send buffer full, message dropped", slog.String("room", roomID))
		}
		client.Mu.Unlock()
	}
}

func (c *Client) close() {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if !c.IsClosed {
		close(c.Send)
		c.IsClosed = true
	}
}

// ReadPump только следит за соединением: входящие сообщения игнорируются.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.leave(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("ws client closed unexpectedly", slog.String("room", c.Room), slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				c.Hub.logger.Warn("ws next writer failed", slog.String("room", c.Room), slog.Any("error", err))
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				c.Hub.logger.Warn("ws writer close failed", slog.String("room", c.Room), slog.Any("error", err))
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
