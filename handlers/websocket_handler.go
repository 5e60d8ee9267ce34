package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/playground-standings/brackets"
	"github.com/Dosada05/playground-standings/services"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub           *brackets.Hub
	rosterService services.RosterService
	upgrader      websocket.Upgrader
	logger        *slog.Logger
}

// NewWebSocketHandler принимает разрешённые Origin; "*" разрешает любой.
func NewWebSocketHandler(hub *brackets.Hub, rs services.RosterService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketHandler{
		hub:           hub,
		rosterService: rs,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// ServeWs обрабатывает WebSocket запросы для конкретной площадки.
// Клиент должен подключаться к /ws/playgrounds/{playgroundID}
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.rosterService.GetPlayground(r.Context(), playgroundID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader.Upgrade сам отправляет HTTP ошибку клиенту, так что здесь просто логируем.
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", slog.Int("playground_id", playgroundID), slog.Any("error", err))
		return
	}

	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: brackets.PlaygroundRoom(playgroundID),
	}
	if !h.hub.Join(client) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}

	// Эти горутины будут работать, пока клиент не отключится.
	go client.WritePump()
	go client.ReadPump()
}
