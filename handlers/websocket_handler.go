package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/maze-tournament/brackets"
	"github.com/Dosada05/maze-tournament/services"
)

type WebSocketHandler struct {
	hub            *brackets.Hub
	bracketService services.BracketService
	upgrader       websocket.Upgrader
	logger         *slog.Logger
}

// NewWebSocketHandler accepts connections whose Origin matches one of
// allowedOrigins; "*" allows any origin.
func NewWebSocketHandler(hub *brackets.Hub, bs services.BracketService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		bracketService: bs,
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

// ServeWs streams bracket updates. The current bracket, if any, is sent
// right after the upgrade.
// @Summary Live bracket updates
// @Tags bracket
// @Router /ws/bracket [get]
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: brackets.BracketRoom,
	}

	if bracket, err := h.bracketService.GetBracket(r.Context()); err == nil {
		msg, err := json.Marshal(brackets.WebSocketMessage{
			Type:    brackets.MessageBracketUpdated,
			Payload: bracket,
			RoomID:  brackets.BracketRoom,
		})
		if err == nil {
			client.Send <- msg
		}
	}

	if !h.hub.Join(client) {
		conn.Close()
		return
	}
	go client.WritePump()
	go client.ReadPump()
}
