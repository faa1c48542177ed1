package chat

import (
	"log/slog"
	"net/http"
	"strings"

	"trainerhub/internal/pkg/httpx"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSHandler upgrades authenticated requests and attaches them to the hub.
// Authentication happens before it, see middleware.QueryTokenAuth.
type WSHandler struct {
	hub      *Hub
	svc      *Service
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *Hub, svc *Service, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub: hub,
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

func (h *WSHandler) RegisterRoutes(ws *gin.RouterGroup) {
	ws.GET("/ws", h.Serve)
}

func (h *WSHandler) Serve(c *gin.Context) {
	userID := httpx.UserID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}
	slog.Debug("websocket connected", "user_id", userID)

	ctx := c.Request.Context()
	h.hub.Serve(conn, userID, func(ev ClientEvent) {
		switch ev.Type {
		case "ping":
			h.hub.SendToUser(userID, Event{Type: EventPong})
		case EventTyping:
			if err := h.svc.Typing(ctx, ev.BookingID, userID); err != nil {
				h.hub.SendToUser(userID, Event{Type: EventError, BookingID: ev.BookingID, Payload: err.Error()})
			}
		case EventRead:
			if _, err := h.svc.MarkRead(ctx, ev.BookingID, userID); err != nil {
				h.hub.SendToUser(userID, Event{Type: EventError, BookingID: ev.BookingID, Payload: err.Error()})
			}
		case EventMessage:
			if _, err := h.svc.Send(ctx, ev.BookingID, userID, ev.Body); err != nil {
				h.hub.SendToUser(userID, Event{Type: EventError, BookingID: ev.BookingID, Payload: err.Error()})
			}
		default:
			h.hub.SendToUser(userID, Event{Type: EventError, Payload: "unknown event type"})
		}
	})
	slog.Debug("websocket disconnected", "user_id", userID)
}
