package chat

type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// ClientEvent is a frame sent by the browser over the websocket.
type ClientEvent struct {
	Type      string `json:"type"`
	BookingID int64  `json:"booking_id"`
	Body      string `json:"body,omitempty"`
}

const (
	EventMessage = "message"
	EventTyping  = "typing"
	EventRead    = "read"
	EventPong    = "pong"
	EventError   = "error"
)
