package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client. A non-zero ID
// asks the server to acknowledge the message.
type Inbound struct {
	Type string          `json:"type"`
	ID   int64           `json:"id,omitempty"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin         = "join"
	InboundTypeSendMessage  = "sendMessage"
	InboundTypeSendLocation = "sendLocation"

	OutboundTypeEvent = "event"
	OutboundTypeAck   = "ack"
	OutboundTypeError = "error"

	EventNameWelcome         = "welcomeMessage"
	EventNameMessage         = "message"
	EventNameLocationMessage = "locationMessage"
	EventNameRoomData        = "roomData"
)

// JoinData requests to join a room under a username.
type JoinData struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// LocationData is a position shared by the client.
type LocationData struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	ID    int64  `json:"id,omitempty"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventMessage is a chat message or server announcement.
type EventMessage struct {
	Username  string `json:"username"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}

// EventLocationMessage is a shared location link.
type EventLocationMessage struct {
	Username  string `json:"username"`
	URL       string `json:"url"`
	CreatedAt int64  `json:"createdAt"`
}

// RoomUser is a roster entry.
type RoomUser struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// EventRoomData is the roster of a room.
type EventRoomData struct {
	Room  string     `json:"room"`
	Users []RoomUser `json:"users"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
