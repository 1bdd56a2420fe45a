package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventWelcome greets a freshly connected client.
	EventWelcome EventKind = iota
	// EventMessage carries a chat message or a server announcement.
	EventMessage
	// EventLocationMessage carries a shared location link.
	EventLocationMessage
	// EventRoomData carries the current roster of a room.
	EventRoomData
)

func (k EventKind) String() string {
	switch k {
	case EventWelcome:
		return "welcomeMessage"
	case EventMessage:
		return "message"
	case EventLocationMessage:
		return "locationMessage"
	case EventRoomData:
		return "roomData"
	default:
		return "unknown"
	}
}

// Event is sent to clients to describe what happened in the system.
// Events are shared between recipients and must not be mutated after send.
type Event struct {
	Kind     EventKind
	Room     string
	Text     string // EventWelcome
	Message  *Message
	Location *LocationMessage
	Users    []User // EventRoomData
}

func welcomeEvent(text string) *Event {
	return &Event{Kind: EventWelcome, Text: text}
}

func messageEvent(room string, msg Message) *Event {
	return &Event{Kind: EventMessage, Room: room, Message: &msg}
}

func locationEvent(room string, msg LocationMessage) *Event {
	return &Event{Kind: EventLocationMessage, Room: room, Location: &msg}
}

func roomDataEvent(room string, users []User) *Event {
	return &Event{Kind: EventRoomData, Room: room, Users: users}
}
