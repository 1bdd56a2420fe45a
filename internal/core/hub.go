package core

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ProfanityChecker decides whether a chat text may be relayed.
type ProfanityChecker interface {
	IsProfane(text string) bool
}

// JoinRequest is what a client supplies to enter a room.
type JoinRequest struct {
	Username string
	Room     string
}

// HubOptions configures a Hub. Zero values are usable.
type HubOptions struct {
	// WelcomeText is pushed to every new connection before it joins.
	// Empty disables it.
	WelcomeText string
	Filter      ProfanityChecker
	Clock       Clock
	Logger      *zerolog.Logger
}

// Hub drives the join/send/leave protocol of every connection.
type Hub struct {
	registry    *Registry
	broadcaster *Broadcaster
	filter      ProfanityChecker
	welcome     string
	now         Clock
	log         *zerolog.Logger

	// mu orders membership changes together with their announcements, so
	// roster events reach clients in registry order.
	mu sync.Mutex
}

// NewHub creates a new chat hub instance.
func NewHub(opts HubOptions) *Hub {
	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	registry := NewRegistry()
	return &Hub{
		registry:    registry,
		broadcaster: NewBroadcaster(registry, logger),
		filter:      opts.Filter,
		welcome:     opts.WelcomeText,
		now:         now,
		log:         logger,
	}
}

// Connect attaches a fresh connection and greets it.
func (h *Hub) Connect(c *Client) {
	h.broadcaster.Attach(c)
	h.log.Debug().Str("conn_id", c.ID).Msg("connection attached")
	if h.welcome != "" {
		h.broadcaster.SendToConnection(c.ID, welcomeEvent(h.welcome))
	}
}

// Join places the connection in a room. The returned error is meant for the
// joining client; nothing is broadcast when it is non-nil.
func (h *Hub) Join(c *Client, req JoinRequest) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch c.State() {
	case StateJoined:
		return ErrAlreadyJoined
	case StateDisconnected:
		return ErrNotJoined
	}

	user, err := h.registry.AddUser(c.ID, req.Username, req.Room)
	if err != nil {
		h.log.Debug().Err(err).Str("conn_id", c.ID).Str("username", req.Username).Str("room", req.Room).Msg("join rejected")
		return err
	}
	c.setState(StateJoined)

	h.broadcaster.SendToConnection(c.ID, messageEvent(user.Room, newMessageAt(h.now, AdminName, "Welcome!")))
	h.broadcaster.BroadcastToRoom(user.Room,
		messageEvent(user.Room, newMessageAt(h.now, AdminName, user.Username+" has joined!")),
		c.ID,
	)
	h.broadcastRoster(user.Room)

	h.log.Info().Str("conn_id", c.ID).Str("username", user.Username).Str("room", user.Room).Msg("user joined")
	return nil
}

// SendMessage relays text from the connection's user to its whole room.
func (h *Hub) SendMessage(c *Client, text string) error {
	user, ok := h.registry.GetUser(c.ID)
	if !ok {
		h.log.Warn().Str("conn_id", c.ID).Msg("message from connection that has not joined")
		return ErrNotJoined
	}
	if h.filter != nil && h.filter.IsProfane(text) {
		h.log.Debug().Str("conn_id", c.ID).Str("room", user.Room).Msg("message rejected by profanity filter")
		return ErrProfanity
	}

	h.broadcaster.BroadcastToRoom(user.Room, messageEvent(user.Room, newMessageAt(h.now, user.Username, text)))
	return nil
}

// SendLocation relays a location link from the connection's user to its
// whole room.
func (h *Hub) SendLocation(c *Client, pos Coordinates) error {
	user, ok := h.registry.GetUser(c.ID)
	if !ok {
		h.log.Warn().Str("conn_id", c.ID).Msg("location from connection that has not joined")
		return ErrNotJoined
	}

	msg := newLocationMessageAt(h.now, user.Username, pos.Latitude, pos.Longitude)
	h.broadcaster.BroadcastToRoom(user.Room, locationEvent(user.Room, msg))
	return nil
}

// Disconnect retires the connection. Only the first call has an effect.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.State() == StateDisconnected {
		return
	}
	c.setState(StateDisconnected)
	h.broadcaster.Detach(c.ID)

	user, ok := h.registry.RemoveUser(c.ID)
	if !ok {
		h.log.Debug().Str("conn_id", c.ID).Msg("connection closed before joining")
		return
	}

	h.broadcaster.BroadcastToRoom(user.Room, messageEvent(user.Room, newMessageAt(h.now, AdminName, user.Username+" has left!")))
	h.broadcastRoster(user.Room)

	h.log.Info().Str("conn_id", c.ID).Str("username", user.Username).Str("room", user.Room).Msg("user left")
}

// UsersInRoom returns the live roster of room.
func (h *Hub) UsersInRoom(room string) []User {
	return h.registry.UsersInRoom(room)
}

// Rooms lists rooms that currently have members.
func (h *Hub) Rooms() []RoomSummary {
	return h.registry.Rooms()
}

// Online returns the number of joined users across all rooms.
func (h *Hub) Online() int {
	return h.registry.Len()
}

func (h *Hub) broadcastRoster(room string) {
	h.broadcaster.BroadcastToRoom(room, roomDataEvent(room, h.registry.UsersInRoom(room)))
}
