package core

import (
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Broadcaster fans events out to the connections of a room. Recipients are
// resolved from the registry at send time.
type Broadcaster struct {
	registry *Registry
	log      *zerolog.Logger

	mu      sync.RWMutex
	clients map[string]*Client
}

// NewBroadcaster creates a broadcaster reading membership from registry.
func NewBroadcaster(registry *Registry, logger *zerolog.Logger) *Broadcaster {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Broadcaster{
		registry: registry,
		log:      logger,
		clients:  make(map[string]*Client),
	}
}

// Attach makes a connection reachable by ID.
func (b *Broadcaster) Attach(c *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[c.ID] = c
}

// Detach removes a connection. Later sends to it are dropped.
func (b *Broadcaster) Detach(connID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.clients, connID)
}

// SendToConnection delivers event to a single connection. It reports whether
// the event was queued.
func (b *Broadcaster) SendToConnection(connID string, event *Event) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	client, ok := b.clients[connID]
	if !ok {
		b.log.Debug().Str("conn_id", connID).Str("event", event.Kind.String()).Msg("send to detached connection")
		return false
	}
	return b.deliver(client, event)
}

// BroadcastToRoom delivers event to every member of room except the listed
// connections and returns how many recipients had it queued. A recipient that
// cannot accept the event does not affect the others.
func (b *Broadcaster) BroadcastToRoom(room string, event *Event, exclude ...string) int {
	members := b.registry.UsersInRoom(room)

	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for _, member := range members {
		if slices.Contains(exclude, member.ConnID) {
			continue
		}
		client, ok := b.clients[member.ConnID]
		if !ok {
			continue
		}
		if b.deliver(client, event) {
			delivered++
		}
	}
	return delivered
}

func (b *Broadcaster) deliver(client *Client, event *Event) bool {
	select {
	case client.Events <- event:
		return true
	default:
		// Drop if slow consumer.
		b.log.Warn().Str("conn_id", client.ID).Str("event", event.Kind.String()).Msg("client queue full, event dropped")
		return false
	}
}

