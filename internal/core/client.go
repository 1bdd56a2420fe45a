package core

import "sync/atomic"

// ConnState is the protocol state of a connection.
type ConnState int32

const (
	StateUnjoined ConnState = iota
	StateJoined
	StateDisconnected
)

// DefaultSendBuffer is the Events capacity used when none is configured.
const DefaultSendBuffer = 16

// Client is a transport connection as seen by the core layer.
type Client struct {
	ID     string
	Events chan *Event

	// written only while holding Hub.mu
	state atomic.Int32
}

// NewClient constructs a client with an initialized event queue.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultSendBuffer
	}
	return &Client{
		ID:     id,
		Events: make(chan *Event, buffer),
	}
}

// State returns the connection's current protocol state.
func (c *Client) State() ConnState {
	return ConnState(c.state.Load())
}

func (c *Client) setState(s ConnState) {
	c.state.Store(int32(s))
}
