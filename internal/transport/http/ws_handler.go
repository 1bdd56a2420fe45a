package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/proto"
)

// ChatHub is the part of core.Hub the transport drives.
type ChatHub interface {
	Connect(c *core.Client)
	Join(c *core.Client, req core.JoinRequest) error
	SendMessage(c *core.Client, text string) error
	SendLocation(c *core.Client, pos core.Coordinates) error
	Disconnect(c *core.Client)
	UsersInRoom(room string) []core.User
	Rooms() []core.RoomSummary
	Online() int
}

// WSHandler upgrades HTTP connections and bridges them to core.Client.
type WSHandler struct {
	hub ChatHub
	cfg *config.Config
	log *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub ChatHub, cfg *config.Config, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{hub: hub, cfg: cfg, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, h.acceptOptions())
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	if h.cfg.MaxMessageBytes > 0 {
		conn.SetReadLimit(h.cfg.MaxMessageBytes)
	}

	client := core.NewClient(uuid.NewString(), h.cfg.SendBuffer)
	h.hub.Connect(client)
	defer h.hub.Disconnect(client)

	h.log.Debug().Str("conn_id", client.ID).Str("remote", r.RemoteAddr).Msg("ws connected")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != -1 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("conn_id", client.ID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) acceptOptions() *websocket.AcceptOptions {
	if len(h.cfg.AllowedOrigins) == 0 {
		return &websocket.AcceptOptions{InsecureSkipVerify: true}
	}
	return &websocket.AcceptOptions{OriginPatterns: h.cfg.AllowedOrigins}
}

// readLoop handles the connection's frames one at a time, in arrival order.
// A frame that is not valid JSON is answered with an error and skipped.
func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var inbound proto.Inbound
		if err := json.Unmarshal(data, &inbound); err != nil {
			h.log.Debug().Err(err).Str("conn_id", client.ID).Msg("malformed ws frame")
			if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
				Type:  proto.OutboundTypeError,
				Error: badRequest("malformed frame"),
			}); writeErr != nil {
				return writeErr
			}
			continue
		}

		protoErr := dispatchInbound(h.hub, client, inbound)
		if protoErr != nil {
			h.log.Debug().Str("conn_id", client.ID).Str("type", inbound.Type).Str("code", protoErr.Code).Msg("inbound rejected")
		}

		if reply, ok := replyFor(inbound, protoErr); ok {
			if err := wsjson.Write(ctx, conn, reply); err != nil {
				return err
			}
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("conn_id", client.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
