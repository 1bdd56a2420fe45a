package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/profanity"
	"github.com/vovakirdan/roomrelay/internal/proto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func startTestServer(t *testing.T) (*httptest.Server, *core.Hub) {
	t.Helper()

	disabledLogger := zerolog.New(nil)
	hub := core.NewHub(core.HubOptions{
		WelcomeText: "hello from the relay",
		Filter:      profanity.New([]string{"zonk"}, nil),
		Logger:      &disabledLogger,
	})

	cfg := config.Default()
	cfg.Addr = ":0"

	server := NewServer(hub, &cfg, &disabledLogger)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, hub
}

// frame is an outbound message with its data left undecoded.
type frame struct {
	Type  string          `json:"type"`
	ID    int64           `json:"id"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

// wsClient reads frames in order and keeps the ones a test skipped over so
// later expectations still see them.
type wsClient struct {
	t       *testing.T
	ctx     context.Context
	conn    *websocket.Conn
	pending []frame
}

func dialClient(t *testing.T, ts *httptest.Server) *wsClient {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })

	return &wsClient{t: t, ctx: ctx, conn: conn}
}

func (c *wsClient) send(typ string, id int64, data any) {
	c.t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		c.t.Fatalf("marshal %s: %v", typ, err)
	}
	if err := wsjson.Write(c.ctx, c.conn, proto.Inbound{Type: typ, ID: id, Data: payload}); err != nil {
		c.t.Fatalf("send %s: %v", typ, err)
	}
}

func (c *wsClient) next(match func(frame) bool) frame {
	c.t.Helper()

	for i, f := range c.pending {
		if match(f) {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return f
		}
	}
	for {
		var f frame
		if err := wsjson.Read(c.ctx, c.conn, &f); err != nil {
			c.t.Fatalf("read frame: %v", err)
		}
		if match(f) {
			return f
		}
		c.pending = append(c.pending, f)
	}
}

func (c *wsClient) ack(id int64) frame {
	c.t.Helper()
	return c.next(func(f frame) bool { return f.Type == proto.OutboundTypeAck && f.ID == id })
}

func (c *wsClient) event(name string, into any) {
	c.t.Helper()

	f := c.next(func(f frame) bool { return f.Type == proto.OutboundTypeEvent && f.Event == name })
	if err := json.Unmarshal(f.Data, into); err != nil {
		c.t.Fatalf("decode %s: %v", name, err)
	}
}

func (c *wsClient) join(id int64, username, room string) frame {
	c.t.Helper()
	c.send(proto.InboundTypeJoin, id, proto.JoinData{Username: username, Room: room})
	return c.ack(id)
}

func rosterNames(data proto.EventRoomData) []string {
	names := make([]string, 0, len(data.Users))
	for _, u := range data.Users {
		names = append(names, u.Username)
	}
	return names
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
