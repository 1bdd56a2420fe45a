package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/proto"
)

func TestServerHandlerUpgradesWebSocket(t *testing.T) {
	logger := zerolog.Nop()
	hub := core.NewHub(core.HubOptions{WelcomeText: "hi", Logger: &logger})
	cfg := config.Default()

	ts := httptest.NewServer(NewServer(hub, &cfg, &logger).Handler)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, resp, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "done")
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	var welcome proto.Outbound
	require.NoError(t, wsjson.Read(ctx, conn, &welcome))
	assert.Equal(t, proto.OutboundTypeEvent, welcome.Type)
	assert.Equal(t, proto.EventNameWelcome, welcome.Event)
	assert.Equal(t, "hi", welcome.Data)

	// gin routes stay reachable behind the same handler.
	health, err := ts.Client().Get(ts.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	body, err := io.ReadAll(health.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, health.StatusCode)
	assert.Equal(t, "ok", string(body))
}
