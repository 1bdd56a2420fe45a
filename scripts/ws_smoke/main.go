package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/roomrelay/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:3000/ws", "WebSocket address")
	user := flag.String("user", "tester", "username to join with")
	room := flag.String("room", "general", "room name")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(typ string, id int64, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", typ, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, ID: id, Data: payload}); err != nil {
			return fmt.Errorf("send %s: %w", typ, err)
		}
		return nil
	}

	if err := send(proto.InboundTypeJoin, 1, proto.JoinData{Username: *user, Room: *room}); err != nil {
		return err
	}

	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		fmt.Printf("Received outbound: type=%s", outbound.Type)
		if outbound.Event != "" {
			fmt.Printf(" event=%s", outbound.Event)
		}
		fmt.Println()

		switch outbound.Type {
		case proto.OutboundTypeAck:
			if outbound.Error != nil {
				return fmt.Errorf("ack %d: %s (%s)", outbound.ID, outbound.Error.Msg, outbound.Error.Code)
			}
			// Once joined, send the test message.
			if outbound.ID == 1 {
				if err := send(proto.InboundTypeSendMessage, 2, *text); err != nil {
					return err
				}
			}
			continue
		case proto.OutboundTypeError:
			if outbound.Error != nil {
				return fmt.Errorf("server error: %s (%s)", outbound.Error.Msg, outbound.Error.Code)
			}
			continue
		}

		raw, err := json.Marshal(outbound.Data)
		if err != nil {
			return fmt.Errorf("marshal outbound data: %w", err)
		}

		switch outbound.Event {
		case proto.EventNameMessage:
			var evt proto.EventMessage
			if unmarshalErr := json.Unmarshal(raw, &evt); unmarshalErr != nil {
				fmt.Printf("Raw data: %s\n", string(raw))
				return fmt.Errorf("unmarshal message: %w", unmarshalErr)
			}
			fmt.Printf("EventMessage: user=%s text=%q createdAt=%d\n", evt.Username, evt.Text, evt.CreatedAt)
			if evt.Username == *user && evt.Text == *text {
				return nil
			}
		case proto.EventNameRoomData:
			var evt proto.EventRoomData
			if err := json.Unmarshal(raw, &evt); err == nil {
				fmt.Printf("Roster: room=%s users=%d\n", evt.Room, len(evt.Users))
			}
		default:
			// keep looping for our own message
		}
	}
}
