package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/roomrelay/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

type sender struct {
	conn *websocket.Conn
	ids  atomic.Int64
}

func (s *sender) send(ctx context.Context, typ string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", typ, err)
	}
	return wsjson.Write(ctx, s.conn, proto.Inbound{Type: typ, ID: s.ids.Add(1), Data: payload})
}

func run() error {
	addr := flag.String("addr", "ws://localhost:3000/ws", "WebSocket address")
	user := flag.String("user", "cli-user", "username")
	room := flag.String("room", "general", "room to join")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	s := &sender{conn: conn}
	if err := s.send(ctx, proto.InboundTypeJoin, proto.JoinData{Username: *user, Room: *room}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Printf("Connected to %s as %s in room %s\n", *addr, *user, *room)
	fmt.Println("Type messages and press Enter to send. /loc <lat> <lng> shares a location. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, s)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		switch outbound.Type {
		case proto.OutboundTypeAck, proto.OutboundTypeError:
			if outbound.Error != nil {
				fmt.Printf("! %s\n", outbound.Error.Msg)
			}
			continue
		}

		raw, err := json.Marshal(outbound.Data)
		if err != nil {
			log.Printf("marshal outbound data: %v", err)
			continue
		}

		switch outbound.Event {
		case proto.EventNameWelcome:
			var text string
			if err := json.Unmarshal(raw, &text); err == nil {
				fmt.Println(text)
			}
		case proto.EventNameMessage:
			var evt proto.EventMessage
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal message: %v", err)
				continue
			}
			fmt.Printf("%s %s: %s\n", clock(evt.CreatedAt), evt.Username, evt.Text)
		case proto.EventNameLocationMessage:
			var evt proto.EventLocationMessage
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal locationMessage: %v", err)
				continue
			}
			fmt.Printf("%s %s: %s\n", clock(evt.CreatedAt), evt.Username, evt.URL)
		case proto.EventNameRoomData:
			var evt proto.EventRoomData
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal roomData: %v", err)
				continue
			}
			names := make([]string, 0, len(evt.Users))
			for _, u := range evt.Users {
				names = append(names, u.Username)
			}
			fmt.Printf("[room %s] %s\n", evt.Room, strings.Join(names, ", "))
		default:
			fmt.Printf("event=%s data=%v\n", outbound.Event, outbound.Data)
		}
	}
}

func writeLoop(ctx context.Context, s *sender) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			var err error
			if rest, isLoc := strings.CutPrefix(text, "/loc "); isLoc {
				loc, parseErr := parseLocation(rest)
				if parseErr != nil {
					fmt.Printf("! %v\n", parseErr)
					continue
				}
				err = s.send(ctx, proto.InboundTypeSendLocation, loc)
			} else {
				err = s.send(ctx, proto.InboundTypeSendMessage, text)
			}
			if err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}

func parseLocation(s string) (proto.LocationData, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return proto.LocationData{}, errors.New("usage: /loc <lat> <lng>")
	}
	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return proto.LocationData{}, fmt.Errorf("latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return proto.LocationData{}, fmt.Errorf("longitude: %w", err)
	}
	return proto.LocationData{Latitude: lat, Longitude: lng}, nil
}

func clock(ms int64) string {
	return time.UnixMilli(ms).Format("3:04 pm")
}
