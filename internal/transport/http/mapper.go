package http

import (
	"encoding/json"

	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/proto"
)

// dispatchInbound decodes one client frame and runs it against the hub. The
// returned error is what the client should be acknowledged with.
func dispatchInbound(hub ChatHub, client *core.Client, inbound proto.Inbound) *proto.Error {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return badRequest("join expects {username, room}")
		}
		return protoError(hub.Join(client, core.JoinRequest{
			Username: join.Username,
			Room:     join.Room,
		}))
	case proto.InboundTypeSendMessage:
		var text string
		if err := json.Unmarshal(inbound.Data, &text); err != nil {
			return badRequest("sendMessage expects a string")
		}
		return protoError(hub.SendMessage(client, text))
	case proto.InboundTypeSendLocation:
		var loc proto.LocationData
		if err := json.Unmarshal(inbound.Data, &loc); err != nil {
			return badRequest("sendLocation expects {latitude, longitude}")
		}
		return protoError(hub.SendLocation(client, core.Coordinates{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		}))
	default:
		return &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}
	}
}

// replyFor builds the frame answering an inbound message, if any. Messages
// without an ID only get a reply when they failed.
func replyFor(inbound proto.Inbound, protoErr *proto.Error) (proto.Outbound, bool) {
	if inbound.ID != 0 {
		return proto.Outbound{Type: proto.OutboundTypeAck, ID: inbound.ID, Error: protoErr}, true
	}
	if protoErr != nil {
		return proto.Outbound{Type: proto.OutboundTypeError, Error: protoErr}, true
	}
	return proto.Outbound{}, false
}

func protoError(err error) *proto.Error {
	ce := core.AsCoreError(err)
	if ce == nil {
		return nil
	}
	return &proto.Error{Code: ce.Code, Msg: ce.Message}
}

func badRequest(msg string) *proto.Error {
	return &proto.Error{Code: core.ErrCodeBadRequest, Msg: msg}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventWelcome:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameWelcome,
			Data:  event.Text,
		}
	case core.EventMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameMessage,
			Data: proto.EventMessage{
				Username:  event.Message.Username,
				Text:      event.Message.Text,
				CreatedAt: event.Message.CreatedAt.UnixMilli(),
			},
		}
	case core.EventLocationMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameLocationMessage,
			Data: proto.EventLocationMessage{
				Username:  event.Location.Username,
				URL:       event.Location.URL,
				CreatedAt: event.Location.CreatedAt.UnixMilli(),
			},
		}
	case core.EventRoomData:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameRoomData,
			Data:  roomData(event.Room, event.Users),
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func roomData(room string, users []core.User) proto.EventRoomData {
	roster := make([]proto.RoomUser, 0, len(users))
	for _, u := range users {
		roster = append(roster, proto.RoomUser{Username: u.Username, Room: u.Room})
	}
	return proto.EventRoomData{Room: room, Users: roster}
}
