package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RoomHandlers exposes read-only views of the live rooms.
type RoomHandlers struct {
	hub ChatHub
	log *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(hub ChatHub, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		hub: hub,
		log: logger,
	}
}

// RoomResponse represents an active room in API responses.
type RoomResponse struct {
	Name    string `json:"name"`
	Members int    `json:"members"`
}

// RoomsResponse lists active rooms.
type RoomsResponse struct {
	Online int            `json:"online"`
	Rooms  []RoomResponse `json:"rooms"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListRooms returns every room that currently has members.
// GET /api/rooms
func (h *RoomHandlers) ListRooms(c *gin.Context) {
	summaries := h.hub.Rooms()

	response := RoomsResponse{
		Online: h.hub.Online(),
		Rooms:  make([]RoomResponse, 0, len(summaries)),
	}
	for _, room := range summaries {
		response.Rooms = append(response.Rooms, RoomResponse{
			Name:    room.Name,
			Members: room.Members,
		})
	}

	h.log.Debug().Int("room_count", len(summaries)).Msg("rooms listed")
	c.JSON(http.StatusOK, response)
}

// ListUsers returns the roster of a room. A room without members yields an
// empty roster, never 404.
// GET /api/rooms/:room/users
func (h *RoomHandlers) ListUsers(c *gin.Context) {
	room := strings.TrimSpace(c.Param("room"))
	if room == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "room is required"})
		return
	}

	c.JSON(http.StatusOK, roomData(room, h.hub.UsersInRoom(room)))
}
