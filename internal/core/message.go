package core

import (
	"fmt"
	"strconv"
	"time"
)

// AdminName is the sender shown on server-generated announcements.
const AdminName = "Admin"

// mapLinkTemplate receives latitude and longitude, in that order.
const mapLinkTemplate = "https://google.com/maps?q=%s,%s"

// Clock returns the current time. Swapped out in tests.
type Clock func() time.Time

// Message is the domain model for a chat message.
type Message struct {
	Username  string
	Text      string
	CreatedAt time.Time
}

// LocationMessage carries a map link to a shared position.
type LocationMessage struct {
	Username  string
	URL       string
	CreatedAt time.Time
}

// Coordinates is a geographic position as reported by the client.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// NewMessage stamps a text message with the current wall-clock time.
func NewMessage(username, text string) Message {
	return newMessageAt(time.Now, username, text)
}

// NewLocationMessage builds a map link for the given coordinates. Values are
// embedded as-is, out-of-range coordinates included.
func NewLocationMessage(username string, latitude, longitude float64) LocationMessage {
	return newLocationMessageAt(time.Now, username, latitude, longitude)
}

func newMessageAt(now Clock, username, text string) Message {
	return Message{
		Username:  username,
		Text:      text,
		CreatedAt: now(),
	}
}

func newLocationMessageAt(now Clock, username string, latitude, longitude float64) LocationMessage {
	return LocationMessage{
		Username:  username,
		URL:       MapURL(latitude, longitude),
		CreatedAt: now(),
	}
}

// MapURL renders the map link for a position.
func MapURL(latitude, longitude float64) string {
	return fmt.Sprintf(mapLinkTemplate, formatCoordinate(latitude), formatCoordinate(longitude))
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
