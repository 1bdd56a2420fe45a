package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMessageStampsCreationTime(t *testing.T) {
	before := time.Now()
	msg := NewMessage("bob", "hello")
	after := time.Now()

	assert.Equal(t, "bob", msg.Username)
	assert.Equal(t, "hello", msg.Text)
	assert.False(t, msg.CreatedAt.Before(before))
	assert.False(t, msg.CreatedAt.After(after))
}

func TestNewLocationMessageURL(t *testing.T) {
	msg := NewLocationMessage("bob", 10.5, -20.25)

	assert.Equal(t, "bob", msg.Username)
	assert.Equal(t, "https://google.com/maps?q=10.5,-20.25", msg.URL)
	assert.False(t, msg.CreatedAt.IsZero())
}

func TestMapURLPassesCoordinatesThrough(t *testing.T) {
	tests := []struct {
		lat, lng float64
		want     string
	}{
		{lat: 0, lng: 0, want: "q=0,0"},
		{lat: 52.520008, lng: 13.404954, want: "q=52.520008,13.404954"},
		{lat: 123.4, lng: -540, want: "q=123.4,-540"},
	}

	for _, tt := range tests {
		got := MapURL(tt.lat, tt.lng)
		assert.True(t, strings.HasSuffix(got, tt.want), "got %s", got)
	}
}

func TestMessageClockIsInjectable(t *testing.T) {
	msg := newMessageAt(fixedClock, "a", "b")
	loc := newLocationMessageAt(fixedClock, "a", 1, 2)

	assert.Equal(t, fixedTime, msg.CreatedAt)
	assert.Equal(t, fixedTime, loc.CreatedAt)
}
