package core

import (
	"slices"
	"strings"
	"sync"
)

// RoomSummary describes a room that currently has members.
type RoomSummary struct {
	Name    string
	Members int
}

type registryEntry struct {
	user    User
	roomKey string
	nameKey string
}

// Registry maps connections to joined users. Rooms are derived from the
// users' room field; a room with no members has no entry at all.
type Registry struct {
	mu    sync.RWMutex
	users map[string]*registryEntry
	// rooms keeps members of each folded room key in join order.
	rooms map[string][]*registryEntry
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		users: make(map[string]*registryEntry),
		rooms: make(map[string][]*registryEntry),
	}
}

// AddUser registers connID as username in room. Both values are trimmed;
// uniqueness of the username is checked case-insensitively within the room.
func (r *Registry) AddUser(connID, username, room string) (User, error) {
	username = strings.TrimSpace(username)
	room = strings.TrimSpace(room)
	if username == "" || room == "" {
		return User{}, ErrValidation
	}

	entry := &registryEntry{
		user:    User{ConnID: connID, Username: username, Room: room},
		roomKey: foldKey(room),
		nameKey: foldKey(username),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[connID]; exists {
		return User{}, ErrAlreadyJoined
	}
	for _, member := range r.rooms[entry.roomKey] {
		if member.nameKey == entry.nameKey {
			return User{}, ErrDuplicateUsername
		}
	}

	r.users[connID] = entry
	r.rooms[entry.roomKey] = append(r.rooms[entry.roomKey], entry)
	return entry.user, nil
}

// RemoveUser deletes the user bound to connID. The boolean is false when the
// connection never joined.
func (r *Registry) RemoveUser(connID string) (User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.users[connID]
	if !ok {
		return User{}, false
	}
	delete(r.users, connID)

	members := r.rooms[entry.roomKey]
	for i, member := range members {
		if member == entry {
			members = append(members[:i:i], members[i+1:]...)
			break
		}
	}
	if len(members) == 0 {
		delete(r.rooms, entry.roomKey)
	} else {
		r.rooms[entry.roomKey] = members
	}

	return entry.user, true
}

// GetUser returns the user bound to connID.
func (r *Registry) GetUser(connID string) (User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.users[connID]
	if !ok {
		return User{}, false
	}
	return entry.user, true
}

// UsersInRoom returns a snapshot of the room's members in join order. Unknown
// rooms yield an empty, non-nil slice.
func (r *Registry) UsersInRoom(room string) []User {
	key := foldKey(room)

	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[key]
	users := make([]User, 0, len(members))
	for _, member := range members {
		users = append(users, member.user)
	}
	return users
}

// Rooms lists every room that has at least one member, sorted by name. The
// display name is the spelling used by the room's earliest member.
func (r *Registry) Rooms() []RoomSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]RoomSummary, 0, len(r.rooms))
	for _, members := range r.rooms {
		rooms = append(rooms, RoomSummary{
			Name:    members[0].user.Room,
			Members: len(members),
		})
	}
	slices.SortFunc(rooms, func(a, b RoomSummary) int {
		return strings.Compare(a.Name, b.Name)
	})
	return rooms
}

// Len returns the number of joined users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
