package core

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAddUserTrimsInputs(t *testing.T) {
	r := NewRegistry()

	added, err := r.AddUser("c1", "  Alice ", "\tLobby  ")
	require.NoError(t, err)
	assert.Equal(t, User{ConnID: "c1", Username: "Alice", Room: "Lobby"}, added)

	got, ok := r.GetUser("c1")
	require.True(t, ok)
	assert.Equal(t, "Alice", got.Username)
	assert.Equal(t, "Lobby", got.Room)
}

func TestRegistryAddUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		room     string
	}{
		{name: "empty username", username: "", room: "lobby"},
		{name: "blank username", username: "   ", room: "lobby"},
		{name: "empty room", username: "alice", room: ""},
		{name: "blank room", username: "alice", room: " \t"},
		{name: "both empty", username: "", room: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			_, err := r.AddUser("c1", tt.username, tt.room)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, 0, r.Len())
		})
	}
}

func TestRegistryDuplicateUsernameIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()

	_, err := r.AddUser("c1", "Alice", "R")
	require.NoError(t, err)

	_, err = r.AddUser("c2", "alice", "R")
	require.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = r.AddUser("c3", "ALICE", " r ")
	require.ErrorIs(t, err, ErrDuplicateUsername)

	// Rooms are independent namespaces.
	_, err = r.AddUser("c4", "Alice", "r2")
	require.NoError(t, err)

	assert.Equal(t, []string{"Alice"}, usernames(r.UsersInRoom("r")))
	assert.Equal(t, []string{"Alice"}, usernames(r.UsersInRoom("R2")))
}

func TestRegistryRejectsSecondJoinOnSameConnection(t *testing.T) {
	r := NewRegistry()

	_, err := r.AddUser("c1", "alice", "lobby")
	require.NoError(t, err)

	_, err = r.AddUser("c1", "bob", "other")
	require.ErrorIs(t, err, ErrAlreadyJoined)
	assert.Empty(t, r.UsersInRoom("other"))
}

func TestRegistryUsersInRoomReflectsJoinsAndRemovals(t *testing.T) {
	r := NewRegistry()

	names := []string{"ann", "ben", "cat", "dan", "eve"}
	for i, name := range names {
		_, err := r.AddUser(fmt.Sprintf("c%d", i), name, "Lobby")
		require.NoError(t, err)
	}
	_, err := r.AddUser("x", "zed", "elsewhere")
	require.NoError(t, err)

	for _, id := range []string{"c1", "c3"} {
		_, ok := r.RemoveUser(id)
		require.True(t, ok)
	}

	assert.Equal(t, []string{"ann", "cat", "eve"}, usernames(r.UsersInRoom("lobby")))
	assert.Equal(t, []string{"zed"}, usernames(r.UsersInRoom("ELSEWHERE")))
}

func TestRegistryRemoveUnknownConnection(t *testing.T) {
	r := NewRegistry()
	_, err := r.AddUser("c1", "alice", "lobby")
	require.NoError(t, err)

	_, ok := r.RemoveUser("ghost")
	assert.False(t, ok)
	assert.Equal(t, []string{"alice"}, usernames(r.UsersInRoom("lobby")))

	_, ok = r.GetUser("ghost")
	assert.False(t, ok)
}

func TestRegistryUnknownRoomIsEmpty(t *testing.T) {
	r := NewRegistry()

	users := r.UsersInRoom("nowhere")
	require.NotNil(t, users)
	assert.Empty(t, users)
}

func TestRegistryRoomDisappearsWhenEmpty(t *testing.T) {
	r := NewRegistry()

	_, err := r.AddUser("c1", "alice", "Lobby")
	require.NoError(t, err)
	_, err = r.AddUser("c2", "bob", "lobby")
	require.NoError(t, err)
	_, err = r.AddUser("c3", "cy", "Attic")
	require.NoError(t, err)

	assert.Equal(t, []RoomSummary{{Name: "Attic", Members: 1}, {Name: "Lobby", Members: 2}}, r.Rooms())

	r.RemoveUser("c3")
	assert.Equal(t, []RoomSummary{{Name: "Lobby", Members: 2}}, r.Rooms())

	// A removed name can be taken again.
	_, err = r.AddUser("c4", "CY", "attic")
	require.NoError(t, err)
}

func TestRegistryConcurrentJoinsAdmitOneName(t *testing.T) {
	r := NewRegistry()

	const workers = 32
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := r.AddUser(fmt.Sprintf("c%d", i), "Same", "room"); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Len(t, r.UsersInRoom("room"), 1)
}
