package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndFind(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Insert(New("c1", "r1", "alice")))

	got, err := r.FindByConnection("c1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "r1", got.RoomID)
	assert.Equal(t, StatusOnline, got.Status)
	assert.False(t, got.Typing)
	assert.Zero(t, got.CursorPosition)
}

func TestInsertDuplicateConnection(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Insert(New("c1", "r1", "alice")))

	err := r.Insert(New("c1", "r2", "bob"))
	require.ErrorIs(t, err, ErrDuplicateConnection)

	// The original session must be untouched.
	got, err := r.FindByConnection("c1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestRemoveByConnection(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Insert(New("c1", "r1", "alice")))

	removed, err := r.RemoveByConnection("c1")
	require.NoError(t, err)
	assert.Equal(t, "alice", removed.Username)

	_, err = r.FindByConnection("c1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.RemoveByConnection("c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByRoomJoinOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Insert(New("c1", "r1", "alice")))
	require.NoError(t, r.Insert(New("c2", "r2", "carol")))
	require.NoError(t, r.Insert(New("c3", "r1", "bob")))

	names := func(roomID string) []string {
		var out []string
		for _, s := range r.ListByRoom(roomID) {
			out = append(out, s.Username)
		}
		return out
	}

	assert.Equal(t, []string{"alice", "bob"}, names("r1"))
	assert.Equal(t, []string{"carol"}, names("r2"))
	assert.Empty(t, names("nope"))

	// Removal keeps the remaining order stable.
	_, err := r.RemoveByConnection("c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, names("r1"))
}

func TestUsernameTaken(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Insert(New("c1", "r1", "alice")))

	assert.True(t, r.UsernameTaken("r1", "alice"))
	assert.False(t, r.UsernameTaken("r2", "alice"))
	assert.False(t, r.UsernameTaken("r1", "bob"))

	// Empty usernames are ordinary values.
	require.NoError(t, r.Insert(New("c2", "r1", "")))
	assert.True(t, r.UsernameTaken("r1", ""))
}

func TestSetTyping(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Insert(New("c1", "r1", "alice")))

	got, err := r.SetTyping("c1", true, 42)
	require.NoError(t, err)
	assert.True(t, got.Typing)
	assert.Equal(t, 42, got.CursorPosition)

	// Persisted, not just returned.
	found, err := r.FindByConnection("c1")
	require.NoError(t, err)
	assert.True(t, found.Typing)

	_, err = r.SetTyping("ghost", true, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}
