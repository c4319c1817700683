package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suspects/internal/domain"
)

func newTestHub(t *testing.T, opts ...HubOption) *GameHub {
	t.Helper()

	opts = append([]HubOption{WithScheduler(&fakeScheduler{})}, opts...)
	hub := NewGameHub(domain.DefaultGameSettings(), discardLogger(), opts...)
	t.Cleanup(hub.Close)
	return hub
}

func TestHub_CreateGameCodesAreUnique(t *testing.T) {
	t.Parallel()

	hub := newTestHub(t)
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		session, err := hub.CreateGame()
		require.NoError(t, err)

		code := session.GetRoomCode()
		assert.Len(t, code, DefaultRoomCodeLength)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(RoomCodeChars, ch), "unexpected %q in %s", ch, code)
		}
		assert.False(t, seen[code], "duplicate room code %s", code)
		seen[code] = true
	}

	assert.Equal(t, 100, hub.GetSessionCount())
}

func TestHub_WithRoomCodeLength(t *testing.T) {
	t.Parallel()

	hub := newTestHub(t, WithRoomCodeLength(4))

	session, err := hub.CreateGame()
	require.NoError(t, err)
	assert.Len(t, session.GetRoomCode(), 4)
}

func TestHub_GetSession(t *testing.T) {
	t.Parallel()

	hub := newTestHub(t)
	session, err := hub.CreateGame()
	require.NoError(t, err)

	got, err := hub.GetSession(session.GetRoomCode())
	require.NoError(t, err)
	assert.Same(t, session, got)

	_, err = hub.GetSession("NOPE42")
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestHub_ResetSession(t *testing.T) {
	t.Parallel()

	hub := newTestHub(t)
	session, err := hub.CreateGame()
	require.NoError(t, err)

	_, err = session.AddPlayer("p1", "alice", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, hub.GetTotalPlayerCount())

	require.NoError(t, hub.ResetSession(session.GetRoomCode()))
	assert.Zero(t, hub.GetTotalPlayerCount())
	assert.Equal(t, 1, hub.GetSessionCount(), "reset keeps the room")

	assert.ErrorIs(t, hub.ResetSession("NOPE42"), domain.ErrGameNotFound)
}

func TestHub_DeleteSession(t *testing.T) {
	t.Parallel()

	hub := newTestHub(t)
	session, err := hub.CreateGame()
	require.NoError(t, err)

	hub.DeleteSession(session.GetRoomCode())

	_, err = hub.GetSession(session.GetRoomCode())
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestHub_RemoveStaleGames(t *testing.T) {
	t.Parallel()

	hub := newTestHub(t)

	stale, err := hub.CreateGame()
	require.NoError(t, err)

	occupied, err := hub.CreateGame()
	require.NoError(t, err)
	_, err = occupied.AddPlayer("p1", "alice", "", "")
	require.NoError(t, err)

	fresh, err := hub.CreateGame()
	require.NoError(t, err)

	later := time.Now().Add(StaleGameTimeout + time.Minute)
	fresh.game.CreatedAt = later.Add(-time.Minute)

	removed := hub.removeStaleGames(later)
	assert.Equal(t, 1, removed)

	_, err = hub.GetSession(stale.GetRoomCode())
	assert.ErrorIs(t, err, domain.ErrGameNotFound)

	for _, s := range []*GameSession{occupied, fresh} {
		_, err = hub.GetSession(s.GetRoomCode())
		assert.NoError(t, err)
	}
}
