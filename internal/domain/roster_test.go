package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster_FirstPlayerIsHost(t *testing.T) {
	t.Parallel()

	r := NewRoster()
	require.NoError(t, r.Add(NewPlayer("p1", "alice", "red", "")))
	require.NoError(t, r.Add(NewPlayer("p2", "bob", "blue", "")))

	require.NotNil(t, r.Host())
	assert.Equal(t, "p1", r.Host().ID)
	assert.True(t, r.ByID("p1").IsHost)
	assert.False(t, r.ByID("p2").IsHost)
}

func TestRoster_RejectsDuplicateAndEmptyNicknames(t *testing.T) {
	t.Parallel()

	r := NewRoster()
	require.NoError(t, r.Add(NewPlayer("p1", "alice", "", "")))

	assert.ErrorIs(t, r.Add(NewPlayer("p2", "alice", "", "")), ErrNicknameTaken)
	assert.ErrorIs(t, r.Add(NewPlayer("p3", "   ", "", "")), ErrEmptyNickname)
	assert.Equal(t, 1, r.Len())
}

func TestRoster_RemoveHostPromotesEarliestJoiner(t *testing.T) {
	t.Parallel()

	r := NewRoster()
	require.NoError(t, r.Add(NewPlayer("p1", "alice", "", "")))
	require.NoError(t, r.Add(NewPlayer("p2", "bob", "", "")))
	require.NoError(t, r.Add(NewPlayer("p3", "carol", "", "")))

	require.NoError(t, r.Remove("p1"))

	assert.Equal(t, "p2", r.Host().ID)
	assert.True(t, r.ByID("p2").IsHost)
	assert.Equal(t, 2, r.Len())
}

func TestRoster_RemoveUnknown(t *testing.T) {
	t.Parallel()

	r := NewRoster()
	assert.ErrorIs(t, r.Remove("nobody"), ErrPlayerNotFound)
}

func TestRoster_RemoveLastPlayerClearsHost(t *testing.T) {
	t.Parallel()

	r := NewRoster()
	require.NoError(t, r.Add(NewPlayer("p1", "alice", "", "")))
	require.NoError(t, r.Remove("p1"))

	assert.Nil(t, r.Host())
	assert.Zero(t, r.Len())
}

func TestRoster_Alive(t *testing.T) {
	t.Parallel()

	r := NewRoster()
	for _, name := range []string{"alice", "bob", "carol"} {
		require.NoError(t, r.Add(NewPlayer("id-"+name, name, "", "")))
	}
	r.ByNickname("bob").Status = PlayerKilledByImpostor

	alive := r.Alive()
	require.Len(t, alive, 2)
	assert.Equal(t, "alice", alive[0].Nickname)
	assert.Equal(t, "carol", alive[1].Nickname)
	assert.Equal(t, 2, r.AliveCount())
}

func TestRoster_Clear(t *testing.T) {
	t.Parallel()

	r := NewRoster()
	require.NoError(t, r.Add(NewPlayer("p1", "alice", "", "")))
	r.Clear()

	assert.Zero(t, r.Len())
	assert.Nil(t, r.Host())

	// A cleared roster hands out the host role again
	require.NoError(t, r.Add(NewPlayer("p2", "bob", "", "")))
	assert.Equal(t, "p2", r.Host().ID)
}
