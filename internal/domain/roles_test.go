package domain

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounts_DefaultDistribution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		players int
		want    RoleCounts
	}{
		{4, RoleCounts{RoleImpostor: 1, RoleMedic: 1, RoleDetective: 1, RoleJester: 1, RoleCrewmate: 0}},
		{5, RoleCounts{RoleImpostor: 2, RoleMedic: 1, RoleDetective: 1, RoleJester: 1, RoleCrewmate: 0}},
		{6, RoleCounts{RoleImpostor: 2, RoleMedic: 1, RoleDetective: 1, RoleJester: 1, RoleCrewmate: 1}},
		{7, RoleCounts{RoleImpostor: 2, RoleMedic: 1, RoleDetective: 1, RoleJester: 1, RoleCrewmate: 2}},
		{8, RoleCounts{RoleImpostor: 2, RoleMedic: 1, RoleDetective: 1, RoleJester: 1, RoleCrewmate: 3}},
		{9, RoleCounts{RoleImpostor: 2, RoleMedic: 2, RoleDetective: 2, RoleJester: 1, RoleCrewmate: 2}},
		{10, RoleCounts{RoleImpostor: 2, RoleMedic: 2, RoleDetective: 2, RoleJester: 1, RoleCrewmate: 3}},
		{11, RoleCounts{RoleImpostor: 3, RoleMedic: 2, RoleDetective: 2, RoleJester: 2, RoleCrewmate: 2}},
		{15, RoleCounts{RoleImpostor: 3, RoleMedic: 2, RoleDetective: 2, RoleJester: 2, RoleCrewmate: 6}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d players", tt.players), func(t *testing.T) {
			got, err := DefaultRoleDistribution().Counts(tt.players)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Counts(%d) mismatch (-want +got):\n%s", tt.players, diff)
			}
			assert.Equal(t, tt.players, got.Total())
		})
	}
}

func TestCounts_NoPlayers(t *testing.T) {
	t.Parallel()

	_, err := DefaultRoleDistribution().Counts(0)
	assert.ErrorIs(t, err, ErrNoPlayers)
}

func TestCounts_NegativeCrewmates(t *testing.T) {
	t.Parallel()

	// Two players still get one impostor, medic, detective and jester each
	_, err := DefaultRoleDistribution().Counts(2)
	require.ErrorIs(t, err, ErrInvalidRoleConfig)
	assert.Contains(t, err.Error(), "-2 crewmates")
}

func TestCounts_ZeroDivisor(t *testing.T) {
	t.Parallel()

	d := DefaultRoleDistribution()
	d.MedicDivisor = 0

	_, err := d.Counts(8)
	assert.ErrorIs(t, err, ErrInvalidRoleConfig)
}

func TestAssignRoles_MatchesCounts(t *testing.T) {
	t.Parallel()

	for n := 4; n <= 15; n++ {
		players := make([]*Player, n)
		for i := range players {
			players[i] = NewPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("player%d", i), "", "")
		}

		counts, err := AssignRoles(players, DefaultRoleDistribution(), rand.New(rand.NewPCG(uint64(n), 7)))
		require.NoError(t, err)

		got := RoleCounts{}
		for _, p := range players {
			require.NotEmpty(t, p.Role, "player %s has no role", p.Nickname)
			got[p.Role]++
		}

		// RoleCounts carries zero entries that a tally never creates
		for role, c := range counts {
			assert.Equal(t, c, got[role], "n=%d role=%s", n, role)
		}
	}
}

func TestAssignRoles_EveryPlayerCanBeImpostor(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(42, 1024))
	impostorHits := make(map[string]int)

	for trial := 0; trial < 400; trial++ {
		players := []*Player{
			NewPlayer("p1", "alice", "", ""),
			NewPlayer("p2", "bob", "", ""),
			NewPlayer("p3", "carol", "", ""),
			NewPlayer("p4", "dave", "", ""),
		}

		_, err := AssignRoles(players, DefaultRoleDistribution(), rng)
		require.NoError(t, err)

		for _, p := range players {
			if p.Role == RoleImpostor {
				impostorHits[p.Nickname]++
			}
		}
	}

	for _, name := range []string{"alice", "bob", "carol", "dave"} {
		assert.Positive(t, impostorHits[name], "%s was never the impostor", name)
	}
}

func TestAssignRoles_TooFewPlayersLeavesRolesUntouched(t *testing.T) {
	t.Parallel()

	players := []*Player{NewPlayer("p1", "alice", "", "")}

	_, err := AssignRoles(players, DefaultRoleDistribution(), nil)
	require.ErrorIs(t, err, ErrInvalidRoleConfig)
	assert.Empty(t, players[0].Role)
}
