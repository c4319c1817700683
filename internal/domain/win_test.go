package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seat struct {
	nickname string
	role     Role
	status   PlayerStatus
}

func rosterOf(t *testing.T, seats ...seat) *Roster {
	t.Helper()

	r := NewRoster()
	for _, s := range seats {
		p := NewPlayer("id-"+s.nickname, s.nickname, "", "")
		p.Role = s.role
		p.Status = s.status
		require.NoError(t, r.Add(p))
	}
	return r
}

func TestEvaluateWin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		seats       []seat
		wantRole    Role
		wantMembers []string
	}{
		{
			name: "game goes on",
			seats: []seat{
				{"alice", RoleImpostor, PlayerAlive},
				{"bob", RoleCrewmate, PlayerAlive},
				{"carol", RoleMedic, PlayerAlive},
			},
		},
		{
			name: "jester executed by the town",
			seats: []seat{
				{"alice", RoleImpostor, PlayerAlive},
				{"bob", RoleJester, PlayerKilledByTown},
				{"carol", RoleCrewmate, PlayerAlive},
				{"dave", RoleCrewmate, PlayerAlive},
			},
			wantRole:    RoleJester,
			wantMembers: []string{"bob"},
		},
		{
			name: "jester killed at night does not win",
			seats: []seat{
				{"alice", RoleImpostor, PlayerAlive},
				{"bob", RoleJester, PlayerKilledByImpostor},
				{"carol", RoleCrewmate, PlayerAlive},
				{"dave", RoleCrewmate, PlayerAlive},
			},
		},
		{
			name: "impostors outlast the town",
			seats: []seat{
				{"alice", RoleImpostor, PlayerAlive},
				{"bob", RoleImpostor, PlayerAlive},
				{"carol", RoleCrewmate, PlayerAlive},
				{"dave", RoleMedic, PlayerKilledByImpostor},
				{"erin", RoleDetective, PlayerKilledByTown},
			},
			wantRole:    RoleImpostor,
			wantMembers: []string{"alice", "bob"},
		},
		{
			name: "a living jester counts toward the town",
			seats: []seat{
				{"alice", RoleImpostor, PlayerAlive},
				{"bob", RoleJester, PlayerAlive},
				{"carol", RoleCrewmate, PlayerAlive},
			},
		},
		{
			name: "last impostor removed",
			seats: []seat{
				{"alice", RoleImpostor, PlayerKilledByTown},
				{"bob", RoleJester, PlayerAlive},
				{"carol", RoleCrewmate, PlayerAlive},
				{"dave", RoleMedic, PlayerAlive},
				{"erin", RoleDetective, PlayerKilledByImpostor},
			},
			wantRole:    RoleCrewmate,
			wantMembers: []string{"carol", "dave"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win := EvaluateWin(rosterOf(t, tt.seats...))

			if tt.wantRole == "" {
				assert.Nil(t, win)
				return
			}

			require.NotNil(t, win)
			assert.Equal(t, tt.wantRole, win.Role)
			if diff := cmp.Diff(tt.wantMembers, win.MemberNicknames()); diff != "" {
				t.Errorf("winners mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvaluateWin_ReadsOnly(t *testing.T) {
	t.Parallel()

	r := rosterOf(t,
		seat{"alice", RoleImpostor, PlayerAlive},
		seat{"bob", RoleCrewmate, PlayerAlive},
		seat{"carol", RoleCrewmate, PlayerKilledByImpostor},
	)

	first := EvaluateWin(r)
	second := EvaluateWin(r)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Role, second.Role)
	assert.Equal(t, first.MemberNicknames(), second.MemberNicknames())
	assert.Equal(t, PlayerAlive, r.ByNickname("bob").Status)
}
