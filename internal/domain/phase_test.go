package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhase_CanTransitionTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to Phase
		want     bool
	}{
		{PhaseLobby, PhaseNight, true},
		{PhaseLobby, PhaseDayDiscussion, false},
		{PhaseNight, PhaseDayDiscussion, true},
		{PhaseNight, PhaseEnded, true},
		{PhaseNight, PhaseTrial, false},
		{PhaseDayDiscussion, PhaseTrial, true},
		{PhaseDayDiscussion, PhaseNight, true},
		{PhaseDayDiscussion, PhaseEnded, false},
		{PhaseTrial, PhaseNight, true},
		{PhaseTrial, PhaseEnded, true},
		{PhaseTrial, PhaseDayDiscussion, false},
		{PhaseEnded, PhaseNight, false},
		{PhaseEnded, PhaseLobby, true},
		{PhaseTrial, PhaseLobby, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPhase_Accepts(t *testing.T) {
	t.Parallel()

	assert.True(t, PhaseNight.Accepts(VoteNightKill))
	assert.True(t, PhaseNight.Accepts(VoteNightSave))
	assert.True(t, PhaseNight.Accepts(VoteNightSuspect))
	assert.False(t, PhaseNight.Accepts(VoteDay))

	assert.True(t, PhaseDayDiscussion.Accepts(VoteDay))
	assert.False(t, PhaseDayDiscussion.Accepts(VoteTrial))

	assert.True(t, PhaseTrial.Accepts(VoteTrial))
	assert.False(t, PhaseTrial.Accepts(VoteNightKill))

	assert.False(t, PhaseLobby.Accepts(VoteDay))
	assert.False(t, PhaseEnded.Accepts(VoteTrial))
}

func TestRole_NightVote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role   Role
		want   VoteKind
		wantOK bool
	}{
		{RoleImpostor, VoteNightKill, true},
		{RoleMedic, VoteNightSave, true},
		{RoleDetective, VoteNightSuspect, true},
		{RoleCrewmate, "", false},
		{RoleJester, "", false},
	}

	for _, tt := range tests {
		kind, ok := tt.role.NightVote()
		assert.Equal(t, tt.want, kind, tt.role.String())
		assert.Equal(t, tt.wantOK, ok, tt.role.String())
	}
}
