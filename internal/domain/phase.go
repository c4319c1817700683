package domain

// Phase represents the current phase of a game
type Phase string

const (
	PhaseLobby         Phase = "LOBBY"          // Waiting for players to join
	PhaseNight         Phase = "NIGHT"          // Impostors kill, medics save, detectives investigate
	PhaseDayDiscussion Phase = "DAY_DISCUSSION" // Everyone alive nominates someone for trial
	PhaseTrial         Phase = "TRIAL"          // Everyone but the defendant decides their fate
	PhaseEnded         Phase = "ENDED"          // A side has won
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// IsTimed reports whether the phase runs on a vote deadline
func (p Phase) IsTimed() bool {
	return p == PhaseNight || p == PhaseDayDiscussion || p == PhaseTrial
}

// Accepts reports whether a vote of kind may be cast during the phase
func (p Phase) Accepts(kind VoteKind) bool {
	switch p {
	case PhaseNight:
		return kind.IsNight()
	case PhaseDayDiscussion:
		return kind == VoteDay
	case PhaseTrial:
		return kind == VoteTrial
	default:
		return false
	}
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	if target == PhaseLobby {
		return true // reset is always allowed
	}

	validTransitions := map[Phase][]Phase{
		PhaseLobby:         {PhaseNight},
		PhaseNight:         {PhaseDayDiscussion, PhaseEnded},
		PhaseDayDiscussion: {PhaseTrial, PhaseNight},
		PhaseTrial:         {PhaseNight, PhaseEnded},
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}
