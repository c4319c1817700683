package domain

// Role represents a player's secret role for one game
type Role string

const (
	RoleCrewmate  Role = "CREWMATE"
	RoleImpostor  Role = "IMPOSTOR"
	RoleMedic     Role = "MEDIC"
	RoleDetective Role = "DETECTIVE"
	RoleJester    Role = "JESTER"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsImpostor returns true if this role is on the impostor team
func (r Role) IsImpostor() bool {
	return r == RoleImpostor
}

// IsCrewmateAligned reports whether the role plays for the crew.
// The jester is neither impostor- nor crewmate-aligned.
func (r Role) IsCrewmateAligned() bool {
	switch r {
	case RoleCrewmate, RoleMedic, RoleDetective:
		return true
	default:
		return false
	}
}

// NightVote returns the night vote kind this role may cast, if any
func (r Role) NightVote() (VoteKind, bool) {
	switch r {
	case RoleImpostor:
		return VoteNightKill, true
	case RoleMedic:
		return VoteNightSave, true
	case RoleDetective:
		return VoteNightSuspect, true
	default:
		return "", false
	}
}
