package domain

// Win is a finished game's winning role and the players sharing it
type Win struct {
	Role    Role      `json:"role"`
	Members []*Player `json:"-"`
}

// MemberNicknames lists the winners by nickname
func (w *Win) MemberNicknames() []string {
	names := make([]string, 0, len(w.Members))
	for _, p := range w.Members {
		names = append(names, p.Nickname)
	}
	return names
}

// EvaluateWin returns the winner for the roster's current state, or nil
// while the game should go on. It reads the roster only.
func EvaluateWin(r *Roster) *Win {
	for _, p := range r.players {
		if p.Role == RoleJester && p.Status == PlayerKilledByTown {
			return &Win{Role: RoleJester, Members: []*Player{p}}
		}
	}

	var impostors, crew []*Player
	nonImpostors := 0
	for _, p := range r.players {
		if !p.IsAlive() {
			continue
		}
		if p.Role.IsImpostor() {
			impostors = append(impostors, p)
			continue
		}
		nonImpostors++
		if p.Role.IsCrewmateAligned() {
			crew = append(crew, p)
		}
	}

	if nonImpostors <= 1 {
		return &Win{Role: RoleImpostor, Members: impostors}
	}
	if len(impostors) == 0 {
		return &Win{Role: RoleCrewmate, Members: crew}
	}
	return nil
}
