package domain

import (
	"fmt"
	"math/rand/v2"
)

// RoleDistribution holds the divisors that size each role for a player count
type RoleDistribution struct {
	ImpostorThreshold   int `json:"impostorThreshold" yaml:"impostor_threshold"`
	ImpostorDivisorLow  int `json:"impostorDivisorLow" yaml:"impostor_divisor_low"`
	ImpostorDivisorHigh int `json:"impostorDivisorHigh" yaml:"impostor_divisor_high"`
	MedicDivisor        int `json:"medicDivisor" yaml:"medic_divisor"`
	DetectiveDivisor    int `json:"detectiveDivisor" yaml:"detective_divisor"`
	JesterDivisor       int `json:"jesterDivisor" yaml:"jester_divisor"`
}

// DefaultRoleDistribution returns divisors that leave at least zero crewmates from 4 players up
func DefaultRoleDistribution() RoleDistribution {
	return RoleDistribution{
		ImpostorThreshold:   8,
		ImpostorDivisorLow:  4,
		ImpostorDivisorHigh: 5,
		MedicDivisor:        8,
		DetectiveDivisor:    8,
		JesterDivisor:       10,
	}
}

// RoleCounts is how many players receive each role
type RoleCounts map[Role]int

// Total returns the number of role slots
func (c RoleCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// roleOrder fixes the order slots are laid out in before assignment
var roleOrder = []Role{RoleImpostor, RoleMedic, RoleDetective, RoleJester, RoleCrewmate}

// Counts computes the role multiset for n players
func (d RoleDistribution) Counts(n int) (RoleCounts, error) {
	if n <= 0 {
		return nil, ErrNoPlayers
	}
	if d.ImpostorDivisorLow <= 0 || d.ImpostorDivisorHigh <= 0 ||
		d.MedicDivisor <= 0 || d.DetectiveDivisor <= 0 || d.JesterDivisor <= 0 {
		return nil, fmt.Errorf("%w: divisors must be positive", ErrInvalidRoleConfig)
	}

	impostorDivisor := d.ImpostorDivisorHigh
	if n < d.ImpostorThreshold {
		impostorDivisor = d.ImpostorDivisorLow
	}

	counts := RoleCounts{
		RoleImpostor:  ceilDiv(n, impostorDivisor),
		RoleMedic:     ceilDiv(n, d.MedicDivisor),
		RoleDetective: ceilDiv(n, d.DetectiveDivisor),
		RoleJester:    ceilDiv(n, d.JesterDivisor),
	}

	crewmates := n - counts.Total()
	if crewmates < 0 {
		return nil, fmt.Errorf("%w: %d players leave %d crewmates (impostor=%d medic=%d detective=%d jester=%d)",
			ErrInvalidRoleConfig, n, crewmates,
			counts[RoleImpostor], counts[RoleMedic], counts[RoleDetective], counts[RoleJester])
	}
	counts[RoleCrewmate] = crewmates

	return counts, nil
}

// AssignRoles gives every player exactly one role from the distribution's multiset.
// Each step pairs a uniformly random remaining player with a uniformly random
// remaining slot, so every permutation is reachable. A nil rng uses the global source.
func AssignRoles(players []*Player, d RoleDistribution, rng *rand.Rand) (RoleCounts, error) {
	counts, err := d.Counts(len(players))
	if err != nil {
		return nil, err
	}

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}

	slots := make([]Role, 0, len(players))
	for _, role := range roleOrder {
		for i := 0; i < counts[role]; i++ {
			slots = append(slots, role)
		}
	}

	remaining := make([]*Player, len(players))
	copy(remaining, players)

	for len(slots) > 0 {
		slotIdx := intN(len(slots))
		playerIdx := intN(len(remaining))

		remaining[playerIdx].Role = slots[slotIdx]

		slots[slotIdx] = slots[len(slots)-1]
		slots = slots[:len(slots)-1]
		remaining[playerIdx] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}

	return counts, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
