package domain

// VoteKind identifies which ballot a vote belongs to
type VoteKind string

const (
	VoteNightKill    VoteKind = "night-kill"
	VoteNightSave    VoteKind = "night-save"
	VoteNightSuspect VoteKind = "night-suspect"
	VoteDay          VoteKind = "day"
	VoteTrial        VoteKind = "trial"
)

// Abstain is the trial target meaning "execute nobody"
const Abstain = "no-confidence"

// IsValid reports whether k is a known vote kind
func (k VoteKind) IsValid() bool {
	switch k {
	case VoteNightKill, VoteNightSave, VoteNightSuspect, VoteDay, VoteTrial:
		return true
	default:
		return false
	}
}

// IsNight reports whether k is cast during the night
func (k VoteKind) IsNight() bool {
	return k == VoteNightKill || k == VoteNightSave || k == VoteNightSuspect
}

// HasQuorum reports whether casting k can end its phase before the timer.
// Night ballots always wait for the timer.
func (k VoteKind) HasQuorum() bool {
	return k == VoteDay || k == VoteTrial
}

// VoteTally holds one voter -> target map per vote kind for the current phase
type VoteTally struct {
	votes map[VoteKind]map[string]string
}

// NewVoteTally creates an empty tally
func NewVoteTally() *VoteTally {
	t := &VoteTally{}
	t.Reset()
	return t
}

// Cast records voter's choice for kind, replacing any earlier choice
func (t *VoteTally) Cast(kind VoteKind, voter, target string) {
	m, ok := t.votes[kind]
	if !ok {
		m = make(map[string]string)
		t.votes[kind] = m
	}
	m[voter] = target
}

// Count returns how many voters have cast a vote of kind
func (t *VoteTally) Count(kind VoteKind) int {
	return len(t.votes[kind])
}

// Votes returns a copy of the voter -> target map for kind
func (t *VoteTally) Votes(kind VoteKind) map[string]string {
	out := make(map[string]string, len(t.votes[kind]))
	for voter, target := range t.votes[kind] {
		out[voter] = target
	}
	return out
}

// Tally returns the most-voted target for kind.
// A shared maximum returns ("", true); no votes at all returns ("", false).
func (t *VoteTally) Tally(kind VoteKind) (winner string, tie bool) {
	counts := make(map[string]int)
	for _, target := range t.votes[kind] {
		counts[target]++
	}

	best := 0
	for target, n := range counts {
		switch {
		case n > best:
			best = n
			winner = target
			tie = false
		case n == best:
			tie = true
		}
	}

	if tie {
		return "", true
	}
	return winner, false
}

// QuorumReached reports whether every eligible voter has voted on kind
func (t *VoteTally) QuorumReached(kind VoteKind, eligible int) bool {
	if !kind.HasQuorum() || eligible <= 0 {
		return false
	}
	return t.Count(kind) >= eligible
}

// Reset clears every kind
func (t *VoteTally) Reset() {
	t.votes = make(map[VoteKind]map[string]string)
}
