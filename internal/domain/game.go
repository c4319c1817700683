package domain

import (
	"math/rand/v2"
	"time"
)

// GameSettings holds configurable game parameters
type GameSettings struct {
	MinPlayers    int              `json:"minPlayers"`
	MaxPlayers    int              `json:"maxPlayers"`
	NightDuration time.Duration    `json:"nightDuration"`
	DayDuration   time.Duration    `json:"dayDuration"`
	TrialDuration time.Duration    `json:"trialDuration"`
	Roles         RoleDistribution `json:"roles"`
}

// DefaultGameSettings returns the default game settings
func DefaultGameSettings() GameSettings {
	return GameSettings{
		MinPlayers:    4,
		MaxPlayers:    15,
		NightDuration: 30 * time.Second,
		DayDuration:   90 * time.Second,
		TrialDuration: 30 * time.Second,
		Roles:         DefaultRoleDistribution(),
	}
}

// PhaseDuration returns how long votes stay open in phase p
func (s GameSettings) PhaseDuration(p Phase) time.Duration {
	switch p {
	case PhaseNight:
		return s.NightDuration
	case PhaseDayDiscussion:
		return s.DayDuration
	case PhaseTrial:
		return s.TrialDuration
	default:
		return 0
	}
}

// Game represents a room: its roster, ballots and phase
type Game struct {
	ID        string       `json:"id"`
	Roster    *Roster      `json:"-"`
	Votes     *VoteTally   `json:"-"`
	Phase     Phase        `json:"phase"`
	Instance  uint64       `json:"instance"`
	Round     int          `json:"round"`
	Defendant string       `json:"defendant,omitempty"`
	Winner    *Win         `json:"winner,omitempty"`
	Settings  GameSettings `json:"settings"`
	CreatedAt time.Time    `json:"createdAt"`
}

// PhaseResult is the outcome of resolving one phase instance
type PhaseResult struct {
	Phase     Phase
	Instance  uint64
	Killed    *Player // night victim or executed defendant
	Defendant *Player // chosen by the day discussion
	Abstained bool    // trial ended without an execution
	Win       *Win
	Next      Phase
}

// NewGame creates a new game with the given ID
func NewGame(id string, settings GameSettings) *Game {
	return &Game{
		ID:        id,
		Roster:    NewRoster(),
		Votes:     NewVoteTally(),
		Phase:     PhaseLobby,
		Settings:  settings,
		CreatedAt: time.Now(),
	}
}

// AddPlayer adds a player to the lobby
func (g *Game) AddPlayer(playerID, nickname, color, wallet string) (*Player, error) {
	if g.Phase != PhaseLobby {
		return nil, ErrGameAlreadyStarted
	}

	if g.Roster.Len() >= g.Settings.MaxPlayers {
		return nil, ErrGameFull
	}

	player := NewPlayer(playerID, nickname, color, wallet)
	if err := g.Roster.Add(player); err != nil {
		return nil, err
	}

	return player, nil
}

// RemovePlayer removes a player who leaves before the game starts or after it ends
func (g *Game) RemovePlayer(playerID string) error {
	if g.Phase != PhaseLobby && g.Phase != PhaseEnded {
		return ErrGameAlreadyStarted
	}
	return g.Roster.Remove(playerID)
}

// GetPlayer returns a player by ID
func (g *Game) GetPlayer(playerID string) (*Player, error) {
	player := g.Roster.ByID(playerID)
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	return player, nil
}

// IsHost checks if the given player is the host
func (g *Game) IsHost(playerID string) bool {
	host := g.Roster.Host()
	return host != nil && host.ID == playerID
}

// CanStart checks if the game can be started
func (g *Game) CanStart() bool {
	return g.Phase == PhaseLobby && g.Roster.Len() >= g.Settings.MinPlayers
}

// Start assigns roles and enters the first night
func (g *Game) Start(rng *rand.Rand) (RoleCounts, error) {
	if g.Phase != PhaseLobby {
		return nil, ErrGameAlreadyStarted
	}

	if g.Roster.Len() < g.Settings.MinPlayers {
		return nil, ErrNotEnoughPlayers
	}

	players := g.Roster.Players()
	for _, p := range players {
		p.ResetForNewGame()
	}

	counts, err := AssignRoles(players, g.Settings.Roles, rng)
	if err != nil {
		for _, p := range players {
			p.ResetForNewGame()
		}
		return nil, err
	}

	g.Round = 0
	g.Winner = nil
	if err := g.enterPhase(PhaseNight); err != nil {
		return nil, err
	}

	return counts, nil
}

// enterPhase moves to target, opening a fresh phase instance with empty ballots
func (g *Game) enterPhase(target Phase) error {
	if !g.Phase.CanTransitionTo(target) {
		return ErrInvalidTransition
	}

	g.Phase = target
	g.Instance++
	g.Votes.Reset()

	if target == PhaseNight {
		g.Round++
		g.Defendant = ""
	}

	return nil
}

// CastVote records a vote of kind from voterID for the target nickname
func (g *Game) CastVote(kind VoteKind, voterID, target string) (*Player, error) {
	if !kind.IsValid() || !g.Phase.Accepts(kind) {
		return nil, ErrInvalidPhase
	}

	voter := g.Roster.ByID(voterID)
	if voter == nil || !voter.IsAlive() {
		return nil, ErrUnknownPlayer
	}

	if kind.IsNight() {
		if allowed, ok := voter.Role.NightVote(); !ok || allowed != kind {
			return nil, ErrRoleCannotVote
		}
	}

	if kind == VoteTrial && voter.Nickname == g.Defendant {
		return nil, ErrDefendantCannotVote
	}

	if !(kind == VoteTrial && target == Abstain) {
		votee := g.Roster.ByNickname(target)
		if votee == nil || !votee.IsAlive() {
			return nil, ErrUnknownPlayer
		}
	}

	g.Votes.Cast(kind, voter.Nickname, target)

	return voter, nil
}

// QuorumReached reports whether the current phase can end before its timer
func (g *Game) QuorumReached() bool {
	alive := g.Roster.AliveCount()

	switch g.Phase {
	case PhaseDayDiscussion:
		return g.Votes.QuorumReached(VoteDay, alive)
	case PhaseTrial:
		return g.Votes.QuorumReached(VoteTrial, alive-1)
	default:
		return false
	}
}

// Resolve ends the current phase: it applies the ballots, checks for a
// winner after any elimination, and enters the next phase.
// The timer path and the quorum path both end up here.
func (g *Game) Resolve() (*PhaseResult, error) {
	if !g.Phase.IsTimed() {
		return nil, ErrInvalidPhase
	}

	result := &PhaseResult{Phase: g.Phase, Instance: g.Instance}

	switch g.Phase {
	case PhaseNight:
		result.Killed = g.resolveNight()
		result.Next = PhaseDayDiscussion
	case PhaseDayDiscussion:
		result.Defendant = g.resolveDay()
		if result.Defendant != nil {
			g.Defendant = result.Defendant.Nickname
			result.Next = PhaseTrial
		} else {
			result.Next = PhaseNight
		}
	case PhaseTrial:
		result.Killed = g.resolveTrial()
		result.Abstained = result.Killed == nil
		result.Next = PhaseNight
	}

	if result.Killed != nil {
		if win := EvaluateWin(g.Roster); win != nil {
			result.Win = win
			result.Next = PhaseEnded
			g.Winner = win
		}
	}

	if err := g.enterPhase(result.Next); err != nil {
		return nil, err
	}

	return result, nil
}

// resolveNight kills the impostors' pick unless a medic saved the same player
func (g *Game) resolveNight() *Player {
	kill, _ := g.Votes.Tally(VoteNightKill)
	save, _ := g.Votes.Tally(VoteNightSave)

	if kill == "" || kill == save {
		return nil
	}

	victim := g.Roster.ByNickname(kill)
	if victim == nil || !victim.IsAlive() {
		return nil
	}

	victim.Status = PlayerKilledByImpostor
	return victim
}

// resolveDay picks the defendant, or nobody on a tie or silence
func (g *Game) resolveDay() *Player {
	nominee, _ := g.Votes.Tally(VoteDay)
	if nominee == "" {
		return nil
	}

	defendant := g.Roster.ByNickname(nominee)
	if defendant == nil || !defendant.IsAlive() {
		return nil
	}
	return defendant
}

// resolveTrial executes the trial's pick; a tie or silence counts as abstain
func (g *Game) resolveTrial() *Player {
	verdict, _ := g.Votes.Tally(VoteTrial)
	if verdict == "" || verdict == Abstain {
		return nil
	}

	executed := g.Roster.ByNickname(verdict)
	if executed == nil || !executed.IsAlive() {
		return nil
	}

	executed.Status = PlayerKilledByTown
	return executed
}

// Reset returns the room to an empty lobby, invalidating the running phase instance
func (g *Game) Reset() {
	g.Phase = PhaseLobby
	g.Instance++
	g.Round = 0
	g.Defendant = ""
	g.Winner = nil
	g.Votes.Reset()
	g.Roster.Clear()
}

// Impostors returns the players holding the impostor role
func (g *Game) Impostors() []*Player {
	var impostors []*Player
	for _, p := range g.Roster.Players() {
		if p.Role.IsImpostor() {
			impostors = append(impostors, p)
		}
	}
	return impostors
}

// GetLobbyState returns the current roster state for broadcasting
func (g *Game) GetLobbyState() *RosterUpdatedPayload {
	hostID := ""
	if host := g.Roster.Host(); host != nil {
		hostID = host.ID
	}

	return &RosterUpdatedPayload{
		Players:  g.Roster.Infos(),
		HostID:   hostID,
		CanStart: g.CanStart(),
	}
}

// GetVoteState returns the public ballot for kind
func (g *Game) GetVoteState(kind VoteKind) *VoteTallyPayload {
	return &VoteTallyPayload{
		Kind:  kind,
		Votes: g.Votes.Votes(kind),
	}
}
