package domain

import "time"

// EventType represents the type of game event
type EventType string

const (
	EventRosterUpdated     EventType = "ROSTER_UPDATED"
	EventLobbyReady        EventType = "LOBBY_READY"
	EventPlayerReconnected EventType = "PLAYER_RECONNECTED"
	EventRoleAssigned      EventType = "ROLE_ASSIGNED"
	EventPhaseStarted      EventType = "PHASE_STARTED"
	EventVoteTallyUpdated  EventType = "VOTE_TALLY_UPDATED"
	EventSuspectRevealed   EventType = "SUSPECT_REVEALED"
	EventPhaseEnded        EventType = "PHASE_ENDED"
	EventGameOver          EventType = "GAME_OVER"
	EventRoomReset         EventType = "ROOM_RESET"
)

// GameEvent represents an event that occurred in the game
type GameEvent struct {
	Type      EventType   `json:"type"`
	GameID    string      `json:"gameId"`
	PlayerID  string      `json:"playerId,omitempty"` // If event is player-specific
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new game event
func NewEvent(eventType EventType, gameID string, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		GameID:    gameID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewPlayerEvent creates a new player-specific game event
func NewPlayerEvent(eventType EventType, gameID, playerID string, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		GameID:    gameID,
		PlayerID:  playerID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// Payload types for different events

// RosterUpdatedPayload is sent when the roster changes
type RosterUpdatedPayload struct {
	Players  []PlayerInfo `json:"players"`
	HostID   string       `json:"hostId"`
	CanStart bool         `json:"canStart"`
}

// LobbyReadyPayload tells the host the game can be started
type LobbyReadyPayload struct {
	PlayerCount int `json:"playerCount"`
	MinPlayers  int `json:"minPlayers"`
}

// RoleAssignedPayload is sent to each player with their role
type RoleAssignedPayload struct {
	Role      Role     `json:"role"`
	Teammates []string `json:"teammates,omitempty"` // Other impostors, only for impostors
}

// PhaseStartedPayload is sent when a timed phase opens its ballots
type PhaseStartedPayload struct {
	Phase          Phase  `json:"phase"`
	Round          int    `json:"round"`
	VoteDeadlineMs int64  `json:"voteDeadlineMs"`
	Defendant      string `json:"defendant,omitempty"`
}

// VoteTallyPayload carries the voter -> target map for one ballot
type VoteTallyPayload struct {
	Kind  VoteKind          `json:"kind"`
	Votes map[string]string `json:"votes"`
}

// SuspectRevealedPayload answers a detective's investigation
type SuspectRevealedPayload struct {
	Suspect    string `json:"suspect"`
	IsImpostor bool   `json:"isImpostor"`
}

// PhaseEndedPayload describes how a phase resolved.
// Nil pointers encode "nobody".
type PhaseEndedPayload struct {
	Phase           Phase   `json:"phase"`
	PlayerKilled    *string `json:"playerKilled"`
	KilledWallet    *string `json:"killedWallet"`
	PlayerOnTrial   *string `json:"playerOnTrial,omitempty"`
	DefendantWallet *string `json:"defendantWallet,omitempty"`
	Abstained       bool    `json:"abstained"`
	IsGameOver      bool    `json:"isGameOver"`
	NextPhase       Phase   `json:"nextPhase"`
}

// GameOverPayload announces the winners
type GameOverPayload struct {
	WinningRole Role         `json:"winningRole"`
	Winners     []PlayerInfo `json:"winners"`
	WinnerCount int          `json:"winnerCount"`
}

// RoomResetPayload tells remaining connections the room went back to an empty lobby
type RoomResetPayload struct {
	RoomCode string `json:"roomCode"`
}

// NewPhaseEndedPayload builds the broadcast for a resolved phase
func NewPhaseEndedPayload(r *PhaseResult) *PhaseEndedPayload {
	payload := &PhaseEndedPayload{
		Phase:      r.Phase,
		Abstained:  r.Abstained,
		IsGameOver: r.Win != nil,
		NextPhase:  r.Next,
	}

	if r.Killed != nil {
		payload.PlayerKilled = &r.Killed.Nickname
		payload.KilledWallet = &r.Killed.Wallet
	}

	if r.Phase == PhaseDayDiscussion && r.Defendant != nil {
		payload.PlayerOnTrial = &r.Defendant.Nickname
		payload.DefendantWallet = &r.Defendant.Wallet
	}

	return payload
}

// NewGameOverPayload builds the broadcast for a win
func NewGameOverPayload(w *Win) *GameOverPayload {
	winners := make([]PlayerInfo, 0, len(w.Members))
	for _, p := range w.Members {
		winners = append(winners, p.ToInfo())
	}

	return &GameOverPayload{
		WinningRole: w.Role,
		Winners:     winners,
		WinnerCount: len(winners),
	}
}
