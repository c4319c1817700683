package app

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"suspects/internal/domain"
)

const eventBufferSize = 256

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	GetPlayerID() string
	Close() error
}

// GameSession wraps a game with concurrency control, the phase timer and client management.
// Every mutation of the game happens under mu, so commands and timer callbacks for one
// room are applied one at a time.
type GameSession struct {
	game      *domain.Game
	mu        sync.RWMutex
	clients   map[string]ClientConnection // playerID -> client
	clientsMu sync.RWMutex
	logger    *slog.Logger
	scheduler Scheduler
	rng       *rand.Rand // nil uses the global source

	// Phase timer, armed for exactly one phase instance
	phaseTimer Timer

	// detective ID -> night instance already answered
	revealed map[string]uint64

	// Event channel for broadcasting
	events    chan *domain.GameEvent
	done      chan struct{}
	closeOnce sync.Once
}

// NewGameSession creates a new game session
func NewGameSession(game *domain.Game, scheduler Scheduler, logger *slog.Logger) *GameSession {
	if scheduler == nil {
		scheduler = RealScheduler
	}

	session := &GameSession{
		game:      game,
		clients:   make(map[string]ClientConnection),
		revealed:  make(map[string]uint64),
		logger:    logger.With("roomCode", game.ID),
		scheduler: scheduler,
		events:    make(chan *domain.GameEvent, eventBufferSize),
		done:      make(chan struct{}),
	}

	// Start event broadcaster
	go session.eventLoop()

	return session
}

// GetRoomCode returns the room code
func (s *GameSession) GetRoomCode() string {
	return s.game.ID
}

// GetCreatedAt returns when the game was created
func (s *GameSession) GetCreatedAt() time.Time {
	return s.game.CreatedAt
}

// GetPlayerCount returns the number of players
func (s *GameSession) GetPlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Roster.Len()
}

// GetPhase returns the current game phase
func (s *GameSession) GetPhase() domain.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Phase
}

// CanJoin checks if a new player can join the game
func (s *GameSession) CanJoin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Phase == domain.PhaseLobby && s.game.Roster.Len() < s.game.Settings.MaxPlayers
}

// HasPlayer reports whether playerID is on the roster
func (s *GameSession) HasPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Roster.ByID(playerID) != nil
}

// RegisterClient registers a client connection for a player
func (s *GameSession) RegisterClient(playerID string, client ClientConnection) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[playerID] = client
}

// UnregisterClient removes a client connection unless a newer one has replaced it.
// It reports whether client was the registered connection.
func (s *GameSession) UnregisterClient(playerID string, client ClientConnection) bool {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if current, ok := s.clients[playerID]; ok && current == client {
		delete(s.clients, playerID)
		return true
	}
	return false
}

// GetClient returns the client for a player
func (s *GameSession) GetClient(playerID string) (ClientConnection, bool) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	client, ok := s.clients[playerID]
	return client, ok
}

// AddPlayer adds a player to the lobby. An empty color gets a free one from the palette.
func (s *GameSession) AddPlayer(playerID, nickname, color, wallet string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color == "" {
		taken := make([]string, 0, s.game.Roster.Len())
		for _, p := range s.game.Roster.Players() {
			taken = append(taken, p.Color)
		}
		color = GetColorExcluding(taken)
	}

	player, err := s.game.AddPlayer(playerID, nickname, color, wallet)
	if err != nil {
		return nil, err
	}

	s.logger.Info("player joined", "playerID", playerID, "nickname", nickname)

	// Broadcast lobby update
	s.queueEvent(domain.NewEvent(domain.EventRosterUpdated, s.game.ID, s.game.GetLobbyState()))

	if s.game.CanStart() {
		host := s.game.Roster.Host()
		s.queueEvent(domain.NewPlayerEvent(domain.EventLobbyReady, s.game.ID, host.ID, &domain.LobbyReadyPayload{
			PlayerCount: s.game.Roster.Len(),
			MinPlayers:  s.game.Settings.MinPlayers,
		}))
	}

	return player, nil
}

// RemovePlayer takes a player off the roster while the room is in the lobby or finished
func (s *GameSession) RemovePlayer(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removePlayer(playerID)
}

// removePlayer drops the player and announces the new roster (caller must hold lock)
func (s *GameSession) removePlayer(playerID string) error {
	if err := s.game.RemovePlayer(playerID); err != nil {
		return err
	}

	s.logger.Info("player left", "playerID", playerID)
	s.queueEvent(domain.NewEvent(domain.EventRosterUpdated, s.game.ID, s.game.GetLobbyState()))
	return nil
}

// DisconnectPlayer handles a dropped connection. In the lobby the seat is freed so the
// nickname can be reused and the host role moves on; mid-game the player is only marked
// disconnected and may reconnect.
func (s *GameSession) DisconnectPlayer(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.game.GetPlayer(playerID)
	if err != nil {
		return
	}

	if s.game.Phase == domain.PhaseLobby {
		if err := s.removePlayer(playerID); err != nil {
			s.logger.Warn("failed to remove player", "playerID", playerID, "error", err)
		}
		return
	}

	player.Disconnect()
	s.queueEvent(domain.NewEvent(domain.EventRosterUpdated, s.game.ID, s.game.GetLobbyState()))
}

// ReconnectPlayer marks a player as reconnected
func (s *GameSession) ReconnectPlayer(playerID string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.game.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}

	player.Reconnect()
	s.queueEvent(domain.NewEvent(domain.EventPlayerReconnected, s.game.ID, s.game.GetLobbyState()))

	return player, nil
}

// StartGame assigns roles and opens the first night (host only)
func (s *GameSession) StartGame(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.IsHost(playerID) {
		return domain.ErrNotHost
	}

	counts, err := s.game.Start(s.rng)
	if err != nil {
		return err
	}

	s.logger.Info("game started",
		"players", s.game.Roster.Len(),
		"impostors", counts[domain.RoleImpostor],
		"medics", counts[domain.RoleMedic],
		"detectives", counts[domain.RoleDetective],
		"jesters", counts[domain.RoleJester],
		"crewmates", counts[domain.RoleCrewmate],
	)

	// Send role assignments to each player
	impostors := s.game.Impostors()
	for _, player := range s.game.Roster.Players() {
		payload := &domain.RoleAssignedPayload{Role: player.Role}
		if player.Role.IsImpostor() {
			for _, mate := range impostors {
				if mate != player {
					payload.Teammates = append(payload.Teammates, mate.Nickname)
				}
			}
		}
		s.queueEvent(domain.NewPlayerEvent(domain.EventRoleAssigned, s.game.ID, player.ID, payload))
	}

	s.queueEvent(domain.NewEvent(domain.EventRosterUpdated, s.game.ID, s.game.GetLobbyState()))

	s.startPhase()

	return nil
}

// CastVote records a vote and ends the phase early once its quorum is reached
func (s *GameSession) CastVote(kind domain.VoteKind, voterID, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	voter, err := s.game.CastVote(kind, voterID, target)
	if err != nil {
		return err
	}

	switch kind {
	case domain.VoteDay, domain.VoteTrial:
		s.queueEvent(domain.NewEvent(domain.EventVoteTallyUpdated, s.game.ID, s.game.GetVoteState(kind)))
	case domain.VoteNightKill:
		// Only the impostor team sees where its votes stand
		state := s.game.GetVoteState(kind)
		for _, mate := range s.game.Impostors() {
			s.queueEvent(domain.NewPlayerEvent(domain.EventVoteTallyUpdated, s.game.ID, mate.ID, state))
		}
	case domain.VoteNightSuspect:
		// One reveal per detective per night; later ballots only move the tally
		if s.revealed[voter.ID] == s.game.Instance {
			break
		}
		s.revealed[voter.ID] = s.game.Instance

		suspect := s.game.Roster.ByNickname(target)
		s.queueEvent(domain.NewPlayerEvent(domain.EventSuspectRevealed, s.game.ID, voter.ID, &domain.SuspectRevealedPayload{
			Suspect:    suspect.Nickname,
			IsImpostor: suspect.Role.IsImpostor(),
		}))
	}

	if s.game.QuorumReached() {
		s.logger.Debug("quorum reached, ending phase early", "phase", s.game.Phase)
		s.stopTimer()
		s.resolvePhase()
	}

	return nil
}

// AdvancePhase ends the running phase now instead of waiting for its timer (host only)
func (s *GameSession) AdvancePhase(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.IsHost(playerID) {
		return domain.ErrNotHost
	}

	if !s.game.Phase.IsTimed() {
		return domain.ErrInvalidTransition
	}

	s.stopTimer()
	s.resolvePhase()

	return nil
}

// Reset sends the room back to an empty lobby. Connections stay open so players can join again.
func (s *GameSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimer()
	s.game.Reset()

	s.logger.Info("room reset")

	s.queueEvent(domain.NewEvent(domain.EventRoomReset, s.game.ID, &domain.RoomResetPayload{
		RoomCode: s.game.ID,
	}))
	s.queueEvent(domain.NewEvent(domain.EventRosterUpdated, s.game.ID, s.game.GetLobbyState()))
}

// startPhase arms the deadline for the phase just entered and announces it (caller must hold lock)
func (s *GameSession) startPhase() {
	duration := s.game.Settings.PhaseDuration(s.game.Phase)
	s.armTimer(duration)

	payload := &domain.PhaseStartedPayload{
		Phase:          s.game.Phase,
		Round:          s.game.Round,
		VoteDeadlineMs: duration.Milliseconds(),
	}
	if s.game.Phase == domain.PhaseTrial {
		payload.Defendant = s.game.Defendant
	}

	s.logger.Info("phase started", "phase", s.game.Phase, "round", s.game.Round, "deadline", duration)

	s.queueEvent(domain.NewEvent(domain.EventPhaseStarted, s.game.ID, payload))
}

// armTimer replaces any pending deadline with one bound to the current phase instance (caller must hold lock)
func (s *GameSession) armTimer(d time.Duration) {
	s.stopTimer()

	instance := s.game.Instance
	s.phaseTimer = s.scheduler.AfterFunc(d, func() {
		s.handleTimeout(instance)
	})
}

// stopTimer cancels the pending deadline, if any (caller must hold lock)
func (s *GameSession) stopTimer() {
	if s.phaseTimer != nil {
		s.phaseTimer.Stop()
		s.phaseTimer = nil
	}
}

// handleTimeout resolves the phase the timer was armed for, unless the room has moved on
func (s *GameSession) handleTimeout(instance uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.Instance != instance || !s.game.Phase.IsTimed() {
		s.logger.Debug("ignoring stale phase timer", "timerInstance", instance, "currentInstance", s.game.Instance)
		return
	}

	s.phaseTimer = nil
	s.resolvePhase()
}

// resolvePhase is the one phase-end routine shared by the timer, quorum and host paths (caller must hold lock)
func (s *GameSession) resolvePhase() {
	result, err := s.game.Resolve()
	if err != nil {
		s.logger.Error("failed to resolve phase", "phase", s.game.Phase, "error", err)
		return
	}

	s.logger.Info("phase ended",
		"phase", result.Phase,
		"killed", nicknameOf(result.Killed),
		"defendant", nicknameOf(result.Defendant),
		"next", result.Next,
	)

	s.queueEvent(domain.NewEvent(domain.EventPhaseEnded, s.game.ID, domain.NewPhaseEndedPayload(result)))

	if result.Win != nil {
		s.logger.Info("game over", "winningRole", result.Win.Role, "winners", result.Win.MemberNicknames())
		s.queueEvent(domain.NewEvent(domain.EventGameOver, s.game.ID, domain.NewGameOverPayload(result.Win)))
		return
	}

	s.startPhase()
}

// GetGameState returns the current game state for a reconnecting player
func (s *GameSession) GetGameState(playerID string) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := map[string]interface{}{
		"phase":    s.game.Phase,
		"round":    s.game.Round,
		"players":  s.game.Roster.Infos(),
		"canStart": s.game.CanStart(),
	}
	if host := s.game.Roster.Host(); host != nil {
		state["hostId"] = host.ID
	}

	// Add phase-specific state
	switch s.game.Phase {
	case domain.PhaseDayDiscussion:
		state["votes"] = s.game.GetVoteState(domain.VoteDay)
	case domain.PhaseTrial:
		state["defendant"] = s.game.Defendant
		state["votes"] = s.game.GetVoteState(domain.VoteTrial)
	case domain.PhaseEnded:
		if s.game.Winner != nil {
			state["winner"] = domain.NewGameOverPayload(s.game.Winner)
		}
	}

	// Add player's role if in game
	if player, err := s.game.GetPlayer(playerID); err == nil && player.Role != "" {
		state["role"] = player.Role
		state["status"] = player.Status
	}

	return state
}

// queueEvent adds an event to the broadcast queue
func (s *GameSession) queueEvent(event *domain.GameEvent) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop processes events and broadcasts to clients
func (s *GameSession) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.broadcastEvent(event)
		}
	}
}

// broadcastEvent sends an event to appropriate clients
func (s *GameSession) broadcastEvent(event *domain.GameEvent) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	// If player-specific, send only to that player
	if event.PlayerID != "" {
		if client, ok := s.clients[event.PlayerID]; ok {
			if err := client.Send(event); err != nil {
				s.logger.Debug("failed to send to client", "playerID", event.PlayerID, "error", err)
			}
		}
		return
	}

	// Broadcast to all clients
	for playerID, client := range s.clients {
		if err := client.Send(event); err != nil {
			s.logger.Debug("failed to send to client", "playerID", playerID, "error", err)
		}
	}
}

// Close shuts down the session
func (s *GameSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		s.stopTimer()
		s.mu.Unlock()

		// Close all client connections
		s.clientsMu.Lock()
		for _, client := range s.clients {
			client.Close()
		}
		s.clients = make(map[string]ClientConnection)
		s.clientsMu.Unlock()
	})
}

func nicknameOf(p *domain.Player) string {
	if p == nil {
		return ""
	}
	return p.Nickname
}
