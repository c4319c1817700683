package app

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"suspects/internal/domain"
)

const (
	// DefaultRoomCodeLength is the default length for room codes
	DefaultRoomCodeLength = 6

	// StaleGameTimeout is how long before an inactive game is cleaned up
	StaleGameTimeout = 2 * time.Hour

	// cleanupSpec is how often the stale game sweep runs
	cleanupSpec = "@every 10m"
)

// RoomCodeChars are characters used for room codes (no ambiguous chars)
const RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// HubOption customizes a GameHub
type HubOption func(*GameHub)

// WithRoomCodeLength sets the length of generated room codes
func WithRoomCodeLength(n int) HubOption {
	return func(h *GameHub) {
		if n > 0 {
			h.roomCodeLength = n
		}
	}
}

// WithScheduler sets the scheduler new sessions arm their phase timers on
func WithScheduler(s Scheduler) HubOption {
	return func(h *GameHub) {
		h.scheduler = s
	}
}

// GameHub is the registry of every live room, keyed by room code
type GameHub struct {
	sessions       map[string]*GameSession
	mu             sync.RWMutex
	roomCodeLength int
	settings       domain.GameSettings
	scheduler      Scheduler
	logger         *slog.Logger
	cron           *cron.Cron
}

// NewGameHub creates a new game hub and starts its stale game sweep
func NewGameHub(settings domain.GameSettings, logger *slog.Logger, opts ...HubOption) *GameHub {
	hub := &GameHub{
		sessions:       make(map[string]*GameSession),
		roomCodeLength: DefaultRoomCodeLength,
		settings:       settings,
		scheduler:      RealScheduler,
		logger:         logger,
		cron:           cron.New(),
	}

	for _, opt := range opts {
		opt(hub)
	}

	if _, err := hub.cron.AddFunc(cleanupSpec, hub.cleanupStaleGames); err != nil {
		logger.Error("failed to schedule stale game cleanup", "error", err)
	}
	hub.cron.Start()

	return hub
}

// CreateGame creates a new game and returns its session
func (h *GameHub) CreateGame() (*GameSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Generate unique room code
	var roomCode string
	for attempts := 0; attempts < 10; attempts++ {
		roomCode = h.generateRoomCode()
		if _, exists := h.sessions[roomCode]; !exists {
			break
		}
	}

	// Check if we found a unique code
	if _, exists := h.sessions[roomCode]; exists {
		return nil, fmt.Errorf("failed to generate unique room code")
	}

	game := domain.NewGame(roomCode, h.settings)
	session := NewGameSession(game, h.scheduler, h.logger)
	h.sessions[roomCode] = session

	h.logger.Info("game created", "roomCode", roomCode)

	return session, nil
}

// GetSession returns a game session by room code
func (h *GameHub) GetSession(roomCode string) (*GameSession, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	session, ok := h.sessions[roomCode]
	if !ok {
		return nil, domain.ErrGameNotFound
	}

	return session, nil
}

// ResetSession returns a room to an empty lobby, keeping its code
func (h *GameHub) ResetSession(roomCode string) error {
	session, err := h.GetSession(roomCode)
	if err != nil {
		return err
	}

	session.Reset()
	return nil
}

// DeleteSession removes a game session
func (h *GameHub) DeleteSession(roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if session, ok := h.sessions[roomCode]; ok {
		session.Close()
		delete(h.sessions, roomCode)
		h.logger.Info("game deleted", "roomCode", roomCode)
	}
}

// GetSessionCount returns the number of active sessions
func (h *GameHub) GetSessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// GetTotalPlayerCount returns the total number of players across all sessions
func (h *GameHub) GetTotalPlayerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, session := range h.sessions {
		total += session.GetPlayerCount()
	}
	return total
}

// Close shuts down the hub and all sessions
func (h *GameHub) Close() {
	<-h.cron.Stop().Done()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, session := range h.sessions {
		session.Close()
	}
	h.sessions = make(map[string]*GameSession)
}

// generateRoomCode generates a random room code
func (h *GameHub) generateRoomCode() string {
	b := make([]byte, h.roomCodeLength)
	rand.Read(b)

	code := make([]byte, h.roomCodeLength)
	for i := range code {
		code[i] = RoomCodeChars[int(b[i])%len(RoomCodeChars)]
	}

	return string(code)
}

// cleanupStaleGames removes games that have been inactive for too long
func (h *GameHub) cleanupStaleGames() {
	h.removeStaleGames(time.Now())
}

func (h *GameHub) removeStaleGames(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	stale := make([]string, 0)

	for roomCode, session := range h.sessions {
		// Check if game has no players and is old
		if session.GetPlayerCount() == 0 && now.Sub(session.GetCreatedAt()) > StaleGameTimeout {
			stale = append(stale, roomCode)
		}
	}

	for _, roomCode := range stale {
		if session, ok := h.sessions[roomCode]; ok {
			session.Close()
			delete(h.sessions, roomCode)
			h.logger.Info("stale game cleaned up", "roomCode", roomCode)
		}
	}

	return len(stale)
}
