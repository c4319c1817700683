package ws

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"suspects/internal/app"
)

// Limits bounds how fast a single connection may send commands
type Limits struct {
	MessagesPerSecond float64
	Burst             int
}

// Handler handles WebSocket connections
type Handler struct {
	hub      *app.GameHub
	upgrader websocket.Upgrader
	limits   Limits
	logger   *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *app.GameHub, limits Limits, logger *slog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins for development
				// In production, you should validate the origin
				return true
			},
		},
		limits: limits,
		logger: logger,
	}
}

// newLimiter returns a fresh token bucket, or nil when limiting is off
func (h *Handler) newLimiter() *rate.Limiter {
	if h.limits.MessagesPerSecond <= 0 {
		return nil
	}
	burst := h.limits.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(h.limits.MessagesPerSecond), burst)
}

// ServeHTTP handles WebSocket upgrade requests
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Get room code from query params
	roomCode := strings.ToUpper(r.URL.Query().Get("roomCode"))
	if roomCode == "" {
		http.Error(w, "roomCode is required", http.StatusBadRequest)
		return
	}

	// Get the game session
	session, err := h.hub.GetSession(roomCode)
	if err != nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	// A known playerId resumes that seat; anything else gets a fresh id
	playerID := r.URL.Query().Get("playerId")
	isReconnect := playerID != "" && session.HasPlayer(playerID)
	if !isReconnect {
		playerID = uuid.New().String()
	}

	// Check if can join (for new players)
	if !isReconnect && !session.CanJoin() {
		http.Error(w, "Cannot join this game", http.StatusForbidden)
		return
	}

	// Upgrade connection to WebSocket
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	// Create client
	client := NewClient(conn, session, playerID, h.newLimiter(), h.logger)

	// Register client with session
	session.RegisterClient(playerID, client)

	h.logger.Info("websocket connected",
		"roomCode", roomCode,
		"playerID", playerID,
		"isReconnect", isReconnect,
	)

	// Handle reconnection
	if isReconnect {
		if _, err := session.ReconnectPlayer(playerID); err != nil {
			h.logger.Debug("reconnect failed, treating as new", "playerID", playerID, "error", err)
		} else {
			// Send current game state
			client.sendConnected()
		}
	}

	// Start the client
	client.Run()
}
