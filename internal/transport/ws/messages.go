package ws

import (
	"encoding/json"
	"errors"
	"time"

	"suspects/internal/domain"
)

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgJoinLobby    MessageType = "join_lobby"
	MsgStartGame    MessageType = "start_game"
	MsgCastVote     MessageType = "cast_vote"
	MsgAdvancePhase MessageType = "advance_phase"
	MsgResetRoom    MessageType = "reset_room"
	MsgPing         MessageType = "ping"
)

// Server → Client message types. Game events go out as domain.GameEvent.
const (
	MsgConnected MessageType = "connected"
	MsgError     MessageType = "error"
	MsgPong      MessageType = "pong"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Client message payloads

// JoinLobbyPayload is the payload for join_lobby message
type JoinLobbyPayload struct {
	Nickname string `json:"nickname"`
	Color    string `json:"color,omitempty"`
	Wallet   string `json:"wallet,omitempty"`
}

// CastVotePayload is the payload for cast_vote message.
// Target is a nickname, or "no-confidence" to abstain at trial.
type CastVotePayload struct {
	Kind   domain.VoteKind `json:"kind"`
	Target string          `json:"target"`
}

// Server message payloads

// ConnectedPayload is the payload for connected message
type ConnectedPayload struct {
	PlayerID  string                 `json:"playerId"`
	GameID    string                 `json:"gameId"`
	GameState map[string]interface{} `json:"gameState"`
}

// ErrorPayload is the payload for error message
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage   = "INVALID_MESSAGE"
	ErrCodeRateLimited      = "RATE_LIMITED"
	ErrCodeGameNotFound     = "GAME_NOT_FOUND"
	ErrCodeGameFull         = "GAME_FULL"
	ErrCodeNicknameTaken    = "NICKNAME_TAKEN"
	ErrCodeInvalidAction    = "INVALID_ACTION"
	ErrCodeInvalidPhase     = "INVALID_PHASE"
	ErrCodeUnknownPlayer    = "UNKNOWN_PLAYER"
	ErrCodeNotHost          = "NOT_HOST"
	ErrCodeNotEnoughPlayers = "NOT_ENOUGH_PLAYERS"
	ErrCodeCannotVote       = "CANNOT_VOTE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// payloadError is returned for a payload that does not decode
type payloadError struct {
	message string
}

func (e *payloadError) Error() string {
	return e.message
}

// errorPayload maps a domain error onto the code sent to the client
func errorPayload(err error) *ErrorPayload {
	var pe *payloadError

	code := ErrCodeInternalError
	switch {
	case errors.As(err, &pe):
		code = ErrCodeInvalidMessage
	case errors.Is(err, domain.ErrGameNotFound):
		code = ErrCodeGameNotFound
	case errors.Is(err, domain.ErrGameFull):
		code = ErrCodeGameFull
	case errors.Is(err, domain.ErrNicknameTaken):
		code = ErrCodeNicknameTaken
	case errors.Is(err, domain.ErrEmptyNickname):
		code = ErrCodeInvalidMessage
	case errors.Is(err, domain.ErrNotHost):
		code = ErrCodeNotHost
	case errors.Is(err, domain.ErrNotEnoughPlayers):
		code = ErrCodeNotEnoughPlayers
	case errors.Is(err, domain.ErrInvalidPhase), errors.Is(err, domain.ErrInvalidTransition):
		code = ErrCodeInvalidPhase
	case errors.Is(err, domain.ErrUnknownPlayer), errors.Is(err, domain.ErrPlayerNotFound):
		code = ErrCodeUnknownPlayer
	case errors.Is(err, domain.ErrRoleCannotVote), errors.Is(err, domain.ErrDefendantCannotVote):
		code = ErrCodeCannotVote
	case errors.Is(err, domain.ErrGameAlreadyStarted):
		code = ErrCodeInvalidAction
	}

	return &ErrorPayload{Code: code, Message: err.Error()}
}
