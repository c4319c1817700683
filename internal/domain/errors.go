package domain

import "errors"

// Domain errors
var (
	ErrGameNotFound        = errors.New("game not found")
	ErrGameFull            = errors.New("game is full")
	ErrGameAlreadyStarted  = errors.New("game already started")
	ErrNotEnoughPlayers    = errors.New("not enough players to start")
	ErrInvalidPhase        = errors.New("invalid action for current phase")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrUnknownPlayer       = errors.New("unknown voter or target")
	ErrNicknameTaken       = errors.New("nickname already taken in this room")
	ErrNotHost             = errors.New("only host can perform this action")
	ErrInvalidTransition   = errors.New("invalid phase transition")
	ErrRoleCannotVote      = errors.New("role cannot cast this vote")
	ErrDefendantCannotVote = errors.New("player on trial cannot vote")
	ErrNoPlayers           = errors.New("no players to assign roles to")
	ErrInvalidRoleConfig   = errors.New("invalid role distribution")
	ErrEmptyNickname       = errors.New("nickname cannot be empty")
)
