package domain

import "time"

// ConnectionStatus represents a player's connection state
type ConnectionStatus string

const (
	StatusConnected    ConnectionStatus = "CONNECTED"
	StatusDisconnected ConnectionStatus = "DISCONNECTED"
)

// PlayerStatus is whether a player is still in the game and, if not, who removed them
type PlayerStatus string

const (
	PlayerAlive            PlayerStatus = "alive"
	PlayerKilledByImpostor PlayerStatus = "killed_by_impostor"
	PlayerKilledByTown     PlayerStatus = "killed_by_town"
)

// Player represents a player in a room
type Player struct {
	ID         string           `json:"id"`
	Nickname   string           `json:"nickname"`
	Color      string           `json:"color"`
	Wallet     string           `json:"wallet"`
	Role       Role             `json:"role,omitempty"`
	Status     PlayerStatus     `json:"status"`
	IsHost     bool             `json:"isHost"`
	Connection ConnectionStatus `json:"connection"`
	JoinedAt   time.Time        `json:"joinedAt"`
}

// NewPlayer creates a new player with the given identity
func NewPlayer(id, nickname, color, wallet string) *Player {
	return &Player{
		ID:         id,
		Nickname:   nickname,
		Color:      color,
		Wallet:     wallet,
		Status:     PlayerAlive,
		Connection: StatusConnected,
		JoinedAt:   time.Now(),
	}
}

// ResetForNewGame brings the player back to life with no role
func (p *Player) ResetForNewGame() {
	p.Role = ""
	p.Status = PlayerAlive
}

// IsAlive returns true if the player has not been eliminated
func (p *Player) IsAlive() bool {
	return p.Status == PlayerAlive
}

// IsConnected returns true if the player is currently connected
func (p *Player) IsConnected() bool {
	return p.Connection == StatusConnected
}

// Disconnect marks the player as disconnected
func (p *Player) Disconnect() {
	p.Connection = StatusDisconnected
}

// Reconnect marks the player as connected
func (p *Player) Reconnect() {
	p.Connection = StatusConnected
}

// PlayerInfo is a safe view of player data (hides role from other players)
type PlayerInfo struct {
	ID         string           `json:"id"`
	Nickname   string           `json:"nickname"`
	Color      string           `json:"color"`
	Wallet     string           `json:"wallet"`
	Status     PlayerStatus     `json:"status"`
	IsHost     bool             `json:"isHost"`
	Connection ConnectionStatus `json:"connection"`
}

// ToInfo converts a Player to PlayerInfo (without role)
func (p *Player) ToInfo() PlayerInfo {
	return PlayerInfo{
		ID:         p.ID,
		Nickname:   p.Nickname,
		Color:      p.Color,
		Wallet:     p.Wallet,
		Status:     p.Status,
		IsHost:     p.IsHost,
		Connection: p.Connection,
	}
}
