package domain

import "strings"

// Roster is the ordered list of players in a room.
// The host is one of the listed players, never a separate copy.
type Roster struct {
	players []*Player
	host    *Player
}

// NewRoster creates an empty roster
func NewRoster() *Roster {
	return &Roster{players: make([]*Player, 0)}
}

// Add appends a player; the first player added becomes the host
func (r *Roster) Add(p *Player) error {
	if strings.TrimSpace(p.Nickname) == "" {
		return ErrEmptyNickname
	}
	if r.ByNickname(p.Nickname) != nil {
		return ErrNicknameTaken
	}

	r.players = append(r.players, p)
	if r.host == nil {
		r.SetHost(p)
	}
	return nil
}

// Remove drops a player by ID, handing the host role to the earliest remaining joiner
func (r *Roster) Remove(playerID string) error {
	idx := -1
	for i, p := range r.players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrPlayerNotFound
	}

	removed := r.players[idx]
	r.players = append(r.players[:idx], r.players[idx+1:]...)

	if r.host == removed {
		removed.IsHost = false
		r.host = nil
		if len(r.players) > 0 {
			r.SetHost(r.players[0])
		}
	}
	return nil
}

// SetHost makes p the host. p must already be a member.
func (r *Roster) SetHost(p *Player) {
	if r.host != nil {
		r.host.IsHost = false
	}
	r.host = p
	p.IsHost = true
}

// Host returns the current host, or nil for an empty roster
func (r *Roster) Host() *Player {
	return r.host
}

// ByID finds a player by connection ID
func (r *Roster) ByID(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ByNickname finds a player by nickname
func (r *Roster) ByNickname(nickname string) *Player {
	for _, p := range r.players {
		if p.Nickname == nickname {
			return p
		}
	}
	return nil
}

// Players returns the players in join order. The slice is a copy; the players are not.
func (r *Roster) Players() []*Player {
	out := make([]*Player, len(r.players))
	copy(out, r.players)
	return out
}

// Alive returns the players still in the game, in join order
func (r *Roster) Alive() []*Player {
	alive := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if p.IsAlive() {
			alive = append(alive, p)
		}
	}
	return alive
}

// AliveCount returns the number of players still in the game
func (r *Roster) AliveCount() int {
	count := 0
	for _, p := range r.players {
		if p.IsAlive() {
			count++
		}
	}
	return count
}

// Len returns the number of players
func (r *Roster) Len() int {
	return len(r.players)
}

// Clear removes every player and the host reference
func (r *Roster) Clear() {
	r.players = make([]*Player, 0)
	r.host = nil
}

// Infos returns the public view of every player
func (r *Roster) Infos() []PlayerInfo {
	infos := make([]PlayerInfo, 0, len(r.players))
	for _, p := range r.players {
		infos = append(infos, p.ToInfo())
	}
	return infos
}
