package session

import (
	"time"

	"github.com/automoto/duelsync/network"
	"github.com/automoto/duelsync/shared/netconfig"
	"github.com/automoto/duelsync/systems"
)

// State is a consistent copy of the whole session.
type State struct {
	ID         string
	Local      netconfig.Role
	Host       systems.EntityState
	Player     systems.EntityState
	GameTime   int64
	RoundStart int64
	Active     bool
	Round      int
	Latency    time.Duration
	Jitter     time.Duration
	Connection network.ConnState
}

// For returns the entity of the given role.
func (st State) For(r netconfig.Role) systems.EntityState {
	if r == netconfig.RoleHost {
		return st.Host
	}
	return st.Player
}

// Snapshot copies the current state under the session lock.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.arena.Session()
	return State{
		ID:         s.id,
		Local:      s.arena.Local,
		Host:       s.arena.State(netconfig.RoleHost),
		Player:     s.arena.State(netconfig.RolePlayer),
		GameTime:   sess.GameTime,
		RoundStart: sess.RoundStart,
		Active:     sess.Active,
		Round:      sess.Round,
		Latency:    s.clock.CurrentLatency(),
		Jitter:     s.clock.Jitter(),
		Connection: s.peer.State(),
	}
}
