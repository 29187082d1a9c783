package messages

import (
	"image/color"

	"github.com/automoto/duelsync/shared/netconfig"
)

// EntitySnapshot is the full wire form of one player's state.
type EntitySnapshot struct {
	X         float64    `msgpack:"x"`
	Y         float64    `msgpack:"y"`
	VX        float64    `msgpack:"vx"`
	VY        float64    `msgpack:"vy"`
	Health    int        `msgpack:"health"`
	Score     int        `msgpack:"score"`
	Radius    float64    `msgpack:"radius"`
	Color     color.RGBA `msgpack:"color"`
	Boosting  bool       `msgpack:"boosting"`
	Attacking bool       `msgpack:"attacking"`
}

// Players holds one snapshot per role.
type Players struct {
	Host   EntitySnapshot `msgpack:"host"`
	Player EntitySnapshot `msgpack:"player"`
}

// For returns the snapshot of the given role.
func (p *Players) For(r netconfig.Role) *EntitySnapshot {
	if r == netconfig.RoleHost {
		return &p.Host
	}
	return &p.Player
}

// FullStateSync is broadcast by the host once per second to bound drift.
// It is never sent by the player.
type FullStateSync struct {
	Players    Players `msgpack:"players"`
	GameTime   int64   `msgpack:"gameTime"`   // ms of active play
	RoundStart int64   `msgpack:"roundStart"` // host clock, Unix ms
	GameActive bool    `msgpack:"gameActive"`
	Timestamp  int64   `msgpack:"timestamp"`
}
