package systems

import (
	"image/color"

	"github.com/automoto/duelsync/components"
	"github.com/automoto/duelsync/shared/messages"
	"github.com/automoto/duelsync/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// EntityState is a read-only copy of one role's entity.
type EntityState struct {
	Role      netconfig.Role
	Position  mgl64.Vec2
	Velocity  mgl64.Vec2
	Health    int
	MaxHealth int
	Score     int
	Radius    float64
	Color     color.RGBA
	Boosting  bool
	Attacking bool
}

// State copies the entity of role r.
func (a *Arena) State(r netconfig.Role) EntityState {
	entry := a.Entity(r)
	motion := components.Motion.Get(entry)
	vitals := components.Vitals.Get(entry)
	flags := components.Flags.Get(entry)
	return EntityState{
		Role:      r,
		Position:  motion.Position,
		Velocity:  motion.Velocity,
		Health:    vitals.Health,
		MaxHealth: vitals.MaxHealth,
		Score:     vitals.Score,
		Radius:    vitals.Radius,
		Color:     vitals.Color,
		Boosting:  flags.Boosting,
		Attacking: flags.Attacking,
	}
}

// EntitySnapshotOf converts an entity to its wire form.
func EntitySnapshotOf(entry *donburi.Entry) messages.EntitySnapshot {
	motion := components.Motion.Get(entry)
	vitals := components.Vitals.Get(entry)
	flags := components.Flags.Get(entry)
	return messages.EntitySnapshot{
		X:         motion.Position.X(),
		Y:         motion.Position.Y(),
		VX:        motion.Velocity.X(),
		VY:        motion.Velocity.Y(),
		Health:    vitals.Health,
		Score:     vitals.Score,
		Radius:    vitals.Radius,
		Color:     vitals.Color,
		Boosting:  flags.Boosting,
		Attacking: flags.Attacking,
	}
}

// PositionMessage builds the local entity's position update.
func (a *Arena) PositionMessage(seq uint32, now int64) messages.PlayerPosition {
	s := EntitySnapshotOf(a.LocalEntity())
	return messages.PlayerPosition{
		Role:      a.Local,
		Seq:       seq,
		X:         s.X,
		Y:         s.Y,
		VX:        s.VX,
		VY:        s.VY,
		Boosting:  s.Boosting,
		Attacking: s.Attacking,
		Health:    messages.Int(s.Health),
		Score:     messages.Int(s.Score),
		Timestamp: now,
	}
}

// InputMessage wraps the local input snapshot. While the local entity is
// dead the movement axes are sent as zero.
func (a *Arena) InputMessage(in InputSnapshot, seq uint32, now int64) messages.PlayerInput {
	vec := messages.InputVector{X: in.X, Y: in.Y, Boost: in.Boost}
	if components.Vitals.Get(a.LocalEntity()).Health <= 0 {
		vec.X, vec.Y = 0, 0
	}
	return messages.PlayerInput{
		Role:      a.Local,
		Seq:       seq,
		Input:     vec,
		Timestamp: now,
	}
}

// FullStateMessage snapshots the whole session.
func (a *Arena) FullStateMessage(now int64) messages.FullStateSync {
	s := a.Session()
	return messages.FullStateSync{
		Players: messages.Players{
			Host:   EntitySnapshotOf(a.Entity(netconfig.RoleHost)),
			Player: EntitySnapshotOf(a.Entity(netconfig.RolePlayer)),
		},
		GameTime:   s.GameTime,
		RoundStart: s.RoundStart,
		GameActive: s.Active,
		Timestamp:  now,
	}
}
