package systems

import (
	"fmt"
	"time"

	"github.com/automoto/duelsync/archetypes"
	"github.com/automoto/duelsync/components"
	cfg "github.com/automoto/duelsync/config"
	"github.com/automoto/duelsync/shared/messages"
	"github.com/automoto/duelsync/shared/netconfig"
	"github.com/automoto/duelsync/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Emit queues an outbound message. Implementations must not block.
type Emit func(messages.Message)

// Bounds supplies the playfield size used to seed and clamp positions.
type Bounds interface {
	Width() float64
	Height() float64
}

// FixedBounds is a Bounds with constant dimensions.
type FixedBounds struct {
	W, H float64
}

func (b FixedBounds) Width() float64  { return b.W }
func (b FixedBounds) Height() float64 { return b.H }

// ConfigBounds reads the canvas size from config.C on every call.
type ConfigBounds struct{}

func (ConfigBounds) Width() float64  { return cfg.C.Width }
func (ConfigBounds) Height() float64 { return cfg.C.Height }

// Frame is the clock of the tick currently being run.
type Frame struct {
	Now int64 // Unix ms
	DT  time.Duration
}

// Arena owns the world holding exactly one entity per role plus the
// session singleton.
type Arena struct {
	ECS    *ecs.ECS
	Local  netconfig.Role
	Bounds Bounds
	Frame  Frame

	players [2]*donburi.Entry
	session *donburi.Entry
}

// NewArena creates both player entities at their spawn points and the
// session entity.
func NewArena(e *ecs.ECS, local netconfig.Role, bounds Bounds, sessionID string, now int64) *Arena {
	if bounds == nil {
		bounds = ConfigBounds{}
	}
	a := &Arena{
		ECS:    e,
		Local:  local,
		Bounds: bounds,
		Frame:  Frame{Now: now},
	}

	for i, role := range netconfig.Roles {
		side := tags.Remote
		if role == local {
			side = tags.Local
		}
		entry := archetypes.Player.Spawn(e, side)
		components.Player.SetValue(entry, components.PlayerData{Role: role})
		color := cfg.Player.HostColor
		if role == netconfig.RolePlayer {
			color = cfg.Player.PlayerColor
		}
		components.Vitals.SetValue(entry, components.VitalsData{
			Health:    cfg.Player.MaxHealth,
			MaxHealth: cfg.Player.MaxHealth,
			Radius:    cfg.Player.Radius,
			Color:     color,
		})
		a.players[i] = entry
	}

	a.session = archetypes.Session.Spawn(e)
	components.Session.SetValue(a.session, components.SessionData{
		ID:         sessionID,
		RoundStart: now,
		Active:     true,
		Round:      1,
	})

	for _, role := range netconfig.Roles {
		a.placeAtSpawn(role)
	}
	return a
}

func roleIndex(r netconfig.Role) int {
	if r == netconfig.RoleHost {
		return 0
	}
	return 1
}

// Entity returns the entry of the given role.
func (a *Arena) Entity(r netconfig.Role) *donburi.Entry {
	return a.players[roleIndex(r)]
}

// LocalEntity returns the entity tagged Local.
func (a *Arena) LocalEntity() *donburi.Entry {
	return a.tagged(tags.Local)
}

// RemoteEntity returns the entity tagged Remote.
func (a *Arena) RemoteEntity() *donburi.Entry {
	return a.tagged(tags.Remote)
}

func (a *Arena) tagged(tag *donburi.ComponentType[donburi.Tag]) *donburi.Entry {
	entry, ok := tag.First(a.ECS.World)
	if !ok {
		panic(fmt.Sprintf("arena: no %s entity", tag.Name()))
	}
	return entry
}

// Remote returns the role mutated by inbound messages.
func (a *Arena) Remote() netconfig.Role {
	return a.Local.Other()
}

// Session returns the session singleton.
func (a *Arena) Session() *components.SessionData {
	return components.Session.Get(a.session)
}

// SpawnPoint returns the canvas-relative starting point of a role: the host
// starts one third across, the player two thirds.
func (a *Arena) SpawnPoint(r netconfig.Role) mgl64.Vec2 {
	w, h := a.Bounds.Width(), a.Bounds.Height()
	if r == netconfig.RoleHost {
		return mgl64.Vec2{w / 3, h / 2}
	}
	return mgl64.Vec2{2 * w / 3, h / 2}
}

func (a *Arena) placeAtSpawn(r netconfig.Role) {
	entry := a.Entity(r)
	spawn := a.SpawnPoint(r)
	components.Motion.SetValue(entry, components.MotionData{Position: spawn})
	components.NetTrack.SetValue(entry, components.NetTrackData{LastKnownPosition: spawn})
}
