package systems

import (
	"testing"

	"github.com/automoto/duelsync/components"
	cfg "github.com/automoto/duelsync/config"
	"github.com/automoto/duelsync/shared/netconfig"
	"github.com/automoto/duelsync/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func newTestArena(t *testing.T, local netconfig.Role) *Arena {
	t.Helper()
	cfg.Defaults()
	t.Cleanup(cfg.Defaults)
	return NewArena(ecs.NewECS(donburi.NewWorld()), local, FixedBounds{W: 800, H: 600}, "test", 0)
}

func nullLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

func place(a *Arena, r netconfig.Role, x, y float64) {
	components.Motion.Get(a.Entity(r)).Position = mgl64.Vec2{x, y}
}

func TestArenaSpawnsBothRoles(t *testing.T) {
	a := newTestArena(t, netconfig.RoleHost)

	if got := a.Position(netconfig.RoleHost); got != (mgl64.Vec2{800.0 / 3, 300}) {
		t.Fatalf("host spawn = %v", got)
	}
	if got := a.Position(netconfig.RolePlayer); got != (mgl64.Vec2{2 * 800.0 / 3, 300}) {
		t.Fatalf("player spawn = %v", got)
	}
	if !a.LocalEntity().HasComponent(tags.Local) {
		t.Fatalf("local entity missing Local tag")
	}
	if a.LocalEntity().Entity() != a.Entity(netconfig.RoleHost).Entity() || a.RemoteEntity().Entity() != a.Entity(netconfig.RolePlayer).Entity() {
		t.Fatalf("tagged entities do not match roles")
	}
	for _, r := range netconfig.Roles {
		s := a.State(r)
		if s.Health != 100 || s.Radius != 20 || s.Score != 0 {
			t.Fatalf("%s initial state = %+v", r, s)
		}
	}
	if s := a.Session(); !s.Active || s.Round != 1 || s.ID != "test" {
		t.Fatalf("session = %+v", s)
	}
}

func TestFullStateMessageCarriesBothRoles(t *testing.T) {
	a := newTestArena(t, netconfig.RoleHost)
	place(a, netconfig.RoleHost, 100, 100)
	place(a, netconfig.RolePlayer, 300, 100)
	a.Session().GameTime = 1500

	m := a.FullStateMessage(2000)
	if m.Players.Host.X != 100 || m.Players.Player.X != 300 {
		t.Fatalf("players = %+v", m.Players)
	}
	if m.GameTime != 1500 || !m.GameActive || m.Timestamp != 2000 {
		t.Fatalf("session fields = %+v", m)
	}

	pos := a.PositionMessage(7, 2000)
	if pos.Role != netconfig.RoleHost || pos.Seq != 7 || pos.Health == nil || *pos.Health != 100 {
		t.Fatalf("position message = %+v", pos)
	}
}

func TestInputMessageZeroedWhileDead(t *testing.T) {
	a := newTestArena(t, netconfig.RoleHost)
	in := InputSnapshot{X: 1, Y: -1, Boost: true}

	if m := a.InputMessage(in, 1, 1000); m.Input.X != 1 || m.Input.Y != -1 {
		t.Fatalf("alive input = %+v", m.Input)
	}
	components.Vitals.Get(a.LocalEntity()).Health = 0
	m := a.InputMessage(in, 2, 1000)
	if m.Input.X != 0 || m.Input.Y != 0 {
		t.Fatalf("dead input = %+v, want zero axes", m.Input)
	}
	if m.Role != netconfig.RoleHost || m.Seq != 2 {
		t.Fatalf("message = %+v", m)
	}
}

func TestTaggedEntitiesFollowLocalRole(t *testing.T) {
	a := newTestArena(t, netconfig.RolePlayer)
	if a.LocalEntity().Entity() != a.Entity(netconfig.RolePlayer).Entity() {
		t.Fatalf("local entity is not the player")
	}
	remote := a.RemoteEntity()
	if remote.Entity() != a.Entity(netconfig.RoleHost).Entity() || !remote.HasComponent(tags.Remote) || remote.HasComponent(tags.Local) {
		t.Fatalf("remote entity tags wrong")
	}
}
