package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/automoto/duelsync/components"
	cfg "github.com/automoto/duelsync/config"
	"github.com/automoto/duelsync/network"
	"github.com/automoto/duelsync/shared/messages"
	"github.com/automoto/duelsync/shared/netconfig"
	"github.com/automoto/duelsync/shared/protocol"
	"github.com/automoto/duelsync/systems"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Set(ms int64) { c.t = time.UnixMilli(ms) }

type testSession struct {
	*Session
	clock *fakeClock
	hook  *test.Hook
}

func newTestSession(t *testing.T, role netconfig.Role) testSession {
	t.Helper()
	cfg.Defaults()
	t.Cleanup(cfg.Defaults)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	clock := &fakeClock{t: time.UnixMilli(1000)}
	s, err := New(Options{
		Role:   role,
		Bounds: systems.FixedBounds{W: 800, H: 600},
		Logger: logger,
		Now:    clock.Now,
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return testSession{Session: s, clock: clock, hook: hook}
}

// connect links two sessions through an in-memory pipe and returns the
// channel ends each one receives on.
func connect(host, player testSession) (network.Channel, network.Channel) {
	h, p := network.Pipe(1024)
	host.Peer().Attach(h)
	player.Peer().Attach(p)
	return h, p
}

// deliver applies everything waiting on ch to s and returns what it read.
func deliver(t *testing.T, ch network.Channel, s testSession) []messages.Message {
	t.Helper()
	var got []messages.Message
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		b, err := ch.Receive(ctx)
		cancel()
		if err != nil {
			return got
		}
		msg, err := protocol.Decode(b)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		got = append(got, msg)
		s.Receive(b)
	}
}

func place(s testSession, r netconfig.Role, x, y float64) {
	components.Motion.Get(s.arena.Entity(r)).Position = mgl64.Vec2{x, y}
}

func TestNewRejectsUnknownRole(t *testing.T) {
	if _, err := New(Options{Role: "spectator"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSyncMovesRemoteCopy(t *testing.T) {
	host := newTestSession(t, netconfig.RoleHost)
	player := newTestSession(t, netconfig.RolePlayer)
	_, playerEnd := connect(host, player)

	place(host, netconfig.RoleHost, 280, 310)
	host.SetInput(systems.InputSnapshot{X: 1, Boost: true})
	host.SendSync(host.clock.Now())

	got := deliver(t, playerEnd, player)
	if len(got) != 2 || got[0].Kind() != messages.KindPlayerPosition || got[1].Kind() != messages.KindPlayerInput {
		t.Fatalf("delivered %v", got)
	}
	remote := player.Snapshot().Host
	if remote.Position != (mgl64.Vec2{280, 310}) {
		t.Fatalf("remote host position = %v", remote.Position)
	}
	if remote.Velocity != (mgl64.Vec2{10, 0}) || !remote.Boosting {
		t.Fatalf("remote host motion = %+v", remote)
	}
}

func TestDeadHostStaysPutOnPeer(t *testing.T) {
	host := newTestSession(t, netconfig.RoleHost)
	player := newTestSession(t, netconfig.RolePlayer)
	_, playerEnd := connect(host, player)

	components.Vitals.Get(host.arena.LocalEntity()).Health = 0
	host.SetInput(systems.InputSnapshot{X: 1})
	host.Step(host.clock.Now(), cfg.Motion.FrameDuration)
	host.SendSync(host.clock.Now())
	deliver(t, playerEnd, player)

	want := host.Snapshot().Host.Position
	for i := 0; i < 60; i++ {
		player.Step(player.clock.Now(), cfg.Motion.FrameDuration)
	}
	remote := player.Snapshot().Host
	if remote.Health != 0 {
		t.Fatalf("remote host health = %d, want 0", remote.Health)
	}
	if remote.Velocity != (mgl64.Vec2{}) || remote.Position != want {
		t.Fatalf("dead host on peer = pos %v vel %v, want still at %v", remote.Position, remote.Velocity, want)
	}
}

func TestAttackScenario(t *testing.T) {
	host := newTestSession(t, netconfig.RoleHost)
	player := newTestSession(t, netconfig.RolePlayer)
	_, playerEnd := connect(host, player)

	place(host, netconfig.RoleHost, 260, 100)
	place(host, netconfig.RolePlayer, 300, 100)
	place(player, netconfig.RoleHost, 100, 100)
	place(player, netconfig.RolePlayer, 300, 100)

	host.SetInput(systems.InputSnapshot{Attack: true})
	host.Step(host.clock.Now(), 0)
	if got := host.Snapshot().Player.Health; got != 90 {
		t.Fatalf("host view of player health = %d, want 90", got)
	}

	deliver(t, playerEnd, player)
	st := player.Snapshot()
	if st.Player.Health != 90 {
		t.Fatalf("player health = %d, want 90", st.Player.Health)
	}
	if !st.Host.Attacking || player.AttackProgress(netconfig.RoleHost) != 1 {
		t.Fatalf("remote attacker not shown attacking")
	}
}

func TestPingPongScenario(t *testing.T) {
	host := newTestSession(t, netconfig.RoleHost)
	player := newTestSession(t, netconfig.RolePlayer)
	hostEnd, playerEnd := connect(host, player)

	player.clock.Set(1000)
	player.SendProbe(player.clock.Now())
	deliver(t, hostEnd, host)

	player.clock.Set(1120)
	got := deliver(t, playerEnd, player)
	if len(got) != 1 || got[0].Kind() != messages.KindPong {
		t.Fatalf("delivered %v", got)
	}
	if lat := player.Latency(); lat != 120*time.Millisecond {
		t.Fatalf("latency = %v, want 120ms", lat)
	}
}

func TestMalformedMessageDiscarded(t *testing.T) {
	player := newTestSession(t, netconfig.RolePlayer)
	before := player.Snapshot()

	player.Receive([]byte{0xc1, 0x00, 0x13})
	player.Receive(nil)

	if after := player.Snapshot(); after != before {
		t.Fatalf("state changed: %+v -> %+v", before, after)
	}
	warned := 0
	for _, e := range player.hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "discarding malformed message" {
			warned++
		}
	}
	if warned != 2 {
		t.Fatalf("malformed warnings = %d, want 2", warned)
	}
}

func TestFullStateFlowsHostToPlayerOnly(t *testing.T) {
	host := newTestSession(t, netconfig.RoleHost)
	player := newTestSession(t, netconfig.RolePlayer)
	hostEnd, playerEnd := connect(host, player)

	if player.SendFullState(player.clock.Now()) {
		t.Fatalf("player sent a full-state sync")
	}
	if got := deliver(t, hostEnd, host); len(got) != 0 {
		t.Fatalf("host received %v", got)
	}

	components.Vitals.Get(host.arena.Entity(netconfig.RolePlayer)).Score = 4
	place(host, netconfig.RoleHost, 111, 222)
	if !host.SendFullState(host.clock.Now()) {
		t.Fatalf("host did not send a full-state sync")
	}
	deliver(t, playerEnd, player)
	st := player.Snapshot()
	if st.Player.Score != 4 || st.Host.Position != (mgl64.Vec2{111, 222}) {
		t.Fatalf("player state after sync = %+v", st)
	}

	before := host.Snapshot()
	if host.Apply(player.arena.FullStateMessage(5000)) {
		t.Fatalf("host applied a full-state sync")
	}
	if after := host.Snapshot(); after != before {
		t.Fatalf("host state changed")
	}
}

func TestSendWhileDisconnectedIsDropped(t *testing.T) {
	host := newTestSession(t, netconfig.RoleHost)
	host.SendSync(host.clock.Now())

	if _, dropped := host.Peer().Stats(); dropped != 2 {
		t.Fatalf("dropped = %d, want 2", dropped)
	}
	if e := host.hook.LastEntry(); e == nil || e.Level != logrus.WarnLevel {
		t.Fatalf("last entry = %+v, want a warning", e)
	}
}

func TestResetRoundKeepsScores(t *testing.T) {
	host := newTestSession(t, netconfig.RoleHost)
	components.Vitals.Get(host.arena.LocalEntity()).Score = 3
	place(host, netconfig.RoleHost, 10, 10)

	host.clock.Set(9000)
	host.ResetRound()
	st := host.Snapshot()
	if st.Host.Score != 3 || st.Round != 2 || st.RoundStart != 9000 {
		t.Fatalf("state after reset = %+v", st)
	}
	if st.Host.Position != (mgl64.Vec2{800.0 / 3, 300}) {
		t.Fatalf("host position = %v", st.Host.Position)
	}
}

func TestRunStopsCleanly(t *testing.T) {
	host := newTestSession(t, netconfig.RoleHost)
	hostEnd, playerEnd := network.Pipe(1024)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, host.Session, NewScheduler(host.Session), hostEnd) }()

	// The player leaving only disconnects the peer.
	_ = playerEnd.Close()
	deadline := time.After(2 * time.Second)
	for host.Peer().Connected() {
		select {
		case <-deadline:
			t.Fatalf("peer still connected after close")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not return")
	}
}
