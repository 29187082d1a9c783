// Package session owns one duel between the local role and its remote
// counterpart: the ECS world with both entities, the reconciliation and
// combat state, and the outbound link to the other peer.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/automoto/duelsync/network"
	"github.com/automoto/duelsync/shared/messages"
	"github.com/automoto/duelsync/shared/netconfig"
	"github.com/automoto/duelsync/shared/protocol"
	"github.com/automoto/duelsync/systems"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	cfg "github.com/automoto/duelsync/config"
)

type Options struct {
	Role   netconfig.Role
	Bounds systems.Bounds // defaults to the configured canvas
	Peer   *network.Peer  // created when nil
	Logger logrus.FieldLogger
	Now    func() time.Time

	// Bot drives the local input from the built-in opponent AI.
	Bot           bool
	BotDifficulty cfg.BotDifficulty
}

// Session serializes every mutation of the two entities behind mu.
// Outbound messages produced while mu is held are queued and handed to
// the peer after it is released.
type Session struct {
	mu sync.Mutex

	id         string
	ecs        *ecs.ECS
	arena      *systems.Arena
	input      *systems.InputState
	clock      *systems.ClockSync
	reconciler *systems.Reconciler
	combat     *systems.CombatResolver
	peer       *network.Peer

	outbox   []messages.Message
	posSeq   uint32
	inputSeq uint32

	now func() time.Time
	log logrus.FieldLogger
}

func New(opts Options) (*Session, error) {
	if !opts.Role.Valid() {
		return nil, fmt.Errorf("new session: invalid role %q", opts.Role)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	id := uuid.NewString()
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	log := opts.Logger.WithFields(logrus.Fields{"session": id, "role": opts.Role})
	if opts.Peer == nil {
		opts.Peer = network.NewPeer(log.WithField("component", "peer"))
	}

	s := &Session{
		id:    id,
		ecs:   ecs.NewECS(donburi.NewWorld()),
		input: &systems.InputState{},
		clock: systems.NewClockSync(log.WithField("component", "clocksync")),
		peer:  opts.Peer,
		now:   opts.Now,
		log:   log,
	}
	s.arena = systems.NewArena(s.ecs, opts.Role, opts.Bounds, id, s.now().UnixMilli())
	s.reconciler = systems.NewReconciler(s.arena, s.clock, log.WithField("component", "reconciler"))
	s.combat = systems.NewCombatResolver(s.arena, log.WithField("component", "combat"))

	if opts.Bot {
		s.ecs.AddSystem(systems.NewBotSystem(s.arena, s.input, opts.BotDifficulty))
	}
	s.ecs.AddSystem(systems.NewAttackInputSystem(s.arena, s.input, s.combat, s.enqueue))
	s.ecs.AddSystem(systems.NewLocalPhysicsSystem(s.arena, s.input))
	s.ecs.AddSystem(systems.NewRemoteExtrapolationSystem(s.arena))
	s.ecs.AddSystem(systems.NewAttackWindowSystem(s.arena))
	s.ecs.AddSystem(systems.NewRoundSystem(s.arena))

	log.Info("session created")
	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Local() netconfig.Role { return s.arena.Local }

func (s *Session) Peer() *network.Peer { return s.peer }

// SetInput replaces the local input snapshot.
func (s *Session) SetInput(in systems.InputSnapshot) {
	s.mu.Lock()
	s.input.Set(in)
	s.mu.Unlock()
}

// Step runs every system once for a tick of length dt ending at now.
func (s *Session) Step(now time.Time, dt time.Duration) {
	s.mu.Lock()
	s.arena.Frame = systems.Frame{Now: now.UnixMilli(), DT: dt}
	s.ecs.Update()
	s.mu.Unlock()
	s.flush()
}

// Receive decodes and applies one inbound payload. Malformed payloads are
// logged and discarded without touching state.
func (s *Session) Receive(b []byte) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("Receive() panic: %v", r)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("session", s.id)
				scope.SetTag("role", s.arena.Local.String())
			})
			hub.Recover(r)
		}
	}()

	msg, err := protocol.Decode(b)
	if err != nil {
		s.log.WithError(err).Warn("discarding malformed message")
		return
	}
	s.Apply(msg)
}

// Apply dispatches a decoded message and reports whether it changed state.
func (s *Session) Apply(msg messages.Message) bool {
	applied := s.apply(msg)
	s.flush()
	return applied
}

func (s *Session) apply(msg messages.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UnixMilli()
	switch m := msg.(type) {
	case messages.PlayerPosition:
		return s.reconciler.ApplyPosition(m, now)
	case messages.PlayerInput:
		return s.reconciler.ApplyInput(m)
	case messages.Attack:
		_, ok := s.combat.HandleAttack(m)
		return ok
	case messages.FullStateSync:
		return s.reconciler.ApplyFullState(m)
	case messages.Ping:
		s.clock.HandlePing(m, s.enqueue)
		return false
	case messages.Pong:
		return s.clock.HandlePong(m, now)
	}
	s.log.WithField("kind", fmt.Sprintf("%T", msg)).Warn("unhandled message")
	return false
}

// SendSync queues the local position and input updates.
func (s *Session) SendSync(now time.Time) {
	s.mu.Lock()
	ms := now.UnixMilli()
	s.posSeq++
	s.inputSeq++
	s.enqueue(s.arena.PositionMessage(s.posSeq, ms))
	s.enqueue(s.arena.InputMessage(s.input.Current(), s.inputSeq, ms))
	s.mu.Unlock()
	s.flush()
}

// SendFullState broadcasts the whole session. Only the host sends one.
func (s *Session) SendFullState(now time.Time) bool {
	if !s.arena.Local.IsAuthority() {
		return false
	}
	s.mu.Lock()
	s.enqueue(s.arena.FullStateMessage(now.UnixMilli()))
	s.mu.Unlock()
	s.flush()
	return true
}

// SendProbe sends a latency probe.
func (s *Session) SendProbe(now time.Time) {
	s.mu.Lock()
	s.clock.SendProbe(now.UnixMilli(), s.enqueue)
	s.mu.Unlock()
	s.flush()
}

// ResetRound resets the round immediately.
func (s *Session) ResetRound() {
	s.mu.Lock()
	s.arena.ResetRound(s.now().UnixMilli())
	s.mu.Unlock()
}

// Latency returns the current round-trip estimate.
func (s *Session) Latency() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.CurrentLatency()
}

// AttackProgress returns the remaining fraction of the role's attack window.
func (s *Session) AttackProgress(r netconfig.Role) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.AttackProgress(r)
}

// enqueue must be called with mu held.
func (s *Session) enqueue(m messages.Message) {
	s.outbox = append(s.outbox, m)
}

func (s *Session) flush() {
	s.mu.Lock()
	out := s.outbox
	s.outbox = nil
	s.mu.Unlock()
	for _, m := range out {
		s.peer.Send(m)
	}
}
