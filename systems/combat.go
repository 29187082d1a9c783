package systems

import (
	"github.com/automoto/duelsync/components"
	cfg "github.com/automoto/duelsync/config"
	"github.com/automoto/duelsync/shared/messages"
	"github.com/automoto/duelsync/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// HitResult describes the outcome of one hit test.
type HitResult struct {
	Hit      bool
	Killed   bool
	Distance float64
	Health   int // defender health after the hit
}

// CombatResolver hit-tests attacks against this peer's own copy of the
// defender. Both peers resolve every attack independently.
type CombatResolver struct {
	arena *Arena
	log   logrus.FieldLogger
}

func NewCombatResolver(a *Arena, log logrus.FieldLogger) *CombatResolver {
	return &CombatResolver{arena: a, log: log}
}

// PerformAttack starts a local attack: the local entity shows as attacking
// for the attack window, an Attack carrying its current position is
// emitted and the hit is resolved locally. Dead entities cannot attack.
func (c *CombatResolver) PerformAttack(now int64, emit Emit) (HitResult, bool) {
	entry := c.arena.LocalEntity()
	if components.Vitals.Get(entry).Health <= 0 {
		return HitResult{}, false
	}
	startAttackWindow(entry)

	pos := components.Motion.Get(entry).Position
	emit(messages.Attack{Role: c.arena.Local, X: pos.X(), Y: pos.Y(), Timestamp: now})
	return c.Resolve(c.arena.Local, pos), true
}

// HandleAttack resolves an attack announced by the remote peer, using the
// attacker position embedded in the message.
func (c *CombatResolver) HandleAttack(m messages.Attack) (HitResult, bool) {
	if m.Role != c.arena.Remote() {
		c.log.WithField("role", m.Role).Debug("ignoring attack attributed to local role")
		return HitResult{}, false
	}
	startAttackWindow(c.arena.Entity(m.Role))
	return c.Resolve(m.Role, mgl64.Vec2{m.X, m.Y}), true
}

// Resolve tests an attack from position from against the other role. A hit
// lands when the distance is strictly less than the attack range plus the
// defender's radius. A defender already at zero health takes no further
// damage and grants no score.
func (c *CombatResolver) Resolve(attacker netconfig.Role, from mgl64.Vec2) HitResult {
	defender := c.arena.Entity(attacker.Other())
	vitals := components.Vitals.Get(defender)
	distance := from.Sub(components.Motion.Get(defender).Position).Len()

	res := HitResult{Distance: distance, Health: vitals.Health}
	if distance >= cfg.Combat.AttackRange+vitals.Radius {
		return res
	}
	res.Hit = true
	if vitals.Health <= 0 {
		return res
	}

	res.Killed = vitals.Damage(cfg.Combat.AttackDamage)
	res.Health = vitals.Health
	fields := logrus.Fields{"attacker": attacker, "distance": distance, "health": vitals.Health}
	if !res.Killed {
		c.log.WithFields(fields).Debug("hit")
		return res
	}

	components.Vitals.Get(c.arena.Entity(attacker)).Score++
	c.log.WithFields(fields).Info("kill")
	c.arena.ScheduleReset()
	return res
}

func startAttackWindow(entry *donburi.Entry) {
	w := components.AttackWindow.Get(entry)
	w.Tween = gween.New(1, 0, float32(cfg.Combat.AttackWindow.Seconds()), ease.Linear)
	w.Remaining = 1
	components.Flags.Get(entry).Attacking = true
}

func advanceAttackWindow(entry *donburi.Entry, dt float32) {
	w := components.AttackWindow.Get(entry)
	if w.Tween == nil {
		return
	}
	remaining, done := w.Tween.Update(dt)
	w.Remaining = remaining
	if done {
		w.Tween = nil
		w.Remaining = 0
		components.Flags.Get(entry).Attacking = false
	}
}

// NewAttackWindowSystem returns a system that clears the attacking flag
// once an attack window has run out.
func NewAttackWindowSystem(a *Arena) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		dt := float32(a.Frame.DT.Seconds())
		components.AttackWindow.Each(e.World, func(entry *donburi.Entry) {
			advanceAttackWindow(entry, dt)
		})
	}
}
