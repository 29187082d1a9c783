package systems

import (
	"github.com/automoto/duelsync/components"
	cfg "github.com/automoto/duelsync/config"
	"github.com/automoto/duelsync/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// ScheduleReset arms the round reset delay. It reports false when a reset
// is already pending.
func (a *Arena) ScheduleReset() bool {
	s := a.Session()
	if s.PendingReset != nil {
		return false
	}
	s.PendingReset = gween.New(0, 1, float32(cfg.Combat.ResetDelay.Seconds()), ease.Linear)
	return true
}

// ResetPending reports whether a round reset is counting down.
func (a *Arena) ResetPending() bool {
	return a.Session().PendingReset != nil
}

// ResetRound puts both entities back at their spawn points with full
// health and cleared flags. Scores carry over.
func (a *Arena) ResetRound(now int64) {
	for _, role := range netconfig.Roles {
		entry := a.Entity(role)
		a.placeAtSpawn(role)

		vitals := components.Vitals.Get(entry)
		vitals.SetHealth(vitals.MaxHealth)
		components.Flags.SetValue(entry, components.FlagsData{})
		components.AttackWindow.SetValue(entry, components.AttackWindowData{})
	}

	s := a.Session()
	s.PendingReset = nil
	s.RoundStart = now
	s.Active = true
	s.Round++
}

// NewRoundSystem returns a system that advances the game clock and fires a
// pending round reset once its delay has elapsed.
func NewRoundSystem(a *Arena) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		s := a.Session()
		if s.Active {
			s.GameTime += a.Frame.DT.Milliseconds()
		}
		if s.PendingReset == nil {
			return
		}
		if _, done := s.PendingReset.Update(float32(a.Frame.DT.Seconds())); done {
			a.ResetRound(a.Frame.Now)
		}
	}
}

// AttackProgress returns how much of the role's attack window is left, in
// [0, 1].
func (a *Arena) AttackProgress(r netconfig.Role) float64 {
	return float64(components.AttackWindow.Get(a.Entity(r)).Remaining)
}

// Position returns the current position of a role.
func (a *Arena) Position(r netconfig.Role) mgl64.Vec2 {
	return components.Motion.Get(a.Entity(r)).Position
}
