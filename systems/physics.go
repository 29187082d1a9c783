package systems

import (
	"github.com/automoto/duelsync/components"
	cfg "github.com/automoto/duelsync/config"
	"github.com/automoto/duelsync/shared/gamemath"
	"github.com/automoto/duelsync/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewLocalPhysicsSystem returns a system that derives the local velocity
// from input and integrates it, keeping the entity inside the bounds.
// A dead entity stays put until the round resets.
func NewLocalPhysicsSystem(a *Arena, input *InputState) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		in := input.Current()
		frames := gamemath.Frames(a.Frame.DT, cfg.Motion.FrameDuration)

		tags.Local.Each(e.World, func(entry *donburi.Entry) {
			motion := components.Motion.Get(entry)
			vitals := components.Vitals.Get(entry)
			components.Flags.Get(entry).Boosting = in.Boost
			if vitals.Health <= 0 {
				motion.Velocity = mgl64.Vec2{}
				return
			}
			motion.Velocity = gamemath.InputVelocity(in.X, in.Y, in.Boost, cfg.Motion.WalkSpeed, cfg.Motion.BoostSpeed)

			r := vitals.Radius
			motion.Position = gamemath.ClampToRect(
				gamemath.DeadReckon(motion.Position, motion.Velocity, frames),
				mgl64.Vec2{r, r},
				mgl64.Vec2{a.Bounds.Width() - r, a.Bounds.Height() - r},
			)
		})
	}
}

// NewRemoteExtrapolationSystem returns a system that moves the remote
// entity along its last known velocity between network updates.
func NewRemoteExtrapolationSystem(a *Arena) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		frames := gamemath.Frames(a.Frame.DT, cfg.Motion.FrameDuration)
		tags.Remote.Each(e.World, func(entry *donburi.Entry) {
			motion := components.Motion.Get(entry)
			motion.Position = gamemath.DeadReckon(motion.Position, motion.Velocity, frames)
		})
	}
}

// NewAttackInputSystem returns a system that turns a latched attack press
// into a local attack.
func NewAttackInputSystem(a *Arena, input *InputState, combat *CombatResolver, emit Emit) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		if input.TakeAttack() {
			combat.PerformAttack(a.Frame.Now, emit)
		}
	}
}
