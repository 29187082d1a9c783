package systems

import (
	"math/rand"

	cfg "github.com/automoto/duelsync/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi/ecs"
)

type botAIState int

const (
	botStateIdle botAIState = iota
	botStateWander
	botStateChase
	botStateAttack
	botStateRetreat
)

type botState struct {
	difficulty     cfg.BotDifficultyConfig
	aiState        botAIState
	decisionTimer  int
	attackCooldown int
	wander         mgl64.Vec2
	rng            *rand.Rand
}

// NewBotSystem returns a system that plays the local entity: it chases the
// opponent, attacks in range and backs off at low health. It writes into
// input the same way a human input collector would. Must run before the
// attack and physics systems.
func NewBotSystem(a *Arena, input *InputState, difficulty cfg.BotDifficulty) func(*ecs.ECS) {
	state := &botState{
		difficulty: cfg.Bot.Difficulties[difficulty],
		// Fixed seed for deterministic replays.
		rng: rand.New(rand.NewSource(42)),
	}

	return func(e *ecs.ECS) {
		if state.decisionTimer > 0 {
			state.decisionTimer--
		}
		if state.attackCooldown > 0 {
			state.attackCooldown--
		}

		self := a.State(a.Local)
		target := a.State(a.Remote())
		toTarget := target.Position.Sub(self.Position)
		dist := toTarget.Len()

		if state.decisionTimer <= 0 {
			state.aiState = decideBotState(state, self, target, dist)
			state.decisionTimer = state.difficulty.ReactionDelay
		}

		in := InputSnapshot{}
		switch state.aiState {
		case botStateChase:
			in = steer(toTarget, dist > state.difficulty.AttackRange*2)
		case botStateAttack:
			in = steer(toTarget, false)
			if state.attackCooldown <= 0 && !input.Current().Attack {
				in.Attack = true
				state.attackCooldown = state.difficulty.AttackCooldown
			}
		case botStateRetreat:
			in = steer(toTarget.Mul(-1), true)
		case botStateWander:
			in = steer(state.wander, false)
		case botStateIdle:
			// Do nothing
		}
		input.Set(in)
	}
}

func decideBotState(state *botState, self, target EntityState, dist float64) botAIState {
	if self.Health <= 0 || target.Health <= 0 {
		return botStateIdle
	}
	if self.MaxHealth > 0 && float64(self.Health)/float64(self.MaxHealth) < state.difficulty.RetreatThreshold {
		return botStateRetreat
	}
	if dist < state.difficulty.AttackRange {
		return botStateAttack
	}
	if dist > state.difficulty.ChaseRange {
		state.wander = mgl64.Vec2{state.rng.Float64()*2 - 1, state.rng.Float64()*2 - 1}
		return botStateWander
	}
	return botStateChase
}

func steer(dir mgl64.Vec2, boost bool) InputSnapshot {
	if dir.Len() < 1e-6 {
		return InputSnapshot{}
	}
	n := dir.Normalize()
	return InputSnapshot{X: n.X(), Y: n.Y(), Boost: boost}
}
