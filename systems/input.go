package systems

import "github.com/automoto/duelsync/shared/gamemath"

// InputSnapshot is the normalized input polled from the input collector.
type InputSnapshot struct {
	X, Y   float64
	Boost  bool
	Attack bool
}

// InputState holds the local input and latches attack presses until the
// next tick consumes them.
type InputState struct {
	current       InputSnapshot
	attackPending bool
}

// Set replaces the current snapshot. A false to true transition of Attack
// latches one attack.
func (s *InputState) Set(in InputSnapshot) {
	in.X = gamemath.ClampAxis(in.X)
	in.Y = gamemath.ClampAxis(in.Y)
	if in.Attack && !s.current.Attack {
		s.attackPending = true
	}
	s.current = in
}

// Current returns the latest snapshot.
func (s *InputState) Current() InputSnapshot {
	return s.current
}

// TakeAttack reports and clears a latched attack.
func (s *InputState) TakeAttack() bool {
	pending := s.attackPending
	s.attackPending = false
	return pending
}
