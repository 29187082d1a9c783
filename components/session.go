package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// SessionData stores the shared round state.
// This is a singleton component - only one session exists per world.
type SessionData struct {
	ID         string
	GameTime   int64 // ms of active play
	RoundStart int64 // Unix ms
	Active     bool
	Round      int

	// PendingReset counts down the delay between a kill and the round reset.
	PendingReset *gween.Tween
}

var Session = donburi.NewComponentType[SessionData]()
