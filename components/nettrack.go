package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// NetTrackData stores what the last accepted network update said about a
// remote entity.
type NetTrackData struct {
	LastKnownPosition mgl64.Vec2
	LastKnownVelocity mgl64.Vec2
	LastUpdate        int64  // sender timestamp of the last position update, Unix ms
	LastSeq           uint32 // last accepted PlayerPosition sequence
	LastInputSeq      uint32 // last accepted PlayerInput sequence
}

var NetTrack = donburi.NewComponentType[NetTrackData]()
