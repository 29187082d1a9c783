package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

type MotionData struct {
	Position mgl64.Vec2
	Velocity mgl64.Vec2 // units per reference frame
}

type FlagsData struct {
	Boosting  bool
	Attacking bool
}

var Motion = donburi.NewComponentType[MotionData]()
var Flags = donburi.NewComponentType[FlagsData]()
