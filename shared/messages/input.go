package messages

import "github.com/automoto/duelsync/shared/netconfig"

// InputVector is a normalized movement input. X and Y are in [-1, 1].
type InputVector struct {
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	Boost bool    `msgpack:"boost"`
}

// PlayerInput is sent alongside PlayerPosition so the receiver can keep
// extrapolating the sender between position updates.
type PlayerInput struct {
	Role      netconfig.Role `msgpack:"role"`
	Seq       uint32         `msgpack:"seq,omitempty"` // incrementing per sender, 0 = unsequenced
	Input     InputVector    `msgpack:"input"`
	Timestamp int64          `msgpack:"timestamp"` // sender clock, Unix ms
}
