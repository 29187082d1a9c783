package messages

import "github.com/automoto/duelsync/shared/netconfig"

// Kind is the wire tag of a message.
type Kind string

const (
	KindPlayerPosition Kind = "playerPosition"
	KindPlayerInput    Kind = "playerInput"
	KindAttack         Kind = "attack"
	KindFullStateSync  Kind = "fullStateSync"
	KindPing           Kind = "ping"
	KindPong           Kind = "pong"
)

// Message is the closed set of records exchanged between the two peers.
// Only types in this package implement it.
type Message interface {
	Kind() Kind
	sealed()
}

// PlayerPosition is sent at the sync cadence with the sender's full
// transient state. Health and Score are optional on the wire.
type PlayerPosition struct {
	Role      netconfig.Role `msgpack:"role"`
	Seq       uint32         `msgpack:"seq,omitempty"`
	X         float64        `msgpack:"x"`
	Y         float64        `msgpack:"y"`
	VX        float64        `msgpack:"vx"`
	VY        float64        `msgpack:"vy"`
	Boosting  bool           `msgpack:"boosting"`
	Attacking bool           `msgpack:"attacking"`
	Health    *int           `msgpack:"health,omitempty"`
	Score     *int           `msgpack:"score,omitempty"`
	Timestamp int64          `msgpack:"timestamp"` // sender clock, Unix ms
}

// Attack is broadcast when a player starts an attack. X/Y carry the
// attacker's position at the moment of the attack.
type Attack struct {
	Role      netconfig.Role `msgpack:"role"`
	X         float64        `msgpack:"x"`
	Y         float64        `msgpack:"y"`
	Timestamp int64          `msgpack:"timestamp"`
}

// Ping is a latency probe.
type Ping struct {
	Timestamp int64 `msgpack:"timestamp"`
}

// Pong echoes the timestamp of the Ping it answers.
type Pong struct {
	Timestamp int64 `msgpack:"timestamp"`
}

func (PlayerPosition) Kind() Kind { return KindPlayerPosition }
func (PlayerInput) Kind() Kind    { return KindPlayerInput }
func (Attack) Kind() Kind         { return KindAttack }
func (FullStateSync) Kind() Kind  { return KindFullStateSync }
func (Ping) Kind() Kind           { return KindPing }
func (Pong) Kind() Kind           { return KindPong }

func (PlayerPosition) sealed() {}
func (PlayerInput) sealed()    {}
func (Attack) sealed()         {}
func (FullStateSync) sealed()  {}
func (Ping) sealed()           {}
func (Pong) sealed()           {}

// Int returns a pointer to v, for the optional PlayerPosition fields.
func Int(v int) *int {
	return &v
}
