// Package protocol encodes and decodes wire messages. Every payload travels
// inside a small msgpack envelope tagged with its messages.Kind, which keeps
// the format self-describing without a type registry.
package protocol

import (
	"errors"
	"fmt"
	"math"

	"github.com/automoto/duelsync/shared/messages"
	"github.com/automoto/duelsync/shared/netconfig"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrEmptyPayload = errors.New("empty payload")
	ErrUnknownKind  = errors.New("unknown message kind")
	ErrInvalidField = errors.New("invalid field")
)

type envelope struct {
	T messages.Kind      `msgpack:"t"`
	P msgpack.RawMessage `msgpack:"p"`
}

// Encode serializes msg into an envelope.
func Encode(msg messages.Message) ([]byte, error) {
	if msg == nil {
		return nil, fmt.Errorf("encode: nil message")
	}
	p, err := msgpack.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.Kind(), err)
	}
	b, err := msgpack.Marshal(envelope{T: msg.Kind(), P: p})
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return b, nil
}

// Decode parses an envelope and returns the concrete message it carries.
// Any failure means the payload must be discarded without touching state.
func Decode(b []byte) (messages.Message, error) {
	if len(b) == 0 {
		return nil, ErrEmptyPayload
	}
	var env envelope
	if err := msgpack.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if len(env.P) == 0 {
		return nil, fmt.Errorf("%s: %w", env.T, ErrEmptyPayload)
	}

	switch env.T {
	case messages.KindPlayerPosition:
		m, err := decodePayload[messages.PlayerPosition](env)
		if err != nil {
			return nil, err
		}
		if err := validate(env.T, m.Role, m.X, m.Y, m.VX, m.VY); err != nil {
			return nil, err
		}
		return m, nil
	case messages.KindPlayerInput:
		m, err := decodePayload[messages.PlayerInput](env)
		if err != nil {
			return nil, err
		}
		if err := validate(env.T, m.Role, m.Input.X, m.Input.Y); err != nil {
			return nil, err
		}
		return m, nil
	case messages.KindAttack:
		m, err := decodePayload[messages.Attack](env)
		if err != nil {
			return nil, err
		}
		if err := validate(env.T, m.Role, m.X, m.Y); err != nil {
			return nil, err
		}
		return m, nil
	case messages.KindFullStateSync:
		m, err := decodePayload[messages.FullStateSync](env)
		if err != nil {
			return nil, err
		}
		for _, r := range netconfig.Roles {
			s := m.Players.For(r)
			if err := validate(env.T, r, s.X, s.Y, s.VX, s.VY, s.Radius); err != nil {
				return nil, err
			}
		}
		return m, nil
	case messages.KindPing:
		m, err := decodePayload[messages.Ping](env)
		if err != nil {
			return nil, err
		}
		return m, nil
	case messages.KindPong:
		m, err := decodePayload[messages.Pong](env)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("%q: %w", env.T, ErrUnknownKind)
}

func decodePayload[T messages.Message](env envelope) (T, error) {
	var out T
	if err := msgpack.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", env.T, err)
	}
	return out, nil
}

func validate(kind messages.Kind, role netconfig.Role, values ...float64) error {
	if !role.Valid() {
		return fmt.Errorf("%s: role %q: %w", kind, role, ErrInvalidField)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: non-finite value: %w", kind, ErrInvalidField)
		}
	}
	return nil
}
