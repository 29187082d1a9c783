package network

import (
	"context"
	"errors"
)

var (
	ErrClosed       = errors.New("channel closed")
	ErrNotConnected = errors.New("not connected")
)

// Channel is a lossy, possibly unordered bidirectional link to the other
// peer carrying opaque payloads. Send must not block for long; Receive
// blocks until a payload arrives, the channel closes or ctx is done.
type Channel interface {
	Send(b []byte) error
	Receive(ctx context.Context) ([]byte, error)
	Close() error
}
