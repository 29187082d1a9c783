package network

import (
	"context"
	"sync"
)

type pipeState struct {
	once sync.Once
	done chan struct{}
}

// pipeEnd is one side of an in-memory Pipe.
type pipeEnd struct {
	in    <-chan []byte
	out   chan<- []byte
	state *pipeState
}

// Pipe returns two connected in-memory channels. Each direction buffers up
// to buffer payloads; further sends are dropped, like a saturated datagram
// link. Closing either end closes both.
func Pipe(buffer int) (Channel, Channel) {
	if buffer < 1 {
		buffer = 1
	}
	ab := make(chan []byte, buffer)
	ba := make(chan []byte, buffer)
	state := &pipeState{done: make(chan struct{})}
	return &pipeEnd{in: ba, out: ab, state: state}, &pipeEnd{in: ab, out: ba, state: state}
}

func (p *pipeEnd) Send(b []byte) error {
	select {
	case <-p.state.done:
		return ErrClosed
	default:
	}
	buf := make([]byte, len(b))
	copy(buf, b)
	select {
	case p.out <- buf:
	default:
	}
	return nil
}

func (p *pipeEnd) Receive(ctx context.Context) ([]byte, error) {
	select {
	case b := <-p.in:
		return b, nil
	case <-p.state.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *pipeEnd) Close() error {
	p.state.once.Do(func() { close(p.state.done) })
	return nil
}
