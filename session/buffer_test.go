package session

import (
	"context"
	"sync"
)

// bufferedChannel records every payload sent on it.
type bufferedChannel struct {
	mu   sync.Mutex
	sent [][]byte
}

func (b *bufferedChannel) Send(p []byte) error {
	b.mu.Lock()
	b.sent = append(b.sent, append([]byte(nil), p...))
	b.mu.Unlock()
	return nil
}

func (b *bufferedChannel) Receive(ctx context.Context) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b *bufferedChannel) Close() error { return nil }

func (b *bufferedChannel) next() ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.sent) == 0 {
		return nil, false
	}
	p := b.sent[0]
	b.sent = b.sent[1:]
	return p, true
}

