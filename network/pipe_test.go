package network

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPipeDropsWhenFull(t *testing.T) {
	a, b := Pipe(2)
	for i := byte(0); i < 5; i++ {
		if err := a.Send([]byte{i}); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	var got []byte
	for {
		p, err := b.Receive(ctx)
		if err != nil {
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Fatalf("receive: %v", err)
			}
			break
		}
		got = append(got, p...)
	}
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("received %v, want [0 1]", got)
	}
}

func TestPipeCopiesPayload(t *testing.T) {
	a, b := Pipe(1)
	buf := []byte{1, 2, 3}
	_ = a.Send(buf)
	buf[0] = 9

	p, err := b.Receive(context.Background())
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if p[0] != 1 {
		t.Fatalf("payload aliased the sender's buffer")
	}
}

func TestPumpStopsOnClose(t *testing.T) {
	a, b := Pipe(4)
	got := make(chan []byte, 4)
	done := make(chan error, 1)
	go func() {
		done <- Pump(context.Background(), b, func(p []byte) { got <- p })
	}()

	_ = a.Send([]byte("x"))
	select {
	case p := <-got:
		if string(p) != "x" {
			t.Fatalf("pumped %q", p)
		}
	case <-time.After(time.Second):
		t.Fatalf("payload not pumped")
	}

	_ = a.Close()
	select {
	case err := <-done:
		if !errors.Is(err, ErrClosed) {
			t.Fatalf("pump returned %v, want ErrClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("pump did not stop")
	}
	if err := b.Send([]byte("y")); !errors.Is(err, ErrClosed) {
		t.Fatalf("send on closed pipe = %v", err)
	}
}
