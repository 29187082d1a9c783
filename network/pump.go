package network

import "context"

// Pump hands every payload received on ch to handle until ch fails or ctx
// is done, and returns that error.
func Pump(ctx context.Context, ch Channel, handle func([]byte)) error {
	for {
		b, err := ch.Receive(ctx)
		if err != nil {
			return err
		}
		handle(b)
	}
}
