package session

import (
	"context"
	"errors"

	"github.com/automoto/duelsync/network"
	"golang.org/x/sync/errgroup"
)

// Run attaches ch to the session's peer, feeds inbound payloads to the
// session and drives sc until ctx is done. An orderly close of ch only
// marks the peer disconnected: the loop keeps simulating locally and stops
// sending. Any other channel failure ends Run with that error.
func Run(ctx context.Context, s *Session, sc *Scheduler, ch network.Channel) error {
	peer := s.Peer()
	peer.Attach(ch)
	defer peer.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := network.Pump(ctx, ch, s.Receive)
		if ctx.Err() != nil {
			return nil
		}
		peer.Detach(err)
		if errors.Is(err, network.ErrClosed) {
			s.log.Info("peer closed the channel")
			return nil
		}
		return err
	})
	g.Go(func() error {
		err := sc.Run(ctx)
		_ = ch.Close()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
