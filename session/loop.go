package session

import (
	"context"
	"sync"
	"time"

	cfg "github.com/automoto/duelsync/config"
)

// Scheduler is the cooperative loop of a session. Every tick it steps the
// simulation and, while the peer is connected, sends position and input
// at the sync rate, a probe at the ping interval and, on the host, a full
// state snapshot at the full sync interval.
type Scheduler struct {
	session *Session

	lastTick time.Time
	lastSync time.Time
	lastFull time.Time
	lastPing time.Time

	stopOnce sync.Once
	stopChan chan struct{}
}

func NewScheduler(s *Session) *Scheduler {
	return &Scheduler{
		session:  s,
		stopChan: make(chan struct{}),
	}
}

// Run ticks at the configured tick rate until ctx is done or Stop is
// called.
func (sc *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(cfg.Net.TickInterval())
	defer ticker.Stop()

	sc.session.log.WithField("tickRate", cfg.Net.TickRate).Info("sync loop started")
	for {
		select {
		case <-ctx.Done():
			sc.session.log.Info("sync loop stopped")
			return ctx.Err()
		case <-sc.stopChan:
			sc.session.log.Info("sync loop stopped")
			return nil
		case <-ticker.C:
			sc.Tick(sc.session.now())
		}
	}
}

func (sc *Scheduler) Stop() {
	sc.stopOnce.Do(func() { close(sc.stopChan) })
}

// Tick runs one iteration of the loop at now.
func (sc *Scheduler) Tick(now time.Time) {
	var dt time.Duration
	if !sc.lastTick.IsZero() {
		dt = now.Sub(sc.lastTick)
	}
	if dt < 0 {
		dt = 0
	}
	if dt > cfg.Motion.MaxStep {
		dt = cfg.Motion.MaxStep
	}
	sc.lastTick = now
	sc.session.Step(now, dt)

	if !sc.session.peer.Connected() {
		return
	}
	if now.Sub(sc.lastSync) >= cfg.Net.SyncInterval() {
		sc.lastSync = now
		sc.session.SendSync(now)
	}
	if sc.session.Local().IsAuthority() && now.Sub(sc.lastFull) >= cfg.Net.FullSyncInterval {
		sc.lastFull = now
		sc.session.SendFullState(now)
	}
	if now.Sub(sc.lastPing) >= cfg.Net.PingInterval {
		sc.lastPing = now
		sc.session.SendProbe(now)
	}
}
