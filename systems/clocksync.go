package systems

import (
	"math"
	"time"

	cfg "github.com/automoto/duelsync/config"
	"github.com/automoto/duelsync/shared/messages"
	"github.com/sirupsen/logrus"
)

// latencyRing keeps the most recent round-trip samples.
type latencyRing struct {
	samples []time.Duration
	next    int
	count   int
}

func newLatencyRing(size int) *latencyRing {
	if size < 1 {
		size = 1
	}
	return &latencyRing{samples: make([]time.Duration, size)}
}

func (r *latencyRing) store(d time.Duration) {
	r.samples[r.next] = d
	r.next = (r.next + 1) % len(r.samples)
	if r.count < len(r.samples) {
		r.count++
	}
}

func (r *latencyRing) mean() time.Duration {
	if r.count == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < r.count; i++ {
		sum += r.samples[i]
	}
	return sum / time.Duration(r.count)
}

// ClockSync estimates the round trip to the remote peer from ping/pong
// probes. A probe that never comes back leaves the previous estimate in
// place.
type ClockSync struct {
	latency   time.Duration
	hasSample bool
	lastProbe int64
	history   *latencyRing
	log       logrus.FieldLogger
}

func NewClockSync(log logrus.FieldLogger) *ClockSync {
	return &ClockSync{history: newLatencyRing(cfg.Reconcile.LatencyHistory), log: log}
}

// SendProbe emits a ping stamped with now.
func (c *ClockSync) SendProbe(now int64, emit Emit) {
	c.lastProbe = now
	emit(messages.Ping{Timestamp: now})
}

// HandlePing answers a probe immediately with the original timestamp.
func (c *ClockSync) HandlePing(p messages.Ping, emit Emit) {
	emit(messages.Pong{Timestamp: p.Timestamp})
}

// HandlePong records now - p.Timestamp as the latest sample. Echoes that
// claim to come from the future are ignored.
func (c *ClockSync) HandlePong(p messages.Pong, now int64) bool {
	rtt := now - p.Timestamp
	if rtt < 0 {
		c.log.WithFields(logrus.Fields{"timestamp": p.Timestamp, "now": now}).Debug("ignoring pong from the future")
		return false
	}
	sample := time.Duration(rtt) * time.Millisecond
	c.history.store(sample)

	w := cfg.Reconcile.LatencySmoothing
	if !c.hasSample || w <= 0 || w >= 1 {
		c.latency = sample
	} else {
		c.latency += time.Duration(w * float64(sample-c.latency))
	}
	c.hasSample = true
	return true
}

// CurrentLatency returns the estimate used for compensation, 0 before the
// first pong.
func (c *ClockSync) CurrentLatency() time.Duration {
	return c.latency
}

// LastProbe returns the timestamp of the most recent ping sent.
func (c *ClockSync) LastProbe() int64 {
	return c.lastProbe
}

// Samples returns how many samples the history currently holds.
func (c *ClockSync) Samples() int {
	return c.history.count
}

// Average returns the mean of the retained samples.
func (c *ClockSync) Average() time.Duration {
	return c.history.mean()
}

// Jitter returns the standard deviation of the retained samples.
func (c *ClockSync) Jitter() time.Duration {
	n := c.history.count
	if n < 2 {
		return 0
	}
	mean := float64(c.history.mean())
	var sq float64
	for i := 0; i < n; i++ {
		d := float64(c.history.samples[i]) - mean
		sq += d * d
	}
	return time.Duration(math.Sqrt(sq / float64(n)))
}
