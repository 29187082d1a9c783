package systems

import (
	"time"

	"github.com/automoto/duelsync/components"
	cfg "github.com/automoto/duelsync/config"
	"github.com/automoto/duelsync/shared/gamemath"
	"github.com/automoto/duelsync/shared/messages"
	"github.com/automoto/duelsync/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// Reconciler applies inbound state to the remote entity and merges the
// host's periodic full-state snapshot.
type Reconciler struct {
	arena *Arena
	clock *ClockSync
	log   logrus.FieldLogger
}

func NewReconciler(a *Arena, clock *ClockSync, log logrus.FieldLogger) *Reconciler {
	return &Reconciler{arena: a, clock: clock, log: log}
}

// Compensation returns half the current round trip, capped.
func (r *Reconciler) Compensation() time.Duration {
	comp := r.clock.CurrentLatency() / 2
	if comp > cfg.Reconcile.LatencyCompensationCap {
		comp = cfg.Reconcile.LatencyCompensationCap
	}
	if comp < 0 {
		comp = 0
	}
	return comp
}

// Predict dead-reckons a position received at sent forward to now.
func (r *Reconciler) Predict(pos, vel mgl64.Vec2, sent, now int64) mgl64.Vec2 {
	elapsed := time.Duration(now-sent)*time.Millisecond + r.Compensation()
	if elapsed < 0 {
		elapsed = 0
	}
	return gamemath.DeadReckon(pos, vel, gamemath.Frames(elapsed, cfg.Motion.FrameDuration))
}

// ApplyPosition ingests a position update for the remote role. Updates
// claiming to be about the local role are ignored.
func (r *Reconciler) ApplyPosition(m messages.PlayerPosition, now int64) bool {
	if m.Role != r.arena.Remote() {
		r.log.WithField("role", m.Role).Debug("ignoring position update for local role")
		return false
	}
	entry := r.arena.Entity(m.Role)
	track := components.NetTrack.Get(entry)
	if cfg.Reconcile.DropStale && !seqAfter(m.Seq, track.LastSeq) {
		r.log.WithFields(logrus.Fields{"seq": m.Seq, "last": track.LastSeq}).Debug("dropping stale position update")
		return false
	}

	received := mgl64.Vec2{m.X, m.Y}
	velocity := mgl64.Vec2{m.VX, m.VY}
	predicted := r.Predict(received, velocity, m.Timestamp, now)

	motion := components.Motion.Get(entry)
	distance := predicted.Sub(motion.Position).Len()
	if distance > cfg.Reconcile.MaxJump && motion.Position != (mgl64.Vec2{}) {
		motion.Position = gamemath.SmoothToward(motion.Position, predicted, cfg.Reconcile.SmoothingFactor)
	} else {
		motion.Position = predicted
	}
	motion.Velocity = velocity

	flags := components.Flags.Get(entry)
	flags.Boosting = m.Boosting
	flags.Attacking = m.Attacking

	vitals := components.Vitals.Get(entry)
	if m.Health != nil {
		vitals.SetHealth(*m.Health)
	}
	if m.Score != nil && *m.Score >= 0 {
		vitals.Score = *m.Score
	}

	track.LastKnownPosition = received
	track.LastKnownVelocity = velocity
	track.LastUpdate = m.Timestamp
	if m.Seq != 0 {
		track.LastSeq = m.Seq
	}
	return true
}

// ApplyInput sets the remote entity's velocity from its latest input so it
// keeps moving between position updates. A dead remote stays still.
func (r *Reconciler) ApplyInput(m messages.PlayerInput) bool {
	if m.Role != r.arena.Remote() {
		r.log.WithField("role", m.Role).Debug("ignoring input for local role")
		return false
	}
	entry := r.arena.Entity(m.Role)
	track := components.NetTrack.Get(entry)
	if cfg.Reconcile.DropStale && !seqAfter(m.Seq, track.LastInputSeq) {
		r.log.WithFields(logrus.Fields{"seq": m.Seq, "last": track.LastInputSeq}).Debug("dropping stale input")
		return false
	}

	motion := components.Motion.Get(entry)
	if components.Vitals.Get(entry).Health <= 0 {
		motion.Velocity = mgl64.Vec2{}
	} else {
		motion.Velocity = gamemath.InputVelocity(
			m.Input.X, m.Input.Y, m.Input.Boost, cfg.Motion.WalkSpeed, cfg.Motion.BoostSpeed)
	}
	components.Flags.Get(entry).Boosting = m.Input.Boost
	if m.Seq != 0 {
		track.LastInputSeq = m.Seq
	}
	return true
}

// ApplyFullState merges a host snapshot. The host never applies one. On
// the player side the host entity is replaced wholesale, while the player's
// own position and velocity are only replaced when the snapshot disagrees
// by at least the reset threshold.
func (r *Reconciler) ApplyFullState(m messages.FullStateSync) bool {
	if r.arena.Local.IsAuthority() {
		r.log.Debug("ignoring full-state sync on the authority")
		return false
	}

	r.replaceEntity(r.arena.Entity(netconfig.RoleHost), m.Players.For(netconfig.RoleHost), m.Timestamp)

	own := m.Players.For(r.arena.Local)
	entry := r.arena.LocalEntity()
	motion := components.Motion.Get(entry)
	incoming := mgl64.Vec2{own.X, own.Y}
	if drift := incoming.Sub(motion.Position).Len(); drift >= cfg.Reconcile.ResetThreshold {
		r.log.WithField("drift", drift).Info("accepting snapshot position for local entity")
		motion.Position = incoming
		motion.Velocity = mgl64.Vec2{own.VX, own.VY}
	}
	adoptVitals(components.Vitals.Get(entry), own)

	session := r.arena.Session()
	session.GameTime = m.GameTime
	session.RoundStart = m.RoundStart
	session.Active = m.GameActive
	return true
}

func (r *Reconciler) replaceEntity(entry *donburi.Entry, s *messages.EntitySnapshot, sent int64) {
	pos := mgl64.Vec2{s.X, s.Y}
	vel := mgl64.Vec2{s.VX, s.VY}
	motion := components.Motion.Get(entry)
	motion.Position = pos
	motion.Velocity = vel

	flags := components.Flags.Get(entry)
	flags.Boosting = s.Boosting
	flags.Attacking = s.Attacking

	adoptVitals(components.Vitals.Get(entry), s)

	track := components.NetTrack.Get(entry)
	track.LastKnownPosition = pos
	track.LastKnownVelocity = vel
	track.LastUpdate = sent
}

func adoptVitals(v *components.VitalsData, s *messages.EntitySnapshot) {
	v.SetHealth(s.Health)
	if s.Score >= 0 {
		v.Score = s.Score
	}
	if s.Radius > 0 {
		v.Radius = s.Radius
	}
	v.Color = s.Color
}

// seqAfter reports whether seq is newer than last. Unsequenced messages
// (seq 0) are always accepted.
func seqAfter(seq, last uint32) bool {
	if seq == 0 || last == 0 {
		return true
	}
	return int32(seq-last) > 0
}
