package gamemath

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// ClampAxis clamps an input axis to [-1, 1].
func ClampAxis(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Frames converts a duration to a count of reference frames.
func Frames(d, frame time.Duration) float64 {
	if frame <= 0 {
		return 0
	}
	return float64(d) / float64(frame)
}

// InputVelocity returns the velocity for an input vector. Axes are clamped
// and a vector longer than 1 is normalized, so diagonals move at the same
// speed as straight lines.
func InputVelocity(x, y float64, boost bool, walkSpeed, boostSpeed float64) mgl64.Vec2 {
	speed := walkSpeed
	if boost {
		speed = boostSpeed
	}
	in := mgl64.Vec2{ClampAxis(x), ClampAxis(y)}
	if in.Len() > 1 {
		in = in.Normalize()
	}
	return in.Mul(speed)
}

// DeadReckon extrapolates pos along vel for the given number of frames.
func DeadReckon(pos, vel mgl64.Vec2, frames float64) mgl64.Vec2 {
	return pos.Add(vel.Mul(frames))
}

// SmoothToward moves cur a fraction of the way toward target.
func SmoothToward(cur, target mgl64.Vec2, factor float64) mgl64.Vec2 {
	return cur.Add(target.Sub(cur).Mul(factor))
}

// ClampToRect keeps p inside [lo, hi] on both axes. An inverted range
// collapses to its midpoint.
func ClampToRect(p, lo, hi mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{clamp(p.X(), lo.X(), hi.X()), clamp(p.Y(), lo.Y(), hi.Y())}
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
