package config

import (
	"image/color"
	"time"
)

// Config holds the canvas dimensions used to seed and clamp positions.
type Config struct {
	Width  float64
	Height float64
}

// MotionConfig contains local movement and integration values.
type MotionConfig struct {
	WalkSpeed  float64 // units per frame at full input
	BoostSpeed float64 // units per frame at full input while boosting

	// FrameDuration is the reference frame velocities are expressed in.
	FrameDuration time.Duration

	// MaxStep caps a single integration step so a stalled loop doesn't
	// teleport entities when it resumes.
	MaxStep time.Duration
}

// NetConfig contains the cadences of the sync loop.
type NetConfig struct {
	TickRate         int // ticks per second of the cooperative loop
	SyncRate         int // position+input messages per second (30-60)
	FullSyncInterval time.Duration
	PingInterval     time.Duration
	WriteTimeout     time.Duration
}

// ReconcileConfig contains the remote-state correction thresholds.
type ReconcileConfig struct {
	MaxJump                float64 // units; larger corrections are smoothed
	ResetThreshold         float64 // units; full-state discrepancy treated as a teleport
	SmoothingFactor        float64 // fraction of the gap closed per update
	LatencyCompensationCap time.Duration
	LatencySmoothing       float64 // EWMA weight of a new sample, 0 keeps the last sample only
	LatencyHistory         int     // samples kept for Average/Jitter
	DropStale              bool    // drop position/input messages with an old sequence number
}

// CombatConfig contains attack and round values.
type CombatConfig struct {
	AttackRange  float64
	AttackDamage int
	AttackWindow time.Duration
	ResetDelay   time.Duration
}

// PlayerConfig contains per-entity defaults.
type PlayerConfig struct {
	MaxHealth   int
	Radius      float64
	HostColor   color.RGBA
	PlayerColor color.RGBA
}

// TelemetryConfig contains logging and crash reporting settings.
type TelemetryConfig struct {
	LogLevel    string
	SentryDSN   string
	Environment string
}

// Global configuration instances
var C *Config
var Motion MotionConfig
var Net NetConfig
var Reconcile ReconcileConfig
var Combat CombatConfig
var Player PlayerConfig
var Telemetry TelemetryConfig

// Shared RGBA color constants
var (
	Blue   = color.RGBA{R: 0, G: 100, B: 255, A: 255}
	Orange = color.RGBA{R: 255, G: 140, B: 0, A: 255}
)

func init() {
	Defaults()
}

// Defaults resets every configuration instance to its built-in values.
func Defaults() {
	C = &Config{
		Width:  800,
		Height: 600,
	}

	Motion = MotionConfig{
		WalkSpeed:     5,
		BoostSpeed:    10,
		FrameDuration: time.Second / 60,
		MaxStep:       250 * time.Millisecond,
	}

	Net = NetConfig{
		TickRate:         60,
		SyncRate:         30,
		FullSyncInterval: time.Second,
		PingInterval:     time.Second,
		WriteTimeout:     2 * time.Second,
	}

	Reconcile = ReconcileConfig{
		MaxJump:                50,
		ResetThreshold:         200,
		SmoothingFactor:        0.3,
		LatencyCompensationCap: 50 * time.Millisecond,
		LatencySmoothing:       0,
		LatencyHistory:         16,
		DropStale:              false,
	}

	Combat = CombatConfig{
		AttackRange:  50,
		AttackDamage: 10,
		AttackWindow: 200 * time.Millisecond,
		ResetDelay:   500 * time.Millisecond,
	}

	Player = PlayerConfig{
		MaxHealth:   100,
		Radius:      20,
		HostColor:   Blue,
		PlayerColor: Orange,
	}

	Telemetry = TelemetryConfig{
		LogLevel:    "info",
		Environment: "development",
	}
}

// SyncInterval returns the spacing between position+input messages.
func (n NetConfig) SyncInterval() time.Duration {
	rate := n.SyncRate
	if rate < 30 {
		rate = 30
	}
	if rate > 60 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// TickInterval returns the spacing between loop ticks.
func (n NetConfig) TickInterval() time.Duration {
	if n.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(n.TickRate)
}
