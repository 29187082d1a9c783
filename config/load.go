package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "DUELSYNC_"

// Load reads the given .env files (missing files are skipped) and then
// applies DUELSYNC_* environment overrides on top of the current values.
// Variables already present in the process environment win over file values.
func Load(paths ...string) error {
	var files []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		}
	}
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return fmt.Errorf("load env files: %w", err)
		}
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	collect(envFloat("WIDTH", &C.Width))
	collect(envFloat("HEIGHT", &C.Height))

	collect(envFloat("WALK_SPEED", &Motion.WalkSpeed))
	collect(envFloat("BOOST_SPEED", &Motion.BoostSpeed))

	collect(envInt("TICK_RATE", &Net.TickRate))
	collect(envInt("SYNC_RATE", &Net.SyncRate))
	collect(envDuration("FULL_SYNC_INTERVAL", &Net.FullSyncInterval))
	collect(envDuration("PING_INTERVAL", &Net.PingInterval))
	collect(envDuration("WRITE_TIMEOUT", &Net.WriteTimeout))

	collect(envFloat("MAX_JUMP", &Reconcile.MaxJump))
	collect(envFloat("RESET_THRESHOLD", &Reconcile.ResetThreshold))
	collect(envFloat("SMOOTHING", &Reconcile.SmoothingFactor))
	collect(envDuration("LATENCY_CAP", &Reconcile.LatencyCompensationCap))
	collect(envFloat("LATENCY_SMOOTHING", &Reconcile.LatencySmoothing))
	collect(envBool("DROP_STALE", &Reconcile.DropStale))

	collect(envFloat("ATTACK_RANGE", &Combat.AttackRange))
	collect(envInt("ATTACK_DAMAGE", &Combat.AttackDamage))
	collect(envDuration("ATTACK_WINDOW", &Combat.AttackWindow))
	collect(envDuration("RESET_DELAY", &Combat.ResetDelay))

	collect(envString("LOG_LEVEL", &Telemetry.LogLevel))
	collect(envString("SENTRY_DSN", &Telemetry.SentryDSN))
	collect(envString("ENV", &Telemetry.Environment))

	return errors.Join(errs...)
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func envString(name string, dst *string) error {
	if v, ok := lookup(name); ok {
		*dst = v
	}
	return nil
}

func envFloat(name string, dst *float64) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, name, err)
	}
	*dst = f
	return nil
}

func envInt(name string, dst *int) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, name, err)
	}
	*dst = i
	return nil
}

func envBool(name string, dst *bool) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, name, err)
	}
	*dst = b
	return nil
}

func envDuration(name string, dst *time.Duration) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, name, err)
	}
	*dst = d
	return nil
}
