package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsMatchProtocolConstants(t *testing.T) {
	Defaults()
	if Reconcile.MaxJump != 50 {
		t.Fatalf("MaxJump = %v, want 50", Reconcile.MaxJump)
	}
	if Reconcile.ResetThreshold != 200 {
		t.Fatalf("ResetThreshold = %v, want 200", Reconcile.ResetThreshold)
	}
	if Reconcile.ResetThreshold <= Reconcile.MaxJump {
		t.Fatalf("ResetThreshold %v must exceed MaxJump %v", Reconcile.ResetThreshold, Reconcile.MaxJump)
	}
	if Combat.AttackWindow != 200*time.Millisecond || Combat.ResetDelay != 500*time.Millisecond {
		t.Fatalf("combat timings = %v/%v", Combat.AttackWindow, Combat.ResetDelay)
	}
}

func TestSyncIntervalClamped(t *testing.T) {
	cases := []struct {
		rate int
		want time.Duration
	}{
		{rate: 10, want: time.Second / 30},
		{rate: 45, want: time.Second / 45},
		{rate: 120, want: time.Second / 60},
	}
	for _, c := range cases {
		got := NetConfig{SyncRate: c.rate}.SyncInterval()
		if got != c.want {
			t.Fatalf("SyncRate %d: interval = %v, want %v", c.rate, got, c.want)
		}
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	Defaults()
	t.Cleanup(Defaults)

	t.Setenv("DUELSYNC_MAX_JUMP", "75")
	t.Setenv("DUELSYNC_DROP_STALE", "true")
	t.Setenv("DUELSYNC_ATTACK_WINDOW", "250ms")

	if err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if Reconcile.MaxJump != 75 {
		t.Fatalf("MaxJump = %v, want 75", Reconcile.MaxJump)
	}
	if !Reconcile.DropStale {
		t.Fatalf("DropStale not applied")
	}
	if Combat.AttackWindow != 250*time.Millisecond {
		t.Fatalf("AttackWindow = %v, want 250ms", Combat.AttackWindow)
	}
}

func TestLoadEnvFile(t *testing.T) {
	Defaults()
	t.Cleanup(Defaults)
	t.Cleanup(func() { _ = os.Unsetenv("DUELSYNC_RESET_THRESHOLD") })

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DUELSYNC_RESET_THRESHOLD=320\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if Reconcile.ResetThreshold != 320 {
		t.Fatalf("ResetThreshold = %v, want 320", Reconcile.ResetThreshold)
	}
}

func TestLoadRejectsBadValue(t *testing.T) {
	Defaults()
	t.Cleanup(Defaults)

	t.Setenv("DUELSYNC_SYNC_RATE", "fast")
	if err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric sync rate")
	}
}
