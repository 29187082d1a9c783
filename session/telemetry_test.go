package session

import (
	"testing"

	"github.com/sirupsen/logrus"

	cfg "github.com/automoto/duelsync/config"
)

func TestNewLoggerLevel(t *testing.T) {
	cfg.Defaults()
	t.Cleanup(cfg.Defaults)

	cfg.Telemetry.LogLevel = "debug"
	lg, err := NewLogger()
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if lg.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %s", lg.GetLevel())
	}

	cfg.Telemetry.LogLevel = "chatty"
	if _, err := NewLogger(); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestInitSentryWithoutDSN(t *testing.T) {
	cfg.Defaults()
	t.Cleanup(cfg.Defaults)

	flush, err := InitSentry()
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	flush()
}
